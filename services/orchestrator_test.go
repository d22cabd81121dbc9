package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSufficientlyFilled(t *testing.T) {
	tests := []struct {
		name           string
		resumeUploaded bool
		identityFilled bool
		filled, total  int
		expected       bool
	}{
		{"nothing at all", false, false, 0, 0, false},
		{"resume only, no questions", true, false, 0, 0, false},
		{"identity only, no questions", false, true, 0, 0, false},
		{"questions filled but no resume or identity", false, false, 10, 10, false},
		{"resume plus exactly half", true, false, 5, 10, true},
		{"resume plus just under half and under five", true, false, 2, 5, false},
		{"identity plus under half but five absolute", false, true, 5, 20, true},
		{"identity plus four of twenty", false, true, 4, 20, false},
		{"resume plus all questions", true, true, 8, 8, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sufficientlyFilled(tt.resumeUploaded, tt.identityFilled, tt.filled, tt.total)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestClassifyOutcome(t *testing.T) {
	t.Run("completed when sufficient and nothing failed", func(t *testing.T) {
		report := &CompletionReport{ResumeUploaded: true, QuestionsFilled: 6, TotalQuestions: 6}
		assert.Equal(t, OutcomeCompleted, classifyOutcome(report, true))
	})

	t.Run("partial when sufficient but some labels failed", func(t *testing.T) {
		report := &CompletionReport{
			ResumeUploaded:  true,
			QuestionsFilled: 5,
			TotalQuestions:  7,
			FailedLabels:    []string{"Describe your experience", "Start date"},
		}
		assert.Equal(t, OutcomePartiallyCompleted, classifyOutcome(report, true))
	})

	t.Run("partial when anything landed", func(t *testing.T) {
		report := &CompletionReport{QuestionsFilled: 1, TotalQuestions: 9}
		assert.Equal(t, OutcomePartiallyCompleted, classifyOutcome(report, false))
	})

	t.Run("failed when nothing landed", func(t *testing.T) {
		report := &CompletionReport{TotalQuestions: 4}
		assert.Equal(t, OutcomeFailed, classifyOutcome(report, false))
	})
}
