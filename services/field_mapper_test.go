package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFieldMapperCategories(t *testing.T) {
	mapper := NewFieldMapper(DefaultMappingRules())

	tests := []struct {
		name     string
		label    string
		expected string
	}{
		{"greatest strength", "What is your greatest strength?", FieldBiggestAchievement},
		{"proudest accomplishment", "Tell us about your proudest accomplishment", FieldBiggestAchievement},
		{"career goals", "What are your career goals?", FieldCareerGoals},
		{"why this role", "Why are you interested in this role?", FieldCareerGoals},
		{"relevant experience", "Describe your relevant experience", FieldExperience},
		{"technical skills", "List your technical skills", FieldSkills},
		{"work authorization", "Are you authorized to work in the United States?", FieldAuthorizationStatus},
		{"sponsorship", "Will you now or in the future require sponsorship?", FieldAuthorizationStatus},
		{"relocation", "Are you willing to relocate?", FieldWillingToRelocate},
		{"start date", "When are you available to start?", FieldAvailableStartDate},
		{"portfolio", "Link to your portfolio", FieldPortfolioLinks},
		{"github", "GitHub profile URL", FieldPortfolioLinks},
		{"certifications", "List any certifications you hold", FieldCertifications},
		{"languages", "What languages do you speak?", FieldLanguages},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, mapper.Map(tt.label))
		})
	}
}

func TestFieldMapperFallback(t *testing.T) {
	mapper := NewFieldMapper(DefaultMappingRules())

	// Labels matching no trigger still map somewhere.
	for _, label := range []string{"", "zzzz", "Favorite color?", "   "} {
		assert.Equal(t, FieldCareerGoals, mapper.Map(label), "label %q", label)
	}
}

func TestFieldMapperDeterministic(t *testing.T) {
	mapper := NewFieldMapper(DefaultMappingRules())

	// "strength" questions also contain "experience"-ish words on real
	// forms; first matching rule must win consistently.
	label := "What is your greatest strength based on your experience?"
	first := mapper.Map(label)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, mapper.Map(label))
	}
	assert.Equal(t, FieldBiggestAchievement, first)
}

func TestFieldMapperCaseInsensitive(t *testing.T) {
	mapper := NewFieldMapper(DefaultMappingRules())

	assert.Equal(t, mapper.Map("ARE YOU WILLING TO RELOCATE?"), mapper.Map("are you willing to relocate?"))
}
