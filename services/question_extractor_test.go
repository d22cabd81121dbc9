package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveLabelPrecedence(t *testing.T) {
	tests := []struct {
		name     string
		cand     controlCandidate
		expected string
	}{
		{
			name: "bound label wins",
			cand: controlCandidate{
				LabelText:    "Years of experience: *",
				AncestorText: "Tell us about your experience",
				Placeholder:  "e.g. 5",
				Name:         "years_experience",
			},
			expected: "Years of experience",
		},
		{
			name: "related ancestor text when no label",
			cand: controlCandidate{
				AncestorText: "What are your career goals?",
				Placeholder:  "Your answer",
				Name:         "career_goals",
			},
			expected: "What are your career goals?",
		},
		{
			name: "unrelated ancestor text is skipped",
			cand: controlCandidate{
				AncestorText: "Employment application step 2 of 3",
				Placeholder:  "Describe your achievements",
				Name:         "biggest_achievement",
			},
			expected: "Describe your achievements",
		},
		{
			name: "humanized name as last resort",
			cand: controlCandidate{
				Name: "willing_to_relocate",
			},
			expected: "willing to relocate",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, deriveLabel(tt.cand))
		})
	}
}

func TestCleanLabel(t *testing.T) {
	assert.Equal(t, "Phone number", cleanLabel("  Phone number: * "))
	assert.Equal(t, "Start date", cleanLabel("Start date:"))
	assert.Equal(t, "", cleanLabel("  :* "))
	assert.Equal(t, "Why us", cleanLabel("Why us"))
}

func TestHumanizeFieldName(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"career_goals", "career goals"},
		{"whyThisCompany", "why this company"},
		{"answers[0].value", "answers 0 value"},
		{"start-date", "start date"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, humanizeFieldName(tt.in), "input %q", tt.in)
	}
}

func TestIsIdentityControl(t *testing.T) {
	tests := []struct {
		name        string
		fieldName   string
		id          string
		placeholder string
		inputType   string
		expected    bool
	}{
		{"email type", "", "", "", "email", true},
		{"tel type", "", "", "", "tel", true},
		{"file type", "", "", "", "file", true},
		{"password type", "", "", "", "password", true},
		{"first name by name", "first_name", "", "", "text", true},
		{"resume by id", "", "resume-upload", "", "text", true},
		{"phone by placeholder", "", "", "Phone number", "text", true},
		{"bare name field", "name", "", "", "text", true},
		{"question control", "career_goals", "", "", "text", false},
		{"textarea question", "q_42", "", "Describe your experience", "", false},
		{"empty everything", "", "", "", "text", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, isIdentityControl(tt.fieldName, tt.id, tt.placeholder, tt.inputType))
		})
	}
}

func TestClassifyControl(t *testing.T) {
	assert.Equal(t, ControlSelect, classifyControl("select", "", "country"))
	assert.Equal(t, ControlTextarea, classifyControl("textarea", "", "summary"))
	assert.Equal(t, ControlCheckbox, classifyControl("input", "checkbox", "agree"))
	assert.Equal(t, ControlDate, classifyControl("input", "date", "start"))
	assert.Equal(t, ControlDate, classifyControl("input", "text", "available_start_date"))
	assert.Equal(t, ControlFile, classifyControl("input", "file", "attachment"))
	assert.Equal(t, ControlText, classifyControl("input", "text", "question_1"))
}

func TestAncestorRelated(t *testing.T) {
	assert.True(t, ancestorRelated("What are your career goals?", "career_goals"))
	assert.True(t, ancestorRelated("Anything at all", ""))
	assert.False(t, ancestorRelated("Step 2 of 3", "career_goals"))
}

func TestEscapeAttrValue(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"visa_status", "visa_status"},
		{"answers[0]", "answers[0]"},
		{"it's", `it\'s`},
		{`back\slash`, `back\\slash`},
		{`both\'s`, `both\\\'s`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, escapeAttrValue(tt.in), "input %q", tt.in)
	}
}

func TestDecodeCandidates(t *testing.T) {
	raw := []interface{}{
		map[string]interface{}{
			"index": float64(0), "tag": "input", "type": "text",
			"name": "career_goals", "labelText": "Career goals",
		},
	}

	candidates, err := decodeCandidates(raw)
	assert.NoError(t, err)
	assert.Len(t, candidates, 1)
	assert.Equal(t, "career_goals", candidates[0].Name)
	assert.Equal(t, "Career goals", candidates[0].LabelText)
}
