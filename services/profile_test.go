package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFieldValuePolarity(t *testing.T) {
	profile := &ApplicantProfile{NeedsSponsorship: false}
	value, ok := profile.FieldValue(FieldAuthorizationStatus)
	assert.True(t, ok)
	assert.Equal(t, "Yes", value)

	profile.NeedsSponsorship = true
	value, _ = profile.FieldValue(FieldAuthorizationStatus)
	assert.Equal(t, "No", value)
}

func TestFieldValueLists(t *testing.T) {
	profile := &ApplicantProfile{Skills: []string{"Go", "SQL"}}

	value, ok := profile.FieldValue(FieldSkills)
	assert.True(t, ok)
	assert.Equal(t, "Go, SQL", value)

	value, ok = profile.FieldValue(FieldCertifications)
	assert.False(t, ok)
	assert.Empty(t, value)
}

func TestFieldValueUnknownField(t *testing.T) {
	profile := &ApplicantProfile{}
	value, ok := profile.FieldValue("not_a_field")
	assert.False(t, ok)
	assert.Empty(t, value)
}

func TestSummaryTextSkipsEmptySections(t *testing.T) {
	profile := &ApplicantProfile{Name: "Jordan Fields", Skills: []string{"Go"}}
	text := profile.SummaryText()

	assert.Contains(t, text, "Name: Jordan Fields")
	assert.Contains(t, text, "Skills: Go")
	assert.NotContains(t, text, "Career Goals")
	assert.NotContains(t, text, "Work Style")
}
