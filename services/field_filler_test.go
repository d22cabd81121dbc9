package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsAffirmative(t *testing.T) {
	for _, answer := range []string{"Yes", "yes", " YES ", "true", "1", "on"} {
		assert.True(t, isAffirmative(answer), "answer %q", answer)
	}
	for _, answer := range []string{"No", "false", "0", "", "maybe", "yess"} {
		assert.False(t, isAffirmative(answer), "answer %q", answer)
	}
}

func TestExtractISODate(t *testing.T) {
	assert.Equal(t, "2026-10-01", extractISODate("2026-10-01"))
	assert.Equal(t, "2026-10-01", extractISODate("I can start on 2026-10-01 at the earliest"))
	assert.Equal(t, "", extractISODate("as soon as possible"))
	assert.Equal(t, "", extractISODate("10/01/2026"))
}

func TestSplitISODate(t *testing.T) {
	year, month, day := splitISODate("2026-10-01")
	assert.Equal(t, "2026", year)
	assert.Equal(t, "October", month)
	assert.Equal(t, "1", day)

	year, month, day = splitISODate("2026-01-15")
	assert.Equal(t, "2026", year)
	assert.Equal(t, "January", month)
	assert.Equal(t, "15", day)

	year, month, day = splitISODate("soon")
	assert.Empty(t, year)
	assert.Empty(t, month)
	assert.Empty(t, day)

	year, month, day = splitISODate("2026-13-01")
	assert.Empty(t, year)
	assert.Empty(t, month)
	assert.Empty(t, day)
}
