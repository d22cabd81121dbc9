package services

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestContainsSuccessKeyword(t *testing.T) {
	assert.True(t, containsSuccessKeyword("Thank you for applying"))
	assert.True(t, containsSuccessKeyword("https://jobs.example.com/confirmation"))
	assert.True(t, containsSuccessKeyword("Application Submitted"))
	assert.False(t, containsSuccessKeyword("Software Engineer - Apply"))
	assert.False(t, containsSuccessKeyword(""))
}

func TestTruncateForLog(t *testing.T) {
	assert.Equal(t, "short", truncateForLog("short", 40))
	assert.Equal(t, strings.Repeat("a", 40)+"...", truncateForLog(strings.Repeat("a", 45), 40))

	// Multi-byte answers must stay valid UTF-8 after truncation.
	long := strings.Repeat("é", 45)
	got := truncateForLog(long, 40)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, strings.Repeat("é", 40)+"...", got)
}
