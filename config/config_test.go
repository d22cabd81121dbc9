package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetAutomationConfigDefaults(t *testing.T) {
	os.Unsetenv("BROWSER_ENGINES")
	os.Unsetenv("HEADLESS")
	os.Unsetenv("TEST_MODE")

	cfg := GetAutomationConfig()

	assert.Equal(t, []string{"chromium", "firefox", "webkit"}, cfg.Engines)
	assert.True(t, cfg.Headless)
	assert.True(t, cfg.TestMode, "safety guard must default on")
	assert.Equal(t, 3, cfg.NavigationRetries)
	assert.Equal(t, 3, cfg.FillRetries)
}

func TestGetAutomationConfigEngineOverride(t *testing.T) {
	os.Setenv("BROWSER_ENGINES", "firefox, chromium")
	defer os.Unsetenv("BROWSER_ENGINES")

	cfg := GetAutomationConfig()
	assert.Equal(t, []string{"firefox", "chromium"}, cfg.Engines)
}

func TestTestModeOptOut(t *testing.T) {
	os.Setenv("TEST_MODE", "false")
	defer os.Unsetenv("TEST_MODE")

	cfg := GetAutomationConfig()
	assert.False(t, cfg.TestMode)
}

func TestGetEnvFallback(t *testing.T) {
	os.Unsetenv("SOME_MISSING_KEY")
	assert.Equal(t, "fallback", getEnv("SOME_MISSING_KEY", "fallback"))

	os.Setenv("SOME_PRESENT_KEY", "value")
	defer os.Unsetenv("SOME_PRESENT_KEY")
	assert.Equal(t, "value", getEnv("SOME_PRESENT_KEY", "value"))
}
