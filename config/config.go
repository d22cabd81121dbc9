package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// AutomationConfig controls the browser pipeline. Everything here is read
// once at startup; the pipeline itself never mutates configuration.
type AutomationConfig struct {
	Engines           []string // tried in order until one launches
	Headless          bool
	TestMode          bool // disable submit controls on every page
	NavigationRetries int
	NavigationTimeout time.Duration
	ActionTimeout     time.Duration
	NetworkIdleWait   time.Duration
	SettleDelay       time.Duration
	FillRetries       int
	FillBackoff       time.Duration
	ViewportWidth     int
	ViewportHeight    int
	UserAgent         string
}

type AppConfig struct {
	Port        string
	Database    DatabaseConfig
	Automation  AutomationConfig
	GeminiKey   string
	GeminiModel string
	Environment string
}

func GetDatabaseConfig() DatabaseConfig {
	port, _ := strconv.Atoi(getEnv("DB_PORT", "5432"))
	password := getEnv("DB_PASSWORD", "")

	if password == "" {
		fmt.Println("Warning: DB_PASSWORD environment variable is not set.")
	}

	return DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     port,
		User:     getEnv("DB_USER", "postgres"),
		Password: password,
		DBName:   getEnv("DB_NAME", "instantapply"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}
}

func GetAutomationConfig() AutomationConfig {
	engines := strings.Split(getEnv("BROWSER_ENGINES", "chromium,firefox,webkit"), ",")
	for i := range engines {
		engines[i] = strings.TrimSpace(engines[i])
	}

	navRetries, _ := strconv.Atoi(getEnv("NAVIGATION_RETRIES", "3"))
	fillRetries, _ := strconv.Atoi(getEnv("FILL_RETRIES", "3"))

	return AutomationConfig{
		Engines:           engines,
		Headless:          getEnv("HEADLESS", "true") != "false",
		TestMode:          getEnv("TEST_MODE", "true") != "false",
		NavigationRetries: navRetries,
		NavigationTimeout: 45 * time.Second,
		ActionTimeout:     15 * time.Second,
		NetworkIdleWait:   10 * time.Second,
		SettleDelay:       2 * time.Second,
		FillRetries:       fillRetries,
		FillBackoff:       500 * time.Millisecond,
		ViewportWidth:     1280,
		ViewportHeight:    960,
		UserAgent:         getEnv("BROWSER_USER_AGENT", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"),
	}
}

func GetAppConfig() AppConfig {
	return AppConfig{
		Port:        getEnv("PORT", "8081"),
		Database:    GetDatabaseConfig(),
		Automation:  GetAutomationConfig(),
		GeminiKey:   getEnv("GEMINI_API_KEY", ""),
		GeminiModel: getEnv("GEMINI_MODEL", "gemini-1.5-pro"),
		Environment: getEnv("ENVIRONMENT", "development"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
