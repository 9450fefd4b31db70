package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Environment   string
	LoggingConfig LoggingConfig
	SearchConfig  SearchConfig
	SlackConfig   SlackConfig
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// SearchConfig holds the search site settings
type SearchConfig struct {
	BaseURL          string
	SearchEndpoint   string
	UserAgent        string
	Timeout          time.Duration
	BrowserCookies   bool   // merge site cookies from local browser profiles into the session
	TopNDeals        int    // number of flexible-date deals to show
	AirlineCodesFile string // empty means the compiled-in table
}

// SlackConfig holds incoming webhook configuration
type SlackConfig struct {
	Enabled    bool
	WebhookURL string
	Username   string
	Channel    string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load(".env")

	environment := getEnv("ENVIRONMENT", "development")

	loggingConfig := LoggingConfig{
		Level:  getEnv("LOG_LEVEL", "info"),
		Format: getEnv("LOG_FORMAT", "text"),
	}

	timeout, err := time.ParseDuration(getEnv("HTTP_TIMEOUT", "60s"))
	if err != nil || timeout <= 0 {
		timeout = 60 * time.Second
	}
	browserCookies, _ := strconv.ParseBool(getEnv("BROWSER_COOKIES", "false"))
	topNDeals, _ := strconv.Atoi(getEnv("TOP_N_DEALS", "5"))
	if topNDeals < 1 {
		topNDeals = 5
	}

	searchConfig := SearchConfig{
		BaseURL:          strings.TrimRight(getEnv("SU_BASE_URL", "https://www.studentuniverse.com"), "/"),
		SearchEndpoint:   getEnv("SU_SEARCH_ENDPOINT", "/wapi/flightsWapi/searchFlightsSpanned"),
		UserAgent:        getEnv("SU_USER_AGENT", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/53.0.2785.116 Safari/537.36"),
		Timeout:          timeout,
		BrowserCookies:   browserCookies,
		TopNDeals:        topNDeals,
		AirlineCodesFile: getEnv("AIRLINE_CODES_FILE", ""),
	}

	slackEnabled, _ := strconv.ParseBool(getEnv("SLACK_ENABLED", "false"))
	slackConfig := SlackConfig{
		Enabled:    slackEnabled,
		WebhookURL: getEnv("SLACK_WEBHOOK_URL", ""),
		Username:   getEnv("SLACK_USERNAME", "flightbot"),
		Channel:    getEnv("SLACK_CHANNEL", "#flights"),
	}

	return &Config{
		Environment:   environment,
		LoggingConfig: loggingConfig,
		SearchConfig:  searchConfig,
		SlackConfig:   slackConfig,
	}, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if len(strings.TrimSpace(value)) == 0 {
		return defaultValue
	}
	return strings.TrimSpace(value) // Trim whitespace before returning
}
