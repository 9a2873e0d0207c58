package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the relay service
type Config struct {
	// Server settings
	Port      int
	ClientDir string

	// Board API settings
	MondayAPIKey     string
	MondayAPIURL     string
	MondayAPIVersion string

	// Signing secret used to verify automation requests (optional)
	MondaySigningSecret string

	// Chat notification settings
	SlackWebhookURL string

	// Progress settings
	ProgressPolicy    string // "color-label" or "status-weight"
	StatusWeightsFile string
	StatusWeights     map[string]int

	// Outbound HTTP timeout for the board API and the chat webhook
	HTTPTimeout time.Duration
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg, err := load()
	if err != nil {
		return nil, err
	}

	// Validate required fields
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadBoardOnly loads the configuration needed to read from the board API.
// The chat webhook settings are not required.
func LoadBoardOnly() (*Config, error) {
	cfg, err := load()
	if err != nil {
		return nil, err
	}
	if err := cfg.validateBoard(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func load() (*Config, error) {
	timeoutSeconds := getEnvInt("HTTP_TIMEOUT_SECONDS", 20)
	if timeoutSeconds <= 0 {
		timeoutSeconds = 20
	}

	cfg := &Config{
		Port:                getEnvInt("PORT", 8033),
		ClientDir:           getEnv("CLIENT_DIR", "client"),
		MondayAPIKey:        normalizeSecret(os.Getenv("MONDAY_API_KEY")),
		MondayAPIURL:        getEnv("MONDAY_API_URL", "https://api.monday.com/v2"),
		MondayAPIVersion:    getEnv("MONDAY_API_VERSION", "2024-10"),
		MondaySigningSecret: normalizeSecret(os.Getenv("MONDAY_SIGNING_SECRET")),
		SlackWebhookURL:     strings.TrimSpace(os.Getenv("SLACK_WEBHOOK_URL")),
		ProgressPolicy:      strings.ToLower(getEnv("PROGRESS_POLICY", "color-label")),
		StatusWeightsFile:   os.Getenv("STATUS_WEIGHTS_FILE"),
		HTTPTimeout:         time.Duration(timeoutSeconds) * time.Second,
	}

	if cfg.StatusWeightsFile != "" {
		weights, err := LoadStatusWeights(cfg.StatusWeightsFile)
		if err != nil {
			return nil, err
		}
		cfg.StatusWeights = weights
	}
	return cfg, nil
}

// LoadStatusWeights reads a YAML mapping of status text to weight, e.g.
//
//	Done: 100
//	Working On It: 50
//	Review: 80
func LoadStatusWeights(path string) (map[string]int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read status weights file: %w", err)
	}

	weights := map[string]int{}
	if err := yaml.Unmarshal(data, &weights); err != nil {
		return nil, fmt.Errorf("invalid status weights file %s: %w", path, err)
	}

	for status, weight := range weights {
		if weight < 0 || weight > 100 {
			return nil, fmt.Errorf("status weight for %q must be between 0 and 100, got %d", status, weight)
		}
	}
	return weights, nil
}

// normalizeSecret strips surrounding whitespace and quotes that often sneak
// into .env values.
func normalizeSecret(value string) string {
	trimmed := strings.TrimSpace(value)
	if len(trimmed) >= 2 {
		if (strings.HasPrefix(trimmed, "\"") && strings.HasSuffix(trimmed, "\"")) ||
			(strings.HasPrefix(trimmed, "'") && strings.HasSuffix(trimmed, "'")) {
			trimmed = trimmed[1 : len(trimmed)-1]
		}
	}
	return trimmed
}

// validate checks that all required configuration is present
func (c *Config) validate() error {
	if err := c.validateBoard(); err != nil {
		return err
	}
	if c.SlackWebhookURL == "" {
		return fmt.Errorf("SLACK_WEBHOOK_URL is required")
	}
	if !strings.HasPrefix(c.SlackWebhookURL, "http://") && !strings.HasPrefix(c.SlackWebhookURL, "https://") {
		return fmt.Errorf("SLACK_WEBHOOK_URL must be an http(s) URL")
	}
	return nil
}

// validateBoard checks the settings shared by the server and the CLI.
func (c *Config) validateBoard() error {
	if c.MondayAPIKey == "" {
		return fmt.Errorf("MONDAY_API_KEY is required")
	}

	switch c.ProgressPolicy {
	case "color-label":
		if len(c.StatusWeights) > 0 {
			log.Printf("Warning: STATUS_WEIGHTS_FILE is ignored by the color-label policy")
		}
	case "status-weight":
	default:
		return fmt.Errorf("invalid PROGRESS_POLICY: %s (must be 'color-label' or 'status-weight')", c.ProgressPolicy)
	}

	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535")
	}
	return nil
}

// SignatureVerificationEnabled reports whether incoming requests must be signed.
func (c *Config) SignatureVerificationEnabled() bool {
	return c.MondaySigningSecret != ""
}

// getEnv gets environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets environment variable as int with a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
