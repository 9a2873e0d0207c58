package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

var configEnvKeys = []string{
	"PORT", "CLIENT_DIR", "MONDAY_API_KEY", "MONDAY_API_URL", "MONDAY_API_VERSION",
	"MONDAY_SIGNING_SECRET", "SLACK_WEBHOOK_URL", "PROGRESS_POLICY", "STATUS_WEIGHTS_FILE",
	"HTTP_TIMEOUT_SECONDS",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configEnvKeys {
		t.Setenv(key, "")
	}
}

func writeWeights(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "weights.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write weights: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
		check   func(*testing.T, *Config)
	}{
		{
			name: "defaults",
			env: map[string]string{
				"MONDAY_API_KEY":    "tok",
				"SLACK_WEBHOOK_URL": "https://hooks.slack.com/services/T/B/X",
			},
			check: func(t *testing.T, cfg *Config) {
				if cfg.Port != 8033 {
					t.Errorf("Port = %d, want 8033", cfg.Port)
				}
				if cfg.ClientDir != "client" {
					t.Errorf("ClientDir = %s, want client", cfg.ClientDir)
				}
				if cfg.MondayAPIURL != "https://api.monday.com/v2" {
					t.Errorf("MondayAPIURL = %s", cfg.MondayAPIURL)
				}
				if cfg.MondayAPIVersion != "2024-10" {
					t.Errorf("MondayAPIVersion = %s", cfg.MondayAPIVersion)
				}
				if cfg.ProgressPolicy != "color-label" {
					t.Errorf("ProgressPolicy = %s", cfg.ProgressPolicy)
				}
				if cfg.HTTPTimeout != 20*time.Second {
					t.Errorf("HTTPTimeout = %v", cfg.HTTPTimeout)
				}
				if cfg.SignatureVerificationEnabled() {
					t.Error("signature verification should be disabled without a secret")
				}
			},
		},
		{
			name: "all fields",
			env: map[string]string{
				"PORT":                  "9000",
				"CLIENT_DIR":            "/srv/client",
				"MONDAY_API_KEY":        `"quoted-token"`,
				"MONDAY_API_URL":        "http://localhost:9999/v2",
				"MONDAY_API_VERSION":    "2025-01",
				"MONDAY_SIGNING_SECRET": "  shh  ",
				"SLACK_WEBHOOK_URL":     "https://hooks.example.com/x",
				"PROGRESS_POLICY":       "Status-Weight",
				"HTTP_TIMEOUT_SECONDS":  "5",
			},
			check: func(t *testing.T, cfg *Config) {
				if cfg.Port != 9000 {
					t.Errorf("Port = %d, want 9000", cfg.Port)
				}
				if cfg.MondayAPIKey != "quoted-token" {
					t.Errorf("MondayAPIKey = %q", cfg.MondayAPIKey)
				}
				if cfg.MondaySigningSecret != "shh" || !cfg.SignatureVerificationEnabled() {
					t.Errorf("MondaySigningSecret = %q", cfg.MondaySigningSecret)
				}
				if cfg.ProgressPolicy != "status-weight" {
					t.Errorf("ProgressPolicy = %s", cfg.ProgressPolicy)
				}
				if cfg.HTTPTimeout != 5*time.Second {
					t.Errorf("HTTPTimeout = %v", cfg.HTTPTimeout)
				}
			},
		},
		{
			name:    "missing api key",
			env:     map[string]string{"SLACK_WEBHOOK_URL": "https://hooks.example.com/x"},
			wantErr: "MONDAY_API_KEY is required",
		},
		{
			name:    "missing webhook url",
			env:     map[string]string{"MONDAY_API_KEY": "tok"},
			wantErr: "SLACK_WEBHOOK_URL is required",
		},
		{
			name:    "webhook url not http",
			env:     map[string]string{"MONDAY_API_KEY": "tok", "SLACK_WEBHOOK_URL": "hooks.example.com"},
			wantErr: "must be an http(s) URL",
		},
		{
			name: "invalid policy",
			env: map[string]string{
				"MONDAY_API_KEY":    "tok",
				"SLACK_WEBHOOK_URL": "https://hooks.example.com/x",
				"PROGRESS_POLICY":   "median",
			},
			wantErr: "invalid PROGRESS_POLICY",
		},
		{
			name: "invalid port",
			env: map[string]string{
				"MONDAY_API_KEY":    "tok",
				"SLACK_WEBHOOK_URL": "https://hooks.example.com/x",
				"PORT":              "70000",
			},
			wantErr: "PORT must be between",
		},
		{
			name: "non positive timeout falls back to default",
			env: map[string]string{
				"MONDAY_API_KEY":       "tok",
				"SLACK_WEBHOOK_URL":    "https://hooks.example.com/x",
				"HTTP_TIMEOUT_SECONDS": "-5",
			},
			check: func(t *testing.T, cfg *Config) {
				if cfg.HTTPTimeout != 20*time.Second {
					t.Errorf("HTTPTimeout = %v, want 20s", cfg.HTTPTimeout)
				}
			},
		},
		{
			name: "non numeric port falls back to default",
			env: map[string]string{
				"MONDAY_API_KEY":    "tok",
				"SLACK_WEBHOOK_URL": "https://hooks.example.com/x",
				"PORT":              "abc",
			},
			check: func(t *testing.T, cfg *Config) {
				if cfg.Port != 8033 {
					t.Errorf("Port = %d, want 8033", cfg.Port)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := Load()
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("Load() error = %v, want %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Load() error: %v", err)
			}
			tt.check(t, cfg)
		})
	}
}

func TestValidate_DoesNotModifyConfig(t *testing.T) {
	cfg := &Config{
		Port:            8033,
		MondayAPIKey:    "tok",
		SlackWebhookURL: "https://hooks.example.com/x",
		ProgressPolicy:  "color-label",
	}
	if err := cfg.validate(); err != nil {
		t.Fatalf("validate() error: %v", err)
	}
	if cfg.HTTPTimeout != 0 {
		t.Errorf("HTTPTimeout = %v, validate should leave it unset", cfg.HTTPTimeout)
	}
}

func TestLoadBoardOnly(t *testing.T) {
	t.Run("chat webhook not required", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("MONDAY_API_KEY", "tok")

		cfg, err := LoadBoardOnly()
		if err != nil {
			t.Fatalf("LoadBoardOnly() error: %v", err)
		}
		if cfg.SlackWebhookURL != "" || cfg.MondayAPIKey != "tok" {
			t.Errorf("cfg = %+v", cfg)
		}
		if cfg.HTTPTimeout != 20*time.Second {
			t.Errorf("HTTPTimeout = %v", cfg.HTTPTimeout)
		}
	})

	t.Run("api key still required", func(t *testing.T) {
		clearEnv(t)
		_, err := LoadBoardOnly()
		if err == nil || !strings.Contains(err.Error(), "MONDAY_API_KEY is required") {
			t.Fatalf("LoadBoardOnly() error = %v", err)
		}
	})

	t.Run("policy still validated", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("MONDAY_API_KEY", "tok")
		t.Setenv("PROGRESS_POLICY", "median")
		_, err := LoadBoardOnly()
		if err == nil || !strings.Contains(err.Error(), "invalid PROGRESS_POLICY") {
			t.Fatalf("LoadBoardOnly() error = %v", err)
		}
	})
}

func TestLoad_StatusWeightsFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("MONDAY_API_KEY", "tok")
	t.Setenv("SLACK_WEBHOOK_URL", "https://hooks.example.com/x")
	t.Setenv("PROGRESS_POLICY", "status-weight")
	t.Setenv("STATUS_WEIGHTS_FILE", writeWeights(t, "Review: 80\nWorking On It: 40\n"))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.StatusWeights["Review"] != 80 || cfg.StatusWeights["Working On It"] != 40 {
		t.Errorf("StatusWeights = %v", cfg.StatusWeights)
	}
}

func TestLoadStatusWeights_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{name: "out of range", content: "Done: 120\n", wantErr: "between 0 and 100"},
		{name: "negative", content: "Stuck: -1\n", wantErr: "between 0 and 100"},
		{name: "not a map", content: "- Done\n", wantErr: "invalid status weights file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadStatusWeights(writeWeights(t, tt.content))
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("LoadStatusWeights() error = %v, want %q", err, tt.wantErr)
			}
		})
	}

	if _, err := LoadStatusWeights(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestNormalizeSecret(t *testing.T) {
	tests := map[string]string{
		"":           "",
		"  abc  ":    "abc",
		`"abc"`:      "abc",
		`'abc'`:      "abc",
		`"`:          `"`,
		`"mismatch'`: `"mismatch'`,
	}
	for in, want := range tests {
		if got := normalizeSecret(in); got != want {
			t.Errorf("normalizeSecret(%q) = %q, want %q", in, got, want)
		}
	}
}
