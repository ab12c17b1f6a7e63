package config

import (
	"os"
	"strings"
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		Store:     StoreConfig{Type: "bolt", Path: "models/artifacts.db"},
		Models:    ModelsConfig{Source: "store"},
		RateLimit: RateLimitConfig{PerIP: 100},
		Training:  TrainingConfig{Samples: 100, Workers: 2},
	}
}

func TestLoad(t *testing.T) {
	t.Run("loads with defaults when no env vars set", func(t *testing.T) {
		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		if cfg.Server.Port != "8080" {
			t.Errorf("Server.Port = %s, want 8080", cfg.Server.Port)
		}
		if cfg.Server.Environment != "development" {
			t.Errorf("Server.Environment = %s, want development", cfg.Server.Environment)
		}
		if cfg.Store.Type != "bolt" {
			t.Errorf("Store.Type = %s, want bolt", cfg.Store.Type)
		}
		if cfg.Store.Path != "models/artifacts.db" {
			t.Errorf("Store.Path = %s, want models/artifacts.db", cfg.Store.Path)
		}
		if cfg.Models.Source != "store" {
			t.Errorf("Models.Source = %s, want store", cfg.Models.Source)
		}
		if cfg.Models.RemoteTimeout != 5*time.Second {
			t.Errorf("Models.RemoteTimeout = %v, want 5s", cfg.Models.RemoteTimeout)
		}
		if cfg.RateLimit.PerIP != 100 {
			t.Errorf("RateLimit.PerIP = %d, want 100", cfg.RateLimit.PerIP)
		}
		if cfg.Training.Samples != 15000 {
			t.Errorf("Training.Samples = %d, want 15000", cfg.Training.Samples)
		}
		if cfg.Training.Seed != 42 {
			t.Errorf("Training.Seed = %d, want 42", cfg.Training.Seed)
		}
		if cfg.Training.RidgeLambda != 1.0 {
			t.Errorf("Training.RidgeLambda = %v, want 1.0", cfg.Training.RidgeLambda)
		}
		if cfg.Log.Level != "info" {
			t.Errorf("Log.Level = %s, want info", cfg.Log.Level)
		}
	})

	t.Run("loads custom values from environment variables", func(t *testing.T) {
		t.Setenv("SHAREBITE_SERVER_PORT", "9090")
		t.Setenv("SHAREBITE_SERVER_ENVIRONMENT", "production")
		t.Setenv("SHAREBITE_STORE_TYPE", "memory")
		t.Setenv("SHAREBITE_MODELS_SOURCE", "remote")
		t.Setenv("SHAREBITE_MODELS_REMOTE_URL", "http://models:9000")
		t.Setenv("SHAREBITE_MODELS_REMOTE_TIMEOUT", "2s")
		t.Setenv("SHAREBITE_RATELIMIT_PER_IP", "200")
		t.Setenv("SHAREBITE_TRAINING_SEED", "7")
		t.Setenv("SHAREBITE_LOG_JSON", "true")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		if cfg.Server.Port != "9090" {
			t.Errorf("Server.Port = %s, want 9090", cfg.Server.Port)
		}
		if cfg.Server.Environment != "production" {
			t.Errorf("Server.Environment = %s, want production", cfg.Server.Environment)
		}
		if cfg.Store.Type != "memory" {
			t.Errorf("Store.Type = %s, want memory", cfg.Store.Type)
		}
		if cfg.Models.Source != "remote" {
			t.Errorf("Models.Source = %s, want remote", cfg.Models.Source)
		}
		if cfg.Models.RemoteURL != "http://models:9000" {
			t.Errorf("Models.RemoteURL = %s, want http://models:9000", cfg.Models.RemoteURL)
		}
		if cfg.Models.RemoteTimeout != 2*time.Second {
			t.Errorf("Models.RemoteTimeout = %v, want 2s", cfg.Models.RemoteTimeout)
		}
		if cfg.RateLimit.PerIP != 200 {
			t.Errorf("RateLimit.PerIP = %d, want 200", cfg.RateLimit.PerIP)
		}
		if cfg.Training.Seed != 7 {
			t.Errorf("Training.Seed = %d, want 7", cfg.Training.Seed)
		}
		if !cfg.Log.JSON {
			t.Error("Log.JSON = false, want true")
		}
	})

	t.Run("fails validation when remote URL is missing", func(t *testing.T) {
		t.Setenv("SHAREBITE_MODELS_SOURCE", "remote")

		_, err := Load()
		if err == nil {
			t.Fatal("Load() error = nil, want error for missing remote URL")
		}
		if !strings.HasPrefix(err.Error(), "invalid configuration: remote URL is required") {
			t.Errorf("Load() error = %v, want 'remote URL is required'", err)
		}
	})

	t.Run("fails validation for invalid store type", func(t *testing.T) {
		t.Setenv("SHAREBITE_STORE_TYPE", "redis")

		_, err := Load()
		if err == nil {
			t.Error("Load() error = nil, want error for invalid store type")
		}
	})
}

func TestLoadEnvFile(t *testing.T) {
	chdirTemp := func(t *testing.T) {
		t.Helper()
		originalDir, _ := os.Getwd()
		t.Cleanup(func() { os.Chdir(originalDir) })
		if err := os.Chdir(t.TempDir()); err != nil {
			t.Fatalf("chdir: %v", err)
		}
	}

	t.Run("returns nil when .env file doesn't exist", func(t *testing.T) {
		chdirTemp(t)

		if err := loadEnvFile(); err != nil {
			t.Errorf("loadEnvFile() error = %v, want nil when file doesn't exist", err)
		}
	})

	t.Run("loads variables and skips comments", func(t *testing.T) {
		chdirTemp(t)

		envContent := `
# Comment line
TEST_VAR_1=value1

TEST_VAR_2=value2
# TEST_COMMENTED=should_not_load
`
		if err := os.WriteFile(".env", []byte(envContent), 0644); err != nil {
			t.Fatalf("Failed to create test .env file: %v", err)
		}
		os.Unsetenv("TEST_VAR_1")
		os.Unsetenv("TEST_VAR_2")
		os.Unsetenv("TEST_COMMENTED")
		defer os.Unsetenv("TEST_VAR_1")
		defer os.Unsetenv("TEST_VAR_2")

		if err := loadEnvFile(); err != nil {
			t.Fatalf("loadEnvFile() error = %v, want nil", err)
		}

		if os.Getenv("TEST_VAR_1") != "value1" {
			t.Errorf("TEST_VAR_1 = %s, want value1", os.Getenv("TEST_VAR_1"))
		}
		if os.Getenv("TEST_VAR_2") != "value2" {
			t.Errorf("TEST_VAR_2 = %s, want value2", os.Getenv("TEST_VAR_2"))
		}
		if os.Getenv("TEST_COMMENTED") != "" {
			t.Errorf("TEST_COMMENTED should not be loaded from comment")
		}
	})

	t.Run("doesn't override existing environment variables", func(t *testing.T) {
		chdirTemp(t)
		t.Setenv("TEST_OVERRIDE", "existing-value")

		if err := os.WriteFile(".env", []byte("TEST_OVERRIDE=new-value"), 0644); err != nil {
			t.Fatalf("Failed to create test .env file: %v", err)
		}

		if err := loadEnvFile(); err != nil {
			t.Fatalf("loadEnvFile() error = %v, want nil", err)
		}

		if os.Getenv("TEST_OVERRIDE") != "existing-value" {
			t.Errorf("TEST_OVERRIDE = %s, want existing-value (should not override)", os.Getenv("TEST_OVERRIDE"))
		}
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid bolt store", func(*Config) {}, false},
		{"valid memory store", func(c *Config) { c.Store = StoreConfig{Type: "memory"} }, false},
		{"invalid store type", func(c *Config) { c.Store.Type = "redis" }, true},
		{"bolt without path", func(c *Config) { c.Store.Path = "" }, true},
		{"remote with URL", func(c *Config) {
			c.Models = ModelsConfig{Source: "remote", RemoteURL: "http://models", RemoteRate: 10}
		}, false},
		{"remote without URL", func(c *Config) { c.Models.Source = "remote" }, true},
		{"remote with zero rate", func(c *Config) {
			c.Models = ModelsConfig{Source: "remote", RemoteURL: "http://models"}
		}, true},
		{"unknown model source", func(c *Config) { c.Models.Source = "s3" }, true},
		{"zero per-IP limit disables limiting", func(c *Config) { c.RateLimit.PerIP = 0 }, false},
		{"negative per-IP limit", func(c *Config) { c.RateLimit.PerIP = -1 }, true},
		{"zero samples", func(c *Config) { c.Training.Samples = 0 }, true},
		{"zero workers", func(c *Config) { c.Training.Workers = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := validate(cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
