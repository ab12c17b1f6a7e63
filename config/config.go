package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Store     StoreConfig
	Models    ModelsConfig
	RateLimit RateLimitConfig
	Training  TrainingConfig
	Metrics   MetricsConfig
	Log       LogConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// StoreConfig holds model artifact store configuration
type StoreConfig struct {
	Type string `mapstructure:"type"` // "memory" or "bolt"
	Path string `mapstructure:"path"`
}

// ModelsConfig selects where the server loads predictors from
type ModelsConfig struct {
	Source        string        `mapstructure:"source"` // "store" or "remote"
	RemoteURL     string        `mapstructure:"remote_url"`
	RemoteRate    int           `mapstructure:"remote_rate"`
	RemoteTimeout time.Duration `mapstructure:"remote_timeout"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"` // requests per minute
}

// TrainingConfig holds corpus generation and fitting parameters
type TrainingConfig struct {
	Samples              int     `mapstructure:"samples"`
	Seed                 uint64  `mapstructure:"seed"`
	Workers              int     `mapstructure:"workers"`
	CorpusPath           string  `mapstructure:"corpus_path"`
	PostgresURL          string  `mapstructure:"postgres_url"`
	RidgeLambda          float64 `mapstructure:"ridge_lambda"`
	LogisticIterations   int     `mapstructure:"logistic_iterations"`
	LogisticLearningRate float64 `mapstructure:"logistic_learning_rate"`
}

// MetricsConfig holds OTLP export configuration
type MetricsConfig struct {
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`
}

// LogConfig holds logger configuration
type LogConfig struct {
	Level string `mapstructure:"level"`
	JSON  bool   `mapstructure:"json"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/sharebite/")

	// SHAREBITE_SERVER_PORT -> server.port
	v.SetEnvPrefix("SHAREBITE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Config file is optional
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// loadEnvFile loads .env from the working directory if present.
// Variables already set in the environment win.
func loadEnvFile() error {
	if _, err := os.Stat(".env"); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return godotenv.Load(".env")
}

// setDefaults sets default configuration values. Every key needs a default
// so AutomaticEnv can bind it during Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	v.SetDefault("store.type", "bolt")
	v.SetDefault("store.path", "models/artifacts.db")

	v.SetDefault("models.source", "store")
	v.SetDefault("models.remote_url", "")
	v.SetDefault("models.remote_rate", 20)
	v.SetDefault("models.remote_timeout", "5s")

	v.SetDefault("ratelimit.per_ip", 100)

	v.SetDefault("training.samples", 15000)
	v.SetDefault("training.seed", 42)
	v.SetDefault("training.workers", 4)
	v.SetDefault("training.corpus_path", "food_waste_dataset.csv")
	v.SetDefault("training.postgres_url", "")
	v.SetDefault("training.ridge_lambda", 1.0)
	v.SetDefault("training.logistic_iterations", 300)
	v.SetDefault("training.logistic_learning_rate", 0.1)

	v.SetDefault("metrics.otlp_endpoint", "")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Store.Type != "memory" && config.Store.Type != "bolt" {
		return fmt.Errorf("store type must be 'memory' or 'bolt', got: %s", config.Store.Type)
	}

	if config.Store.Type == "bolt" && config.Store.Path == "" {
		return fmt.Errorf("store path is required when store type is 'bolt'")
	}

	switch config.Models.Source {
	case "store":
	case "remote":
		if config.Models.RemoteURL == "" {
			return fmt.Errorf("remote URL is required when model source is 'remote' (set SHAREBITE_MODELS_REMOTE_URL)")
		}
		if config.Models.RemoteRate <= 0 {
			return fmt.Errorf("remote rate must be positive, got: %d", config.Models.RemoteRate)
		}
	default:
		return fmt.Errorf("model source must be 'store' or 'remote', got: %s", config.Models.Source)
	}

	if config.RateLimit.PerIP < 0 {
		return fmt.Errorf("per-IP rate limit must not be negative, got: %d", config.RateLimit.PerIP)
	}

	if config.Training.Samples <= 0 {
		return fmt.Errorf("training samples must be positive, got: %d", config.Training.Samples)
	}

	if config.Training.Workers <= 0 {
		return fmt.Errorf("training workers must be positive, got: %d", config.Training.Workers)
	}

	return nil
}
