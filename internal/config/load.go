package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g. TASKAPI_SERVER_PORT.
const EnvPrefix = "TASKAPI"

// Default values applied before files and environment are read.
const (
	DefaultPort            = 8080
	DefaultLogLevel        = "info"
	DefaultShutdownSeconds = 10
	DefaultMaxUploadBytes  = 32 << 20
	DefaultBackend         = "native"
	DefaultWorkers         = 1
	DefaultPdftotextPath   = "pdftotext"
)

// Load configuration from environment variables and optionally config files.
// Environment variables take precedence over values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("server.port", DefaultPort)
	v.SetDefault("server.log_level", DefaultLogLevel)
	v.SetDefault("server.shutdown_timeout_seconds", DefaultShutdownSeconds)
	v.SetDefault("upload.dir", "")
	v.SetDefault("upload.max_bytes", DefaultMaxUploadBytes)
	v.SetDefault("extraction.backend", DefaultBackend)
	v.SetDefault("extraction.workers", DefaultWorkers)
	v.SetDefault("extraction.pdftotext_path", DefaultPdftotextPath)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cfg against its struct tags.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}
