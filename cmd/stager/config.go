package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// =============================================================================
// Config Types
// =============================================================================

// Config holds all stager configuration.
type Config struct {
	Manifest ManifestConfig `mapstructure:"manifest"`
	Output   OutputConfig   `mapstructure:"output"`
	AWS      AWSConfig      `mapstructure:"aws"`
	Log      LogConfig      `mapstructure:"log"`
}

// ManifestConfig holds the manifest location and selection defaults.
type ManifestConfig struct {
	Path  string `mapstructure:"path"`
	App   string `mapstructure:"app"`
	Stage string `mapstructure:"stage"`
}

// OutputConfig holds plan artifact destinations.
type OutputConfig struct {
	// Dir is the directory plan.json and the supervision trees are
	// written under.
	Dir string `mapstructure:"dir"`

	// EnvFile is an optional overlay file; when set, the resolved
	// environment is appended to it after every plan.
	EnvFile string `mapstructure:"env_file"`
}

// AWSConfig holds cluster API client configuration. All fields are optional;
// empty values defer to the SDK's default credential and region chain.
type AWSConfig struct {
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// =============================================================================
// Config Loading
// =============================================================================

// LoadConfig loads configuration from file and environment.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("manifest.path", "stager.yaml")
	v.SetDefault("manifest.app", "")
	v.SetDefault("manifest.stage", "")
	v.SetDefault("output.dir", "deploy")
	v.SetDefault("output.env_file", "")
	v.SetDefault("aws.region", "")
	v.SetDefault("aws.access_key_id", "")
	v.SetDefault("aws.secret_access_key", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	// Load from file if provided
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			// Only return error if file was explicitly specified and is invalid
			if _, ok := err.(viper.ConfigParseError); ok {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
			// File not found is OK, we'll use defaults
		}
	}

	// Enable environment variable overrides
	v.SetEnvPrefix("STAGER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Unmarshal config
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// =============================================================================
// Logger Setup
// =============================================================================

// SetupLogger creates a logger with the configured level and format. Logs go
// to stderr so stdout stays reserved for command output.
func SetupLogger(cfg *Config) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.Log.Level) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var handler slog.Handler
	if strings.ToLower(cfg.Log.Format) == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	return slog.New(handler)
}
