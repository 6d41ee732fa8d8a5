package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ukaji3/tablenorm-go/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server  ServerConfig
	Extract ExtractConfig
	Log     LogConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port            string
	AllowedOrigins  []string
	MaxUploadBytes  int64
	ShutdownTimeout time.Duration
}

// ExtractConfig holds table extraction settings
type ExtractConfig struct {
	// SpreadsheetEnabled is the spreadsheet engine capability flag
	SpreadsheetEnabled bool
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string
	Format string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server:  *loadServerConfig(),
		Extract: *loadExtractConfig(),
		Log:     *loadLogConfig(),
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadServerConfig() *ServerConfig {
	return &ServerConfig{
		Port:            getEnvOrDefault("PORT", "8000"),
		AllowedOrigins:  getEnvListOrDefault("CORS_ALLOWED_ORIGINS", []string{"http://localhost:4200"}),
		MaxUploadBytes:  getEnvInt64OrDefault("MAX_UPLOAD_BYTES", 50*1024*1024),
		ShutdownTimeout: getEnvDurationOrDefault("SHUTDOWN_TIMEOUT", 10*time.Second),
	}
}

func loadExtractConfig() *ExtractConfig {
	return &ExtractConfig{
		SpreadsheetEnabled: getEnvBoolOrDefault("SPREADSHEET_ENABLED", true),
	}
}

func loadLogConfig() *LogConfig {
	return &LogConfig{
		Level:  strings.ToUpper(getEnvOrDefault("LOG_LEVEL", "INFO")),
		Format: strings.ToLower(getEnvOrDefault("LOG_FORMAT", "text")),
	}
}

func validateConfig(config *Config) error {
	if _, err := strconv.Atoi(config.Server.Port); err != nil {
		return errors.ConfigInvalid("PORT must be numeric")
	}
	if config.Server.MaxUploadBytes <= 0 {
		return errors.ConfigInvalid("MAX_UPLOAD_BYTES must be positive")
	}
	switch config.Log.Level {
	case "ERROR", "WARN", "INFO", "DEBUG":
	default:
		return errors.ConfigInvalid("LOG_LEVEL must be one of ERROR, WARN, INFO, DEBUG")
	}
	switch config.Log.Format {
	case "text", "json":
	default:
		return errors.ConfigInvalid("LOG_FORMAT must be text or json")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvListOrDefault(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var list []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			list = append(list, item)
		}
	}
	if len(list) == 0 {
		return defaultValue
	}
	return list
}
