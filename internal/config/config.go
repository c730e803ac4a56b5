package config

import (
	"os"
	"path/filepath"

	"invoicegen/internal/logger"
)

type Config struct {
	// File locations
	DataDir        string
	TrackerFile    string
	ContactsFile   string
	OutputDir      string
	BusinessConfig string

	// Logging Configuration
	LogLevel      string
	LogFormat     string
	LogTimeFormat string
	LogOutput     string
}

// Load reads configuration from the environment, applying defaults
// that match the on-disk layout of a fresh checkout. Everything has a
// default; only the business details file must actually exist, and
// that is checked when it is read, not here.
func Load() (*Config, error) {
	dataDir := getEnv("INVOICE_DATA_DIR", "data")

	config := &Config{
		DataDir:        dataDir,
		TrackerFile:    getEnv("INVOICE_TRACKER_FILE", filepath.Join(dataDir, "invoice_tracker.json")),
		ContactsFile:   getEnv("INVOICE_CONTACTS_FILE", filepath.Join(dataDir, "business_contacts.json")),
		OutputDir:      getEnv("INVOICE_OUTPUT_DIR", "invoices"),
		BusinessConfig: getEnv("BUSINESS_CONFIG", filepath.Join("config", "business_details.json")),
		LogLevel:       getEnv("LOG_LEVEL", "warn"),
		LogFormat:      getEnv("LOG_FORMAT", "console"),
		LogTimeFormat:  getEnv("LOG_TIME_FORMAT", "2006-01-02T15:04:05Z07:00"),
		LogOutput:      getEnv("LOG_OUTPUT", "stderr"),
	}

	return config, nil
}

// GetLoggerConfig returns a logger configuration from the main config
func (c *Config) GetLoggerConfig() logger.LogConfig {
	return logger.LogConfig{
		Level:      c.LogLevel,
		Format:     c.LogFormat,
		TimeFormat: c.LogTimeFormat,
		Output:     c.LogOutput,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
