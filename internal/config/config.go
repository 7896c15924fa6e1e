package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all service settings, populated from environment variables.
// A .env file in the working directory is loaded first if present.
type Config struct {
	MongoURI              string
	MongoDatabase         string
	LaunchesCollection    string
	UtilizationCollection string

	// LogSheetsDir is the directory of submitted log sheet workbooks.
	LogSheetsDir string
	// MasterLogPath is where the rendered master log workbook is written.
	// Defaults to "Master Log.xlsx" inside LogSheetsDir.
	MasterLogPath string

	// HTTPAddr enables the health/metrics endpoints when non-empty.
	HTTPAddr string

	LogLevel  string
	LogFormat string

	MongoTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// Load reads configuration from the environment, applying defaults where
// unset.
func Load() (*Config, error) {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	mongoTimeout, err := parseDuration("MONGO_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		MongoURI:              EnvOrDefault("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase:         EnvOrDefault("MONGO_DATABASE", "vgs"),
		LaunchesCollection:    EnvOrDefault("LAUNCHES_COLLECTION", "log_sheets"),
		UtilizationCollection: EnvOrDefault("AIRCRAFT_INFO_COLLECTION", "aircraft_info"),
		LogSheetsDir:          os.Getenv("LOG_SHEETS_DIR"),
		MasterLogPath:         os.Getenv("MASTER_LOG_PATH"),
		HTTPAddr:              os.Getenv("HTTP_ADDR"),
		LogLevel:              EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:             EnvOrDefault("LOG_FORMAT", "json"),
		MongoTimeout:          mongoTimeout,
		ShutdownTimeout:       shutdownTimeout,
	}

	if cfg.LogSheetsDir == "" {
		return nil, errors.New("LOG_SHEETS_DIR is required")
	}
	if cfg.MongoURI == "" {
		return nil, errors.New("MONGO_URI is required")
	}
	if cfg.MongoDatabase == "" {
		return nil, errors.New("MONGO_DATABASE is required")
	}
	if cfg.MasterLogPath == "" {
		cfg.MasterLogPath = filepath.Join(cfg.LogSheetsDir, "Master Log.xlsx")
	}

	return cfg, nil
}

// EnvOrDefault returns the value of the named environment variable, or
// fallback when unset or empty.
func EnvOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseDuration(key string, fallback time.Duration) (time.Duration, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return d, nil
}
