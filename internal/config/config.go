// Package config loads persondir settings from a .env file and the
// environment.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config holds the client settings.
type Config struct {
	BaseURL     string
	SessionPath string
	Timeout     time.Duration
	LogLevel    string
}

// Defaults.
const (
	DefaultBaseURL  = "http://localhost:8080/"
	DefaultTimeout  = 30 * time.Second
	DefaultLogLevel = "warn"
)

// Load reads .env when present, then the environment. The result is not
// validated so that flags can still override it.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found, using environment variables")
	}

	return &Config{
		BaseURL:     getEnv("PERSONDIR_URL", DefaultBaseURL),
		SessionPath: getEnv("PERSONDIR_SESSION", defaultSessionPath()),
		Timeout:     getEnvAsDuration("PERSONDIR_TIMEOUT", DefaultTimeout),
		LogLevel:    getEnv("LOG_LEVEL", DefaultLogLevel),
	}
}

// Validate checks the settings.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("PERSONDIR_URL is required")
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return fmt.Errorf("PERSONDIR_URL %q must be an absolute URL", c.BaseURL)
	}
	if c.SessionPath == "" {
		return fmt.Errorf("PERSONDIR_SESSION is required")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("PERSONDIR_TIMEOUT must be positive")
	}
	return nil
}

func defaultSessionPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".persondir", "session.db")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Warn().Str("key", key).Dur("default", defaultValue).Msg("invalid duration, using default")
		return defaultValue
	}
	return value
}
