// Package config loads server settings from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the server settings.
type Config struct {
	// HTTP server
	Port string

	// Storage: "memory" or "sqlite"
	DBDriver string
	DBPath   string

	// Session tokens
	SessionSecret string
	SessionTTL    time.Duration

	// Ledger behavior
	StrictMembers bool

	LogLevel string

	// parseErrs lists variables that were set but could not be parsed.
	parseErrs []string
}

// Load reads an optional .env file (files listed in ENV_FILE, or ./.env)
// and then builds the config from the environment. Variables already set in
// the environment win over the file.
func Load() (*Config, error) {
	files := strings.FieldsFunc(os.Getenv("ENV_FILE"), func(r rune) bool { return r == ',' })
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load env file: %w", err)
	}
	return FromEnv(), nil
}

// FromEnv builds the config from the environment only.
// Unparseable values keep their defaults and are reported by Validate.
func FromEnv() *Config {
	c := &Config{
		Port:          getEnv("PORT", "8080"),
		DBDriver:      strings.ToLower(getEnv("DB_DRIVER", "memory")),
		DBPath:        getEnv("DB_PATH", ":memory:"),
		SessionSecret: getEnv("SESSION_SECRET", ""),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
	}
	c.SessionTTL = c.getEnvDuration("SESSION_TTL", 24*time.Hour)
	c.StrictMembers = c.getEnvBool("STRICT_MEMBERS", false)
	return c
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	problems := append([]string(nil), c.parseErrs...)

	if port, err := strconv.Atoi(c.Port); err != nil {
		problems = append(problems, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	switch c.DBDriver {
	case "memory", "sqlite":
	default:
		problems = append(problems, fmt.Sprintf("invalid DB_DRIVER '%s': must be memory or sqlite", c.DBDriver))
	}

	if c.SessionTTL <= 0 {
		problems = append(problems, fmt.Sprintf("invalid SESSION_TTL %s: must be positive", c.SessionTTL))
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(problems, "; "))
	}
	return nil
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return ":" + c.Port
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func (c *Config) getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		c.parseErrs = append(c.parseErrs, fmt.Sprintf("invalid %s '%s': must be a duration such as 24h", key, value))
		return fallback
	}
	return d
}

func (c *Config) getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		c.parseErrs = append(c.parseErrs, fmt.Sprintf("invalid %s '%s': must be true or false", key, value))
		return fallback
	}
	return b
}
