package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

type Config struct {
	// HTTP Server
	Port string

	// Database
	SQLiteDBPath string

	// AMQP
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Token rail backend: "memory" keeps balances in-process, "rail"
	// talks to an external transfer service.
	TokenBackend string
	TokenRailURL string

	// Logging
	LogLevel  string
	LogFormat string
}

func Load() *Config {
	cfg := &Config{
		Port:         getEnv("PORT", "8081"),
		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/splitsum.db"),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "splitsum"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "ledger_events"),

		TokenBackend: getEnv("TOKEN_BACKEND", "memory"),
		TokenRailURL: getEnv("TOKEN_RAIL_URL", ""),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),
	}

	return cfg
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.SQLiteDBPath == "" {
		errors = append(errors, "SQLite database path cannot be empty")
	} else {
		dir := filepath.Dir(c.SQLiteDBPath)
		if dir != "." && dir != "" {
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				if err := os.MkdirAll(dir, 0755); err != nil {
					errors = append(errors, fmt.Sprintf("cannot create SQLite database directory '%s': %v", dir, err))
				}
			}
		}
	}

	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errors = append(errors, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	switch c.TokenBackend {
	case "memory":
	case "rail":
		if c.TokenRailURL == "" {
			errors = append(errors, "token rail URL is required when using rail backend")
		} else if parsedURL, err := url.Parse(c.TokenRailURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid token rail URL '%s': %v", c.TokenRailURL, err))
		} else if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
			errors = append(errors, fmt.Sprintf("invalid token rail URL scheme '%s': must be 'http' or 'https'", parsedURL.Scheme))
		}
	default:
		errors = append(errors, fmt.Sprintf("invalid token backend '%s': must be one of [memory rail]", c.TokenBackend))
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of [debug info warn error]", c.LogLevel))
	}

	switch c.LogFormat {
	case "text", "json":
	default:
		errors = append(errors, fmt.Sprintf("invalid log format '%s': must be one of [text json]", c.LogFormat))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
