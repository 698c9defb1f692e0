package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// HTTP Server
	Port           string
	MaxUploadBytes int64

	// Database (report history)
	SQLiteDBPath string

	// AMQP
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Advice API
	AnthropicAPIKey string
	AdviceModel     string
	AdviceBaseURL   string
	AdviceCacheTTL  time.Duration
	AdviceCacheSize int

	// Anchor pins the reference "now" used by the trailing-window
	// aggregations, for reproducible demos against a fixed dataset.
	// Zero means wall-clock now (the normal production behavior);
	// requests may still override it per upload.
	Anchor time.Time
}

const anchorLayout = "2006-01-02"

func Load() *Config {
	cfg := &Config{
		Port:           getEnv("PORT", "8081"),
		MaxUploadBytes: getEnvInt64("MAX_UPLOAD_BYTES", 10<<20),

		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/insight.db"),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "insight"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "report_events"),

		AnthropicAPIKey: getEnv("ANTHROPIC_API_KEY", ""),
		AdviceModel:     getEnv("ADVICE_MODEL", ""),
		AdviceBaseURL:   getEnv("ADVICE_BASE_URL", ""),
		AdviceCacheTTL:  getEnvDuration("ADVICE_CACHE_TTL", 15*time.Minute),
		AdviceCacheSize: getEnvInt("ADVICE_CACHE_SIZE", 100),
	}

	if v := os.Getenv("ANCHOR_DATE"); v != "" {
		if t, err := time.Parse(anchorLayout, v); err == nil {
			cfg.Anchor = t
		}
	}

	return cfg
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	// Validate port
	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.MaxUploadBytes < 1 {
		errors = append(errors, fmt.Sprintf("invalid max upload size %d: must be at least 1 byte", c.MaxUploadBytes))
	}

	// Validate SQLite path: the directory must exist or be creatable
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

	// Validate AMQP URL if provided
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

	if c.AdviceCacheTTL < time.Second {
		errors = append(errors, fmt.Sprintf("invalid advice cache TTL %v: must be at least 1 second", c.AdviceCacheTTL))
	}
	if c.AdviceCacheSize < 1 {
		errors = append(errors, fmt.Sprintf("invalid advice cache size %d: must be at least 1", c.AdviceCacheSize))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

// AdviceEnabled reports whether the advice endpoint can reach a model.
func (c *Config) AdviceEnabled() bool {
	return c.AnthropicAPIKey != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.ParseInt(value, 10, 64); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
