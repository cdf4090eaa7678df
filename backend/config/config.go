// ABOUTME: Configuration loader for the separator sizing service
// ABOUTME: Loads settings from environment variables (optionally a .env file) with defaults

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port               string
	ReportTTL          int      // seconds a classified batch stays downloadable (default 1800)
	CORSAllowedOrigins []string // allowed CORS origins (empty = block all cross-origin)
	MaxUploadMB        int      // largest accepted well table upload (default 10)

	// Rate Limiting
	RateLimitEnabled bool // Enable rate limiting (default: true)
	RateLimitUpload  int  // Requests per minute for classify uploads (default: 20)
	RateLimitDefault int  // Requests per minute for all other endpoints (default: 100)
}

// MaxUploadBytes returns the upload limit in bytes
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) << 20
}

// Load reads configuration from the environment. Variables from envFile are
// applied first without overriding values already set; a missing file is not
// an error. Pass "" to skip the file.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("loading %s: %w", envFile, err)
			}
		} else {
			slog.Debug("Loaded environment file", "path", envFile)
		}
	}

	cfg := &Config{
		Port:               getEnv("PORT", "8080"),
		ReportTTL:          parseEnv("REPORT_TTL", 1800, strconv.Atoi),
		CORSAllowedOrigins: splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
		MaxUploadMB:        parseEnv("MAX_UPLOAD_MB", 10, strconv.Atoi),

		RateLimitEnabled: parseEnv("RATE_LIMIT_ENABLED", true, strconv.ParseBool),
		RateLimitUpload:  parseEnv("RATE_LIMIT_UPLOAD", 20, strconv.Atoi),
		RateLimitDefault: parseEnv("RATE_LIMIT_DEFAULT", 100, strconv.Atoi),
	}

	if err := errors.Join(
		checkRange("REPORT_TTL", cfg.ReportTTL, 1, math.MaxInt32),
		checkRange("MAX_UPLOAD_MB", cfg.MaxUploadMB, 1, 512),
		checkRange("RATE_LIMIT_UPLOAD", cfg.RateLimitUpload, 1, 10000),
		checkRange("RATE_LIMIT_DEFAULT", cfg.RateLimitDefault, 1, 10000),
	); err != nil {
		return nil, err
	}

	return cfg, nil
}

func checkRange(key string, value, lo, hi int) error {
	if value < lo || value > hi {
		return fmt.Errorf("%s must be between %d and %d, got %d", key, lo, hi, value)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// parseEnv returns the parsed value of key, or fallback when the variable is
// unset or does not parse.
func parseEnv[T any](key string, fallback T, parse func(string) (T, error)) T {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := parse(raw)
	if err != nil {
		slog.Warn("Ignoring invalid environment value", "key", key, "value", raw)
		return fallback
	}
	return v
}

// splitList splits a comma separated value, dropping blanks
func splitList(value string) []string {
	if value == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
