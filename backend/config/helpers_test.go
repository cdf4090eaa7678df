// ABOUTME: Test helpers for config tests
// ABOUTME: Isolates the configuration variables for a single test

package config

import (
	"os"
	"testing"
)

// configKeys lists every variable Load reads
var configKeys = []string{
	"PORT",
	"REPORT_TTL",
	"CORS_ALLOWED_ORIGINS",
	"MAX_UPLOAD_MB",
	"RATE_LIMIT_ENABLED",
	"RATE_LIMIT_UPLOAD",
	"RATE_LIMIT_DEFAULT",
}

// isolateEnv unsets every config variable, then applies vars. Originals are
// restored when the test ends, including values a .env file set meanwhile.
func isolateEnv(t *testing.T, vars map[string]string) {
	t.Helper()

	for _, key := range configKeys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	for key, value := range vars {
		t.Setenv(key, value)
	}
}
