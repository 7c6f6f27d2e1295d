package testutil

import (
	"os"
	"testing"
)

// GetEnvOrSkip returns the environment variable key, or skips t if it is
// unset. Tests against PostgreSQL, Firestore, BigQuery and GitHub are gated
// this way.
func GetEnvOrSkip(t testing.TB, key string) string {
	t.Helper()
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		t.Skipf("%s is not set", key)
	}
	return value
}
