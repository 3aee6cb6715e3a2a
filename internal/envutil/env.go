// Package envutil provides small environment-variable lookup helpers shared
// across mcpkg's config and CLI layers.
package envutil

import (
	"os"
	"strconv"
)

// OrDefault returns the value of the environment variable identified by key
// or the provided fallback if the variable is unset or empty.
func OrDefault(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

// OrDefaultInt returns the integer value of the environment variable
// identified by key or the provided fallback if the variable is unset,
// empty, or cannot be parsed as an integer.
func OrDefaultInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

// OrDefaultBool returns the boolean value of the environment variable
// identified by key or the provided fallback if the variable is unset,
// empty, or cannot be parsed as a bool.
func OrDefaultBool(key string, fallback bool) bool {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

// TestOnlineEnabled reports whether MCPKG_TEST_ONLINE=1 is set, the switch
// network-dependent tests gate themselves on.
func TestOnlineEnabled() bool {
	return OrDefaultBool("MCPKG_TEST_ONLINE", false)
}

// DefaultMCVersion returns MC_VERSION if set, else the compiled-in default.
func DefaultMCVersion(compiledDefault string) string {
	return OrDefault("MC_VERSION", compiledDefault)
}
