package config

import (
	"testing"

	"mcpkg/internal/errkind"
)

func TestLoadWithoutConfigFileFails(t *testing.T) {
	// No default.yaml exists anywhere on viper's search path in a test
	// binary's working directory, so Load should fail cleanly with an IO
	// kind rather than panicking.
	_, err := Load("")
	if err == nil {
		t.Fatalf("expected an error with no config file present")
	}
	if !errkind.Is(err, errkind.IO) {
		t.Fatalf("expected errkind.IO, got %v", err)
	}
}

func TestLoadFromEnvUsesMCPKGEnv(t *testing.T) {
	t.Setenv("MCPKG_ENV", "staging")
	_, err := LoadFromEnv()
	// Still expected to fail: Load reads the default file before it looks
	// at the MCPKG_ENV overlay, and no config files are present in the test
	// environment, so this only checks that LoadFromEnv surfaces that error.
	if err == nil {
		t.Fatalf("expected an error with no config file present")
	}
}
