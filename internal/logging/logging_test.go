package logging

import (
	"testing"

	"mcpkg/internal/config"
)

func TestInitAcceptsDebugAndInfoLevels(t *testing.T) {
	if _, err := Init(config.LoggingConfig{Level: "debug"}); err != nil {
		t.Fatalf("init debug: %v", err)
	}
	if _, err := Init(config.LoggingConfig{Level: "info"}); err != nil {
		t.Fatalf("init info: %v", err)
	}
}

func TestNamedReturnsScopedLogger(t *testing.T) {
	if _, err := Init(config.LoggingConfig{Level: "info"}); err != nil {
		t.Fatalf("init: %v", err)
	}
	l := Named("download")
	if l == nil {
		t.Fatalf("expected non-nil logger")
	}
}
