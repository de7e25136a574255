package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/octobees/commtrack/api/internal/config"
)

func TestNewWithWriter(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := NewWithWriter(buf, config.LogConfig{Format: "logfmt", Level: "debug"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	logger.Debug("hello", "company", "Acme")
	if !strings.Contains(buf.String(), "company=Acme") {
		t.Fatalf("expected logfmt output, got %q", buf.String())
	}
}

func TestNewWithWriter_JSON(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := NewWithWriter(buf, config.LogConfig{Format: "json"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	logger.Info("ready")
	if !strings.HasPrefix(strings.TrimSpace(buf.String()), "{") {
		t.Fatalf("expected json output, got %q", buf.String())
	}
}

func TestNewWithWriter_Invalid(t *testing.T) {
	if _, err := NewWithWriter(&bytes.Buffer{}, config.LogConfig{Format: "xml"}); err == nil {
		t.Fatalf("expected error for unsupported format")
	}
	if _, err := NewWithWriter(&bytes.Buffer{}, config.LogConfig{Level: "loud"}); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}
