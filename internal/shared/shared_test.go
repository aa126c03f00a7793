package shared

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestLogger(t *testing.T) {
	t.Run("NewLogger defaults to stderr", func(t *testing.T) {
		logger := NewLogger(nil)
		if logger == nil {
			t.Fatal("expected logger to be created")
		}
	})

	t.Run("NewLogger writes to provided writer", func(t *testing.T) {
		buf := &bytes.Buffer{}
		logger := NewLogger(buf)
		logger.Info("hello")

		if !strings.Contains(buf.String(), "hello") {
			t.Errorf("expected log output to contain message, got %q", buf.String())
		}
	})

	t.Run("WithLogger attaches fields", func(t *testing.T) {
		buf := &bytes.Buffer{}
		logger := WithLogger(NewLogger(buf), "component", "watch")
		logger.Info("tick")

		if !strings.Contains(buf.String(), "watch") {
			t.Errorf("expected log output to contain field value, got %q", buf.String())
		}
	})

	t.Run("SetLogLevel suppresses lower levels", func(t *testing.T) {
		buf := &bytes.Buffer{}
		logger := NewLogger(buf)
		SetLogLevel(logger, log.ErrorLevel)
		logger.Info("quiet")

		if strings.Contains(buf.String(), "quiet") {
			t.Errorf("expected info log to be suppressed, got %q", buf.String())
		}
	})
}

func TestGenerateState(t *testing.T) {
	a := GenerateState()
	b := GenerateState()

	if a == "" || b == "" {
		t.Fatal("expected non-empty state")
	}
	if a == b {
		t.Error("expected states to be unique")
	}
}

func TestOpenBrowser(t *testing.T) {
	t.Run("unsupported platform", func(t *testing.T) {
		original := getRuntime
		defer func() { getRuntime = original }()
		getRuntime = func() string { return "plan9" }

		if err := OpenBrowser("https://example.com"); err == nil {
			t.Error("expected error for unsupported platform")
		}
	})
}
