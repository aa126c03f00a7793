package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ohess/heartbroken/internal/shared"
	tu "github.com/ohess/heartbroken/internal/testing"
)

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}

			runner := NewRunner(RunnerOpts{
				Config: config,
				Logger: logger,
				Output: output,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
		})

		t.Run("with nil config uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Config: nil})

			if runner.config == nil {
				t.Error("expected default config to be set")
			}
		})

		t.Run("with nil output uses stdout", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: nil})

			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
		})

		t.Run("builds token manager and store from config", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if runner.tokens == nil {
				t.Error("expected token manager to be built")
			}
			if runner.store == nil {
				t.Error("expected dislike store to be built")
			}
		})
	})

	t.Run("reload", func(t *testing.T) {
		t.Run("replaces config from file", func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := shared.CreateConfigFile(path); err != nil {
				t.Fatal(err)
			}

			runner := NewRunner(RunnerOpts{})
			before := runner.config

			if err := runner.reload(path); err != nil {
				t.Fatalf("reload failed: %v", err)
			}
			if runner.config == before {
				t.Error("expected config to be replaced")
			}
		})

		t.Run("missing file fails", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if err := runner.reload(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
				t.Error("expected error for missing config file")
			}
		})
	})

	t.Run("writeJSON", func(t *testing.T) {
		t.Run("writes formatted JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			data := map[string]string{"key": "value"}
			err := runner.writeJSON(data, true)

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if !strings.Contains(result, `"key": "value"`) {
				t.Errorf("expected formatted JSON, got %s", result)
			}
			if !strings.HasSuffix(result, "\n") {
				t.Error("expected output to end with newline")
			}
		})

		t.Run("writes compact JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			data := map[string]string{"key": "value"}
			err := runner.writeJSON(data, false)

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			expected := `{"key":"value"}` + "\n"
			if result != expected {
				t.Errorf("expected %q, got %q", expected, result)
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			failing := &tu.FWriter{}
			runner := NewRunner(RunnerOpts{Output: failing})

			err := runner.writeJSON(map[string]string{"key": "value"}, false)

			if err == nil {
				t.Fatal("expected error from failing writer")
			}
			if !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})
	})

	t.Run("writePlain", func(t *testing.T) {
		t.Run("writes plain text successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			err := runner.writePlain("hello %s", "world")

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if result := output.String(); result != "hello world" {
				t.Errorf("expected 'hello world', got %q", result)
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			failing := &tu.FWriter{}
			runner := NewRunner(RunnerOpts{Output: failing})

			if err := runner.writePlain("test"); err == nil {
				t.Fatal("expected error from failing writer")
			}
		})
	})
}

func TestSetup(t *testing.T) {
	t.Run("initializes store from existing config", func(t *testing.T) {
		dir := t.TempDir()
		configPath := filepath.Join(dir, "config.toml")
		dbPath := filepath.Join(dir, "heartbroken.db")

		content := "[storage]\ndatabase_path = \"" + dbPath + "\"\n"
		if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}

		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{Output: output})

		cmd := setupCommand(runner)
		if err := cmd.Run(context.Background(), []string{"setup", "--config", configPath}); err != nil {
			t.Fatalf("setup failed: %v", err)
		}

		tu.AssertFileExists(t, dbPath)
		if !strings.Contains(output.String(), "Setup complete") {
			t.Errorf("expected completion message, got %q", output.String())
		}
	})
}

func TestDislikeCommand(t *testing.T) {
	t.Run("rejects unknown kind", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{Output: &bytes.Buffer{}})

		cmd := dislikeCommand(runner)
		err := cmd.Run(context.Background(), []string{"dislike", "playlist"})

		if err == nil {
			t.Fatal("expected error for unknown kind")
		}
		if !strings.Contains(err.Error(), "playlist") {
			t.Errorf("expected offending kind in error, got %v", err)
		}
	})

	t.Run("requires a kind", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{Output: &bytes.Buffer{}})

		cmd := undislikeCommand(runner)
		if err := cmd.Run(context.Background(), []string{"undislike"}); err == nil {
			t.Fatal("expected error for missing kind")
		}
	})
}

func TestStatus(t *testing.T) {
	t.Run("not connected", func(t *testing.T) {
		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{Output: output})
		runner.config.Storage.CredentialsPath = filepath.Join(t.TempDir(), "missing.json")

		cmd := statusCommand(runner)
		if err := cmd.Run(context.Background(), []string{"status"}); err != nil {
			t.Fatalf("status failed: %v", err)
		}

		if !strings.Contains(output.String(), "Not connected") {
			t.Errorf("expected not-connected message, got %q", output.String())
		}
	})

	t.Run("json output", func(t *testing.T) {
		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{Output: output})
		runner.config.Storage.CredentialsPath = filepath.Join(t.TempDir(), "missing.json")

		cmd := statusCommand(runner)
		if err := cmd.Run(context.Background(), []string{"status", "--json"}); err != nil {
			t.Fatalf("status failed: %v", err)
		}

		if !strings.Contains(output.String(), `"connected":false`) {
			t.Errorf("expected JSON report, got %q", output.String())
		}
	})
}
