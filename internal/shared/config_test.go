package shared

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Account.AuthURL == "" {
			t.Error("expected default auth_url to be set")
		}
		if config.Account.CallbackPort != 8551 {
			t.Errorf("expected default callback port 8551, got %d", config.Account.CallbackPort)
		}
		if config.Watch.RequestIntervalSeconds != 1 {
			t.Errorf("expected default request interval 1, got %d", config.Watch.RequestIntervalSeconds)
		}
		if config.Watch.DelayCompensationMS != 500 {
			t.Errorf("expected default delay compensation 500, got %d", config.Watch.DelayCompensationMS)
		}
		if config.Storage.DatabasePath == "" {
			t.Error("expected default database path to be set")
		}
	})

	t.Run("RedirectURI", func(t *testing.T) {
		account := AccountConfig{CallbackPort: 8551}
		want := "http://127.0.0.1:8551/callback"
		if got := account.RedirectURI(); got != want {
			t.Errorf("expected %s, got %s", want, got)
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "config.toml")

		content := `
[account]
client_id = "abc123"
callback_port = 9000

[broker]
token_url = "https://broker.example.com/token"
auth_key = "secret"

[storage]
database_path = "test.db"
credentials_path = "auth.json"

[watch]
request_interval_seconds = 2
delay_compensation_ms = 250
`
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		config, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig failed: %v", err)
		}

		if config.Account.ClientID != "abc123" {
			t.Errorf("expected client_id abc123, got %s", config.Account.ClientID)
		}
		if config.Broker.TokenURL != "https://broker.example.com/token" {
			t.Errorf("unexpected token_url: %s", config.Broker.TokenURL)
		}
		if config.Watch.RequestIntervalSeconds != 2 {
			t.Errorf("expected request interval 2, got %d", config.Watch.RequestIntervalSeconds)
		}
	})

	t.Run("LoadConfig missing file", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
			t.Error("expected error for missing config file")
		}
	})

	t.Run("LoadConfig invalid toml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(path, []byte("not [valid"), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}
		if _, err := LoadConfig(path); err == nil {
			t.Error("expected error for invalid toml")
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")

		if err := CreateConfigFile(path); err != nil {
			t.Fatalf("CreateConfigFile failed: %v", err)
		}

		if _, err := os.Stat(path); err != nil {
			t.Errorf("expected config file to exist: %v", err)
		}

		if err := CreateConfigFile(path); err == nil {
			t.Error("expected error when config file already exists")
		}
	})
}
