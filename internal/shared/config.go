package shared

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Account AccountConfig `toml:"account"`
	Broker  BrokerConfig  `toml:"broker"`
	Storage StorageConfig `toml:"storage"`
	Watch   WatchConfig   `toml:"watch"`
}

// AccountConfig contains the streaming account and API settings.
type AccountConfig struct {
	ClientID     string `toml:"client_id"`
	AuthURL      string `toml:"auth_url"`
	APIURL       string `toml:"api_url"`
	Scope        string `toml:"scope"`
	CallbackPort int    `toml:"callback_port"`
}

// RedirectURI returns the loopback redirect used for the authorization handshake.
func (a AccountConfig) RedirectURI() string {
	return fmt.Sprintf("http://127.0.0.1:%d/callback", a.CallbackPort)
}

// BrokerConfig contains settings for the remote token broker that holds the client secret.
type BrokerConfig struct {
	TokenURL string `toml:"token_url"`
	AuthKey  string `toml:"auth_key"`
}

// StorageConfig contains local persistence paths.
type StorageConfig struct {
	DatabasePath    string `toml:"database_path"`
	CredentialsPath string `toml:"credentials_path"`
}

// WatchConfig contains polling loop timing settings.
type WatchConfig struct {
	RequestIntervalSeconds int `toml:"request_interval_seconds"`
	DelayCompensationMS    int `toml:"delay_compensation_ms"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMissingConfig, err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
