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
	Credentials CredentialsConfig `toml:"credentials"`
	Cache       CacheConfig       `toml:"cache"`
	Database    DatabaseConfig    `toml:"database"`
	Fetch       FetchConfig       `toml:"fetch"`
}

// CredentialsConfig contains the tokens required by the library API.
//
// DeveloperToken is the long-lived API token, MediaUserToken grants access
// to the user's library. Storefront selects the regional catalog.
type CredentialsConfig struct {
	DeveloperToken string `toml:"developer_token"`
	MediaUserToken string `toml:"media_user_token"`
	Storefront     string `toml:"storefront"`
}

// CacheConfig contains paths to the persisted cache files.
type CacheConfig struct {
	AlbumsPath     string `toml:"albums_path"`
	PlayCountsPath string `toml:"play_counts_path"`
}

// DatabaseConfig contains settings for the sqlite track-stats cache.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// FetchConfig contains paging and rate-limit settings for remote fetches.
type FetchConfig struct {
	BaseURL   string  `toml:"base_url"`
	PageSize  int     `toml:"page_size"`
	RateLimit float64 `toml:"rate_limit"` // track-listing requests per second
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
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

// SaveConfig writes the config back to path as TOML.
//
// Used by `setup auth` to persist captured tokens.
func SaveConfig(config *Config, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(config); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	return nil
}
