package model

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// DefaultAPIBaseURL is used when neither the config file, the environment,
// nor a flag selects a backend address.
const DefaultAPIBaseURL = "http://localhost:5000/api"

// APIConfig holds settings for reaching the dispatch backend.
type APIConfig struct {
	// BaseURL is the root URL of the dispatch REST API.
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`

	// TimeoutSec is the HTTP transport timeout in seconds.
	TimeoutSec int `mapstructure:"timeout_sec" yaml:"timeout_sec"`
}

// DisplayConfig holds UI/rendering preferences.
type DisplayConfig struct {
	Theme string `mapstructure:"theme" yaml:"theme"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	API     APIConfig     `mapstructure:"api" yaml:"api"`
	Display DisplayConfig `mapstructure:"display" yaml:"display"`

	// SessionDBPath is where the local session database lives.
	SessionDBPath string `mapstructure:"session_db_path" yaml:"session_db_path"`
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/crisis-dispatch/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "crisis-dispatch", "config.yaml")
}

// DefaultSessionDBPath returns the default path for the session database.
func DefaultSessionDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "session.db")
	}
	return filepath.Join(home, ".config", "crisis-dispatch", "session.db")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	return &AppConfig{
		API: APIConfig{
			BaseURL:    DefaultAPIBaseURL,
			TimeoutSec: 30,
		},
		Display: DisplayConfig{
			Theme: "default",
		},
		SessionDBPath: DefaultSessionDBPath(),
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// DISPATCH_API_URL overrides the configured base URL. If the file does not
// exist, it returns a default configuration.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Set defaults so missing keys resolve to sensible values.
	v.SetDefault("api.base_url", DefaultAPIBaseURL)
	v.SetDefault("api.timeout_sec", 30)
	v.SetDefault("display.theme", "default")
	v.SetDefault("session_db_path", DefaultSessionDBPath())

	// Environment override for the API address.
	_ = v.BindEnv("api.base_url", "DISPATCH_API_URL")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return unmarshalConfig(v, path)
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return unmarshalConfig(v, path)
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	return unmarshalConfig(v, path)
}

// unmarshalConfig decodes whatever viper currently holds (file values,
// env bindings, defaults) into an AppConfig.
func unmarshalConfig(v *viper.Viper, path string) (*AppConfig, error) {
	cfg := defaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("api", cfg.API)
	v.Set("display", cfg.Display)
	v.Set("session_db_path", cfg.SessionDBPath)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
