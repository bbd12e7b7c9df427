package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the full on-disk configuration.
type Config struct {
	API     APIConfig     `yaml:"api"`
	Server  ServerConfig  `yaml:"server"`
	History HistoryConfig `yaml:"history"`
	Log     LogConfig     `yaml:"log"`
}

// APIConfig is the snapshot handed to the gateway for one run. Callers
// receive it by value, so editing the file never races an in-flight request.
type APIConfig struct {
	Key               string  `yaml:"key"`
	BaseURL           string  `yaml:"base_url"`
	Model             string  `yaml:"model"`
	RequestsPerSecond float64 `yaml:"requests_per_second"`
}

type ServerConfig struct {
	Addr          string  `yaml:"addr"`
	RatePerSecond float64 `yaml:"rate_per_second"`
	Burst         int     `yaml:"burst"`
}

type HistoryConfig struct {
	Path     string `yaml:"path"`
	Disabled bool   `yaml:"disabled"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: "https://openrouter.ai/api/v1",
			Model:   "openai/gpt-4o-mini",
		},
		Server: ServerConfig{
			Addr:          ":8080",
			RatePerSecond: 2,
			Burst:         5,
		},
		History: HistoryConfig{
			Path: defaultHistoryPath(),
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// DefaultPath is where the config file lives unless --config overrides it.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "polish.yaml"
	}
	return filepath.Join(home, ".config", "polish", "config.yaml")
}

func defaultHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "history.db"
	}
	return filepath.Join(home, ".local", "share", "polish", "history.db")
}

// Load reads the config file at path, falling back to defaults when the
// file does not exist, then applies environment overrides.
func Load(path string) (*Config, error) {
	cfg, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	cfg.applyEnvOverrides()
	return cfg, nil
}

// LoadFile reads defaults plus the file only, skipping environment
// overrides. Commands that rewrite the file use this so env-provided values
// never get baked into it.
func LoadFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	for _, key := range []string{"POLISH_API_KEY", "OPENROUTER_API_KEY", "OPENAI_API_KEY"} {
		if v := os.Getenv(key); v != "" {
			c.API.Key = v
			break
		}
	}
	if v := os.Getenv("POLISH_BASE_URL"); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv("POLISH_MODEL"); v != "" {
		c.API.Model = v
	}
	if v := os.Getenv("POLISH_HISTORY"); v != "" {
		c.History.Path = v
	}
}

// Save writes the config to path, creating parent directories as needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
