package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/yunhang/cloudnav/internal/models"
)

type ServerConfig struct {
	URL     string `yaml:"url"`
	Enabled bool   `yaml:"enabled"`
}

type WebDAVConfig struct {
	URL      string `yaml:"url"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

type AIConfig struct {
	Provider string `yaml:"provider"`
	Model    string `yaml:"model"`
	APIKey   string `yaml:"api_key"`
}

type Config struct {
	CachePath string       `yaml:"cache_path"`
	Theme     string       `yaml:"theme"`
	Language  string       `yaml:"language"`
	Server    ServerConfig `yaml:"server"`
	WebDAV    WebDAVConfig `yaml:"webdav"`
	AI        AIConfig     `yaml:"ai"`
}

func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.yml"
	}
	return filepath.Join(home, ".cloudnav", "config.yml")
}

func DefaultCachePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "cloudnav.db"
	}
	return filepath.Join(home, ".cloudnav", "cloudnav.db")
}

func ConfigExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

func Load(path string) (*Config, error) {
	cfg := &Config{
		CachePath: DefaultCachePath(),
		Theme:     models.DefaultTheme,
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.CachePath == "" {
		cfg.CachePath = DefaultCachePath()
	}

	if cfg.CachePath[0] == '~' {
		home, _ := os.UserHomeDir()
		cfg.CachePath = filepath.Join(home, cfg.CachePath[1:])
	}

	return cfg, nil
}

func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// WebDAVModel converts the yaml section to the runtime record, or nil when
// no endpoint is configured.
func (c *Config) WebDAVModel() *models.WebDAVConfig {
	if c.WebDAV.URL == "" {
		return nil
	}
	return &models.WebDAVConfig{
		URL:      c.WebDAV.URL,
		Username: c.WebDAV.Username,
		Password: c.WebDAV.Password,
	}
}

// AIModel converts the yaml section to the runtime record, or nil when no
// provider is configured.
func (c *Config) AIModel() *models.AIConfig {
	if c.AI.Provider == "" {
		return nil
	}
	return &models.AIConfig{
		Provider: c.AI.Provider,
		Model:    c.AI.Model,
		APIKey:   c.AI.APIKey,
	}
}
