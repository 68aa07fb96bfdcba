package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const appName = "todo"

// Config represents the application configuration
type Config struct {
	DataFile      string `yaml:"data_file"`
	Capacity      int    `yaml:"capacity"`
	Durable       *bool  `yaml:"durable,omitempty"`
	Header        bool   `yaml:"header"`
	Theme         string `yaml:"theme"`
	MarkdownStyle string `yaml:"markdown_style"`
	LogFile       string `yaml:"log_file"`
}

// Default returns the built-in configuration.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// IsDurable reports whether saves go through a temp file and rename.
func (c *Config) IsDurable() bool {
	return c.Durable == nil || *c.Durable
}

// Load reads the config at path, or at the default location when path is
// empty. A missing file yields the defaults. TODO_FILE and TODO_THEME
// override the file.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			// no home directory: run on defaults
			c := Default()
			c.applyEnv()
			return c, nil
		}
		path = p
	}

	var c Config
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, &c); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	c.applyEnv()
	c.applyDefaults()
	return &c, nil
}

// Save writes the config to path, creating its directory.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// DefaultPath returns $XDG_CONFIG_HOME/todo/config.yaml, falling back to
// ~/.config/todo/config.yaml.
func DefaultPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.yaml"), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", appName, "config.yaml"), nil
}

// DefaultLogFile returns ~/.todo/logs/todo.log.
func DefaultLogFile() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, "."+appName, "logs", appName+".log")
}

func (c *Config) applyEnv() {
	if v := strings.TrimSpace(os.Getenv("TODO_FILE")); v != "" {
		c.DataFile = v
	}
	if v := strings.TrimSpace(os.Getenv("TODO_THEME")); v != "" {
		c.Theme = v
	}
}

// applyDefaults fills in missing configuration with defaults
func (c *Config) applyDefaults() {
	if c.DataFile == "" {
		c.DataFile = "./todo.bin"
	}
	if c.Capacity <= 0 {
		c.Capacity = 1024
	}
	if c.Theme == "" {
		c.Theme = "classic"
	}
	if c.MarkdownStyle == "" {
		c.MarkdownStyle = "auto"
	}
	if c.LogFile == "" {
		c.LogFile = DefaultLogFile()
	}
}
