// Package config manages gitgud configuration.
// It loads a .gitgud.toml from the repository (or any parent), falls back to the
// user config directory, and finally to built-in defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

const (
	ConfigFile     = ".gitgud.toml"
	UserConfigDir  = "gitgud"
	UserConfigFile = "config.toml"

	ProviderOllama    = "ollama"
	ProviderHeuristic = "heuristic"

	DefaultOllamaEndpoint = "http://localhost:11434"
	DefaultOllamaModel    = "codellama:7b"
)

// Config represents the gitgud configuration
type Config struct {
	Provider string       `toml:"provider"`  // "ollama" or "heuristic"
	LogLevel string       `toml:"log_level"` // debug, info, warn, error
	Ollama   OllamaConfig `toml:"ollama"`
	Commit   CommitConfig `toml:"commit"`
	path     string       // file the config was loaded from, empty for defaults
}

// OllamaConfig configures the local model service
type OllamaConfig struct {
	Endpoint              string `toml:"endpoint"`
	Model                 string `toml:"model"`
	PingTimeoutSeconds   int    `toml:"ping_timeout_seconds"`
	RequestTimeoutSeconds int    `toml:"request_timeout_seconds"`
}

// CommitConfig configures commit message generation
type CommitConfig struct {
	MaxDiffChars     int `toml:"max_diff_chars"`
	LargeCommitFiles int `toml:"large_commit_files"` // Warn before committing more files than this
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Provider: ProviderOllama,
		LogLevel: "warn",
		Ollama: OllamaConfig{
			Endpoint:              DefaultOllamaEndpoint,
			Model:                 DefaultOllamaModel,
			PingTimeoutSeconds:   2,
			RequestTimeoutSeconds: 30,
		},
		Commit: CommitConfig{
			MaxDiffChars:     3000,
			LargeCommitFiles: 100,
		},
	}
}

// FindConfigFile finds .gitgud.toml by walking up from dir, then checks the
// user config directory. Returns an empty path if no file exists.
func FindConfigFile(dir string) string {
	for {
		candidate := filepath.Join(dir, ConfigFile)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	if userDir, err := os.UserConfigDir(); err == nil {
		candidate := filepath.Join(userDir, UserConfigDir, UserConfigFile)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return ""
}

// Load loads the configuration for the current directory.
// A missing config file is not an error; defaults are used.
func Load() (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if path := FindConfigFile(cwd); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile loads the configuration from an explicit path on top of the defaults
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	if err := toml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	c.path = path
	return nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("GITGUD_PROVIDER"); v != "" {
		c.Provider = v
	}
	if v := os.Getenv("GITGUD_OLLAMA_ENDPOINT"); v != "" {
		c.Ollama.Endpoint = v
	}
	if v := os.Getenv("GITGUD_OLLAMA_MODEL"); v != "" {
		c.Ollama.Model = v
	}
	if v := os.Getenv("GITGUD_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
}

// Validate checks the configuration for invalid values
func (c *Config) Validate() error {
	switch c.Provider {
	case ProviderOllama, ProviderHeuristic:
	default:
		return fmt.Errorf("unknown provider %q (expected %q or %q)", c.Provider, ProviderOllama, ProviderHeuristic)
	}
	if c.Ollama.Endpoint == "" {
		return fmt.Errorf("ollama endpoint must not be empty")
	}
	if c.Ollama.PingTimeoutSeconds <= 0 {
		return fmt.Errorf("ping_timeout_seconds must be > 0 (got %d)", c.Ollama.PingTimeoutSeconds)
	}
	if c.Ollama.RequestTimeoutSeconds <= 0 {
		return fmt.Errorf("request_timeout_seconds must be > 0 (got %d)", c.Ollama.RequestTimeoutSeconds)
	}
	if c.Commit.MaxDiffChars <= 0 {
		return fmt.Errorf("max_diff_chars must be > 0 (got %d)", c.Commit.MaxDiffChars)
	}
	return nil
}

// Save writes the configuration to path
func (c *Config) Save(path string) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return err
	}
	c.path = path
	return nil
}

// Path returns the file the configuration was loaded from, or "" for defaults
func (c *Config) Path() string {
	return c.path
}

// UseModel returns true if the model-backed provider is enabled
func (c *Config) UseModel() bool {
	return c.Provider == ProviderOllama
}

// PingTimeout returns the model service reachability check timeout
func (c *Config) PingTimeout() time.Duration {
	return time.Duration(c.Ollama.PingTimeoutSeconds) * time.Second
}

// RequestTimeout returns the model service generation timeout
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.Ollama.RequestTimeoutSeconds) * time.Second
}
