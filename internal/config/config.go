package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var DefaultConfigYAML []byte

type Config struct {
	User       User       `yaml:"user"`
	Generation Generation `yaml:"generation"`
	Output     Output     `yaml:"output"`
	Server     Server     `yaml:"server"`
	Import     Import     `yaml:"import"`
	Logging    Logging    `yaml:"logging"`
}

type User struct {
	ID    string `yaml:"id"`
	Email string `yaml:"email"`
}

type Generation struct {
	Provider    string `yaml:"provider"`
	Model       string `yaml:"model"`
	OllamaURL   string `yaml:"ollama_url"`
	OpenAIModel string `yaml:"openai_model"`
	APIKeyEnv   string `yaml:"api_key_env"`
	MaxTokens   int    `yaml:"max_tokens"`
}

type Output struct {
	DataDir string `yaml:"data_dir"`
}

type Server struct {
	Port int `yaml:"port"`
}

type Import struct {
	Workers int `yaml:"workers"`
}

type Logging struct {
	Level string `yaml:"level"`
}

// ConfigDir returns the XDG config directory for reeliq.
func ConfigDir() string {
	return filepath.Join(homeDir(), ".config", "reeliq")
}

// DataDir returns the XDG data directory for reeliq.
func DataDir() string {
	return filepath.Join(homeDir(), ".local", "share", "reeliq")
}

// ResolveConfigPath finds the config file following priority:
// explicit path > ~/.config/reeliq/config.yaml > ./config.yaml
func ResolveConfigPath(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file not found: %s", explicit)
		}
		return explicit, nil
	}

	xdgConfig := filepath.Join(ConfigDir(), "config.yaml")
	if _, err := os.Stat(xdgConfig); err == nil {
		return xdgConfig, nil
	}

	cwdConfig := "config.yaml"
	if _, err := os.Stat(cwdConfig); err == nil {
		return cwdConfig, nil
	}

	return "", fmt.Errorf(
		"no config file found; searched:\n  %s\n  ./config.yaml\n\nRun 'reeliq init' to create a default config",
		xdgConfig,
	)
}

// Load reads and parses a config YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return parse(data)
}

// parse parses YAML bytes into a Config, applying defaults.
func parse(data []byte) (*Config, error) {
	cfg := &Config{
		Generation: Generation{
			Provider:    "ollama",
			Model:       "qwen2.5:7b",
			OllamaURL:   "http://localhost:11434",
			OpenAIModel: "gpt-4o-mini",
			APIKeyEnv:   "OPENAI_API_KEY",
			MaxTokens:   1000,
		},
		Server:  Server{Port: 8000},
		Import:  Import{Workers: 4},
		Logging: Logging{Level: "INFO"},
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.Import.Workers < 1 {
		cfg.Import.Workers = 1
	}

	return cfg, nil
}

// InitialConfig returns the default config file with a fresh user id filled in.
func InitialConfig() ([]byte, string) {
	id := uuid.NewString()
	data := bytes.Replace(DefaultConfigYAML, []byte(`id: ""`), []byte(fmt.Sprintf("id: %q", id)), 1)
	return data, id
}

// UserID returns the configured user id. It fails when none is set.
func (c *Config) UserID() (string, error) {
	if c.User.ID == "" {
		return "", fmt.Errorf("no user id configured; run 'reeliq init' or set user.id")
	}
	return c.User.ID, nil
}

// GetDataDir returns the effective data directory from config or XDG default.
func (c *Config) GetDataDir() string {
	if c.Output.DataDir != "" {
		return c.Output.DataDir
	}
	return DataDir()
}

// DBPath returns the reel database location inside the data directory.
func (c *Config) DBPath() string {
	return filepath.Join(c.GetDataDir(), "reeliq.db")
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
