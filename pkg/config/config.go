package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the repoforge configuration
type Config struct {
	GitHub    GitHubConfig    `yaml:"github"`
	Templates TemplatesConfig `yaml:"templates"`
	Secrets   []SecretMapping `yaml:"secrets,omitempty"`
}

// GitHubConfig represents GitHub-specific configuration
type GitHubConfig struct {
	Organization string `yaml:"organization"`
	Token        string `yaml:"token,omitempty"`
}

// TemplatesConfig locates the local pipeline template files
type TemplatesConfig struct {
	Dir string `yaml:"dir"`
}

// SecretMapping declares one Actions secret and where its value comes from.
// Exactly one of FromEnv or Value should be set; new secret sources are
// additions to this list, not code edits.
type SecretMapping struct {
	Name    string `yaml:"name"`
	FromEnv string `yaml:"from_env,omitempty"`
	Value   string `yaml:"value,omitempty"`
}

// DefaultConfig returns the configuration written by `repoforge init`
func DefaultConfig() *Config {
	return &Config{
		Templates: TemplatesConfig{Dir: "."},
		Secrets: []SecretMapping{
			{Name: "SECRET_KEY", Value: "example_secret_value"},
		},
	}
}

// LoadConfig loads configuration from the default location
func LoadConfig() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	return LoadConfigFromPath(configPath)
}

// LoadConfigFromPath loads configuration from a specific path
func LoadConfigFromPath(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil // Return defaults if file doesn't exist
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if config.Templates.Dir == "" {
		config.Templates.Dir = "."
	}

	return &config, nil
}

// SaveConfig saves configuration to the default location
func (c *Config) SaveConfig() error {
	configPath, err := GetConfigPath()
	if err != nil {
		return err
	}

	return c.SaveConfigToPath(configPath)
}

// SaveConfigToPath saves configuration to a specific path
func (c *Config) SaveConfigToPath(path string) error {
	// Create config directory if it doesn't exist
	configDir := filepath.Dir(path)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GetConfigPath returns the default configuration file path
func GetConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(homeDir, ".repoforge", "config.yaml"), nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.GitHub.Organization == "" {
		return fmt.Errorf("GitHub organization is required")
	}

	for i, s := range c.Secrets {
		if s.Name == "" {
			return fmt.Errorf("secret %d: name is required", i+1)
		}
		if s.FromEnv != "" && s.Value != "" {
			return fmt.Errorf("secret %q: from_env and value are mutually exclusive", s.Name)
		}
	}

	return nil
}
