package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the application's configuration. Secrets (MASTER_KEY,
// JWT_SECRET, OPENWEATHER_API_KEY) come from the environment, not the
// config file.
type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Database struct {
		Type string `yaml:"type"` // "postgres" or "sqlite"
		URL  string `yaml:"url"`  // postgres DSN
		Path string `yaml:"path"` // sqlite file path
	} `yaml:"database"`
	AppURL    string `yaml:"app_url"`
	Providers struct {
		TimeoutSeconds int    `yaml:"timeout_seconds"`
		OpenRouter     struct {
			Model string `yaml:"model"`
		} `yaml:"openrouter"`
		Groq struct {
			Model string `yaml:"model"`
		} `yaml:"groq"`
		Anthropic struct {
			Model string `yaml:"model"`
		} `yaml:"anthropic"`
	} `yaml:"providers"`
}

// LoadConfig reads configuration from the specified YAML file.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}

	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(config); err != nil {
		return nil, fmt.Errorf("failed to decode config file: %w", err)
	}

	if config.Server.Port == "" {
		config.Server.Port = ":8080"
	}
	if config.Database.Type == "" {
		config.Database.Type = "postgres"
	}

	return config, nil
}

// ProviderTimeout is the hard deadline for each outbound AI call.
func (c *Config) ProviderTimeout() time.Duration {
	if c.Providers.TimeoutSeconds <= 0 {
		return 15 * time.Second
	}
	return time.Duration(c.Providers.TimeoutSeconds) * time.Second
}

// WeatherAPIKey returns the OpenWeather key, empty when weather context
// is disabled.
func (c *Config) WeatherAPIKey() string {
	return os.Getenv("OPENWEATHER_API_KEY")
}
