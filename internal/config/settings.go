package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Settings holds the environment driven CLI configuration
type Settings struct {
	LogLevel   string `env:"CBACTL_LOG_LEVEL" envDefault:"info"`
	LogFormat  string `env:"CBACTL_LOG_FORMAT" envDefault:"text"`
	SchemaPath string `env:"CBACTL_SCHEMA"`
}

// LoadSettings reads Settings from the environment
func LoadSettings() (*Settings, error) {
	var s Settings
	if err := env.Parse(&s); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return &s, nil
}
