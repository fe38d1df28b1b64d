package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the top-level teller.yaml configuration.
type Config struct {
	Bank      BankConfig      `yaml:"bank"`
	Server    ServerConfig    `yaml:"server"`
	Logging   LoggingConfig   `yaml:"logging"`
	Statement StatementConfig `yaml:"statement"`
}

// BankConfig identifies the bank for rendered output.
type BankConfig struct {
	Name           string `yaml:"name"`
	CurrencySymbol string `yaml:"currency_symbol"`
}

// ServerConfig controls the HTTP front end.
type ServerConfig struct {
	Listen string `yaml:"listen"`
}

// LoggingConfig controls zerolog output.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json or console
}

// StatementConfig controls statement rendering.
type StatementConfig struct {
	// Transactions is how many recent ledger entries a statement includes.
	Transactions int `yaml:"transactions"`
}

// Load reads a teller.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Bank: BankConfig{
			Name:           "Teller Demo Bank",
			CurrencySymbol: "₹",
		},
		Server: ServerConfig{
			Listen: ":8085",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Statement: StatementConfig{
			Transactions: 5,
		},
	}
}
