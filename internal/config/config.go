package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/actual-tools/intesa2actual/internal/actual"
)

// DefaultPath is where the CLI looks for a config file when --config is
// not given.
const DefaultPath = "intesa2actual.yaml"

// Config represents the top-level intesa2actual.yaml configuration.
// Precedence at runtime: defaults, then file, then environment, then flags.
type Config struct {
	// Account labels every converted transaction.
	Account string `yaml:"account"`
	// Delimiter forces the CSV cell separator: ",", ";" or "tab".
	// Empty means detect from the file.
	Delimiter string `yaml:"delimiter,omitempty"`
	// Strict aborts conversion on the first malformed row instead of
	// skipping and reporting.
	Strict bool `yaml:"strict"`
	// Listen is the web server bind address.
	Listen string `yaml:"listen"`
	// LogLevel sets zerolog's level: debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
}

// Load reads an intesa2actual.yaml file from disk.
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

// Default returns a Config with the stock converter behavior.
func Default() *Config {
	return &Config{
		Account:  actual.DefaultAccount,
		Listen:   ":8080",
		LogLevel: "info",
	}
}

// LoadEnv loads a .env file if present and applies INTESA2ACTUAL_*
// environment overrides to cfg.
func LoadEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("INTESA2ACTUAL_ACCOUNT"); v != "" {
		cfg.Account = v
	}
	if v := os.Getenv("INTESA2ACTUAL_DELIMITER"); v != "" {
		cfg.Delimiter = v
	}
	if v := os.Getenv("INTESA2ACTUAL_LISTEN"); v != "" {
		cfg.Listen = v
	}
	if v := os.Getenv("INTESA2ACTUAL_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
}

// ParseDelimiter converts a configured delimiter ("," ";" "tab" or "\t")
// to its rune. Empty input returns 0, meaning detect.
func ParseDelimiter(s string) (rune, error) {
	switch s {
	case "":
		return 0, nil
	case ",", ";":
		return rune(s[0]), nil
	case "\t", "tab":
		return '\t', nil
	default:
		return 0, fmt.Errorf("invalid delimiter %q: use \",\", \";\" or \"tab\"", s)
	}
}
