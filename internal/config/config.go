package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cleared-dev/plbank/internal/accounts"
)

// FileName is the default config file name.
const FileName = "plbank.yaml"

// Config represents the top-level plbank.yaml configuration.
type Config struct {
	Importers []ImporterConfig `yaml:"importers"`
	Log       LogConfig        `yaml:"log"`
}

// ImporterConfig binds export files to the account they belong to.
type ImporterConfig struct {
	Name     string   `yaml:"name"`
	Patterns []string `yaml:"patterns"` // regexps, all must match the file path
	Account  string   `yaml:"account"`
	Currency string   `yaml:"currency"`
}

// LogConfig controls CLI logging.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

var currencyPattern = regexp.MustCompile(`^[A-Z]{3}$`)

// Load reads a plbank.yaml file from disk.
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

// Default returns a Config with one mBank importer for account.
func Default(account string) *Config {
	return &Config{
		Importers: []ImporterConfig{
			{
				Name:     "mbank",
				Patterns: []string{`(?i)mbank.*\.csv$`},
				Account:  account,
				Currency: "PLN",
			},
		},
		Log: LogConfig{Level: "info"},
	}
}

// Validate checks every importer entry.
func (c *Config) Validate() error {
	if len(c.Importers) == 0 {
		return errors.New("no importers configured")
	}
	seen := make(map[string]bool, len(c.Importers))
	var errs []error
	for i, imp := range c.Importers {
		if err := imp.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("importer %d: %w", i, err))
			continue
		}
		key := strings.ToLower(imp.Name)
		if seen[key] {
			errs = append(errs, fmt.Errorf("importer %d: duplicate name %q", i, imp.Name))
		}
		seen[key] = true
	}
	return errors.Join(errs...)
}

// Validate checks a single importer entry.
func (ic ImporterConfig) Validate() error {
	if ic.Name == "" {
		return errors.New("missing name")
	}
	if len(ic.Patterns) == 0 {
		return fmt.Errorf("%s: no file patterns", ic.Name)
	}
	for _, p := range ic.Patterns {
		if _, err := regexp.Compile(p); err != nil {
			return fmt.Errorf("%s: pattern %q: %w", ic.Name, p, err)
		}
	}
	if err := accounts.Validate(ic.Account); err != nil {
		return fmt.Errorf("%s: %w", ic.Name, err)
	}
	if !currencyPattern.MatchString(ic.Currency) {
		return fmt.Errorf("%s: invalid currency %q", ic.Name, ic.Currency)
	}
	return nil
}

// Accounts returns the owning accounts of all importers.
func (c *Config) Accounts() []string {
	names := make([]string, 0, len(c.Importers))
	for _, imp := range c.Importers {
		names = append(names, imp.Account)
	}
	return names
}
