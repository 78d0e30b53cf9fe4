package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"trasloco/internal/domain"
)

// DefaultConfigPath is used when neither --config nor TRASLOCO_CONFIG is set.
const DefaultConfigPath = "~/.config/trasloco/config.yaml"

// Vault is one migration unit in the config file: a source vault, the graph
// it migrates into, and the optional identifier subtree of dated entries.
type Vault struct {
	Source      string `yaml:"source"`
	Destination string `yaml:"destination"`
	JournalRoot string `yaml:"journal_root"`
}

// Config is the top-level trasloco configuration.
type Config struct {
	// Ledger overrides the default migration ledger location.
	Ledger string  `yaml:"ledger"`
	Vaults []Vault `yaml:"vaults"`
}

// Path returns the config file path from TRASLOCO_CONFIG, falling back to
// DefaultConfigPath. A .env file in the working directory is honored.
func Path() string {
	_ = godotenv.Load()
	if env := os.Getenv("TRASLOCO_CONFIG"); env != "" {
		return env
	}
	return DefaultConfigPath
}

// Load reads and validates the config file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(ExpandHome(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that every vault names a source and a destination.
func (c *Config) Validate() error {
	if len(c.Vaults) == 0 {
		return fmt.Errorf("config has no vaults")
	}
	for i, v := range c.Vaults {
		if strings.TrimSpace(v.Source) == "" {
			return fmt.Errorf("vault %d: source is required", i+1)
		}
		if strings.TrimSpace(v.Destination) == "" {
			return fmt.Errorf("vault %d: destination is required", i+1)
		}
	}
	return nil
}

// Bindings converts the configured vaults into domain bindings, expanding
// home-relative paths.
func (c *Config) Bindings() []domain.VaultBinding {
	bindings := make([]domain.VaultBinding, 0, len(c.Vaults))
	for _, v := range c.Vaults {
		bindings = append(bindings, domain.VaultBinding{
			SourceRoot:      ExpandHome(v.Source),
			DestinationRoot: ExpandHome(v.Destination),
			JournalRoot:     v.JournalRoot,
		})
	}
	return bindings
}

// LedgerPath returns the configured ledger location, expanded, or "" when
// the default should be used.
func (c *Config) LedgerPath() string {
	if c.Ledger == "" {
		return ""
	}
	return ExpandHome(c.Ledger)
}

// ExpandHome expands a leading ~ to the user's home directory.
func ExpandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}
