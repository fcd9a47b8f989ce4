package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/ledgerbook/ledgerbook/internal/model"
)

// FileName is the project configuration file at the repo root.
const FileName = "ledgerbook.yaml"

// EnvPrefix prefixes every environment override, e.g. LEDGERBOOK_CURRENCY.
const EnvPrefix = "LEDGERBOOK"

// Config represents the top-level ledgerbook.yaml configuration.
type Config struct {
	Business BusinessConfig `yaml:"business"`
	Books    BooksConfig    `yaml:"books"`
	Fiscal   FiscalConfig   `yaml:"fiscal"`
	Git      GitConfig      `yaml:"git"`
}

// BusinessConfig identifies the business entity.
type BusinessConfig struct {
	Name       string `yaml:"name" validate:"required"`
	EntityType string `yaml:"entity_type"`
}

// BooksConfig controls how amounts are shown and where opening balances are offset.
type BooksConfig struct {
	Currency              string `yaml:"currency" validate:"len=3"`
	DisplayFraction       int    `yaml:"display_fraction" validate:"min=0,max=4"`
	OpeningBalanceAccount string `yaml:"opening_balance_account" validate:"required"`
}

// FiscalConfig defines the fiscal year boundaries.
type FiscalConfig struct {
	YearStart string `yaml:"year_start"` // "MM-DD" format, e.g. "01-01"
}

// GitConfig controls git integration.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// envOverrides are read from the environment. Nil fields were not set.
type envOverrides struct {
	Currency        *string `envconfig:"CURRENCY"`
	DisplayFraction *int    `envconfig:"DISPLAY_FRACTION"`
	AutoCommit      *bool   `envconfig:"AUTO_COMMIT"`
	AuthorName      *string `envconfig:"AUTHOR_NAME"`
	AuthorEmail     *string `envconfig:"AUTHOR_EMAIL"`
}

// Path returns the location of ledgerbook.yaml under a repo root.
func Path(repoRoot string) string {
	return filepath.Join(repoRoot, FileName)
}

// Load reads a ledgerbook.yaml file from disk, applies environment
// overrides and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := model.Validate(cfg); err != nil {
		return nil, fmt.Errorf("checking config: %w", err)
	}
	return &cfg, nil
}

// ApplyEnv overwrites fields with any LEDGERBOOK_* variables that are set.
func (c *Config) ApplyEnv() error {
	var env envOverrides
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return fmt.Errorf("reading environment: %w", err)
	}
	if env.Currency != nil {
		c.Books.Currency = strings.ToUpper(*env.Currency)
	}
	if env.DisplayFraction != nil {
		c.Books.DisplayFraction = *env.DisplayFraction
	}
	if env.AutoCommit != nil {
		c.Git.AutoCommit = *env.AutoCommit
	}
	if env.AuthorName != nil {
		c.Git.AuthorName = *env.AuthorName
	}
	if env.AuthorEmail != nil {
		c.Git.AuthorEmail = *env.AuthorEmail
	}
	return nil
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

// Default returns a Config with sensible defaults for a new project.
func Default(businessName, entityType string) *Config {
	return &Config{
		Business: BusinessConfig{
			Name:       businessName,
			EntityType: entityType,
		},
		Books: BooksConfig{
			Currency:              "EGP",
			DisplayFraction:       0,
			OpeningBalanceAccount: "equity_opening",
		},
		Fiscal: FiscalConfig{
			YearStart: "01-01",
		},
		Git: GitConfig{
			AutoCommit:  true,
			AuthorName:  "Ledgerbook",
			AuthorEmail: "books@ledgerbook.local",
		},
	}
}

// YearRange returns the inclusive dates of the fiscal year containing now.
func (f FiscalConfig) YearRange(now time.Time) (from, to time.Time, err error) {
	start := f.YearStart
	if start == "" {
		start = "01-01"
	}
	md, err := time.Parse("01-02", start)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parsing fiscal year_start %q: %w", f.YearStart, err)
	}

	from = time.Date(now.Year(), md.Month(), md.Day(), 0, 0, 0, 0, time.UTC)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if today.Before(from) {
		from = from.AddDate(-1, 0, 0)
	}
	return from, from.AddDate(1, 0, -1), nil
}
