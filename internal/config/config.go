package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cleared-dev/revolut2camt/internal/model"
)

// FileName is the default config file name.
const FileName = "revolut2camt.yaml"

// Defaults for a Revolut Business account statemented for a Slovak bank.
const (
	DefaultCurrency       = "EUR"
	DefaultServicerBIC    = "REVOLT21"
	DefaultServicerName   = "Revolut Bank UAB"
	DefaultServicerCtry   = "LT"
	DefaultCodeIssuer     = "SBA"
	DefaultAdditionalInfo = "mesacny"
)

// Config represents the top-level revolut2camt.yaml configuration.
type Config struct {
	Account   AccountConfig   `yaml:"account"`
	Servicer  ServicerConfig  `yaml:"servicer"`
	Statement StatementConfig `yaml:"statement"`
}

// AccountConfig identifies the statemented account and its owner.
type AccountConfig struct {
	IBAN     string      `yaml:"iban" validate:"required,iban"`
	Currency string      `yaml:"currency" validate:"required,iso4217"`
	Owner    OwnerConfig `yaml:"owner"`
}

// OwnerConfig is the account owner as printed on the statement.
type OwnerConfig struct {
	Name    string   `yaml:"name" validate:"required"`
	Address []string `yaml:"address" validate:"len=2,dive,required"`
}

// ServicerConfig is the bank servicing the account.
type ServicerConfig struct {
	BIC     string `yaml:"bic" validate:"required,bic"`
	Name    string `yaml:"name" validate:"required"`
	Country string `yaml:"country" validate:"required,iso3166_1_alpha2"`
}

// StatementConfig controls statement level fields and policies.
type StatementConfig struct {
	CodeIssuer             string `yaml:"code_issuer" validate:"required"`
	AdditionalInfo         string `yaml:"additional_info"`
	AllowUnknownCategories bool   `yaml:"allow_unknown_categories"`
}

// Load reads a revolut2camt.yaml file from disk. Missing servicer and
// statement fields are filled with defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.applyDefaults()
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

// Default returns a Config with sensible defaults for a new account.
func Default(ownerName, iban string, address [2]string) *Config {
	cfg := &Config{
		Account: AccountConfig{
			IBAN: normalizeIBAN(iban),
			Owner: OwnerConfig{
				Name:    ownerName,
				Address: []string{address[0], address[1]},
			},
		},
	}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Account.Currency == "" {
		c.Account.Currency = DefaultCurrency
	}
	if c.Servicer.BIC == "" {
		c.Servicer.BIC = DefaultServicerBIC
	}
	if c.Servicer.Name == "" {
		c.Servicer.Name = DefaultServicerName
	}
	if c.Servicer.Country == "" {
		c.Servicer.Country = DefaultServicerCtry
	}
	if c.Statement.CodeIssuer == "" {
		c.Statement.CodeIssuer = DefaultCodeIssuer
	}
	if c.Statement.AdditionalInfo == "" {
		c.Statement.AdditionalInfo = DefaultAdditionalInfo
	}
}

// AccountConfig returns the immutable account record the converter consumes.
func (c *Config) AccountConfig() model.AccountConfig {
	var addr [2]string
	copy(addr[:], c.Account.Owner.Address)
	return model.AccountConfig{
		IBAN:         normalizeIBAN(c.Account.IBAN),
		Currency:     strings.ToUpper(c.Account.Currency),
		OwnerName:    c.Account.Owner.Name,
		OwnerAddress: addr,
		Servicer: model.Agent{
			BIC:     c.Servicer.BIC,
			Name:    c.Servicer.Name,
			Country: c.Servicer.Country,
		},
		CodeIssuer:             c.Statement.CodeIssuer,
		AdditionalInfo:         c.Statement.AdditionalInfo,
		AllowUnknownCategories: c.Statement.AllowUnknownCategories,
	}
}

// WithIBAN returns a copy of c for another account of the same owner.
func (c *Config) WithIBAN(iban string) *Config {
	out := *c
	out.Account.Owner.Address = append([]string(nil), c.Account.Owner.Address...)
	out.Account.IBAN = normalizeIBAN(iban)
	return &out
}

func normalizeIBAN(s string) string {
	return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), " ", ""))
}
