// Package config reads and writes the tally.yaml configuration file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tally-dev/tally/internal/bankformat"
)

// Config represents the top-level tally.yaml configuration.
type Config struct {
	Amazon  AmazonConfig   `yaml:"amazon"`
	Export  ExportConfig   `yaml:"export"`
	Formats []FormatConfig `yaml:"formats,omitempty"`
}

// AmazonConfig names the order-history CSV columns.
type AmazonConfig struct {
	DateColumn  string `yaml:"date_column"`
	TotalColumn string `yaml:"total_column"`
	ItemsColumn string `yaml:"items_column"`
}

// ExportConfig controls summary export defaults.
type ExportConfig struct {
	OutputFile string `yaml:"output_file"`
}

// FormatConfig is a user-registered bank format. Column values are header
// names, or zero-based indices for headerless files.
type FormatConfig struct {
	Name              string `yaml:"name"`
	DateColumn        string `yaml:"date_column"`
	DescriptionColumn string `yaml:"description_column"`
	AmountColumn      string `yaml:"amount_column,omitempty"`
	DebitColumn       string `yaml:"debit_column,omitempty"`
	CreditColumn      string `yaml:"credit_column,omitempty"`
	DateFormat        string `yaml:"date_format"`
	InvertAmounts     bool   `yaml:"invert_amounts,omitempty"`
	Headerless        bool   `yaml:"headerless,omitempty"`
	Description       string `yaml:"description,omitempty"`
}

// Load reads a tally.yaml file from disk.
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

// Default returns a Config with sensible defaults for a new data directory.
func Default() *Config {
	return &Config{
		Amazon: AmazonConfig{
			DateColumn:  "date",
			TotalColumn: "total",
			ItemsColumn: "items",
		},
		Export: ExportConfig{
			OutputFile: "transaction_summary.xlsx",
		},
	}
}

// RegisterFormats registers the user-defined formats into a registry.
// An invalid format is a fatal configuration error, caught here at
// registration time rather than at parse time.
func (c *Config) RegisterFormats(r *bankformat.Registry) error {
	for _, fc := range c.Formats {
		f := bankformat.Format{
			Name:        fc.Name,
			DateCol:     fc.DateColumn,
			DescCol:     fc.DescriptionColumn,
			AmountCol:   fc.AmountColumn,
			DebitCol:    fc.DebitColumn,
			CreditCol:   fc.CreditColumn,
			DateFormat:  fc.DateFormat,
			Invert:      fc.InvertAmounts,
			HasHeader:   !fc.Headerless,
			Description: fc.Description,
		}
		if f.DateFormat == "" {
			f.DateFormat = "01/02/2006"
		}
		if err := r.Register(f); err != nil {
			return fmt.Errorf("registering format %q: %w", fc.Name, err)
		}
	}
	return nil
}
