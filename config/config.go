package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rustyeddy/indichart/profile"
	"github.com/rustyeddy/indichart/table"
)

// Config describes one chart run: where the table comes from, how its
// columns map, which profile to draw and where the chart spec goes.
type Config struct {
	Source  SourceConfig  `json:"source" yaml:"source"`
	Mapping MappingConfig `json:"mapping" yaml:"mapping"`
	Profile ProfileConfig `json:"profile" yaml:"profile"`
	Output  OutputConfig  `json:"output" yaml:"output"`
	Log     LogConfig     `json:"log" yaml:"log"`
}

// SourceConfig locates the input table.
type SourceConfig struct {
	Path   string `json:"path" yaml:"path"`
	Format string `json:"format,omitempty" yaml:"format,omitempty"` // csv, xlsx, html, sqlite; empty guesses from the extension
	Table  string `json:"table,omitempty" yaml:"table,omitempty"`   // sheet, CSS class or SQL table
}

// Mapping variants.
const (
	MappingMain      = "main"
	MappingIndicator = "indicator"
	MappingHeader    = "header"
)

// MappingConfig picks the column layout of the input table.
type MappingConfig struct {
	Variant    string   `json:"variant" yaml:"variant"`
	Volume     *int     `json:"volume,omitempty" yaml:"volume,omitempty"`
	Indicators []string `json:"indicators,omitempty" yaml:"indicators,omitempty"` // defaults to the profile's fields
}

// ProfileConfig names the profile to draw. File adds profiles from YAML.
type ProfileConfig struct {
	Name string `json:"name" yaml:"name"`
	File string `json:"file,omitempty" yaml:"file,omitempty"`
}

// Output formats.
const (
	FormatJSON       = "json"
	FormatYAML       = "yaml"
	FormatHighcharts = "highcharts"
)

// OutputConfig says where the chart spec is written. An empty path is stdout.
type OutputConfig struct {
	Path   string `json:"path,omitempty" yaml:"path,omitempty"`
	Format string `json:"format" yaml:"format"`
}

type LogConfig struct {
	Level string `json:"level" yaml:"level"`
}

// LoadFromFile loads configuration from a file (YAML or JSON)
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}

	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid. It does not touch the
// filesystem.
func (c *Config) Validate() error {
	if c.Source.Path == "" {
		return fmt.Errorf("source.path is required")
	}
	format := c.SourceFormat()
	switch format {
	case table.FormatCSV, table.FormatXLSX, table.FormatHTML:
	case table.FormatSQLite:
		if c.Source.Table == "" {
			return fmt.Errorf("source.table is required for sqlite sources")
		}
	case "":
		return fmt.Errorf("source.format is required: cannot guess it from %q", c.Source.Path)
	default:
		return fmt.Errorf("unknown source.format %q", format)
	}

	switch c.Mapping.Variant {
	case MappingMain, MappingIndicator, MappingHeader:
	default:
		return fmt.Errorf("mapping.variant must be 'main', 'indicator' or 'header'")
	}
	if c.Mapping.Volume != nil && *c.Mapping.Volume < 0 {
		return fmt.Errorf("mapping.volume must not be negative")
	}

	if c.Profile.Name == "" {
		return fmt.Errorf("profile.name is required")
	}

	if err := c.ValidateOutput(); err != nil {
		return err
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be debug|info|warn|error")
	}
	return nil
}

// ValidateOutput checks the output section on its own, for runs whose
// source comes from elsewhere.
func (c *Config) ValidateOutput() error {
	switch c.Output.Format {
	case FormatJSON, FormatYAML, FormatHighcharts:
		return nil
	}
	return fmt.Errorf("output.format must be 'json', 'yaml' or 'highcharts'")
}

// SourceFormat is the configured format, or the one implied by the path.
func (c *Config) SourceFormat() string {
	if c.Source.Format != "" {
		return strings.ToLower(c.Source.Format)
	}
	return table.FormatOf(c.Source.Path)
}

// OpenSource builds the table source described by the source section.
func (c *Config) OpenSource() (table.Source, error) {
	return table.New(c.SourceFormat(), c.Source.Path, c.Source.Table)
}

// Registry returns the built-in profiles plus any from profile.file.
func (c *Config) Registry() (*profile.Registry, error) {
	r := profile.NewRegistry()
	if c.Profile.File != "" {
		if err := r.LoadFile(c.Profile.File); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// ColumnMapping resolves the mapping section for profile p. Every variant
// checks indicator fields against the source header; a field the header
// does not carry is left out, so the builder reports it as missing.
func (c *Config) ColumnMapping(src table.Source, p profile.Profile) (table.ColumnMapping, error) {
	fields := c.Mapping.Indicators
	if len(fields) == 0 {
		fields = p.Fields()
	}

	var m table.ColumnMapping
	switch c.Mapping.Variant {
	case MappingMain:
		m = table.MainMapping()
		if len(fields) > 0 {
			// the main table has no indicator columns at fixed positions
			header, err := src.Header()
			if err != nil {
				return table.ColumnMapping{}, err
			}
			m = table.HeaderMapping(header, m, fields...)
		}
	case MappingIndicator:
		header, err := src.Header()
		if err != nil {
			return table.ColumnMapping{}, err
		}
		m = table.IndicatorMapping(fields...).Confirm(header)
	case MappingHeader:
		header, err := src.Header()
		if err != nil {
			return table.ColumnMapping{}, err
		}
		m = table.HeaderMapping(header, table.IndicatorMapping(), fields...)
	default:
		return table.ColumnMapping{}, fmt.Errorf("unknown mapping variant %q", c.Mapping.Variant)
	}

	if c.Mapping.Volume != nil {
		m.Volume = *c.Mapping.Volume
	}
	return m, nil
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Source: SourceConfig{
			Path: "./indicators.csv",
		},
		Mapping: MappingConfig{
			Variant: MappingIndicator,
		},
		Profile: ProfileConfig{
			Name: "rsi_14",
		},
		Output: OutputConfig{
			Format: FormatJSON,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
