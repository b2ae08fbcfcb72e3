// =============================================================================
// kf2ate - Configuration Module
// =============================================================================
//
// This module loads the optional YAML configuration file. Every setting has a
// default, so kf2ate runs without any configuration file at all.
//
// CONFIGURATION FILE (kf2ate.yaml):
//   input_encoding:   Shift_JIS   # encoding of the Kansei Hagaki II export
//   output_encoding:  Shift_JIS   # encoding of the ATE file written with -o
//   stdout_encoding:  UTF-8       # encoding used when -o is omitted
//   delimiter:        ","
//   use_crlf:         true        # \r\n line endings, as the importer expects
//   log_level:        info        # debug, info, warn, error
//   log_format:       logfmt      # logfmt, json
//   mapping_workbook: ""          # XLSX workbook overriding the mapping
//   field_overrides:              # source column -> ATE column ("" drops)
//     備考: 備考２
//   fixed_fields:                 # ATE column -> constant
//     印字区分: "1"
//
// =============================================================================

package config

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ginjaninja78/kf2ate/internal/mapping"
	"github.com/ginjaninja78/kf2ate/internal/textenc"
	"github.com/ginjaninja78/kf2ate/internal/types"
)

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the application configuration.
type Config struct {
	// =========================================================================
	// ENCODING SETTINGS
	// =========================================================================

	// InputEncoding is the character encoding of the source CSV.
	// Default: "Shift_JIS"
	InputEncoding string `yaml:"input_encoding"`

	// OutputEncoding is the character encoding of the destination CSV when
	// it is written to a file.
	// Default: "Shift_JIS"
	OutputEncoding string `yaml:"output_encoding"`

	// StdoutEncoding is used instead of OutputEncoding when the destination
	// is standard output.
	// Default: "UTF-8"
	StdoutEncoding string `yaml:"stdout_encoding"`

	// =========================================================================
	// CSV SETTINGS
	// =========================================================================

	// Delimiter separates fields in both the source and destination CSV.
	// Default: ","
	Delimiter string `yaml:"delimiter"`

	// UseCRLF ends destination lines with \r\n. Nil means unset.
	// Default: true
	UseCRLF *bool `yaml:"use_crlf"`

	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogLevel controls the verbosity of logging.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `yaml:"log_level"`

	// LogFormat selects the log line format: "logfmt" or "json".
	// Default: "logfmt"
	LogFormat string `yaml:"log_format"`

	// =========================================================================
	// MAPPING OVERRIDES
	// =========================================================================

	// MappingWorkbook is an optional XLSX workbook (see `kf2ate mapping
	// --xlsx`) whose mapping replaces the built-in one.
	MappingWorkbook string `yaml:"mapping_workbook"`

	// FieldOverrides remaps source columns. An empty value drops the column.
	// New source columns extend the allow-list.
	FieldOverrides map[string]string `yaml:"field_overrides"`

	// FixedFields sets constant destination values.
	FixedFields map[string]string `yaml:"fixed_fields"`
}

// CSVSettings contains the settings for one side of the conversion.
type CSVSettings struct {
	// Encoding is the character encoding name.
	Encoding string

	// Delimiter is the field separator.
	Delimiter rune

	// UseCRLF is only used when writing.
	UseCRLF bool
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// Default returns the configuration used when no file is given.
func Default() *Config {
	var c Config
	applyDefaults(&c)
	return &c
}

// Load reads the configuration from a YAML file. An empty path returns
// Default().
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&config)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// applyDefaults sets default values for any unset configuration options.
func applyDefaults(config *Config) {
	if config.InputEncoding == "" {
		config.InputEncoding = "Shift_JIS"
	}
	if config.OutputEncoding == "" {
		config.OutputEncoding = "Shift_JIS"
	}
	if config.StdoutEncoding == "" {
		config.StdoutEncoding = "UTF-8"
	}
	if config.Delimiter == "" {
		config.Delimiter = ","
	}
	if config.UseCRLF == nil {
		crlf := true
		config.UseCRLF = &crlf
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
	if config.LogFormat == "" {
		config.LogFormat = "logfmt"
	}
}

// Validate checks that every setting can be resolved.
func (c *Config) Validate() error {
	for _, enc := range []string{c.InputEncoding, c.OutputEncoding, c.StdoutEncoding} {
		if _, err := textenc.Lookup(enc); err != nil {
			return err
		}
	}

	if _, err := parseDelimiter(c.Delimiter); err != nil {
		return err
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log_level %q", c.LogLevel)
	}

	switch strings.ToLower(c.LogFormat) {
	case "logfmt", "json":
	default:
		return fmt.Errorf("unknown log_format %q", c.LogFormat)
	}

	return nil
}

// InputSettings returns the settings for reading the source CSV.
func (c *Config) InputSettings() CSVSettings {
	d, _ := parseDelimiter(c.Delimiter)
	return CSVSettings{Encoding: c.InputEncoding, Delimiter: d}
}

// OutputSettings returns the settings for writing the destination CSV.
func (c *Config) OutputSettings(toStdout bool) CSVSettings {
	d, _ := parseDelimiter(c.Delimiter)
	enc := c.OutputEncoding
	if toStdout {
		enc = c.StdoutEncoding
	}
	return CSVSettings{Encoding: enc, Delimiter: d, UseCRLF: c.UseCRLF != nil && *c.UseCRLF}
}

// Overrides converts FieldOverrides and FixedFields into mapping overrides.
// Keys are applied in sorted order so appended sources are deterministic.
func (c *Config) Overrides() mapping.Overrides {
	var o mapping.Overrides

	for _, source := range sortedKeys(c.FieldOverrides) {
		target := types.Drop()
		if col := c.FieldOverrides[source]; col != "" {
			target = types.To(col)
		}
		o.Fields = append(o.Fields, mapping.Entry{Source: source, Target: target})
	}

	for _, col := range sortedKeys(c.FixedFields) {
		o.Fixed = append(o.Fixed, types.FixedField{Column: col, Value: c.FixedFields[col]})
	}

	return o
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// parseDelimiter accepts a single character or one of the names tab, pipe
// and semicolon.
func parseDelimiter(s string) (rune, error) {
	switch s {
	case "\\t", "\t", "tab", "TAB":
		return '\t', nil
	case "pipe", "PIPE":
		return '|', nil
	case "semicolon":
		return ';', nil
	}
	r := []rune(s)
	if len(r) != 1 || r[0] == '"' || r[0] == '\r' || r[0] == '\n' {
		return 0, fmt.Errorf("invalid delimiter %q", s)
	}
	return r[0], nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
