// Package config provides configuration management.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"quotecalc/core/reference"
	"quotecalc/core/types"
	qerrors "quotecalc/internal/errors"
	"quotecalc/internal/logging"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version"`

	// Tables says where the reference tables are loaded from
	Tables TablesConfig `json:"tables"`

	// Quote contains quote defaults
	Quote QuoteConfig `json:"quote"`

	// Output contains output configuration
	Output OutputConfig `json:"output"`

	// Server contains HTTP server configuration
	Server ServerConfig `json:"server"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging"`
}

// TablesConfig locates the seven reference tables. When Workbook is set the
// tables are read from its sheets; otherwise from CSV files in Dir.
type TablesConfig struct {
	// Dir is the directory holding the CSV files
	Dir string `json:"dir"`

	// Workbook is an xlsx file with one sheet per table
	Workbook string `json:"workbook,omitempty"`

	// Files overrides CSV file names per table kind
	Files reference.Names `json:"files,omitempty"`

	// Sheets overrides workbook sheet names per table kind
	Sheets reference.Names `json:"sheets,omitempty"`
}

// QuoteConfig contains quote defaults
type QuoteConfig struct {
	// DefaultCurrency is used when a request names none
	DefaultCurrency types.CurrencyMode `json:"default_currency"`

	// IDPrefix prefixes generated quote ids
	IDPrefix string `json:"id_prefix"`

	// ApplyContingency charges the risk contingency on top of the total
	ApplyContingency bool `json:"apply_contingency"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	// DefaultFormat is the default output format
	DefaultFormat string `json:"default_format"`

	// ShowLineage prints formulas and factors under each cost line
	ShowLineage bool `json:"show_lineage"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	// Addr is the listen address
	Addr string `json:"addr"`

	// ReadTimeoutSeconds bounds reading a request
	ReadTimeoutSeconds int `json:"read_timeout_seconds"`

	// WriteTimeoutSeconds bounds writing a response
	WriteTimeoutSeconds int `json:"write_timeout_seconds"`
}

// ReadTimeout returns the read timeout as a duration
func (s ServerConfig) ReadTimeout() time.Duration {
	return time.Duration(s.ReadTimeoutSeconds) * time.Second
}

// WriteTimeout returns the write timeout as a duration
func (s ServerConfig) WriteTimeout() time.Duration {
	return time.Duration(s.WriteTimeoutSeconds) * time.Second
}

// Default returns a default configuration
func Default() *Config {
	return &Config{
		Version: "1.0",
		Tables: TablesConfig{
			Dir: ".",
		},
		Quote: QuoteConfig{
			DefaultCurrency: types.CurrencyUSD,
			IDPrefix:        "COT-",
		},
		Output: OutputConfig{
			DefaultFormat: "cli",
			ShowLineage:   false,
		},
		Server: ServerConfig{
			Addr:                ":8080",
			ReadTimeoutSeconds:  15,
			WriteTimeoutSeconds: 30,
		},
		Logging: logging.DefaultConfig(),
	}
}

// Load loads configuration from a file. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, qerrors.Config("cannot read "+path, err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, qerrors.Config("invalid config "+path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks values a typo would otherwise turn into odd behaviour
func (c *Config) Validate() error {
	if !c.Quote.DefaultCurrency.Valid() {
		return qerrors.Config("quote.default_currency must be USD or Local", nil).
			WithContext("value", c.Quote.DefaultCurrency)
	}
	switch c.Output.DefaultFormat {
	case "cli", "json", "xlsx", "pdf":
	default:
		return qerrors.Config("output.default_format must be cli, json, xlsx or pdf", nil).
			WithContext("value", c.Output.DefaultFormat)
	}
	return nil
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Environment variables that override file configuration
const (
	EnvTablesDir = "QUOTECALC_TABLES_DIR"
	EnvWorkbook  = "QUOTECALC_WORKBOOK"
	EnvAddr      = "QUOTECALC_ADDR"
	EnvLogLevel  = "QUOTECALC_LOG_LEVEL"
	EnvLogFormat = "QUOTECALC_LOG_FORMAT"
)

// ApplyEnv overrides fields from the process environment.
func (c *Config) ApplyEnv() {
	for env, field := range map[string]*string{
		EnvTablesDir: &c.Tables.Dir,
		EnvWorkbook:  &c.Tables.Workbook,
		EnvAddr:      &c.Server.Addr,
		EnvLogLevel:  &c.Logging.Level,
		EnvLogFormat: &c.Logging.Format,
	} {
		if v := os.Getenv(env); v != "" {
			*field = v
		}
	}
}

// LoadStore loads the reference tables the configuration points at.
func (c *Config) LoadStore() (*reference.Store, error) {
	if c.Tables.Workbook != "" {
		return reference.LoadWorkbook(c.Tables.Workbook, c.Tables.Sheets)
	}
	return reference.LoadDir(c.Tables.Dir, c.Tables.Files)
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}
