// Package config loads the ecofocus configuration from
// ~/.ecofocus/config.yaml, applies environment overrides, and exposes the
// global logger.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/rshade/ecofocus/internal/logging"
)

// Environment variables read by New.
const (
	EnvHome         = "ECOFOCUS_HOME"
	EnvConfig       = "ECOFOCUS_CONFIG"
	EnvProjectDir   = "ECOFOCUS_PROJECT_DIR"
	EnvLogLevel     = "ECOFOCUS_LOG_LEVEL"
	EnvLogFormat    = "ECOFOCUS_LOG_FORMAT"
	EnvCatalogDir   = "ECOFOCUS_CATALOG_DIR"
	EnvCatalogDB    = "ECOFOCUS_CATALOG_DB"
	EnvOutputFormat = "ECOFOCUS_OUTPUT_FORMAT"
)

// Output formats.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

const (
	configFileName    = "config.yaml"
	outputTypeFile    = "file"
	defaultPrecision  = 2
	maxPrecision      = 10
	defaultServerAddr = ":8080"
	defaultMemoTTL    = 10 * time.Minute
	defaultCacheTTL   = 24 * time.Hour
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the ecofocus configuration file.
type Config struct {
	Catalog CatalogConfig `json:"catalog" yaml:"catalog"`
	Output  OutputConfig  `json:"output"  yaml:"output"`
	Logging LoggingConfig `json:"logging" yaml:"logging"`
	Server  ServerConfig  `json:"server"  yaml:"server"`
	Cache   CacheConfig   `json:"cache"   yaml:"cache"`

	// path the configuration was read from, empty for defaults.
	path string
}

// CatalogConfig selects the dataset simulations run against. Dir wins over
// DB; with neither set the embedded dataset is used.
type CatalogConfig struct {
	Dir     string `json:"dir,omitempty"     yaml:"dir,omitempty"`
	DB      string `json:"db,omitempty"      yaml:"db,omitempty"`
	Version string `json:"version,omitempty" yaml:"version,omitempty"`
}

// OutputConfig controls result rendering.
type OutputConfig struct {
	DefaultFormat string `json:"default_format" yaml:"default_format"`
	Precision     int    `json:"precision"      yaml:"precision"`
}

// LoggingConfig controls the logger built by the CLI.
type LoggingConfig struct {
	Level  string `json:"level"          yaml:"level"`
	Format string `json:"format"         yaml:"format"`
	File   string `json:"file,omitempty" yaml:"file,omitempty"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr    string        `json:"addr"     yaml:"addr"`
	MemoTTL time.Duration `json:"memo_ttl" yaml:"memo_ttl"`
}

// CacheConfig configures the on-disk result cache of the CLI.
type CacheConfig struct {
	Enabled   bool          `json:"enabled"             yaml:"enabled"`
	Directory string        `json:"directory,omitempty" yaml:"directory,omitempty"`
	TTL       time.Duration `json:"ttl"                 yaml:"ttl"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			DefaultFormat: FormatTable,
			Precision:     defaultPrecision,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: logging.FormatConsole,
		},
		Server: ServerConfig{
			Addr:    defaultServerAddr,
			MemoTTL: defaultMemoTTL,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     defaultCacheTTL,
		},
	}
}

// New returns the defaults overlaid with the configuration file, if any,
// and the environment overrides. A broken file is reported on the global
// logger and ignored.
func New() *Config {
	cfg := Default()
	path, err := ResolveConfigPath()
	if err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			loaded, loadErr := Load(path)
			if loadErr != nil {
				logger := GetLogger()
				logger.Warn().
					Str("component", "config").
					Err(loadErr).
					Str("path", path).
					Msg("ignoring unreadable configuration file")
			} else {
				cfg = loaded
			}
		}
	}
	cfg.ApplyEnv()
	return cfg
}

// Load reads the configuration file at path on top of the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	cfg := Default()
	if err = yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err = cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	cfg.path = path
	return cfg, nil
}

// Save writes the configuration as YAML to path, creating its directory.
func (c *Config) Save(path string) error {
	if err := c.Validate(); err != nil {
		return err
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err = os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err = os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config %s: %w", path, err)
	}
	c.path = path
	return nil
}

// Path returns the file the configuration was loaded from or saved to.
func (c *Config) Path() string { return c.path }

// ApplyEnv overrides configuration values with the ECOFOCUS_* environment
// variables that are set.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		c.Logging.Format = v
	}
	if v := os.Getenv(EnvCatalogDir); v != "" {
		c.Catalog.Dir = v
	}
	if v := os.Getenv(EnvCatalogDB); v != "" {
		c.Catalog.DB = v
	}
	if v := os.Getenv(EnvOutputFormat); v != "" {
		c.Output.DefaultFormat = v
	}
}

// Validate checks every section.
func (c *Config) Validate() error {
	return errors.Join(
		c.Output.Validate(),
		c.Logging.Validate(),
		c.Server.Validate(),
		c.Cache.Validate(),
	)
}

// Validate checks the output format and precision.
func (o OutputConfig) Validate() error {
	if !slices.Contains([]string{FormatTable, FormatJSON, FormatYAML}, o.DefaultFormat) {
		return fmt.Errorf("%w: output.default_format %q must be one of table, json, yaml",
			ErrInvalidConfig, o.DefaultFormat)
	}
	if o.Precision < 0 || o.Precision > maxPrecision {
		return fmt.Errorf("%w: output.precision %d must be between 0 and %d",
			ErrInvalidConfig, o.Precision, maxPrecision)
	}
	return nil
}

// Validate checks the log level and format.
func (l LoggingConfig) Validate() error {
	switch strings.ToLower(l.Level) {
	case "trace", "debug", "info", "warn", "error", "fatal", "panic", "disabled":
	default:
		return fmt.Errorf("%w: logging.level %q is not a known level", ErrInvalidConfig, l.Level)
	}
	if l.Format != logging.FormatJSON && l.Format != logging.FormatConsole {
		return fmt.Errorf("%w: logging.format %q must be json or console", ErrInvalidConfig, l.Format)
	}
	return nil
}

// Validate checks the listen address and memo TTL.
func (s ServerConfig) Validate() error {
	if s.Addr == "" {
		return fmt.Errorf("%w: server.addr is required", ErrInvalidConfig)
	}
	if s.MemoTTL < 0 {
		return fmt.Errorf("%w: server.memo_ttl must not be negative", ErrInvalidConfig)
	}
	return nil
}

// Validate checks the cache TTL.
func (c CacheConfig) Validate() error {
	if c.Enabled && c.TTL <= 0 {
		return fmt.Errorf("%w: cache.ttl must be positive when the cache is enabled", ErrInvalidConfig)
	}
	return nil
}
