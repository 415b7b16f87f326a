// Package config loads policyexport settings from a YAML file, environment
// variables and defaults, in that order of precedence (highest last applied
// by the CLI: flags > env > file > defaults).
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Default values.
const (
	DefaultLoginURL    = "https://api.cyera.io/v1/login"
	DefaultPoliciesURL = "https://app.cyera.io/api/policies/allPolicies"
	DefaultPageSize    = 10
	MaxPageSize        = 1000
	DefaultFormat      = "markdown"
	DefaultLogLevel    = "warn"
	DefaultLogFormat   = "console"

	configDirName  = ".policyexport"
	configFileName = "config.yaml"
)

// Environment variables read by ApplyEnv.
const (
	EnvConfigPath   = "POLICYEXPORT_CONFIG"
	EnvHome         = "POLICYEXPORT_HOME"
	EnvLoginURL     = "POLICYEXPORT_LOGIN_URL"
	EnvPoliciesURL  = "POLICYEXPORT_POLICIES_URL"
	EnvPageSize     = "POLICYEXPORT_PAGE_SIZE"
	EnvTimeout      = "POLICYEXPORT_TIMEOUT"
	EnvOutputFormat = "POLICYEXPORT_OUTPUT_FORMAT"
	EnvLogLevel     = "POLICYEXPORT_LOG_LEVEL"
	EnvLogFormat    = "POLICYEXPORT_LOG_FORMAT"
	EnvLogFile      = "POLICYEXPORT_LOG_FILE"
)

// Config is the root configuration document.
type Config struct {
	API     APIConfig     `yaml:"api"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// APIConfig holds the policy API endpoints.
type APIConfig struct {
	LoginURL    string `yaml:"login_url"`
	PoliciesURL string `yaml:"policies_url"`
	PageSize    int    `yaml:"page_size"`
	// Timeout bounds each HTTP request. Zero leaves the HTTP client default (no timeout).
	Timeout time.Duration `yaml:"timeout"`
}

// OutputConfig holds report output defaults.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format"`
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// Default returns a Config populated with built-in defaults.
func Default() *Config {
	return &Config{
		API: APIConfig{
			LoginURL:    DefaultLoginURL,
			PoliciesURL: DefaultPoliciesURL,
			PageSize:    DefaultPageSize,
		},
		Output: OutputConfig{DefaultFormat: DefaultFormat},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

// New returns the configuration from the default config path with env
// overrides applied. A missing or unreadable file leaves the defaults in place.
func New() *Config {
	cfg, err := Load(ResolvePath(""))
	if err != nil {
		cfg = Default()
	}
	cfg.ApplyEnv(os.LookupEnv)
	return cfg
}

// ResolvePath picks the config file path: the explicit flag value, then
// POLICYEXPORT_CONFIG, then $POLICYEXPORT_HOME/config.yaml, then ~/.policyexport/config.yaml.
func ResolvePath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	if home := os.Getenv(EnvHome); home != "" {
		return filepath.Join(home, configFileName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, configDirName, configFileName)
}

// Load reads the YAML file at path on top of the defaults. A path that does
// not exist is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv overrides fields from environment variables. Invalid numeric or
// duration values are ignored.
func (c *Config) ApplyEnv(lookupEnv func(string) (string, bool)) {
	if v, ok := lookupEnv(EnvLoginURL); ok && v != "" {
		c.API.LoginURL = v
	}
	if v, ok := lookupEnv(EnvPoliciesURL); ok && v != "" {
		c.API.PoliciesURL = v
	}
	if v, ok := lookupEnv(EnvPageSize); ok {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			c.API.PageSize = n
		}
	}
	if v, ok := lookupEnv(EnvTimeout); ok {
		if d, err := time.ParseDuration(strings.TrimSpace(v)); err == nil {
			c.API.Timeout = d
		}
	}
	if v, ok := lookupEnv(EnvOutputFormat); ok && v != "" {
		c.Output.DefaultFormat = v
	}
	if v, ok := lookupEnv(EnvLogLevel); ok && v != "" {
		c.Logging.Level = v
	}
	if v, ok := lookupEnv(EnvLogFormat); ok && v != "" {
		c.Logging.Format = v
	}
	if v, ok := lookupEnv(EnvLogFile); ok {
		c.Logging.File = v
	}
}

// Validate checks that the API settings are usable.
func (c *Config) Validate() error {
	if err := validateURL("api.login_url", c.API.LoginURL); err != nil {
		return err
	}
	if err := validateURL("api.policies_url", c.API.PoliciesURL); err != nil {
		return err
	}
	if c.API.PageSize < 1 || c.API.PageSize > MaxPageSize {
		return fmt.Errorf("api.page_size must be between 1 and %d, got %d", MaxPageSize, c.API.PageSize)
	}
	if c.API.Timeout < 0 {
		return fmt.Errorf("api.timeout must be >= 0, got %s", c.API.Timeout)
	}
	switch strings.ToLower(c.Output.DefaultFormat) {
	case "markdown", "csv":
	default:
		return fmt.Errorf("output.default_format must be markdown or csv, got %q", c.Output.DefaultFormat)
	}
	if _, err := zerolog.ParseLevel(strings.ToLower(c.Logging.Level)); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	switch c.Logging.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	return nil
}

// Save writes the configuration as YAML to path, creating the parent
// directory when needed.
func (c *Config) Save(path string) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config %s: %w", path, err)
	}
	return nil
}

func validateURL(field, raw string) error {
	if raw == "" {
		return fmt.Errorf("%s must be set", field)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s: %w", field, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s must be an http or https URL, got %q", field, raw)
	}
	if u.Host == "" {
		return fmt.Errorf("%s has no host: %q", field, raw)
	}
	return nil
}
