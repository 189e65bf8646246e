package etapictl

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/etapi-go/etapi.go/pkg/constants"
	"github.com/etapi-go/etapi.go/pkg/search"
)

// Config holds the resolved settings for one invocation
type Config struct {
	// Server base URL, e.g. "http://localhost:8080"
	URL string `yaml:"url"`
	// ETAPI token sent as the Authorization header
	Token string `yaml:"token,omitempty"`
	// Per-request timeout
	Timeout time.Duration `yaml:"timeout,omitempty"`
	// "query" or "body"
	SearchVariant string `yaml:"search_variant,omitempty"`
	// Enable debug logging
	Verbose bool `yaml:"verbose,omitempty"`
}

// Flags holds values given on the command line. Empty strings and nil
// pointers mean "not given".
type Flags struct {
	ConfigPath    string
	URL           string
	Token         string
	SearchVariant string
	Timeout       *time.Duration
	Verbose       *bool
}

// NewConfig creates a Config with default values
func NewConfig() *Config {
	return &Config{
		URL:           constants.DefaultServerURL,
		Timeout:       constants.DefaultTimeout,
		SearchVariant: search.QueryStringVariant.String(),
	}
}

// DefaultConfigPath is where the config file is looked for when no
// --config flag is given.
func DefaultConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "etapictl", "config.yaml"), nil
}

// Load resolves the configuration with priority: flags > env vars > config
// file > defaults. A missing file is only an error when its path was given
// explicitly. getenv is os.Getenv outside tests.
func Load(flags Flags, getenv func(string) string) (*Config, error) {
	cfg := NewConfig()

	path := flags.ConfigPath
	explicit := path != ""
	if !explicit {
		if p, err := DefaultConfigPath(); err == nil {
			path = p
		}
	}
	if path != "" {
		file, err := ReadConfigFile(path)
		switch {
		case err == nil:
			cfg.merge(file)
		case errors.Is(err, fs.ErrNotExist) && !explicit:
		default:
			return nil, err
		}
	}

	cfg.merge(&Config{
		URL:   getenv(constants.EnvURL),
		Token: getenv(constants.EnvToken),
	})

	cfg.merge(&Config{
		URL:           flags.URL,
		Token:         flags.Token,
		SearchVariant: flags.SearchVariant,
	})
	if flags.Timeout != nil {
		cfg.Timeout = *flags.Timeout
	}
	if flags.Verbose != nil {
		cfg.Verbose = *flags.Verbose
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// merge copies the set fields of other over c.
func (c *Config) merge(other *Config) {
	if other.URL != "" {
		c.URL = other.URL
	}
	if other.Token != "" {
		c.Token = other.Token
	}
	if other.Timeout != 0 {
		c.Timeout = other.Timeout
	}
	if other.SearchVariant != "" {
		c.SearchVariant = other.SearchVariant
	}
	if other.Verbose {
		c.Verbose = true
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.URL == "" {
		return fmt.Errorf("url is required")
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %s", c.Timeout)
	}
	if _, ok := search.ParseVariant(c.SearchVariant); !ok {
		return fmt.Errorf("search_variant must be %q or %q, got %q",
			search.QueryStringVariant, search.JSONBodyVariant, c.SearchVariant)
	}
	return nil
}

// Variant returns the configured search encoding.
func (c *Config) Variant() search.Variant {
	v, _ := search.ParseVariant(c.SearchVariant)
	return v
}

// ReadConfigFile decodes a YAML config file.
func ReadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

// WriteConfigFile stores cfg as YAML, creating parent directories. The file
// holds a token, so it is only readable by the owner.
func WriteConfigFile(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
