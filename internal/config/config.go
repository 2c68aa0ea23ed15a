// Package config loads the chore configuration file.
package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// EnvConfigPath names the environment variable holding the config path.
const EnvConfigPath = "CHORE_CONFIG"

// DefaultPath is used when EnvConfigPath is unset.
const DefaultPath = "chore.yaml"

// Colour modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config holds all chore configuration.
type Config struct {
	// DomainName is the base URL tasks use to build absolute links.
	DomainName string `yaml:"domain_name"`

	// Separator joins namespace segments of task identifiers.
	Separator string `yaml:"separator"`

	// DefaultTask runs when no task is named.
	DefaultTask string `yaml:"default_task"`

	// Color is one of auto, always, never.
	Color string `yaml:"color"`

	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig configures the structured logger.
type LoggingConfig struct {
	Level  string   `yaml:"level"`  // debug, info, warn, error
	JSON   bool     `yaml:"json"`   // JSON encoding instead of console
	Output []string `yaml:"output"` // zap output paths; empty disables logging
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Separator:   ":",
		DefaultTask: "help",
		Color:       ColorAuto,
		Logging: LoggingConfig{
			Level: "warn",
		},
	}
}

// Path returns the config file location from getenv, or DefaultPath.
func Path(getenv func(string) string) string {
	if p := getenv(EnvConfigPath); p != "" {
		return p
	}
	return DefaultPath
}

// Load reads path over the defaults. A missing file is not an error.
// Environment overrides are applied after the file.
func Load(path string, getenv func(string) string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	case os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg.applyEnvOverrides(getenv)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides(getenv func(string) string) {
	if getenv == nil {
		return
	}
	if v := getenv("CHORE_DOMAIN_NAME"); v != "" {
		c.DomainName = v
	}
	if v := getenv("CHORE_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if getenv("NO_COLOR") != "" {
		c.Color = ColorNever
	}
}

// Validate checks the configuration for values chore cannot run with.
func (c *Config) Validate() error {
	if c.Separator == "" {
		return fmt.Errorf("separator must not be empty")
	}
	if c.DefaultTask == "" {
		return fmt.Errorf("default_task must not be empty")
	}
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("color must be one of %s, %s, %s; got %q", ColorAuto, ColorAlways, ColorNever, c.Color)
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error; got %q", c.Logging.Level)
	}
	return nil
}

// Site is the base URL setup handed to tasks.
type Site struct {
	BaseURL string `yaml:"base_url"`
	Secure  bool   `yaml:"secure"`
}

var (
	bareHost   = regexp.MustCompile(`^https?://[^/]+$`)
	httpsProto = regexp.MustCompile(`(?i)https://`)
)

// Site derives the base URL from override, or from DomainName when
// override is empty. A bare scheme://host gets a trailing slash; the site
// is secure when the URL uses https.
func (c *Config) Site(override string) Site {
	domain := override
	if domain == "" {
		domain = c.DomainName
	}

	base := domain
	if bareHost.MatchString(base) {
		base += "/"
	}

	return Site{
		BaseURL: base,
		Secure:  len(httpsProto.FindAllStringIndex(base, -1)) == 1,
	}
}
