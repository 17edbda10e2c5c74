// Package config loads the dev server's settings from an optional YAML file with
// PORTFOLIO_ environment overrides.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// EnvPrefix marks environment overrides. Nested keys use a double underscore:
// PORTFOLIO_RELOAD__ENABLED=false sets reload.enabled.
const EnvPrefix = "PORTFOLIO_"

// Config is the dev server configuration.
type Config struct {
	Listen   string `yaml:"listen" koanf:"listen"`
	SiteDir  string `yaml:"site_dir" koanf:"site_dir"`
	LogLevel string `yaml:"log_level" koanf:"log_level"`

	Contact ContactConfig `yaml:"contact" koanf:"contact"`
	Reload  ReloadConfig  `yaml:"reload" koanf:"reload"`
}

// ContactConfig controls the contact relay proxy.
type ContactConfig struct {
	// Path is the local route the page posts to.
	Path string `yaml:"path" koanf:"path"`
	// Upstream is the real form relay. Empty disables the proxy.
	Upstream       string        `yaml:"upstream" koanf:"upstream"`
	Timeout        time.Duration `yaml:"timeout" koanf:"timeout"`
	AllowedOrigins []string      `yaml:"allowed_origins" koanf:"allowed_origins"`
}

// ReloadConfig controls the live reload stream.
type ReloadConfig struct {
	Enabled  bool          `yaml:"enabled" koanf:"enabled"`
	Path     string        `yaml:"path" koanf:"path"`
	Include  []string      `yaml:"include" koanf:"include"`
	Exclude  []string      `yaml:"exclude" koanf:"exclude"`
	Debounce time.Duration `yaml:"debounce" koanf:"debounce"`
}

var (
	defaultOrigins = []string{"http://localhost:*", "http://127.0.0.1:*"}
	defaultInclude = []string{"**/*.html", "**/*.css", "**/*.js", "**/*.wasm"}
)

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Listen:   "127.0.0.1:4173",
		SiteDir:  "site",
		LogLevel: "info",
		Contact: ContactConfig{
			Path:    "/api/contact",
			Timeout: 10 * time.Second,
		},
		Reload: ReloadConfig{
			Enabled:  true,
			Path:     "/dev/reload",
			Debounce: 100 * time.Millisecond,
		},
	}
}

// Load reads path when it exists, then overlays PORTFOLIO_* variables.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	// List defaults are applied after unmarshal so a shorter configured list replaces
	// them instead of overwriting a prefix.
	if len(cfg.Contact.AllowedOrigins) == 0 {
		cfg.Contact.AllowedOrigins = append([]string(nil), defaultOrigins...)
	}
	if len(cfg.Reload.Include) == 0 {
		cfg.Reload.Include = append([]string(nil), defaultInclude...)
	}
	return cfg, nil
}

func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(key, "__", ".")
}

// Validate checks the loaded values.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Listen) == "" {
		errs = append(errs, errors.New("listen is required"))
	}
	if strings.TrimSpace(c.SiteDir) == "" {
		errs = append(errs, errors.New("site_dir is required"))
	}
	if !strings.HasPrefix(c.Contact.Path, "/") {
		errs = append(errs, fmt.Errorf("contact.path %q must start with /", c.Contact.Path))
	}
	if c.Contact.Upstream != "" {
		u, err := url.Parse(c.Contact.Upstream)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			errs = append(errs, fmt.Errorf("contact.upstream %q must be an absolute http(s) URL", c.Contact.Upstream))
		}
	}
	if c.Contact.Timeout <= 0 {
		errs = append(errs, errors.New("contact.timeout must be positive"))
	}
	if c.Reload.Enabled && !strings.HasPrefix(c.Reload.Path, "/") {
		errs = append(errs, fmt.Errorf("reload.path %q must start with /", c.Reload.Path))
	}
	for _, pattern := range append(append([]string(nil), c.Reload.Include...), c.Reload.Exclude...) {
		if !doublestar.ValidatePattern(pattern) {
			errs = append(errs, fmt.Errorf("invalid reload pattern %q", pattern))
		}
	}
	if c.Reload.Debounce < 0 {
		errs = append(errs, errors.New("reload.debounce must be non-negative"))
	}
	return errors.Join(errs...)
}

// Marshal renders the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshalling config: %w", err)
	}
	return data, nil
}

// Save writes the configuration to path as YAML.
func (c *Config) Save(path string) error {
	data, err := c.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}
