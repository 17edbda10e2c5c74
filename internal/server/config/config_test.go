package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestLoadWithoutFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Listen != "127.0.0.1:4173" || cfg.Contact.Path != "/api/contact" || !cfg.Reload.Enabled {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if diff := cmp.Diff(defaultInclude, cfg.Reload.Include); diff != "" {
		t.Fatalf("include mismatch (-want +got):\n%s", diff)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portfolio.yml")
	original := Default()
	original.SiteDir = "public"
	original.Contact.Upstream = "https://relay.example/ajax/me"
	original.Contact.Timeout = 5 * time.Second
	original.Reload.Include = []string{"**/*.css"}
	if err := original.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.SiteDir != "public" || loaded.Contact.Upstream != original.Contact.Upstream {
		t.Fatalf("round trip lost fields: %+v", loaded)
	}
	if loaded.Contact.Timeout != 5*time.Second {
		t.Fatalf("expected 5s timeout, got %v", loaded.Contact.Timeout)
	}
	if diff := cmp.Diff([]string{"**/*.css"}, loaded.Reload.Include); diff != "" {
		t.Fatalf("include mismatch (-want +got):\n%s", diff)
	}
}

func TestShorterListReplacesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portfolio.yml")
	data := "reload:\n  include:\n    - \"*.html\"\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff([]string{"*.html"}, cfg.Reload.Include); diff != "" {
		t.Fatalf("include mismatch (-want +got):\n%s", diff)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("PORTFOLIO_LISTEN", ":9000")
	t.Setenv("PORTFOLIO_CONTACT__UPSTREAM", "https://relay.example/f")
	t.Setenv("PORTFOLIO_RELOAD__ENABLED", "false")
	t.Setenv("PORTFOLIO_RELOAD__DEBOUNCE", "250ms")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Listen != ":9000" {
		t.Fatalf("expected listen override, got %q", cfg.Listen)
	}
	if cfg.Contact.Upstream != "https://relay.example/f" {
		t.Fatalf("expected upstream override, got %q", cfg.Contact.Upstream)
	}
	if cfg.Reload.Enabled {
		t.Fatal("expected reload disabled")
	}
	if cfg.Reload.Debounce != 250*time.Millisecond {
		t.Fatalf("expected 250ms debounce, got %v", cfg.Reload.Debounce)
	}
}

func TestEnvKey(t *testing.T) {
	cases := map[string]string{
		"PORTFOLIO_LISTEN":           "listen",
		"PORTFOLIO_SITE_DIR":         "site_dir",
		"PORTFOLIO_CONTACT__TIMEOUT": "contact.timeout",
	}
	for in, want := range cases {
		if got := envKey(in); got != want {
			t.Fatalf("%s: expected %q got %q", in, want, got)
		}
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "listen", mutate: func(c *Config) { c.Listen = " " }, wantErr: "listen is required"},
		{name: "relative upstream", mutate: func(c *Config) { c.Contact.Upstream = "relay/f" }, wantErr: "contact.upstream"},
		{name: "contact path", mutate: func(c *Config) { c.Contact.Path = "api" }, wantErr: "contact.path"},
		{name: "bad glob", mutate: func(c *Config) { c.Reload.Include = []string{"[a"} }, wantErr: "invalid reload pattern"},
		{name: "timeout", mutate: func(c *Config) { c.Contact.Timeout = 0 }, wantErr: "contact.timeout"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestMarshalUsesYAMLKeys(t *testing.T) {
	data, err := Default().Marshal()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, key := range []string{"listen:", "site_dir:", "allowed_origins:", "debounce:"} {
		if !strings.Contains(string(data), key) {
			t.Fatalf("expected %s in:\n%s", key, data)
		}
	}
}
