package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"habitual/internal/dashboard"

	"github.com/google/go-cmp/cmp"
)

func TestLoad_DefaultsWhenNoFile(t *testing.T) {
	t.Setenv("HABITUAL_CONFIG_DIR", t.TempDir())
	for _, k := range []string{"HABITUAL_API_URL", "HABITUAL_MODE", "HABITUAL_TIMEOUT", "HABITUAL_LOG_LEVEL", "HABITUAL_TUI_THEME", "HABITUAL_GLYPHS", "HABITUAL_LOG_FILE"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Fatalf("expected defaults (-want +got):\n%s", diff)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
	if m, _ := cfg.ModeValue(); m != dashboard.ModeAuto {
		t.Fatalf("expected auto mode, got %s", m)
	}
}

func TestLoad_FileThenEnvPrecedence(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HABITUAL_CONFIG_DIR", dir)
	yml := `
api:
  base_url: http://habits.internal/api
  mode: remote
  timeout: 3s
  breaker:
    failure_threshold: 5
tui:
  glyphs: ascii
`
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yml), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("HABITUAL_API_URL", "")
	t.Setenv("HABITUAL_MODE", "demo")
	t.Setenv("HABITUAL_TIMEOUT", "")
	t.Setenv("HABITUAL_LOG_LEVEL", "")
	t.Setenv("HABITUAL_LOG_FILE", "")
	t.Setenv("HABITUAL_TUI_THEME", "light")
	t.Setenv("HABITUAL_GLYPHS", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.API.BaseURL != "http://habits.internal/api" {
		t.Fatalf("expected file base url, got %q", cfg.API.BaseURL)
	}
	if cfg.API.Mode != "demo" {
		t.Fatalf("expected env mode to win, got %q", cfg.API.Mode)
	}
	if cfg.API.Timeout != 3*time.Second {
		t.Fatalf("expected 3s timeout, got %s", cfg.API.Timeout)
	}
	bc := cfg.BreakerConfig()
	if bc.FailureThreshold != 5 || bc.Cooldown != 30*time.Second {
		t.Fatalf("unexpected breaker config: %+v", bc)
	}
	if !cfg.ASCIIGlyphs() || cfg.TUI.Theme != "light" {
		t.Fatalf("unexpected tui config: %+v", cfg.TUI)
	}
	// Untouched sections keep defaults.
	if cfg.Log.Level != "info" {
		t.Fatalf("expected default log level, got %q", cfg.Log.Level)
	}
}

func TestLoadFile_RejectsBrokenYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("api: [unterminated"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestApplyEnv_BadTimeout(t *testing.T) {
	cfg := Default()
	err := cfg.ApplyEnv(func(k string) string {
		if k == "HABITUAL_TIMEOUT" {
			return "soon"
		}
		return ""
	})
	if err == nil {
		t.Fatalf("expected error for bad timeout")
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		mut  func(*Config)
		ok   bool
	}{
		{"defaults", func(*Config) {}, true},
		{"bad mode", func(c *Config) { c.API.Mode = "sometimes" }, false},
		{"zero timeout", func(c *Config) { c.API.Timeout = 0 }, false},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, false},
		{"bad theme", func(c *Config) { c.TUI.Theme = "sepia" }, false},
		{"bad glyphs", func(c *Config) { c.TUI.Glyphs = "emoji" }, false},
		{"demo mode", func(c *Config) { c.API.Mode = "DEMO" }, true},
	}
	for _, tc := range cases {
		cfg := Default()
		tc.mut(&cfg)
		err := cfg.Validate()
		if (err == nil) != tc.ok {
			t.Fatalf("%s: Validate()=%v, want ok=%v", tc.name, err, tc.ok)
		}
	}
}

func TestSave_RoundTripsThroughYAML(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HABITUAL_CONFIG_DIR", dir)

	cfg := Default()
	cfg.API.BaseURL = "https://example.test/api"
	cfg.API.Timeout = 7 * time.Second
	if err := Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := LoadFile(filepath.Join(dir, "config.yaml"))
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if diff := cmp.Diff(cfg, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
	st, err := os.Stat(filepath.Join(dir, "config.yaml"))
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if st.Mode().Perm() != 0o600 {
		t.Fatalf("expected 0600, got %v", st.Mode().Perm())
	}
}
