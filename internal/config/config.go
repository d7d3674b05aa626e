package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"habitual/internal/api"
	"habitual/internal/dashboard"

	"gopkg.in/yaml.v3"
)

type Config struct {
	API APIConfig `yaml:"api"`
	Log LogConfig `yaml:"log"`
	TUI TUIConfig `yaml:"tui"`
}

type APIConfig struct {
	BaseURL string        `yaml:"base_url"`
	Mode    string        `yaml:"mode"`
	Timeout time.Duration `yaml:"timeout"`
	Breaker BreakerConfig `yaml:"breaker"`
}

type BreakerConfig struct {
	FailureThreshold int           `yaml:"failure_threshold"`
	Cooldown         time.Duration `yaml:"cooldown"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	// File is where the TUI writes its log. Empty means <config dir>/habitual.log.
	File string `yaml:"file,omitempty"`
}

type TUIConfig struct {
	// Theme is auto, light or dark.
	Theme string `yaml:"theme"`
	// Glyphs is unicode or ascii (status badges without emoji).
	Glyphs string `yaml:"glyphs"`
}

func Default() Config {
	bc := api.DefaultBreakerConfig()
	return Config{
		API: APIConfig{
			BaseURL: api.DefaultBaseURL,
			Mode:    string(dashboard.ModeAuto),
			Timeout: api.DefaultTimeout,
			Breaker: BreakerConfig{
				FailureThreshold: bc.FailureThreshold,
				Cooldown:         bc.Cooldown,
			},
		},
		Log: LogConfig{Level: "info"},
		TUI: TUIConfig{Theme: "auto", Glyphs: "unicode"},
	}
}

func Dir() (string, error) {
	// Test/advanced override (keeps unit tests from touching ~/.habitual).
	if v := strings.TrimSpace(os.Getenv("HABITUAL_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".habitual"), nil
}

func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load returns defaults, overlaid by the config file (if any), overlaid by the
// environment. Flags are applied by the caller on top.
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return Config{}, err
	}
	cfg, err := LoadFile(path)
	if err != nil {
		return Config{}, err
	}
	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadFile overlays the YAML file at path onto the defaults. A missing file is not an error.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := strings.TrimSpace(getenv("HABITUAL_API_URL")); v != "" {
		c.API.BaseURL = v
	}
	if v := strings.TrimSpace(getenv("HABITUAL_MODE")); v != "" {
		c.API.Mode = v
	}
	if v := strings.TrimSpace(getenv("HABITUAL_TIMEOUT")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("HABITUAL_TIMEOUT: %w", err)
		}
		c.API.Timeout = d
	}
	if v := strings.TrimSpace(getenv("HABITUAL_LOG_LEVEL")); v != "" {
		c.Log.Level = v
	}
	if v := strings.TrimSpace(getenv("HABITUAL_LOG_FILE")); v != "" {
		c.Log.File = v
	}
	if v := strings.TrimSpace(getenv("HABITUAL_TUI_THEME")); v != "" {
		c.TUI.Theme = v
	}
	if v := strings.TrimSpace(getenv("HABITUAL_GLYPHS")); v != "" {
		c.TUI.Glyphs = v
	}
	return nil
}

func (c Config) Validate() error {
	if _, err := c.ModeValue(); err != nil {
		return err
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be positive, got %s", c.API.Timeout)
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level: %q", c.Log.Level)
	}
	switch strings.ToLower(c.TUI.Theme) {
	case "", "auto", "light", "dark":
	default:
		return fmt.Errorf("unknown tui theme: %q (want auto|light|dark)", c.TUI.Theme)
	}
	switch strings.ToLower(c.TUI.Glyphs) {
	case "", "unicode", "ascii":
	default:
		return fmt.Errorf("unknown glyph set: %q (want unicode|ascii)", c.TUI.Glyphs)
	}
	return nil
}

func (c Config) ModeValue() (dashboard.Mode, error) {
	return dashboard.ParseMode(c.API.Mode)
}

func (c Config) ASCIIGlyphs() bool {
	return strings.EqualFold(strings.TrimSpace(c.TUI.Glyphs), "ascii")
}

// LogFile resolves the TUI log path.
func (c Config) LogFile() (string, error) {
	if strings.TrimSpace(c.Log.File) != "" {
		return c.Log.File, nil
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "habitual.log"), nil
}

func (c Config) BreakerConfig() api.BreakerConfig {
	bc := api.DefaultBreakerConfig()
	if c.API.Breaker.FailureThreshold > 0 {
		bc.FailureThreshold = c.API.Breaker.FailureThreshold
	}
	if c.API.Breaker.Cooldown > 0 {
		bc.Cooldown = c.API.Breaker.Cooldown
	}
	return bc
}

func Save(cfg Config) error {
	path, err := Path()
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	b, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	// Unique temp name + rename so a concurrent reader never sees a torn file.
	return atomicWriteFile(dir, "config.yaml.*.tmp", path, b, 0o600)
}

func atomicWriteFile(dir, tmpPattern, path string, b []byte, perm os.FileMode) error {
	f, err := os.CreateTemp(dir, tmpPattern)
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()
	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	_ = os.Chmod(tmp, perm)
	return os.Rename(tmp, path)
}
