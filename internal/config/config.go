// Package config handles configuration file loading and parsing.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Default configuration values.
const (
	DefaultInputFormat   = "auto"
	DefaultOutputFormat  = "dmenu"
	DefaultScope         = "active"
	DefaultMessageMaxLen = 80
	DefaultDebounce      = "200ms"
	DefaultDmenuTmpl     = ""
	DefaultPlainTmpl     = ""
)

// Config represents the notifbar configuration.
type Config struct {
	Input     InputConfig     `toml:"input"`
	Output    OutputConfig    `toml:"output"`
	Templates TemplatesConfig `toml:"templates"`
	Watch     WatchConfig     `toml:"watch"`
}

// InputConfig holds where and how state snapshots are read.
type InputConfig struct {
	StateFile string `toml:"state_file"` // Empty or "-" reads stdin
	Format    string `toml:"format"`     // auto, json, yaml, toml
}

// OutputConfig holds default output options.
type OutputConfig struct {
	Format        string `toml:"format"`          // dmenu, json, yaml, plain, ids
	Scope         string `toml:"scope"`           // active, global, all
	MessageMaxLen int    `toml:"message_max_len"` // 0 = unlimited
}

// TemplatesConfig holds output templates.
type TemplatesConfig struct {
	Dmenu  string            `toml:"dmenu"` // Empty = built-in layout
	Plain  string            `toml:"plain"` // Empty = built-in layout
	Custom map[string]string `toml:"custom"`
}

// WatchConfig holds settings for the watch command.
type WatchConfig struct {
	Debounce string `toml:"debounce"` // Go duration; coalesces bursts of writes
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Input: InputConfig{
			StateFile: "",
			Format:    DefaultInputFormat,
		},
		Output: OutputConfig{
			Format:        DefaultOutputFormat,
			Scope:         DefaultScope,
			MessageMaxLen: DefaultMessageMaxLen,
		},
		Templates: TemplatesConfig{
			Dmenu:  DefaultDmenuTmpl,
			Plain:  DefaultPlainTmpl,
			Custom: make(map[string]string),
		},
		Watch: WatchConfig{
			Debounce: DefaultDebounce,
		},
	}
}

// ConfigPath returns the path to the config file.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config.
func ConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "notifbar", "config.toml")
}

// LoadConfig loads configuration from the specified path.
// If path is empty, uses the default config path.
// Returns default config if file doesn't exist.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	// Start with defaults
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	if cfg.Templates.Custom == nil {
		cfg.Templates.Custom = make(map[string]string)
	}

	return cfg, nil
}

// Save writes the configuration to the specified path.
// Creates parent directories if needed.
func (c *Config) Save(path string) error {
	if path == "" {
		path = ConfigPath()
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// GetTemplate returns the template for the given name.
// First checks custom templates, then built-in ones.
// Returns empty string if not found.
func (c *Config) GetTemplate(name string) string {
	if tmpl, ok := c.Templates.Custom[name]; ok {
		return tmpl
	}

	switch name {
	case "dmenu":
		return c.Templates.Dmenu
	case "plain":
		return c.Templates.Plain
	default:
		return ""
	}
}

// DebounceDuration parses the watch debounce, falling back to the default
// when the value is empty or malformed.
func (c *Config) DebounceDuration() time.Duration {
	d, err := time.ParseDuration(c.Watch.Debounce)
	if err != nil || d < 0 {
		d, _ = time.ParseDuration(DefaultDebounce)
	}
	return d
}
