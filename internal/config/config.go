package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the settings file: scroll behavior, where the demo feed comes
// from, and UI toggles. Flags on the command line override it.
type Config struct {
	Scroll Scroll `toml:"scroll"`
	Feed   Feed   `toml:"feed"`
	UI     UI     `toml:"ui"`
}

type Scroll struct {
	Direction       string  `toml:"direction"`        // "vertical" | "horizontal"
	TriggerOffset   float64 `toml:"trigger_offset"`   // cells before the end
	IndicatorMargin float64 `toml:"indicator_margin"` // cells around the spinner
	IndicatorStyle  string  `toml:"indicator_style"`  // spinner name, see widgets/indicator
}

type Feed struct {
	Source   string   `toml:"source"` // "synthetic" | "file" | "http"
	Path     string   `toml:"path,omitempty"`
	URL      string   `toml:"url,omitempty"`
	PageSize int      `toml:"page_size"`
	Total    int      `toml:"total"` // synthetic only; 0 means endless
	Latency  Duration `toml:"latency"`
}

type UI struct {
	NoColor bool   `toml:"no_color"`
	LogFile string `toml:"log_file,omitempty"`
	Verbose bool   `toml:"verbose"`
}

// Duration reads "750ms" style strings.
type Duration struct{ time.Duration }

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return fmt.Errorf("duration %q: %w", string(b), err)
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func Default() *Config {
	return &Config{
		Scroll: Scroll{
			Direction:       "vertical",
			TriggerOffset:   2,
			IndicatorMargin: 0,
			IndicatorStyle:  "dot",
		},
		Feed: Feed{
			Source:   "synthetic",
			PageSize: 25,
			Total:    200,
			Latency:  Duration{750 * time.Millisecond},
		},
	}
}

// Dir is $XDG_CONFIG_HOME/infiniscroll, falling back to the OS config dir.
func Dir() (string, error) {
	if x := os.Getenv("XDG_CONFIG_HOME"); x != "" {
		return filepath.Join(x, "infiniscroll"), nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(base, "infiniscroll"), nil
}

func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads path on top of Default. A missing file is not an error.
func Load(path string) (*Config, error) {
	c := Default()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return c, nil
	}
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		return nil, fmt.Errorf("parse config TOML: %w", err)
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		keys := make([]string, len(undec))
		for i, k := range undec {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("config: unknown keys %s", strings.Join(keys, ", "))
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) Validate() error {
	switch c.Scroll.Direction {
	case "", "vertical", "horizontal":
	default:
		return fmt.Errorf("config: scroll.direction %q", c.Scroll.Direction)
	}
	switch c.Feed.Source {
	case "synthetic":
	case "file":
		if c.Feed.Path == "" {
			return fmt.Errorf("config: feed.source=file needs feed.path")
		}
	case "http":
		if c.Feed.URL == "" {
			return fmt.Errorf("config: feed.source=http needs feed.url")
		}
	default:
		return fmt.Errorf("config: feed.source %q", c.Feed.Source)
	}
	if c.Feed.PageSize <= 0 {
		return fmt.Errorf("config: feed.page_size must be positive")
	}
	if c.Scroll.IndicatorMargin < 0 {
		return fmt.Errorf("config: scroll.indicator_margin must not be negative")
	}
	return nil
}

func Save(path string, c *Config) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}
