// Package config loads perftop's settings and header layout from TOML.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/sumant1122/perftop/internal/logger"
)

const (
	EnvConfig    = "PERFTOP_CONFIG"
	DefaultDelay = 1500 * time.Millisecond
	// MinDelay bounds how often the sampler may run.
	MinDelay = 100 * time.Millisecond
	Columns  = 2
)

// Duration is a time.Duration written as a string such as "1.5s".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	d.Duration = parsed
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

type MeterEntry struct {
	Name string `toml:"name"`
	Mode string `toml:"mode,omitempty"`
}

type Column struct {
	Meters []MeterEntry `toml:"meter"`
}

type Config struct {
	Delay                  Duration `toml:"delay"`
	GraphDelay             Duration `toml:"graph_delay,omitempty"`
	Theme                  string   `toml:"theme,omitempty"`
	Monochrome             bool     `toml:"monochrome"`
	ASCII                  bool     `toml:"ascii"`
	HeaderMargin           bool     `toml:"header_margin"`
	DetailedCPUTime        bool     `toml:"detailed_cpu_time"`
	AccountGuestInCPUMeter bool     `toml:"account_guest_in_cpu_meter"`
	Columns                []Column `toml:"column"`
}

// DefaultColumns is the layout used when no configuration names any
// meters.
func DefaultColumns() []Column {
	return []Column{
		{Meters: []MeterEntry{{Name: "LeftCPUs"}, {Name: "Memory"}, {Name: "Swap"}}},
		{Meters: []MeterEntry{{Name: "RightCPUs"}, {Name: "Tasks"}, {Name: "LoadAverage"}, {Name: "Uptime"}}},
	}
}

func Default() Config {
	return Config{
		Delay:        Duration{DefaultDelay},
		GraphDelay:   Duration{DefaultDelay},
		HeaderMargin: true,
		Columns:      DefaultColumns(),
	}
}

// Parse decodes a configuration file and fills in defaults.
func Parse(data []byte) (Config, error) {
	cfg := Config{HeaderMargin: true}
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg.normalize(), nil
}

// normalize drops unnamed meters and replaces missing or out-of-range
// values with defaults.
func (c Config) normalize() Config {
	if c.Delay.Duration <= 0 {
		c.Delay.Duration = DefaultDelay
	}
	c.Delay.Duration = max(c.Delay.Duration, MinDelay)
	if c.GraphDelay.Duration <= 0 {
		c.GraphDelay.Duration = c.Delay.Duration
	}

	columns := make([]Column, 0, Columns)
	for i, col := range c.Columns {
		if i >= Columns {
			break
		}
		valid := make([]MeterEntry, 0, len(col.Meters))
		for _, m := range col.Meters {
			m.Name = strings.TrimSpace(m.Name)
			if m.Name != "" {
				valid = append(valid, m)
			}
		}
		columns = append(columns, Column{Meters: valid})
	}
	// Only a file without any [[column]] table gets the default layout;
	// columns that are present but empty describe an empty header.
	if len(c.Columns) == 0 {
		columns = DefaultColumns()
	}
	for len(columns) < Columns {
		columns = append(columns, Column{})
	}
	c.Columns = columns
	return c
}

// LoadFile reads and parses the configuration file at path.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Load reads the first configuration file found on the search path and
// returns it with the path it came from. Unreadable or malformed files are
// logged and skipped; with none usable the defaults are returned.
func Load(log logger.Logger) (Config, string) {
	for _, path := range configPaths() {
		cfg, err := LoadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			log.Warn("skipping %s: %v", path, err)
			continue
		}
		log.Debug("loaded %s", path)
		return cfg, path
	}
	return Default(), ""
}

func configPaths() []string {
	var paths []string
	if env := strings.TrimSpace(os.Getenv(EnvConfig)); env != "" {
		paths = append(paths, env)
	}
	if cfgDir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(cfgDir, "perftop", "config.toml"))
	}
	paths = append(paths, "perftop.toml")
	return paths
}

// SavePath is where Save writes when no file was loaded.
func SavePath() (string, error) {
	if env := strings.TrimSpace(os.Getenv(EnvConfig)); env != "" {
		return env, nil
	}
	cfgDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(cfgDir, "perftop", "config.toml"), nil
}

// Save writes cfg to path, creating parent directories.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create config: %w", err)
	}
	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		f.Close()
		return fmt.Errorf("encode config: %w", err)
	}
	return f.Close()
}
