package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/clockface/pkg/graphics"
	"github.com/go-drift/clockface/pkg/screen"
	"github.com/go-drift/clockface/pkg/theme"
)

// FileName is the config file looked up in the working directory.
const FileName = "clockface.yaml"

// SchemaMajor is the only config schema major version understood.
const SchemaMajor = "v1"

var (
	// ErrInvalid is wrapped by every validation error.
	ErrInvalid = errors.New("invalid config")
	// ErrUnsupportedVersion is returned for a schema version other than v1.x.
	ErrUnsupportedVersion = errors.New("unsupported config version")
)

// Config represents the optional clockface.yaml configuration.
type Config struct {
	Version string            `yaml:"version,omitempty"`
	Theme   string            `yaml:"theme,omitempty"`
	Colors  map[string]string `yaml:"colors,omitempty"`
	Screen  ScreenConfig      `yaml:"screen"`
	Render  RenderConfig      `yaml:"render"`
	Log     LogConfig         `yaml:"log"`
}

// ScreenConfig contains task cadences.
type ScreenConfig struct {
	Refresh    string `yaml:"refresh,omitempty"`
	Sweep      string `yaml:"sweep,omitempty"`
	Frame      string `yaml:"frame,omitempty"`
	PhaseLock  bool   `yaml:"phase_lock,omitempty"`
	SecondHand string `yaml:"second_hand,omitempty"`
}

// RenderConfig contains snapshot settings.
type RenderConfig struct {
	Size int `yaml:"size,omitempty"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level string `yaml:"level,omitempty"`
}

// Resolved contains resolved configuration values.
type Resolved struct {
	Path       string
	Version    string
	Theme      *theme.ThemeData
	Palette    theme.ClockPalette
	Refresh    time.Duration
	Sweep      time.Duration
	Frame      time.Duration
	PhaseLock  bool
	SecondHand screen.SecondHandMode
	Size       int
	LogLevel   log.Level
}

// DefaultSize is the snapshot edge length in pixels.
const DefaultSize = 320

// LoadOptional reads path if present. A missing file yields an empty Config.
func LoadOptional(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	return &cfg, nil
}

// Override adjusts a loaded Config before it is resolved, usually to apply
// command line flags.
type Override func(*Config)

// Resolve loads path (if present), applies overrides in order and resolves
// defaults.
func Resolve(path string, overrides ...Override) (*Resolved, error) {
	cfg, err := LoadOptional(path)
	if err != nil {
		return nil, err
	}
	for _, override := range overrides {
		override(cfg)
	}
	r, err := cfg.Resolve()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	r.Path = path
	return r, nil
}

// Resolve validates the config and fills in defaults.
func (c *Config) Resolve() (*Resolved, error) {
	version := strings.TrimSpace(c.Version)
	if version == "" {
		version = SchemaMajor
	}
	if err := checkVersion(version); err != nil {
		return nil, err
	}

	brightness := theme.BrightnessLight
	if name := strings.TrimSpace(c.Theme); name != "" {
		b, err := theme.ParseBrightness(name)
		if err != nil {
			return nil, fmt.Errorf("%w: theme: %v", ErrInvalid, err)
		}
		brightness = b
	}
	td := theme.ThemeFor(brightness)
	if len(c.Colors) > 0 {
		scheme := td.ColorScheme
		for role, value := range c.Colors {
			color, err := graphics.ParseColor(value)
			if err != nil {
				return nil, fmt.Errorf("%w: colors.%s: %v", ErrInvalid, role, err)
			}
			if err := scheme.Override(role, color); err != nil {
				return nil, fmt.Errorf("%w: colors: %v", ErrInvalid, err)
			}
		}
		td = td.CopyWith(&scheme, nil)
	}

	refresh, err := duration("screen.refresh", c.Screen.Refresh, screen.DefaultRefreshInterval)
	if err != nil {
		return nil, err
	}
	sweep, err := duration("screen.sweep", c.Screen.Sweep, screen.DefaultSweepPeriod)
	if err != nil {
		return nil, err
	}
	frame, err := duration("screen.frame", c.Screen.Frame, screen.DefaultFrameInterval)
	if err != nil {
		return nil, err
	}

	var hand screen.SecondHandMode
	switch strings.ToLower(strings.TrimSpace(c.Screen.SecondHand)) {
	case "", "sweep":
		hand = screen.SecondHandSweep
	case "tick":
		hand = screen.SecondHandTick
	default:
		return nil, fmt.Errorf("%w: screen.second_hand must be sweep or tick (got %q)", ErrInvalid, c.Screen.SecondHand)
	}

	size := c.Render.Size
	switch {
	case size == 0:
		size = DefaultSize
	case size < 0:
		return nil, fmt.Errorf("%w: render.size must be positive (got %d)", ErrInvalid, size)
	}

	level := log.InfoLevel
	if name := strings.TrimSpace(c.Log.Level); name != "" {
		level, err = log.ParseLevel(name)
		if err != nil {
			return nil, fmt.Errorf("%w: log.level: %v", ErrInvalid, err)
		}
	}

	return &Resolved{
		Version:    version,
		Theme:      td,
		Palette:    td.ClockPalette(),
		Refresh:    refresh,
		Sweep:      sweep,
		Frame:      frame,
		PhaseLock:  c.Screen.PhaseLock,
		SecondHand: hand,
		Size:       size,
		LogLevel:   level,
	}, nil
}

func checkVersion(version string) error {
	canonical := version
	if !strings.HasPrefix(canonical, "v") {
		canonical = "v" + canonical
	}
	if !semver.IsValid(canonical) {
		return fmt.Errorf("%w: version %q is not a semantic version", ErrInvalid, version)
	}
	if semver.Major(canonical) != SchemaMajor {
		return fmt.Errorf("%w: %s (want %s.x)", ErrUnsupportedVersion, version, SchemaMajor)
	}
	return nil
}

func duration(field, value string, fallback time.Duration) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrInvalid, field, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: %s must be positive (got %s)", ErrInvalid, field, value)
	}
	return d, nil
}
