package theme

import (
	"fmt"
	"strings"

	"github.com/go-drift/clockface/pkg/graphics"
)

// Brightness describes whether a theme is light or dark.
type Brightness int

const (
	// BrightnessLight is a light background with dark content.
	BrightnessLight Brightness = iota
	// BrightnessDark is a dark background with light content.
	BrightnessDark
)

// String returns "light" or "dark".
func (b Brightness) String() string {
	if b == BrightnessDark {
		return "dark"
	}
	return "light"
}

// ParseBrightness parses "light" or "dark", case-insensitively.
func ParseBrightness(s string) (Brightness, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "light":
		return BrightnessLight, nil
	case "dark":
		return BrightnessDark, nil
	default:
		return BrightnessLight, fmt.Errorf("unknown brightness %q (want light or dark)", s)
	}
}

// ColorScheme defines the color palette roles used across an app.
type ColorScheme struct {
	Primary          graphics.Color
	OnPrimary        graphics.Color
	Secondary        graphics.Color
	OnSecondary      graphics.Color
	Tertiary         graphics.Color
	OnTertiary       graphics.Color
	Surface          graphics.Color
	OnSurface        graphics.Color
	SurfaceVariant   graphics.Color
	OnSurfaceVariant graphics.Color
	Background       graphics.Color
	OnBackground     graphics.Color
	Outline          graphics.Color
	Error            graphics.Color
	OnError          graphics.Color
}

// LightColorScheme returns the Material 3 baseline light palette.
func LightColorScheme() ColorScheme {
	return ColorScheme{
		Primary:          graphics.RGB(0x67, 0x50, 0xA4),
		OnPrimary:        graphics.RGB(0xFF, 0xFF, 0xFF),
		Secondary:        graphics.RGB(0x62, 0x5B, 0x71),
		OnSecondary:      graphics.RGB(0xFF, 0xFF, 0xFF),
		Tertiary:         graphics.RGB(0x7D, 0x52, 0x60),
		OnTertiary:       graphics.RGB(0xFF, 0xFF, 0xFF),
		Surface:          graphics.RGB(0xFF, 0xFB, 0xFE),
		OnSurface:        graphics.RGB(0x1C, 0x1B, 0x1F),
		SurfaceVariant:   graphics.RGB(0xE7, 0xE0, 0xEC),
		OnSurfaceVariant: graphics.RGB(0x49, 0x45, 0x4F),
		Background:       graphics.RGB(0xFF, 0xFB, 0xFE),
		OnBackground:     graphics.RGB(0x1C, 0x1B, 0x1F),
		Outline:          graphics.RGB(0x79, 0x74, 0x7E),
		Error:            graphics.RGB(0xB3, 0x26, 0x1E),
		OnError:          graphics.RGB(0xFF, 0xFF, 0xFF),
	}
}

// DarkColorScheme returns the Material 3 baseline dark palette.
func DarkColorScheme() ColorScheme {
	return ColorScheme{
		Primary:          graphics.RGB(0xD0, 0xBC, 0xFF),
		OnPrimary:        graphics.RGB(0x38, 0x1E, 0x72),
		Secondary:        graphics.RGB(0xCC, 0xC2, 0xDC),
		OnSecondary:      graphics.RGB(0x33, 0x2D, 0x41),
		Tertiary:         graphics.RGB(0xEF, 0xB8, 0xC8),
		OnTertiary:       graphics.RGB(0x49, 0x25, 0x32),
		Surface:          graphics.RGB(0x1C, 0x1B, 0x1F),
		OnSurface:        graphics.RGB(0xE6, 0xE1, 0xE5),
		SurfaceVariant:   graphics.RGB(0x49, 0x45, 0x4F),
		OnSurfaceVariant: graphics.RGB(0xCA, 0xC4, 0xD0),
		Background:       graphics.RGB(0x14, 0x13, 0x18),
		OnBackground:     graphics.RGB(0xE6, 0xE1, 0xE5),
		Outline:          graphics.RGB(0x93, 0x8F, 0x99),
		Error:            graphics.RGB(0xF2, 0xB8, 0xB5),
		OnError:          graphics.RGB(0x60, 0x14, 0x10),
	}
}

// Override replaces a single role by name ("primary", "on_surface", ...).
func (c *ColorScheme) Override(role string, color graphics.Color) error {
	slot := c.role(role)
	if slot == nil {
		return fmt.Errorf("unknown color role %q", role)
	}
	*slot = color
	return nil
}

func (c *ColorScheme) role(name string) *graphics.Color {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "primary":
		return &c.Primary
	case "on_primary":
		return &c.OnPrimary
	case "secondary":
		return &c.Secondary
	case "on_secondary":
		return &c.OnSecondary
	case "tertiary":
		return &c.Tertiary
	case "on_tertiary":
		return &c.OnTertiary
	case "surface":
		return &c.Surface
	case "on_surface":
		return &c.OnSurface
	case "surface_variant":
		return &c.SurfaceVariant
	case "on_surface_variant":
		return &c.OnSurfaceVariant
	case "background":
		return &c.Background
	case "on_background":
		return &c.OnBackground
	case "outline":
		return &c.Outline
	case "error":
		return &c.Error
	case "on_error":
		return &c.OnError
	default:
		return nil
	}
}
