package theme

import "github.com/go-drift/clockface/pkg/graphics"

// ThemeData contains the theme configuration for the clock screen.
type ThemeData struct {
	// ColorScheme defines the color palette.
	ColorScheme ColorScheme

	// Brightness indicates if this is a light or dark theme.
	Brightness Brightness
}

// DefaultLightTheme returns the default light theme.
func DefaultLightTheme() *ThemeData {
	return &ThemeData{
		ColorScheme: LightColorScheme(),
		Brightness:  BrightnessLight,
	}
}

// DefaultDarkTheme returns the default dark theme.
func DefaultDarkTheme() *ThemeData {
	return &ThemeData{
		ColorScheme: DarkColorScheme(),
		Brightness:  BrightnessDark,
	}
}

// ThemeFor returns the default theme for the given brightness.
func ThemeFor(b Brightness) *ThemeData {
	if b == BrightnessDark {
		return DefaultDarkTheme()
	}
	return DefaultLightTheme()
}

// CopyWith returns a new ThemeData with the specified fields overridden.
func (t *ThemeData) CopyWith(colorScheme *ColorScheme, brightness *Brightness) *ThemeData {
	result := &ThemeData{
		ColorScheme: t.ColorScheme,
		Brightness:  t.Brightness,
	}
	if colorScheme != nil {
		result.ColorScheme = *colorScheme
	}
	if brightness != nil {
		result.Brightness = *brightness
	}
	return result
}

// ClockPalette assigns a color to each part of the clock. The roles only
// make the parts distinguishable; none of them carries state.
type ClockPalette struct {
	Background graphics.Color
	Dial       graphics.Color
	Ticks      graphics.Color
	HourHand   graphics.Color
	MinuteHand graphics.Color
	SecondHand graphics.Color
	Pivot      graphics.Color
	Text       graphics.Color
}

// ClockPalette derives the clock colors from the color scheme roles:
// hour, minute and second hands use primary, secondary and tertiary, the
// dial uses surface variant.
func (t *ThemeData) ClockPalette() ClockPalette {
	c := t.ColorScheme
	return ClockPalette{
		Background: c.Background,
		Dial:       c.SurfaceVariant,
		Ticks:      c.OnSurfaceVariant,
		HourHand:   c.Primary,
		MinuteHand: c.Secondary,
		SecondHand: c.Tertiary,
		Pivot:      c.Primary,
		Text:       c.OnBackground,
	}
}
