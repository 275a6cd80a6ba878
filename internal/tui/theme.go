package tui

import "github.com/charmbracelet/lipgloss"

// Color is a terminal color that can be read from TOML either as a single
// color or as a [light, dark] pair.
type Color struct {
	lipgloss.TerminalColor
}

// Theme contains the colors for the picker.
type Theme struct {
	Primary  Color
	Subtle   Color
	Success  Color
	Error    Color
	Normal   Color
	Disabled Color
	Border   Color
	Saved    Color

	SignalHigh Color
	SignalLow  Color

	NetworkOpenIcon   string
	NetworkSecureIcon string
	NetworkSavedIcon  string
}

// CurrentTheme is the active theme for the picker.
var CurrentTheme = NewDefaultTheme()

// NewDefaultTheme creates a new default theme.
func NewDefaultTheme() Theme {
	return Theme{
		Primary:  Color{lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#D359E3"}}, // Purple/Pink
		Subtle:   Color{lipgloss.AdaptiveColor{Light: "#BDBDBD", Dark: "#616161"}}, // Gray
		Success:  Color{lipgloss.AdaptiveColor{Light: "#388E3C", Dark: "#81C784"}}, // Green
		Error:    Color{lipgloss.AdaptiveColor{Light: "#D32F2F", Dark: "#E57373"}}, // Red
		Normal:   Color{lipgloss.AdaptiveColor{Light: "#212121", Dark: "#FFFFFF"}}, // Black/White
		Disabled: Color{lipgloss.AdaptiveColor{Light: "#E0E0E0", Dark: "#424242"}},
		Border:   Color{lipgloss.AdaptiveColor{Light: "#BDBDBD", Dark: "#616161"}},
		Saved:    Color{lipgloss.AdaptiveColor{Light: "#1976D2", Dark: "#64B5F6"}}, // Blue

		SignalHigh: Color{lipgloss.AdaptiveColor{Light: "#00B300", Dark: "#00FF00"}},
		SignalLow:  Color{lipgloss.AdaptiveColor{Light: "#D05F00", Dark: "#BC3C00"}},

		NetworkOpenIcon:   "🔓 ",
		NetworkSecureIcon: "🔒 ",
		NetworkSavedIcon:  "💾 ",
	}
}

// hex returns the color as a hex string for the current background.
func (c Color) hex() string {
	switch v := c.TerminalColor.(type) {
	case lipgloss.Color:
		return string(v)
	case lipgloss.AdaptiveColor:
		if lipgloss.HasDarkBackground() {
			return v.Dark
		}
		return v.Light
	}
	return ""
}
