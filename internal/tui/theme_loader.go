package tui

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/lipgloss"
)

// themeFile represents the structure of the theme TOML file.
// Pointers distinguish a missing value from an empty one, so a theme only
// needs to name the colors it overrides.
type themeFile struct {
	Primary    *Color `toml:"Primary,omitempty"`
	Subtle     *Color `toml:"Subtle,omitempty"`
	Success    *Color `toml:"Success,omitempty"`
	Error      *Color `toml:"Error,omitempty"`
	Normal     *Color `toml:"Normal,omitempty"`
	Disabled   *Color `toml:"Disabled,omitempty"`
	Border     *Color `toml:"Border,omitempty"`
	Saved      *Color `toml:"Saved,omitempty"`
	SignalHigh *Color `toml:"SignalHigh,omitempty"`
	SignalLow  *Color `toml:"SignalLow,omitempty"`

	NetworkOpenIcon   *string `toml:"NetworkOpenIcon,omitempty"`
	NetworkSecureIcon *string `toml:"NetworkSecureIcon,omitempty"`
	NetworkSavedIcon  *string `toml:"NetworkSavedIcon,omitempty"`
}

// UnmarshalTOML implements toml.Unmarshaler.
func (c *Color) UnmarshalTOML(v interface{}) error {
	switch v := v.(type) {
	case string:
		c.TerminalColor = lipgloss.Color(v)
		return nil
	case []interface{}:
		if len(v) != 2 {
			return fmt.Errorf("adaptive color needs [light, dark], got %d values", len(v))
		}
		light, ok1 := v[0].(string)
		dark, ok2 := v[1].(string)
		if !ok1 || !ok2 {
			return errors.New("adaptive color values must be strings")
		}
		c.TerminalColor = lipgloss.AdaptiveColor{Light: light, Dark: dark}
		return nil
	}
	return fmt.Errorf("unsupported color value %v", v)
}

// LoadTheme reads a theme from r on top of the default theme.
func LoadTheme(r io.Reader) (Theme, error) {
	if r == nil {
		return Theme{}, errors.New("no theme to read")
	}

	var tf themeFile
	if _, err := toml.NewDecoder(r).Decode(&tf); err != nil {
		return Theme{}, fmt.Errorf("failed to decode theme: %w", err)
	}

	theme := NewDefaultTheme()
	overrides := []struct {
		src *Color
		dst *Color
	}{
		{tf.Primary, &theme.Primary},
		{tf.Subtle, &theme.Subtle},
		{tf.Success, &theme.Success},
		{tf.Error, &theme.Error},
		{tf.Normal, &theme.Normal},
		{tf.Disabled, &theme.Disabled},
		{tf.Border, &theme.Border},
		{tf.Saved, &theme.Saved},
		{tf.SignalHigh, &theme.SignalHigh},
		{tf.SignalLow, &theme.SignalLow},
	}
	for _, o := range overrides {
		if o.src != nil {
			*o.dst = *o.src
		}
	}
	if tf.NetworkOpenIcon != nil {
		theme.NetworkOpenIcon = *tf.NetworkOpenIcon
	}
	if tf.NetworkSecureIcon != nil {
		theme.NetworkSecureIcon = *tf.NetworkSecureIcon
	}
	if tf.NetworkSavedIcon != nil {
		theme.NetworkSavedIcon = *tf.NetworkSavedIcon
	}
	return theme, nil
}

// LoadThemeFile loads the theme at path into CurrentTheme. An empty path
// keeps the default theme.
func LoadThemeFile(path string) error {
	if path == "" {
		return nil
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	theme, err := LoadTheme(f)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	CurrentTheme = theme
	return nil
}
