package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestLoadTheme(t *testing.T) {
	tomlData := `
		Primary = "#FF0000"
		Subtle = ["#00FF00", "#00EE00"]
		Success = "#0000FF"
		Error = "#FFFF00"
		Normal = "#FF00FF"
		Disabled = "#00FFFF"
		Border = "#800080"
		SignalHigh = "#008000"
		SignalLow = "#FFA500"
		NetworkSavedIcon = "* "
	`

	reader := strings.NewReader(tomlData)
	loadedTheme, err := LoadTheme(reader)
	if err != nil {
		t.Fatalf("LoadTheme failed: %v", err)
	}

	// Verify a single color
	expectedColor := Color{lipgloss.Color("#FF0000")}
	if loadedTheme.Primary != expectedColor {
		t.Errorf("Expected Primary color to be %v, but got %v", expectedColor, loadedTheme.Primary)
	}

	// Verify an adaptive color
	adaptiveColor, ok := loadedTheme.Subtle.TerminalColor.(lipgloss.AdaptiveColor)
	if !ok {
		t.Fatalf("Expected Subtle color to be an AdaptiveColor, but it's not")
	}
	if adaptiveColor.Light != "#00FF00" {
		t.Errorf("Expected Subtle light color to be #00FF00, but got %s", adaptiveColor.Light)
	}
	if adaptiveColor.Dark != "#00EE00" {
		t.Errorf("Expected Subtle dark color to be #00EE00, but got %s", adaptiveColor.Dark)
	}

	if loadedTheme.NetworkSavedIcon != "* " {
		t.Errorf("Expected saved icon override, got %q", loadedTheme.NetworkSavedIcon)
	}
	if loadedTheme.Saved != NewDefaultTheme().Saved {
		t.Errorf("Colors missing from the file should keep their defaults")
	}
}

func TestLoadTheme_NilReader(t *testing.T) {
	_, err := LoadTheme(nil)
	if err == nil {
		t.Fatalf("LoadTheme(nil) should have returned an error, but it didn't")
	}
}

func TestLoadTheme_InvalidToml(t *testing.T) {
	for _, data := range []string{`Primary = `, `Primary = ["#000"]`, `Primary = 5`} {
		_, err := LoadTheme(strings.NewReader(data))
		if err == nil {
			t.Errorf("LoadTheme(%q) should have failed, but it didn't", data)
		}
	}
}

func TestLoadThemeFile(t *testing.T) {
	original := CurrentTheme
	t.Cleanup(func() { CurrentTheme = original })

	if err := LoadThemeFile(""); err != nil {
		t.Fatalf("empty path should be a no-op, got %v", err)
	}

	path := filepath.Join(t.TempDir(), "theme.toml")
	if err := os.WriteFile(path, []byte(`Primary = "#123456"`), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := LoadThemeFile(path); err != nil {
		t.Fatalf("LoadThemeFile failed: %v", err)
	}
	if CurrentTheme.Primary.hex() != "#123456" {
		t.Errorf("Expected CurrentTheme to be replaced, got %v", CurrentTheme.Primary)
	}

	if err := LoadThemeFile(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("expected an error for a missing file")
	}
}
