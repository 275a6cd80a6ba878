package iwd

import (
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/shazow/wifimenu/wifi"
)

// DefaultDir is iwd's state directory.
const DefaultDir = "/var/lib/iwd"

// Store writes network files into iwd's state directory.
type Store struct {
	Dir    string
	DryRun bool
	Logger *slog.Logger
}

// Filename returns the file iwd reads the settings for n from: the SSID when
// it only holds letters, digits, spaces, '-' or '_', otherwise '=' followed by
// the hex encoded SSID. The extension is .psk for encrypted networks and .open
// for open ones.
func Filename(n wifi.Network) string {
	ext := ".open"
	if n.Encrypted {
		ext = ".psk"
	}
	if plainSSID(n.ESSID) {
		return n.ESSID + ext
	}
	return "=" + hex.EncodeToString([]byte(n.ESSID)) + ext
}

func plainSSID(s string) bool {
	for _, c := range s {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == ' ', c == '-', c == '_':
		default:
			return false
		}
	}
	return true
}

// Render returns the contents of the network file.
func Render(n wifi.Network, key *string) (string, error) {
	if !n.Encrypted {
		return "[Settings]\nAutoConnect=true\n", nil
	}
	if key == nil {
		return "", fmt.Errorf("%w: %s", wifi.ErrMissingKey, n.ESSID)
	}
	// iwd reads one setting per line.
	if wifi.HasControl(*key) {
		return "", fmt.Errorf("key holds a control character and cannot be saved: %w", wifi.ErrInvalidOption)
	}
	return "[Security]\nPassphrase=" + *key + "\n\n[Settings]\nAutoConnect=true\n", nil
}

// WriteWifi writes the network file for n and returns its name.
func (s *Store) WriteWifi(n wifi.AnnotatedNetwork, key *string) (string, error) {
	if n.ESSID == "" {
		return "", fmt.Errorf("hidden network has no ssid to save: %w", wifi.ErrInvalidOption)
	}
	contents, err := Render(n.Network, key)
	if err != nil {
		return "", err
	}

	dir := s.Dir
	if dir == "" {
		dir = DefaultDir
	}
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}

	name := Filename(n.Network)
	path := filepath.Join(dir, name)
	if s.DryRun {
		logger.Info("dry run: skipping network file write", "path", path)
		return name, nil
	}
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	logger.Info("wrote network file", "path", path)
	return name, nil
}
