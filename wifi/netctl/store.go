package netctl

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/shazow/wifimenu/wifi"
)

const description = "Description='Automatically generated profile by wifimenu'"

// KeyFunc supplies the key for an encrypted network. It is only called when a
// new profile has to be written.
type KeyFunc func() (string, error)

// Store writes profiles into a netctl profile directory.
type Store struct {
	Dir    string
	DryRun bool
	Logger *slog.Logger
}

func (s *Store) dir() string {
	if s.Dir == "" {
		return DefaultDir
	}
	return s.Dir
}

func (s *Store) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.Default()
	}
	return s.Logger
}

// WifiID derives the profile identifier for a network: its existing profile
// when known, otherwise the essid with spaces and slashes replaced by
// underscores.
func WifiID(n wifi.AnnotatedNetwork) (string, error) {
	if n.IsKnown() {
		return string(n.Service), nil
	}
	if n.ESSID == "" {
		return "", fmt.Errorf("hidden network has no name to derive a profile from: %w", wifi.ErrInvalidOption)
	}
	return strings.NewReplacer(" ", "_", "/", "_").Replace(n.ESSID), nil
}

// WiredID derives the profile identifier for an ethernet interface.
func WiredID(iface string, existing *string) string {
	if existing != nil {
		return *existing
	}
	return "ethernet-" + iface
}

// RenderWifi renders the wireless profile template. key is required for
// encrypted networks and ignored for open ones.
func RenderWifi(iface string, n wifi.Network, key *string) (string, error) {
	security := "none"
	if n.Encrypted {
		if key == nil {
			return "", fmt.Errorf("%w: %s", wifi.ErrMissingKey, n.ESSID)
		}
		security = "wpa"
		if err := quotable("Key", *key, false); err != nil {
			return "", err
		}
	}
	// ESSID values are unescaped on read.
	if err := quotable("ESSID", n.ESSID, true); err != nil {
		return "", err
	}

	lines := []string{
		description,
		"Interface=" + iface,
		"Connection=wireless",
		"Security=" + security,
		"ESSID='" + n.ESSID + "'",
		"IP=dhcp",
	}
	if n.Encrypted {
		lines = append(lines, "Key='"+*key+"'")
	}
	return render(lines), nil
}

// quotable checks that value can be written between single quotes and read
// back unchanged. Profiles are sourced by bash, so a quote or a line break
// would let the value escape its field.
func quotable(field, value string, unescaped bool) error {
	var reason string
	switch {
	case strings.Contains(value, "'"):
		reason = "single quote"
	case wifi.HasControl(value):
		reason = "control character"
	case unescaped && wifi.Unescape(value) != value:
		reason = "backslash escape"
	default:
		return nil
	}
	return fmt.Errorf("%s holds a %s and cannot be saved in a profile: %w", field, reason, wifi.ErrInvalidOption)
}

// RenderWired renders the ethernet profile template.
func RenderWired(iface string) string {
	return render([]string{
		description,
		"Interface=" + iface,
		"Connection=ethernet",
		"IP=dhcp",
	})
}

func render(lines []string) string {
	return strings.TrimRight(strings.Join(lines, "\n"), "\n") + "\n"
}

// WriteWifi writes a wireless profile for n and returns its identifier.
func (s *Store) WriteWifi(iface string, n wifi.AnnotatedNetwork, key *string) (string, error) {
	id, err := WifiID(n)
	if err != nil {
		return "", err
	}
	return s.writeWifi(id, iface, n.Network, key)
}

func (s *Store) writeWifi(id, iface string, n wifi.Network, key *string) (string, error) {
	contents, err := RenderWifi(iface, n, key)
	if err != nil {
		return "", err
	}
	return id, s.write(id, contents)
}

// WriteWired writes an ethernet profile for iface and returns its identifier.
func (s *Store) WriteWired(iface string, existing *string) (string, error) {
	id := WiredID(iface, existing)
	return id, s.write(id, RenderWired(iface))
}

func (s *Store) write(id, contents string) error {
	path := filepath.Join(s.dir(), id)
	if s.DryRun {
		s.logger().Info("dry run: skipping profile write", "path", path, "contents", contents)
		return nil
	}
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		return &wifi.ProfileError{ID: id, Err: err}
	}
	s.logger().Info("wrote profile", "path", path)
	return nil
}

// Load parses all profiles in the store. A missing directory holds no
// profiles.
func (s *Store) Load() ([]Profile, error) {
	profiles, errs, err := LoadAll(s.dir())
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	for _, err := range errs {
		s.logger().Debug("skipping profile", "err", err)
	}
	return profiles, nil
}

// EnsureWifi returns the identifier of an existing profile for n on iface, or
// writes a new one. written reports whether a profile was written.
func (s *Store) EnsureWifi(iface string, n wifi.AnnotatedNetwork, key KeyFunc) (id string, written bool, err error) {
	profiles, err := s.Load()
	if err != nil {
		return "", false, err
	}
	found := FindWifi(profiles, WifiFilter{Interface: &iface, ESSID: &n.ESSID})
	if len(found) > 0 {
		return found[0].ID, false, nil
	}
	if err := quotable("ESSID", n.ESSID, true); err != nil {
		return "", false, err
	}

	var k *string
	if n.Encrypted {
		if key == nil {
			return "", false, fmt.Errorf("%w: %s", wifi.ErrMissingKey, n.ESSID)
		}
		v, err := key()
		if err != nil {
			return "", false, err
		}
		k = &v
	}
	n.Service = ""
	id, err = WifiID(n)
	if err != nil {
		return "", false, err
	}
	// The same network may already have profiles bound to other interfaces.
	id = s.freeID(id, iface)
	id, err = s.writeWifi(id, iface, n.Network, k)
	return id, err == nil, err
}

// freeID returns id when no file in the store uses it, otherwise the first
// unused of id-iface, id-iface-2, id-iface-3 and so on. Files that failed to
// parse count as used.
func (s *Store) freeID(id, iface string) string {
	taken := func(id string) bool {
		_, err := os.Lstat(filepath.Join(s.dir(), id))
		return err == nil
	}
	if !taken(id) {
		return id
	}
	base := id + "-" + iface
	candidate := base
	for i := 2; taken(candidate); i++ {
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
	return candidate
}

// EnsureWired returns the identifier of an existing ethernet profile for iface,
// or writes a new one.
func (s *Store) EnsureWired(iface string) (id string, written bool, err error) {
	profiles, err := s.Load()
	if err != nil {
		return "", false, err
	}
	found := FindWired(profiles, WiredFilter{Interface: &iface})
	if len(found) > 0 {
		return found[0].ID, false, nil
	}
	id, err = s.WriteWired(iface, nil)
	return id, err == nil, err
}
