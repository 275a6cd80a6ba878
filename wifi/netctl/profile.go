// Package netctl reads, types and writes netctl connection profiles.
package netctl

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/shazow/wifimenu/wifi"
)

// DefaultDir is where netctl looks for profiles.
const DefaultDir = "/etc/netctl"

// RawProfile is one profile file, unparsed.
type RawProfile struct {
	ID       string
	Contents string
	Location string
}

// ReadAll reads every regular file in dir, ordered by name. A file that
// cannot be read fails the whole read. A directory that cannot be listed is
// returned as a *wifi.ProfileError for dir; a missing one wraps fs.ErrNotExist.
func ReadAll(dir string) ([]RawProfile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &wifi.ProfileError{ID: dir, Err: err}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	var profiles []RawProfile
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		path := filepath.Join(dir, e.Name())
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, &wifi.ProfileError{ID: e.Name(), Err: err}
		}
		profiles = append(profiles, RawProfile{
			ID:       e.Name(),
			Contents: string(b),
			Location: path,
		})
	}
	return profiles, nil
}

// Fields are the recognized keys of a profile. A nil field was not present.
type Fields struct {
	ESSID      *string
	Interface  *string
	Connection *string
	Key        *string
}

// ParseFields extracts the recognized KEY=value lines. Values lose one layer
// of matching quotes; ESSID values are also backslash-unescaped. When a key
// repeats, the last line wins.
func ParseFields(contents string) Fields {
	var f Fields
	sc := bufio.NewScanner(strings.NewReader(contents))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		value = wifi.Unquote(strings.TrimSpace(value))
		switch strings.TrimSpace(key) {
		case "ESSID":
			v := wifi.Unescape(value)
			f.ESSID = &v
		case "Interface":
			f.Interface = &value
		case "Connection":
			f.Connection = &value
		case "Key":
			f.Key = &value
		}
	}
	return f
}

// Kind is the connection type of a profile.
type Kind int

const (
	KindWifi Kind = iota
	KindWired
)

func (k Kind) String() string {
	switch k {
	case KindWifi:
		return "wireless"
	case KindWired:
		return "ethernet"
	}
	return "unknown"
}

// Profile is a parsed profile whose connection kind is known.
type Profile struct {
	ID        string
	Kind      Kind
	Interface string
	ESSID     *string
	Key       *string
}

// Parse types a raw profile. Connection must be wireless or ethernet and
// Interface must be present.
func Parse(raw RawProfile) (Profile, error) {
	f := ParseFields(raw.Contents)
	p := Profile{ID: raw.ID, ESSID: f.ESSID, Key: f.Key}

	if f.Connection == nil {
		return Profile{}, &wifi.ProfileError{ID: raw.ID, Field: "Connection", Err: wifi.ErrMissingField}
	}
	switch *f.Connection {
	case "wireless":
		p.Kind = KindWifi
	case "ethernet":
		p.Kind = KindWired
	default:
		return Profile{}, &wifi.ProfileError{
			ID:    raw.ID,
			Field: "Connection",
			Err:   fmt.Errorf("unsupported connection %q: %w", *f.Connection, wifi.ErrMissingField),
		}
	}

	if f.Interface == nil {
		return Profile{}, &wifi.ProfileError{ID: raw.ID, Field: "Interface", Err: wifi.ErrMissingField}
	}
	p.Interface = *f.Interface
	return p, nil
}

// WifiProfile is a wireless profile.
type WifiProfile struct {
	ID        string
	ESSID     string
	Interface string
	Key       *string
}

// WiredProfile is an ethernet profile.
type WiredProfile struct {
	ID        string
	Interface string
}

// Wifi narrows p to a wireless profile.
func (p Profile) Wifi() (WifiProfile, error) {
	if p.Kind != KindWifi {
		return WifiProfile{}, &wifi.ProfileError{ID: p.ID, Field: "Connection", Err: wifi.ErrKindMismatch}
	}
	if p.ESSID == nil {
		return WifiProfile{}, &wifi.ProfileError{ID: p.ID, Field: "ESSID", Err: wifi.ErrMissingField}
	}
	return WifiProfile{ID: p.ID, ESSID: *p.ESSID, Interface: p.Interface, Key: p.Key}, nil
}

// Wired narrows p to an ethernet profile.
func (p Profile) Wired() (WiredProfile, error) {
	if p.Kind != KindWired {
		return WiredProfile{}, &wifi.ProfileError{ID: p.ID, Field: "Connection", Err: wifi.ErrKindMismatch}
	}
	return WiredProfile{ID: p.ID, Interface: p.Interface}, nil
}

// LoadAll reads and parses every profile in dir. Unparseable profiles are
// returned alongside the good ones rather than failing the load.
func LoadAll(dir string) ([]Profile, []error, error) {
	raws, err := ReadAll(dir)
	if err != nil {
		return nil, nil, err
	}
	var profiles []Profile
	var errs []error
	for _, raw := range raws {
		p, err := Parse(raw)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		profiles = append(profiles, p)
	}
	return profiles, errs, nil
}
