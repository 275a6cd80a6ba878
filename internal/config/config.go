// Package config reads the optional TOML configuration file. Its keys are flag
// names; values fill in flags that were not given on the command line or in the
// environment.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/BurntSushi/toml"
)

// Filename is the name of the config file inside the user config directory.
const Filename = "wifimenu/config.toml"

// DefaultPath returns the config file location under the user's config
// directory, or an empty string when there is none.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, Filename)
}

// Parser is an ff.ConfigFileParser for TOML. Keys of nested tables are joined
// with "-", so
//
//	[scan]
//	method = "iw-scan"
//
// sets --scan-method. An array sets its flag once per element.
func Parser(r io.Reader, set func(name, value string) error) error {
	var m map[string]any
	if _, err := toml.NewDecoder(r).Decode(&m); err != nil {
		return fmt.Errorf("failed to decode config: %w", err)
	}
	return walk("", m, set)
}

func walk(prefix string, m map[string]any, set func(name, value string) error) error {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		name := k
		if prefix != "" {
			name = prefix + "-" + k
		}
		switch v := m[k].(type) {
		case map[string]any:
			if err := walk(name, v, set); err != nil {
				return err
			}
		case []any:
			for _, elem := range v {
				if err := setValue(name, elem, set); err != nil {
					return err
				}
			}
		default:
			if err := setValue(name, v, set); err != nil {
				return err
			}
		}
	}
	return nil
}

func setValue(name string, v any, set func(name, value string) error) error {
	var s string
	switch v := v.(type) {
	case string:
		s = v
	case time.Time:
		s = v.Format(time.RFC3339)
	case map[string]any, []any:
		return fmt.Errorf("config key %s: nested value not allowed here", name)
	default:
		s = fmt.Sprint(v)
	}
	if err := set(name, s); err != nil {
		return fmt.Errorf("config key %s: %w", name, err)
	}
	return nil
}
