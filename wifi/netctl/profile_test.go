package netctl

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shazow/wifimenu/wifi"
)

func writeProfiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, contents := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(contents), 0o600))
	}
	return dir
}

func TestReadAll(t *testing.T) {
	dir := writeProfiles(t, map[string]string{
		"b-home":  "Connection=wireless\n",
		"a-cafe":  "Connection=wireless\n",
		"c-wired": "Connection=ethernet\n",
	})
	require.NoError(t, os.Mkdir(filepath.Join(dir, "examples"), 0o755))

	raws, err := ReadAll(dir)
	require.NoError(t, err)
	require.Len(t, raws, 3, "directories are skipped")
	assert.Equal(t, "a-cafe", raws[0].ID)
	assert.Equal(t, "b-home", raws[1].ID)
	assert.Equal(t, "c-wired", raws[2].ID)
	assert.Equal(t, filepath.Join(dir, "a-cafe"), raws[0].Location)
	assert.Equal(t, "Connection=wireless\n", raws[0].Contents)
}

func TestReadAllMissingDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nope")
	_, err := ReadAll(dir)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	assert.Equal(t, wifi.KindConfig, wifi.KindOf(err))

	var pe *wifi.ProfileError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, dir, pe.ID)
}

func TestParseFields(t *testing.T) {
	f := ParseFields(`# comment ESSID='ignored'
Description='A profile'
Interface=wlan0
Connection="wireless"
ESSID='Caf\xc3\xa9 \"Bar\"'
Key=unquoted
NotAKey
`)
	require.NotNil(t, f.ESSID)
	assert.Equal(t, `Café "Bar"`, *f.ESSID)
	require.NotNil(t, f.Interface)
	assert.Equal(t, "wlan0", *f.Interface)
	require.NotNil(t, f.Connection)
	assert.Equal(t, "wireless", *f.Connection)
	require.NotNil(t, f.Key)
	assert.Equal(t, "unquoted", *f.Key)
}

func TestParseFieldsQuotes(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{`ESSID='single'`, "single"},
		{`ESSID="double"`, "double"},
		{`ESSID='mismatched"`, `'mismatched"`},
		{`ESSID=''`, ""},
		{`ESSID=''quoted''`, "'quoted'"},
		{`ESSID=a=b`, "a=b"},
	}
	for _, tt := range tests {
		f := ParseFields(tt.line)
		if assert.NotNil(t, f.ESSID, tt.line) {
			assert.Equal(t, tt.want, *f.ESSID, tt.line)
		}
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		contents string
		kind     Kind
		field    string
		err      error
	}{
		{"wifi", "Interface=wlan0\nConnection=wireless\nESSID=Lobby\n", KindWifi, "", nil},
		{"wired", "Interface=eth0\nConnection=ethernet\n", KindWired, "", nil},
		{"no-connection", "Interface=wlan0\n", 0, "Connection", wifi.ErrMissingField},
		{"bond", "Interface=bond0\nConnection=bond\n", 0, "Connection", wifi.ErrMissingField},
		{"no-interface", "Connection=wireless\n", 0, "Interface", wifi.ErrMissingField},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Parse(RawProfile{ID: tt.name, Contents: tt.contents})
			if tt.err == nil {
				require.NoError(t, err)
				assert.Equal(t, tt.kind, p.Kind)
				assert.Equal(t, tt.name, p.ID)
				return
			}
			require.ErrorIs(t, err, tt.err)
			var pe *wifi.ProfileError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, tt.name, pe.ID)
			assert.Equal(t, tt.field, pe.Field)
			assert.Equal(t, wifi.KindMissingField, wifi.KindOf(err))
		})
	}
}

func TestNarrowing(t *testing.T) {
	wifiProfile, err := Parse(RawProfile{ID: "lobby", Contents: "Interface=wlan0\nConnection=wireless\nESSID=Lobby\nKey=pw\n"})
	require.NoError(t, err)
	wiredProfile, err := Parse(RawProfile{ID: "eth", Contents: "Interface=eth0\nConnection=ethernet\n"})
	require.NoError(t, err)
	noESSID, err := Parse(RawProfile{ID: "anon", Contents: "Interface=wlan0\nConnection=wireless\n"})
	require.NoError(t, err)

	w, err := wifiProfile.Wifi()
	require.NoError(t, err)
	assert.Equal(t, "Lobby", w.ESSID)
	assert.Equal(t, "pw", *w.Key)

	_, err = wifiProfile.Wired()
	assert.Equal(t, wifi.KindKindMismatch, wifi.KindOf(err))

	_, err = wiredProfile.Wifi()
	assert.Equal(t, wifi.KindKindMismatch, wifi.KindOf(err))

	wired, err := wiredProfile.Wired()
	require.NoError(t, err)
	assert.Equal(t, WiredProfile{ID: "eth", Interface: "eth0"}, wired)

	_, err = noESSID.Wifi()
	assert.Equal(t, wifi.KindMissingField, wifi.KindOf(err))
	assert.EqualError(t, err, "profile anon: missing profile field: ESSID")
}

func TestLoadAll(t *testing.T) {
	dir := writeProfiles(t, map[string]string{
		"good":   "Interface=wlan0\nConnection=wireless\nESSID=Good\n",
		"broken": "ESSID=Broken\n",
	})
	profiles, errs, err := LoadAll(dir)
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	assert.Equal(t, "good", profiles[0].ID)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "profile broken")
}
