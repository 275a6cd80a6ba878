package iwd

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/godbus/dbus/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shazow/wifimenu/wifi"
)

type fakeLister struct {
	objects ManagedObjects
	err     error
}

func (f fakeLister) ManagedObjects(ctx context.Context) (ManagedObjects, error) {
	return f.objects, f.err
}

func TestKnown(t *testing.T) {
	r := &Resolver{Objects: fakeLister{objects: ManagedObjects{
		"/net/connman/iwd/0": {
			"net.connman.iwd.Adapter": {"Name": dbus.MakeVariant("phy0")},
		},
		"/net/connman/iwd/4c414e": {
			iwdKnownNetworkIface: {
				"Name": dbus.MakeVariant("LAN Solo"),
				"Type": dbus.MakeVariant("psk"),
			},
		},
		"/net/connman/iwd/46425": {
			iwdKnownNetworkIface: {"Name": dbus.MakeVariant("FBI Surveillance Van")},
		},
		"/net/connman/iwd/broken": {
			iwdKnownNetworkIface: {"Name": dbus.MakeVariant(42)},
		},
	}}}

	known, err := r.Known(context.Background())
	require.NoError(t, err)
	assert.Equal(t, wifi.KnownNetworks{
		"LAN Solo":             wifi.ServiceIwd,
		"FBI Surveillance Van": wifi.ServiceIwd,
	}, known)
}

func TestKnownError(t *testing.T) {
	r := &Resolver{Objects: fakeLister{err: errors.New("iwd not running")}}
	_, err := r.Known(context.Background())
	assert.ErrorContains(t, err, "iwd not running")
}

func TestFilename(t *testing.T) {
	tests := []struct {
		network wifi.Network
		want    string
	}{
		{wifi.Network{ESSID: "LAN Solo", Encrypted: true}, "LAN Solo.psk"},
		{wifi.Network{ESSID: "free-wifi_2"}, "free-wifi_2.open"},
		{wifi.Network{ESSID: "Café"}, "=436166c3a9.open"},
		{wifi.Network{ESSID: "a/b", Encrypted: true}, "=612f62.psk"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Filename(tt.network), tt.network.ESSID)
	}
}

func TestWriteWifi(t *testing.T) {
	s := &Store{Dir: t.TempDir()}
	key := "correct horse"
	name, err := s.WriteWifi(wifi.AnnotatedNetwork{Network: wifi.Network{ESSID: "LAN Solo", Encrypted: true}}, &key)
	require.NoError(t, err)
	assert.Equal(t, "LAN Solo.psk", name)

	b, err := os.ReadFile(filepath.Join(s.Dir, name))
	require.NoError(t, err)
	assert.Equal(t, "[Security]\nPassphrase=correct horse\n\n[Settings]\nAutoConnect=true\n", string(b))

	_, err = s.WriteWifi(wifi.AnnotatedNetwork{Network: wifi.Network{ESSID: "Locked", Encrypted: true}}, nil)
	assert.ErrorIs(t, err, wifi.ErrMissingKey)
	_, err = s.WriteWifi(wifi.AnnotatedNetwork{}, nil)
	assert.ErrorIs(t, err, wifi.ErrInvalidOption)
}

func TestWriteWifiRejectsMultilineKey(t *testing.T) {
	s := &Store{Dir: t.TempDir()}
	for _, key := range []string{"secret\n[Settings]\nAutoConnect=false", "tab\tkey", "cr\r"} {
		_, err := s.WriteWifi(wifi.AnnotatedNetwork{Network: wifi.Network{ESSID: "Lobby", Encrypted: true}}, &key)
		assert.ErrorIs(t, err, wifi.ErrInvalidOption, "%q", key)
	}
	entries, err := os.ReadDir(s.Dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestWriteWifiDryRun(t *testing.T) {
	s := &Store{Dir: t.TempDir(), DryRun: true}
	_, err := s.WriteWifi(wifi.AnnotatedNetwork{Network: wifi.Network{ESSID: "Open"}}, nil)
	require.NoError(t, err)
	entries, err := os.ReadDir(s.Dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
