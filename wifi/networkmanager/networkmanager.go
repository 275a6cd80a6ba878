package networkmanager

import (
	"context"
	"fmt"
	"log/slog"

	gonetworkmanager "github.com/Wifx/gonetworkmanager/v3"
	"github.com/google/uuid"

	"github.com/shazow/wifimenu/wifi"
)

// DBus resolves and saves NetworkManager connections through the settings
// service on the system bus.
type DBus struct {
	Settings gonetworkmanager.Settings
	DryRun   bool
	Logger   *slog.Logger
}

// NewDBus connects to the NetworkManager settings service.
func NewDBus(logger *slog.Logger) (*DBus, error) {
	settings, err := gonetworkmanager.NewSettings()
	if err != nil {
		return nil, fmt.Errorf("failed to get networkmanager settings: %w", err)
	}
	return &DBus{Settings: settings, Logger: logger}, nil
}

func (b *DBus) logger() *slog.Logger {
	if b.Logger == nil {
		return slog.Default()
	}
	return b.Logger
}

// Known maps the SSID of every saved wireless connection to the
// NetworkManager marker.
func (b *DBus) Known(ctx context.Context) (wifi.KnownNetworks, error) {
	conns, err := b.Settings.ListConnections()
	if err != nil {
		return nil, fmt.Errorf("failed to list connections: %w", err)
	}

	known := wifi.KnownNetworks{}
	for _, conn := range conns {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		s, err := conn.GetSettings()
		if err != nil {
			b.logger().Debug("skipping unreadable connection", "path", conn.GetPath(), "err", err)
			continue
		}
		if ssid := wirelessSSID(s); ssid != "" {
			known[ssid] = wifi.ServiceNetworkManager
		}
	}
	return known, nil
}

func wirelessSSID(s gonetworkmanager.ConnectionSettings) string {
	if t, _ := s["connection"]["type"].(string); t != "802-11-wireless" {
		return ""
	}
	ssid, _ := s["802-11-wireless"]["ssid"].([]byte)
	return string(ssid)
}

// WirelessSettings builds the settings for a new wireless connection bound
// to iface. key is required for encrypted networks.
func WirelessSettings(iface string, n wifi.Network, key *string) (gonetworkmanager.ConnectionSettings, error) {
	if n.ESSID == "" {
		return nil, fmt.Errorf("hidden network has no ssid to save: %w", wifi.ErrInvalidOption)
	}
	connection := gonetworkmanager.ConnectionSettings{
		"connection": {
			"id":          n.ESSID,
			"uuid":        uuid.New().String(),
			"type":        "802-11-wireless",
			"autoconnect": true,
		},
		"802-11-wireless": {
			"mode": "infrastructure",
			"ssid": []byte(n.ESSID),
		},
		"ipv4": {"method": "auto"},
		"ipv6": {"method": "auto"},
	}
	if iface != "" {
		connection["connection"]["interface-name"] = iface
	}
	if n.Encrypted {
		if key == nil {
			return nil, fmt.Errorf("%w: %s", wifi.ErrMissingKey, n.ESSID)
		}
		connection["802-11-wireless"]["security"] = "802-11-wireless-security"
		connection["802-11-wireless-security"] = map[string]interface{}{
			"key-mgmt": "wpa-psk",
			"psk":      *key,
		}
	}
	return connection, nil
}

// Write saves a connection for n and returns its id.
func (b *DBus) Write(ctx context.Context, iface string, n wifi.AnnotatedNetwork, key *string) (string, error) {
	settings, err := WirelessSettings(iface, n.Network, key)
	if err != nil {
		return "", err
	}
	id := settings["connection"]["id"].(string)
	if b.DryRun {
		b.logger().Info("dry run: skipping connection add", "id", id, "uuid", settings["connection"]["uuid"])
		return id, nil
	}
	conn, err := b.Settings.AddConnection(settings)
	if err != nil {
		return "", fmt.Errorf("failed to add connection %q: %w", id, err)
	}
	b.logger().Info("added connection", "id", id, "path", conn.GetPath())
	return id, nil
}
