// Package networkmanager resolves and saves NetworkManager connections, either
// through nmcli or directly over D-Bus.
package networkmanager

import (
	"context"
	"fmt"
	"strings"

	"github.com/shazow/wifimenu/internal/runner"
	"github.com/shazow/wifimenu/wifi"
	"github.com/shazow/wifimenu/wifi/scan"
)

// Nmcli talks to NetworkManager through the nmcli command.
type Nmcli struct {
	Runner runner.Runner
}

// Known maps every saved connection name to the NetworkManager marker.
func (c *Nmcli) Known(ctx context.Context) (wifi.KnownNetworks, error) {
	out, err := c.Runner.Run(ctx, nil, "nmcli", "--terse", "--fields", "NAME", "connection", "show")
	if err != nil {
		return nil, err
	}
	known := wifi.KnownNetworks{}
	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}
		known[scan.SplitTerse(line, 1)[0]] = wifi.ServiceNetworkManager
	}
	return known, nil
}

// Write saves a wireless connection for n with nmcli and returns its name.
func (c *Nmcli) Write(ctx context.Context, iface string, n wifi.AnnotatedNetwork, key *string) (string, error) {
	if n.ESSID == "" {
		return "", fmt.Errorf("hidden network has no ssid to save: %w", wifi.ErrInvalidOption)
	}
	args := []string{"connection", "add", "type", "wifi", "con-name", n.ESSID, "ssid", n.ESSID}
	if iface != "" {
		args = append(args, "ifname", iface)
	}
	if n.Encrypted {
		if key == nil {
			return "", fmt.Errorf("%w: %s", wifi.ErrMissingKey, n.ESSID)
		}
		args = append(args, "wifi-sec.key-mgmt", "wpa-psk", "wifi-sec.psk", *key)
	}
	if _, err := c.Runner.Run(ctx, nil, "nmcli", args...); err != nil {
		return "", err
	}
	return n.ESSID, nil
}
