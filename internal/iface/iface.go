// Package iface finds the network interface to operate on when none is
// given.
package iface

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	psnet "github.com/shirou/gopsutil/v3/net"

	"github.com/shazow/wifimenu/wifi"
)

// SysClassNet is where the kernel lists network devices.
var SysClassNet = "/sys/class/net"

// Interface is a network interface as far as selection cares.
type Interface struct {
	Name     string
	Up       bool
	Loopback bool
	Wireless bool
}

// List returns the system's network interfaces.
func List(ctx context.Context) ([]Interface, error) {
	stats, err := psnet.InterfacesWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list interfaces: %w", err)
	}
	ifaces := make([]Interface, 0, len(stats))
	for _, s := range stats {
		ifaces = append(ifaces, Interface{
			Name:     s.Name,
			Up:       slices.Contains(s.Flags, "up"),
			Loopback: slices.Contains(s.Flags, "loopback"),
			Wireless: IsWireless(s.Name),
		})
	}
	return ifaces, nil
}

// IsWireless reports whether the kernel exposes wireless extensions or a
// cfg80211 phy for the device.
func IsWireless(name string) bool {
	for _, sub := range []string{"wireless", "phy80211"} {
		if _, err := os.Stat(filepath.Join(SysClassNet, name, sub)); err == nil {
			return true
		}
	}
	return false
}

// Pick returns the first non-loopback interface of the wanted kind, preferring
// ones that are up.
func Pick(ifaces []Interface, wireless bool) (string, error) {
	var fallback string
	for _, i := range ifaces {
		if i.Loopback || i.Wireless != wireless {
			continue
		}
		if i.Up {
			return i.Name, nil
		}
		if fallback == "" {
			fallback = i.Name
		}
	}
	if fallback != "" {
		return fallback, nil
	}
	kind := "wired"
	if wireless {
		kind = "wireless"
	}
	return "", fmt.Errorf("no %s interface: %w", kind, wifi.ErrNotFound)
}

// Detect lists the system's interfaces and picks one of the wanted kind.
func Detect(ctx context.Context, wireless bool) (string, error) {
	ifaces, err := List(ctx)
	if err != nil {
		return "", err
	}
	return Pick(ifaces, wireless)
}
