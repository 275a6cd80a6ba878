package selector

import (
	"context"
	"fmt"

	"github.com/shazow/wifimenu/wifi"
	"github.com/shazow/wifimenu/wifi/netctl"
)

// KnownResolver resolves known networks from the configured connection
// manager. NetworkManager and Iwd are only needed for their managers.
type KnownResolver struct {
	Manager wifi.Manager
	// Skip returns no known networks without touching the system, for dry
	// runs and --ignore-known.
	Skip bool

	ProfileDir     string
	NetworkManager Resolver
	Iwd            Resolver
}

// Known implements Resolver.
func (r *KnownResolver) Known(ctx context.Context) (wifi.KnownNetworks, error) {
	if r.Skip {
		return wifi.KnownNetworks{}, nil
	}
	switch r.Manager {
	case wifi.ManagerNetctl:
		dir := r.ProfileDir
		if dir == "" {
			dir = netctl.DefaultDir
		}
		return netctl.Known(ctx, dir)
	case wifi.ManagerNetworkManager:
		return delegate(ctx, r.Manager, r.NetworkManager)
	case wifi.ManagerIwd:
		return delegate(ctx, r.Manager, r.Iwd)
	}
	return nil, fmt.Errorf("unsupported manager %s: %w", r.Manager, wifi.ErrInvalidOption)
}

func delegate(ctx context.Context, m wifi.Manager, r Resolver) (wifi.KnownNetworks, error) {
	if r == nil {
		return nil, fmt.Errorf("no resolver configured for %s: %w", m, wifi.ErrInvalidOption)
	}
	return r.Known(ctx)
}
