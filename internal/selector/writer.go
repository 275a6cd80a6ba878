package selector

import (
	"context"
	"fmt"

	"github.com/shazow/wifimenu/wifi"
	"github.com/shazow/wifimenu/wifi/iwd"
	"github.com/shazow/wifimenu/wifi/netctl"
)

// SecretPrompter asks the user for a secret without echoing it.
type SecretPrompter interface {
	Secret(ctx context.Context, prompt string) (string, error)
}

// ConnectionWriter saves a wireless connection with a connection manager.
type ConnectionWriter interface {
	Write(ctx context.Context, iface string, n wifi.AnnotatedNetwork, key *string) (string, error)
}

// ProfileWriter persists a selected network with the configured connection
// manager, asking for a key when an encrypted network needs one.
type ProfileWriter struct {
	Manager   wifi.Manager
	Interface string

	Netctl         *netctl.Store
	NetworkManager ConnectionWriter
	Iwd            *iwd.Store

	// Key is used instead of asking when set.
	Key     *string
	Secrets SecretPrompter
}

// Save writes a profile for n unless it is already known. It returns the
// profile identifier and whether anything was written.
func (w *ProfileWriter) Save(ctx context.Context, n wifi.AnnotatedNetwork) (string, bool, error) {
	if n.IsKnown() {
		return string(n.Service), false, nil
	}
	key := func() (string, error) { return w.key(ctx, n) }

	switch w.Manager {
	case wifi.ManagerNetctl:
		if w.Netctl == nil {
			return "", false, w.unconfigured()
		}
		return w.Netctl.EnsureWifi(w.Interface, n, key)
	case wifi.ManagerNetworkManager:
		if w.NetworkManager == nil {
			return "", false, w.unconfigured()
		}
		k, err := optionalKey(n, key)
		if err != nil {
			return "", false, err
		}
		id, err := w.NetworkManager.Write(ctx, w.Interface, n, k)
		return id, err == nil, err
	case wifi.ManagerIwd:
		if w.Iwd == nil {
			return "", false, w.unconfigured()
		}
		k, err := optionalKey(n, key)
		if err != nil {
			return "", false, err
		}
		id, err := w.Iwd.WriteWifi(n, k)
		return id, err == nil, err
	}
	return "", false, w.unconfigured()
}

func (w *ProfileWriter) unconfigured() error {
	return fmt.Errorf("no profile writer configured for %s: %w", w.Manager, wifi.ErrInvalidOption)
}

func (w *ProfileWriter) key(ctx context.Context, n wifi.AnnotatedNetwork) (string, error) {
	if w.Key != nil {
		return *w.Key, nil
	}
	if w.Secrets == nil {
		return "", fmt.Errorf("%w: %s", wifi.ErrMissingKey, n.ESSID)
	}
	return w.Secrets.Secret(ctx, fmt.Sprintf("Key for %s", n.ESSID))
}

func optionalKey(n wifi.AnnotatedNetwork, key netctl.KeyFunc) (*string, error) {
	if !n.Encrypted {
		return nil, nil
	}
	k, err := key()
	if err != nil {
		return nil, err
	}
	return &k, nil
}
