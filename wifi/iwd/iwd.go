// Package iwd resolves known networks from iwd over D-Bus and writes iwd
// network configuration files.
package iwd

import (
	"context"
	"fmt"

	"github.com/godbus/dbus/v5"

	"github.com/shazow/wifimenu/wifi"
)

const (
	iwdDest              = "net.connman.iwd"
	iwdPath              = "/"
	iwdKnownNetworkIface = "net.connman.iwd.KnownNetwork"
	objectManagerMethod  = "org.freedesktop.DBus.ObjectManager.GetManagedObjects"
)

// ManagedObjects is the reply of ObjectManager.GetManagedObjects: object path
// to interface name to properties.
type ManagedObjects map[dbus.ObjectPath]map[string]map[string]dbus.Variant

// ObjectLister lists the objects exported by iwd.
type ObjectLister interface {
	ManagedObjects(ctx context.Context) (ManagedObjects, error)
}

type busLister struct {
	conn *dbus.Conn
}

func (b busLister) ManagedObjects(ctx context.Context) (ManagedObjects, error) {
	var objects ManagedObjects
	err := b.conn.Object(iwdDest, iwdPath).CallWithContext(ctx, objectManagerMethod, 0).Store(&objects)
	if err != nil {
		return nil, fmt.Errorf("failed to list iwd objects: %w", err)
	}
	return objects, nil
}

// Resolver lists iwd's known networks.
type Resolver struct {
	Objects ObjectLister
}

// New connects to iwd on the system bus.
func New() (*Resolver, error) {
	conn, err := dbus.SystemBus()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to system bus: %w", err)
	}
	return &Resolver{Objects: busLister{conn: conn}}, nil
}

// Known maps the name of every KnownNetwork object to the iwd marker.
func (r *Resolver) Known(ctx context.Context) (wifi.KnownNetworks, error) {
	objects, err := r.Objects.ManagedObjects(ctx)
	if err != nil {
		return nil, err
	}
	known := wifi.KnownNetworks{}
	for _, ifaces := range objects {
		props, ok := ifaces[iwdKnownNetworkIface]
		if !ok {
			continue
		}
		if name, ok := props["Name"].Value().(string); ok {
			known[name] = wifi.ServiceIwd
		}
	}
	return known, nil
}
