package netctl

import (
	"context"
	"errors"
	"io/fs"

	"github.com/shazow/wifimenu/wifi"
)

// Known maps the essid of every profile in dir to the profile's identifier.
// Profiles are visited in name order and the last one wins for a repeated
// essid. A missing directory means no known networks.
func Known(ctx context.Context, dir string) (wifi.KnownNetworks, error) {
	known := wifi.KnownNetworks{}
	raws, err := ReadAll(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return known, nil
	}
	if err != nil {
		return nil, err
	}
	for _, raw := range raws {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if essid := ParseFields(raw.Contents).ESSID; essid != nil {
			known[*essid] = wifi.ServiceID(raw.ID)
		}
	}
	return known, nil
}
