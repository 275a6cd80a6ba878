package selector

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/shazow/wifimenu/wifi"
	"github.com/shazow/wifimenu/wifi/scan"
)

// gather runs the scan and the known network lookup concurrently. Both are
// always waited for; the first error wins.
func (e *Engine) gather(ctx context.Context, sync bool) (scan.Result, wifi.KnownNetworks, error) {
	var (
		g      errgroup.Group
		result scan.Result
		known  wifi.KnownNetworks
	)
	g.Go(func() error {
		var err error
		result, err = e.Scanner.Scan(ctx, sync)
		return err
	})
	g.Go(func() error {
		var err error
		known, err = e.Resolver.Known(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return scan.Result{}, nil, err
	}
	return result, known, nil
}
