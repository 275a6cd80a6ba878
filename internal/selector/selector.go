// Package selector drives a selection: it gathers scan results and known
// networks, ranks them, escalates to a synchronous rescan when a pass is
// unsatisfying and picks a network according to a Policy.
package selector

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shazow/wifimenu/internal/metrics"
	"github.com/shazow/wifimenu/wifi"
	"github.com/shazow/wifimenu/wifi/scan"
)

const (
	DefaultMaxIterations = 1000
	DefaultPrompt        = "Network"
)

// Scanner produces raw scan output. sync asks for a fresh, blocking scan.
type Scanner interface {
	Scan(ctx context.Context, sync bool) (scan.Result, error)
}

// Resolver lists the networks the connection manager already has a profile
// for.
type Resolver interface {
	Known(ctx context.Context) (wifi.KnownNetworks, error)
}

// Chooser asks the user to pick one of options and returns the chosen line.
type Chooser interface {
	Choose(ctx context.Context, prompt string, options []string) (string, error)
}

// Engine runs the selection loop.
type Engine struct {
	Scanner  Scanner
	Resolver Resolver
	// Chooser is only needed by policies that may ask.
	Chooser Chooser
	Policy  Policy

	MaxIterations int
	Prompt        string
	Logger        *slog.Logger
	Metrics       *metrics.Metrics
}

func (e *Engine) logger() *slog.Logger {
	if e.Logger == nil {
		return slog.Default()
	}
	return e.Logger
}

// Networks runs one pass: gather, parse, annotate, then sort and dedupe.
// Lines that fail to parse are logged and skipped.
func (e *Engine) Networks(ctx context.Context, sync bool) ([]wifi.AnnotatedNetwork, error) {
	e.Metrics.Pass()
	result, known, err := e.gather(ctx, sync)
	if err != nil {
		return nil, err
	}

	networks, lineErrs, err := result.Parse()
	e.Metrics.ParseErrors(result.Tool.String(), len(lineErrs))
	for _, lineErr := range lineErrs {
		e.logger().Warn("skipping unparseable scan entry", "tool", result.Tool, "err", lineErr)
	}
	if err != nil {
		return nil, err
	}

	sorted := wifi.SortNetworks(wifi.Annotate(networks, known))
	e.Metrics.Networks(len(sorted))
	e.logger().Debug("scan pass", "sync", sync, "tool", result.Tool, "parsed", len(networks), "networks", len(sorted), "known", len(known))
	return sorted, nil
}

// Select loops until a network is picked. An empty pass, or a pass without
// known networks under a policy that wants one, is retried once with a
// synchronous scan before the policy is applied. A refresh from the chooser
// starts over with a synchronous scan.
func (e *Engine) Select(ctx context.Context) (wifi.AnnotatedNetwork, error) {
	maxIterations := e.MaxIterations
	if maxIterations <= 0 {
		maxIterations = DefaultMaxIterations
	}

	sync := false
	for i := 0; i < maxIterations; i++ {
		if err := ctx.Err(); err != nil {
			return wifi.AnnotatedNetwork{}, err
		}

		networks, err := e.Networks(ctx, sync)
		if err != nil {
			return wifi.AnnotatedNetwork{}, err
		}

		wasSync := sync
		sync = false
		if !wasSync && e.unsatisfied(networks) {
			e.logger().Info("no suitable networks, rescanning", "networks", len(networks), "policy", e.Policy)
			e.Metrics.Escalation()
			sync = true
			continue
		}

		n, err := e.pick(ctx, networks)
		if errors.Is(err, wifi.ErrRefreshRequested) {
			e.logger().Debug("refresh requested")
			e.Metrics.Refresh()
			sync = true
			continue
		}
		if err != nil {
			return wifi.AnnotatedNetwork{}, err
		}
		e.Metrics.Selection(e.Policy.String(), n.IsKnown())
		return n, nil
	}
	return wifi.AnnotatedNetwork{}, fmt.Errorf("%w after %d iterations", wifi.ErrLoopProtection, maxIterations)
}

func (e *Engine) unsatisfied(networks []wifi.AnnotatedNetwork) bool {
	if len(networks) == 0 {
		return true
	}
	return e.Policy.requiresKnown() && len(wifi.Known(networks)) == 0
}

func (e *Engine) pick(ctx context.Context, networks []wifi.AnnotatedNetwork) (wifi.AnnotatedNetwork, error) {
	switch e.Policy {
	case PolicyFirst:
		if len(networks) == 0 {
			return wifi.AnnotatedNetwork{}, wifi.ErrNoNetworks
		}
		return networks[0], nil
	case PolicyKnownOrFail, PolicyKnownOrAsk:
		if known := wifi.Known(networks); len(known) > 0 {
			return known[0], nil
		}
		if e.Policy == PolicyKnownOrFail {
			return wifi.AnnotatedNetwork{}, wifi.ErrNoKnownNetworks
		}
	}
	return e.ask(ctx, networks)
}

func (e *Engine) ask(ctx context.Context, networks []wifi.AnnotatedNetwork) (wifi.AnnotatedNetwork, error) {
	if e.Chooser == nil {
		return wifi.AnnotatedNetwork{}, fmt.Errorf("policy %s needs a chooser: %w", e.Policy, wifi.ErrInvalidOption)
	}
	prompt := e.Prompt
	if prompt == "" {
		prompt = DefaultPrompt
	}

	answer, err := e.Chooser.Choose(ctx, prompt, wifi.MenuLines(networks))
	if err != nil {
		return wifi.AnnotatedNetwork{}, err
	}
	i, err := wifi.ParseMenuChoice(answer, len(networks))
	if err != nil {
		return wifi.AnnotatedNetwork{}, err
	}
	return networks[i], nil
}
