package selector

import (
	"fmt"

	"github.com/shazow/wifimenu/wifi"
)

// Policy decides how a network is picked from a pass.
type Policy int

const (
	// PolicyAsk always defers to the chooser.
	PolicyAsk Policy = iota
	// PolicyKnownOrAsk picks the strongest known network, else asks.
	PolicyKnownOrAsk
	// PolicyKnownOrFail picks the strongest known network or fails.
	PolicyKnownOrFail
	// PolicyFirst picks the strongest network.
	PolicyFirst
)

var policyNames = map[Policy]string{
	PolicyAsk:         "ask",
	PolicyKnownOrAsk:  "known-or-ask",
	PolicyKnownOrFail: "known-or-fail",
	PolicyFirst:       "first",
}

func (p Policy) String() string {
	if s, ok := policyNames[p]; ok {
		return s
	}
	return "unknown"
}

// ParsePolicy parses a policy name as accepted on the command line.
func ParsePolicy(s string) (Policy, error) {
	for p, name := range policyNames {
		if name == s {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown policy %q: %w", s, wifi.ErrInvalidOption)
}

func (p Policy) requiresKnown() bool {
	return p == PolicyKnownOrAsk || p == PolicyKnownOrFail
}
