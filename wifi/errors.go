package wifi

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrInvalidOption = errors.New("invalid option")

	// Scan parsing.
	ErrMissingHeader    = errors.New("missing scan header")
	ErrNoNetworksParsed = errors.New("no networks parsed")
	ErrMissingScanField = errors.New("missing field")
	ErrInvalidSignal    = errors.New("invalid signal level")

	// Profiles.
	ErrMissingField = errors.New("missing profile field")
	ErrKindMismatch = errors.New("connection kind mismatch")
	ErrMissingKey   = errors.New("encrypted network requires a key")

	// Selection control flow.
	ErrNoKnownNetworks  = errors.New("no known networks found")
	ErrNoNetworks       = errors.New("no networks found")
	ErrRefreshRequested = errors.New("refresh requested")
	ErrLoopProtection   = errors.New("loop protection exceeded")
	ErrNoMatchingResult = errors.New("no matching result")
	ErrChooserCancelled = errors.New("chooser cancelled")
)

// LineError is a parse failure scoped to one line (or one block) of scan output.
type LineError struct {
	Line string
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("%v: %q", e.Err, e.Line)
}

func (e *LineError) Unwrap() error { return e.Err }

// ProfileError is a failure reading or typing a connection profile.
type ProfileError struct {
	ID    string
	Field string // empty when the error is not about a single field
	Err   error
}

func (e *ProfileError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("profile %s: %v", e.ID, e.Err)
	}
	return fmt.Sprintf("profile %s: %v: %s", e.ID, e.Err, e.Field)
}

func (e *ProfileError) Unwrap() error { return e.Err }

// CommandError is returned when an external program fails. It carries enough
// of the invocation to tell the user what went wrong.
type CommandError struct {
	Command  []string
	Stdout   string
	Stderr   string
	ExitCode int
	Err      error
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("failed to run command: %s: %v", strings.Join(e.Command, " "), e.Err)
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += ": " + s
	}
	return msg
}

func (e *CommandError) Unwrap() error { return e.Err }

// ErrorKind is the closed set of failure classes callers can branch on.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindParse
	KindMissingHeader
	KindNoNetworksParsed
	KindConfig
	KindMissingField
	KindKindMismatch
	KindNoKnownNetworks
	KindNoNetworks
	KindRefreshRequested
	KindLoopProtection
	KindNoMatchingResult
	KindChooserCancelled
	KindCommand
)

var kindNames = map[ErrorKind]string{
	KindUnknown:          "unknown",
	KindParse:            "parse",
	KindMissingHeader:    "missing-header",
	KindNoNetworksParsed: "no-networks-parsed",
	KindConfig:           "config",
	KindMissingField:     "missing-field",
	KindKindMismatch:     "kind-mismatch",
	KindNoKnownNetworks:  "no-known-networks",
	KindNoNetworks:       "no-networks",
	KindRefreshRequested: "refresh-requested",
	KindLoopProtection:   "loop-protection",
	KindNoMatchingResult: "no-matching-result",
	KindChooserCancelled: "chooser-cancelled",
	KindCommand:          "command",
}

func (k ErrorKind) String() string {
	return kindNames[k]
}

// KindOf classifies err. Control-flow sentinels are checked before the
// wrapper types so that, for example, a refresh request raised from inside a
// chooser command still reads as a refresh.
func KindOf(err error) ErrorKind {
	if err == nil {
		return KindUnknown
	}
	sentinels := []struct {
		err  error
		kind ErrorKind
	}{
		{ErrRefreshRequested, KindRefreshRequested},
		{ErrLoopProtection, KindLoopProtection},
		{ErrNoKnownNetworks, KindNoKnownNetworks},
		{ErrNoNetworks, KindNoNetworks},
		{ErrNoMatchingResult, KindNoMatchingResult},
		{ErrChooserCancelled, KindChooserCancelled},
		{ErrMissingHeader, KindMissingHeader},
		{ErrNoNetworksParsed, KindNoNetworksParsed},
		{ErrMissingField, KindMissingField},
		{ErrKindMismatch, KindKindMismatch},
		{ErrMissingKey, KindMissingField},
		{ErrInvalidOption, KindConfig},
	}
	for _, s := range sentinels {
		if errors.Is(err, s.err) {
			return s.kind
		}
	}

	var cmdErr *CommandError
	var lineErr *LineError
	var profileErr *ProfileError
	switch {
	case errors.As(err, &lineErr):
		return KindParse
	case errors.As(err, &profileErr):
		return KindConfig
	case errors.As(err, &cmdErr):
		return KindCommand
	}
	return KindUnknown
}
