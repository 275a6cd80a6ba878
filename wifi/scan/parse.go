// Package scan turns the text output of the supported scan tools into
// wifi.Network values.
package scan

import (
	"fmt"
	"strings"

	"github.com/shazow/wifimenu/wifi"
)

// Tool is the program whose output is being parsed.
type Tool int

const (
	ToolIw Tool = iota
	ToolWpaCli
	ToolNmcli
)

func (t Tool) String() string {
	switch t {
	case ToolIw:
		return "iw"
	case ToolWpaCli:
		return "wpa_cli"
	case ToolNmcli:
		return "nmcli"
	}
	return "unknown"
}

// ParseTool parses a tool name as accepted on the command line.
func ParseTool(s string) (Tool, error) {
	switch s {
	case "iw":
		return ToolIw, nil
	case "wpa_cli", "wpa-cli", "wpacli":
		return ToolWpaCli, nil
	case "nmcli":
		return ToolNmcli, nil
	}
	return 0, fmt.Errorf("unknown scan tool %q: %w", s, wifi.ErrInvalidOption)
}

// signalOffset shifts dBm readings into a non-negative range. nmcli already
// reports a percentage and is left alone.
const signalOffset = 90

// Result is the unparsed output of one scan.
type Result struct {
	Tool   Tool
	Output string
}

// Parse parses the result with the grammar for its tool.
func (r Result) Parse() ([]wifi.Network, []*wifi.LineError, error) {
	return Parse(r.Tool, r.Output)
}

// Parse parses raw scan output. Malformed records are skipped and reported as
// line errors; the returned error is reserved for failures that make the whole
// output unusable.
func Parse(tool Tool, raw string) ([]wifi.Network, []*wifi.LineError, error) {
	switch tool {
	case ToolIw:
		networks, lineErrs := parseIw(raw)
		return networks, lineErrs, nil
	case ToolWpaCli:
		return parseWpaCli(raw)
	case ToolNmcli:
		networks, lineErrs := parseNmcli(raw)
		return networks, lineErrs, nil
	}
	return nil, nil, fmt.Errorf("cannot parse output of %s: %w", tool, wifi.ErrInvalidOption)
}

func splitLines(raw string) []string {
	lines := strings.Split(raw, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, "\r")
	}
	return lines
}

func lineError(line string, err error, detail string) *wifi.LineError {
	if detail != "" {
		err = fmt.Errorf("%w: %s", err, detail)
	}
	return &wifi.LineError{Line: line, Err: err}
}
