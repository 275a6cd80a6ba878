package scan

import (
	"strconv"
	"strings"

	"github.com/shazow/wifimenu/wifi"
)

// parseNmcli parses `nmcli -t -f SECURITY,SIGNAL,SSID device wifi list`.
func parseNmcli(raw string) ([]wifi.Network, []*wifi.LineError) {
	var networks []wifi.Network
	var lineErrs []*wifi.LineError
	for _, line := range splitLines(raw) {
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := SplitTerse(line, 3)
		if len(fields) < 3 {
			lineErrs = append(lineErrs, lineError(line, wifi.ErrMissingScanField, "expected SECURITY:SIGNAL:SSID"))
			continue
		}
		security, level, essid := fields[0], fields[1], fields[2]

		n := wifi.Network{
			ESSID:     essid,
			Encrypted: security != "" && security != "--",
		}
		if level != "" {
			v, err := strconv.Atoi(level)
			if err != nil {
				lineErrs = append(lineErrs, lineError(line, wifi.ErrInvalidSignal, level))
				continue
			}
			n.Signal = wifi.SignalBars(v)
		}
		networks = append(networks, n)
	}
	return networks, lineErrs
}

// SplitTerse splits a line of nmcli terse output into at most n fields on
// unescaped colons, decoding the `\:` and `\\` escapes nmcli applies.
func SplitTerse(line string, n int) []string {
	var fields []string
	var cur strings.Builder
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '\\' && i+1 < len(line):
			i++
			cur.WriteByte(line[i])
		case c == ':' && len(fields) < n-1:
			fields = append(fields, cur.String())
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}
	return append(fields, cur.String())
}
