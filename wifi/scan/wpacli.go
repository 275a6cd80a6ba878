package scan

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shazow/wifimenu/wifi"
)

// wpaHeaderLines is the number of lines wpa_cli prints before the results:
// "Selected interface '<iface>'" and the column legend.
const wpaHeaderLines = 2

// parseWpaCli parses `wpa_cli scan_results` output.
//
// Fields are split on whitespace, so an ESSID with runs of consecutive spaces
// comes back with single spaces.
func parseWpaCli(raw string) ([]wifi.Network, []*wifi.LineError, error) {
	lines := splitLines(raw)
	for i := 0; i < wpaHeaderLines; i++ {
		if i >= len(lines) || strings.TrimSpace(lines[i]) == "" {
			return nil, nil, fmt.Errorf("wpa_cli output line %d: %w", i+1, wifi.ErrMissingHeader)
		}
	}

	var networks []wifi.Network
	var lineErrs []*wifi.LineError
	for _, line := range lines[wpaHeaderLines:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		// bssid, frequency, signal level, flags, ssid...
		fields := strings.Fields(line)
		if len(fields) < 4 {
			lineErrs = append(lineErrs, lineError(line, wifi.ErrMissingScanField, fmt.Sprintf("expected 4 fields, got %d", len(fields))))
			continue
		}
		level, err := strconv.Atoi(fields[2])
		if err != nil {
			lineErrs = append(lineErrs, lineError(line, wifi.ErrInvalidSignal, fields[2]))
			continue
		}
		networks = append(networks, wifi.Network{
			BSSID:     fields[0],
			Signal:    wifi.SignalBars(level + signalOffset),
			Encrypted: wpaFlagsEncrypted(fields[3]),
			ESSID:     strings.Join(fields[4:], " "),
		})
	}

	if len(networks) == 0 {
		return nil, lineErrs, fmt.Errorf("wpa_cli: %w", wifi.ErrNoNetworksParsed)
	}
	return networks, lineErrs, nil
}

func wpaFlagsEncrypted(flags string) bool {
	for _, marker := range []string{"WPA", "WEP", "RSN", "SAE"} {
		if strings.Contains(flags, marker) {
			return true
		}
	}
	return false
}
