package scan

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shazow/wifimenu/wifi"
)

var (
	bssHeaderRe = regexp.MustCompile(`^BSS ((?:[0-9a-fA-F]{2}:){5}[0-9a-fA-F]{2})`)
	iwSignalRe  = regexp.MustCompile(`^signal:\s*(\S+)\s*dBm`)
)

// parseIw parses `iw dev <iface> scan` or `iw dev <iface> scan dump` output.
// Each record starts at an unindented "BSS <mac>" line.
func parseIw(raw string) ([]wifi.Network, []*wifi.LineError) {
	var networks []wifi.Network
	var lineErrs []*wifi.LineError

	var header string
	var block []string
	flush := func() {
		if header == "" {
			return
		}
		n, err := parseIwBlock(header, block)
		if err != nil {
			lineErrs = append(lineErrs, err)
		} else {
			networks = append(networks, n)
		}
		header, block = "", nil
	}

	for _, line := range splitLines(raw) {
		if bssHeaderRe.MatchString(line) {
			flush()
			header = line
			continue
		}
		if header != "" {
			block = append(block, line)
		}
	}
	flush()

	return networks, lineErrs
}

func parseIwBlock(header string, lines []string) (wifi.Network, *wifi.LineError) {
	n := wifi.Network{
		BSSID: bssHeaderRe.FindStringSubmatch(header)[1],
	}

	var haveSSID, haveCapability bool
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case !haveSSID && strings.HasPrefix(trimmed, "SSID:"):
			n.ESSID = wifi.Unescape(strings.TrimSpace(strings.TrimPrefix(trimmed, "SSID:")))
			haveSSID = true
		case !haveCapability && strings.HasPrefix(trimmed, "capability:"):
			for _, token := range strings.Fields(strings.TrimPrefix(trimmed, "capability:")) {
				if token == "Privacy" {
					n.Encrypted = true
				}
			}
			haveCapability = true
		case n.Signal == nil && strings.HasPrefix(trimmed, "signal:"):
			m := iwSignalRe.FindStringSubmatch(trimmed)
			if m == nil {
				return n, lineError(header, wifi.ErrInvalidSignal, trimmed)
			}
			dbm, err := strconv.ParseFloat(m[1], 64)
			if err != nil {
				return n, lineError(header, wifi.ErrInvalidSignal, trimmed)
			}
			n.Signal = wifi.SignalBars(int(dbm) + signalOffset)
		}
	}

	if !haveSSID {
		return n, lineError(header, wifi.ErrMissingScanField, "SSID")
	}
	if !haveCapability {
		return n, lineError(header, wifi.ErrMissingScanField, "capability")
	}
	return n, nil
}
