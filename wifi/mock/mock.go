// Package mock provides a canned set of networks for demos and tests.
package mock

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/shazow/wifimenu/wifi"
	"github.com/shazow/wifimenu/wifi/scan"
)

var DefaultActionSleep = 500 * time.Millisecond

// AccessPoint is one BSS in the mock radio's view.
type AccessPoint struct {
	SSID    string
	BSSID   string
	Signal  float64 // dBm
	Privacy bool
	Known   bool
}

// Backend pretends to be a radio plus a profile directory. Scans are rendered
// as `iw scan dump` output.
type Backend struct {
	AccessPoints []AccessPoint
	ScanError    error
	KnownError   error

	// ActionSleep is a delay before every synchronous scan, to better emulate
	// a real radio. Set to 0 during testing.
	ActionSleep time.Duration

	mu    sync.Mutex
	scans int
}

// New creates a mock.Backend with a list of fun wifi networks.
func New() *Backend {
	return &Backend{
		AccessPoints: []AccessPoint{
			{SSID: "HideYoKidsHideYoWiFi", BSSID: "02:00:00:00:00:01", Signal: -71, Privacy: true, Known: true},
			{SSID: "GET off my LAN", BSSID: "02:00:00:00:00:02", Signal: -80.5, Privacy: true, Known: true},
			{SSID: "NeverGonnaGiveYouIP", BSSID: "02:00:00:00:00:03", Signal: -62, Privacy: true},
			{SSID: "Unencrypted_Honeypot", BSSID: "02:00:00:00:00:04", Signal: -55},
			{SSID: "Dunder MiffLAN", BSSID: "02:00:00:00:00:05", Signal: -67.25, Privacy: true},
			{SSID: "Police Surveillance 2", BSSID: "02:00:00:00:00:06", Signal: -48, Privacy: true},
			{SSID: "Password is password", BSSID: "02:00:00:00:00:07", Signal: -40, Privacy: true, Known: true},
			{SSID: "TacoBoutAGoodSignal", BSSID: "02:00:00:00:00:08", Signal: -33, Privacy: true},
			{SSID: "Multi-AP Network", BSSID: "00:11:22:33:44:55", Signal: -45, Privacy: true},
			{SSID: "Multi-AP Network", BSSID: "aa:bb:cc:dd:ee:ff", Signal: -60, Privacy: true},
			{SSID: "Multi-AP Network", BSSID: "11:22:33:44:55:66", Signal: -77, Privacy: true},
			{SSID: "", BSSID: "02:00:00:00:00:09", Signal: -85, Privacy: true},
			{SSID: "FreeHugsAndWiFi", BSSID: "02:00:00:00:00:0a", Signal: -88},
		},
		ActionSleep: DefaultActionSleep,
	}
}

// Scan returns the access points as iw output. Synchronous scans take
// ActionSleep and jitter every signal by a few dBm.
func (b *Backend) Scan(ctx context.Context, sync bool) (scan.Result, error) {
	if b.ScanError != nil {
		return scan.Result{}, b.ScanError
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.scans++

	aps := b.AccessPoints
	if sync {
		select {
		case <-time.After(b.ActionSleep):
		case <-ctx.Done():
			return scan.Result{}, ctx.Err()
		}
		r := rand.New(rand.NewSource(time.Now().UnixNano()))
		aps = make([]AccessPoint, len(b.AccessPoints))
		for i, ap := range b.AccessPoints {
			ap.Signal += float64(r.Intn(7) - 3)
			aps[i] = ap
		}
	}
	return scan.Result{Tool: scan.ToolIw, Output: IwDump(aps)}, nil
}

// Scans returns how many scans have been served.
func (b *Backend) Scans() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.scans
}

// Known maps every known access point to a profile named like the ones
// netctl.Store derives.
func (b *Backend) Known(ctx context.Context) (wifi.KnownNetworks, error) {
	if b.KnownError != nil {
		return nil, b.KnownError
	}
	known := wifi.KnownNetworks{}
	for _, ap := range b.AccessPoints {
		if ap.Known {
			known[ap.SSID] = wifi.ServiceID(strings.ReplaceAll(ap.SSID, " ", "_"))
		}
	}
	return known, nil
}

// IwDump renders access points the way `iw dev <iface> scan dump` prints them.
func IwDump(aps []AccessPoint) string {
	var b strings.Builder
	for _, ap := range aps {
		fmt.Fprintf(&b, "BSS %s(on wlan0)\n", ap.BSSID)
		b.WriteString("\tfreq: 2412\n")
		b.WriteString("\tbeacon interval: 100 TUs\n")
		capability := "ESS ShortSlotTime (0x0401)"
		if ap.Privacy {
			capability = "ESS Privacy ShortSlotTime (0x0411)"
		}
		fmt.Fprintf(&b, "\tcapability: %s\n", capability)
		fmt.Fprintf(&b, "\tsignal: %.2f dBm\n", ap.Signal)
		b.WriteString("\tlast seen: 120 ms ago\n")
		fmt.Fprintf(&b, "\tSSID: %s\n", escapeSSID(ap.SSID))
	}
	return b.String()
}

// escapeSSID escapes bytes outside printable ASCII, backslashes, and leading
// or trailing spaces the way iw does.
func escapeSSID(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		edge := i == 0 || i == len(s)-1
		if c < 0x20 || c >= 0x7f || c == '\\' || (c == ' ' && edge) {
			fmt.Fprintf(&b, `\x%02x`, c)
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}
