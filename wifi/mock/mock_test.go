package mock

import (
	"context"
	"errors"
	"testing"

	"github.com/shazow/wifimenu/wifi"
	"github.com/shazow/wifimenu/wifi/scan"
)

func init() {
	DefaultActionSleep = 0
}

func TestScanParses(t *testing.T) {
	b := New()
	result, err := b.Scan(context.Background(), false)
	if err != nil {
		t.Fatalf("Scan() failed: %v", err)
	}
	networks, lineErrs, err := result.Parse()
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if len(lineErrs) != 0 {
		t.Fatalf("unexpected line errors: %v", lineErrs)
	}
	if len(networks) != len(b.AccessPoints) {
		t.Fatalf("expected %d networks, got %d", len(b.AccessPoints), len(networks))
	}
	for i, n := range networks {
		ap := b.AccessPoints[i]
		if n.ESSID != ap.SSID || n.BSSID != ap.BSSID || n.Encrypted != ap.Privacy {
			t.Errorf("network %d: got %+v, want %+v", i, n, ap)
		}
		if n.Signal == nil || *n.Signal != int(ap.Signal)+90 {
			t.Errorf("network %d: unexpected signal %v for %v dBm", i, n.Signal, ap.Signal)
		}
	}
}

func TestSyncScanJitters(t *testing.T) {
	b := New()
	result, err := b.Scan(context.Background(), true)
	if err != nil {
		t.Fatalf("Scan() failed: %v", err)
	}
	networks, _, _ := result.Parse()
	for i, n := range networks {
		want := int(b.AccessPoints[i].Signal) + 90
		if d := *n.Signal - want; d < -4 || d > 4 {
			t.Errorf("network %d: signal %d too far from %d", i, *n.Signal, want)
		}
	}
	if b.Scans() != 1 {
		t.Errorf("expected 1 scan, got %d", b.Scans())
	}
}

func TestScanCancelled(t *testing.T) {
	b := New()
	b.ActionSleep = 1 << 40
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := b.Scan(ctx, true); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestKnown(t *testing.T) {
	known, err := New().Known(context.Background())
	if err != nil {
		t.Fatalf("Known() failed: %v", err)
	}
	want := wifi.KnownNetworks{
		"HideYoKidsHideYoWiFi": "HideYoKidsHideYoWiFi",
		"GET off my LAN":       "GET_off_my_LAN",
		"Password is password": "Password_is_password",
	}
	if len(known) != len(want) {
		t.Fatalf("expected %d known networks, got %d", len(want), len(known))
	}
	for essid, id := range want {
		if known[essid] != id {
			t.Errorf("known[%q] = %q, want %q", essid, known[essid], id)
		}
	}
}

func TestIwDumpEscapes(t *testing.T) {
	want := []string{"Café\\", " Spacey ", "tab\tname"}
	var aps []AccessPoint
	for _, ssid := range want {
		aps = append(aps, AccessPoint{SSID: ssid, BSSID: "02:00:00:00:00:01", Signal: -50})
	}
	networks, _, err := scan.Parse(scan.ToolIw, IwDump(aps))
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if len(networks) != len(want) {
		t.Fatalf("expected %d networks, got %d", len(want), len(networks))
	}
	for i, n := range networks {
		if n.ESSID != want[i] {
			t.Errorf("network %d: got %q, want %q", i, n.ESSID, want[i])
		}
	}
}

func TestErrors(t *testing.T) {
	b := New()
	b.ScanError = errors.New("radio off")
	b.KnownError = errors.New("no profiles")
	if _, err := b.Scan(context.Background(), false); err == nil {
		t.Error("expected scan error")
	}
	if _, err := b.Known(context.Background()); err == nil {
		t.Error("expected known error")
	}
}
