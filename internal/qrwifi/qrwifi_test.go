package qrwifi

import (
	"strings"
	"testing"
)

func TestEscape(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{`a;b,c:d"e\f`, `a\;b\,c\:d\"e\\f`},
	}
	for _, tt := range tests {
		if got := Escape(tt.in); got != tt.want {
			t.Errorf("Escape(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPayload(t *testing.T) {
	key := "pass;word"
	tests := []struct {
		ssid   string
		key    *string
		hidden bool
		want   string
	}{
		{"Lobby", &key, false, `WIFI:S:Lobby;T:WPA;P:pass\;word;;`},
		{"Free Wifi", nil, false, `WIFI:S:Free Wifi;T:nopass;;`},
		{"Ghost", nil, true, `WIFI:S:Ghost;T:nopass;H:true;;`},
	}
	for _, tt := range tests {
		if got := Payload(tt.ssid, tt.key, tt.hidden); got != tt.want {
			t.Errorf("Payload(%q) = %q, want %q", tt.ssid, got, tt.want)
		}
	}
}

func TestRender(t *testing.T) {
	out, err := Render(Payload("Lobby", nil, false), false)
	if err != nil {
		t.Fatalf("Render() failed: %v", err)
	}
	if len(strings.Split(strings.TrimSpace(out), "\n")) < 10 {
		t.Errorf("expected a multi-line QR code, got %q", out)
	}
}
