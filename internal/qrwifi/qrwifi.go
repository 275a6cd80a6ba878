// Package qrwifi renders Wi-Fi joining QR codes for saved profiles.
package qrwifi

import (
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

// Escape handles the special character escaping for SSID and Password.
func Escape(s string) string {
	r := strings.NewReplacer(
		`\`, `\\`,
		`;`, `\;`,
		`,`, `\,`,
		`:`, `\:`,
		`"`, `\"`,
	)
	return r.Replace(s)
}

// Payload builds the WIFI: URI for a network. A nil key means an open
// network.
func Payload(ssid string, key *string, hidden bool) string {
	var b strings.Builder
	b.WriteString("WIFI:S:")
	b.WriteString(Escape(ssid))
	b.WriteString(";")

	if key != nil {
		b.WriteString("T:WPA;P:")
		b.WriteString(Escape(*key))
		b.WriteString(";")
	} else {
		b.WriteString("T:nopass;")
	}
	if hidden {
		b.WriteString("H:true;")
	}
	b.WriteString(";")
	return b.String()
}

// Render returns the QR code for the payload as terminal-friendly text.
func Render(payload string, inverse bool) (string, error) {
	q, err := qrcode.New(payload, qrcode.Medium)
	if err != nil {
		return "", err
	}
	return q.ToSmallString(inverse), nil
}
