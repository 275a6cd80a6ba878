package wifi

import "testing"

func TestUnescape(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{`plain`, `plain`},
		{`with\x20space`, `with space`},
		{`\x41\x42`, `AB`},
		{`back\\slash`, `back\slash`},
		{`quote\"d`, `quote"d`},
		{`it\'s`, `it's`},
		{`tab\there`, "tab\there"},
		{`trailing\`, `trailing\`},
		{`bad\xZZ`, `bad\xZZ`},
		{`short\x4`, `short\x4`},
		{`unknown\q`, `unknown\q`},
		{`caf\xc3\xa9`, "café"},
	}
	for _, tt := range tests {
		if got := Unescape(tt.in); got != tt.want {
			t.Errorf("Unescape(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestUnquote(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{`'Lobby'`, `Lobby`},
		{`"Lobby"`, `Lobby`},
		{`'Lobby"`, `'Lobby"`},
		{`Lobby`, `Lobby`},
		{`''`, ``},
		{`'`, `'`},
		{`"'nested'"`, `'nested'`},
	}
	for _, tt := range tests {
		if got := Unquote(tt.in); got != tt.want {
			t.Errorf("Unquote(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestHasControl(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"Lobby", false},
		{"Café", false},
		{"a\nb", true},
		{"tab\there", true},
		{"del\x7f", true},
		{"nul\x00", true},
		{`back\slash`, false},
	}
	for _, tt := range tests {
		if got := HasControl(tt.in); got != tt.want {
			t.Errorf("HasControl(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
