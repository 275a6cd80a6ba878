package scan

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shazow/wifimenu/wifi"
)

func TestParseNmcli(t *testing.T) {
	lines := []string{
		"WPA2:72:Lobby",
		":40:Open Cafe",
		"WPA1 WPA2:55:Colon\\:Net",
		"--:10:Dashes",
		"WPA2::NoSignal",
		"missing separators",
		"WPA2:loud:BadSignal",
	}
	networks, lineErrs, err := Parse(ToolNmcli, strings.Join(lines, "\n")+"\n")
	require.NoError(t, err)
	assert.Equal(t, len(lines), len(networks)+len(lineErrs), "every line is accounted for")

	require.Len(t, networks, 5)
	assert.Equal(t, wifi.Network{ESSID: "Lobby", Encrypted: true, Signal: wifi.SignalBars(72)}, networks[0])
	assert.Equal(t, wifi.Network{ESSID: "Open Cafe", Signal: wifi.SignalBars(40)}, networks[1])
	assert.Equal(t, "Colon:Net", networks[2].ESSID)
	assert.False(t, networks[3].Encrypted)
	assert.Nil(t, networks[4].Signal)

	require.Len(t, lineErrs, 2)
	assert.True(t, errors.Is(lineErrs[0], wifi.ErrMissingScanField))
	assert.True(t, errors.Is(lineErrs[1], wifi.ErrInvalidSignal))
}

func TestParseNmcliEmpty(t *testing.T) {
	networks, lineErrs, err := Parse(ToolNmcli, "")
	assert.NoError(t, err)
	assert.Empty(t, networks)
	assert.Empty(t, lineErrs)
}

func TestSplitTerse(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c:d"}, SplitTerse(`a:b:c\:d`, 3))
	assert.Equal(t, []string{"a", "b", "c:d"}, SplitTerse(`a:b:c:d`, 3))
	assert.Equal(t, []string{`back\slash`}, SplitTerse(`back\\slash`, 1))
	assert.Equal(t, []string{"only"}, SplitTerse("only", 3))
}

func TestParseNeverPanics(t *testing.T) {
	inputs := []string{
		"", "\n", "\x00", "BSS ", "BSS 00:11:22:33:44:55", "BSS 00:11:22:33:44:55\n\tsignal:",
		"BSS 00:11:22:33:44:55\n\tSSID: \\x", "a\nb\n\t\t\t", ":::", "\\", "x:\\",
	}
	for _, tool := range []Tool{ToolIw, ToolWpaCli, ToolNmcli} {
		for _, in := range inputs {
			assert.NotPanics(t, func() { Parse(tool, in) }, "%s %q", tool, in)
		}
	}
}
