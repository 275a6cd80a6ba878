package runner

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shazow/wifimenu/wifi"
)

func TestExecCapturesStdout(t *testing.T) {
	out, err := Exec{}.Run(context.Background(), strings.NewReader("a\nb\n"), "cat")
	require.NoError(t, err)
	assert.Equal(t, "a\nb\n", string(out))
}

func TestExecFailureCarriesCommand(t *testing.T) {
	_, err := Exec{}.Run(context.Background(), nil, "sh", "-c", "echo out; echo oops >&2; exit 3")
	require.Error(t, err)

	var cmdErr *wifi.CommandError
	require.True(t, errors.As(err, &cmdErr))
	assert.Equal(t, []string{"sh", "-c", "echo out; echo oops >&2; exit 3"}, cmdErr.Command)
	assert.Equal(t, "out\n", cmdErr.Stdout)
	assert.Equal(t, "oops\n", cmdErr.Stderr)
	assert.Equal(t, 3, cmdErr.ExitCode)
	assert.Contains(t, err.Error(), "sh -c")
	assert.Contains(t, err.Error(), "oops")
	assert.Equal(t, wifi.KindCommand, wifi.KindOf(err))
}

func TestExecMissingProgram(t *testing.T) {
	_, err := Exec{}.Run(context.Background(), nil, "wifimenu-definitely-not-installed")
	var cmdErr *wifi.CommandError
	require.True(t, errors.As(err, &cmdErr))
	assert.Equal(t, -1, cmdErr.ExitCode)
}

func TestExecFailureRedactsSecrets(t *testing.T) {
	_, err := Exec{}.Run(context.Background(), nil, "sh", "-c", "exit 4", "wifi-sec.psk", "hunter2")
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "hunter2")

	var cmdErr *wifi.CommandError
	require.True(t, errors.As(err, &cmdErr))
	assert.Equal(t, []string{"sh", "-c", "exit 4", "wifi-sec.psk", Redacted}, cmdErr.Command)
}

func TestRedact(t *testing.T) {
	tests := []struct {
		args []string
		want []string
	}{
		{
			[]string{"connection", "add", "ssid", "Lobby", "wifi-sec.key-mgmt", "wpa-psk", "wifi-sec.psk", "hunter2"},
			[]string{"nmcli", "connection", "add", "ssid", "Lobby", "wifi-sec.key-mgmt", "wpa-psk", "wifi-sec.psk", Redacted},
		},
		{
			[]string{"connection", "modify", "Lobby", "802-11-wireless-security.psk", "hunter2", "ifname", "wlan0"},
			[]string{"nmcli", "connection", "modify", "Lobby", "802-11-wireless-security.psk", Redacted, "ifname", "wlan0"},
		},
		{
			[]string{"--fields", "NAME", "wifi-sec.psk"},
			[]string{"nmcli", "--fields", "NAME", "wifi-sec.psk"},
		},
	}
	for _, tt := range tests {
		args := append([]string(nil), tt.args...)
		assert.Equal(t, tt.want, Redact("nmcli", args))
		assert.Equal(t, tt.args, args, "input is not modified")
	}
}

func TestFakeRedactsSecrets(t *testing.T) {
	f := &Fake{}
	_, err := f.Run(context.Background(), nil, "nmcli", "wifi-sec.psk", "hunter2")
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "hunter2")
	assert.Equal(t, []string{"nmcli wifi-sec.psk hunter2"}, f.Calls())
}

func TestDryRun(t *testing.T) {
	out, err := DryRun{}.Run(context.Background(), nil, "rm", "-rf", "/")
	assert.NoError(t, err)
	assert.Empty(t, out)
}

func TestFake(t *testing.T) {
	f := &Fake{
		Outputs: map[string]string{"iw dev wlan0 scan dump": "BSS"},
		Errors:  map[string]error{"iw dev wlan0 scan": errors.New("busy")},
	}
	out, err := f.Run(context.Background(), nil, "iw", "dev", "wlan0", "scan", "dump")
	require.NoError(t, err)
	assert.Equal(t, "BSS", string(out))

	_, err = f.Run(context.Background(), nil, "iw", "dev", "wlan0", "scan")
	assert.Error(t, err)

	_, err = f.Run(context.Background(), strings.NewReader("in"), "nmcli")
	assert.Error(t, err)
	assert.Equal(t, "in", f.Stdin())
	assert.Equal(t, 2, f.Count("iw dev wlan0"))
}
