package wifi

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatMenuLine(t *testing.T) {
	tests := []struct {
		name     string
		index    int
		network  AnnotatedNetwork
		expected string
	}{
		{"encrypted unknown", 0, AnnotatedNetwork{Network: Network{ESSID: "Lobby", Encrypted: true, Signal: signal(43)}}, "0) [43] Lobby"},
		{"open unknown", 1, AnnotatedNetwork{Network: Network{ESSID: "Cafe", Signal: signal(24)}}, "1) [24] Cafe [O]"},
		{"open known", 2, AnnotatedNetwork{Network: Network{ESSID: "Home", Signal: signal(70)}, Service: "home"}, "2) [70] Home [OK]"},
		{"encrypted known", 3, AnnotatedNetwork{Network: Network{ESSID: "Work", Encrypted: true}, Service: "work"}, "3) Work [K]"},
		{"hidden", 4, AnnotatedNetwork{Network: Network{Encrypted: true}}, "4) "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatMenuLine(tt.index, tt.network))
		})
	}
}

func TestMenuLines(t *testing.T) {
	lines := MenuLines([]AnnotatedNetwork{
		{Network: Network{ESSID: "a", Encrypted: true}},
	})
	assert.Equal(t, []string{"0) a", RefreshEntry}, lines)
}

func TestParseMenuChoice(t *testing.T) {
	tests := []struct {
		choice  string
		n       int
		index   int
		wantErr error
	}{
		{"0) [43] Lobby\n", 2, 0, nil},
		{"1) [24] Cafe [O]", 2, 1, nil},
		{"4) \n", 5, 4, nil},
		{"  1) x) y", 2, 1, nil},
		{"refresh", 2, 0, ErrRefreshRequested},
		{"Refresh\n", 2, 0, ErrRefreshRequested},
		{".", 2, 0, ErrRefreshRequested},
		{"2) [1] Gone", 2, 0, ErrNoMatchingResult},
		{"-1) nope", 2, 0, ErrNoMatchingResult},
		{"garbage", 2, 0, ErrNoMatchingResult},
		{"x) y", 2, 0, ErrNoMatchingResult},
		{"", 2, 0, ErrNoMatchingResult},
	}
	for _, tt := range tests {
		t.Run(tt.choice, func(t *testing.T) {
			index, err := ParseMenuChoice(tt.choice, tt.n)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.index, index)
		})
	}
}

func TestMenuRoundTrip(t *testing.T) {
	networks := []AnnotatedNetwork{
		{Network: Network{ESSID: "Lobby", Encrypted: true, Signal: signal(43)}},
		{Network: Network{ESSID: "My ) Net", Signal: signal(12)}, Service: "x"},
		{Network: Network{Encrypted: true}},
	}
	lines := MenuLines(networks)
	for i := range networks {
		index, err := ParseMenuChoice(lines[i]+"\n", len(networks))
		require.NoError(t, err)
		assert.Equal(t, i, index)
	}
	_, err := ParseMenuChoice(lines[len(lines)-1], len(networks))
	assert.ErrorIs(t, err, ErrRefreshRequested)
}
