package wifi

import "fmt"

// Network is a single scanned candidate, as reported by one of the scan tools.
//
// ESSID may be empty for hidden networks and is not unique within a scan.
type Network struct {
	ESSID     string
	BSSID     string // empty if the tool does not report it
	Encrypted bool
	// Signal is tool-specific: iw and wpa_cli report dBm shifted by +90, nmcli
	// reports a 0-100 percentage. Nil if the tool did not report a signal.
	Signal *int
}

// SignalBars returns a pointer to v, for building Networks.
func SignalBars(v int) *int {
	return &v
}

// ServiceID identifies the profile a known network is stored under. For netctl
// this is the profile filename; other managers use a fixed marker.
type ServiceID string

const (
	// ServiceNetworkManager marks networks known to NetworkManager, which
	// has no profile file to point at.
	ServiceNetworkManager ServiceID = "NetworkManager"
	// ServiceIwd marks networks known to iwd.
	ServiceIwd ServiceID = "iwd"
)

// KnownNetworks maps an ESSID to the profile it is configured in.
type KnownNetworks map[string]ServiceID

// AnnotatedNetwork is a scanned Network joined with the known-network state.
type AnnotatedNetwork struct {
	Network
	// Service is empty if the network is not known.
	Service ServiceID
}

// IsKnown returns whether a profile for this network already exists.
func (n AnnotatedNetwork) IsKnown() bool {
	return n.Service != ""
}

// Manager is the connection manager whose profiles decide which networks are known.
type Manager int

const (
	ManagerNetctl Manager = iota
	ManagerNetworkManager
	ManagerIwd
)

func (m Manager) String() string {
	switch m {
	case ManagerNetctl:
		return "netctl"
	case ManagerNetworkManager:
		return "networkmanager"
	case ManagerIwd:
		return "iwd"
	}
	return "unknown"
}

// ParseManager parses a manager name as accepted on the command line.
func ParseManager(s string) (Manager, error) {
	switch s {
	case "netctl":
		return ManagerNetctl, nil
	case "networkmanager", "nm", "NetworkManager":
		return ManagerNetworkManager, nil
	case "iwd":
		return ManagerIwd, nil
	}
	return 0, fmt.Errorf("unknown connection manager %q: %w", s, ErrInvalidOption)
}
