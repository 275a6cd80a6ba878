package netctl

// WifiFilter selects wireless profiles. Nil fields match anything.
type WifiFilter struct {
	Interface *string
	ID        *string
	ESSID     *string
}

// Matches reports whether p passes every set constraint.
func (f WifiFilter) Matches(p WifiProfile) bool {
	return matches(f.Interface, p.Interface) &&
		matches(f.ID, p.ID) &&
		matches(f.ESSID, p.ESSID)
}

// WiredFilter selects ethernet profiles. Nil fields match anything.
type WiredFilter struct {
	Interface *string
	ID        *string
}

// Matches reports whether p passes every set constraint.
func (f WiredFilter) Matches(p WiredProfile) bool {
	return matches(f.Interface, p.Interface) && matches(f.ID, p.ID)
}

func matches(want *string, got string) bool {
	return want == nil || *want == got
}

// FindWifi returns the wireless profiles among profiles that match f.
// Profiles of another kind are skipped.
func FindWifi(profiles []Profile, f WifiFilter) []WifiProfile {
	var out []WifiProfile
	for _, p := range profiles {
		w, err := p.Wifi()
		if err != nil {
			continue
		}
		if f.Matches(w) {
			out = append(out, w)
		}
	}
	return out
}

// FindWired returns the ethernet profiles among profiles that match f.
func FindWired(profiles []Profile, f WiredFilter) []WiredProfile {
	var out []WiredProfile
	for _, p := range profiles {
		w, err := p.Wired()
		if err != nil {
			continue
		}
		if f.Matches(w) {
			out = append(out, w)
		}
	}
	return out
}
