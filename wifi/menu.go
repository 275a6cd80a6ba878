package wifi

import (
	"fmt"
	"strconv"
	"strings"
)

// RefreshEntry is the menu entry that asks for a fresh scan.
const RefreshEntry = "Refresh"

// FormatMenuLine renders a network as a chooser entry:
//
//	<index>) [<signal>] <essid> [<O><K>]
//
// The signal is omitted when unknown, O marks an open network, K a known one.
// The trailing flag group is omitted when neither applies.
func FormatMenuLine(index int, n AnnotatedNetwork) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d) ", index)
	if n.Signal != nil {
		fmt.Fprintf(&b, "[%d] ", *n.Signal)
	}
	b.WriteString(n.ESSID)

	var flags string
	if !n.Encrypted {
		flags += "O"
	}
	if n.IsKnown() {
		flags += "K"
	}
	if flags != "" {
		fmt.Fprintf(&b, " [%s]", flags)
	}
	return b.String()
}

// MenuLines renders the networks followed by the refresh entry.
func MenuLines(networks []AnnotatedNetwork) []string {
	lines := make([]string, 0, len(networks)+1)
	for i, n := range networks {
		lines = append(lines, FormatMenuLine(i, n))
	}
	return append(lines, RefreshEntry)
}

// IsRefresh reports whether a chooser answer is a request to rescan.
func IsRefresh(choice string) bool {
	choice = strings.TrimSpace(choice)
	return choice == "." || strings.EqualFold(choice, RefreshEntry)
}

// ParseMenuChoice maps a chooser answer back to an index into a menu of
// length n. A refresh answer returns ErrRefreshRequested.
func ParseMenuChoice(choice string, n int) (int, error) {
	// Only the line ending is trimmed: a hidden, encrypted network without a
	// signal renders as "<index>) " and needs its trailing space.
	choice = strings.TrimLeft(strings.TrimRight(choice, "\r\n"), " \t")
	if IsRefresh(choice) {
		return 0, ErrRefreshRequested
	}
	sep := strings.Index(choice, ") ")
	if sep < 0 {
		return 0, fmt.Errorf("%w: %q", ErrNoMatchingResult, choice)
	}
	index, err := strconv.Atoi(choice[:sep])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrNoMatchingResult, choice)
	}
	if index < 0 || index >= n {
		return 0, fmt.Errorf("%w: index %d out of %d", ErrNoMatchingResult, index, n)
	}
	return index, nil
}
