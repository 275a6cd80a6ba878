package wifi

import "sort"

// Annotate joins scanned networks with the known-network map. The result is
// one-to-one with the input and in the same order.
func Annotate(networks []Network, known KnownNetworks) []AnnotatedNetwork {
	annotated := make([]AnnotatedNetwork, len(networks))
	for i, n := range networks {
		annotated[i] = AnnotatedNetwork{
			Network: n,
			Service: known[n.ESSID],
		}
	}
	return annotated
}

// SortNetworks returns the networks ordered by signal strength, strongest
// first, with one entry per ESSID. Networks without a signal sort last. Since
// the sort happens before deduplication, the surviving entry for each ESSID
// is its strongest one.
func SortNetworks(networks []AnnotatedNetwork) []AnnotatedNetwork {
	sorted := make([]AnnotatedNetwork, len(networks))
	copy(sorted, networks)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].Signal, sorted[j].Signal
		if a == nil || b == nil {
			return a != nil && b == nil
		}
		return *a > *b
	})

	seen := make(map[string]bool, len(sorted))
	result := sorted[:0]
	for _, n := range sorted {
		if seen[n.ESSID] {
			continue
		}
		seen[n.ESSID] = true
		result = append(result, n)
	}
	return result
}

// Known returns the known networks in the order given.
func Known(networks []AnnotatedNetwork) []AnnotatedNetwork {
	var known []AnnotatedNetwork
	for _, n := range networks {
		if n.IsKnown() {
			known = append(known, n)
		}
	}
	return known
}
