package graph

// Reverse transposes a forward edge map into its dependents map: for every
// forward pair (source, target), source is added to the set keyed by target.
//
// Names with no dependents are absent from the result rather than present
// with an empty set, so callers must treat the two as equivalent when
// querying. Reverse is pure and safe for concurrent use.
func Reverse(forward map[string]map[string]bool) map[string]map[string]bool {
	reverse := make(map[string]map[string]bool)
	for source, targets := range forward {
		for target := range targets {
			set, ok := reverse[target]
			if !ok {
				set = make(map[string]bool)
				reverse[target] = set
			}
			set[source] = true
		}
	}
	return reverse
}
