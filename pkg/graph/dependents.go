package graph

// DependentsOf returns every package that depends on name, directly or
// transitively. The start package itself is excluded. Unknown names are not
// an error: the reverse edges simply yield no entries and the result is
// empty.
//
// The traversal is a breadth-first walk over the reverse edges, visiting
// each package at most once, so cyclic graphs terminate too.
func DependentsOf(name string, g *DependencyGraph) map[string]bool {
	dependents := make(map[string]bool)
	queue := []string{name}
	seen := map[string]bool{name: true}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for dependent := range g.reverse[current] {
			if seen[dependent] {
				continue
			}
			seen[dependent] = true
			dependents[dependent] = true
			queue = append(queue, dependent)
		}
	}

	return dependents
}
