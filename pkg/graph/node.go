package graph

import "slices"

// DefaultVersion is used when a manifest declares no version.
const DefaultVersion = "0.0.0"

// PackageNode is a single workspace package. Nodes are keyed by Name, which
// must be unique within a graph.
//
// The three dependency sets form a hierarchy: LocalDependencies and
// DeclaredDevDependencies are both subsets of DeclaredDependencies, and every
// member of LocalDependencies is the name of another node in the same graph.
type PackageNode struct {
	// Name is the package's declared name and the graph's node key.
	Name string
	// Version is the declared version, or DefaultVersion when absent.
	Version string
	// Location is the directory containing the package's manifest.
	Location string
	// DeclaredDependencies is the union of all dependency categories
	// (runtime, development, peer, optional).
	DeclaredDependencies map[string]bool
	// DeclaredDevDependencies is the development-category subset of
	// DeclaredDependencies, tracked for callers that need the distinction.
	DeclaredDevDependencies map[string]bool
	// LocalDependencies is the subset of DeclaredDependencies that resolves
	// to another node in the same graph. Populated during Build's second
	// pass, once all nodes are known.
	LocalDependencies map[string]bool
}

// sortedSet returns the members of a string set in lexical order.
// A nil set yields an empty slice, never nil, so JSON output stays stable.
func sortedSet(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for name := range set {
		out = append(out, name)
	}
	slices.Sort(out)
	return out
}

// toSet converts a name list into a set. Duplicates collapse.
func toSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, name := range names {
		set[name] = true
	}
	return set
}
