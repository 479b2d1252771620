package graph

import (
	"maps"
	"slices"
)

// DependencyGraph models the declared dependency relationships between the
// packages of a workspace. The zero value is not usable; graphs are produced
// by [Build] or [Deserialize] and must not be mutated afterwards.
//
// Forward edges connect a package to the workspace-local packages it depends
// on. Reverse edges are the exact transpose and are always derived, never
// independently authored.
type DependencyGraph struct {
	nodes   map[string]*PackageNode
	forward map[string]map[string]bool
	reverse map[string]map[string]bool
}

// Node returns the package with the given name and true, or nil and false if
// the name is unknown to the graph.
func (g *DependencyGraph) Node(name string) (*PackageNode, bool) {
	n, ok := g.nodes[name]
	return n, ok
}

// Names returns every package name in the graph in lexical order.
func (g *DependencyGraph) Names() []string {
	return slices.Sorted(maps.Keys(g.nodes))
}

// Nodes returns every package in the graph, sorted by name.
func (g *DependencyGraph) Nodes() []*PackageNode {
	nodes := make([]*PackageNode, 0, len(g.nodes))
	for _, name := range g.Names() {
		nodes = append(nodes, g.nodes[name])
	}
	return nodes
}

// NodeCount returns the number of packages in the graph.
func (g *DependencyGraph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of forward edges in the graph.
func (g *DependencyGraph) EdgeCount() int {
	count := 0
	for _, targets := range g.forward {
		count += len(targets)
	}
	return count
}

// Dependencies returns the names of the workspace-local packages that name
// depends on, in lexical order. Unknown names yield an empty slice.
func (g *DependencyGraph) Dependencies(name string) []string {
	return sortedSet(g.forward[name])
}

// Dependents returns the names of the packages that directly depend on name,
// in lexical order. Unknown names yield an empty slice.
func (g *DependencyGraph) Dependents(name string) []string {
	return sortedSet(g.reverse[name])
}

// Forward returns a copy of the forward edge map. Keys with no outgoing
// edges are present with empty sets.
func (g *DependencyGraph) Forward() map[string]map[string]bool {
	return copyEdges(g.forward)
}

// Reverse returns a copy of the reverse edge map. Names with no dependents
// are absent; callers must treat "absent" and "empty set" as equivalent.
func (g *DependencyGraph) Reverse() map[string]map[string]bool {
	return copyEdges(g.reverse)
}

func copyEdges(edges map[string]map[string]bool) map[string]map[string]bool {
	out := make(map[string]map[string]bool, len(edges))
	for name, targets := range edges {
		out[name] = maps.Clone(targets)
	}
	return out
}
