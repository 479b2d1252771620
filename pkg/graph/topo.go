package graph

import "fmt"

// CycleError is returned by [Sort] when the graph contains a dependency
// cycle. Node names one package on the detected cycle - whichever package
// the traversal reentered while it was still in progress, not necessarily
// the lexicographically first member.
type CycleError struct {
	Node string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("Circular dependency detected involving package %q", e.Node)
}

// Traversal colors: white is unvisited, gray is in-progress on the current
// DFS path, black is done.
const (
	white = iota
	gray
	black
)

// Sort returns a build order over every package in the graph: for each
// forward edge A -> B (A depends on B), B appears strictly before A.
//
// The traversal is a depth-first post-order driven by an explicit frame
// stack, so very deep workspaces cannot exhaust the call stack. Roots and
// children are visited in lexical name order, which makes the result
// deterministic; graphs with independent subgraphs admit other equally
// valid orders, and only the dependencies-before-dependents constraint is
// contractual.
//
// Sort fails with a *CycleError when a package is reentered while still in
// progress. Edge targets with no corresponding node, which a restored
// snapshot can carry, are skipped; [Validate] reports them.
func Sort(g *DependencyGraph) ([]string, error) {
	color := make(map[string]int, len(g.nodes))
	order := make([]string, 0, len(g.nodes))

	type frame struct {
		name     string
		children []string
		next     int
	}

	for _, root := range g.Names() {
		if color[root] != white {
			continue
		}

		color[root] = gray
		stack := []frame{{name: root, children: g.Dependencies(root)}}

		for len(stack) > 0 {
			top := &stack[len(stack)-1]

			if top.next < len(top.children) {
				child := top.children[top.next]
				top.next++

				if _, ok := g.nodes[child]; !ok {
					// Dangling edge target; not a package, nothing to order.
					continue
				}

				switch color[child] {
				case white:
					color[child] = gray
					stack = append(stack, frame{name: child, children: g.Dependencies(child)})
				case gray:
					// Back edge: child is an ancestor on the current path.
					return nil, &CycleError{Node: child}
				}
				continue
			}

			// All dependencies emitted; the package itself follows.
			color[top.name] = black
			order = append(order, top.name)
			stack = stack[:len(stack)-1]
		}
	}

	return order, nil
}
