package graph

import (
	"errors"
	"fmt"
	"maps"
	"slices"
)

// Report is the outcome of a structural validation pass.
type Report struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

// Validate checks the structural integrity of the graph and never fails
// itself; all findings are reported as data.
//
// Two checks run in order. First, every forward edge must connect existing
// nodes: the walk covers the edge map itself rather than the node set, so it
// also catches edge records whose source names no package. Each violation
// produces one error naming the offending edge. Dangling edges cannot arise
// from [Build] - edges are restricted to known names during construction -
// but a snapshot restored from tampered data can carry them. Second, the
// graph must be acyclic; a *CycleError from [Sort] is downgraded to a single
// validation message.
func Validate(g *DependencyGraph) Report {
	var errs []string

	for _, source := range slices.Sorted(maps.Keys(g.forward)) {
		if _, ok := g.nodes[source]; !ok {
			errs = append(errs, fmt.Sprintf("edge record names package %q, which does not exist in the graph", source))
		}
		for _, target := range g.Dependencies(source) {
			if _, ok := g.nodes[target]; !ok {
				errs = append(errs, fmt.Sprintf("package %q depends on %q, which does not exist in the graph", source, target))
			}
		}
	}

	if _, err := Sort(g); err != nil {
		var cycleErr *CycleError
		if errors.As(err, &cycleErr) {
			errs = append(errs, cycleErr.Error())
		} else {
			errs = append(errs, err.Error())
		}
	}

	return Report{Valid: len(errs) == 0, Errors: errs}
}
