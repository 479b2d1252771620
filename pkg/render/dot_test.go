package render

import (
	"strings"
	"testing"

	"github.com/buildplan/buildplan/pkg/graph"
)

func testGraph() *graph.DependencyGraph {
	return graph.Deserialize(graph.SerializedGraph{
		Nodes: []graph.SerializedNode{
			{Name: "api", Version: "1.2.0", Location: "packages/api", Dependencies: []string{"core"}},
			{Name: "core", Version: "2.0.0", Location: "packages/core"},
		},
		Edges: []graph.SerializedEdge{
			{Name: "api", LocalDependencies: []string{"core"}},
		},
	})
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(testGraph(), Options{})

	for _, want := range []string{
		"digraph workspace {",
		"rankdir=TB",
		`"api" [label="api"]`,
		`"core" [label="core"]`,
		`"api" -> "core";`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT output missing %q:\n%s", want, dot)
		}
	}

	if strings.Contains(dot, `"core" -> "api"`) {
		t.Error("edges must point from dependent to dependency only")
	}
}

func TestToDOTDetailed(t *testing.T) {
	dot := ToDOT(testGraph(), Options{Detailed: true})

	if !strings.Contains(dot, "v1.2.0") {
		t.Errorf("detailed labels should include the version:\n%s", dot)
	}
	if !strings.Contains(dot, "packages/api") {
		t.Errorf("detailed labels should include the location:\n%s", dot)
	}
}

func TestToDOTEmptyGraph(t *testing.T) {
	dot := ToDOT(graph.Deserialize(graph.SerializedGraph{}), Options{})

	if !strings.HasPrefix(dot, "digraph workspace {") || !strings.HasSuffix(dot, "}\n") {
		t.Errorf("empty graph should still be a well-formed digraph:\n%s", dot)
	}
}
