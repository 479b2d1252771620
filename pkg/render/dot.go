// Package render turns dependency graphs into Graphviz DOT and SVG output.
package render

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/buildplan/buildplan/pkg/graph"
)

// Options configures DOT rendering.
type Options struct {
	// Detailed includes version and location in node labels.
	// When false, only the package name is shown.
	Detailed bool
}

// ToDOT converts a dependency graph to Graphviz DOT format. Edges point
// from a package to the packages it depends on, top to bottom, so leaf
// dependencies end up at the bottom of the diagram.
func ToDOT(g *graph.DependencyGraph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph workspace {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes() {
		fmt.Fprintf(&buf, "  %q [label=%q];\n", n.Name, fmtLabel(n, opts.Detailed))
	}

	buf.WriteString("\n")
	for _, source := range g.Names() {
		for _, target := range g.Dependencies(source) {
			fmt.Fprintf(&buf, "  %q -> %q;\n", source, target)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n *graph.PackageNode, detailed bool) string {
	if !detailed {
		return n.Name
	}
	parts := []string{n.Name, "v" + n.Version}
	if n.Location != "" {
		parts = append(parts, n.Location)
	}
	return strings.Join(parts, "\n")
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
