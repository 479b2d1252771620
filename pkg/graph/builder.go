package graph

import (
	"io"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/buildplan/buildplan/pkg/manifest"
)

// Build constructs a DependencyGraph from the manifests at the given paths.
//
// Construction runs in two passes. The first pass parses every manifest into
// a node; when two manifests declare the same package name, the later one
// overwrites the earlier (last-write-wins, no duplicate detection). The
// second pass - which must not begin before every node from the first pass
// is present - intersects each node's declared dependencies with the node
// set to populate LocalDependencies and the forward edges. Reverse edges are
// then derived as the exact transpose.
//
// Any parse failure aborts the build with the parser's *manifest.DescriptorError;
// no partial graph is returned. A nil logger silences all diagnostics.
func Build(paths []string, parser manifest.Parser, logger *log.Logger) (*DependencyGraph, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	g := &DependencyGraph{
		nodes:   make(map[string]*PackageNode, len(paths)),
		forward: make(map[string]map[string]bool, len(paths)),
	}

	for _, path := range paths {
		d, err := parser.Parse(path)
		if err != nil {
			return nil, err
		}

		version := d.Version
		if version == "" {
			version = DefaultVersion
		}

		g.nodes[d.Name] = &PackageNode{
			Name:                    d.Name,
			Version:                 version,
			Location:                filepath.Dir(path),
			DeclaredDependencies:    d.AllDependencies(),
			DeclaredDevDependencies: d.DevDependencyNames(),
			LocalDependencies:       make(map[string]bool),
		}
		logger.Debug("parsed package", "name", d.Name, "version", version, "path", path)
	}

	// Second pass: every node is known, so declared dependencies can be
	// resolved against the workspace.
	for name, node := range g.nodes {
		edges := make(map[string]bool)
		for dep := range node.DeclaredDependencies {
			if _, local := g.nodes[dep]; local {
				edges[dep] = true
				logger.Debug("local dependency", "package", name, "dependsOn", dep)
			}
		}
		node.LocalDependencies = edges
		g.forward[name] = edges
	}

	g.reverse = Reverse(g.forward)
	return g, nil
}
