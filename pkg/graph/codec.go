package graph

// SerializedGraph is the flat, order-preserving snapshot format for
// persisting a graph across process runs. It is stored as a plain JSON
// document (bson tags support document stores); field names and shapes are
// a stable on-disk contract.
//
// The format is deliberately lossy: reverse edges are cheap to recompute and
// are not persisted, and neither are the dev/local dependency distinctions.
// After [Deserialize], DeclaredDevDependencies and LocalDependencies are
// empty on every node.
type SerializedGraph struct {
	Nodes []SerializedNode `json:"nodes" bson:"nodes"`
	Edges []SerializedEdge `json:"edges" bson:"edges"`
}

// SerializedNode is one persisted package record.
type SerializedNode struct {
	Name         string   `json:"name" bson:"name"`
	Version      string   `json:"version" bson:"version"`
	Location     string   `json:"location" bson:"location"`
	Dependencies []string `json:"dependencies" bson:"dependencies"`
}

// SerializedEdge pairs a package with its workspace-local dependency names.
type SerializedEdge struct {
	Name              string   `json:"name" bson:"name"`
	LocalDependencies []string `json:"localDependencies" bson:"localDependencies"`
}

// Serialize converts a graph into its snapshot form. Node and edge records
// are sorted by package name and dependency lists lexically, so equal graphs
// serialize identically.
func Serialize(g *DependencyGraph) SerializedGraph {
	names := g.Names()

	out := SerializedGraph{
		Nodes: make([]SerializedNode, 0, len(names)),
		Edges: make([]SerializedEdge, 0, len(names)),
	}

	for _, name := range names {
		node := g.nodes[name]
		out.Nodes = append(out.Nodes, SerializedNode{
			Name:         node.Name,
			Version:      node.Version,
			Location:     node.Location,
			Dependencies: sortedSet(node.DeclaredDependencies),
		})

		if locals := g.forward[name]; len(locals) > 0 {
			out.Edges = append(out.Edges, SerializedEdge{
				Name:              name,
				LocalDependencies: sortedSet(locals),
			})
		}
	}

	return out
}

// Deserialize reconstructs a graph from its snapshot form.
//
// Nodes are restored with DeclaredDevDependencies and LocalDependencies
// reset to empty sets; they are not recomputed from the declared
// dependencies even though the restored node set would allow it. Forward
// edges are taken verbatim from the persisted pairs and reverse edges are
// re-derived via [Reverse], so a round trip preserves node identity
// (name, version, location) and both edge maps.
func Deserialize(data SerializedGraph) *DependencyGraph {
	g := &DependencyGraph{
		nodes:   make(map[string]*PackageNode, len(data.Nodes)),
		forward: make(map[string]map[string]bool, len(data.Nodes)),
	}

	for _, record := range data.Nodes {
		g.nodes[record.Name] = &PackageNode{
			Name:                    record.Name,
			Version:                 record.Version,
			Location:                record.Location,
			DeclaredDependencies:    toSet(record.Dependencies),
			DeclaredDevDependencies: make(map[string]bool),
			LocalDependencies:       make(map[string]bool),
		}
		g.forward[record.Name] = make(map[string]bool)
	}

	for _, edge := range data.Edges {
		g.forward[edge.Name] = toSet(edge.LocalDependencies)
	}

	g.reverse = Reverse(g.forward)
	return g
}
