// Package graph implements the in-memory workspace dependency graph.
//
// A [DependencyGraph] is built once from a set of parsed package manifests
// via [Build] and is immutable afterwards. All analysis functions
// ([Sort], [DependentsOf], [Validate], [Reverse]) are pure: they accept a
// graph snapshot and return new values, so concurrent callers need no
// synchronization.
//
// Edges point from a package to the workspace-local packages it depends on
// ("forward" edges). The transposed relation ("reverse" edges, dependents)
// is derived during construction and is kept as an exact transpose of the
// forward edges at all times.
//
// Graphs can be persisted as flat JSON snapshots via [Serialize] and
// restored with [Deserialize]; see the codec documentation for which fields
// survive a round trip.
package graph
