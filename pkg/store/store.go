// Package store persists graph snapshots across process runs.
//
// A [Snapshot] wraps a [graph.SerializedGraph] with identity and provenance
// (which workspace it was scanned from, and when). Two backends are
// provided: a directory of JSON files for local use, and a MongoDB
// collection for shared deployments behind the HTTP API.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/buildplan/buildplan/pkg/graph"
)

// ErrSnapshotNotFound is returned when no snapshot matches the query.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// Snapshot is one persisted graph with provenance.
type Snapshot struct {
	ID        string                `json:"id" bson:"_id"`
	Workspace string                `json:"workspace" bson:"workspace"`
	CreatedAt time.Time             `json:"created_at" bson:"created_at"`
	Graph     graph.SerializedGraph `json:"graph" bson:"graph"`
}

// NewSnapshot wraps a graph in a snapshot record for the given workspace
// root, assigning a fresh ID and the current time.
func NewSnapshot(workspace string, g *graph.DependencyGraph) Snapshot {
	return Snapshot{
		ID:        uuid.NewString(),
		Workspace: workspace,
		CreatedAt: time.Now().UTC(),
		Graph:     graph.Serialize(g),
	}
}

// Store saves and retrieves snapshots.
type Store interface {
	// Save persists a snapshot.
	Save(ctx context.Context, snap Snapshot) error

	// Latest returns the most recent snapshot for a workspace, or
	// ErrSnapshotNotFound.
	Latest(ctx context.Context, workspace string) (Snapshot, error)

	// List returns every stored snapshot for a workspace, newest first.
	List(ctx context.Context, workspace string) ([]Snapshot, error)

	// Delete removes a snapshot by ID. Missing IDs are not an error.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}
