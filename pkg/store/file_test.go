package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/buildplan/buildplan/pkg/graph"
)

// testSnapshot builds a snapshot with a fixed creation time.
func testSnapshot(id, workspace string, createdAt time.Time) Snapshot {
	return Snapshot{
		ID:        id,
		Workspace: workspace,
		CreatedAt: createdAt,
		Graph: graph.SerializedGraph{
			Nodes: []graph.SerializedNode{{Name: "core", Version: "1.0.0"}},
		},
	}
}

func TestFileStoreSaveAndLatest(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	defer s.Close(ctx)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	old := testSnapshot("id-old", "/repo", base)
	recent := testSnapshot("id-new", "/repo", base.Add(time.Hour))

	if err := s.Save(ctx, old); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Save(ctx, recent); err != nil {
		t.Fatalf("Save: %v", err)
	}

	latest, err := s.Latest(ctx, "/repo")
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if latest.ID != "id-new" {
		t.Errorf("Latest.ID = %q, want id-new", latest.ID)
	}
	if len(latest.Graph.Nodes) != 1 || latest.Graph.Nodes[0].Name != "core" {
		t.Errorf("Latest.Graph = %+v", latest.Graph)
	}
}

func TestFileStoreListScopedToWorkspace(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	now := time.Now().UTC()
	if err := s.Save(ctx, testSnapshot("a1", "/repo-a", now)); err != nil {
		t.Fatal(err)
	}
	if err := s.Save(ctx, testSnapshot("a2", "/repo-a", now.Add(time.Minute))); err != nil {
		t.Fatal(err)
	}
	if err := s.Save(ctx, testSnapshot("b1", "/repo-b", now)); err != nil {
		t.Fatal(err)
	}

	snaps, err := s.List(ctx, "/repo-a")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(snaps) != 2 {
		t.Fatalf("List returned %d snapshots, want 2", len(snaps))
	}
	if snaps[0].ID != "a2" || snaps[1].ID != "a1" {
		t.Errorf("List order = [%s, %s], want newest first", snaps[0].ID, snaps[1].ID)
	}
}

func TestFileStoreLatestMissing(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	if _, err := s.Latest(ctx, "/nothing"); !errors.Is(err, ErrSnapshotNotFound) {
		t.Errorf("Latest = %v, want ErrSnapshotNotFound", err)
	}
}

func TestFileStoreDelete(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	snap := testSnapshot("gone", "/repo", time.Now().UTC())
	if err := s.Save(ctx, snap); err != nil {
		t.Fatal(err)
	}

	if err := s.Delete(ctx, "gone"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Latest(ctx, "/repo"); !errors.Is(err, ErrSnapshotNotFound) {
		t.Errorf("snapshot still present after Delete: %v", err)
	}

	// Deleting an unknown ID is not an error.
	if err := s.Delete(ctx, "never-existed"); err != nil {
		t.Errorf("Delete(unknown) = %v", err)
	}
}

func TestFileStoreSkipsCorruptEntries(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	good := testSnapshot("ok", "/repo", time.Now().UTC())
	if err := s.Save(ctx, good); err != nil {
		t.Fatal(err)
	}

	// Plant a corrupt file under the same workspace prefix.
	corrupt := filepath.Join(dir, workspaceHash("/repo")+"-bad.json")
	if err := os.WriteFile(corrupt, []byte("{broken"), 0644); err != nil {
		t.Fatal(err)
	}

	snaps, err := s.List(ctx, "/repo")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(snaps) != 1 || snaps[0].ID != "ok" {
		t.Errorf("List = %+v, want only the intact snapshot", snaps)
	}
}

func TestNewSnapshot(t *testing.T) {
	g := graph.Deserialize(graph.SerializedGraph{
		Nodes: []graph.SerializedNode{{Name: "a"}, {Name: "b"}},
		Edges: []graph.SerializedEdge{{Name: "b", LocalDependencies: []string{"a"}}},
	})

	snap := NewSnapshot("/repo", g)
	if snap.ID == "" {
		t.Error("NewSnapshot should assign an ID")
	}
	if snap.Workspace != "/repo" {
		t.Errorf("Workspace = %q", snap.Workspace)
	}
	if snap.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}
	if len(snap.Graph.Nodes) != 2 {
		t.Errorf("Graph.Nodes = %+v, want 2 nodes", snap.Graph.Nodes)
	}

	// IDs are unique per snapshot.
	if other := NewSnapshot("/repo", g); other.ID == snap.ID {
		t.Error("two snapshots should not share an ID")
	}
}
