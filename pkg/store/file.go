package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/buildplan/buildplan/pkg/cache"
)

// FileStore keeps snapshots as JSON files in a directory, one file per
// snapshot, named <workspace-hash>-<id>.json so per-workspace listing is a
// prefix scan.
type FileStore struct {
	dir string
}

// NewFileStore creates a file-backed store rooted at dir.
// The directory is created if it doesn't exist.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &FileStore{dir: dir}, nil
}

// Save persists a snapshot.
func (s *FileStore) Save(ctx context.Context, snap Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path(snap.Workspace, snap.ID), data, 0644)
}

// Latest returns the most recent snapshot for a workspace.
func (s *FileStore) Latest(ctx context.Context, workspace string) (Snapshot, error) {
	snaps, err := s.List(ctx, workspace)
	if err != nil {
		return Snapshot{}, err
	}
	if len(snaps) == 0 {
		return Snapshot{}, ErrSnapshotNotFound
	}
	return snaps[0], nil
}

// List returns every snapshot for a workspace, newest first.
func (s *FileStore) List(ctx context.Context, workspace string) ([]Snapshot, error) {
	prefix := workspaceHash(workspace) + "-"

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}

	var snaps []Snapshot
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), prefix) {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		var snap Snapshot
		if err := json.Unmarshal(data, &snap); err != nil {
			// Corrupt entries are skipped rather than failing the listing.
			continue
		}
		snaps = append(snaps, snap)
	}

	sort.Slice(snaps, func(i, j int) bool {
		return snaps[i].CreatedAt.After(snaps[j].CreatedAt)
	})
	return snaps, nil
}

// Delete removes a snapshot by ID.
func (s *FileStore) Delete(ctx context.Context, id string) error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), "-"+id+".json") {
			return os.Remove(filepath.Join(s.dir, entry.Name()))
		}
	}
	return nil
}

// Close does nothing for the file store.
func (s *FileStore) Close(ctx context.Context) error { return nil }

func (s *FileStore) path(workspace, id string) string {
	return filepath.Join(s.dir, workspaceHash(workspace)+"-"+id+".json")
}

func workspaceHash(workspace string) string {
	// 16 hex chars is plenty for filename disambiguation.
	return cache.Hash([]byte(workspace))[:16]
}

// Ensure FileStore implements Store.
var _ Store = (*FileStore)(nil)
