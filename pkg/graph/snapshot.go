package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// MarshalSnapshot converts a graph to indented JSON snapshot bytes.
func MarshalSnapshot(g *DependencyGraph) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteSnapshot(g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteSnapshot writes a graph as a JSON snapshot to w.
func WriteSnapshot(g *DependencyGraph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(Serialize(g)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteSnapshotFile writes a graph snapshot to a JSON file.
// The file is created with 0644 permissions.
func WriteSnapshotFile(g *DependencyGraph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteSnapshot(g, f)
}

// ReadSnapshot decodes a JSON snapshot from r and restores the graph.
func ReadSnapshot(r io.Reader) (*DependencyGraph, error) {
	var data SerializedGraph
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return Deserialize(data), nil
}

// ReadSnapshotFile reads a snapshot file and restores the graph.
func ReadSnapshotFile(path string) (*DependencyGraph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadSnapshot(f)
}
