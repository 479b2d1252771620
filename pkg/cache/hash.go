package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// GraphKey derives the cache key for a workspace graph snapshot. The digest
// covers the workspace root and every discovered manifest path, so adding,
// removing, or relocating a package yields a fresh key while repeated scans
// of an unchanged workspace hit the same entry.
func GraphKey(root string, manifestPaths []string) string {
	payload, _ := json.Marshal(struct {
		Root      string   `json:"root"`
		Manifests []string `json:"manifests"`
	}{root, manifestPaths})
	return "graph:" + Hash(payload)
}

// Hash returns the full hex-encoded SHA-256 digest of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
