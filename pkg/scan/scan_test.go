package scan

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/buildplan/buildplan/pkg/manifest"
)

// makeWorkspace creates a directory tree where each entry is a relative
// directory that receives a manifest file. Returns the root.
func makeWorkspace(t *testing.T, dirs []string) string {
	t.Helper()
	root := t.TempDir()
	for _, dir := range dirs {
		full := filepath.Join(root, dir)
		if err := os.MkdirAll(full, 0755); err != nil {
			t.Fatalf("mkdir %s: %v", dir, err)
		}
		path := filepath.Join(full, manifest.Filename)
		if err := os.WriteFile(path, []byte(`{"name": "x"}`), 0644); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
	}
	return root
}

// relPaths converts found paths to slash-separated paths relative to root.
func relPaths(t *testing.T, root string, paths []string) []string {
	t.Helper()
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		rel, err := filepath.Rel(root, p)
		if err != nil {
			t.Fatalf("rel %s: %v", p, err)
		}
		out = append(out, filepath.ToSlash(rel))
	}
	return out
}

func TestScanFindsManifests(t *testing.T) {
	root := makeWorkspace(t, []string{
		".",
		"packages/core",
		"packages/api",
		"tools/scripts",
	})

	s := &Scanner{}
	paths, err := s.Scan(root)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}

	got := relPaths(t, root, paths)
	want := []string{
		"package.json",
		"packages/api/package.json",
		"packages/core/package.json",
		"tools/scripts/package.json",
	}
	if !slices.Equal(got, want) {
		t.Errorf("paths = %v, want %v", got, want)
	}
}

func TestScanExclusions(t *testing.T) {
	tests := []struct {
		name    string
		dirs    []string
		exclude []string
		want    []string
	}{
		{
			name:    "directory name prunes subtree",
			dirs:    []string{"packages/app", "node_modules/leftover", "packages/app/node_modules/dep"},
			exclude: []string{"node_modules"},
			want:    []string{"packages/app/package.json"},
		},
		{
			name:    "doublestar pattern",
			dirs:    []string{"packages/app", "packages/app/fixtures/sample", "e2e/fixtures/case"},
			exclude: []string{"**/fixtures/**"},
			want:    []string{"packages/app/package.json"},
		},
		{
			name:    "no exclusions",
			dirs:    []string{"a", "b"},
			exclude: nil,
			want:    []string{"a/package.json", "b/package.json"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := makeWorkspace(t, tt.dirs)

			s := &Scanner{Exclude: tt.exclude}
			paths, err := s.Scan(root)
			if err != nil {
				t.Fatalf("Scan: %v", err)
			}

			if got := relPaths(t, root, paths); !slices.Equal(got, tt.want) {
				t.Errorf("paths = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScanCustomManifestName(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "svc")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "pkg.json"), []byte(`{"name": "svc"}`), 0644); err != nil {
		t.Fatal(err)
	}
	// A standard package.json that must be ignored under the custom name.
	if err := os.WriteFile(filepath.Join(dir, manifest.Filename), []byte(`{"name": "svc"}`), 0644); err != nil {
		t.Fatal(err)
	}

	s := &Scanner{Manifest: "pkg.json"}
	paths, err := s.Scan(root)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if got := relPaths(t, root, paths); !slices.Equal(got, []string{"svc/pkg.json"}) {
		t.Errorf("paths = %v, want [svc/pkg.json]", got)
	}
}

func TestScanMissingRoot(t *testing.T) {
	s := &Scanner{}
	missing := filepath.Join(t.TempDir(), "nope")

	paths, err := s.Scan(missing)
	if err == nil {
		t.Fatalf("Scan succeeded with %v, want error", paths)
	}

	var scanErr *ScanError
	if !errors.As(err, &scanErr) {
		t.Fatalf("error = %T, want *ScanError", err)
	}
	if scanErr.Dir != missing {
		t.Errorf("ScanError.Dir = %q, want %q", scanErr.Dir, missing)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("cause should unwrap to os.ErrNotExist, got %v", scanErr.Err)
	}
}

func TestScanEmptyWorkspace(t *testing.T) {
	s := &Scanner{}
	paths, err := s.Scan(t.TempDir())
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(paths) != 0 {
		t.Errorf("paths = %v, want none", paths)
	}
}
