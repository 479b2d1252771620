package manifest

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// writeManifest creates a package.json with the given content and returns its path.
func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), Filename)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

func TestParseValid(t *testing.T) {
	path := writeManifest(t, `{
		"name": "@acme/app",
		"version": "1.2.3",
		"dependencies": {"@acme/core": "workspace:*", "lodash": "^4.17.21"},
		"devDependencies": {"@acme/testkit": "workspace:*"},
		"peerDependencies": {"react": ">=18"},
		"optionalDependencies": {"fsevents": "^2.3.0"}
	}`)

	d, err := NewJSONParser().Parse(path)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if d.Name != "@acme/app" {
		t.Errorf("Name = %q, want @acme/app", d.Name)
	}
	if d.Version != "1.2.3" {
		t.Errorf("Version = %q, want 1.2.3", d.Version)
	}
	if d.Dependencies["@acme/core"] != "workspace:*" {
		t.Errorf("Dependencies = %v", d.Dependencies)
	}
	if d.PeerDependencies["react"] != ">=18" {
		t.Errorf("PeerDependencies = %v", d.PeerDependencies)
	}
}

func TestParseMinimal(t *testing.T) {
	// Only the name is required; everything else may be absent.
	path := writeManifest(t, `{"name": "bare"}`)

	d, err := NewJSONParser().Parse(path)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if d.Name != "bare" || d.Version != "" {
		t.Errorf("got %+v", d)
	}
	if len(d.AllDependencies()) != 0 {
		t.Errorf("AllDependencies = %v, want empty", d.AllDependencies())
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		path    func(t *testing.T) string
		wantErr error // optional sentinel to check with errors.Is
	}{
		{
			name: "missing name field",
			path: func(t *testing.T) string {
				return writeManifest(t, `{"version": "1.0.0"}`)
			},
			wantErr: ErrMissingName,
		},
		{
			name: "empty name",
			path: func(t *testing.T) string {
				return writeManifest(t, `{"name": ""}`)
			},
			wantErr: ErrMissingName,
		},
		{
			name: "malformed JSON",
			path: func(t *testing.T) string {
				return writeManifest(t, `{"name": "broken"`)
			},
		},
		{
			name: "wrong field type",
			path: func(t *testing.T) string {
				return writeManifest(t, `{"name": "x", "dependencies": ["not", "a", "map"]}`)
			},
		},
		{
			name: "unreadable path",
			path: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "does-not-exist", Filename)
			},
		},
	}

	parser := NewJSONParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := tt.path(t)

			d, err := parser.Parse(path)
			if err == nil {
				t.Fatalf("Parse(%s) succeeded with %+v, want error", path, d)
			}

			var descErr *DescriptorError
			if !errors.As(err, &descErr) {
				t.Fatalf("error = %T, want *DescriptorError", err)
			}
			if descErr.Path != path {
				t.Errorf("DescriptorError.Path = %q, want %q", descErr.Path, path)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("errors.Is(%v, %v) = false", err, tt.wantErr)
			}
		})
	}
}

func TestAllDependenciesUnion(t *testing.T) {
	d := &Descriptor{
		Name:                 "x",
		Dependencies:         map[string]string{"a": "1", "shared": "1"},
		DevDependencies:      map[string]string{"b": "1", "shared": "2"},
		PeerDependencies:     map[string]string{"c": "1"},
		OptionalDependencies: map[string]string{"d": "1"},
	}

	all := d.AllDependencies()
	want := []string{"a", "b", "c", "d", "shared"}
	if len(all) != len(want) {
		t.Fatalf("AllDependencies = %v, want %v", all, want)
	}
	for _, name := range want {
		if !all[name] {
			t.Errorf("AllDependencies missing %s", name)
		}
	}

	dev := d.DevDependencyNames()
	if len(dev) != 2 || !dev["b"] || !dev["shared"] {
		t.Errorf("DevDependencyNames = %v, want {b, shared}", dev)
	}
}
