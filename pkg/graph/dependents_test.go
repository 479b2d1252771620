package graph

import "testing"

func TestDependentsOf(t *testing.T) {
	// web -> api -> core, cli -> core, docs is isolated.
	g := buildTestGraph(t, map[string][]string{
		"core": nil,
		"api":  {"core"},
		"web":  {"api"},
		"cli":  {"core"},
		"docs": nil,
	})

	tests := []struct {
		name string
		pkg  string
		want []string
	}{
		{"transitive closure", "core", []string{"api", "cli", "web"}},
		{"direct only", "api", []string{"web"}},
		{"leaf dependent", "web", nil},
		{"isolated package", "docs", nil},
		{"unknown package", "ghost", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DependentsOf(tt.pkg, g)

			if len(got) != len(tt.want) {
				t.Fatalf("DependentsOf(%s) = %v, want %v", tt.pkg, got, tt.want)
			}
			for _, name := range tt.want {
				if !got[name] {
					t.Errorf("DependentsOf(%s) missing %s", tt.pkg, name)
				}
			}
			if got[tt.pkg] {
				t.Errorf("DependentsOf(%s) must exclude the package itself", tt.pkg)
			}
		})
	}
}

func TestDependentsOfCycleTerminates(t *testing.T) {
	g := buildTestGraph(t, map[string][]string{
		"a": {"b"},
		"b": {"a"},
		"c": {"a"},
	})

	got := DependentsOf("a", g)
	if !got["b"] || !got["c"] {
		t.Errorf("DependentsOf(a) = %v, want {b, c}", got)
	}
	if got["a"] {
		t.Error("start package must be excluded even when it sits on a cycle")
	}
}
