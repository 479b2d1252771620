// Package manifest reads package descriptors from workspace manifest files.
//
// A manifest is a JSON document describing one package: its name, version,
// and dependency maps split into runtime, development, peer, and optional
// categories. The graph builder consumes the parsed [Descriptor] shape and
// never touches the filesystem itself.
package manifest

import (
	"fmt"
	"maps"
)

// Filename is the manifest file name looked for in each package directory.
const Filename = "package.json"

// Descriptor is the validated content of a single package manifest.
type Descriptor struct {
	Name                 string            `json:"name"`
	Version              string            `json:"version"`
	Dependencies         map[string]string `json:"dependencies"`
	DevDependencies      map[string]string `json:"devDependencies"`
	PeerDependencies     map[string]string `json:"peerDependencies"`
	OptionalDependencies map[string]string `json:"optionalDependencies"`
}

// AllDependencies returns the union of every dependency category as a name
// set. The union is flat: a name declared in several categories appears once.
func (d *Descriptor) AllDependencies() map[string]bool {
	set := make(map[string]bool,
		len(d.Dependencies)+len(d.DevDependencies)+len(d.PeerDependencies)+len(d.OptionalDependencies))
	for _, category := range []map[string]string{
		d.Dependencies, d.DevDependencies, d.PeerDependencies, d.OptionalDependencies,
	} {
		for name := range maps.Keys(category) {
			set[name] = true
		}
	}
	return set
}

// DevDependencyNames returns the development-category dependency names as a set.
func (d *Descriptor) DevDependencyNames() map[string]bool {
	set := make(map[string]bool, len(d.DevDependencies))
	for name := range d.DevDependencies {
		set[name] = true
	}
	return set
}

// Parser reads the manifest at a path and returns its descriptor.
// Implementations fail with a *DescriptorError when the file is unreadable,
// the content is malformed, or the required name field is absent.
type Parser interface {
	Parse(path string) (*Descriptor, error)
}

// DescriptorError reports a manifest that could not be turned into a valid
// descriptor. It aborts the whole graph build; no partial graph is produced.
type DescriptorError struct {
	Path string // manifest path that failed
	Err  error  // underlying cause
}

func (e *DescriptorError) Error() string {
	return fmt.Sprintf("manifest %s: %v", e.Path, e.Err)
}

func (e *DescriptorError) Unwrap() error { return e.Err }
