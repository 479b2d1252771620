package manifest

import (
	"encoding/json"
	"errors"
	"os"
)

// ErrMissingName is wrapped by the *DescriptorError returned when a manifest
// has no name field.
var ErrMissingName = errors.New("missing required name field")

// JSONParser parses package.json-style manifests from the filesystem.
// The zero value is ready to use.
type JSONParser struct{}

// NewJSONParser returns a parser for JSON package manifests.
func NewJSONParser() *JSONParser { return &JSONParser{} }

// Parse reads and validates the manifest at path.
func (p *JSONParser) Parse(path string) (*Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &DescriptorError{Path: path, Err: err}
	}

	var d Descriptor
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, &DescriptorError{Path: path, Err: err}
	}

	if d.Name == "" {
		return nil, &DescriptorError{Path: path, Err: ErrMissingName}
	}

	return &d, nil
}

// Ensure JSONParser implements Parser.
var _ Parser = (*JSONParser)(nil)
