// Package scan discovers package manifests in a workspace directory tree.
//
// The scanner walks the root directory (the root's own manifest included)
// and returns the path of every manifest file found, honoring exclusion
// glob patterns. Patterns are doublestar globs matched against the absolute
// path, the path relative to the working directory, and the candidate's
// enclosing directory name, so `**/fixtures/**`, `build/*` and plain
// directory names all behave as expected.
package scan

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/log"

	"github.com/buildplan/buildplan/pkg/manifest"
)

// ScanError reports a workspace root that could not be read. It is surfaced
// to the caller unmodified and never retried.
type ScanError struct {
	Dir string
	Err error
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("scan %s: %v", e.Dir, e.Err)
}

func (e *ScanError) Unwrap() error { return e.Err }

// Scanner finds manifest files under a workspace root.
type Scanner struct {
	// Manifest is the file name to look for; defaults to manifest.Filename.
	Manifest string
	// Exclude holds glob patterns for paths and directories to skip.
	Exclude []string
	// Logger receives exclusion-applied diagnostics; nil is a silent no-op.
	Logger *log.Logger
}

// Scan walks root and returns every manifest path found, depth-first in
// lexical directory order. Fails with a *ScanError when root does not exist
// or cannot be read.
func (s *Scanner) Scan(root string) ([]string, error) {
	logger := s.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	name := s.Manifest
	if name == "" {
		name = manifest.Filename
	}

	if _, err := os.Stat(root); err != nil {
		return nil, &ScanError{Dir: root, Err: err}
	}

	var paths []string
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if path != root && s.excluded(path, d.Name()) {
				logger.Debug("exclusion applied", "dir", path)
				return fs.SkipDir
			}
			return nil
		}

		if d.Name() != name {
			return nil
		}
		if s.excluded(path, filepath.Base(filepath.Dir(path))) {
			logger.Debug("exclusion applied", "path", path)
			return nil
		}

		paths = append(paths, path)
		return nil
	})
	if walkErr != nil {
		var scanErr *ScanError
		if errors.As(walkErr, &scanErr) {
			return nil, scanErr
		}
		return nil, &ScanError{Dir: root, Err: walkErr}
	}

	return paths, nil
}

// excluded reports whether any exclusion pattern matches the candidate.
// Each pattern is tried against the absolute path, the path relative to the
// working directory, and dirName (the candidate's enclosing directory name,
// or the directory's own name when pruning subtrees).
func (s *Scanner) excluded(path, dirName string) bool {
	if len(s.Exclude) == 0 {
		return false
	}

	candidates := []string{path, dirName}
	if abs, err := filepath.Abs(path); err == nil {
		candidates = append(candidates, abs)
	}
	if wd, err := os.Getwd(); err == nil {
		if rel, err := filepath.Rel(wd, path); err == nil {
			candidates = append(candidates, rel)
		}
	}

	for _, pattern := range s.Exclude {
		for _, candidate := range candidates {
			if ok, err := doublestar.Match(pattern, filepath.ToSlash(candidate)); err == nil && ok {
				return true
			}
		}
	}
	return false
}
