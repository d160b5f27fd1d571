// Package filesystem reads caption files from a local directory and
// watches that directory for changes.
package filesystem

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/custodia-labs/captionsearch/internal/core/domain"
	"github.com/custodia-labs/captionsearch/internal/core/ports/driven"
)

// Ensure Source implements the interface.
var _ driven.TranscriptSource = (*Source)(nil)

// Source lists caption files in a single directory.
// Subdirectories and hidden files are ignored.
type Source struct {
	root       string
	extensions []string
}

// New creates a source rooted at dir that accepts files with one of the
// given extensions (case-insensitive, including the dot).
func New(dir string, extensions ...string) *Source {
	exts := make([]string, 0, len(extensions))
	for _, e := range extensions {
		exts = append(exts, strings.ToLower(e))
	}
	return &Source{root: dir, extensions: exts}
}

// Root returns the directory being read.
func (s *Source) Root() string {
	return s.root
}

// List returns matching file paths sorted lexicographically by name.
func (s *Source) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(s.root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: caption directory %s", domain.ErrNotFound, s.root)
		}
		return nil, fmt.Errorf("reading caption directory: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !s.Accepts(entry.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(s.root, entry.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

// Read loads one caption file.
func (s *Source) Read(ctx context.Context, path string) (*domain.CaptionFile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", filepath.Base(path), err)
	}

	return &domain.CaptionFile{
		Name:    filepath.Base(path),
		Path:    path,
		Content: content,
	}, nil
}

// Accepts reports whether name is a visible file with an accepted extension.
func (s *Source) Accepts(name string) bool {
	if isHidden(name) {
		return false
	}
	if len(s.extensions) == 0 {
		return true
	}
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range s.extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// isHidden reports whether any path component starts with a dot.
// "." and ".." are not hidden.
func isHidden(path string) bool {
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if part == "." || part == ".." || part == "" {
			continue
		}
		if strings.HasPrefix(part, ".") {
			return true
		}
	}
	return false
}
