// Package adapter contains infrastructure adapters for the packwright CLI.
package adapter

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	m "github.com/packwright/packwright/internal/model"
)

// SourceFS abstracts filesystem operations the domain layer relies on when
// scanning user projects and writing generated files. It hides direct os
// access so the workflow logic can be tested without touching the disk.
type SourceFS interface {
	// Glob resolves the configured source patterns relative to root and
	// returns the matching files, restricted to the given extensions,
	// deduplicated and sorted.
	Glob(root m.Path, patterns []string, extensions []string) ([]m.Path, error)

	// ReadFile loads a file from disk and returns its contents.
	ReadFile(path m.Path) ([]byte, error)

	// WriteFile writes content to a file with the given permissions.
	WriteFile(path m.Path, content []byte, perm os.FileMode) error
}

// LocalSourceFS is the doublestar-backed implementation of SourceFS.
type LocalSourceFS struct{}

// NewLocalSourceFS constructs a LocalSourceFS ready to be wired into the
// workflow.
func NewLocalSourceFS() *LocalSourceFS {
	return &LocalSourceFS{}
}

// Glob matches patterns like "src/**/*.ts" under root.
func (a *LocalSourceFS) Glob(root m.Path, patterns []string, extensions []string) ([]m.Path, error) {
	seen := make(map[string]struct{})

	var files []m.Path

	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(filepath.Join(string(root), pattern))
		if err != nil {
			return nil, fmt.Errorf("glob %q: %w", pattern, err)
		}

		for _, match := range matches {
			if !hasAnyExtension(match, extensions) {
				continue
			}

			info, err := os.Stat(match)
			if err != nil || info.IsDir() {
				continue
			}

			abs, err := filepath.Abs(match)
			if err != nil {
				return nil, err
			}

			if _, ok := seen[abs]; ok {
				continue
			}

			seen[abs] = struct{}{}
			files = append(files, m.Path(abs))
		}
	}

	sort.Slice(files, func(i, j int) bool { return files[i] < files[j] })

	return files, nil
}

// ReadFile loads file contents from disk.
func (a *LocalSourceFS) ReadFile(path m.Path) ([]byte, error) {
	return os.ReadFile(string(path))
}

// WriteFile writes content to disk, creating parent directories as needed.
func (a *LocalSourceFS) WriteFile(path m.Path, content []byte, perm os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(string(path)), 0o755); err != nil {
		return err
	}

	return os.WriteFile(string(path), content, perm)
}

func hasAnyExtension(path string, extensions []string) bool {
	for _, ext := range extensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}

	return false
}
