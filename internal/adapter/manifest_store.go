package adapter

import (
	"fmt"
	"os"
	"path/filepath"

	m "github.com/packwright/packwright/internal/model"
	"github.com/packwright/packwright/internal/ojson"
)

const manifestName = "package.json"

// ManifestStore reads and rewrites the project's package manifest. Fields the
// synthesizer does not own are preserved, key order included.
type ManifestStore interface {
	Load(root m.Path) (*ojson.Object, error)
	Save(root m.Path, manifest *ojson.Object) error
}

type manifestStore struct{}

// NewManifestStore constructs a ManifestStore backed by the local filesystem.
func NewManifestStore() ManifestStore {
	return &manifestStore{}
}

func (s *manifestStore) Load(root m.Path) (*ojson.Object, error) {
	path := filepath.Join(string(root), manifestName)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", manifestName, err)
	}

	manifest, err := ojson.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", manifestName, err)
	}

	return manifest, nil
}

func (s *manifestStore) Save(root m.Path, manifest *ojson.Object) error {
	data, err := manifest.MarshalIndent("  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", manifestName, err)
	}

	data = append(data, '\n')

	path := filepath.Join(string(root), manifestName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", manifestName, err)
	}

	return nil
}
