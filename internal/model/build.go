package model

import "sort"

// ChunkDescriptor describes one file emitted by a build pass.
type ChunkDescriptor struct {
	FileName string
	IsEntry  bool
}

// BuildResult is the artifact manifest of one build pass: the combination
// that was active, the output-directory prefix for the pass, and every chunk
// the bundler emitted. Read-only after the pass completes.
type BuildResult struct {
	Combination Combination
	OutDir      Path
	Chunks      []ChunkDescriptor
}

// BinResult is the manifest of one binary-target pass.
type BinResult struct {
	ID     string
	OutDir Path
	Chunks []ChunkDescriptor
}

// OutputGroups accumulates output file paths keyed by entry subpath and
// serialized combination. It is created once per invocation and threaded
// explicitly through classification and synthesis; it is never shared across
// invocations.
type OutputGroups struct {
	files map[string]map[string][]Path
}

// NewOutputGroups returns an empty accumulator.
func NewOutputGroups() *OutputGroups {
	return &OutputGroups{files: make(map[string]map[string][]Path)}
}

// Add records an output file for the given entry subpath under the given
// combination key.
func (g *OutputGroups) Add(subpath, comboKey string, file Path) {
	byCombo, ok := g.files[subpath]
	if !ok {
		byCombo = make(map[string][]Path)
		g.files[subpath] = byCombo
	}

	byCombo[comboKey] = append(byCombo[comboKey], file)
}

// Files returns the output files recorded for (subpath, comboKey), or nil.
func (g *OutputGroups) Files(subpath, comboKey string) []Path {
	return g.files[subpath][comboKey]
}

// AllFiles returns every file recorded for the subpath across all
// combinations. Order follows combination keys sorted lexically, so the
// result is deterministic.
func (g *OutputGroups) AllFiles(subpath string) []Path {
	byCombo := g.files[subpath]

	keys := make([]string, 0, len(byCombo))
	for key := range byCombo {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	var all []Path
	for _, key := range keys {
		all = append(all, byCombo[key]...)
	}

	return all
}

// ExportEntry is the resolved leaf of the export tree. Empty fields are
// omitted from the synthesized JSON.
type ExportEntry struct {
	Types   string
	Import  string
	Require string
	Default string
}

// IsZero reports whether the entry resolved no artifacts at all.
func (e ExportEntry) IsZero() bool {
	return e == ExportEntry{}
}
