package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"

	m "github.com/packwright/packwright/internal/model"
)

// BuildOptions is the contract one build pass hands to the external bundler.
type BuildOptions struct {
	// Entry lists the entry files for the pass.
	Entry []string `json:"entry"`

	// OutDir is the output-directory prefix for the pass, relative to the
	// project root.
	OutDir string `json:"outDir"`

	// Format selects the output formats ("esm", "cjs").
	Format []string `json:"format"`

	// Declarations asks the bundler to emit type declarations alongside the
	// scripts.
	Declarations bool `json:"declarations"`

	// ResolutionAliasing configures condition-suffix module resolution.
	ResolutionAliasing ResolutionAliasing `json:"resolutionAliasing"`
}

// ResolutionAliasing carries the file-suffix candidates (most specific
// first) and the script extensions the bundler should probe when resolving
// imports under the active conditions.
type ResolutionAliasing struct {
	Suffixes   []string `json:"suffixes"`
	Extensions []string `json:"extensions"`
}

// BuildChunk is one emitted chunk descriptor.
type BuildChunk struct {
	FileName     string `json:"fileName"`
	IsEntryChunk bool   `json:"isEntryChunk"`
}

// BuildPhase groups chunks by the bundler's internal build phase.
type BuildPhase struct {
	Name   string       `json:"name"`
	Chunks []BuildChunk `json:"chunks"`
}

// BuildManifest is the bundler's reply for one pass.
type BuildManifest struct {
	Phases []BuildPhase `json:"phases"`
}

// Chunks flattens the manifest across phases, preserving phase order.
func (bm BuildManifest) Chunks() []m.ChunkDescriptor {
	var chunks []m.ChunkDescriptor

	for _, phase := range bm.Phases {
		for _, c := range phase.Chunks {
			chunks = append(chunks, m.ChunkDescriptor{FileName: c.FileName, IsEntry: c.IsEntryChunk})
		}
	}

	return chunks
}

// Bundler is the external build collaborator. It is assumed non-reentrant
// within one working directory; callers must not invoke it concurrently.
type Bundler interface {
	Build(ctx context.Context, opts BuildOptions) (BuildManifest, error)
}

// CommandBundler invokes a bundler process: the build options are written as
// JSON to its stdin and the chunk manifest is decoded from its stdout.
type CommandBundler struct {
	argv []string
	dir  string
}

// NewCommandBundler constructs a CommandBundler running argv in dir.
func NewCommandBundler(argv []string, dir string) *CommandBundler {
	return &CommandBundler{argv: argv, dir: dir}
}

// Build runs one bundler pass.
func (b *CommandBundler) Build(ctx context.Context, opts BuildOptions) (BuildManifest, error) {
	if len(b.argv) == 0 {
		return BuildManifest{}, fmt.Errorf("no bundler command configured")
	}

	input, err := json.Marshal(opts)
	if err != nil {
		return BuildManifest{}, fmt.Errorf("encode build options: %w", err)
	}

	cmd := exec.CommandContext(ctx, b.argv[0], b.argv[1:]...)
	cmd.Dir = b.dir
	cmd.Stdin = bytes.NewReader(input)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return BuildManifest{}, fmt.Errorf("bundler %s failed: %w: %s", b.argv[0], err, stderr.String())
	}

	var manifest BuildManifest
	if err := json.Unmarshal(stdout.Bytes(), &manifest); err != nil {
		return BuildManifest{}, fmt.Errorf("decode bundler manifest: %w", err)
	}

	return manifest, nil
}
