package domain

import (
	"context"
	"fmt"
	"path"
	"path/filepath"

	"github.com/packwright/packwright/internal/adapter"
	m "github.com/packwright/packwright/internal/model"
)

// PassObserver receives per-pass progress notifications.
type PassObserver interface {
	PassStarted(label string, index, total int)
	PassCompleted(label string, chunks int)
}

// BuildPlan describes one full build invocation: every condition combination
// plus every binary target, executed strictly sequentially.
type BuildPlan struct {
	Root         m.Path
	OutDir       string
	Entries      m.EntryMap
	EntryOrder   []string
	Combinations []m.Combination
	Bins         m.BinMap
	BinOrder     []string
	Declarations bool
}

// Orchestrator invokes the external bundler once per combination and once
// per binary target, recording each pass's artifact manifest. A failed pass
// aborts the whole invocation; partially written output stays on disk.
type Orchestrator interface {
	RunPasses(ctx context.Context, plan BuildPlan) ([]m.BuildResult, []m.BinResult, error)
}

type orchestrator struct {
	bundler  adapter.Bundler
	observer PassObserver
}

// NewOrchestrator constructs an Orchestrator backed by the provided bundler.
// The observer may be nil.
func NewOrchestrator(bundler adapter.Bundler, observer PassObserver) Orchestrator {
	return &orchestrator{bundler: bundler, observer: observer}
}

func (o *orchestrator) RunPasses(ctx context.Context, plan BuildPlan) ([]m.BuildResult, []m.BinResult, error) {
	entryFiles := make([]string, 0, len(plan.EntryOrder))
	for _, subpath := range plan.EntryOrder {
		entryFiles = append(entryFiles, relativeTo(plan.Root, plan.Entries[subpath]))
	}

	total := len(plan.Combinations) + len(plan.BinOrder)
	index := 0

	results := make([]m.BuildResult, 0, len(plan.Combinations))

	for _, combo := range plan.Combinations {
		label := passLabel(combo)
		o.notifyStarted(label, index, total)

		outDir := PassOutDir(plan.OutDir, combo)

		manifest, err := o.bundler.Build(ctx, adapter.BuildOptions{
			Entry:        entryFiles,
			OutDir:       outDir,
			Format:       []string{"esm", "cjs"},
			Declarations: plan.Declarations,
			ResolutionAliasing: adapter.ResolutionAliasing{
				Suffixes:   SuffixCandidates(combo),
				Extensions: ScriptExtensions(),
			},
		})
		if err != nil {
			return nil, nil, fmt.Errorf("build pass %s: %w", label, err)
		}

		chunks := manifest.Chunks()
		results = append(results, m.BuildResult{Combination: combo, OutDir: m.Path(outDir), Chunks: chunks})

		o.notifyCompleted(label, len(chunks))
		index++
	}

	binResults := make([]m.BinResult, 0, len(plan.BinOrder))

	for _, id := range plan.BinOrder {
		label := "bin:" + id
		o.notifyStarted(label, index, total)

		outDir := path.Join(plan.OutDir, "bin", id)

		// Binary targets build as single-entry, ESM-only passes without
		// declarations.
		manifest, err := o.bundler.Build(ctx, adapter.BuildOptions{
			Entry:        []string{relativeTo(plan.Root, plan.Bins[id])},
			OutDir:       outDir,
			Format:       []string{"esm"},
			Declarations: false,
			ResolutionAliasing: adapter.ResolutionAliasing{
				Suffixes:   []string{""},
				Extensions: ScriptExtensions(),
			},
		})
		if err != nil {
			return nil, nil, fmt.Errorf("build pass %s: %w", label, err)
		}

		chunks := manifest.Chunks()
		binResults = append(binResults, m.BinResult{ID: id, OutDir: m.Path(outDir), Chunks: chunks})

		o.notifyCompleted(label, len(chunks))
		index++
	}

	return results, binResults, nil
}

func (o *orchestrator) notifyStarted(label string, index, total int) {
	if o.observer != nil {
		o.observer.PassStarted(label, index, total)
	}
}

func (o *orchestrator) notifyCompleted(label string, chunks int) {
	if o.observer != nil {
		o.observer.PassCompleted(label, chunks)
	}
}

func passLabel(combo m.Combination) string {
	if key := combo.Key(); key != "" {
		return key
	}

	return "unconditional"
}

func relativeTo(root, file m.Path) string {
	rel, err := filepath.Rel(string(root), string(file))
	if err != nil {
		return string(file)
	}

	return filepath.ToSlash(rel)
}
