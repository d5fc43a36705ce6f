package domain

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/packwright/packwright/internal/adapter"
	m "github.com/packwright/packwright/internal/model"
)

// fakeBundler records every invocation and replies from a canned manifest
// per out dir.
type fakeBundler struct {
	calls     []adapter.BuildOptions
	manifests map[string]adapter.BuildManifest
	failOn    string
}

func (b *fakeBundler) Build(_ context.Context, opts adapter.BuildOptions) (adapter.BuildManifest, error) {
	b.calls = append(b.calls, opts)

	if b.failOn != "" && opts.OutDir == b.failOn {
		return adapter.BuildManifest{}, errors.New("bundler exploded")
	}

	return b.manifests[opts.OutDir], nil
}

func chunkManifest(names ...string) adapter.BuildManifest {
	chunks := make([]adapter.BuildChunk, 0, len(names))
	for i, name := range names {
		chunks = append(chunks, adapter.BuildChunk{FileName: name, IsEntryChunk: i == 0})
	}

	return adapter.BuildManifest{Phases: []adapter.BuildPhase{{Name: "emit", Chunks: chunks}}}
}

func testPlan(combos []m.Combination) BuildPlan {
	return BuildPlan{
		Root:         "/p",
		OutDir:       "dist",
		Entries:      m.EntryMap{".": "/p/src/index.ts"},
		EntryOrder:   []string{"."},
		Combinations: combos,
		Declarations: true,
	}
}

func TestOrchestrator_UnconditionalPass(t *testing.T) {
	bundler := &fakeBundler{manifests: map[string]adapter.BuildManifest{
		"dist": chunkManifest("index.mjs", "index.cjs", "index.d.ts"),
	}}

	orch := NewOrchestrator(bundler, nil)

	results, binResults, err := orch.RunPasses(context.Background(), testPlan([]m.Combination{{}}))
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Empty(t, binResults)

	assert.Equal(t, m.Path("dist"), results[0].OutDir)
	require.Len(t, results[0].Chunks, 3)
	assert.True(t, results[0].Chunks[0].IsEntry)

	require.Len(t, bundler.calls, 1)
	call := bundler.calls[0]
	assert.Equal(t, []string{"src/index.ts"}, call.Entry)
	assert.Equal(t, []string{"esm", "cjs"}, call.Format)
	assert.True(t, call.Declarations)
	assert.Equal(t, []string{""}, call.ResolutionAliasing.Suffixes)
}

func TestOrchestrator_OnePassPerCombination(t *testing.T) {
	combos := Enumerate(m.NewFlatSpec([]string{"node", "browser"}))

	bundler := &fakeBundler{manifests: map[string]adapter.BuildManifest{
		"dist/node":    chunkManifest("index.mjs"),
		"dist/browser": chunkManifest("index.mjs"),
	}}

	orch := NewOrchestrator(bundler, nil)

	results, _, err := orch.RunPasses(context.Background(), testPlan(combos))
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, m.Path("dist/node"), results[0].OutDir)
	assert.Equal(t, m.Path("dist/browser"), results[1].OutDir)
	assert.Equal(t, "node", results[0].Combination.Key())

	// Each pass advertises its own suffix candidates.
	assert.Equal(t, []string{".node", ""}, bundler.calls[0].ResolutionAliasing.Suffixes)
	assert.Equal(t, []string{".browser", ""}, bundler.calls[1].ResolutionAliasing.Suffixes)
}

func TestOrchestrator_FailedPassAbortsInvocation(t *testing.T) {
	combos := Enumerate(m.NewFlatSpec([]string{"node", "browser"}))

	bundler := &fakeBundler{
		manifests: map[string]adapter.BuildManifest{"dist/node": chunkManifest("index.mjs")},
		failOn:    "dist/browser",
	}

	orch := NewOrchestrator(bundler, nil)

	_, _, err := orch.RunPasses(context.Background(), testPlan(combos))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "browser")

	// The failing pass was still the last one invoked.
	assert.Len(t, bundler.calls, 2)
}

func TestOrchestrator_BinPassesAreESMOnly(t *testing.T) {
	plan := testPlan([]m.Combination{{}})
	plan.Bins = m.BinMap{"pw": "/p/src/cli.ts"}
	plan.BinOrder = []string{"pw"}

	bundler := &fakeBundler{manifests: map[string]adapter.BuildManifest{
		"dist":        chunkManifest("index.mjs"),
		"dist/bin/pw": chunkManifest("cli.mjs"),
	}}

	orch := NewOrchestrator(bundler, nil)

	results, binResults, err := orch.RunPasses(context.Background(), plan)
	require.NoError(t, err)
	assert.Len(t, results, 1)
	require.Len(t, binResults, 1)

	assert.Equal(t, "pw", binResults[0].ID)
	assert.Equal(t, m.Path("dist/bin/pw"), binResults[0].OutDir)

	binCall := bundler.calls[1]
	assert.Equal(t, []string{"src/cli.ts"}, binCall.Entry)
	assert.Equal(t, []string{"esm"}, binCall.Format)
	assert.False(t, binCall.Declarations)
}

type recordingObserver struct {
	started   []string
	completed []string
}

func (r *recordingObserver) PassStarted(label string, _, _ int) {
	r.started = append(r.started, label)
}

func (r *recordingObserver) PassCompleted(label string, _ int) {
	r.completed = append(r.completed, label)
}

func TestOrchestrator_NotifiesObserver(t *testing.T) {
	combos := Enumerate(m.NewFlatSpec([]string{"node"}))

	bundler := &fakeBundler{manifests: map[string]adapter.BuildManifest{
		"dist/node": chunkManifest("index.mjs"),
	}}

	observer := &recordingObserver{}
	orch := NewOrchestrator(bundler, observer)

	_, _, err := orch.RunPasses(context.Background(), testPlan(combos))
	require.NoError(t, err)

	assert.Equal(t, []string{"node"}, observer.started)
	assert.Equal(t, []string{"node"}, observer.completed)
}
