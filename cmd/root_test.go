package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/packwright/packwright/internal/domain"
	m "github.com/packwright/packwright/internal/model"
)

// fakeWorkflow records which operation ran and with which arguments.
type fakeWorkflow struct {
	buildArgs        *domain.BuildArgs
	entriesArgs      *domain.EntriesArgs
	combinationsArgs *domain.CombinationsArgs
	err              error
}

func (f *fakeWorkflow) Build(_ context.Context, args domain.BuildArgs) error {
	f.buildArgs = &args

	return f.err
}

func (f *fakeWorkflow) Entries(_ context.Context, args domain.EntriesArgs) error {
	f.entriesArgs = &args

	return f.err
}

func (f *fakeWorkflow) Combinations(args domain.CombinationsArgs) error {
	f.combinationsArgs = &args

	return f.err
}

func withFakeWorkflow(t *testing.T) *fakeWorkflow {
	t.Helper()

	fake := &fakeWorkflow{}

	original := workflow
	workflow = fake
	t.Cleanup(func() { workflow = original })

	originalDir := rootDirFlag
	t.Cleanup(func() { rootDirFlag = originalDir })

	return fake
}

func execute(t *testing.T, args ...string) error {
	t.Helper()

	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)

	return rootCmd.Execute()
}

func TestRootCmd_BuildSubcommand(t *testing.T) {
	fake := withFakeWorkflow(t)

	if err := execute(t, "build"); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if fake.buildArgs == nil {
		t.Fatalf("Build was not invoked")
	}

	if !filepath.IsAbs(string(fake.buildArgs.Root)) {
		t.Errorf("Build root = %q, want absolute path", fake.buildArgs.Root)
	}
}

func TestRootCmd_BuildHonorsChdirFlag(t *testing.T) {
	fake := withFakeWorkflow(t)
	dir := t.TempDir()

	if err := execute(t, "build", "--chdir", dir); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if fake.buildArgs == nil {
		t.Fatalf("Build was not invoked")
	}

	if fake.buildArgs.Root != m.Path(dir) {
		t.Errorf("Build root = %q, want %q", fake.buildArgs.Root, dir)
	}
}

func TestRootCmd_EntriesSubcommand(t *testing.T) {
	fake := withFakeWorkflow(t)

	if err := execute(t, "entries"); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if fake.entriesArgs == nil {
		t.Fatalf("Entries was not invoked")
	}
}

func TestRootCmd_ConditionsSubcommand(t *testing.T) {
	fake := withFakeWorkflow(t)

	if err := execute(t, "conditions"); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if fake.combinationsArgs == nil {
		t.Fatalf("Combinations was not invoked")
	}
}

func TestRootCmd_RejectsPositionalArgs(t *testing.T) {
	withFakeWorkflow(t)

	if err := execute(t, "build", "extra"); err == nil {
		t.Fatalf("Execute() expected error for positional args")
	}
}

func TestRootCmd_SubcommandsRegistered(t *testing.T) {
	names := make(map[string]bool)
	for _, sub := range rootCmd.Commands() {
		names[sub.Name()] = true
	}

	for _, want := range []string{"build", "entries", "conditions"} {
		if !names[want] {
			t.Errorf("root command missing %q subcommand", want)
		}
	}
}
