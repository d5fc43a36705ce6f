// Package controller provides output adapters for displaying build progress
// and results.
package controller

import (
	"io"
	"os"

	"github.com/spf13/cobra"
)

// EntryRow is one resolved entry point for display.
type EntryRow struct {
	SubPath string
	File    string
}

// BinRow is one resolved binary target for display.
type BinRow struct {
	ID   string
	File string
}

// CombinationRow is one enumerated build pass for display.
type CombinationRow struct {
	Index  int
	Key    string
	OutDir string
}

// ExportRow summarizes one synthesized export entry for display.
type ExportRow struct {
	SubPath  string
	Branches int
	Files    int
}

// UI defines the interface for displaying build progress and results.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	Start(totalPasses int) error
	Close()
	PassStarted(label string, index, total int)
	PassCompleted(label string, chunks int)
	DisplayEntries(entries []EntryRow, bins []BinRow) error
	DisplayCombinations(rows []CombinationRow) error
	DisplayBuildSummary(rows []ExportRow, legacyFields bool) error
}

// NewUI creates a UI based on whether TTY mode is enabled. When useTTY is
// true it returns the Bubble Tea TUI, otherwise the plain-text SimpleUI.
func NewUI(cmd *cobra.Command, useTTY bool) UI {
	if useTTY {
		return NewTUI(cmd.OutOrStdout())
	}

	return NewSimpleUI(cmd)
}

// IsTTY checks if the given writer is an interactive terminal. Returns false
// when output is redirected to a file or pipe.
func IsTTY(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}

	fileInfo, err := file.Stat()
	if err != nil {
		return false
	}

	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}
