package controller

import (
	"bytes"
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// SimpleUI implements UI using cobra Command's output stream.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// Start initializes the UI.
func (s *SimpleUI) Start(totalPasses int) error {
	s.printf("Running %d build pass(es)\n", totalPasses)

	return nil
}

// Close finalizes the UI.
func (s *SimpleUI) Close() {

}

// PassStarted prints info about a starting build pass.
func (s *SimpleUI) PassStarted(label string, index, total int) {
	s.printf("[%d/%d] building %s\n", index+1, total, label)
}

// PassCompleted prints info about a completed build pass.
func (s *SimpleUI) PassCompleted(label string, chunks int) {
	s.printf("[done] %s -> %d chunk(s)\n", label, chunks)
}

// DisplayEntries prints the resolved entry points and binary targets.
func (s *SimpleUI) DisplayEntries(entries []EntryRow, bins []BinRow) error {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Subpath", "Source"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT})

	for _, row := range entries {
		table.Append([]string{row.SubPath, row.File})
	}

	table.SetFooter([]string{"Total Entries", fmt.Sprintf("%d", len(entries))})
	table.Render()
	s.printf("\n%s", tableBuffer.String())

	if len(bins) == 0 {
		return nil
	}

	var binBuffer bytes.Buffer

	binTable := tablewriter.NewWriter(&binBuffer)
	binTable.SetHeader([]string{"Binary", "Source"})
	binTable.SetBorder(false)
	binTable.SetCenterSeparator("")

	for _, row := range bins {
		binTable.Append([]string{row.ID, row.File})
	}

	binTable.Render()
	s.printf("\n%s", binBuffer.String())

	return nil
}

// DisplayCombinations prints the enumerated build passes.
func (s *SimpleUI) DisplayCombinations(rows []CombinationRow) error {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"#", "Combination", "Out Dir"})
	table.SetBorder(false)
	table.SetCenterSeparator("")

	for _, row := range rows {
		key := row.Key
		if key == "" {
			key = "(unconditional)"
		}

		table.Append([]string{fmt.Sprintf("%d", row.Index), key, row.OutDir})
	}

	table.SetFooter([]string{"", "Total Passes", fmt.Sprintf("%d", len(rows))})
	table.Render()
	s.printf("\n%s", tableBuffer.String())

	return nil
}

// DisplayBuildSummary prints the synthesized export entries.
func (s *SimpleUI) DisplayBuildSummary(rows []ExportRow, legacyFields bool) error {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Export", "Branches", "Files"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_CENTER})

	for _, row := range rows {
		table.Append([]string{row.SubPath, fmt.Sprintf("%d", row.Branches), fmt.Sprintf("%d", row.Files)})
	}

	table.Render()
	s.printf("\n%s", tableBuffer.String())

	if legacyFields {
		s.printf("legacy fields derived from the default chain\n")
	} else {
		s.printf("legacy fields omitted (no unambiguous default)\n")
	}

	return nil
}

func (s *SimpleUI) printf(format string, args ...any) {
	s.cmd.Printf(format, args...)
}
