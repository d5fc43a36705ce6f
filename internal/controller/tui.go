package controller

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	tuiTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	tuiLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	tuiDoneStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	tuiDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// TUI implements UI using Bubble Tea for interactive progress display.
type TUI struct {
	output  io.Writer
	program *tea.Program
	done    chan struct{}
}

// NewTUI creates a new TUI writing to output.
func NewTUI(output io.Writer) *TUI {
	return &TUI{output: output}
}

type passStartedMsg struct {
	label string
	index int
	total int
}

type passCompletedMsg struct {
	label  string
	chunks int
}

type quitUIMsg struct{}

// Start launches the progress program in the background.
func (t *TUI) Start(totalPasses int) error {
	model := newBuildModel(totalPasses)
	t.program = tea.NewProgram(model, tea.WithOutput(t.output))
	t.done = make(chan struct{})

	go func() {
		defer close(t.done)

		_, _ = t.program.Run()
	}()

	return nil
}

// Close stops the progress program and waits for it to finish.
func (t *TUI) Close() {
	if t.program == nil {
		return
	}

	t.program.Send(quitUIMsg{})
	<-t.done
	t.program = nil
}

// PassStarted reports a starting build pass to the progress model.
func (t *TUI) PassStarted(label string, index, total int) {
	if t.program != nil {
		t.program.Send(passStartedMsg{label: label, index: index, total: total})
	}
}

// PassCompleted reports a completed build pass to the progress model.
func (t *TUI) PassCompleted(label string, chunks int) {
	if t.program != nil {
		t.program.Send(passCompletedMsg{label: label, chunks: chunks})
	}
}

// DisplayEntries prints the resolved entry points and binary targets.
func (t *TUI) DisplayEntries(entries []EntryRow, bins []BinRow) error {
	fmt.Fprintln(t.output, tuiTitleStyle.Render("Entry points"))

	for _, row := range entries {
		fmt.Fprintf(t.output, "  %s  %s\n", tuiLabelStyle.Render(row.SubPath), tuiDimStyle.Render(row.File))
	}

	if len(bins) > 0 {
		fmt.Fprintln(t.output, tuiTitleStyle.Render("Binaries"))

		for _, row := range bins {
			fmt.Fprintf(t.output, "  %s  %s\n", tuiLabelStyle.Render(row.ID), tuiDimStyle.Render(row.File))
		}
	}

	return nil
}

// DisplayCombinations prints the enumerated build passes.
func (t *TUI) DisplayCombinations(rows []CombinationRow) error {
	fmt.Fprintln(t.output, tuiTitleStyle.Render("Build passes"))

	for _, row := range rows {
		key := row.Key
		if key == "" {
			key = "(unconditional)"
		}

		fmt.Fprintf(t.output, "  %2d  %s  %s\n", row.Index, tuiLabelStyle.Render(key), tuiDimStyle.Render(row.OutDir))
	}

	return nil
}

// DisplayBuildSummary prints the synthesized export entries.
func (t *TUI) DisplayBuildSummary(rows []ExportRow, legacyFields bool) error {
	fmt.Fprintln(t.output, tuiTitleStyle.Render("Exports"))

	for _, row := range rows {
		fmt.Fprintf(t.output, "  %s  %s\n",
			tuiLabelStyle.Render(row.SubPath),
			tuiDimStyle.Render(fmt.Sprintf("%d branch(es), %d file(s)", row.Branches, row.Files)))
	}

	if legacyFields {
		fmt.Fprintln(t.output, tuiDoneStyle.Render("legacy fields derived from the default chain"))
	} else {
		fmt.Fprintln(t.output, tuiDimStyle.Render("legacy fields omitted (no unambiguous default)"))
	}

	return nil
}

// buildModel is the Bubble Tea model tracking pass progress.
type buildModel struct {
	spin      spinner.Model
	total     int
	index     int
	current   string
	completed []string
	quitting  bool
}

func newBuildModel(total int) buildModel {
	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	return buildModel{spin: spin, total: total}
}

// Init starts the spinner ticker.
func (bm buildModel) Init() tea.Cmd {
	return bm.spin.Tick
}

// Update reacts to progress messages and spinner ticks.
func (bm buildModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case passStartedMsg:
		bm.index = msg.index
		bm.total = msg.total
		bm.current = msg.label

		return bm, nil
	case passCompletedMsg:
		bm.completed = append(bm.completed, fmt.Sprintf("%s (%d chunks)", msg.label, msg.chunks))
		bm.current = ""

		return bm, nil
	case quitUIMsg:
		bm.quitting = true

		return bm, tea.Quit
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			bm.quitting = true

			return bm, tea.Quit
		}

		return bm, nil
	default:
		var cmd tea.Cmd
		bm.spin, cmd = bm.spin.Update(msg)

		return bm, cmd
	}
}

// View renders the completed passes and the active one.
func (bm buildModel) View() string {
	var view string

	for _, line := range bm.completed {
		view += tuiDoneStyle.Render("✓ "+line) + "\n"
	}

	if bm.quitting {
		return view
	}

	if bm.current != "" {
		view += fmt.Sprintf("%s building %s (%d/%d)\n",
			bm.spin.View(), tuiLabelStyle.Render(bm.current), bm.index+1, bm.total)
	}

	return view
}
