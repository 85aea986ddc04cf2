package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// ProgressController manages the bubbletea program for progress display
type ProgressController struct {
	ui      *UI
	program *tea.Program
}

// StartProgress starts the progress display if in interactive mode.
// Returns nil if not in interactive mode; all controller methods are
// nil-safe so callers never have to branch.
func (ui *UI) StartProgress() *ProgressController {
	if !ui.IsInteractive() {
		return nil
	}

	m := NewModel()
	p := tea.NewProgram(m, tea.WithOutput(ui.ErrWriter))

	ctrl := &ProgressController{
		ui:      ui,
		program: p,
	}

	go func() {
		if _, err := p.Run(); err != nil {
			_ = err
		}
	}()

	return ctrl
}

// SetStage updates the current stage
func (pc *ProgressController) SetStage(stage Stage) {
	if pc != nil && pc.program != nil {
		pc.program.Send(StageMsg(stage))
	}
}

// SetDocCount sets the total number of documents to analyze
func (pc *ProgressController) SetDocCount(count int) {
	if pc != nil && pc.program != nil {
		pc.program.Send(DocCountMsg(count))
	}
}

// DocDone indicates a document has been analyzed
func (pc *ProgressController) DocDone(path string) {
	if pc != nil && pc.program != nil {
		pc.program.Send(DocDoneMsg(path))
	}
}

// Done signals that all work is complete
func (pc *ProgressController) Done(err error) {
	if pc != nil && pc.program != nil {
		pc.program.Send(DoneMsg{Err: err})
		pc.program.Wait()
	}
}
