package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Stage represents the current stage of an analysis run
type Stage int

const (
	StageLoadConfig Stage = iota
	StageScanFiles
	StageAnalyze
	StageDone
)

// Message types for updating the model
type (
	StageMsg    Stage
	DocCountMsg int
	DocDoneMsg  string
	DoneMsg     struct{ Err error }
)

// Model is the Bubbletea model for progress display
type Model struct {
	stage      Stage
	spinner    spinner.Model
	progress   progress.Model
	currentDoc string
	docCount   int
	docsDone   int
	width      int
	quitting   bool
	err        error
}

// NewModel creates a new progress model
func NewModel() Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	p := progress.New(progress.WithDefaultGradient())

	return Model{
		stage:    StageLoadConfig,
		spinner:  s,
		progress: p,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.progress.Width = msg.Width - 4
		if m.progress.Width > 60 {
			m.progress.Width = 60
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case StageMsg:
		m.stage = Stage(msg)
		return m, nil

	case DocCountMsg:
		m.docCount = int(msg)
		return m, nil

	case DocDoneMsg:
		m.docsDone++
		m.currentDoc = string(msg)
		return m, nil

	case DoneMsg:
		m.err = msg.Err
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the model
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var sb strings.Builder

	switch m.stage {
	case StageLoadConfig:
		sb.WriteString(m.spinner.View())
		sb.WriteString(" Loading configuration...")

	case StageScanFiles:
		sb.WriteString(m.spinner.View())
		sb.WriteString(" Scanning for markdown documents...")

	case StageAnalyze:
		if m.docCount > 0 {
			pct := float64(m.docsDone) / float64(m.docCount)
			sb.WriteString(m.progress.ViewAs(pct))
			sb.WriteString("\n")
		}
		sb.WriteString(m.spinner.View())
		sb.WriteString(" ")
		if m.currentDoc != "" {
			sb.WriteString(fmt.Sprintf("Analyzed %s (%d/%d)", m.currentDoc, m.docsDone, m.docCount))
		} else {
			sb.WriteString("Analyzing documents...")
		}
	}

	return sb.String()
}
