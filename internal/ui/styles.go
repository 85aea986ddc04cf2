package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains the lipgloss styles and icons shared by terminal output
type Styles struct {
	Header lipgloss.Style
	Path   lipgloss.Style

	// Icons (degraded to ASCII when not interactive)
	IconError   string
	IconWarning string
	IconSuccess string
}

// NewStyles creates a new Styles instance.
// When enabled is false, styles return text unchanged (for non-TTY output)
func NewStyles(enabled bool) *Styles {
	s := &Styles{}

	if enabled {
		s.Header = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
		s.Path = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))

		s.IconError = "✗"
		s.IconWarning = "⚠"
		s.IconSuccess = "✓"
	} else {
		s.Header = lipgloss.NewStyle()
		s.Path = lipgloss.NewStyle()

		s.IconError = "ERROR:"
		s.IconWarning = "WARN:"
		s.IconSuccess = "OK:"
	}

	return s
}
