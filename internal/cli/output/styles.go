package output

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Styles holds the lipgloss styles used in text mode.
type Styles struct {
	Header    lipgloss.Style
	Subheader lipgloss.Style
	Key       lipgloss.Style
	Success   lipgloss.Style
	Warning   lipgloss.Style
	Error     lipgloss.Style
	Muted     lipgloss.Style
	Bold      lipgloss.Style
}

// NewStyles builds styles bound to w. Non-terminal writers get the ASCII
// profile so no escape codes are emitted.
func NewStyles(w io.Writer, isTTY bool) *Styles {
	re := lipgloss.NewRenderer(w)
	if !isTTY {
		re.SetColorProfile(termenv.Ascii)
	}
	return &Styles{
		Header:    re.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Subheader: re.NewStyle().Bold(true),
		Key:       re.NewStyle().Foreground(lipgloss.Color("8")),
		Success:   re.NewStyle().Foreground(lipgloss.Color("10")),
		Warning:   re.NewStyle().Foreground(lipgloss.Color("11")),
		Error:     re.NewStyle().Foreground(lipgloss.Color("9")),
		Muted:     re.NewStyle().Faint(true),
		Bold:      re.NewStyle().Bold(true),
	}
}
