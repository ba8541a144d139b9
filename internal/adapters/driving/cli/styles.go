package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// theme defines the colour palette for command output.
type theme struct {
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Muted     lipgloss.Color
	Highlight lipgloss.Color
	Success   lipgloss.Color
	Error     lipgloss.Color
}

func defaultTheme() theme {
	return theme{
		Primary:   lipgloss.Color("#7C3AED"), // Purple
		Secondary: lipgloss.Color("#06B6D4"), // Cyan
		Muted:     lipgloss.Color("#6C7086"), // Medium gray
		Highlight: lipgloss.Color("#F9E2AF"), // Yellow
		Success:   lipgloss.Color("#A6E3A1"), // Green
		Error:     lipgloss.Color("#F38BA8"), // Red
	}
}

// styles renders command output, in colour only on a terminal.
type styles struct {
	colour bool

	Title   lipgloss.Style
	URI     lipgloss.Style
	Muted   lipgloss.Style
	Match   lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
}

// newStyles returns styles for output written to w.
func newStyles(w io.Writer) *styles {
	t := defaultTheme()
	return &styles{
		colour:  isTerminal(w),
		Title:   lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		URI:     lipgloss.NewStyle().Foreground(t.Secondary),
		Muted:   lipgloss.NewStyle().Foreground(t.Muted),
		Match:   lipgloss.NewStyle().Bold(true).Foreground(t.Highlight),
		Success: lipgloss.NewStyle().Foreground(t.Success),
		Error:   lipgloss.NewStyle().Foreground(t.Error),
	}
}

// render applies style to text when colour is enabled.
func (s *styles) render(style lipgloss.Style, text string) string {
	if !s.colour {
		return text
	}
	return style.Render(text)
}

// mark styles matched text; without colour it returns nil so the search
// service keeps its plain-text markers.
func (s *styles) mark() func(string) string {
	if !s.colour {
		return nil
	}
	return func(text string) string {
		return s.Match.Render(text)
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
