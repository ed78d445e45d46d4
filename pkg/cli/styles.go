package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines the color scheme for console output.
type Theme struct {
	Accent lipgloss.Color // headings and status lines
	Name   lipgloss.Color // file names and labels
	Value  lipgloss.Color // numbers and measurements
	Dim    lipgloss.Color // secondary text
}

// DefaultTheme matches the original ProChop console palette:
// yellow headings, green names, cyan values.
var DefaultTheme = Theme{
	Accent: lipgloss.Color("11"),
	Name:   lipgloss.Color("10"),
	Value:  lipgloss.Color("14"),
	Dim:    lipgloss.Color("8"),
}

// Styles holds all styles derived from a theme.
type Styles struct {
	Title lipgloss.Style
	Name  lipgloss.Style
	Value lipgloss.Style
	Dim   lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(t Theme) Styles {
	return Styles{
		Title: lipgloss.NewStyle().Bold(true).Foreground(t.Accent),
		Name:  lipgloss.NewStyle().Foreground(t.Name),
		Value: lipgloss.NewStyle().Foreground(t.Value),
		Dim:   lipgloss.NewStyle().Foreground(t.Dim),
	}
}

// PlainStyles returns styles that render text unmodified, for --no-color
// output or non-terminal destinations.
func PlainStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle(),
		Name:  lipgloss.NewStyle(),
		Value: lipgloss.NewStyle(),
		Dim:   lipgloss.NewStyle(),
	}
}

// ClearLine erases the current terminal line and returns the cursor to
// column zero, for in-place progress redraws.
func ClearLine(w io.Writer) {
	fmt.Fprint(w, "\r\033[K")
}
