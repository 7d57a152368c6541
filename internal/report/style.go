package report

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/ppiankov/leakguard/internal/model"
)

// Severity palette
var (
	ColorHigh   = lipgloss.Color("#E74C3C")
	ColorMedium = lipgloss.Color("#F4D03F")
	ColorLow    = lipgloss.Color("#2CD7C7")
	ColorMuted  = lipgloss.Color("#5C7A84")
	ColorTitle  = lipgloss.Color("#20B9B4")
)

// ColorEnabled reports whether styled output should be written to f.
// NO_COLOR (https://no-color.org) and --no-color both disable it.
func ColorEnabled(f *os.File, noColor bool) bool {
	if noColor || os.Getenv("NO_COLOR") != "" {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

type styles struct {
	title  lipgloss.Style
	bold   lipgloss.Style
	muted  lipgloss.Style
	labels map[model.Label]lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		title: r.NewStyle().Bold(true).Foreground(ColorTitle),
		bold:  r.NewStyle().Bold(true),
		muted: r.NewStyle().Foreground(ColorMuted),
		labels: map[model.Label]lipgloss.Style{
			model.LabelHigh:   r.NewStyle().Bold(true).Foreground(ColorHigh),
			model.LabelMedium: r.NewStyle().Bold(true).Foreground(ColorMedium),
			model.LabelLow:    r.NewStyle().Bold(true).Foreground(ColorLow),
		},
	}
}
