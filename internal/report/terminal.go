package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/ppiankov/leakguard/internal/model"
)

// Truncation widths for alert rendering
const (
	PeekWidth  = 60
	AlertWidth = 140
	PeekLimit  = 4
	BarWidth   = 20
)

const timeLayout = "2006-01-02 15:04:05"

// Renderer writes human-readable output to a terminal or pipe
type Renderer struct {
	w      io.Writer
	color  bool
	styles styles
}

// NewRenderer creates a renderer; color disables all styling when false
func NewRenderer(w io.Writer, color bool) *Renderer {
	return &Renderer{
		w:      w,
		color:  color,
		styles: newStyles(w),
	}
}

func (r *Renderer) style(s lipgloss.Style, text string) string {
	if !r.color {
		return text
	}
	return s.Render(text)
}

func (r *Renderer) label(l model.Label) string {
	s, ok := r.styles.labels[l]
	if !ok {
		return string(l)
	}
	return r.style(s, string(l))
}

// Assessment renders a single check result with score bar, reasons and suggestions
func (r *Renderer) Assessment(a model.Assessment) error {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s\n", r.style(r.styles.title, "Risk score:"), r.style(r.styles.bold, fmt.Sprintf("%d/100", a.Score)))
	fmt.Fprintf(&b, "%s %s\n", ScoreBar(a.Score, BarWidth), r.label(a.Label))
	fmt.Fprintf(&b, "%s %s\n", r.style(r.styles.muted, "Detected type:"), a.DetectedType)
	fmt.Fprintln(&b)

	fmt.Fprintln(&b, r.style(r.styles.bold, "Why"))
	for _, reason := range a.Reasons {
		fmt.Fprintf(&b, "  • %s\n", reason)
	}
	fmt.Fprintln(&b)

	fmt.Fprintln(&b, r.style(r.styles.bold, "Suggestions"))
	for _, s := range a.Suggestions {
		fmt.Fprintf(&b, "  → %s\n", s)
	}

	_, err := io.WriteString(r.w, b.String())
	return err
}

// History renders recorded checks, newest first
func (r *Renderer) History(items []model.Assessment) error {
	if len(items) == 0 {
		_, err := fmt.Fprintln(r.w, r.style(r.styles.muted, "No checks run yet."))
		return err
	}

	var b strings.Builder
	for _, a := range items {
		fmt.Fprintf(&b, "%s  %s • %3d  %-5s  %s\n",
			r.style(r.styles.muted, formatTime(a.Timestamp)),
			r.label(a.Label), a.Score, a.DetectedType,
			Truncate(oneLine(a.Raw), PeekWidth))
	}
	_, err := io.WriteString(r.w, b.String())
	return err
}

// Alerts renders the full alert list with ids for removal
func (r *Renderer) Alerts(alerts []model.Alert) error {
	if len(alerts) == 0 {
		_, err := fmt.Fprintln(r.w, r.style(r.styles.muted, "No saved alerts."))
		return err
	}

	var b strings.Builder
	for _, a := range alerts {
		fmt.Fprintf(&b, "%s • %d  %s\n", r.label(a.Label), a.Score, r.style(r.styles.muted, formatTime(a.Timestamp)))
		fmt.Fprintf(&b, "  %s\n", Truncate(oneLine(a.Raw), AlertWidth))
		fmt.Fprintf(&b, "  %s\n", r.style(r.styles.muted, "id: "+a.ID))
	}
	_, err := io.WriteString(r.w, b.String())
	return err
}

// Dashboard summarizes stats, the last check, the top item and recent alerts
type Dashboard struct {
	Stats  model.Stats
	Last   *model.Assessment
	Top    *model.Assessment
	Alerts []model.Alert
}

// Dashboard renders the overview screen
func (r *Renderer) Dashboard(d Dashboard) error {
	var b strings.Builder

	fmt.Fprintln(&b, r.style(r.styles.title, "leakguard dashboard"))
	fmt.Fprintf(&b, "  Total: %d   %s: %d   %s: %d   %s: %d\n",
		d.Stats.Total,
		r.label(model.LabelHigh), d.Stats.High,
		r.label(model.LabelMedium), d.Stats.Medium,
		r.label(model.LabelLow), d.Stats.Low)
	fmt.Fprintln(&b)

	if d.Last != nil {
		fmt.Fprintf(&b, "Last check: %d (%s) • %s\n", d.Last.Score, r.label(d.Last.Label), formatTime(d.Last.Timestamp))
	} else {
		fmt.Fprintln(&b, "Last check: No checks run yet.")
	}
	if d.Top != nil {
		fmt.Fprintf(&b, "Top item:   %s (%d)\n", r.label(d.Top.Label), d.Top.Score)
	} else {
		fmt.Fprintln(&b, "Top item:   none")
	}
	fmt.Fprintln(&b)

	fmt.Fprintln(&b, r.style(r.styles.bold, "Recent alerts"))
	if len(d.Alerts) == 0 {
		fmt.Fprintf(&b, "  %s\n", r.style(r.styles.muted, "No alerts yet. High risk checks will appear here."))
	}
	for i, a := range d.Alerts {
		if i == PeekLimit {
			break
		}
		fmt.Fprintf(&b, "  %s • %d  %s\n", r.label(a.Label), a.Score, Truncate(oneLine(a.Raw), PeekWidth))
	}

	_, err := io.WriteString(r.w, b.String())
	return err
}

// News renders the static news feed
func (r *Renderer) News(items []model.NewsItem) error {
	var b strings.Builder
	for i, n := range items {
		if i > 0 {
			fmt.Fprintln(&b)
		}
		fmt.Fprintln(&b, r.style(r.styles.bold, n.Title))
		fmt.Fprintf(&b, "%s • %s\n", r.style(r.styles.muted, n.Date), n.Summary)
	}
	_, err := io.WriteString(r.w, b.String())
	return err
}

// ScoreBar draws a fixed-width bar proportional to score
func ScoreBar(score, width int) string {
	if width <= 0 {
		return ""
	}
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	filled := (score*width + 50) / 100
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// Truncate shortens s to at most n runes, marking the cut with an ellipsis
func Truncate(s string, n int) string {
	runes := []rune(s)
	if n <= 0 || len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(timeLayout)
}
