package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ppiankov/leakguard/internal/model"
)

// CopyText formats an assessment as a plain-text report for pasting elsewhere
func CopyText(a model.Assessment) string {
	var b strings.Builder
	b.WriteString("leakguard report\n")
	fmt.Fprintf(&b, "Score: %d (%s)\n", a.Score, a.Label)
	fmt.Fprintf(&b, "Detected: %s\n", strings.Join(a.Reasons, "; "))
	b.WriteString("Suggestions:\n")
	b.WriteString("- " + strings.Join(a.Suggestions, "\n- "))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Raw: %s", a.Raw)
	return b.String()
}

// WriteJSON writes an indented JSON document for v
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Markdown formats an assessment as a Markdown document
func Markdown(a model.Assessment) string {
	var b strings.Builder

	b.WriteString("# leakguard report\n\n")
	fmt.Fprintf(&b, "**Score:** %d/100 (%s)  \n", a.Score, a.Label)
	fmt.Fprintf(&b, "**Detected type:** %s  \n", a.DetectedType)
	if !a.Timestamp.IsZero() {
		fmt.Fprintf(&b, "**Checked:** %s\n", a.Timestamp.UTC().Format("2006-01-02T15:04:05Z"))
	}
	b.WriteString("\n## Why\n\n")
	for _, r := range a.Reasons {
		fmt.Fprintf(&b, "- %s\n", r)
	}
	b.WriteString("\n## Suggestions\n\n")
	for _, s := range a.Suggestions {
		fmt.Fprintf(&b, "- %s\n", s)
	}
	b.WriteString("\n## Input\n\n```\n")
	b.WriteString(strings.ReplaceAll(a.Raw, "```", "` ` `"))
	b.WriteString("\n```\n")

	return b.String()
}

// WriteJSONFile writes v as indented JSON to path
func WriteJSONFile(path string, v any) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create JSON file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close JSON file: %w", closeErr)
		}
	}()

	if err := WriteJSON(f, v); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}
	return nil
}

// WriteMarkdownFile writes an assessment as Markdown to path
func WriteMarkdownFile(path string, a model.Assessment) error {
	if err := os.WriteFile(path, []byte(Markdown(a)), 0644); err != nil {
		return fmt.Errorf("write Markdown file: %w", err)
	}
	return nil
}
