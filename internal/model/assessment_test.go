package model

import (
	"errors"
	"testing"
)

func TestLabelFor(t *testing.T) {
	tests := []struct {
		score    int
		expected Label
	}{
		{0, LabelLow},
		{30, LabelLow},
		{31, LabelMedium},
		{60, LabelMedium},
		{61, LabelHigh},
		{100, LabelHigh},
	}

	for _, tt := range tests {
		if got := LabelFor(tt.score); got != tt.expected {
			t.Errorf("LabelFor(%d) = %s, expected %s", tt.score, got, tt.expected)
		}
	}
}

func TestParseContentType(t *testing.T) {
	for _, ct := range ContentTypes {
		got, err := ParseContentType(string(ct))
		if err != nil || got != ct {
			t.Errorf("ParseContentType(%q) = %q, %v", ct, got, err)
		}
	}

	if got, err := ParseContentType(" EMAIL "); err != nil || got != TypeEmail {
		t.Errorf("expected case-insensitive parse, got %q, %v", got, err)
	}
	if got, err := ParseContentType(""); err != nil || got != TypeAuto {
		t.Errorf("expected empty to mean auto, got %q, %v", got, err)
	}
	if _, err := ParseContentType("fax"); !errors.Is(err, ErrInvalidContentType) {
		t.Errorf("expected ErrInvalidContentType, got %v", err)
	}
}

func TestAssessment_Clone(t *testing.T) {
	a := Assessment{Reasons: []string{"r"}, Suggestions: []string{"s"}}
	b := a.Clone()
	b.Reasons[0] = "changed"
	b.Suggestions[0] = "changed"

	if a.Reasons[0] != "r" || a.Suggestions[0] != "s" {
		t.Error("clone shares slices with the original")
	}
}

func TestCountStats(t *testing.T) {
	checks := []Assessment{
		{Label: LabelHigh}, {Label: LabelLow}, {Label: LabelLow}, {Label: LabelMedium},
	}

	got := CountStats(checks)
	want := Stats{Total: 4, Low: 2, Medium: 1, High: 1}
	if got != want {
		t.Errorf("CountStats = %+v, expected %+v", got, want)
	}
}

func TestDefaultConfig_Validate(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should be valid: %v", err)
	}

	cfg.Store.Backend = "sqlite"
	if err := cfg.Validate(); err == nil {
		t.Error("expected unknown backend to fail validation")
	}

	cfg = DefaultConfig()
	cfg.Concurrency.Workers = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected zero workers to fail validation")
	}

	cfg = DefaultConfig()
	cfg.Log.Level = "trace"
	if err := cfg.Validate(); err == nil {
		t.Error("expected unknown log level to fail validation")
	}
}
