package score

import (
	"reflect"
	"testing"

	"github.com/ppiankov/leakguard/internal/model"
)

func TestSuggest_LabelBaseline(t *testing.T) {
	tests := []struct {
		label    model.Label
		expected int
	}{
		{model.LabelHigh, 3},
		{model.LabelMedium, 2},
		{model.LabelLow, 2},
	}

	for _, tt := range tests {
		t.Run(string(tt.label), func(t *testing.T) {
			got := Suggest(tt.label, nil)
			if len(got) != tt.expected {
				t.Errorf("Expected %d suggestions for %s, got %d: %v", tt.expected, tt.label, len(got), got)
			}
		})
	}
}

func TestSuggest_LowBaselineText(t *testing.T) {
	expected := []string{
		"Information appears low risk — still exercise caution before sharing.",
		"Do not share passwords, OTP, or full card details with anyone.",
	}

	if got := Suggest(model.LabelLow, nil); !reflect.DeepEqual(got, expected) {
		t.Errorf("Unexpected Low advice:\n got: %v\nwant: %v", got, expected)
	}
}

func TestSuggest_DetectorAdditionsInOrder(t *testing.T) {
	findings := Findings{
		DetectorKeywords: {"password"},
		DetectorEmail:    {"a@b.io"},
		DetectorCard:     {"4111 1111 1111 1111"},
	}

	got := Suggest(model.LabelHigh, findings)

	expected := append(append([]string{}, labelAdvice[model.LabelHigh]...),
		"Email detected: consider using a disposable or secondary email for public forms.",
		"Possible card number detected: contact your issuer and monitor statements; do not send full card details.",
		"Contains sensitive keywords: redact or remove before sharing.",
	)
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("Unexpected suggestions:\n got: %v\nwant: %v", got, expected)
	}
}

func TestSuggest_IgnoresNonSensitiveDetectors(t *testing.T) {
	findings := Findings{
		DetectorCapitalized: {"Alice", "Bob"},
		DetectorLength:      {"150"},
	}

	got := Suggest(model.LabelLow, findings)
	if !reflect.DeepEqual(got, labelAdvice[model.LabelLow]) {
		t.Errorf("Expected only the Low baseline, got %v", got)
	}
}

func TestSuggest_NoDuplicates(t *testing.T) {
	findings := Findings{}
	for _, a := range detectorAdvice {
		findings[a.detector] = []string{"hit"}
	}

	for _, label := range []model.Label{model.LabelLow, model.LabelMedium, model.LabelHigh} {
		got := Suggest(label, findings)
		seen := make(map[string]bool)
		for _, s := range got {
			if seen[s] {
				t.Errorf("duplicate suggestion %q for %s", s, label)
			}
			seen[s] = true
		}
		if len(got) != len(labelAdvice[label])+len(detectorAdvice) {
			t.Errorf("Expected %d suggestions for %s, got %d", len(labelAdvice[label])+len(detectorAdvice), label, len(got))
		}
	}
}
