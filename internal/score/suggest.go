package score

import "github.com/ppiankov/leakguard/internal/model"

var labelAdvice = map[model.Label][]string{
	model.LabelHigh: {
		"Do not share this information publicly.",
		"If this is your data, change passwords and enable MFA where possible.",
		"Contact the service provider if you believe credentials were leaked.",
	},
	model.LabelMedium: {
		"Avoid posting this in public forums; limit to trusted recipients.",
		"Consider masking or redacting sensitive parts (e.g., last 4 digits only).",
	},
	model.LabelLow: {
		"Information appears low risk — still exercise caution before sharing.",
		"Do not share passwords, OTP, or full card details with anyone.",
	},
}

var detectorAdvice = []struct {
	detector string
	advice   string
}{
	{DetectorEmail, "Email detected: consider using a disposable or secondary email for public forms."},
	{DetectorPhone, "Phone number detected: avoid sharing with unknown contacts; enable carrier protections."},
	{DetectorURL, "URL detected: do not click shortened or suspicious links; verify domain carefully."},
	{DetectorCard, "Possible card number detected: contact your issuer and monitor statements; do not send full card details."},
	{DetectorKeywords, "Contains sensitive keywords: redact or remove before sharing."},
}

// Suggest returns advice for a label and the detectors that fired.
// The result has no duplicates and keeps first-seen order.
func Suggest(label model.Label, findings Findings) []string {
	baseline, ok := labelAdvice[label]
	if !ok {
		baseline = labelAdvice[model.LabelLow]
	}

	out := make([]string, 0, len(baseline)+len(detectorAdvice))
	seen := make(map[string]bool)
	push := func(s string) {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}

	for _, s := range baseline {
		push(s)
	}
	for _, a := range detectorAdvice {
		if findings.Fired(a.detector) {
			push(a.advice)
		}
	}
	return out
}
