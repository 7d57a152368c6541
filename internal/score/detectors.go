package score

import (
	"math"
	"strconv"
	"strings"

	"github.com/ppiankov/leakguard/internal/detect"
)

// Detector names
const (
	DetectorEmail       = "email"
	DetectorPhone       = "phone"
	DetectorURL         = "url"
	DetectorCard        = "card"
	DetectorKeywords    = "keywords"
	DetectorCapitalized = "capitalized"
	DetectorLength      = "length"
)

// Scoring constants
const (
	BaseScore            = 8
	NoSignalPenalty      = 5
	NoSignalFloor        = 3
	KeywordWeight        = 18
	MaxKeywordWeight     = 40
	MinNamedTokens       = 2
	NamedPersonMaxLength = 80
	LongTextLength       = 120
)

// NoSignalReason is appended when no contact or sensitive detector fired
const NoSignalReason = "No obvious contact or sensitive tokens detected"

// Detector is one entry of the ordered scoring table. Match returns the hits
// found in the text; an empty result means the detector did not fire.
type Detector struct {
	Name string

	// Sensitive detectors suppress the no-signal adjustment when they fire
	Sensitive bool

	Match  func(text string) []string
	Weight func(hits []string) float64
	Reason func(hits []string) string
}

func fixed(w float64) func([]string) float64 {
	return func([]string) float64 { return w }
}

func reason(s string) func([]string) string {
	return func([]string) string { return s }
}

func spanValues(find func(string) []detect.Span) func(string) []string {
	return func(text string) []string {
		var out []string
		for _, s := range find(text) {
			out = append(out, s.Value)
		}
		return out
	}
}

// DefaultDetectors returns the built-in detector table in evaluation order
func DefaultDetectors() []Detector {
	return DetectorsWithKeywords(detect.NewKeywordMatcher())
}

// DetectorsWithKeywords returns the built-in table using a custom keyword vocabulary
func DetectorsWithKeywords(keywords *detect.KeywordMatcher) []Detector {
	return []Detector{
		{
			Name:      DetectorEmail,
			Sensitive: true,
			Match:     spanValues(detect.Emails),
			Weight:    fixed(28),
			Reason:    reason("Detected email address"),
		},
		{
			Name:      DetectorPhone,
			Sensitive: true,
			Match:     spanValues(detect.Phones),
			Weight:    fixed(20),
			Reason:    reason("Detected phone number"),
		},
		{
			Name:      DetectorURL,
			Sensitive: true,
			Match:     spanValues(detect.URLs),
			Weight:    fixed(22),
			Reason:    reason("Detected URL"),
		},
		{
			Name:      DetectorCard,
			Sensitive: true,
			Match:     spanValues(detect.CardNumbers),
			Weight:    fixed(30),
			Reason:    reason("Possible credit-card-like number"),
		},
		{
			Name:      DetectorKeywords,
			Sensitive: true,
			Match:     keywords.Match,
			Weight: func(hits []string) float64 {
				return math.Min(MaxKeywordWeight, float64(len(hits)*KeywordWeight))
			},
			Reason: func(hits []string) string {
				return "Sensitive keywords: " + strings.Join(hits, ", ")
			},
		},
		{
			Name: DetectorCapitalized,
			Match: func(text string) []string {
				tokens := detect.CapitalizedTokens(text)
				if len(tokens) >= MinNamedTokens && detect.Length(text) < NamedPersonMaxLength {
					return tokens
				}
				return nil
			},
			Weight: fixed(8),
			Reason: reason("Likely named person"),
		},
		{
			Name: DetectorLength,
			Match: func(text string) []string {
				if n := detect.Length(text); n > LongTextLength {
					return []string{strconv.Itoa(n)}
				}
				return nil
			},
			Weight: fixed(10),
			Reason: reason("Long text (more data)"),
		},
	}
}
