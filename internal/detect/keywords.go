package detect

import "strings"

// KeywordMatcher finds sensitive vocabulary by case-insensitive substring match
type KeywordMatcher struct {
	keywords []string
}

// DefaultKeywords is the built-in sensitive vocabulary, in reporting order
var DefaultKeywords = []string{
	"password", "pwd", "ssn", "social security", "cvv",
	"credit card", "card number", "pin", "otp", "one-time",
	"bank account", "account number", "routing",
}

// NewKeywordMatcher creates a matcher over the default vocabulary
func NewKeywordMatcher() *KeywordMatcher {
	return NewKeywordMatcherWith(DefaultKeywords)
}

// NewKeywordMatcherWith creates a matcher over a custom vocabulary
func NewKeywordMatcherWith(keywords []string) *KeywordMatcher {
	kw := make([]string, 0, len(keywords))
	for _, k := range keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k != "" {
			kw = append(kw, k)
		}
	}
	return &KeywordMatcher{keywords: kw}
}

// Match returns the vocabulary entries found in text, in vocabulary order.
// Each entry is reported at most once regardless of how often it occurs.
func (m *KeywordMatcher) Match(text string) []string {
	lower := strings.ToLower(text)

	var found []string
	for _, keyword := range m.keywords {
		if strings.Contains(lower, keyword) {
			found = append(found, keyword)
		}
	}
	return found
}

// Keywords returns the vocabulary
func (m *KeywordMatcher) Keywords() []string {
	return append([]string(nil), m.keywords...)
}
