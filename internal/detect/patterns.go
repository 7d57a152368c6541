// Package detect implements the pattern matchers behind risk scoring.
//
// Each matcher inspects raw text for one class of personal or sensitive data
// and reports what it found. Matchers are independent and stateless.
package detect

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	emailRe       = regexp.MustCompile(`(?i)[a-z0-9._%+-]+@[a-z0-9.-]+\.[a-z]{2,}`)
	phoneRe       = regexp.MustCompile(`(\+?\d{1,3})?[\s\x{00A0}\x{2007}\x{202F}-]?\(?\d{2,4}\)?[\s\x{00A0}\x{2007}\x{202F}-]?\d{3,4}[\s\x{00A0}\x{2007}\x{202F}-]?\d{3,4}`)
	urlRe         = regexp.MustCompile(`(?i)(https?://)?(www\.)?[a-z0-9-]+\.[a-z]{2,}(/\S*)?`)
	linkPrefixRe  = regexp.MustCompile(`(?i)https?://|www\.`)
	cardRe        = regexp.MustCompile(`(?:\d[ \x{00A0}\x{2007}\x{202F}-]*?){13,19}`)
	capitalizedRe = regexp.MustCompile(`^[A-Z][a-z]{2,}`)
)

// MinPhoneDigits is the smallest digit count accepted as a phone number
const MinPhoneDigits = 7

// Span is a matched region of the input, in byte offsets
type Span struct {
	Start int    `json:"start"`
	End   int    `json:"end"`
	Value string `json:"value"`
}

func (s Span) within(o Span) bool {
	return o.Start <= s.Start && s.End <= o.End
}

func findSpans(re *regexp.Regexp, text string) []Span {
	idx := re.FindAllStringIndex(text, -1)
	if len(idx) == 0 {
		return nil
	}
	spans := make([]Span, 0, len(idx))
	for _, loc := range idx {
		start, end := loc[0], loc[1]
		// separators are optional at either edge of some patterns
		for start < end {
			r, size := utf8.DecodeRuneInString(text[start:end])
			if !isSeparator(r) {
				break
			}
			start += size
		}
		for end > start {
			r, size := utf8.DecodeLastRuneInString(text[start:end])
			if !isSeparator(r) {
				break
			}
			end -= size
		}
		spans = append(spans, Span{Start: start, End: end, Value: text[start:end]})
	}
	return spans
}

// isSeparator covers ASCII and Unicode spaces (NBSP, figure and narrow
// no-break space included) plus the dash
func isSeparator(r rune) bool {
	return r == '-' || unicode.IsSpace(r)
}

// without drops every span that lies entirely inside one of the claimed spans.
// Spans that merely touch or partially overlap a claimed span are kept.
func without(spans, claimed []Span) []Span {
	if len(claimed) == 0 {
		return spans
	}
	var out []Span
	for _, s := range spans {
		taken := false
		for _, c := range claimed {
			if s.within(c) {
				taken = true
				break
			}
		}
		if !taken {
			out = append(out, s)
		}
	}
	return out
}

// cardShaped reports whether a card-like match is grouped the way card
// numbers are printed: one unbroken run, groups of four, or the 4-6-5 layout
func cardShaped(value string) bool {
	groups := strings.FieldsFunc(value, isSeparator)
	if len(groups) == 1 {
		return true
	}
	if len(groups) == 3 && len(groups[0]) == 4 && len(groups[1]) == 6 && len(groups[2]) == 5 {
		return true
	}
	for _, g := range groups {
		if len(g) != 4 {
			return false
		}
	}
	return true
}

// Emails returns every email address in the text
func Emails(text string) []Span {
	return findSpans(emailRe, text)
}

// CardNumbers returns every run of 13-19 digits, optionally grouped by spaces or dashes
func CardNumbers(text string) []Span {
	return findSpans(cardRe, text)
}

// Phones returns phone-number matches with at least MinPhoneDigits digits.
// A match that sits inside a card-shaped number is not reported as a phone;
// a phone followed by an unrelated digit group still is.
func Phones(text string) []Span {
	var cards []Span
	for _, c := range CardNumbers(text) {
		if cardShaped(c.Value) {
			cards = append(cards, c)
		}
	}
	var out []Span
	for _, s := range without(findSpans(phoneRe, text), cards) {
		if CountDigits(s.Value) >= MinPhoneDigits {
			out = append(out, s)
		}
	}
	return out
}

// URLs returns link-like matches. A match lying inside an email address is
// not reported as a URL; a URL that carries an email in its query still is.
func URLs(text string) []Span {
	return without(findSpans(urlRe, text), Emails(text))
}

// HasLinkPrefix reports whether the text contains a scheme or www prefix
func HasLinkPrefix(text string) bool {
	return linkPrefixRe.MatchString(text)
}

// HasPhonePattern reports whether the raw phone pattern occurs anywhere,
// without the digit-count or card-number filtering applied by Phones
func HasPhonePattern(text string) bool {
	return phoneRe.MatchString(text)
}

// CapitalizedTokens returns whitespace-separated tokens shaped like a name
// (uppercase letter followed by at least two lowercase letters)
func CapitalizedTokens(text string) []string {
	var out []string
	for _, tok := range strings.Fields(text) {
		if capitalizedRe.MatchString(tok) {
			out = append(out, tok)
		}
	}
	return out
}

// CountDigits counts ASCII digits in s
func CountDigits(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}

// Length returns the length of the text in characters
func Length(text string) int {
	return utf8.RuneCountInString(text)
}

// IsBlank reports whether the text has no non-space characters
func IsBlank(text string) bool {
	return strings.IndexFunc(text, func(r rune) bool { return !unicode.IsSpace(r) }) < 0
}
