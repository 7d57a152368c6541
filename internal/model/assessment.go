package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidContentType is returned when a declared content type is unknown
var ErrInvalidContentType = errors.New("invalid content type")

// Assessment is the immutable output of one scoring run
type Assessment struct {
	Timestamp    time.Time   `json:"timestamp"`     // When the assessment was produced
	Raw          string      `json:"raw"`           // Analyzed input, verbatim
	Score        int         `json:"score"`         // Risk score (0-100)
	Label        Label       `json:"label"`         // Low, Medium, High
	DetectedType ContentType `json:"detected_type"` // email, link, phone, sms, other
	Reasons      []string    `json:"reasons"`       // Detector explanations in evaluation order
	Suggestions  []string    `json:"suggestions"`   // Advice, duplicate-free
}

// Clone returns a deep copy so callers never share slices with stored values
func (a Assessment) Clone() Assessment {
	out := a
	out.Reasons = append([]string(nil), a.Reasons...)
	out.Suggestions = append([]string(nil), a.Suggestions...)
	return out
}

// Alert is an assessment promoted by the user for longer-term tracking
type Alert struct {
	ID string `json:"id"`
	Assessment
}

// Clone returns a deep copy of the alert
func (a Alert) Clone() Alert {
	return Alert{ID: a.ID, Assessment: a.Assessment.Clone()}
}

// Label is the coarse three-level risk classification
type Label string

const (
	LabelLow    Label = "Low"
	LabelMedium Label = "Medium"
	LabelHigh   Label = "High"
)

// Label thresholds; boundary values map to the lower bracket
const (
	HighThreshold   = 60
	MediumThreshold = 30
)

// LabelFor maps a score to its label
func LabelFor(score int) Label {
	switch {
	case score > HighThreshold:
		return LabelHigh
	case score > MediumThreshold:
		return LabelMedium
	default:
		return LabelLow
	}
}

// ContentType is the declared or detected kind of input
type ContentType string

const (
	TypeAuto  ContentType = "auto" // Detect from the text
	TypeEmail ContentType = "email"
	TypePhone ContentType = "phone"
	TypeLink  ContentType = "link"
	TypeSMS   ContentType = "sms"
	TypeOther ContentType = "other"
)

// ContentTypes lists every accepted declared type
var ContentTypes = []ContentType{TypeAuto, TypeEmail, TypePhone, TypeLink, TypeSMS, TypeOther}

// ParseContentType parses a declared type; empty means auto
func ParseContentType(s string) (ContentType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return TypeAuto, nil
	}
	for _, t := range ContentTypes {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidContentType, s)
}
