package score

import (
	"math"
	"time"

	"github.com/ppiankov/leakguard/internal/detect"
	"github.com/ppiankov/leakguard/internal/model"
)

// Findings maps detector name to the hits it reported. Only detectors that
// fired are present.
type Findings map[string][]string

// Fired reports whether the named detector fired
func (f Findings) Fired(name string) bool {
	return len(f[name]) > 0
}

// Evaluation is the timestamp-free outcome of running the detector table
type Evaluation struct {
	Score    int
	Reasons  []string
	Findings Findings
}

// Scorer calculates the privacy leak risk of free text.
// A Scorer holds no mutable state and is safe for concurrent use.
type Scorer struct {
	detectors []Detector
	now       func() time.Time
}

// Option configures a Scorer
type Option func(*Scorer)

// WithDetectors replaces the detector table
func WithDetectors(detectors []Detector) Option {
	return func(s *Scorer) {
		s.detectors = detectors
	}
}

// WithClock sets the time source used to stamp assessments
func WithClock(now func() time.Time) Option {
	return func(s *Scorer) {
		s.now = now
	}
}

// NewScorer creates a new scorer with the default detector table
func NewScorer(opts ...Option) *Scorer {
	s := &Scorer{
		detectors: DefaultDetectors(),
		now:       func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Score assesses text. The caller must reject blank input beforehand;
// for any other string Score always returns a valid assessment.
func (s *Scorer) Score(text string, declared model.ContentType) model.Assessment {
	eval := s.Evaluate(text)
	label := model.LabelFor(eval.Score)

	return model.Assessment{
		Timestamp:    s.now(),
		Raw:          text,
		Score:        eval.Score,
		Label:        label,
		DetectedType: detect.Resolve(text, declared),
		Reasons:      eval.Reasons,
		Suggestions:  Suggest(label, eval.Findings),
	}
}

// Evaluate runs the detector table and the no-signal adjustment
func (s *Scorer) Evaluate(text string) Evaluation {
	acc := accumulator{score: BaseScore}
	reasons := []string{}
	findings := Findings{}
	sensitive := false

	// 1. Additive pass, in table order
	for _, d := range s.detectors {
		hits := d.Match(text)
		if len(hits) == 0 {
			continue
		}
		findings[d.Name] = hits
		acc.add(d.Weight(hits))
		reasons = append(reasons, d.Reason(hits))
		if d.Sensitive {
			sensitive = true
		}
	}

	// 2. No-signal adjustment
	if !sensitive {
		acc.set(math.Max(NoSignalFloor, acc.score-NoSignalPenalty))
		reasons = append(reasons, NoSignalReason)
	}

	return Evaluation{
		Score:    acc.value(),
		Reasons:  reasons,
		Findings: findings,
	}
}

// accumulator keeps the running score rounded and within [0, 100] after
// every step
type accumulator struct {
	score float64
}

func (a *accumulator) add(delta float64) {
	a.set(a.score + delta)
}

func (a *accumulator) set(v float64) {
	a.score = clamp(v)
}

func (a *accumulator) value() int {
	return int(clamp(a.score))
}

func clamp(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(100, math.Round(v)))
}
