// Package store persists check history and user-flagged alerts.
//
// A Store owns one versioned Document and writes it through a Backend after
// every mutation. Callers receive copies; stored assessments are never
// modified in place.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/ppiankov/leakguard/internal/model"
)

var (
	// ErrNotFound is returned by a Backend that has nothing saved yet
	ErrNotFound = errors.New("document not found")

	// ErrUnsupportedVersion is returned when the document was written by a newer schema
	ErrUnsupportedVersion = errors.New("unsupported document version")

	// ErrAlertNotFound is returned when removing an unknown alert
	ErrAlertNotFound = errors.New("alert not found")

	// ErrNoAssessment is returned when promoting with no recorded check
	ErrNoAssessment = errors.New("no assessment recorded")
)

// Backend loads and saves the serialized document
type Backend interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
	Close() error
}

// Store is the history and alerts collection. It is safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	backend Backend
	doc     *Document
	logger  *slog.Logger
	newID   func() string
}

// Open loads the document from backend. An unreadable document is logged
// and replaced with an empty one; a document from a newer schema is an error.
func Open(ctx context.Context, backend Backend, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	s := &Store{
		backend: backend,
		logger:  logger,
		newID:   uuid.NewString,
	}

	doc, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	s.doc = doc

	logger.Debug("store opened", "checks", len(doc.Checks), "alerts", len(doc.Alerts))
	return s, nil
}

func (s *Store) load(ctx context.Context) (*Document, error) {
	data, err := s.backend.Load(ctx)
	if errors.Is(err, ErrNotFound) {
		return NewDocument(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load document: %w", err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		s.logger.Warn("discarding unreadable store document", "error", err)
		return NewDocument(), nil
	}
	if err := doc.upgrade(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// mutate applies fn to a copy of the document, persists it and swaps it in.
// On any error the in-memory state is left untouched.
func (s *Store) mutate(ctx context.Context, fn func(d *Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.doc.clone()
	if err := fn(next); err != nil {
		return err
	}

	data, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}
	if err := s.backend.Save(ctx, data); err != nil {
		return fmt.Errorf("save document: %w", err)
	}

	s.doc = next
	return nil
}

// Record prepends an assessment to the history and recounts the stats
func (s *Store) Record(ctx context.Context, a model.Assessment) error {
	a = a.Clone()
	return s.mutate(ctx, func(d *Document) error {
		d.Checks = append([]model.Assessment{a}, d.Checks...)
		d.Stats = model.CountStats(d.Checks)
		last := a.Clone()
		d.Last = &last
		return nil
	})
}

// Promote stores a copy of the assessment as a new alert
func (s *Store) Promote(ctx context.Context, a model.Assessment) (model.Alert, error) {
	alert := model.Alert{ID: s.newID(), Assessment: a.Clone()}
	err := s.mutate(ctx, func(d *Document) error {
		d.Alerts = append([]model.Alert{alert.Clone()}, d.Alerts...)
		return nil
	})
	if err != nil {
		return model.Alert{}, err
	}

	s.logger.Info("alert saved", "id", alert.ID, "label", alert.Label, "score", alert.Score)
	return alert, nil
}

// PromoteLast promotes the most recently recorded assessment
func (s *Store) PromoteLast(ctx context.Context) (model.Alert, error) {
	last, ok := s.Last()
	if !ok {
		return model.Alert{}, ErrNoAssessment
	}
	return s.Promote(ctx, last)
}

// RemoveAlert deletes the alert with the given id
func (s *Store) RemoveAlert(ctx context.Context, id string) error {
	return s.mutate(ctx, func(d *Document) error {
		for i, a := range d.Alerts {
			if a.ID == id {
				d.Alerts = append(d.Alerts[:i], d.Alerts[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("%w: %s", ErrAlertNotFound, id)
	})
}

// ClearAlerts removes every alert
func (s *Store) ClearAlerts(ctx context.Context) error {
	return s.mutate(ctx, func(d *Document) error {
		d.Alerts = []model.Alert{}
		return nil
	})
}

// ClearHistory removes the check history, counters and last check.
// Alerts are kept.
func (s *Store) ClearHistory(ctx context.Context) error {
	return s.mutate(ctx, func(d *Document) error {
		d.Checks = []model.Assessment{}
		d.Stats = model.Stats{}
		d.Last = nil
		return nil
	})
}

// ExportAlerts writes the alerts as an indented JSON array
func (s *Store) ExportAlerts(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s.Alerts()); err != nil {
		return fmt.Errorf("encode alerts: %w", err)
	}
	return nil
}

// History returns the checks, newest first
func (s *Store) History() []model.Assessment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Assessment, len(s.doc.Checks))
	for i, c := range s.doc.Checks {
		out[i] = c.Clone()
	}
	return out
}

// Alerts returns the alerts, newest first
func (s *Store) Alerts() []model.Alert {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Alert, len(s.doc.Alerts))
	for i, a := range s.doc.Alerts {
		out[i] = a.Clone()
	}
	return out
}

// Stats returns the aggregate counters
func (s *Store) Stats() model.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.Stats
}

// Last returns the most recently recorded assessment
func (s *Store) Last() (model.Assessment, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.doc.Last == nil {
		return model.Assessment{}, false
	}
	return s.doc.Last.Clone(), true
}

// Top returns the newest alert, falling back to the last check
func (s *Store) Top() (model.Assessment, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.doc.Alerts) > 0 {
		return s.doc.Alerts[0].Assessment.Clone(), true
	}
	if s.doc.Last != nil {
		return s.doc.Last.Clone(), true
	}
	return model.Assessment{}, false
}

// Close closes the backend
func (s *Store) Close() error {
	return s.backend.Close()
}
