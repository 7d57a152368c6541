package store

import (
	"fmt"

	"github.com/ppiankov/leakguard/internal/model"
)

// SchemaVersion is the current version of the persisted document
const SchemaVersion = 1

// Document is the persisted state: check history, alerts and counters.
// Checks and alerts are ordered newest first.
type Document struct {
	Version int                `json:"version"`
	Checks  []model.Assessment `json:"checks"`
	Alerts  []model.Alert      `json:"alerts"`
	Stats   model.Stats        `json:"stats"`
	Last    *model.Assessment  `json:"last,omitempty"`
}

// NewDocument returns an empty document at the current schema version
func NewDocument() *Document {
	return &Document{
		Version: SchemaVersion,
		Checks:  []model.Assessment{},
		Alerts:  []model.Alert{},
	}
}

// upgrade brings a loaded document to the current schema version.
// Documents written before versioning carry version 0 and share the v1 layout.
func (d *Document) upgrade() error {
	if d.Version > SchemaVersion {
		return fmt.Errorf("%w: document version %d, supported %d", ErrUnsupportedVersion, d.Version, SchemaVersion)
	}
	d.Version = SchemaVersion
	if d.Checks == nil {
		d.Checks = []model.Assessment{}
	}
	if d.Alerts == nil {
		d.Alerts = []model.Alert{}
	}
	d.Stats = model.CountStats(d.Checks)
	return nil
}

func (d *Document) clone() *Document {
	out := &Document{
		Version: d.Version,
		Checks:  make([]model.Assessment, len(d.Checks)),
		Alerts:  make([]model.Alert, len(d.Alerts)),
		Stats:   d.Stats,
	}
	for i, c := range d.Checks {
		out.Checks[i] = c.Clone()
	}
	for i, a := range d.Alerts {
		out.Alerts[i] = a.Clone()
	}
	if d.Last != nil {
		last := d.Last.Clone()
		out.Last = &last
	}
	return out
}
