package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/leakguard/internal/model"
)

func assessment(score int, raw string) model.Assessment {
	return model.Assessment{
		Timestamp:    time.Date(2025, 11, 10, 12, 0, score, 0, time.UTC),
		Raw:          raw,
		Score:        score,
		Label:        model.LabelFor(score),
		DetectedType: model.TypeSMS,
		Reasons:      []string{"reason"},
		Suggestions:  []string{"suggestion"},
	}
}

func openFileStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.json")
	s, err := Open(context.Background(), NewFileBackend(path), nil)
	require.NoError(t, err)
	return s, path
}

func TestStore_RecordRecountsStats(t *testing.T) {
	ctx := context.Background()
	s, _ := openFileStore(t)

	require.NoError(t, s.Record(ctx, assessment(3, "low")))
	require.NoError(t, s.Record(ctx, assessment(44, "medium")))
	require.NoError(t, s.Record(ctx, assessment(76, "high")))
	require.NoError(t, s.Record(ctx, assessment(10, "low again")))

	assert.Equal(t, model.Stats{Total: 4, Low: 2, Medium: 1, High: 1}, s.Stats())

	history := s.History()
	require.Len(t, history, 4)
	assert.Equal(t, "low again", history[0].Raw, "history is newest first")
	assert.Equal(t, "low", history[3].Raw)

	last, ok := s.Last()
	require.True(t, ok)
	assert.Equal(t, "low again", last.Raw)
}

func TestStore_PersistsAcrossOpen(t *testing.T) {
	ctx := context.Background()
	s, path := openFileStore(t)

	require.NoError(t, s.Record(ctx, assessment(44, "persist me")))
	alert, err := s.PromoteLast(ctx)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	reopened, err := Open(ctx, NewFileBackend(path), nil)
	require.NoError(t, err)

	assert.Equal(t, model.Stats{Total: 1, Medium: 1}, reopened.Stats())
	alerts := reopened.Alerts()
	require.Len(t, alerts, 1)
	assert.Equal(t, alert.ID, alerts[0].ID)
	assert.Equal(t, "persist me", alerts[0].Raw)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.EqualValues(t, SchemaVersion, doc["version"])
}

func TestStore_PromoteAssignsUniqueIDs(t *testing.T) {
	ctx := context.Background()
	s, _ := openFileStore(t)

	a := assessment(70, "same input")
	first, err := s.Promote(ctx, a)
	require.NoError(t, err)
	second, err := s.Promote(ctx, a)
	require.NoError(t, err)

	assert.NotEmpty(t, first.ID)
	assert.NotEqual(t, first.ID, second.ID)

	alerts := s.Alerts()
	require.Len(t, alerts, 2)
	assert.Equal(t, second.ID, alerts[0].ID, "alerts are newest first")
	assert.Equal(t, a.Score, alerts[0].Score)
}

func TestStore_PromoteLastWithoutChecks(t *testing.T) {
	s, _ := openFileStore(t)

	_, err := s.PromoteLast(context.Background())
	assert.ErrorIs(t, err, ErrNoAssessment)
}

func TestStore_RemoveAlert(t *testing.T) {
	ctx := context.Background()
	s, _ := openFileStore(t)

	keep, err := s.Promote(ctx, assessment(70, "keep"))
	require.NoError(t, err)
	drop, err := s.Promote(ctx, assessment(80, "drop"))
	require.NoError(t, err)

	require.NoError(t, s.RemoveAlert(ctx, drop.ID))
	alerts := s.Alerts()
	require.Len(t, alerts, 1)
	assert.Equal(t, keep.ID, alerts[0].ID)

	err = s.RemoveAlert(ctx, "does-not-exist")
	assert.ErrorIs(t, err, ErrAlertNotFound)
	assert.Len(t, s.Alerts(), 1)
}

func TestStore_ClearHistoryKeepsAlerts(t *testing.T) {
	ctx := context.Background()
	s, _ := openFileStore(t)

	require.NoError(t, s.Record(ctx, assessment(70, "x")))
	_, err := s.PromoteLast(ctx)
	require.NoError(t, err)

	require.NoError(t, s.ClearHistory(ctx))

	assert.Empty(t, s.History())
	assert.Equal(t, model.Stats{}, s.Stats())
	_, ok := s.Last()
	assert.False(t, ok)
	assert.Len(t, s.Alerts(), 1)

	require.NoError(t, s.ClearAlerts(ctx))
	assert.Empty(t, s.Alerts())
}

func TestStore_Top(t *testing.T) {
	ctx := context.Background()
	s, _ := openFileStore(t)

	_, ok := s.Top()
	assert.False(t, ok)

	require.NoError(t, s.Record(ctx, assessment(20, "check")))
	top, ok := s.Top()
	require.True(t, ok)
	assert.Equal(t, "check", top.Raw)

	_, err := s.Promote(ctx, assessment(90, "alert"))
	require.NoError(t, err)
	top, ok = s.Top()
	require.True(t, ok)
	assert.Equal(t, "alert", top.Raw, "alerts take precedence over the last check")
}

func TestStore_ExportAlerts(t *testing.T) {
	ctx := context.Background()
	s, _ := openFileStore(t)

	var empty bytes.Buffer
	require.NoError(t, s.ExportAlerts(&empty))
	assert.JSONEq(t, `[]`, empty.String())

	alert, err := s.Promote(ctx, assessment(70, "exported"))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, s.ExportAlerts(&buf))

	var got []model.Alert
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, alert.ID, got[0].ID)
	assert.Equal(t, "exported", got[0].Raw)
	assert.Contains(t, buf.String(), "\n  ", "export is indented")
}

func TestStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s, _ := openFileStore(t)

	a := assessment(44, "original")
	require.NoError(t, s.Record(ctx, a))
	a.Reasons[0] = "mutated after record"

	history := s.History()
	history[0].Reasons[0] = "mutated copy"

	assert.Equal(t, "reason", s.History()[0].Reasons[0])
}

func TestStore_CorruptDocumentStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	s, err := Open(context.Background(), NewFileBackend(path), nil)
	require.NoError(t, err)
	assert.Empty(t, s.History())
	assert.Empty(t, s.Alerts())
}

func TestStore_NewerVersionIsRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"version": 99, "checks": []}`), 0600))

	_, err := Open(context.Background(), NewFileBackend(path), nil)
	assert.ErrorIs(t, err, ErrUnsupportedVersion)
}

func TestStore_UnversionedDocumentIsUpgraded(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	legacy := `{"checks":[{"raw":"old","score":70,"label":"High"}],"stats":{"total":0}}`
	require.NoError(t, os.WriteFile(path, []byte(legacy), 0600))

	s, err := Open(context.Background(), NewFileBackend(path), nil)
	require.NoError(t, err)

	assert.Equal(t, model.Stats{Total: 1, High: 1}, s.Stats(), "stats are recounted from history")
	assert.NotNil(t, s.Alerts())
}

type failingBackend struct {
	saveErr error
}

func (b *failingBackend) Load(context.Context) ([]byte, error) { return nil, ErrNotFound }
func (b *failingBackend) Save(context.Context, []byte) error { return b.saveErr }
func (b *failingBackend) Close() error { return nil }

func TestStore_FailedSaveLeavesStateUntouched(t *testing.T) {
	backend := &failingBackend{saveErr: errors.New("disk full")}
	s, err := Open(context.Background(), backend, nil)
	require.NoError(t, err)

	err = s.Record(context.Background(), assessment(50, "lost"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Empty(t, s.History())
	assert.Equal(t, model.Stats{}, s.Stats())
}

func TestStore_ConcurrentRecords(t *testing.T) {
	ctx := context.Background()
	s, _ := openFileStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, s.Record(ctx, assessment(i*5, "concurrent")))
		}(i)
	}
	wg.Wait()

	stats := s.Stats()
	assert.Equal(t, 20, stats.Total)
	assert.Equal(t, stats.Total, stats.Low+stats.Medium+stats.High)
}
