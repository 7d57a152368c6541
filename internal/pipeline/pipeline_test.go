package pipeline

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/leakguard/internal/cache"
	"github.com/ppiankov/leakguard/internal/model"
)

type fakeRecorder struct {
	mu      sync.Mutex
	records []model.Assessment
	err     error
}

func (r *fakeRecorder) Record(_ context.Context, a model.Assessment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.records = append(r.records, a)
	return nil
}

// countingCache counts hits on top of a memory cache
type countingCache struct {
	*cache.MemoryCache
	hits int32
	sets int32
}

func (c *countingCache) Get(key string) ([]byte, bool) {
	v, ok := c.MemoryCache.Get(key)
	if ok {
		atomic.AddInt32(&c.hits, 1)
	}
	return v, ok
}

func (c *countingCache) Set(key string, value []byte, ttl time.Duration) error {
	atomic.AddInt32(&c.sets, 1)
	return c.MemoryCache.Set(key, value, ttl)
}

func noCacheConfig() *model.Config {
	cfg := model.DefaultConfig()
	cfg.Cache.Enabled = false
	return cfg
}

func TestPipeline_Check_RejectsBlankInput(t *testing.T) {
	rec := &fakeRecorder{}
	p := NewPipeline(noCacheConfig(), rec, nil)

	for _, in := range []string{"", "   ", "\n\t"} {
		_, err := p.Check(context.Background(), in, model.TypeAuto)
		assert.ErrorIs(t, err, ErrEmptyInput)
	}
	assert.Empty(t, rec.records)
}

func TestPipeline_Check_RecordsTrimmedInput(t *testing.T) {
	rec := &fakeRecorder{}
	p := NewPipeline(noCacheConfig(), rec, nil)

	a, err := p.Check(context.Background(), "  Contact me at john@example.com \n", model.TypeAuto)
	require.NoError(t, err)

	assert.Equal(t, "Contact me at john@example.com", a.Raw)
	assert.Equal(t, 36, a.Score)
	assert.Equal(t, model.LabelMedium, a.Label)
	assert.Equal(t, model.TypeEmail, a.DetectedType)

	require.Len(t, rec.records, 1)
	assert.Equal(t, a, rec.records[0])
}

func TestPipeline_Check_RecorderError(t *testing.T) {
	rec := &fakeRecorder{err: errors.New("store unavailable")}
	p := NewPipeline(noCacheConfig(), rec, nil)

	a, err := p.Check(context.Background(), "hello there", model.TypeAuto)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store unavailable")
	assert.Equal(t, 3, a.Score, "assessment is still returned")
}

func TestPipeline_Assess_DoesNotRecord(t *testing.T) {
	rec := &fakeRecorder{}
	p := NewPipeline(noCacheConfig(), rec, nil)

	_, err := p.Assess(context.Background(), "hello there", model.TypeAuto)
	require.NoError(t, err)
	assert.Empty(t, rec.records)
}

func TestPipeline_Assess_CanceledContext(t *testing.T) {
	p := NewPipeline(noCacheConfig(), nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Assess(ctx, "hello there", model.TypeAuto)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPipeline_Assess_CachesVerdictButRestamps(t *testing.T) {
	cc := &countingCache{MemoryCache: cache.NewMemoryCache(time.Minute, 0)}

	var tick int64
	clock := func() time.Time {
		n := atomic.AddInt64(&tick, 1)
		return time.Date(2025, 11, 10, 12, 0, int(n), 0, time.UTC)
	}

	p := NewPipeline(model.DefaultConfig(), nil, nil, WithCache(cc), WithClock(clock))

	first, err := p.Assess(context.Background(), "my password is Secret123 and otp is 4455", model.TypeAuto)
	require.NoError(t, err)
	second, err := p.Assess(context.Background(), "my password is Secret123 and otp is 4455", model.TypeAuto)
	require.NoError(t, err)

	assert.Equal(t, int32(1), atomic.LoadInt32(&cc.sets))
	assert.Equal(t, int32(1), atomic.LoadInt32(&cc.hits))

	assert.Equal(t, 44, second.Score)
	assert.Equal(t, first.Reasons, second.Reasons)
	assert.Equal(t, first.Suggestions, second.Suggestions)
	assert.True(t, second.Timestamp.After(first.Timestamp), "timestamps are per call")
}

func TestPipeline_Assess_DeclaredTypeIsPartOfCacheKey(t *testing.T) {
	p := NewPipeline(model.DefaultConfig(), nil, nil)

	auto, err := p.Assess(context.Background(), "hello there", model.TypeAuto)
	require.NoError(t, err)
	declared, err := p.Assess(context.Background(), "hello there", model.TypeOther)
	require.NoError(t, err)

	assert.Equal(t, model.TypeSMS, auto.DetectedType)
	assert.Equal(t, model.TypeOther, declared.DetectedType)
}

func TestPipeline_Assess_Concurrent(t *testing.T) {
	p := NewPipeline(model.DefaultConfig(), nil, nil)

	var wg sync.WaitGroup
	scores := make([]int, 32)
	for i := range scores {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			a, err := p.Assess(context.Background(), "4111 1111 1111 1111", model.TypeAuto)
			assert.NoError(t, err)
			scores[i] = a.Score
		}(i)
	}
	wg.Wait()

	for _, s := range scores {
		assert.Equal(t, 38, s)
	}
}

func TestPipeline_Assess_DiskCacheSurvivesRestart(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.Cache.Dir = t.TempDir()

	first, err := NewPipeline(cfg, nil, nil).Assess(context.Background(), "call 555-123-4567", model.TypeAuto)
	require.NoError(t, err)

	entries, err := filepath.Glob(filepath.Join(cfg.Cache.Dir, "*.cache"))
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	second, err := NewPipeline(cfg, nil, nil).Assess(context.Background(), "call 555-123-4567", model.TypeAuto)
	require.NoError(t, err)
	assert.Equal(t, first.Score, second.Score)
	assert.Equal(t, first.Reasons, second.Reasons)
}
