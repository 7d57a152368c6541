package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/ppiankov/leakguard/internal/cache"
	"github.com/ppiankov/leakguard/internal/detect"
	"github.com/ppiankov/leakguard/internal/model"
	"github.com/ppiankov/leakguard/internal/score"
)

// ErrEmptyInput is returned for blank text; the scorer is never called with it
var ErrEmptyInput = errors.New("please paste some text (email, link, SMS, or phone number) to analyze")

// Recorder persists completed assessments
type Recorder interface {
	Record(ctx context.Context, a model.Assessment) error
}

// Pipeline orchestrates a check: validate input, score, record
type Pipeline struct {
	scorer   *score.Scorer
	cache    cache.Cache // Optional verdict cache (nil if disabled)
	cacheTTL time.Duration
	recorder Recorder // Optional (nil skips recording)
	group    singleflight.Group
	logger   *slog.Logger
	now      func() time.Time
}

// Option configures a Pipeline
type Option func(*Pipeline)

// WithScorer replaces the default scorer
func WithScorer(s *score.Scorer) Option {
	return func(p *Pipeline) {
		p.scorer = s
	}
}

// WithCache replaces the cache built from configuration
func WithCache(c cache.Cache) Option {
	return func(p *Pipeline) {
		p.cache = c
	}
}

// WithClock sets the time source used to stamp cached assessments
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) {
		p.now = now
	}
}

// NewPipeline creates a new pipeline with the given configuration
func NewPipeline(cfg *model.Config, recorder Recorder, logger *slog.Logger, opts ...Option) *Pipeline {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	p := &Pipeline{
		scorer:   score.NewScorer(),
		cache:    cache.New(cfg.Cache),
		cacheTTL: cfg.Cache.TTL,
		recorder: recorder,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}

	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Check assesses text and records the result
func (p *Pipeline) Check(ctx context.Context, text string, declared model.ContentType) (model.Assessment, error) {
	a, err := p.Assess(ctx, text, declared)
	if err != nil {
		return model.Assessment{}, err
	}

	if p.recorder != nil {
		if err := p.recorder.Record(ctx, a); err != nil {
			return a, fmt.Errorf("record check: %w", err)
		}
	}
	return a, nil
}

// Assess validates and scores text without recording it
func (p *Pipeline) Assess(ctx context.Context, text string, declared model.ContentType) (model.Assessment, error) {
	if err := ctx.Err(); err != nil {
		return model.Assessment{}, err
	}

	if detect.IsBlank(text) {
		return model.Assessment{}, ErrEmptyInput
	}
	text = strings.TrimSpace(text)
	if declared == "" {
		declared = model.TypeAuto
	}

	if p.cache == nil {
		a := p.scorer.Score(text, declared)
		p.logger.Debug("scored", "score", a.Score, "label", a.Label, "type", a.DetectedType)
		return a, nil
	}

	key := cache.CacheKey(text, declared)
	v, _, shared := p.group.Do(key, func() (interface{}, error) {
		return p.scoreCached(key, text, declared), nil
	})

	// every call gets its own timestamp, even when the verdict was shared
	a := v.(model.Assessment).Clone()
	a.Timestamp = p.now()
	p.logger.Debug("scored", "score", a.Score, "label", a.Label, "type", a.DetectedType, "shared", shared)
	return a, nil
}

func (p *Pipeline) scoreCached(key, text string, declared model.ContentType) model.Assessment {
	if data, found := p.cache.Get(key); found {
		var a model.Assessment
		if err := json.Unmarshal(data, &a); err == nil {
			p.logger.Debug("cache hit", "key", key)
			return a
		}
		_ = p.cache.Delete(key)
	}

	a := p.scorer.Score(text, declared)
	data, err := json.Marshal(a)
	if err != nil {
		p.logger.Warn("cache marshal failed", "error", err)
		return a
	}
	if err := p.cache.Set(key, data, p.cacheTTL); err != nil {
		p.logger.Warn("cache set failed", "error", err)
	}
	return a
}
