package worker

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/ppiankov/leakguard/internal/model"
)

// Assessor scores a single input without recording it
type Assessor interface {
	Assess(ctx context.Context, text string, declared model.ContentType) (model.Assessment, error)
}

// Recorder persists completed assessments
type Recorder interface {
	Record(ctx context.Context, a model.Assessment) error
}

// CheckJob represents a single batch input
type CheckJob struct {
	Index    int
	Text     string
	Declared model.ContentType
	Assessor Assessor
}

// Execute executes the check job
func (j *CheckJob) Execute(ctx context.Context) Result {
	a, err := j.Assessor.Assess(ctx, j.Text, j.Declared)
	if err != nil {
		return &CheckResult{Index: j.Index, Input: j.Text, Error: err}
	}
	return &CheckResult{Index: j.Index, Input: j.Text, Assessment: &a}
}

// CheckResult represents the result of a check job
type CheckResult struct {
	Index      int
	Input      string
	Assessment *model.Assessment
	Error      error
}

// GetError returns the error from the check result
func (r *CheckResult) GetError() error {
	return r.Error
}

// BatchProcessor checks multiple inputs concurrently
type BatchProcessor struct {
	assessor    Assessor
	recorder    Recorder // Optional (nil skips recording)
	concurrency int
	logger      *slog.Logger
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(assessor Assessor, recorder Recorder, concurrency int, logger *slog.Logger) *BatchProcessor {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &BatchProcessor{
		assessor:    assessor,
		recorder:    recorder,
		concurrency: concurrency,
		logger:      logger,
	}
}

// ProcessInputs checks inputs concurrently. Results come back in input
// order and successful assessments are recorded in that same order, so
// history reads the same regardless of worker scheduling. Every input gets
// a result; inputs cut off by cancellation carry the context error.
func (b *BatchProcessor) ProcessInputs(ctx context.Context, inputs []string, declared model.ContentType) []*CheckResult {
	if len(inputs) == 0 {
		return []*CheckResult{}
	}

	pool := NewPool(ctx, b.concurrency)
	pool.Start()

	checkResults := make([]*CheckResult, 0, len(inputs))
	for i, text := range inputs {
		job := &CheckJob{
			Index:    i,
			Text:     text,
			Declared: declared,
			Assessor: b.assessor,
		}
		if !pool.Submit(job) {
			checkResults = append(checkResults, &CheckResult{Index: i, Input: text, Error: ctx.Err()})
		}
	}

	seen := make([]bool, len(inputs))
	for _, r := range checkResults {
		seen[r.Index] = true
	}
	for _, result := range pool.Wait() {
		r := result.(*CheckResult)
		seen[r.Index] = true
		checkResults = append(checkResults, r)
	}

	// queued jobs are dropped by the pool once ctx is canceled
	for i, ok := range seen {
		if ok {
			continue
		}
		err := ctx.Err()
		if err == nil {
			err = context.Canceled
		}
		checkResults = append(checkResults, &CheckResult{Index: i, Input: inputs[i], Error: err})
	}
	sort.Slice(checkResults, func(i, j int) bool {
		return checkResults[i].Index < checkResults[j].Index
	})

	b.record(ctx, checkResults)
	return checkResults
}

func (b *BatchProcessor) record(ctx context.Context, results []*CheckResult) {
	if b.recorder == nil {
		return
	}
	for _, r := range results {
		if r.Error != nil || r.Assessment == nil {
			continue
		}
		if err := b.recorder.Record(ctx, *r.Assessment); err != nil {
			b.logger.Warn("record batch check failed", "index", r.Index, "error", err)
			r.Error = fmt.Errorf("record check: %w", err)
		}
	}
}

// ProcessFile reads inputs from a file ("-" for stdin) and checks them
func (b *BatchProcessor) ProcessFile(ctx context.Context, filePath string, declared model.ContentType) ([]*CheckResult, error) {
	inputs, err := ReadInputsFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read inputs: %w", err)
	}

	return b.ProcessInputs(ctx, inputs, declared), nil
}

// ReadInputsFromFile reads inputs from a file (one per line); "-" reads stdin
func ReadInputsFromFile(filePath string) ([]string, error) {
	if filePath == "-" {
		return ReadInputs(os.Stdin)
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return ReadInputs(file)
}

// ReadInputs reads one input per line, skipping blanks, # comments and duplicates
func ReadInputs(r io.Reader) ([]string, error) {
	var inputs []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !seen[line] {
			seen[line] = true
			inputs = append(inputs, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan input: %w", err)
	}

	return inputs, nil
}
