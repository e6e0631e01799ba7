package pipeline

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/razberi-py/phone-number-lookup/internal/model"
)

// BatchProcessor handles concurrent analysis of multiple phone numbers.
// It uses errgroup to manage goroutines and respect concurrency limits.
//
// Design decision: We use a separate BatchProcessor rather than adding
// batch functionality to Pipeline because:
// 1. It keeps the Pipeline focused on single-number execution
// 2. It allows different batch strategies later (rate limiting, dedup)
// 3. It provides cleaner separation of concerns
type BatchProcessor struct {
	// pipelineFactory creates a new pipeline for each number.
	// We use a factory to ensure each analysis gets a fresh pipeline
	// instance; it receives the number so callers can vary configuration
	// per input (e.g. per-region lookup languages).
	pipelineFactory func(number string) *Pipeline

	// concurrency is the maximum number of concurrent analyses.
	concurrency int

	// logger is used for batch-level logging.
	logger *slog.Logger

	// results stores completed reports in input order.
	// Access is synchronized via mutex.
	results []*model.Report
	mu      sync.Mutex
}

// BatchOption configures a BatchProcessor.
type BatchOption func(*BatchProcessor)

// WithBatchLogger sets a custom logger for batch processing.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchProcessor) {
		b.logger = logger
	}
}

// WithConcurrency sets the maximum number of concurrent analyses.
// Default is 4 if not specified.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchProcessor) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// NewBatchProcessor creates a new BatchProcessor.
//
// The pipelineFactory function is called for each number to create a fresh
// pipeline instance, so pipeline state never leaks between analyses.
func NewBatchProcessor(pipelineFactory func(number string) *Pipeline, opts ...BatchOption) *BatchProcessor {
	bp := &BatchProcessor{
		pipelineFactory: pipelineFactory,
		concurrency:     4,
		results:         make([]*model.Report, 0),
	}

	for _, opt := range opts {
		opt(bp)
	}

	if bp.logger == nil {
		bp.logger = slog.Default()
	}

	return bp
}

// ProcessBatch analyzes multiple numbers concurrently.
// It respects the configured concurrency limit and context cancellation.
//
// Returns all reports in input order, including reports whose analysis
// failed (the report carries the error). The error return indicates
// cancellation, not per-number failure.
func (bp *BatchProcessor) ProcessBatch(ctx context.Context, numbers []string) ([]*model.Report, error) {
	return bp.process(ctx, numbers, nil)
}

// ProcessBatchWithCallback analyzes multiple numbers concurrently and
// invokes the callback as each report completes. Callbacks may run from
// multiple goroutines; callers needing ordered output should synchronize.
func (bp *BatchProcessor) ProcessBatchWithCallback(ctx context.Context, numbers []string, callback func(report *model.Report, index int)) ([]*model.Report, error) {
	return bp.process(ctx, numbers, callback)
}

func (bp *BatchProcessor) process(ctx context.Context, numbers []string, callback func(report *model.Report, index int)) ([]*model.Report, error) {
	bp.logger.Debug("starting batch analysis",
		"total", len(numbers),
		"concurrency", bp.concurrency,
	)

	// Pre-allocate to maintain input order in the results.
	bp.results = make([]*model.Report, len(numbers))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(bp.concurrency)

	for i, number := range numbers {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			report := model.NewReport(number)
			p := bp.pipelineFactory(number)
			err := p.Execute(ctx, report)

			// Store the report regardless of error; it carries the
			// error information for failed analyses.
			bp.mu.Lock()
			bp.results[i] = report
			bp.mu.Unlock()

			if callback != nil {
				callback(report, i)
			}

			if err != nil && ctx.Err() != nil {
				return ctx.Err()
			}
			return nil
		})
	}

	err := g.Wait()
	return bp.results, err
}
