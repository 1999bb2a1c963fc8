package pipeline

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hemodyn/starling/internal/model"
)

// DatasetLoader loads a dataset by source name (typically a file path).
// The batch processor uses it so dataset I/O overlaps across workers.
type DatasetLoader func(source string) (model.Dataset, error)

// BatchProcessor analyzes multiple datasets concurrently.
// It uses errgroup to manage goroutines and respect the concurrency limit.
//
// Design decision: We keep batching separate from Analyzer because:
// 1. It keeps the Analyzer focused on single-pass execution
// 2. It allows different batch strategies later (rate limiting, retries)
// 3. It provides cleaner separation of concerns
type BatchProcessor struct {
	// analyzer runs the per-dataset analysis. Analyzer is stateless, so a
	// single instance is shared across workers.
	analyzer *Analyzer

	// load reads a dataset by source name.
	load DatasetLoader

	// concurrency is the maximum number of concurrent analyses.
	concurrency int

	// logger is used for batch-level logging.
	logger *slog.Logger

	// results stores completed reports in input order.
	// Access is synchronized via mutex.
	results []*model.AnalysisReport
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

// NewBatchProcessor creates a BatchProcessor around an analyzer and a
// dataset loader.
func NewBatchProcessor(analyzer *Analyzer, load DatasetLoader, opts ...BatchOption) *BatchProcessor {
	bp := &BatchProcessor{
		analyzer:    analyzer,
		load:        load,
		concurrency: 4,
	}

	for _, opt := range opts {
		opt(bp)
	}

	if bp.logger == nil {
		bp.logger = slog.Default()
	}

	return bp
}

// ResultFunc receives each completed item as soon as it finishes.
// report is nil when the dataset could not be loaded, in which case err
// carries the load failure. Callbacks are serialized; implementations need
// no locking of their own.
type ResultFunc func(index int, report *model.AnalysisReport, err error)

// ProcessBatch analyzes the given sources concurrently, invoking fn for
// each completed item. Results are also collected and returned in input
// order, with nil entries for sources that failed to load.
//
// Design decision: We use errgroup.SetLimit rather than a worker pool
// because it's simpler and errgroup handles the concurrency correctly.
// Load and fit failures do not cancel the group; only context cancellation
// stops the remaining work.
func (bp *BatchProcessor) ProcessBatch(ctx context.Context, sources []string, fn ResultFunc) ([]*model.AnalysisReport, error) {
	bp.logger.Info("starting batch analysis",
		"total_datasets", len(sources),
		"concurrency", bp.concurrency,
	)

	startTime := time.Now()

	// Pre-allocate results slice to maintain input order.
	bp.results = make([]*model.AnalysisReport, len(sources))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(bp.concurrency)

	for i, source := range sources {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			ds, err := bp.load(source)
			if err != nil {
				bp.logger.Warn("failed to load dataset",
					"source", source,
					"error", err,
				)
				bp.deliver(fn, i, nil, err)
				return nil
			}

			report, err := bp.analyzer.Analyze(ctx, source, ds)
			if err != nil {
				// Analyze only errors on context cancellation.
				return err
			}

			bp.deliver(fn, i, report, nil)
			return nil
		})
	}

	err := g.Wait()

	elapsed := time.Since(startTime)
	bp.logger.Info("batch analysis complete",
		"total_datasets", len(sources),
		"elapsed", elapsed,
	)

	return bp.results, err
}

// deliver records a result and invokes the callback under the mutex so
// callbacks never interleave.
func (bp *BatchProcessor) deliver(fn ResultFunc, index int, report *model.AnalysisReport, err error) {
	bp.mu.Lock()
	defer bp.mu.Unlock()

	bp.results[index] = report
	if fn != nil {
		fn(index, report, err)
	}
}
