// Package processor runs batch classification over a worker pool. The
// engine's per-item work is pure and read-only, so items fan out across
// workers with no shared mutable state beyond the published model.
package processor

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/healthwatch/riskengine/internal/classifier"
	"github.com/healthwatch/riskengine/internal/domain"
	"github.com/healthwatch/riskengine/internal/logging"
	"github.com/healthwatch/riskengine/internal/telemetry"
)

const defaultConcurrency = 8

// BatchProcessor classifies batches of content records in parallel while
// preserving input order in the output.
type BatchProcessor struct {
	engine      *classifier.Engine
	concurrency int
	limiter     *RateLimiter // nil disables throttling
	logger      logging.Logger
	telemetry   *telemetry.Provider
}

// NewBatchProcessor creates a batch processor. itemsPerSecond <= 0
// disables throttling.
func NewBatchProcessor(
	engine *classifier.Engine,
	concurrency int,
	itemsPerSecond int,
	logger logging.Logger,
	tp *telemetry.Provider,
) *BatchProcessor {
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	b := &BatchProcessor{
		engine:      engine,
		concurrency: concurrency,
		logger:      logger,
		telemetry:   tp,
	}
	if itemsPerSecond > 0 {
		b.limiter = NewRateLimiter(itemsPerSecond, itemsPerSecond, logger)
	}
	return b
}

type job struct {
	idx    int
	record domain.ContentRecord
}

// Process classifies every record and returns one result per evaluated
// input, in input order. The feedback index is built once up front and is
// read-only for the whole batch. Cancellation is coarse-grained: workers
// stop between items, already-computed results are returned and
// Truncated is set; no result is ever returned for an item that was not
// evaluated. An empty batch yields an empty result list without error.
func (b *BatchProcessor) Process(
	ctx context.Context,
	records []domain.ContentRecord,
	feedback []domain.FeedbackEntry,
) (*domain.BatchResult, error) {
	if len(records) == 0 {
		return &domain.BatchResult{Results: []domain.ClassificationResult{}}, nil
	}

	var span trace.Span
	if b.telemetry != nil {
		ctx, span = b.telemetry.Tracer.Start(ctx, "classify_batch",
			trace.WithAttributes(attribute.Int("batch.size", len(records))))
		defer span.End()
	}

	start := time.Now()

	fbIndex := classifier.NewFeedbackIndex(feedback, b.logger)
	b.telemetry.RecordMalformedFeedback(fbIndex.Skipped())

	b.logger.Info("starting batch classification",
		logging.Int("batch_size", len(records)),
		logging.Int("concurrency", b.concurrency),
		logging.Int("feedback_entries", fbIndex.Len()))

	jobs := make(chan job, len(records))
	slots := make([]*domain.ClassificationResult, len(records))

	var wg sync.WaitGroup
	for i := 0; i < b.concurrency; i++ {
		wg.Add(1)
		go b.worker(ctx, jobs, slots, fbIndex, &wg)
	}

	for i, r := range records {
		jobs <- job{idx: i, record: r}
	}
	close(jobs)
	wg.Wait()

	results := make([]domain.ClassificationResult, 0, len(records))
	for _, slot := range slots {
		if slot != nil {
			results = append(results, *slot)
		}
	}

	// Items are only ever skipped on cancellation, so a complete result
	// set is never flagged partial even when cancellation lands after the
	// last item.
	truncated := len(results) < len(records)

	duration := time.Since(start)
	b.telemetry.RecordBatch(len(records), duration, truncated)
	b.logger.Info("batch classification complete",
		logging.Int("total", len(records)),
		logging.Int("evaluated", len(results)),
		logging.Bool("truncated", truncated),
		logging.Duration("duration", duration))

	return &domain.BatchResult{Results: results, Truncated: truncated}, nil
}

// worker drains the job channel, checking for cancellation between items.
// Each job writes to its own slot, so no locking is needed.
func (b *BatchProcessor) worker(
	ctx context.Context,
	jobs <-chan job,
	slots []*domain.ClassificationResult,
	fbIndex *classifier.FeedbackIndex,
	wg *sync.WaitGroup,
) {
	defer wg.Done()

	for j := range jobs {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if b.limiter != nil {
			if err := b.limiter.Wait(ctx); err != nil {
				return
			}
		}

		result := b.engine.Classify(ctx, j.record, fbIndex)
		slots[j.idx] = &result
	}
}

// Concurrency returns the worker pool size.
func (b *BatchProcessor) Concurrency() int { return b.concurrency }
