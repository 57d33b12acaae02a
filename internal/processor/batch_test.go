//nolint:testpackage // Testing internal processor requires same package access
package processor

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/healthwatch/riskengine/internal/classifier"
	"github.com/healthwatch/riskengine/internal/domain"
	"github.com/healthwatch/riskengine/internal/logging"
)

func newTestProcessor(t *testing.T, concurrency int) *BatchProcessor {
	t.Helper()

	trainer := classifier.NewModelTrainer(classifier.DefaultModelConfig(), nil)
	model, err := trainer.Fit(classifier.DefaultTrainingExamples())
	if err != nil {
		t.Fatalf("training failed: %v", err)
	}

	keyword := classifier.NewKeywordClassifier(classifier.DefaultKeywordConfig(), nil)
	engine := classifier.NewEngine(keyword, model, classifier.DefaultConfidenceThreshold, logging.NewNop(), nil)
	return NewBatchProcessor(engine, concurrency, 0, logging.NewNop(), nil)
}

func makeRecords(n int) []domain.ContentRecord {
	records := make([]domain.ContentRecord, n)
	for i := 0; i < n; i++ {
		records[i] = domain.ContentRecord{
			Source:  "feed",
			Content: fmt.Sprintf("report %d: outbreak of illness in district %d", i, i),
		}
	}
	return records
}

func TestBatchProcessor_EmptyBatch(t *testing.T) {
	bp := newTestProcessor(t, 4)

	result, err := bp.Process(context.Background(), nil, nil)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Results) != 0 {
		t.Errorf("expected empty results, got %d", len(result.Results))
	}
	if result.Truncated {
		t.Error("empty batch must not be truncated")
	}
}

func TestBatchProcessor_PreservesInputOrder(t *testing.T) {
	bp := newTestProcessor(t, 8)
	records := makeRecords(64)

	result, err := bp.Process(context.Background(), records, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Results) != len(records) {
		t.Fatalf("expected %d results, got %d", len(records), len(result.Results))
	}

	for i, res := range result.Results {
		if res.Content != records[i].Content {
			t.Fatalf("order violated at %d: got %q, want %q", i, res.Content, records[i].Content)
		}
	}
}

func TestBatchProcessor_InvariantsHold(t *testing.T) {
	bp := newTestProcessor(t, 8)

	result, err := bp.Process(context.Background(), makeRecords(16), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i, res := range result.Results {
		if !res.Risk.Valid() {
			t.Errorf("result %d: invalid risk level", i)
		}
		if res.Confidence < 0 || res.Confidence > 1 {
			t.Errorf("result %d: confidence %f out of [0,1]", i, res.Confidence)
		}
		if res.FeedbackApplied {
			t.Errorf("result %d: feedback applied without feedback entries", i)
		}
	}
}

func TestBatchProcessor_IdempotentWithoutFeedback(t *testing.T) {
	bp := newTestProcessor(t, 8)
	records := makeRecords(24)

	first, err := bp.Process(context.Background(), records, nil)
	if err != nil {
		t.Fatal(err)
	}
	second, err := bp.Process(context.Background(), records, nil)
	if err != nil {
		t.Fatal(err)
	}

	if len(first.Results) != len(second.Results) {
		t.Fatalf("result counts differ: %d vs %d", len(first.Results), len(second.Results))
	}
	for i := range first.Results {
		if first.Results[i] != second.Results[i] {
			t.Errorf("result %d differs between runs: %+v vs %+v",
				i, first.Results[i], second.Results[i])
		}
	}
}

func TestBatchProcessor_CancelledContextTruncates(t *testing.T) {
	bp := newTestProcessor(t, 2)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := bp.Process(ctx, makeRecords(32), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !result.Truncated {
		t.Error("expected truncation indicator on a cancelled batch")
	}
	if len(result.Results) == len(makeRecords(32)) {
		t.Error("expected fewer results than records on a cancelled batch")
	}
	// Whatever was evaluated must still be in input order.
	for i := 1; i < len(result.Results); i++ {
		if result.Results[i-1].Content == result.Results[i].Content {
			t.Error("duplicate result in truncated batch")
		}
	}
}

// cancelOnLastPredictor cancels the batch context while the final item is
// being evaluated.
type cancelOnLastPredictor struct {
	remaining int32
	cancel    context.CancelFunc
}

func (p *cancelOnLastPredictor) Predict(string) (domain.RiskLevel, float64, error) {
	if atomic.AddInt32(&p.remaining, -1) == 0 {
		p.cancel()
	}
	return domain.RiskLow, 0.9, nil
}

func TestBatchProcessor_CancelAfterLastItemIsNotTruncated(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	records := makeRecords(6)
	engine := classifier.NewEngine(
		classifier.NewKeywordClassifier(classifier.DefaultKeywordConfig(), nil),
		&cancelOnLastPredictor{remaining: int32(len(records)), cancel: cancel},
		classifier.DefaultConfidenceThreshold, logging.NewNop(), nil)
	bp := NewBatchProcessor(engine, 1, 0, logging.NewNop(), nil)

	result, err := bp.Process(ctx, records, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Results) != len(records) {
		t.Fatalf("expected all %d items evaluated, got %d", len(records), len(result.Results))
	}
	if result.Truncated {
		t.Error("a fully evaluated batch must not be flagged truncated")
	}
}

func TestBatchProcessor_DuplicateContentKeepsSources(t *testing.T) {
	bp := newTestProcessor(t, 4)
	records := []domain.ContentRecord{
		{Source: "who-don", Content: "Local hospitals have reported an outbreak of cholera"},
		{Source: "local-news", Content: "Local hospitals have reported an outbreak of cholera"},
	}

	result, err := bp.Process(context.Background(), records, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(result.Results))
	}

	for i, res := range result.Results {
		if res.Source != records[i].Source {
			t.Errorf("result %d: source %q, want %q", i, res.Source, records[i].Source)
		}
	}
}

func TestBatchProcessor_NilLogger(t *testing.T) {
	engine := classifier.NewEngine(
		classifier.NewKeywordClassifier(classifier.DefaultKeywordConfig(), nil),
		nil, classifier.DefaultConfidenceThreshold, logging.NewNop(), nil)
	bp := NewBatchProcessor(engine, 2, 0, nil, nil)

	result, err := bp.Process(context.Background(), makeRecords(4), nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Results) != 4 {
		t.Errorf("expected 4 results, got %d", len(result.Results))
	}
}

func TestBatchProcessor_FeedbackApplied(t *testing.T) {
	bp := newTestProcessor(t, 4)
	records := []domain.ContentRecord{
		{Source: "feed", Content: "Local hospitals have reported an outbreak of cholera"},
		{Source: "feed", Content: "Routine screening finds no new infections"},
	}
	feedback := []domain.FeedbackEntry{
		{Content: records[0].Content, UserFeedback: "moderate"},
		{Content: "unrelated", UserFeedback: "not-a-level"},
	}

	result, err := bp.Process(context.Background(), records, feedback)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(result.Results))
	}

	first := result.Results[0]
	if first.Risk != domain.RiskModerate || !first.FeedbackApplied || first.Confidence != 1.0 {
		t.Errorf("feedback not applied correctly: %+v", first)
	}
	if result.Results[1].FeedbackApplied {
		t.Errorf("feedback wrongly applied to second record: %+v", result.Results[1])
	}
}

func TestBatchProcessor_ThrottledStillCompletes(t *testing.T) {
	trainerless := classifier.NewEngine(
		classifier.NewKeywordClassifier(classifier.DefaultKeywordConfig(), nil),
		nil, classifier.DefaultConfidenceThreshold, logging.NewNop(), nil)
	bp := NewBatchProcessor(trainerless, 4, 1000, logging.NewNop(), nil)

	result, err := bp.Process(context.Background(), makeRecords(10), nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Results) != 10 || result.Truncated {
		t.Errorf("throttled batch incomplete: %d results, truncated=%v",
			len(result.Results), result.Truncated)
	}
}
