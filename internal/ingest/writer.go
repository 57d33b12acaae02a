package ingest

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/healthwatch/riskengine/internal/domain"
)

// outputResult is the persistence-boundary shape of a classification
// result. Risk serializes as the capitalized level name.
type outputResult struct {
	Content         string           `json:"content"`
	Risk            domain.RiskLevel `json:"risk"`
	Confidence      float64          `json:"confidence"`
	FeedbackApplied bool             `json:"feedback_applied"`
}

// WriteResults encodes the batch results as a single JSON array.
func WriteResults(w io.Writer, results []domain.ClassificationResult) error {
	out := make([]outputResult, len(results))
	for i, r := range results {
		out[i] = outputResult{
			Content:         r.Content,
			Risk:            r.Risk,
			Confidence:      r.Confidence,
			FeedbackApplied: r.FeedbackApplied,
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode classification results: %w", err)
	}
	return nil
}
