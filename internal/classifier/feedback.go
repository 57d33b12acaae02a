package classifier

import (
	"crypto/sha256"

	"github.com/healthwatch/riskengine/internal/domain"
	"github.com/healthwatch/riskengine/internal/logging"
)

// Human assertions are maximally trusted.
const feedbackConfidence = 1.0

// FeedbackIndex is an immutable lookup of human-asserted labels, built
// once before a batch and read-only afterwards. Entries are keyed by a
// hash of the exact content string, which keeps exact-match semantics
// while leaving room to store hashes instead of raw text later.
type FeedbackIndex struct {
	byContent map[[sha256.Size]byte]domain.RiskLevel
	skipped   int
}

// NewFeedbackIndex builds an index from raw feedback entries. Entries
// whose label does not map to the RiskLevel enumeration are skipped with
// a warning; they never fail the batch.
func NewFeedbackIndex(entries []domain.FeedbackEntry, logger logging.Logger) *FeedbackIndex {
	idx := &FeedbackIndex{
		byContent: make(map[[sha256.Size]byte]domain.RiskLevel, len(entries)),
	}

	for _, e := range entries {
		level, err := domain.ParseRiskLevel(e.UserFeedback)
		if err != nil {
			idx.skipped++
			if logger != nil {
				logger.Warn("skipping malformed feedback entry",
					logging.String("user_feedback", e.UserFeedback),
					logging.Error(err))
			}
			continue
		}
		idx.byContent[sha256.Sum256([]byte(e.Content))] = level
	}

	return idx
}

// Len returns the number of usable entries.
func (f *FeedbackIndex) Len() int { return len(f.byContent) }

// Skipped returns how many malformed entries were dropped during build.
func (f *FeedbackIndex) Skipped() int { return f.skipped }

// Resolve applies a matching human assertion to the provisional result.
// On a match the asserted label replaces the provisional one
// unconditionally, confidence becomes 1.0 and the signal source becomes
// feedback. Without a match the provisional result passes through.
func (f *FeedbackIndex) Resolve(content string, provisional domain.ClassificationResult) domain.ClassificationResult {
	if f == nil || len(f.byContent) == 0 {
		return provisional
	}

	level, ok := f.byContent[sha256.Sum256([]byte(content))]
	if !ok {
		return provisional
	}

	provisional.Risk = level
	provisional.Confidence = feedbackConfidence
	provisional.FeedbackApplied = true
	provisional.SourceSignal = domain.SignalFeedback
	provisional.MatchedKeyword = ""
	return provisional
}
