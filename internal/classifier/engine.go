package classifier

import (
	"context"
	"sync/atomic"

	"github.com/healthwatch/riskengine/internal/domain"
	"github.com/healthwatch/riskengine/internal/logging"
	"github.com/healthwatch/riskengine/internal/telemetry"
	"github.com/healthwatch/riskengine/internal/textnorm"
)

// DefaultConfidenceThreshold is the minimum model confidence at which the
// model's opinion wins over the keyword rule.
const DefaultConfidenceThreshold = 0.7

// ModelPredictor is the statistical signal source as the engine sees it.
// *TrainedModel implements it; tests substitute their own.
type ModelPredictor interface {
	Predict(text string) (domain.RiskLevel, float64, error)
}

// modelBox gives atomic.Value a single concrete type to hold.
type modelBox struct {
	predictor ModelPredictor
}

// Engine sequences the classification signals for a single content record
// and owns the reconciliation policy. The trained model is held behind an
// atomic value: training completes fully before the artifact is
// published, and retraining swaps in a new artifact without touching one
// that inferences may still be reading.
type Engine struct {
	keyword   *KeywordClassifier
	model     atomic.Value // holds *modelBox
	threshold float64
	logger    logging.Logger
	telemetry *telemetry.Provider
}

// NewEngine creates an engine with the given signal sources. model may be
// nil; inference then degrades to the keyword signal until SetModel is
// called.
func NewEngine(
	keyword *KeywordClassifier,
	model ModelPredictor,
	threshold float64,
	logger logging.Logger,
	tp *telemetry.Provider,
) *Engine {
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultConfidenceThreshold
	}
	e := &Engine{
		keyword:   keyword,
		threshold: threshold,
		logger:    logger,
		telemetry: tp,
	}
	e.model.Store(&modelBox{predictor: model})
	return e
}

// SetModel atomically publishes a new trained model. In-flight inferences
// keep using the artifact they loaded; subsequent ones see the new model.
func (e *Engine) SetModel(m ModelPredictor) {
	e.model.Store(&modelBox{predictor: m})
	if e.logger != nil && m != nil {
		if tm, ok := m.(*TrainedModel); ok {
			e.logger.Info("model published",
				logging.Float64("cv_accuracy", tm.CVAccuracy()),
				logging.Time("trained_at", tm.TrainedAt()))
		} else {
			e.logger.Info("model published")
		}
	}
}

// Model returns the currently published model, or nil.
func (e *Engine) Model() ModelPredictor {
	box, _ := e.model.Load().(*modelBox)
	if box == nil {
		return nil
	}
	return box.predictor
}

// Classify produces the final classification for one record: normalize,
// compute the keyword and model signals, reconcile, then apply any
// matching feedback override as the authoritative last step.
//
// Reconciliation policy: the model's label wins when its confidence is at
// or above the threshold; otherwise the deterministic keyword level wins
// and the model's low-confidence opinion is discarded (its confidence is
// still reported). A failed inference is a recoverable case: it degrades
// to (Low, 0) on the model side, which forces the keyword branch to win.
func (e *Engine) Classify(ctx context.Context, record domain.ContentRecord, feedback *FeedbackIndex) domain.ClassificationResult {
	normalized := textnorm.Normalize(record.Content)

	keywordLevel, matched := e.keyword.Classify(normalized)

	modelLevel := domain.RiskLow
	modelConfidence := 0.0
	if m := e.Model(); m != nil {
		level, conf, err := m.Predict(record.Content)
		if err != nil {
			e.telemetry.RecordInferenceFailure()
			if e.logger != nil {
				e.logger.Warn("model inference failed, degrading to keyword signal",
					logging.String("source", record.Source),
					logging.Error(err))
			}
		} else {
			modelLevel, modelConfidence = level, conf
		}
	}

	result := domain.ClassificationResult{Content: record.Content, Source: record.Source}
	if modelConfidence >= e.threshold {
		result.Risk = modelLevel
		result.Confidence = modelConfidence
		result.SourceSignal = domain.SignalModel
	} else {
		result.Risk = keywordLevel
		result.Confidence = modelConfidence
		result.SourceSignal = domain.SignalKeyword
		result.MatchedKeyword = matched
	}

	result = feedback.Resolve(record.Content, result)

	e.telemetry.RecordClassification(result.Risk.String(), string(result.SourceSignal), result.FeedbackApplied)
	return result
}

// Threshold returns the reconciliation confidence threshold.
func (e *Engine) Threshold() float64 { return e.threshold }
