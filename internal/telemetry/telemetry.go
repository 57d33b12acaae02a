// Package telemetry provides Prometheus metrics and OpenTelemetry tracing
// for the risk engine.
package telemetry

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "riskengine"

// Metrics holds all risk engine Prometheus metrics.
type Metrics struct {
	// Classification outcomes
	DocumentsClassified *prometheus.CounterVec
	FeedbackOverrides   prometheus.Counter
	InferenceFailures   prometheus.Counter
	MalformedFeedback   prometheus.Counter

	// Batch processing
	BatchDuration    prometheus.Histogram
	BatchSize        prometheus.Histogram
	BatchesTruncated prometheus.Counter

	// Model lifecycle
	TrainingDuration prometheus.Histogram
	ModelCVAccuracy  prometheus.Gauge
}

// Provider wraps the telemetry handles shared across packages.
type Provider struct {
	Tracer  trace.Tracer
	Metrics *Metrics
}

// NewProvider initializes telemetry with Prometheus metrics.
func NewProvider() *Provider {
	return &Provider{
		Tracer:  otel.Tracer(serviceName),
		Metrics: initMetrics(),
	}
}

// Handler returns the Prometheus HTTP handler for the /metrics endpoint.
func (p *Provider) Handler() http.Handler {
	return promhttp.Handler()
}

// RecordClassification counts one final classification outcome.
func (p *Provider) RecordClassification(risk, signal string, feedbackApplied bool) {
	if p == nil {
		return
	}
	p.Metrics.DocumentsClassified.WithLabelValues(risk, signal).Inc()
	if feedbackApplied {
		p.Metrics.FeedbackOverrides.Inc()
	}
}

// RecordInferenceFailure counts one recoverable model inference failure.
func (p *Provider) RecordInferenceFailure() {
	if p == nil {
		return
	}
	p.Metrics.InferenceFailures.Inc()
}

// RecordMalformedFeedback counts feedback entries dropped during index build.
func (p *Provider) RecordMalformedFeedback(n int) {
	if p == nil || n == 0 {
		return
	}
	p.Metrics.MalformedFeedback.Add(float64(n))
}

// RecordBatch records the size and duration of one batch run.
func (p *Provider) RecordBatch(size int, duration time.Duration, truncated bool) {
	if p == nil {
		return
	}
	p.Metrics.BatchSize.Observe(float64(size))
	p.Metrics.BatchDuration.Observe(duration.Seconds())
	if truncated {
		p.Metrics.BatchesTruncated.Inc()
	}
}

// RecordTraining records one model training run.
func (p *Provider) RecordTraining(duration time.Duration, cvAccuracy float64) {
	if p == nil {
		return
	}
	p.Metrics.TrainingDuration.Observe(duration.Seconds())
	p.Metrics.ModelCVAccuracy.Set(cvAccuracy)
}

func initMetrics() *Metrics {
	return &Metrics{
		DocumentsClassified: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "riskengine_documents_classified_total",
			Help: "Final classifications by risk level and winning signal",
		}, []string{"risk", "signal"}),

		FeedbackOverrides: promauto.NewCounter(prometheus.CounterOpts{
			Name: "riskengine_feedback_overrides_total",
			Help: "Classifications overridden by a human feedback entry",
		}),

		InferenceFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "riskengine_inference_failures_total",
			Help: "Recoverable model inference failures degraded to the keyword signal",
		}),

		MalformedFeedback: promauto.NewCounter(prometheus.CounterOpts{
			Name: "riskengine_malformed_feedback_total",
			Help: "Feedback entries skipped because the label is not a valid risk level",
		}),

		BatchDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "riskengine_batch_duration_seconds",
			Help:    "Time to classify one batch",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0, 10.0},
		}),

		BatchSize: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "riskengine_batch_size",
			Help:    "Number of records per batch",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		}),

		BatchesTruncated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "riskengine_batches_truncated_total",
			Help: "Batches cancelled before all items were evaluated",
		}),

		TrainingDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "riskengine_training_duration_seconds",
			Help:    "Time to train one model artifact",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1.0, 5.0, 30.0, 120.0},
		}),

		ModelCVAccuracy: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "riskengine_model_cv_accuracy",
			Help: "Cross-validated accuracy of the current model (diagnostic)",
		}),
	}
}
