// Command riskengine classifies batches of health reports: it trains (or
// reuses) the statistical risk model, runs the keyword + model + feedback
// pipeline over a JSON batch, writes the results as JSON and persists them
// to the embedded store.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/healthwatch/riskengine/internal/classifier"
	"github.com/healthwatch/riskengine/internal/config"
	"github.com/healthwatch/riskengine/internal/database"
	"github.com/healthwatch/riskengine/internal/domain"
	"github.com/healthwatch/riskengine/internal/ingest"
	"github.com/healthwatch/riskengine/internal/logging"
	"github.com/healthwatch/riskengine/internal/processor"
	"github.com/healthwatch/riskengine/internal/telemetry"
)

const metricsReadHeaderTimeout = 5 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "riskengine: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configPath   = flag.String("config", config.Path("config.yml"), "path to config file")
		recordsPath  = flag.String("records", "", "path to JSON array of content records (required)")
		feedbackPath = flag.String("feedback", "", "path to JSON array of feedback entries (optional)")
		outPath      = flag.String("out", "-", "output path for results JSON, '-' for stdout")
		serveMetrics = flag.Bool("metrics", false, "keep serving /metrics after the batch completes")
	)
	flag.Parse()

	if *recordsPath == "" {
		return fmt.Errorf("-records is required")
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck // stdout sync errors are harmless

	logger.Info("starting risk engine",
		logging.String("version", cfg.Service.Version),
		logging.String("database", cfg.Database.Path))

	tp := telemetry.NewProvider()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	resultsRepo := database.NewResultsRepository(db)
	trainingRepo := database.NewTrainingRepository(db, logger)

	model, err := trainModel(ctx, cfg, trainingRepo, logger, tp)
	if err != nil {
		return err
	}

	keywordCfg := classifier.KeywordConfigFromLists(
		cfg.Classification.Keywords.High,
		cfg.Classification.Keywords.Moderate,
		cfg.Classification.Keywords.Low,
	)
	keyword := classifier.NewKeywordClassifier(keywordCfg, logger)

	engine := classifier.NewEngine(keyword, model, cfg.Classification.ConfidenceThreshold, logger, tp)
	batch := processor.NewBatchProcessor(engine, cfg.Service.Concurrency, cfg.Service.ItemsPerSecond, logger, tp)

	metricsSrv := startMetricsServer(cfg.Service.MetricsPort, tp, logger)
	defer shutdownMetricsServer(metricsSrv, logger)

	records, err := ingest.ReadRecordsFile(*recordsPath)
	if err != nil {
		return err
	}

	var feedback []domain.FeedbackEntry
	if *feedbackPath != "" {
		feedback, err = ingest.ReadFeedbackFile(*feedbackPath)
		if err != nil {
			return err
		}
	}

	result, err := batch.Process(ctx, records, feedback)
	if err != nil {
		return fmt.Errorf("classify batch: %w", err)
	}

	if err := writeResults(*outPath, result.Results); err != nil {
		return err
	}

	if err := resultsRepo.SaveBatch(ctx, result.Results); err != nil {
		logger.Error("persisting results failed", logging.Error(err))
	}

	logger.Info("batch finished",
		logging.Int("records", len(records)),
		logging.Int("results", len(result.Results)),
		logging.Bool("truncated", result.Truncated))

	if *serveMetrics {
		<-ctx.Done()
	}
	return nil
}

func loadConfig(path string) (*config.Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return config.Default(), nil
	}
	return config.Load(path)
}

// trainModel fits a fresh model from stored training examples, falling
// back to the built-in seed corpus when the store is empty.
func trainModel(
	ctx context.Context,
	cfg *config.Config,
	repo *database.TrainingRepository,
	logger logging.Logger,
	tp *telemetry.Provider,
) (*classifier.TrainedModel, error) {
	examples, err := repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(examples) == 0 {
		examples = classifier.DefaultTrainingExamples()
		logger.Info("training store empty, using seed corpus",
			logging.Int("examples", len(examples)))
	}

	trainer := classifier.NewModelTrainer(classifier.ModelConfig{
		MaxVocabulary: cfg.Classification.Model.MaxVocabulary,
		Estimators:    cfg.Classification.Model.Estimators,
		CVFolds:       cfg.Classification.Model.CVFolds,
		Seed:          cfg.Classification.Model.Seed,
	}, logger)

	start := time.Now()
	model, err := trainer.Fit(examples)
	if err != nil {
		return nil, fmt.Errorf("train model: %w", err)
	}
	tp.RecordTraining(time.Since(start), model.CVAccuracy())
	return model, nil
}

func writeResults(path string, results []domain.ClassificationResult) error {
	if path == "-" {
		return ingest.WriteResults(os.Stdout, results)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file %s: %w", path, err)
	}
	defer f.Close()
	return ingest.WriteResults(f, results)
}

func startMetricsServer(port int, tp *telemetry.Provider, logger logging.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", tp.Handler())

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           mux,
		ReadHeaderTimeout: metricsReadHeaderTimeout,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Warn("metrics server stopped", logging.Error(err))
		}
	}()
	return srv
}

func shutdownMetricsServer(srv *http.Server, logger logging.Logger) {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("metrics server shutdown failed", logging.Error(err))
	}
}
