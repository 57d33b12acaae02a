package database

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/healthwatch/riskengine/internal/domain"
)

// StoredResult is a persisted classification result row.
type StoredResult struct {
	ID              string    `db:"id"`
	Content         string    `db:"content"`
	Source          string    `db:"source"`
	Risk            string    `db:"risk"`
	Confidence      float64   `db:"confidence"`
	FeedbackApplied bool      `db:"feedback_applied"`
	SourceSignal    string    `db:"source_signal"`
	MatchedKeyword  string    `db:"matched_keyword"`
	ClassifiedAt    time.Time `db:"classified_at"`
}

// ResultsRepository handles database operations for classification results.
type ResultsRepository struct {
	db *sqlx.DB
}

// NewResultsRepository creates a results repository.
func NewResultsRepository(db *sqlx.DB) *ResultsRepository {
	return &ResultsRepository{db: db}
}

// SaveBatch persists one batch of results in a single transaction. Each
// result carries its originating record's source.
func (r *ResultsRepository) SaveBatch(ctx context.Context, results []domain.ClassificationResult) error {
	if len(results) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin results transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	const query = `
		INSERT INTO classification_results (
			id, content, source, risk, confidence,
			feedback_applied, source_signal, matched_keyword, classified_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	now := time.Now().UTC()
	for _, res := range results {
		if _, err := tx.ExecContext(ctx, query,
			uuid.NewString(),
			res.Content,
			res.Source,
			res.Risk.String(),
			res.Confidence,
			res.FeedbackApplied,
			string(res.SourceSignal),
			res.MatchedKeyword,
			now,
		); err != nil {
			return fmt.Errorf("insert classification result: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit results transaction: %w", err)
	}
	return nil
}

// ListRecent returns the most recent results, newest first.
func (r *ResultsRepository) ListRecent(ctx context.Context, limit int) ([]StoredResult, error) {
	if limit <= 0 {
		limit = 100
	}
	const query = `
		SELECT id, content, source, risk, confidence,
		       feedback_applied, source_signal, matched_keyword, classified_at
		FROM classification_results
		ORDER BY classified_at DESC
		LIMIT ?
	`

	var rows []StoredResult
	if err := r.db.SelectContext(ctx, &rows, query, limit); err != nil {
		return nil, fmt.Errorf("list recent results: %w", err)
	}
	return rows, nil
}

// CountBySignal returns result counts grouped by winning signal.
func (r *ResultsRepository) CountBySignal(ctx context.Context) (map[string]int, error) {
	const query = `
		SELECT source_signal, COUNT(*) AS n
		FROM classification_results
		GROUP BY source_signal
	`

	rows, err := r.db.QueryxContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("count results by signal: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var signal string
		var n int
		if err := rows.Scan(&signal, &n); err != nil {
			return nil, fmt.Errorf("scan signal count: %w", err)
		}
		counts[signal] = n
	}
	return counts, rows.Err()
}
