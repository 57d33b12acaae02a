package database

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/healthwatch/riskengine/internal/domain"
	"github.com/healthwatch/riskengine/internal/logging"
)

// TrainingRepository handles labeled training examples for the statistical
// model.
type TrainingRepository struct {
	db     *sqlx.DB
	logger logging.Logger
}

// NewTrainingRepository creates a training examples repository.
func NewTrainingRepository(db *sqlx.DB, logger logging.Logger) *TrainingRepository {
	return &TrainingRepository{db: db, logger: logger}
}

// List returns all stored training examples. Rows with labels outside the
// risk enumeration are skipped with a warning rather than failing the
// load.
func (r *TrainingRepository) List(ctx context.Context) ([]domain.TrainingExample, error) {
	const query = `SELECT content, label FROM training_examples ORDER BY added_at`

	rows, err := r.db.QueryxContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list training examples: %w", err)
	}
	defer rows.Close()

	var examples []domain.TrainingExample
	for rows.Next() {
		var content, label string
		if err := rows.Scan(&content, &label); err != nil {
			return nil, fmt.Errorf("scan training example: %w", err)
		}
		level, err := domain.ParseRiskLevel(label)
		if err != nil {
			if r.logger != nil {
				r.logger.Warn("skipping training example with invalid label",
					logging.String("label", label))
			}
			continue
		}
		examples = append(examples, domain.TrainingExample{Content: content, Label: level})
	}
	return examples, rows.Err()
}

// Add stores one labeled example.
func (r *TrainingRepository) Add(ctx context.Context, ex domain.TrainingExample) error {
	const query = `
		INSERT INTO training_examples (id, content, label, added_at)
		VALUES (?, ?, ?, ?)
	`
	if _, err := r.db.ExecContext(ctx, query,
		uuid.NewString(), ex.Content, ex.Label.String(), time.Now().UTC(),
	); err != nil {
		return fmt.Errorf("insert training example: %w", err)
	}
	return nil
}

// Count returns the number of stored examples.
func (r *TrainingRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM training_examples`); err != nil {
		return 0, fmt.Errorf("count training examples: %w", err)
	}
	return n, nil
}
