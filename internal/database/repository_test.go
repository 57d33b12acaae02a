package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthwatch/riskengine/internal/domain"
	"github.com/healthwatch/riskengine/internal/logging"
)

func openTestDB(t *testing.T) *ResultsRepository {
	t.Helper()
	db, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewResultsRepository(db)
}

func TestResultsRepository_SaveAndList(t *testing.T) {
	repo := openTestDB(t)
	ctx := context.Background()

	results := []domain.ClassificationResult{
		{
			Content:      "Outbreak in the delta",
			Source:       "who-don",
			Risk:         domain.RiskHigh,
			Confidence:   0.9,
			SourceSignal: domain.SignalModel,
		},
		{
			Content:         "Quiet week at the clinic",
			Source:          "local-news",
			Risk:            domain.RiskLow,
			Confidence:      1.0,
			FeedbackApplied: true,
			SourceSignal:    domain.SignalFeedback,
		},
	}
	require.NoError(t, repo.SaveBatch(ctx, results))

	rows, err := repo.ListRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	byContent := map[string]StoredResult{}
	for _, r := range rows {
		byContent[r.Content] = r
	}
	high := byContent["Outbreak in the delta"]
	assert.Equal(t, "High", high.Risk)
	assert.Equal(t, "who-don", high.Source)
	assert.False(t, high.FeedbackApplied)

	low := byContent["Quiet week at the clinic"]
	assert.Equal(t, "feedback", low.SourceSignal)
	assert.True(t, low.FeedbackApplied)
}

func TestResultsRepository_SaveEmptyBatch(t *testing.T) {
	repo := openTestDB(t)
	require.NoError(t, repo.SaveBatch(context.Background(), nil))
}

func TestResultsRepository_CountBySignal(t *testing.T) {
	repo := openTestDB(t)
	ctx := context.Background()

	require.NoError(t, repo.SaveBatch(ctx, []domain.ClassificationResult{
		{Content: "a", Risk: domain.RiskLow, SourceSignal: domain.SignalKeyword},
		{Content: "b", Risk: domain.RiskLow, SourceSignal: domain.SignalKeyword},
		{Content: "c", Risk: domain.RiskHigh, SourceSignal: domain.SignalModel},
	}))

	counts, err := repo.CountBySignal(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, counts["keyword"])
	assert.Equal(t, 1, counts["model"])
}

func TestTrainingRepository_AddListCount(t *testing.T) {
	db, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := NewTrainingRepository(db, logging.NewNop())
	ctx := context.Background()

	require.NoError(t, repo.Add(ctx, domain.TrainingExample{
		Content: "outbreak spreading", Label: domain.RiskHigh,
	}))
	require.NoError(t, repo.Add(ctx, domain.TrainingExample{
		Content: "routine screening", Label: domain.RiskLow,
	}))

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	examples, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, examples, 2)
	assert.Equal(t, domain.RiskHigh, examples[0].Label)
	assert.Equal(t, domain.RiskLow, examples[1].Label)
}

func TestTrainingRepository_SkipsInvalidLabels(t *testing.T) {
	db, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := NewTrainingRepository(db, logging.NewNop())
	ctx := context.Background()

	require.NoError(t, repo.Add(ctx, domain.TrainingExample{
		Content: "valid", Label: domain.RiskModerate,
	}))
	// Bypass Add to simulate a row written by an older schema.
	_, err = db.Exec(`INSERT INTO training_examples (id, content, label, added_at)
		VALUES ('x', 'broken', 'catastrophic', CURRENT_TIMESTAMP)`)
	require.NoError(t, err)

	examples, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, examples, 1)
	assert.Equal(t, "valid", examples[0].Content)
}
