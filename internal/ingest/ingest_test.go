package ingest

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthwatch/riskengine/internal/domain"
)

func TestReadRecords(t *testing.T) {
	input := `[
		{"source": "who-don", "headline": "Cholera update", "content": "Outbreak reported in the delta region", "timestamp": "2026-08-01T12:00:00Z"},
		{"source": "local-news", "headline": "", "content": "Routine screening week", "timestamp": "2026-08-02T08:30:00Z",
		 "geo_context": {"region": "delta", "country": "BD", "risk_factor": "flooding"}}
	]`

	records, err := ReadRecords(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "who-don", records[0].Source)
	assert.Equal(t, "Outbreak reported in the delta region", records[0].Content)
	assert.Nil(t, records[0].GeoContext)

	require.NotNil(t, records[1].GeoContext)
	assert.Equal(t, "delta", records[1].GeoContext.Region)
	assert.Equal(t, "flooding", records[1].GeoContext.RiskFactor)
}

func TestReadRecords_Malformed(t *testing.T) {
	_, err := ReadRecords(strings.NewReader(`{"not": "an array"}`))
	assert.Error(t, err)
}

func TestReadFeedback_KeepsRawLabels(t *testing.T) {
	input := `[
		{"content": "some report", "user_feedback": "HIGH"},
		{"content": "other report", "user_feedback": "bogus"}
	]`

	entries, err := ReadFeedback(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Labels are validated later, at index build; the decode keeps both.
	assert.Equal(t, "HIGH", entries[0].UserFeedback)
	assert.Equal(t, "bogus", entries[1].UserFeedback)
}

func TestWriteResults(t *testing.T) {
	results := []domain.ClassificationResult{
		{
			Content:         "Outbreak reported",
			Risk:            domain.RiskHigh,
			Confidence:      0.92,
			FeedbackApplied: false,
			SourceSignal:    domain.SignalModel,
			MatchedKeyword:  "outbreak",
		},
		{
			Content:         "Quiet week",
			Risk:            domain.RiskLow,
			Confidence:      1.0,
			FeedbackApplied: true,
			SourceSignal:    domain.SignalFeedback,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteResults(&buf, results))

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)

	assert.Equal(t, "High", decoded[0]["risk"])
	assert.Equal(t, "Low", decoded[1]["risk"])
	assert.Equal(t, true, decoded[1]["feedback_applied"])

	// The boundary shape is exactly four fields.
	assert.Len(t, decoded[0], 4)
	assert.NotContains(t, decoded[0], "matched_keyword")
}

func TestWriteResults_EmptyBatch(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteResults(&buf, nil))
	assert.JSONEq(t, `[]`, buf.String())
}
