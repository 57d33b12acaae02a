package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRiskLevel_Ordering(t *testing.T) {
	assert.True(t, RiskLow < RiskModerate)
	assert.True(t, RiskModerate < RiskHigh)
}

func TestParseRiskLevel(t *testing.T) {
	tests := []struct {
		input string
		want  RiskLevel
		ok    bool
	}{
		{"Low", RiskLow, true},
		{"low", RiskLow, true},
		{"MODERATE", RiskModerate, true},
		{" high ", RiskHigh, true},
		{"hIgH", RiskHigh, true},
		{"", RiskLow, false},
		{"severe", RiskLow, false},
		{"lowish", RiskLow, false},
	}
	for _, tt := range tests {
		level, err := ParseRiskLevel(tt.input)
		if tt.ok {
			require.NoError(t, err, "input %q", tt.input)
			assert.Equal(t, tt.want, level, "input %q", tt.input)
		} else {
			assert.Error(t, err, "input %q", tt.input)
		}
	}
}

func TestRiskLevel_JSONRoundTrip(t *testing.T) {
	for _, level := range []RiskLevel{RiskLow, RiskModerate, RiskHigh} {
		data, err := json.Marshal(level)
		require.NoError(t, err)
		assert.Equal(t, `"`+level.String()+`"`, string(data))

		var parsed RiskLevel
		require.NoError(t, json.Unmarshal(data, &parsed))
		assert.Equal(t, level, parsed)
	}
}

func TestRiskLevel_MarshalInvalid(t *testing.T) {
	_, err := json.Marshal(RiskLevel(99))
	assert.Error(t, err)
}

func TestClassificationResult_JSONShape(t *testing.T) {
	result := ClassificationResult{
		Content:         "outbreak reported",
		Risk:            RiskHigh,
		Confidence:      0.91,
		FeedbackApplied: false,
		SourceSignal:    SignalModel,
	}

	data, err := json.Marshal(result)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "High", decoded["risk"])
	assert.Equal(t, "model", decoded["source_signal"])
	assert.Equal(t, false, decoded["feedback_applied"])
}
