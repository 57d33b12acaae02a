// Package ingest is the in-memory data boundary of the engine: JSON
// decoding for incoming content records and feedback entries, and JSON
// encoding for outgoing classification results.
package ingest

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/healthwatch/riskengine/internal/domain"
)

// ReadRecords decodes a JSON array of content records.
func ReadRecords(r io.Reader) ([]domain.ContentRecord, error) {
	var records []domain.ContentRecord
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode content records: %w", err)
	}
	return records, nil
}

// ReadRecordsFile decodes a JSON array of content records from a file.
func ReadRecordsFile(path string) ([]domain.ContentRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open records file %s: %w", path, err)
	}
	defer f.Close()
	return ReadRecords(f)
}

// ReadFeedback decodes a JSON array of feedback entries. Labels are left
// as raw strings here; validation happens when the feedback index is
// built, so one malformed entry cannot fail the decode.
func ReadFeedback(r io.Reader) ([]domain.FeedbackEntry, error) {
	var entries []domain.FeedbackEntry
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decode feedback entries: %w", err)
	}
	return entries, nil
}

// ReadFeedbackFile decodes a JSON array of feedback entries from a file.
func ReadFeedbackFile(path string) ([]domain.FeedbackEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open feedback file %s: %w", path, err)
	}
	defer f.Close()
	return ReadFeedback(f)
}
