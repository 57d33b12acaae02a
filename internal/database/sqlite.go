// Package database is the persistence collaborator: an embedded SQLite
// store for classification results and labeled training examples. The
// decision core never touches it; results are handed over after a batch.
package database

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // sqlite3 driver
)

const schema = `
CREATE TABLE IF NOT EXISTS classification_results (
	id               TEXT PRIMARY KEY,
	content          TEXT NOT NULL,
	source           TEXT NOT NULL DEFAULT '',
	risk             TEXT NOT NULL,
	confidence       REAL NOT NULL,
	feedback_applied INTEGER NOT NULL,
	source_signal    TEXT NOT NULL,
	matched_keyword  TEXT NOT NULL DEFAULT '',
	classified_at    TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_results_classified_at
	ON classification_results (classified_at DESC);

CREATE TABLE IF NOT EXISTS training_examples (
	id       TEXT PRIMARY KEY,
	content  TEXT NOT NULL,
	label    TEXT NOT NULL,
	added_at TIMESTAMP NOT NULL
);
`

// Open opens (or creates) the SQLite database at path and applies the
// schema.
func Open(path string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return db, nil
}
