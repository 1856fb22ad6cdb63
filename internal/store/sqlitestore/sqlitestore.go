package sqlitestore

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database holding imported corpora and run summaries.
type DB struct{ sql *sql.DB }

func Open(path string) (*DB, error) {
	d, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(err, "open sqlite")
	}
	// one connection keeps ":memory:" databases shared across queries
	d.SetMaxOpenConns(1)
	if _, err := d.Exec(`PRAGMA journal_mode=WAL; PRAGMA synchronous=NORMAL;`); err != nil {
		_ = d.Close()
		return nil, errors.Wrap(err, "sqlite pragmas")
	}
	db := &DB{sql: d}
	if err := db.migrate(); err != nil {
		_ = d.Close()
		return nil, errors.Wrap(err, "migrate")
	}
	return db, nil
}

func (d *DB) Close() error { return d.sql.Close() }

func (d *DB) migrate() error {
	_, err := d.sql.Exec(`
	CREATE TABLE IF NOT EXISTS documents (
	  id INTEGER PRIMARY KEY AUTOINCREMENT,
	  body TEXT NOT NULL,
	  label TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS runs (
	  id TEXT PRIMARY KEY,
	  started_at INTEGER NOT NULL,
	  finished_at INTEGER NOT NULL,
	  epochs INTEGER NOT NULL,
	  vocabulary_size INTEGER NOT NULL,
	  hidden_nodes INTEGER NOT NULL,
	  learning_rate REAL NOT NULL,
	  min_count INTEGER NOT NULL,
	  polarity_cutoff REAL NOT NULL,
	  train_accuracy REAL NOT NULL,
	  test_accuracy REAL,
	  meta TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);
	`)
	return err
}

// ReplaceDocuments swaps the stored corpus for docs/labels in one transaction.
func (d *DB) ReplaceDocuments(ctx context.Context, docs, labels []string) error {
	if len(docs) != len(labels) {
		return errors.Errorf("%d documents, %d labels", len(docs), len(labels))
	}
	tx, err := d.sql.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()
	if _, err := tx.ExecContext(ctx, `DELETE FROM documents`); err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO documents(body, label) VALUES(?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for i := range docs {
		if _, err := stmt.ExecContext(ctx, docs[i], labels[i]); err != nil {
			return errors.Wrapf(err, "insert document %d", i)
		}
	}
	return tx.Commit()
}

// LoadDocuments returns the stored corpus in insertion order.
func (d *DB) LoadDocuments(ctx context.Context) ([]string, []string, error) {
	rows, err := d.sql.QueryContext(ctx, `SELECT body, label FROM documents ORDER BY id`)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()
	var docs, labels []string
	for rows.Next() {
		var body, label string
		if err := rows.Scan(&body, &label); err != nil {
			return nil, nil, err
		}
		docs = append(docs, body)
		labels = append(labels, label)
	}
	return docs, labels, rows.Err()
}

func (d *DB) CountDocuments(ctx context.Context) (int, error) {
	var n int
	err := d.sql.QueryRowContext(ctx, `SELECT COUNT(*) FROM documents`).Scan(&n)
	return n, err
}

// Run summarises one train/evaluate session. Weights are not stored.
type Run struct {
	ID             string
	StartedAt      time.Time
	FinishedAt     time.Time
	Epochs         int
	VocabularySize int
	HiddenNodes    int
	LearningRate   float64
	MinCount       int
	PolarityCutoff float64
	TrainAccuracy  float64
	// nil when no holdout was evaluated
	TestAccuracy *float64
	Meta         map[string]any
}

// PutRun stores r, assigning an ID when it has none.
func (d *DB) PutRun(ctx context.Context, r *Run) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	var mstr *string
	if r.Meta != nil {
		mb, err := json.Marshal(r.Meta)
		if err != nil {
			return errors.Wrap(err, "encode run meta")
		}
		ms := string(mb)
		mstr = &ms
	}
	_, err := d.sql.ExecContext(ctx, `INSERT INTO runs(id, started_at, finished_at, epochs, vocabulary_size, hidden_nodes,
		learning_rate, min_count, polarity_cutoff, train_accuracy, test_accuracy, meta) VALUES(?,?,?,?,?,?,?,?,?,?,?,?)`,
		r.ID, r.StartedAt.UnixNano(), r.FinishedAt.UnixNano(), r.Epochs, r.VocabularySize, r.HiddenNodes,
		r.LearningRate, r.MinCount, r.PolarityCutoff, r.TrainAccuracy, r.TestAccuracy, mstr)
	return err
}

// ListRuns returns up to limit runs, newest first.
func (d *DB) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := d.sql.QueryContext(ctx, `SELECT id, started_at, finished_at, epochs, vocabulary_size, hidden_nodes,
		learning_rate, min_count, polarity_cutoff, train_accuracy, test_accuracy, meta
		FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Run
	for rows.Next() {
		var r Run
		var started, finished int64
		var test sql.NullFloat64
		var meta sql.NullString
		if err := rows.Scan(&r.ID, &started, &finished, &r.Epochs, &r.VocabularySize, &r.HiddenNodes,
			&r.LearningRate, &r.MinCount, &r.PolarityCutoff, &r.TrainAccuracy, &test, &meta); err != nil {
			return nil, err
		}
		r.StartedAt = time.Unix(0, started).UTC()
		r.FinishedAt = time.Unix(0, finished).UTC()
		if test.Valid {
			v := test.Float64
			r.TestAccuracy = &v
		}
		if meta.Valid {
			if err := json.Unmarshal([]byte(meta.String), &r.Meta); err != nil {
				return nil, errors.Wrapf(err, "decode meta of run %s", r.ID)
			}
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
