// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists extracted questions in a SQLite question bank
// with a full-text index over question stems.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"

	"github.com/oakla/question-maker/pkg/types"
)

const (
	dbFile            = "questions.db"
	defaultMaxResults = 20
)

// Store manages the question bank database.
type Store struct {
	db         *sql.DB
	maxResults int

	// fts is false when the sqlite3 driver was built without FTS5;
	// text queries then fall back to LIKE matching.
	fts bool
}

// NewStore opens or creates dir/questions.db and its schema.
func NewStore(cfg types.StoreConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating store directory: %w", err)
	}

	dbPath := filepath.Join(cfg.Dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	s := &Store{db: db, maxResults: maxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS documents (
			id TEXT PRIMARY KEY,
			source TEXT NOT NULL,
			content_length INTEGER NOT NULL,
			created_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS questions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			document_id TEXT NOT NULL REFERENCES documents(id) ON DELETE CASCADE,
			seq INTEGER NOT NULL,
			text TEXT NOT NULL,
			start_offset INTEGER NOT NULL,
			end_offset INTEGER NOT NULL,
			UNIQUE (document_id, seq)
		)`,
		`CREATE TABLE IF NOT EXISTS options (
			question_id INTEGER NOT NULL REFERENCES questions(id) ON DELETE CASCADE,
			label TEXT NOT NULL,
			text TEXT NOT NULL,
			PRIMARY KEY (question_id, label)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_questions_document_id ON questions(document_id)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='questions_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}
	if ftsExists > 0 {
		s.fts = true
		return nil
	}

	ftsStatements := []string{
		`CREATE VIRTUAL TABLE questions_fts USING fts5(text, content=questions, content_rowid=id)`,
		`CREATE TRIGGER questions_ai AFTER INSERT ON questions BEGIN
			INSERT INTO questions_fts(rowid, text) VALUES (new.id, new.text);
		END`,
		`CREATE TRIGGER questions_ad AFTER DELETE ON questions BEGIN
			INSERT INTO questions_fts(questions_fts, rowid, text) VALUES('delete', old.id, old.text);
		END`,
		`CREATE TRIGGER questions_au AFTER UPDATE ON questions BEGIN
			INSERT INTO questions_fts(questions_fts, rowid, text) VALUES('delete', old.id, old.text);
			INSERT INTO questions_fts(rowid, text) VALUES (new.id, new.text);
		END`,
	}
	if _, err := s.db.Exec(ftsStatements[0]); err != nil {
		log.Warn().Err(err).Msg("FTS5 unavailable, text queries use LIKE matching")
		return nil
	}
	for _, stmt := range ftsStatements[1:] {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("creating FTS infrastructure: %w", err)
		}
	}
	s.fts = true
	return nil
}

// Save stores the document's questions under a new document ID in one
// transaction. Documents without a multiple-choice result are stored
// with zero questions.
func (s *Store) Save(ctx context.Context, doc *types.Document) (string, error) {
	id := uuid.NewString()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	created := doc.Timestamp
	if created.IsZero() {
		created = time.Now()
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO documents (id, source, content_length, created_at) VALUES (?, ?, ?, ?)`,
		id, doc.Source, utf8.RuneCountInString(doc.Content), created.UTC().Format(time.RFC3339Nano),
	); err != nil {
		return "", fmt.Errorf("inserting document: %w", err)
	}

	qStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO questions (document_id, seq, text, start_offset, end_offset) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("preparing question insert: %w", err)
	}
	defer qStmt.Close()

	oStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO options (question_id, label, text) VALUES (?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("preparing option insert: %w", err)
	}
	defer oStmt.Close()

	for _, q := range doc.Questions() {
		res, err := qStmt.ExecContext(ctx, id, q.SequenceNumber, q.Text, q.StartOffset, q.EndOffset)
		if err != nil {
			return "", fmt.Errorf("inserting question %d: %w", q.SequenceNumber, err)
		}
		qid, err := res.LastInsertId()
		if err != nil {
			return "", fmt.Errorf("reading question id: %w", err)
		}
		for _, label := range q.Labels() {
			if _, err := oStmt.ExecContext(ctx, qid, label, q.Options[label]); err != nil {
				return "", fmt.Errorf("inserting option %s of question %d: %w", label, q.SequenceNumber, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing transaction: %w", err)
	}
	log.Debug().Str("id", id).Str("source", doc.Source).Int("questions", len(doc.Questions())).Msg("document stored")
	return id, nil
}

// DocumentSummary describes one stored document.
type DocumentSummary struct {
	ID            string    `json:"id" yaml:"id"`
	Source        string    `json:"source" yaml:"source"`
	ContentLength int       `json:"content_length" yaml:"content_length"`
	QuestionCount int       `json:"question_count" yaml:"question_count"`
	CreatedAt     time.Time `json:"created_at" yaml:"created_at"`
}

// Documents lists stored documents, oldest first.
func (s *Store) Documents(ctx context.Context) ([]DocumentSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT d.id, d.source, d.content_length, d.created_at, count(q.id)
		FROM documents d
		LEFT JOIN questions q ON q.document_id = d.id
		GROUP BY d.id
		ORDER BY d.created_at, d.id`)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	defer rows.Close()

	var docs []DocumentSummary
	for rows.Next() {
		var (
			d       DocumentSummary
			created string
		)
		if err := rows.Scan(&d.ID, &d.Source, &d.ContentLength, &created, &d.QuestionCount); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		d.CreatedAt, _ = time.Parse(time.RFC3339Nano, created)
		docs = append(docs, d)
	}
	return docs, rows.Err()
}
