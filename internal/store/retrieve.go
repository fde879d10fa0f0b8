// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/oakla/question-maker/pkg/types"
)

// QueryOptions holds parameters for question bank queries.
type QueryOptions struct {
	// Query is matched against question stems (FTS5 syntax when available).
	Query string

	// DocumentID restricts results to one stored document.
	DocumentID string

	// Label keeps only questions that have an option with this label.
	Label string

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// QueryResult is a stored question with its document context.
type QueryResult struct {
	types.Question
	DocumentID string `json:"document_id" yaml:"document_id"`
	Source     string `json:"source" yaml:"source"`
}

// Retrieve returns stored questions with their options. Text queries are
// ranked by relevance; otherwise results follow document and sequence
// order.
func (s *Store) Retrieve(ctx context.Context, opts QueryOptions) ([]QueryResult, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb     strings.Builder
		args   []any
		useFTS = opts.Query != "" && s.fts
	)

	switch {
	case useFTS:
		qb.WriteString(
			`SELECT q.id, q.document_id, d.source, q.seq, q.text, q.start_offset, q.end_offset
			FROM questions_fts
			JOIN questions q ON q.id = questions_fts.rowid
			JOIN documents d ON d.id = q.document_id
			WHERE questions_fts MATCH ?`)
		args = append(args, opts.Query)
	case opts.Query != "":
		qb.WriteString(
			`SELECT q.id, q.document_id, d.source, q.seq, q.text, q.start_offset, q.end_offset
			FROM questions q
			JOIN documents d ON d.id = q.document_id
			WHERE q.text LIKE ?`)
		args = append(args, "%"+opts.Query+"%")
	default:
		qb.WriteString(
			`SELECT q.id, q.document_id, d.source, q.seq, q.text, q.start_offset, q.end_offset
			FROM questions q
			JOIN documents d ON d.id = q.document_id
			WHERE 1=1`)
	}

	if opts.DocumentID != "" {
		qb.WriteString(` AND q.document_id = ?`)
		args = append(args, opts.DocumentID)
	}

	if opts.Label != "" {
		qb.WriteString(` AND EXISTS (SELECT 1 FROM options o WHERE o.question_id = q.id AND o.label = ?)`)
		args = append(args, opts.Label)
	}

	if useFTS {
		qb.WriteString(` ORDER BY questions_fts.rank`)
	} else {
		qb.WriteString(` ORDER BY d.created_at, q.document_id, q.seq`)
	}

	qb.WriteString(` LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying question bank: %w", err)
	}
	defer rows.Close()

	var (
		results []QueryResult
		ids     []int64
	)
	for rows.Next() {
		var (
			qr QueryResult
			id int64
		)
		if err := rows.Scan(
			&id, &qr.DocumentID, &qr.Source, &qr.SequenceNumber, &qr.Text, &qr.StartOffset, &qr.EndOffset,
		); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		qr.Options = make(map[string]string)
		results = append(results, qr)
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	for i, id := range ids {
		if err := s.loadOptions(ctx, id, results[i].Options); err != nil {
			return nil, err
		}
	}
	return results, nil
}

func (s *Store) loadOptions(ctx context.Context, questionID int64, into map[string]string) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT label, text FROM options WHERE question_id = ? ORDER BY label`, questionID)
	if err != nil {
		return fmt.Errorf("loading options: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var label, text string
		if err := rows.Scan(&label, &text); err != nil {
			return fmt.Errorf("scanning option: %w", err)
		}
		into[label] = text
	}
	return rows.Err()
}
