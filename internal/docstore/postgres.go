package docstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// PostgresStore persists each document as one JSONB row keyed by
// (collection, doc_id).
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// EnsureSchema creates the documents table if it does not exist.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS documents (
			collection TEXT NOT NULL,
			doc_id     TEXT NOT NULL,
			body       JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			PRIMARY KEY (collection, doc_id)
		)`)
	if err != nil {
		return fmt.Errorf("failed to ensure documents schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, collection, id string) (Document, error) {
	var body []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT body FROM documents WHERE collection = $1 AND doc_id = $2`,
		collection, id,
	).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, &RemoteError{Op: "get", Collection: collection, ID: id, Err: err}
	}
	return decodeBody(collection, id, body)
}

func (s *PostgresStore) List(ctx context.Context, collection string) ([]Document, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT doc_id, body FROM documents WHERE collection = $1 ORDER BY doc_id`,
		collection,
	)
	if err != nil {
		return nil, &RemoteError{Op: "list", Collection: collection, Err: err}
	}
	defer rows.Close()
	return scanDocs(collection, rows)
}

func (s *PostgresStore) Query(ctx context.Context, collection, field string, value any) ([]Document, error) {
	val, err := json.Marshal(value)
	if err != nil {
		return nil, &RemoteError{Op: "query", Collection: collection, Err: err}
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT doc_id, body FROM documents WHERE collection = $1 AND body -> $2 = $3::jsonb ORDER BY doc_id`,
		collection, field, string(val),
	)
	if err != nil {
		return nil, &RemoteError{Op: "query", Collection: collection, Err: err}
	}
	defer rows.Close()
	return scanDocs(collection, rows)
}

func (s *PostgresStore) Set(ctx context.Context, collection, id string, doc Document) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return &RemoteError{Op: "set", Collection: collection, ID: id, Err: err}
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO documents (collection, doc_id, body)
		 VALUES ($1, $2, $3::jsonb)
		 ON CONFLICT (collection, doc_id)
		 DO UPDATE SET body = EXCLUDED.body, updated_at = now()`,
		collection, id, string(body),
	)
	if err != nil {
		return &RemoteError{Op: "set", Collection: collection, ID: id, Err: err}
	}
	return nil
}

func (s *PostgresStore) Update(ctx context.Context, collection, id string, fields Document) error {
	patch, err := json.Marshal(fields)
	if err != nil {
		return &RemoteError{Op: "update", Collection: collection, ID: id, Err: err}
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE documents SET body = body || $3::jsonb, updated_at = now()
		 WHERE collection = $1 AND doc_id = $2`,
		collection, id, string(patch),
	)
	if err != nil {
		return &RemoteError{Op: "update", Collection: collection, ID: id, Err: err}
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return &RemoteError{Op: "update", Collection: collection, ID: id, Err: err}
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, collection, id string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM documents WHERE collection = $1 AND doc_id = $2`,
		collection, id,
	)
	if err != nil {
		return &RemoteError{Op: "delete", Collection: collection, ID: id, Err: err}
	}
	return nil
}

func decodeBody(collection, id string, body []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, &RemoteError{Op: "decode", Collection: collection, ID: id, Err: err}
	}
	return doc, nil
}

func scanDocs(collection string, rows *sql.Rows) ([]Document, error) {
	out := []Document{}
	for rows.Next() {
		var id string
		var body []byte
		if err := rows.Scan(&id, &body); err != nil {
			return nil, &RemoteError{Op: "scan", Collection: collection, Err: err}
		}
		doc, err := decodeBody(collection, id, body)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, &RemoteError{Op: "scan", Collection: collection, Err: err}
	}
	return out, nil
}
