package docstore

import (
	"context"
	"database/sql"
	"errors"
)

const (
	selectDocumentQuery = `SELECT data FROM documents WHERE collection = $1`
	upsertDocumentQuery = `INSERT INTO documents (collection, data, version, updated_at)
VALUES ($1, $2, 1, now())
ON CONFLICT (collection) DO UPDATE
SET data = EXCLUDED.data, version = documents.version + 1, updated_at = now()`
)

// PostgresStore keeps each collection as one JSONB row of the documents table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Read(ctx context.Context, collection string) ([]byte, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, selectDocumentQuery, collection).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return emptyArray, nil
		}
		return nil, err
	}
	return normalize(data), nil
}

func (s *PostgresStore) Write(ctx context.Context, collection string, data []byte) error {
	_, err := s.db.ExecContext(ctx, upsertDocumentQuery, collection, data)
	return err
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
