// internal/state/sqlite.go
package state

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite" // register the cgo-free sqlite driver
)

// SQLiteStore persists buckets into an embedded sqlite file.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if path == "" {
		path = "./genomerx.db"
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	ddl := `CREATE TABLE IF NOT EXISTS state (
		bucket TEXT PRIMARY KEY,
		payload BLOB NOT NULL
	)`
	if _, err := db.Exec(ddl); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure state table: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Load(ctx context.Context, bucket string) ([]byte, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM state WHERE bucket = ?`, bucket).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load bucket %s: %w", bucket, err)
	}
	return payload, nil
}

func (s *SQLiteStore) Save(ctx context.Context, bucket string, payload []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO state (bucket, payload) VALUES (?, ?)
		 ON CONFLICT(bucket) DO UPDATE SET payload = excluded.payload`,
		bucket, payload)
	if err != nil {
		return fmt.Errorf("save bucket %s: %w", bucket, err)
	}
	return nil
}

func (s *SQLiteStore) Close() error { return s.db.Close() }
