// internal/state/postgres.go
package state

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver
)

const defaultPostgresDSN = "postgres://localhost/genomerx?sslmode=disable"

// PostgresStore persists buckets as JSONB rows in a PostgreSQL server.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(dsn string) (*PostgresStore, error) {
	if dsn == "" {
		dsn = defaultPostgresDSN
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	ctx := context.Background()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	ddl := `CREATE TABLE IF NOT EXISTS state (
		bucket TEXT PRIMARY KEY,
		payload JSONB NOT NULL
	)`
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure state table: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Load(ctx context.Context, bucket string) ([]byte, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM state WHERE bucket = $1`, bucket).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load bucket %s: %w", bucket, err)
	}
	return payload, nil
}

func (s *PostgresStore) Save(ctx context.Context, bucket string, payload []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO state (bucket, payload) VALUES ($1, $2)
		 ON CONFLICT (bucket) DO UPDATE SET payload = EXCLUDED.payload`,
		bucket, payload)
	if err != nil {
		return fmt.Errorf("save bucket %s: %w", bucket, err)
	}
	return nil
}

func (s *PostgresStore) Close() error { return s.db.Close() }
