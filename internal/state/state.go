// Package state persists the collaboration collections as string-keyed
// buckets of JSON. Every repository serializes its whole collection into
// one bucket after each successful mutation and hydrates it once at
// startup; a missing or malformed payload hydrates as the empty default,
// never as a startup error.
package state

import (
	"context"
	"fmt"
)

// Bucket names for the persisted collections.
const (
	BucketAccounts    = "accounts"
	BucketTasks       = "tasks"
	BucketEvents      = "events"
	BucketChat        = "chat"
	BucketAnnotations = "annotations"
	BucketPrefs       = "prefs"
)

// Store is a persistent bucket→payload map. Load returns nil (no error)
// for a bucket that has never been saved.
type Store interface {
	Load(ctx context.Context, bucket string) ([]byte, error)
	Save(ctx context.Context, bucket string, payload []byte) error
	Close() error
}

// Driver identifies a concrete storage implementation.
type Driver string

const (
	DriverFile     Driver = "file"     // one JSON file per bucket (default)
	DriverSQLite   Driver = "sqlite"   // embedded sqlite file
	DriverPostgres Driver = "postgres" // PostgreSQL server
	DriverRedis    Driver = "redis"    // Redis server
)

// Options carries the driver selection plus per-driver settings.
type Options struct {
	Driver      Driver
	DataDir     string // file driver
	SQLitePath  string // sqlite driver
	PostgresDSN string // postgres driver
	RedisAddr   string // redis driver
}

// Open selects and opens a backend. Defaults to the file driver.
func Open(opts Options) (Store, error) {
	driver := opts.Driver
	if driver == "" {
		driver = DriverFile
	}
	switch driver {
	case DriverFile:
		return NewFileStore(opts.DataDir)
	case DriverSQLite:
		return NewSQLiteStore(opts.SQLitePath)
	case DriverPostgres:
		return NewPostgresStore(opts.PostgresDSN)
	case DriverRedis:
		return NewRedisStore(opts.RedisAddr)
	default:
		return nil, fmt.Errorf("unknown storage driver %s", driver)
	}
}
