// internal/state/file.go
package state

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FileStore keeps one <bucket>.json file per bucket under a data
// directory. Writes go through a temp file and rename so a crash mid-write
// never leaves a half-serialized collection on disk.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		dir = "./data"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(bucket string) string {
	return filepath.Join(s.dir, bucket+".json")
}

func (s *FileStore) Load(_ context.Context, bucket string) ([]byte, error) {
	b, err := os.ReadFile(s.path(bucket))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read bucket %s: %w", bucket, err)
	}
	return b, nil
}

func (s *FileStore) Save(_ context.Context, bucket string, payload []byte) error {
	tmp, err := os.CreateTemp(s.dir, bucket+"-*.tmp")
	if err != nil {
		return fmt.Errorf("write bucket %s: %w", bucket, err)
	}
	name := tmp.Name()
	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		os.Remove(name)
		return fmt.Errorf("write bucket %s: %w", bucket, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(name)
		return fmt.Errorf("write bucket %s: %w", bucket, err)
	}
	if err := os.Rename(name, s.path(bucket)); err != nil {
		os.Remove(name)
		return fmt.Errorf("write bucket %s: %w", bucket, err)
	}
	return nil
}

func (s *FileStore) Close() error { return nil }
