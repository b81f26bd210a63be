// internal/state/redis.go
package state

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// redisKeyPrefix namespaces the state keys so the collaboration core can
// share a Redis server with other applications.
const redisKeyPrefix = "genomerx:state:"

// RedisStore persists buckets as plain string keys in Redis.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(addr string) (*RedisStore, error) {
	if addr == "" {
		addr = "127.0.0.1:6379"
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &RedisStore{client: client}, nil
}

func (s *RedisStore) Load(ctx context.Context, bucket string) ([]byte, error) {
	b, err := s.client.Get(ctx, redisKeyPrefix+bucket).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load bucket %s: %w", bucket, err)
	}
	return b, nil
}

func (s *RedisStore) Save(ctx context.Context, bucket string, payload []byte) error {
	if err := s.client.Set(ctx, redisKeyPrefix+bucket, payload, 0).Err(); err != nil {
		return fmt.Errorf("save bucket %s: %w", bucket, err)
	}
	return nil
}

func (s *RedisStore) Close() error { return s.client.Close() }
