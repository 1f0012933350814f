package counter

import (
	"context"
	"fmt"

	"github.com/gofiber/storage/redis/v3"
)

// RedisStore keeps the count in Redis through the Fiber storage driver, the
// same client the session and limiter middleware share.
type RedisStore struct {
	storage *redis.Storage
}

func NewRedisStore(storage *redis.Storage) *RedisStore {
	return &RedisStore{storage: storage}
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	b, err := s.storage.GetWithContext(ctx, key)
	if err != nil {
		return "", false, fmt.Errorf("redis get %s: %w", key, err)
	}
	if b == nil {
		return "", false, nil
	}
	return string(b), true, nil
}

func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	if err := s.storage.SetWithContext(ctx, key, []byte(value), 0); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Ping checks the Redis connection.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.storage.Conn().Ping(ctx).Err()
}
