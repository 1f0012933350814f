package counter

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofiber/storage/redis/v3"
	"go.uber.org/zap"

	"spamlab/internal/config"
	"spamlab/internal/db"
)

var _ Store = (*db.DB)(nil)

type pinger interface {
	Ping(ctx context.Context) error
}

// Deps are connections owned by the caller that a backend may reuse.
type Deps struct {
	DB    *db.DB
	Redis *redis.Storage
}

// Backend is an opened counter together with the store behind it.
type Backend struct {
	Name    string
	Counter Counter
	store   Store
	closer  func() error
}

// Open builds the counter selected by cfg.CounterBackend. Connections passed
// in deps are reused and left open on Close; anything Open creates itself is
// closed.
func Open(ctx context.Context, cfg *config.Config, deps Deps, logger *zap.Logger) (*Backend, error) {
	var (
		store  Store
		closer = func() error { return nil }
	)

	switch cfg.CounterBackend {
	case config.BackendMemory:
		store = NewMemoryStore()

	case config.BackendRedis:
		storage := deps.Redis
		if storage == nil {
			if cfg.RedisURL == "" {
				return nil, errors.New("redis counter backend requires REDIS_URL")
			}
			storage = redis.New(redis.Config{URL: cfg.RedisURL})
			closer = storage.Close
		}
		store = NewRedisStore(storage)

	case config.BackendPostgres:
		if deps.DB == nil {
			return nil, errors.New("postgres counter backend requires DATABASE_URL")
		}
		store = deps.DB

	case config.BackendSQLite:
		s, err := NewSQLiteStore(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		store, closer = s, s.Close

	case config.BackendMySQL:
		if cfg.MySQLDSN == "" {
			return nil, errors.New("mysql counter backend requires MYSQL_DSN")
		}
		s, err := NewMySQLStore(ctx, cfg.MySQLDSN)
		if err != nil {
			return nil, err
		}
		store, closer = s, s.Close

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.CounterBackend)
	}

	if logger != nil {
		logger.Info("Submission counter ready",
			zap.String("backend", cfg.CounterBackend),
			zap.Duration("cache_ttl", cfg.CounterCacheTTL))
	}

	return &Backend{
		Name:    cfg.CounterBackend,
		Counter: NewCached(NewKV(store), cfg.CounterCacheTTL),
		store:   store,
		closer:  closer,
	}, nil
}

// Ping checks the backing store when it supports it.
func (b *Backend) Ping(ctx context.Context) error {
	if p, ok := b.store.(pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}

func (b *Backend) Close() error {
	return b.closer()
}
