package counter

import (
	"context"
	"os"
	"testing"

	"github.com/gofiber/storage/redis/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spamlab/internal/config"
	"spamlab/internal/testutil"
)

// Backend integration tests. Each is skipped unless its service is configured.

func requireEnv(t *testing.T, key string) string {
	t.Helper()
	v := os.Getenv(key)
	if v == "" {
		t.Skipf("Skipping integration test: %s not set", key)
	}
	return v
}

// assertThreeSubmissions checks a fresh counter reads 0 and that three
// increments leave "3" in the store.
func assertThreeSubmissions(t *testing.T, b *Backend, store Store) {
	t.Helper()
	ctx := context.Background()

	n, err := b.Counter.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	for i := 1; i <= 3; i++ {
		n, err = b.Counter.Increment(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(i), n)
	}

	raw, ok, err := store.Get(ctx, Key)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "3", raw)
	assert.NoError(t, b.Ping(ctx))
}

func TestOpen_Postgres(t *testing.T) {
	database, cleanup := testutil.TestDB(t)
	defer cleanup()
	ctx := context.Background()

	_, err := database.Pool.Exec(ctx, `DELETE FROM kv_store WHERE name = $1`, Key)
	require.NoError(t, err)

	b, err := Open(ctx, &config.Config{CounterBackend: config.BackendPostgres}, Deps{DB: database}, nil)
	require.NoError(t, err)
	defer b.Close()

	assertThreeSubmissions(t, b, database)
}

func TestOpen_Redis(t *testing.T) {
	url := requireEnv(t, "TEST_REDIS_URL")
	ctx := context.Background()

	storage := redis.New(redis.Config{URL: url})
	defer storage.Close()
	require.NoError(t, storage.Delete(Key))
	defer storage.Delete(Key)

	b, err := Open(ctx, &config.Config{CounterBackend: config.BackendRedis}, Deps{Redis: storage}, nil)
	require.NoError(t, err)
	defer b.Close()

	assertThreeSubmissions(t, b, NewRedisStore(storage))
}

func TestOpen_MySQL(t *testing.T) {
	dsn := requireEnv(t, "TEST_MYSQL_DSN")
	ctx := context.Background()

	store, err := NewMySQLStore(ctx, dsn)
	require.NoError(t, err)
	defer store.Close()
	_, err = store.db.ExecContext(ctx, `DELETE FROM kv_store WHERE name = ?`, Key)
	require.NoError(t, err)

	b, err := Open(ctx, &config.Config{CounterBackend: config.BackendMySQL, MySQLDSN: dsn}, Deps{}, nil)
	require.NoError(t, err)
	defer b.Close()

	assertThreeSubmissions(t, b, store)
}
