package counter

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spamlab/internal/config"
)

type fakeStore struct {
	mu     sync.Mutex
	data   map[string]string
	gets   int
	getErr error
	setErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: make(map[string]string)}
}

func (f *fakeStore) Get(_ context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gets++
	if f.getErr != nil {
		return "", false, f.getErr
	}
	v, ok := f.data[key]
	return v, ok, nil
}

func (f *fakeStore) Set(_ context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.setErr != nil {
		return f.setErr
	}
	f.data[key] = value
	return nil
}

func TestKV_EmptyStoreReadsZero(t *testing.T) {
	c := NewKV(NewMemoryStore())

	n, err := c.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestKV_ThreeSubmissions(t *testing.T) {
	store := newFakeStore()
	c := NewKV(store)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		n, err := c.Increment(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(i), n)
	}

	assert.Equal(t, "3", store.data[Key])
	n, err := c.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func TestKV_CorruptValue(t *testing.T) {
	store := newFakeStore()
	store.data[Key] = "lots"
	c := NewKV(store)
	ctx := context.Background()

	n, err := c.Get(ctx)
	assert.ErrorIs(t, err, ErrInvalidValue)
	assert.Equal(t, int64(0), n)

	n, err = c.Increment(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Equal(t, "1", store.data[Key])
}

func TestKV_StoreErrors(t *testing.T) {
	boom := errors.New("boom")
	ctx := context.Background()

	store := newFakeStore()
	store.getErr = boom
	_, err := NewKV(store).Increment(ctx)
	assert.ErrorIs(t, err, boom)

	store = newFakeStore()
	store.setErr = boom
	_, err = NewKV(store).Increment(ctx)
	assert.ErrorIs(t, err, boom)
}

func TestKV_ConcurrentIncrementsInOneProcess(t *testing.T) {
	c := NewKV(NewMemoryStore())
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = c.Increment(ctx)
		}()
	}
	wg.Wait()

	n, err := c.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(50), n)
}

func TestParse(t *testing.T) {
	tests := []struct {
		raw     string
		want    int64
		wantErr bool
	}{
		{"0", 0, false},
		{"42", 42, false},
		{"-1", 0, true},
		{"", 0, true},
		{"3.5", 0, true},
		{"NaN", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := Parse(tt.raw)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidValue)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCached_ServesFromMemory(t *testing.T) {
	store := newFakeStore()
	c := NewCached(NewKV(store), time.Minute)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := c.Get(ctx)
		require.NoError(t, err)
	}
	assert.Equal(t, 1, store.gets)
}

func TestCached_IncrementRefreshes(t *testing.T) {
	store := newFakeStore()
	c := NewCached(NewKV(store), time.Minute)
	ctx := context.Background()

	_, err := c.Get(ctx)
	require.NoError(t, err)

	_, err = c.Increment(ctx)
	require.NoError(t, err)

	n, err := c.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestCached_Expires(t *testing.T) {
	store := newFakeStore()
	c := NewCached(NewKV(store), 20*time.Millisecond)
	ctx := context.Background()

	_, _ = c.Get(ctx)
	store.data[Key] = "7"

	assert.Eventually(t, func() bool {
		n, err := c.Get(ctx)
		return err == nil && n == 7
	}, time.Second, 10*time.Millisecond)
}

// gatedCounter blocks Get after it has read the value until release closes.
type gatedCounter struct {
	mu      sync.Mutex
	n       int64
	reading chan struct{}
	release chan struct{}
}

func (g *gatedCounter) Get(context.Context) (int64, error) {
	g.mu.Lock()
	n := g.n
	g.mu.Unlock()

	g.reading <- struct{}{}
	<-g.release
	return n, nil
}

func (g *gatedCounter) Increment(context.Context) (int64, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return g.n, nil
}

func TestCached_SlowReadDoesNotHideIncrement(t *testing.T) {
	inner := &gatedCounter{reading: make(chan struct{}, 2), release: make(chan struct{})}
	c := NewCached(inner, time.Minute)
	ctx := context.Background()

	read := make(chan int64)
	go func() {
		n, _ := c.Get(ctx)
		read <- n
	}()
	<-inner.reading

	n, err := c.Increment(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	close(inner.release)
	assert.Equal(t, int64(0), <-read)

	n, err = c.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestNewCached_ZeroTTLDisablesCache(t *testing.T) {
	inner := NewKV(NewMemoryStore())
	assert.Same(t, inner, NewCached(inner, 0))
}

func TestSQLiteStore(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data", "counter.db")

	store, err := NewSQLiteStore(ctx, path)
	require.NoError(t, err)
	defer store.Close()

	_, ok, err := store.Get(ctx, Key)
	require.NoError(t, err)
	assert.False(t, ok)

	c := NewKV(store)
	for i := 0; i < 3; i++ {
		_, err := c.Increment(ctx)
		require.NoError(t, err)
	}

	v, ok, err := store.Get(ctx, Key)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "3", v)
	assert.NoError(t, store.Ping(ctx))
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	t.Run("memory", func(t *testing.T) {
		b, err := Open(ctx, &config.Config{CounterBackend: config.BackendMemory}, Deps{}, nil)
		require.NoError(t, err)
		defer b.Close()

		n, err := b.Counter.Increment(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
		assert.NoError(t, b.Ping(ctx))
	})

	t.Run("sqlite", func(t *testing.T) {
		cfg := &config.Config{
			CounterBackend:  config.BackendSQLite,
			SQLitePath:      filepath.Join(t.TempDir(), "spamlab.db"),
			CounterCacheTTL: time.Second,
		}
		b, err := Open(ctx, cfg, Deps{}, nil)
		require.NoError(t, err)
		defer b.Close()

		_, err = b.Counter.Increment(ctx)
		require.NoError(t, err)
		n, err := b.Counter.Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
	})

	t.Run("postgres without database", func(t *testing.T) {
		_, err := Open(ctx, &config.Config{CounterBackend: config.BackendPostgres}, Deps{}, nil)
		assert.Error(t, err)
	})

	t.Run("unknown backend", func(t *testing.T) {
		_, err := Open(ctx, &config.Config{CounterBackend: "etcd"}, Deps{}, nil)
		assert.ErrorIs(t, err, ErrUnknownBackend)
	})
}
