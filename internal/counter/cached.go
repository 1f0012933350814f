package counter

import (
	"context"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Cached serves Get from memory for up to ttl so the landing page widget can
// poll without a store round trip on every request. Increment writes through
// and refreshes the cached value.
type Cached struct {
	inner Counter
	lru   *expirable.LRU[string, int64]

	// gen counts increments; a Get only fills the cache if no increment
	// finished while it was reading the store.
	mu  sync.Mutex
	gen uint64
}

// NewCached wraps inner. A non-positive ttl disables caching and returns inner.
func NewCached(inner Counter, ttl time.Duration) Counter {
	if ttl <= 0 {
		return inner
	}
	return &Cached{
		inner: inner,
		lru:   expirable.NewLRU[string, int64](1, nil, ttl),
	}
}

func (c *Cached) Get(ctx context.Context) (int64, error) {
	if n, ok := c.lru.Get(Key); ok {
		return n, nil
	}

	c.mu.Lock()
	gen := c.gen
	c.mu.Unlock()

	n, err := c.inner.Get(ctx)
	if err != nil {
		return n, err
	}

	c.mu.Lock()
	if c.gen == gen {
		c.lru.Add(Key, n)
	}
	c.mu.Unlock()
	return n, nil
}

func (c *Cached) Increment(ctx context.Context) (int64, error) {
	n, err := c.inner.Increment(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	if err != nil {
		c.lru.Remove(Key)
		return n, err
	}
	c.lru.Add(Key, n)
	return n, nil
}
