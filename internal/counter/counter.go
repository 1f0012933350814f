// Package counter keeps the number of contact form submissions. The value
// lives in a key-value store as a decimal string under Key.
package counter

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
)

// Key is the store key holding the submission count.
const Key = "formSubmissions"

var (
	ErrUnknownBackend = errors.New("unknown counter backend")
	ErrInvalidValue   = errors.New("stored counter value is not a non-negative integer")
)

// Counter reads and bumps the submission count.
type Counter interface {
	Get(ctx context.Context) (int64, error)
	Increment(ctx context.Context) (int64, error)
}

// Store is the key-value persistence behind a KV counter.
type Store interface {
	// Get reports ok=false when key has never been written.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}

// KV is a Counter over a Store. Increment is read, add one, write back: the
// last writer wins when several processes share a store. Increments from one
// KV are serialized.
type KV struct {
	mu    sync.Mutex
	store Store
	key   string
}

// NewKV returns a counter stored under Key.
func NewKV(store Store) *KV {
	return &KV{store: store, key: Key}
}

// Get returns the stored count, 0 when nothing has been written. A corrupt
// stored value yields 0 and an error wrapping ErrInvalidValue.
func (c *KV) Get(ctx context.Context) (int64, error) {
	raw, ok, err := c.store.Get(ctx, c.key)
	if err != nil {
		return 0, fmt.Errorf("failed to read counter: %w", err)
	}
	if !ok {
		return 0, nil
	}
	return Parse(raw)
}

// Increment adds one and returns the new count. A corrupt stored value is
// treated as 0 and overwritten.
func (c *KV) Increment(ctx context.Context) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	n, err := c.Get(ctx)
	if err != nil && !errors.Is(err, ErrInvalidValue) {
		return 0, err
	}

	n++
	if err := c.store.Set(ctx, c.key, Format(n)); err != nil {
		return 0, fmt.Errorf("failed to write counter: %w", err)
	}
	return n, nil
}

// Parse decodes a stored count.
func Parse(raw string) (int64, error) {
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidValue, raw)
	}
	return n, nil
}

// Format encodes a count for storage.
func Format(n int64) string {
	return strconv.FormatInt(n, 10)
}
