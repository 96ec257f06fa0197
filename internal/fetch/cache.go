package fetch

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// FetchFunc produces the value for a cache key.
type FetchFunc func(ctx context.Context) (any, error)

// retryable lets an error opt out of retries. api.APIError implements it.
type retryable interface {
	IsRetryable() bool
}

// Cache is a keyed read-through cache with the dashboard's retry policy.
// Fresh entries are served directly; stale or missing entries trigger a
// fetch, with concurrent fetches for the same key collapsed into one.
// When a refresh fails and a stale value exists, the stale value is
// served rather than the error.
type Cache struct {
	policy Policy
	logger *slog.Logger
	group  singleflight.Group

	mu      sync.Mutex
	entries map[string]*entry

	now func() time.Time
}

type entry struct {
	value     any
	fetchedAt time.Time
	usedAt    time.Time
}

// New creates a cache enforcing the given policy.
func New(policy Policy, logger *slog.Logger) *Cache {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cache{
		policy:  policy,
		logger:  logger,
		entries: make(map[string]*entry),
		now:     time.Now,
	}
}

// Get returns the cached value for key, fetching it if missing or stale.
func (c *Cache) Get(ctx context.Context, key string, fn FetchFunc) (any, error) {
	now := c.now()

	c.mu.Lock()
	e, ok := c.entries[key]
	if ok && now.Sub(e.fetchedAt) < c.policy.StaleTime {
		e.usedAt = now
		v := e.value
		c.mu.Unlock()
		return v, nil
	}
	c.mu.Unlock()

	v, err, _ := c.group.Do(key, func() (any, error) {
		val, err := c.fetchWithRetry(ctx, key, fn)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		t := c.now()
		c.entries[key] = &entry{value: val, fetchedAt: t, usedAt: t}
		c.mu.Unlock()

		return val, nil
	})

	if err != nil {
		// Serve the stale value when a refresh fails.
		c.mu.Lock()
		if e, ok := c.entries[key]; ok {
			e.usedAt = c.now()
			v := e.value
			c.mu.Unlock()
			c.logger.Debug("refresh failed, serving stale entry", "key", key, "error", err)
			return v, nil
		}
		c.mu.Unlock()
		return nil, err
	}

	return v, nil
}

// Invalidate removes a key so the next Get refetches.
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// Purge evicts entries unused for longer than CacheTime and returns the
// number evicted.
func (c *Cache) Purge() int {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	evicted := 0
	for key, e := range c.entries {
		if now.Sub(e.usedAt) > c.policy.CacheTime {
			delete(c.entries, key)
			evicted++
		}
	}
	return evicted
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// fetchWithRetry runs fn with exponential backoff retry.
func (c *Cache) fetchWithRetry(ctx context.Context, key string, fn FetchFunc) (any, error) {
	var lastErr error
	backoff := c.policy.RetryBackoff

	for attempt := 0; attempt <= c.policy.Retries; attempt++ {
		if attempt > 0 {
			// Jitter: backoff * (0.5 to 1.5). Zero backoff retries immediately.
			var wait time.Duration
			if backoff > 0 {
				wait = backoff/2 + time.Duration(rand.Int63n(int64(backoff)))
				backoff *= 2
			}
			c.logger.Debug("retrying fetch",
				"key", key,
				"attempt", attempt,
				"backoff", wait,
			)

			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(wait):
			}
		}

		val, err := fn(ctx)
		if err == nil {
			return val, nil
		}

		lastErr = err

		if r, ok := err.(retryable); ok && !r.IsRetryable() {
			return nil, err
		}
	}

	return nil, fmt.Errorf("max retries exceeded: %w", lastErr)
}
