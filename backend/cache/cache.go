// ABOUTME: In-memory cache with TTL-based expiration
// ABOUTME: Thread-safe typed cache using sync.Map with background cleanup

package cache

import (
	"log/slog"
	"sync"
	"time"
)

const defaultCleanupInterval = 1 * time.Minute

type entry[V any] struct {
	data      V
	expiresAt time.Time
}

// Cache holds values of one type for a fixed TTL
type Cache[V any] struct {
	store sync.Map
	ttl   time.Duration
	stop  chan struct{}
	once  sync.Once
}

// New creates a cache and starts its cleanup loop. Call Close to stop it.
func New[V any](ttl time.Duration) *Cache[V] {
	return NewWithCleanup[V](ttl, defaultCleanupInterval)
}

// NewWithCleanup is New with an explicit sweep interval
func NewWithCleanup[V any](ttl, interval time.Duration) *Cache[V] {
	c := &Cache[V]{
		ttl:  ttl,
		stop: make(chan struct{}),
	}
	go c.startCleanup(interval)
	return c
}

func (c *Cache[V]) Get(key string) (V, bool) {
	var zero V

	val, ok := c.store.Load(key)
	if !ok {
		slog.Debug("Cache miss", "key", key)
		return zero, false
	}

	e := val.(entry[V])
	if time.Now().After(e.expiresAt) {
		c.store.Delete(key)
		slog.Debug("Cache expired", "key", key)
		return zero, false
	}

	slog.Debug("Cache hit", "key", key)
	return e.data, true
}

func (c *Cache[V]) Set(key string, value V) {
	c.SetWithTTL(key, value, c.ttl)
}

// SetWithTTL stores a value with a custom TTL
func (c *Cache[V]) SetWithTTL(key string, value V, ttl time.Duration) {
	e := entry[V]{
		data:      value,
		expiresAt: time.Now().Add(ttl),
	}
	c.store.Store(key, e)
	slog.Debug("Cache set", "key", key, "ttl", ttl)
}

func (c *Cache[V]) Clear(key string) {
	c.store.Delete(key)
}

// Len counts unexpired entries
func (c *Cache[V]) Len() int {
	now := time.Now()
	n := 0
	c.store.Range(func(_, val interface{}) bool {
		if !now.After(val.(entry[V]).expiresAt) {
			n++
		}
		return true
	})
	return n
}

// TTL returns the default time-to-live
func (c *Cache[V]) TTL() time.Duration {
	return c.ttl
}

// Close stops the cleanup loop. The cache remains usable.
func (c *Cache[V]) Close() {
	c.once.Do(func() { close(c.stop) })
}

func (c *Cache[V]) startCleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			c.sweep()
		}
	}
}

func (c *Cache[V]) sweep() {
	now := time.Now()
	c.store.Range(func(key, val interface{}) bool {
		if now.After(val.(entry[V]).expiresAt) {
			c.store.Delete(key)
		}
		return true
	})
}
