package cache

import (
	"sync"
	"time"
)

// Cache is the lookup interface the logo resolver depends on.
type Cache[K comparable, V any] interface {
	Get(key K) (V, bool)
	Set(key K, value V, ttl time.Duration)
	Delete(key K)
}

type entry[V any] struct {
	value    V
	deadline time.Time
}

func (e entry[V]) expired(now time.Time) bool {
	return !e.deadline.IsZero() && now.After(e.deadline)
}

// TTLCache keeps resolved logos in memory so repeated generations for the
// same shop do not refetch the image. Expired entries are dropped lazily on
// read and swept opportunistically on write.
type TTLCache[K comparable, V any] struct {
	mu     sync.RWMutex
	items  map[K]entry[V]
	writes int
}

// sweepEvery bounds how often Set scans for expired entries.
const sweepEvery = 64

func NewTTLCache[K comparable, V any]() *TTLCache[K, V] {
	return &TTLCache[K, V]{items: make(map[K]entry[V])}
}

// Get returns a live cached value. An expired entry counts as a miss and is
// removed.
func (c *TTLCache[K, V]) Get(key K) (V, bool) {
	var zero V
	if c == nil {
		return zero, false
	}

	now := time.Now()
	c.mu.RLock()
	item, ok := c.items[key]
	c.mu.RUnlock()
	if !ok {
		return zero, false
	}
	if item.expired(now) {
		c.Delete(key)
		return zero, false
	}
	return item.value, true
}

// Set stores a value. A non-positive ttl keeps the entry until it is
// overwritten or deleted.
func (c *TTLCache[K, V]) Set(key K, value V, ttl time.Duration) {
	if c == nil {
		return
	}

	now := time.Now()
	item := entry[V]{value: value}
	if ttl > 0 {
		item.deadline = now.Add(ttl)
	}

	c.mu.Lock()
	c.items[key] = item
	c.writes++
	if c.writes%sweepEvery == 0 {
		for k, v := range c.items {
			if v.expired(now) {
				delete(c.items, k)
			}
		}
	}
	c.mu.Unlock()
}

// Delete removes a cached entry.
func (c *TTLCache[K, V]) Delete(key K) {
	if c == nil {
		return
	}
	c.mu.Lock()
	delete(c.items, key)
	c.mu.Unlock()
}

// NoopCache disables caching; every Get is a miss.
type NoopCache[K comparable, V any] struct{}

func (NoopCache[K, V]) Get(key K) (V, bool) {
	var zero V
	return zero, false
}

func (NoopCache[K, V]) Set(key K, value V, ttl time.Duration) {}

func (NoopCache[K, V]) Delete(key K) {}
