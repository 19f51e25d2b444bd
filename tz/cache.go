package tz

import (
	"container/list"
	"sync"

	"go.uber.org/zap"

	"github.com/calclock/calclock/temporal"
)

type cacheKey struct {
	ms   int64
	zone string
}

type cacheEntry struct {
	key    cacheKey
	fields temporal.ZoneFields
}

// Cache memoizes the resolutions of another provider, keeping the most
// recently used ones. Failed resolutions are not cached. A Cache is safe
// for concurrent use.
type Cache struct {
	next   temporal.ZoneProvider
	cap    int
	logger *zap.Logger

	mu           sync.Mutex
	lru          *list.List // of *cacheEntry, most recent first
	entries      map[cacheKey]*list.Element
	hits, misses int
}

var _ temporal.ZoneProvider = (*Cache)(nil)

// NewCache wraps next. WithCapacity and WithLogger apply.
func NewCache(next temporal.ZoneProvider, opts ...Option) *Cache {
	o := newOptions(opts)
	return &Cache{
		next:    next,
		cap:     o.capacity,
		logger:  o.logger,
		lru:     list.New(),
		entries: make(map[cacheKey]*list.Element),
	}
}

// Resolve implements temporal.ZoneProvider.
func (c *Cache) Resolve(ms int64, zone string) (temporal.ZoneFields, error) {
	key := cacheKey{ms, zone}
	c.mu.Lock()
	if e, ok := c.entries[key]; ok {
		c.lru.MoveToFront(e)
		c.hits++
		f := e.Value.(*cacheEntry).fields
		c.mu.Unlock()
		return f, nil
	}
	c.misses++
	c.mu.Unlock()

	// The lock is not held while the wrapped provider runs; two callers
	// missing on the same key both resolve it and the second store wins.
	f, err := c.next.Resolve(ms, zone)
	if err != nil {
		c.logger.Debug("zone resolution failed", zap.String("zone", zone), zap.Int64("epoch_ms", ms), zap.Error(err))
		return temporal.ZoneFields{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key]; ok {
		e.Value.(*cacheEntry).fields = f
		c.lru.MoveToFront(e)
		return f, nil
	}
	c.entries[key] = c.lru.PushFront(&cacheEntry{key: key, fields: f})
	for c.lru.Len() > c.cap {
		old := c.lru.Remove(c.lru.Back()).(*cacheEntry)
		delete(c.entries, old.key)
		c.logger.Debug("zone cache eviction", zap.String("zone", old.key.zone), zap.Int64("epoch_ms", old.key.ms))
	}
	return f, nil
}

// Len reports the number of cached resolutions.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}

// Stats reports the cache hits and misses so far.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}
