package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"
	"time"
)

// Cache interface defines cache operations
type Cache interface {
	Get(key string) (interface{}, bool)
	Set(key string, value interface{}, ttl time.Duration)
	Delete(key string)
	Clear()
	Size() int
}

// MemoryCache implements an in-memory cache with TTL support
type MemoryCache struct {
	mu      sync.RWMutex
	items   map[string]*item
	maxSize int
}

type item struct {
	value      interface{}
	expiration time.Time
	accessTime time.Time
}

// NewMemoryCache creates a new memory cache and starts its cleanup routine.
func NewMemoryCache(maxSize int) *MemoryCache {
	c := &MemoryCache{
		items:   make(map[string]*item),
		maxSize: maxSize,
	}

	go c.cleanupExpired()

	return c
}

// Get retrieves a value from cache
func (c *MemoryCache) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	it, exists := c.items[key]
	c.mu.RUnlock()

	if !exists {
		return nil, false
	}

	if time.Now().After(it.expiration) {
		c.Delete(key)
		return nil, false
	}

	c.mu.Lock()
	it.accessTime = time.Now()
	c.mu.Unlock()

	return it.value, true
}

// Set stores a value in cache with TTL
func (c *MemoryCache) Set(key string, value interface{}, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.items) >= c.maxSize {
		c.evictLRU()
	}

	c.items[key] = &item{
		value:      value,
		expiration: time.Now().Add(ttl),
		accessTime: time.Now(),
	}
}

// Delete removes a key from cache
func (c *MemoryCache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
}

// Clear removes all items from cache
func (c *MemoryCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]*item)
}

// Size returns the number of items in cache
func (c *MemoryCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// evictLRU removes the least recently used item. Caller holds the lock.
func (c *MemoryCache) evictLRU() {
	var oldestKey string
	var oldestTime time.Time

	for key, it := range c.items {
		if oldestKey == "" || it.accessTime.Before(oldestTime) {
			oldestKey = key
			oldestTime = it.accessTime
		}
	}

	if oldestKey != "" {
		delete(c.items, oldestKey)
	}
}

func (c *MemoryCache) cleanupExpired() {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		c.mu.Lock()
		now := time.Now()
		for key, it := range c.items {
			if now.After(it.expiration) {
				delete(c.items, key)
			}
		}
		c.mu.Unlock()
	}
}

// ResultCache memoizes query results keyed on the full query identity:
// platform, query kind, statement text and bound parameter values. Identical
// repeated requests within the TTL window are served without a round-trip;
// staleness up to the TTL is acceptable for this reporting workload.
type ResultCache struct {
	cache Cache
	ttl   time.Duration
}

// NewResultCache creates a result cache with the given TTL.
func NewResultCache(cache Cache, ttl time.Duration) *ResultCache {
	return &ResultCache{
		cache: cache,
		ttl:   ttl,
	}
}

// Get retrieves a cached result for the query identity.
func (rc *ResultCache) Get(platform, kind, sql string, params []any) (interface{}, bool) {
	return rc.cache.Get(Key(platform, kind, sql, params))
}

// Set caches a query result.
func (rc *ResultCache) Set(platform, kind, sql string, params []any, result interface{}) {
	rc.cache.Set(Key(platform, kind, sql, params), result, rc.ttl)
}

// Key derives a stable cache key from the query identity.
func Key(platform, kind, sql string, params []any) string {
	var b strings.Builder
	b.WriteString(platform)
	b.WriteByte('\n')
	b.WriteString(kind)
	b.WriteByte('\n')
	b.WriteString(sql)
	for _, p := range params {
		fmt.Fprintf(&b, "\n%v", p)
	}

	hash := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(hash[:])
}
