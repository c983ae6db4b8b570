// Package cache memoizes rendered feed responses for a short TTL.
package cache

import (
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// IndexTTL bounds how stale a cached global-feed page may get. Creating a
// post does not evict anything; the post becomes visible on the index when
// the entry expires or is deleted explicitly.
const IndexTTL = 20 * time.Second

// DefaultCapacity is the LRU capacity used by the server.
const DefaultCapacity = 500

type item struct {
	data      interface{}
	expiresAt time.Time
}

// ResponseCache is an LRU with per-entry expiry. It is constructed once in
// main and handed to the handlers that need it. Concurrent Get/Set may race
// on the same key; the loser only costs one extra recomputation.
type ResponseCache struct {
	lru *lru.Cache[string, item]
}

func New(capacity int) (*ResponseCache, error) {
	l, err := lru.New[string, item](capacity)
	if err != nil {
		return nil, err
	}
	return &ResponseCache{lru: l}, nil
}

// IndexKey is the cache key for one page of the global feed. Only the
// global feed is cached, so feed type and page number identify an entry.
func IndexKey(page int) string {
	return fmt.Sprintf("feed:index:page:%d", page)
}

// Get returns the cached value for key, or ok=false on a miss or an
// expired entry.
func (c *ResponseCache) Get(key string) (interface{}, bool) {
	v, ok := c.lru.Get(key)
	if !ok {
		return nil, false
	}
	if time.Now().After(v.expiresAt) {
		c.lru.Remove(key)
		return nil, false
	}
	return v.data, true
}

// Set stores data under key until ttl elapses.
func (c *ResponseCache) Set(key string, data interface{}, ttl time.Duration) {
	c.lru.Add(key, item{data: data, expiresAt: time.Now().Add(ttl)})
}

// Delete drops a single entry.
func (c *ResponseCache) Delete(key string) {
	c.lru.Remove(key)
}

// Clear drops every entry.
func (c *ResponseCache) Clear() {
	c.lru.Purge()
}
