package cache

import (
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/usestring/salesdash-mcp/pkg/types"
)

// DefaultResponseTTL is how long an answer stays cached.
const DefaultResponseTTL = 5 * time.Minute

// ResponseCache caches answers by account and normalized question. Entries
// expire after the configured TTL.
type ResponseCache struct {
	lru *expirable.LRU[string, types.ChatResponse]
}

// NewResponseCache creates a cache holding at most maxItems answers for ttl.
// A non-positive ttl uses DefaultResponseTTL.
func NewResponseCache(maxItems int, ttl time.Duration) *ResponseCache {
	if ttl <= 0 {
		ttl = DefaultResponseTTL
	}
	return &ResponseCache{lru: expirable.NewLRU[string, types.ChatResponse](maxItems, nil, ttl)}
}

// NormalizeKey lower-cases and trims a question.
func NormalizeKey(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

// Key returns the cache key of a question asked against account.
func Key(account, query string) string {
	return strings.TrimSpace(account) + "\x00" + NormalizeKey(query)
}

// Get returns the cached answer for query under account, marked as cached.
func (c *ResponseCache) Get(account, query string) (types.ChatResponse, bool) {
	resp, ok := c.lru.Get(Key(account, query))
	if !ok {
		return types.ChatResponse{}, false
	}
	resp.Cached = true
	return resp, true
}

// Set caches an answer to query under account.
func (c *ResponseCache) Set(account, query string, resp types.ChatResponse) {
	c.lru.Add(Key(account, query), resp)
}

// Remove drops the answer to query under account.
func (c *ResponseCache) Remove(account, query string) bool {
	return c.lru.Remove(Key(account, query))
}

// Clear drops every answer and returns how many were dropped.
func (c *ResponseCache) Clear() int {
	n := c.lru.Len()
	c.lru.Purge()
	return n
}

// Len returns the number of cached answers.
func (c *ResponseCache) Len() int {
	return c.lru.Len()
}

// Keys returns the cache keys, oldest first.
func (c *ResponseCache) Keys() []string {
	return c.lru.Keys()
}
