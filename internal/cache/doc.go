// Package cache provides caching utilities for the MCP server: a TTL cache of
// answers keyed by normalized question and an LRU store of parsed payloads.
package cache
