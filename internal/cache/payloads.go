package cache

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/usestring/salesdash-mcp/internal/rowindex"
	"github.com/usestring/salesdash-mcp/pkg/tabular"
)

// StoredPayload is a raw backend payload together with its materialization.
type StoredPayload struct {
	ID        string
	Query     string
	Raw       json.RawMessage
	Parsed    tabular.ParsedData
	Index     *rowindex.Index
	CreatedAt time.Time
}

// PayloadStore provides thread-safe LRU storage of parsed payloads by ID.
type PayloadStore struct {
	cache *lru.Cache[string, *StoredPayload]
}

// NewPayloadStore creates a store with the specified maximum number of items.
func NewPayloadStore(maxItems int) (*PayloadStore, error) {
	c, err := lru.New[string, *StoredPayload](maxItems)
	if err != nil {
		return nil, err
	}
	return &PayloadStore{cache: c}, nil
}

// Put stores raw and its parse result, returning the stored entry. The row
// index is built here so filters never re-scan rows.
func (s *PayloadStore) Put(query string, raw json.RawMessage, parsed tabular.ParsedData) *StoredPayload {
	p := &StoredPayload{
		ID:        "pl_" + uuid.NewString(),
		Query:     query,
		Raw:       raw,
		Parsed:    parsed,
		Index:     rowindex.New(parsed),
		CreatedAt: time.Now(),
	}
	s.cache.Add(p.ID, p)
	return p
}

// Get retrieves a payload by ID.
func (s *PayloadStore) Get(id string) (*StoredPayload, bool) {
	return s.cache.Get(id)
}

// List returns stored payloads, least recently used first.
func (s *PayloadStore) List() []*StoredPayload {
	keys := s.cache.Keys()
	out := make([]*StoredPayload, 0, len(keys))
	for _, k := range keys {
		if p, ok := s.cache.Peek(k); ok {
			out = append(out, p)
		}
	}
	return out
}

// Len returns the current number of stored payloads.
func (s *PayloadStore) Len() int {
	return s.cache.Len()
}
