// Package conversation keeps per-conversation message history.
package conversation

import (
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/usestring/salesdash-mcp/pkg/client"
)

// DefaultID is used when a caller does not name a conversation.
const DefaultID = "default"

// Store holds message histories keyed by conversation ID.
type Store struct {
	mu      sync.RWMutex
	history map[string][]client.Message
	turns   map[string]*sync.Mutex
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		history: make(map[string][]client.Message),
		turns:   make(map[string]*sync.Mutex),
	}
}

// Lock holds a conversation's turn until the returned func is called.
// A caller reading the history, asking the backend and writing the new
// history back holds the turn throughout, so concurrent turns in one
// conversation do not overwrite each other.
func (s *Store) Lock(id string) (unlock func()) {
	id = Resolve(id)
	s.mu.Lock()
	turn, ok := s.turns[id]
	if !ok {
		turn = &sync.Mutex{}
		s.turns[id] = turn
	}
	s.mu.Unlock()

	turn.Lock()
	return turn.Unlock
}

// NewID returns a fresh conversation ID.
func NewID() string {
	return "conv_" + uuid.NewString()
}

// Resolve maps an empty ID to DefaultID.
func Resolve(id string) string {
	if id = strings.TrimSpace(id); id == "" {
		return DefaultID
	}
	return id
}

// History returns a copy of the messages of a conversation.
func (s *Store) History(id string) []client.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.history[Resolve(id)])
}

// BuildMessages returns the history followed by a new user turn for query.
func (s *Store) BuildMessages(id, query string) []client.Message {
	return append(s.History(id), client.UserMessage(query))
}

// Append adds messages to a conversation.
func (s *Store) Append(id string, msgs ...client.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id = Resolve(id)
	s.history[id] = append(s.history[id], msgs...)
}

// Replace sets a conversation's history, as returned by the backend.
func (s *Store) Replace(id string, msgs []client.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history[Resolve(id)] = slices.Clone(msgs)
}

// Clear removes one conversation. It reports whether it existed.
func (s *Store) Clear(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	id = Resolve(id)
	_, ok := s.history[id]
	delete(s.history, id)
	return ok
}

// ClearAll removes every conversation and returns their IDs, sorted.
func (s *Store) ClearAll() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.history))
	for id := range s.history {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	s.history = make(map[string][]client.Message)
	return ids
}

// IDs returns the known conversation IDs, sorted.
func (s *Store) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.history))
	for id := range s.history {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
