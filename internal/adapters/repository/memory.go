package repository

import (
	"context"
	"sync"
	"time"

	"github.com/okian/dfsviz/internal/domain/model"
)

// MemoryStore keeps the encoded slot in process memory.
// Payloads are stored encoded so callers never share slices with the store.
type MemoryStore struct {
	mu      sync.RWMutex
	slot    string
	payload []byte
	count   int
	closed  bool
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore(opts ...Option) *MemoryStore {
	s := newSettings(opts)
	return &MemoryStore{slot: s.slot}
}

// Slot returns the slot name.
func (s *MemoryStore) Slot() string { return s.slot }

// Save replaces the slot contents.
func (s *MemoryStore) Save(_ context.Context, c model.Collections) error {
	start := time.Now()
	defer observeUpdate(start)

	b, err := encode(c)
	if err != nil {
		recordError("encode")
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	s.payload = b
	s.count = len(c[model.All])
	publish(c)
	return nil
}

// Load returns a copy of the slot contents.
func (s *MemoryStore) Load(_ context.Context) (model.Collections, error) {
	start := time.Now()
	defer observeQuery(start)

	s.mu.RLock()
	b, closed := s.payload, s.closed
	s.mu.RUnlock()

	if closed {
		return nil, ErrClosed
	}
	if b == nil {
		recordError("not_found")
		return nil, ErrNotFound
	}
	return decode(b)
}

// Clear empties the slot.
func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	s.payload = nil
	s.count = 0
	publish(model.NewCollections())
	return nil
}

// Count returns the number of stored players.
func (s *MemoryStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.count
}

// Close marks the store closed.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
