package audit

import (
	"context"
	"sync"
)

// InMemoryStore holds process log entries in memory for tests and the
// databaseless development mode.
type InMemoryStore struct {
	mu      sync.RWMutex
	entries []Entry
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Append(_ context.Context, entry Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
	return nil
}

func (s *InMemoryStore) List(_ context.Context, personName string) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if personName == "" {
		return append([]Entry{}, s.entries...), nil
	}
	var out []Entry
	for _, e := range s.entries {
		if e.PersonName == personName {
			out = append(out, e)
		}
	}
	return out, nil
}
