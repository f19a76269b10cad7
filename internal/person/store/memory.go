package store

import (
	"context"
	"sort"
	"sync"

	"stargate/internal/person/models"
	"stargate/pkg/platform/sentinel"
)

// InMemory implements the person store with a mutex-guarded map. It mirrors
// the Postgres store's semantics so the service behaves identically under
// either, and it doubles as the test double for unit tests.
type InMemory struct {
	mu     sync.RWMutex
	people map[models.PersonID]*models.Person
	byName map[string]models.PersonID
}

func NewInMemory() *InMemory {
	return &InMemory{
		people: make(map[models.PersonID]*models.Person),
		byName: make(map[string]models.PersonID),
	}
}

// CreateIfNameAvailable inserts the person unless the name is taken.
func (s *InMemory) CreateIfNameAvailable(_ context.Context, p *models.Person) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.byName[p.Name]; taken {
		return sentinel.ErrConflict
	}
	cp := *p
	s.people[p.ID] = &cp
	s.byName[p.Name] = p.ID
	return nil
}

func (s *InMemory) FindByID(_ context.Context, id models.PersonID) (*models.Person, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.people[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *InMemory) FindByName(_ context.Context, name string) (*models.Person, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byName[name]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *s.people[id]
	return &cp, nil
}

// FindByNameForUpdate aliases FindByName: the in-memory stack serializes
// per-person work in the tx runner, so no row pinning is needed here.
func (s *InMemory) FindByNameForUpdate(ctx context.Context, name string) (*models.Person, error) {
	return s.FindByName(ctx, name)
}

// List returns all people ordered by name for stable output.
func (s *InMemory) List(_ context.Context) ([]*models.Person, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Person, 0, len(s.people))
	for _, p := range s.people {
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Update persists a renamed person, enforcing name uniqueness.
func (s *InMemory) Update(_ context.Context, p *models.Person) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.people[p.ID]
	if !ok {
		return sentinel.ErrNotFound
	}
	if other, taken := s.byName[p.Name]; taken && other != p.ID {
		return sentinel.ErrConflict
	}
	delete(s.byName, existing.Name)
	cp := *p
	s.people[p.ID] = &cp
	s.byName[p.Name] = p.ID
	return nil
}
