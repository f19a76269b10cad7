package store

import (
	"context"
	"sort"
	"sync"
	"time"

	dutymodels "stargate/internal/duty/models"
	personmodels "stargate/internal/person/models"
	"stargate/pkg/platform/sentinel"
)

// InMemory implements duty and status persistence with mutex-guarded maps.
// It mirrors the Postgres store's semantics and serves as the test double
// for the core's unit tests.
type InMemory struct {
	mu       sync.RWMutex
	duties   map[dutymodels.DutyID]*dutymodels.Duty
	byPerson map[personmodels.PersonID][]dutymodels.DutyID
	statuses map[personmodels.PersonID]*dutymodels.CurrentStatus
}

func NewInMemory() *InMemory {
	return &InMemory{
		duties:   make(map[dutymodels.DutyID]*dutymodels.Duty),
		byPerson: make(map[personmodels.PersonID][]dutymodels.DutyID),
		statuses: make(map[personmodels.PersonID]*dutymodels.CurrentStatus),
	}
}

func (s *InMemory) FindByTitleAndStart(_ context.Context, personID personmodels.PersonID, title string, start time.Time) (*dutymodels.Duty, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, id := range s.byPerson[personID] {
		d := s.duties[id]
		if d.Title == title && d.StartDate.Equal(start) {
			return copyDuty(d), nil
		}
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemory) FindOpen(_ context.Context, personID personmodels.PersonID) (*dutymodels.Duty, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, id := range s.byPerson[personID] {
		d := s.duties[id]
		if d.IsOpen() {
			return copyDuty(d), nil
		}
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemory) ListByPerson(_ context.Context, personID personmodels.PersonID) ([]*dutymodels.Duty, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*dutymodels.Duty, 0, len(s.byPerson[personID]))
	for _, id := range s.byPerson[personID] {
		out = append(out, copyDuty(s.duties[id]))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.After(out[j].StartDate) })
	return out, nil
}

func (s *InMemory) Insert(_ context.Context, d *dutymodels.Duty) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.duties[d.ID]; exists {
		return sentinel.ErrConflict
	}
	s.duties[d.ID] = copyDuty(d)
	s.byPerson[d.PersonID] = append(s.byPerson[d.PersonID], d.ID)
	return nil
}

func (s *InMemory) SetEndDate(_ context.Context, id dutymodels.DutyID, end time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.duties[id]
	if !ok {
		return sentinel.ErrNotFound
	}
	e := end
	d.EndDate = &e
	return nil
}

func (s *InMemory) GetStatus(_ context.Context, personID personmodels.PersonID) (*dutymodels.CurrentStatus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.statuses[personID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return copyStatus(st), nil
}

func (s *InMemory) UpsertStatus(_ context.Context, st *dutymodels.CurrentStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := copyStatus(st)
	// Mirror the Postgres upsert: the career start date is written once and
	// never updated afterward.
	if existing, ok := s.statuses[st.PersonID]; ok {
		cp.CareerStartDate = existing.CareerStartDate
	}
	s.statuses[st.PersonID] = cp
	return nil
}

func copyDuty(d *dutymodels.Duty) *dutymodels.Duty {
	cp := *d
	if d.EndDate != nil {
		e := *d.EndDate
		cp.EndDate = &e
	}
	return &cp
}

func copyStatus(st *dutymodels.CurrentStatus) *dutymodels.CurrentStatus {
	cp := *st
	if st.CareerEndDate != nil {
		e := *st.CareerEndDate
		cp.CareerEndDate = &e
	}
	return &cp
}
