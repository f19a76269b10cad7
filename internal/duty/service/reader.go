package service

import (
	"context"
	"errors"

	dutymodels "stargate/internal/duty/models"
	personmodels "stargate/internal/person/models"
	dErrors "stargate/pkg/domain-errors"
	"stargate/pkg/platform/sentinel"
)

// History is a person's identity, derived status, and full ordered timeline.
// Status is nil when the person has never held a duty; that is not an error.
type History struct {
	Person *personmodels.Person      `json:"person"`
	Status *dutymodels.CurrentStatus `json:"current_status,omitempty"`
	Duties []*dutymodels.Duty        `json:"duties"`
}

// HistoryByName reconstructs a person's timeline, most recent duty first.
// It is a pure read of the latest committed state and tolerates concurrent
// writers.
func (s *Service) HistoryByName(ctx context.Context, name string) (*History, error) {
	person, err := s.people.FindByName(ctx, name)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Newf(dErrors.CodeNotFound, "person with name '%s' not found", name)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up person")
	}

	status, err := s.store.GetStatus(ctx, person.ID)
	if err != nil && !errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load current status")
	}

	duties, err := s.store.ListByPerson(ctx, person.ID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list duties")
	}

	return &History{Person: person, Status: status, Duties: duties}, nil
}

// StatusByName returns just the person and their derived status.
func (s *Service) StatusByName(ctx context.Context, name string) (*personmodels.Person, *dutymodels.CurrentStatus, error) {
	person, err := s.people.FindByName(ctx, name)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, nil, dErrors.Newf(dErrors.CodeNotFound, "person with name '%s' not found", name)
		}
		return nil, nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up person")
	}
	status, err := s.store.GetStatus(ctx, person.ID)
	if err != nil && !errors.Is(err, sentinel.ErrNotFound) {
		return nil, nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load current status")
	}
	return person, status, nil
}
