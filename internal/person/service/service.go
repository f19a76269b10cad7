package service

import (
	"context"
	"errors"
	"fmt"

	"stargate/internal/audit"
	"stargate/internal/person/models"
	"stargate/internal/platform/metrics"
	dErrors "stargate/pkg/domain-errors"
	"stargate/pkg/platform/sentinel"
	"stargate/pkg/requestcontext"
)

// Store is the persistence surface the person registry needs.
type Store interface {
	CreateIfNameAvailable(ctx context.Context, p *models.Person) error
	FindByName(ctx context.Context, name string) (*models.Person, error)
	List(ctx context.Context) ([]*models.Person, error)
	Update(ctx context.Context, p *models.Person) error
}

// Service is the person registry: create, rename, and lookup by unique
// display name. It guarantees name uniqueness before the duty module ever
// sees a reference.
type Service struct {
	store   Store
	auditor audit.Recorder
	metrics *metrics.Metrics
}

func New(store Store, auditor audit.Recorder, m *metrics.Metrics) *Service {
	return &Service{store: store, auditor: auditor, metrics: m}
}

// Create registers a new person with a unique name.
func (s *Service) Create(ctx context.Context, name string) (*models.Person, error) {
	p, err := models.NewPerson(name, requestcontext.Now(ctx))
	if err != nil {
		s.auditor.RecordFailure(ctx, "CreatePerson", dErrors.Message(err), name)
		return nil, err
	}

	if err := s.store.CreateIfNameAvailable(ctx, p); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			msg := fmt.Sprintf("person with name '%s' already exists", p.Name)
			s.auditor.RecordFailure(ctx, "CreatePerson", msg, p.Name)
			return nil, dErrors.New(dErrors.CodeConflict, msg)
		}
		err = dErrors.Wrap(err, dErrors.CodeInternal, "failed to create person")
		s.auditor.RecordException(ctx, "CreatePerson", err.Error(), p.Name)
		return nil, err
	}

	s.auditor.RecordSuccess(ctx, "CreatePerson",
		fmt.Sprintf("person '%s' created with id %s", p.Name, p.ID), p.Name)
	s.metrics.IncrementPeopleCreated()
	return p, nil
}

// Rename changes a person's display name, keeping their identifier stable.
func (s *Service) Rename(ctx context.Context, currentName, newName string) (*models.Person, error) {
	p, err := s.store.FindByName(ctx, currentName)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			msg := fmt.Sprintf("person with name '%s' not found", currentName)
			s.auditor.RecordFailure(ctx, "UpdatePerson", msg, currentName)
			return nil, dErrors.New(dErrors.CodeNotFound, msg)
		}
		err = dErrors.Wrap(err, dErrors.CodeInternal, "failed to load person")
		s.auditor.RecordException(ctx, "UpdatePerson", err.Error(), currentName)
		return nil, err
	}

	if err := p.Rename(newName, requestcontext.Now(ctx)); err != nil {
		s.auditor.RecordFailure(ctx, "UpdatePerson", dErrors.Message(err), currentName)
		return nil, err
	}

	if err := s.store.Update(ctx, p); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			msg := fmt.Sprintf("person with name '%s' already exists", p.Name)
			s.auditor.RecordFailure(ctx, "UpdatePerson", msg, currentName)
			return nil, dErrors.New(dErrors.CodeConflict, msg)
		}
		err = dErrors.Wrap(err, dErrors.CodeInternal, "failed to update person")
		s.auditor.RecordException(ctx, "UpdatePerson", err.Error(), currentName)
		return nil, err
	}

	s.auditor.RecordSuccess(ctx, "UpdatePerson",
		fmt.Sprintf("person renamed from '%s' to '%s'", currentName, p.Name), p.Name)
	return p, nil
}

// GetByName looks up a single person.
func (s *Service) GetByName(ctx context.Context, name string) (*models.Person, error) {
	p, err := s.store.FindByName(ctx, name)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Newf(dErrors.CodeNotFound, "person with name '%s' not found", name)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load person")
	}
	return p, nil
}

// List returns every registered person ordered by name.
func (s *Service) List(ctx context.Context) ([]*models.Person, error) {
	people, err := s.store.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list people")
	}
	return people, nil
}
