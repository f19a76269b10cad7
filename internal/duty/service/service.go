// Package service holds the duty timeline core: the validator that screens
// proposed assignments, the mutator that applies them atomically, and the
// reader that reconstructs a person's history.
package service

import (
	"context"
	"time"

	"stargate/internal/audit"
	dutymodels "stargate/internal/duty/models"
	personmodels "stargate/internal/person/models"
	"stargate/internal/platform/metrics"
)

// PersonDirectory resolves person references by unique display name. The
// person registry guarantees name uniqueness before this module runs.
type PersonDirectory interface {
	FindByName(ctx context.Context, name string) (*personmodels.Person, error)
	// FindByNameForUpdate additionally pins the person for the duration of
	// the surrounding unit of work, serializing concurrent timeline
	// mutations for the same person. Implementations without row locks may
	// alias FindByName when the tx runner serializes by other means.
	FindByNameForUpdate(ctx context.Context, name string) (*personmodels.Person, error)
}

// Store is the duty and status persistence surface.
type Store interface {
	// FindByTitleAndStart reports an existing (title, start date) pair for
	// the person; used for duplicate detection.
	FindByTitleAndStart(ctx context.Context, personID personmodels.PersonID, title string, start time.Time) (*dutymodels.Duty, error)
	// FindOpen returns the person's duty with a null end date, if any.
	FindOpen(ctx context.Context, personID personmodels.PersonID) (*dutymodels.Duty, error)
	// ListByPerson returns all duties ordered by start date descending.
	ListByPerson(ctx context.Context, personID personmodels.PersonID) ([]*dutymodels.Duty, error)
	Insert(ctx context.Context, d *dutymodels.Duty) error
	SetEndDate(ctx context.Context, id dutymodels.DutyID, end time.Time) error

	GetStatus(ctx context.Context, personID personmodels.PersonID) (*dutymodels.CurrentStatus, error)
	UpsertStatus(ctx context.Context, s *dutymodels.CurrentStatus) error
}

// StoreTx brackets a unit of work so the validate and mutate steps for one
// person are atomic together. personName keys the serialization domain:
// different people's timelines are independent and may proceed
// concurrently.
type StoreTx interface {
	RunInTx(ctx context.Context, personName string, fn func(ctx context.Context) error) error
}

// Service wires the timeline core to its collaborators. All dependencies
// arrive here explicitly; nothing is looked up from ambient state.
type Service struct {
	people  PersonDirectory
	store   Store
	tx      StoreTx
	auditor audit.Recorder
	metrics *metrics.Metrics
}

func New(people PersonDirectory, store Store, tx StoreTx, auditor audit.Recorder, m *metrics.Metrics) *Service {
	return &Service{people: people, store: store, tx: tx, auditor: auditor, metrics: m}
}
