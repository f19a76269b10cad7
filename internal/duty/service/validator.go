package service

import (
	"context"
	"errors"

	dutymodels "stargate/internal/duty/models"
	personmodels "stargate/internal/person/models"
	dErrors "stargate/pkg/domain-errors"
	"stargate/pkg/platform/sentinel"
)

// Validation failure reasons, used as metric labels.
const (
	reasonMissingField        = "missing_field"
	reasonPersonNotFound      = "person_not_found"
	reasonDuplicateAssignment = "duplicate_assignment"
)

// Validate screens a proposed assignment before any mutation:
// blank fields, unknown person, or a resubmitted (title, start date) pair
// for the same person. It is read-only; chronological ordering against the
// open duty is intentionally not checked, since the mutator always closes
// the open duty rather than rejecting out-of-order input.
//
// Create runs the same checks inside its transaction; calling Validate
// separately is only useful for fail-fast feedback at the boundary.
func (s *Service) Validate(ctx context.Context, p dutymodels.Proposed) error {
	if err := p.ValidateFields(); err != nil {
		s.metrics.IncrementValidationFailure(reasonMissingField)
		return err
	}

	person, err := s.people.FindByName(ctx, p.PersonName)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			s.metrics.IncrementValidationFailure(reasonPersonNotFound)
			return dErrors.Newf(dErrors.CodeValidation, "person with name '%s' not found", p.PersonName)
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up person")
	}

	return s.rejectDuplicate(ctx, person.ID, p)
}

// rejectDuplicate fails when the person already has a duty with the same
// title and start date. Absence is the happy path.
func (s *Service) rejectDuplicate(ctx context.Context, personID personmodels.PersonID, p dutymodels.Proposed) error {
	existing, err := s.store.FindByTitleAndStart(ctx, personID, p.Title, dutymodels.DateOnly(p.StartDate))
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to check for duplicate duty")
	}
	if existing != nil {
		s.metrics.IncrementValidationFailure(reasonDuplicateAssignment)
		return dErrors.Newf(dErrors.CodeValidation,
			"duty '%s' with start date %s already exists", p.Title, dutymodels.DateOnly(p.StartDate).Format("2006-01-02"))
	}
	return nil
}
