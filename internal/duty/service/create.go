package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	dutymodels "stargate/internal/duty/models"
	dErrors "stargate/pkg/domain-errors"
	"stargate/pkg/platform/sentinel"
)

// Create applies a proposed assignment to the person's timeline and returns
// the new duty's identifier.
//
// The whole read-modify-write sequence runs inside one unit of work keyed
// by person name, so the validation reads and the close-previous plus
// insert-new writes are atomic together; on any failure no partial state is
// visible to subsequent reads. Within the unit of work it:
//
//  1. loads and pins the person
//  2. rejects duplicate (title, start date) submissions
//  3. creates or updates the current-status summary
//  4. closes the open duty one day before the new start date
//  5. inserts the new duty as the open one
//
// The audit notification fires after the unit of work resolves and never
// influences the result.
func (s *Service) Create(ctx context.Context, p dutymodels.Proposed) (dutymodels.DutyID, error) {
	if err := p.ValidateFields(); err != nil {
		s.metrics.IncrementValidationFailure(reasonMissingField)
		s.auditor.RecordFailure(ctx, "CreateAstronautDuty", dErrors.Message(err), p.PersonName)
		return uuid.Nil, err
	}

	var created dutymodels.DutyID
	err := s.tx.RunInTx(ctx, p.PersonName, func(txCtx context.Context) error {
		person, err := s.people.FindByNameForUpdate(txCtx, p.PersonName)
		if err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				s.metrics.IncrementValidationFailure(reasonPersonNotFound)
				return dErrors.Newf(dErrors.CodeValidation, "person with name '%s' not found", p.PersonName)
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up person")
		}

		if err := s.rejectDuplicate(txCtx, person.ID, p); err != nil {
			return err
		}

		status, err := s.store.GetStatus(txCtx, person.ID)
		switch {
		case errors.Is(err, sentinel.ErrNotFound):
			status = dutymodels.NewCurrentStatus(person.ID, p)
		case err != nil:
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load current status")
		default:
			status.Apply(p)
		}
		if err := s.store.UpsertStatus(txCtx, status); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save current status")
		}

		// Close the open duty, if any. Closing by open state rather than
		// by most-recent start date keeps the at-most-one-open invariant
		// even when duties arrive out of chronological order.
		open, err := s.store.FindOpen(txCtx, person.ID)
		if err != nil && !errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load open duty")
		}
		if open != nil {
			open.Close(p.StartDate)
			if err := s.store.SetEndDate(txCtx, open.ID, *open.EndDate); err != nil {
				return dErrors.Wrap(err, dErrors.CodeInternal, "failed to close previous duty")
			}
		}

		duty := dutymodels.NewDuty(person.ID, p)
		if err := s.store.Insert(txCtx, duty); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to insert duty")
		}
		created = duty.ID
		return nil
	})
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeValidation) {
			s.auditor.RecordFailure(ctx, "CreateAstronautDuty", dErrors.Message(err), p.PersonName)
		} else {
			s.auditor.RecordException(ctx, "CreateAstronautDuty", err.Error(), p.PersonName)
		}
		return uuid.Nil, err
	}

	s.auditor.RecordSuccess(ctx, "CreateAstronautDuty",
		fmt.Sprintf("astronaut duty '%s' created for '%s' starting %s",
			p.Title, p.PersonName, dutymodels.DateOnly(p.StartDate).Format("2006-01-02")),
		p.PersonName)
	s.metrics.IncrementDutiesCreated()
	return created, nil
}
