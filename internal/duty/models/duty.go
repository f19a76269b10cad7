package models

import (
	"strings"
	"time"

	"github.com/google/uuid"

	personmodels "stargate/internal/person/models"
	dErrors "stargate/pkg/domain-errors"
)

// DutyID identifies a single duty assignment.
type DutyID = uuid.UUID

// RetiredTitle is the sentinel duty title that marks the end of a career
// rather than a new active duty. Matched by exact, case-sensitive equality.
const RetiredTitle = "RETIRED"

// DateOnly strips the time-of-day and location from t, leaving a
// timezone-naive calendar date anchored at midnight UTC. All start and end
// dates in this module pass through it.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Duty is one entry in a person's assignment history.
//
// Invariants (per person):
//   - at most one duty has a nil EndDate at any time ("the open duty")
//   - a closed duty's end date is never rewritten; it is set exactly once,
//     when a later duty begins
//   - (title, start date) pairs are unique
type Duty struct {
	ID        DutyID                `json:"id"`
	PersonID  personmodels.PersonID `json:"person_id"`
	Rank      string                `json:"rank"`
	Title     string                `json:"title"`
	StartDate time.Time             `json:"start_date"`
	EndDate   *time.Time            `json:"end_date,omitempty"`
}

// IsOpen reports whether this is the person's currently active duty.
func (d *Duty) IsOpen() bool { return d.EndDate == nil }

// Close ends the duty one calendar day before the given successor start
// date, keeping the timeline non-overlapping regardless of real-world gaps.
func (d *Duty) Close(successorStart time.Time) {
	end := DateOnly(successorStart).AddDate(0, 0, -1)
	d.EndDate = &end
}

// Proposed is a requested new assignment before validation.
type Proposed struct {
	PersonName string    `json:"name"`
	Rank       string    `json:"rank"`
	Title      string    `json:"duty_title"`
	StartDate  time.Time `json:"duty_start_date"`
}

// ValidateFields rejects blank person name, rank, or title. Existence and
// duplicate checks need storage and live in the service.
func (p Proposed) ValidateFields() error {
	if strings.TrimSpace(p.PersonName) == "" {
		return dErrors.New(dErrors.CodeValidation, "person name cannot be null or empty")
	}
	if strings.TrimSpace(p.Rank) == "" {
		return dErrors.New(dErrors.CodeValidation, "rank cannot be null or empty")
	}
	if strings.TrimSpace(p.Title) == "" {
		return dErrors.New(dErrors.CodeValidation, "duty title cannot be null or empty")
	}
	return nil
}

// IsRetirement reports whether the proposal carries the retirement sentinel.
func (p Proposed) IsRetirement() bool { return p.Title == RetiredTitle }

// NewDuty builds the open duty record for an accepted proposal.
func NewDuty(personID personmodels.PersonID, p Proposed) *Duty {
	return &Duty{
		ID:        uuid.New(),
		PersonID:  personID,
		Rank:      p.Rank,
		Title:     p.Title,
		StartDate: DateOnly(p.StartDate),
		EndDate:   nil,
	}
}
