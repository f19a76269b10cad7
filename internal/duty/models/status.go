package models

import (
	"time"

	personmodels "stargate/internal/person/models"
)

// CurrentStatus is the derived one-row summary of a person's career.
//
// Invariants:
//   - created lazily on the first duty, never deleted
//   - CareerStartDate equals the first-ever duty's start date and never
//     changes afterward
//   - CurrentRank/CurrentTitle mirror the most recently recorded duty
//   - CareerEndDate is set when a RETIRED duty is recorded; a later
//     retirement overwrites it (latest retirement wins)
type CurrentStatus struct {
	PersonID        personmodels.PersonID `json:"person_id"`
	CurrentRank     string                `json:"current_rank"`
	CurrentTitle    string                `json:"current_title"`
	CareerStartDate time.Time             `json:"career_start_date"`
	CareerEndDate   *time.Time            `json:"career_end_date,omitempty"`
}

// NewCurrentStatus derives the initial summary from a person's first duty.
func NewCurrentStatus(personID personmodels.PersonID, p Proposed) *CurrentStatus {
	s := &CurrentStatus{
		PersonID:        personID,
		CurrentRank:     p.Rank,
		CurrentTitle:    p.Title,
		CareerStartDate: DateOnly(p.StartDate),
	}
	s.applyRetirement(p)
	return s
}

// Apply folds a newly accepted duty into the summary. The career start date
// is deliberately untouched; its first-ever value is permanent.
func (s *CurrentStatus) Apply(p Proposed) {
	s.CurrentRank = p.Rank
	s.CurrentTitle = p.Title
	s.applyRetirement(p)
}

func (s *CurrentStatus) applyRetirement(p Proposed) {
	if !p.IsRetirement() {
		return
	}
	// Career ends the day before the retirement duty begins.
	end := DateOnly(p.StartDate).AddDate(0, 0, -1)
	s.CareerEndDate = &end
}

// IsRetired reports whether a career end has been recorded.
func (s *CurrentStatus) IsRetired() bool { return s.CareerEndDate != nil }
