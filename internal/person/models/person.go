package models

import (
	"strings"
	"time"

	"github.com/google/uuid"

	dErrors "stargate/pkg/domain-errors"
)

// PersonID identifies a person across modules.
type PersonID = uuid.UUID

// Person is the aggregate root for an individual tracked by the system.
//
// Invariants:
//   - Name is non-empty and unique system-wide (enforced by the store)
//   - CreatedAt is immutable after construction
//
// A person may or may not be an astronaut; astronaut state lives in the
// duty module, which references people by ID only.
type Person struct {
	ID        PersonID  `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewPerson constructs a person, validating the display name.
func NewPerson(name string, now time.Time) (*Person, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "person name cannot be null or empty")
	}
	if len(name) > 200 {
		return nil, dErrors.New(dErrors.CodeValidation, "person name must be 200 characters or less")
	}
	return &Person{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Rename applies a new display name. Uniqueness of the new name is the
// store's concern; this only guards shape.
func (p *Person) Rename(newName string, now time.Time) error {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return dErrors.New(dErrors.CodeValidation, "person name cannot be null or empty")
	}
	if len(newName) > 200 {
		return dErrors.New(dErrors.CodeValidation, "person name must be 200 characters or less")
	}
	p.Name = newName
	p.UpdatedAt = now
	return nil
}
