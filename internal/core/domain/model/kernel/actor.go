package kernel

import (
	"errors"

	"orderflow/internal/pkg/errs"
)

// ErrActorIsNotConstructed is returned when an Actor was not created through
// NewActor.
var ErrActorIsNotConstructed = errors.New("Actor must be created via NewActor constructor")

// Actor identifies the operator on whose behalf a mutating operation runs.
// Every command takes an Actor as an explicit argument; caller identity is
// never smuggled inside a persisted patch. The role is recorded verbatim in
// audit events so reviewers can see which role performed each transition.
type Actor struct {
	id   string
	role string
	name string

	isConstructed bool
}

// NewActor creates a validated Actor. ID and role are required; the display
// name falls back to the ID when empty.
func NewActor(id, role, name string) (Actor, error) {
	if id == "" {
		return Actor{}, errs.NewValueIsRequiredError("actorID")
	}
	if role == "" {
		return Actor{}, errs.NewValueIsRequiredError("actorRole")
	}
	if name == "" {
		name = id
	}

	return Actor{
		id:            id,
		role:          role,
		name:          name,
		isConstructed: true,
	}, nil
}

// ID returns the actor's unique identifier.
func (a Actor) ID() string {
	return a.id
}

// Role returns the actor's role, e.g. "armazem" or "gestor".
func (a Actor) Role() string {
	return a.role
}

// Name returns the actor's display name.
func (a Actor) Name() string {
	return a.name
}

// Validate ensures the actor was created through NewActor.
func (a Actor) Validate() error {
	if !a.isConstructed {
		return ErrActorIsNotConstructed
	}
	return nil
}
