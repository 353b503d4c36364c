package event

import (
	"errors"
	"time"

	"orderflow/internal/core/domain/model/kernel"
)

// ErrEventIsNotConstructed is returned when an Event was not created through
// NewEvent or RestoreEvent.
var ErrEventIsNotConstructed = errors.New("Event must be created via NewEvent or RestoreEvent constructor")

// Event is one append-only entry in an order's audit trail. Events are
// created once and never mutated; ordering is by the At timestamp, which is
// assigned by the writer rather than the store so no store-side ordering or
// secondary index is assumed.
type Event struct {
	id      kernel.UUID
	orderID kernel.UUID
	kind    Type
	actor   kernel.Actor
	at      time.Time
	meta    map[string]string

	isConstructed bool
}

// NewEvent creates an audit event stamped with the current time.
func NewEvent(orderID kernel.UUID, kind Type, actor kernel.Actor, meta map[string]string) (*Event, error) {
	return RestoreEvent(kernel.NewUUID(), orderID, kind, actor, time.Now().UTC(), meta)
}

// RestoreEvent reconstructs an event from persistence.
func RestoreEvent(
	id, orderID kernel.UUID,
	kind Type,
	actor kernel.Actor,
	at time.Time,
	meta map[string]string,
) (*Event, error) {
	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
		kind.Validate(),
		actor.Validate(),
	); err != nil {
		return nil, err
	}

	copied := make(map[string]string, len(meta))
	for k, v := range meta {
		copied[k] = v
	}

	return &Event{
		id:            id,
		orderID:       orderID,
		kind:          kind,
		actor:         actor,
		at:            at.UTC(),
		meta:          copied,
		isConstructed: true,
	}, nil
}

// ID returns the event's unique identifier.
func (e *Event) ID() kernel.UUID {
	return e.id
}

// OrderID returns the order the event belongs to.
func (e *Event) OrderID() kernel.UUID {
	return e.orderID
}

// Kind returns the event classification.
func (e *Event) Kind() Type {
	return e.kind
}

// Actor returns who performed the classified transition.
func (e *Event) Actor() kernel.Actor {
	return e.actor
}

// At returns the writer-assigned timestamp used for ordering.
func (e *Event) At() time.Time {
	return e.at
}

// Meta returns a copy of the free-form metadata attached to the event.
func (e *Event) Meta() map[string]string {
	copied := make(map[string]string, len(e.meta))
	for k, v := range e.meta {
		copied[k] = v
	}
	return copied
}

// Validate ensures the event was created through a constructor.
func (e *Event) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrEventIsNotConstructed
	}
	return nil
}
