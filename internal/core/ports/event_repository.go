package ports

import (
	"context"

	"orderflow/internal/core/domain/model/event"
	"orderflow/internal/core/domain/model/kernel"
)

// EventRepository defines the persistence contract for the audit trail.
//
// Audit writes happen outside the unit of work: an event is appended after
// the business transaction committed, and a failed append must never undo
// the committed change. Callers log and swallow append errors.
type EventRepository interface {
	// Add appends a single audit event.
	Add(ctx context.Context, evt *event.Event) error

	// ListByOrder returns all events recorded for an order, ordered by
	// their occurrence timestamp.
	ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*event.Event, error)
}
