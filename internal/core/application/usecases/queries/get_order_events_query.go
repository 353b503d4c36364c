package queries

import (
	"errors"
	"time"

	"orderflow/internal/core/domain/model/event"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var (
	ErrGetOrderEventsQueryIsNotConstructed = errors.New(
		"GetOrderEventsQuery must be created via NewGetOrderEventsQuery constructor",
	)
)

// GetOrderEventsQuery retrieves the audit trail of a single order.
// Events come back in the order they were recorded, oldest first.
type GetOrderEventsQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderEventsQuery creates a query for the given order's audit trail.
func NewGetOrderEventsQuery(orderID kernel.UUID) (GetOrderEventsQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderEventsQuery{}, errs.NewValueIsRequiredErrorWithCause("orderID", err)
	}

	return GetOrderEventsQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// OrderID returns the order whose trail is requested.
func (q GetOrderEventsQuery) OrderID() kernel.UUID {
	return q.orderID
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrderEventsQueryIsNotConstructed if validation fails.
func (q GetOrderEventsQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderEventsQueryIsNotConstructed)
}

// GetOrderEventsQueryResponse represents one recorded audit event.
type GetOrderEventsQueryResponse struct {
	ID        kernel.UUID
	OrderID   kernel.UUID
	Kind      event.Type
	ActorID   string
	ActorName string
	At        time.Time
	Meta      map[string]string
}
