package queries

import (
	"errors"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/guard"
)

var (
	ErrGetPendingShippingGuidesQueryIsNotConstructed = errors.New(
		"GetPendingShippingGuidesQuery must be created via NewGetPendingShippingGuidesQuery constructor",
	)
)

// GetPendingShippingGuidesQuery retrieves all shipping guides awaiting
// invoicing. Feeds the billing work queue.
type GetPendingShippingGuidesQuery struct {
	guard guard.ConstructorGuard
}

// NewGetPendingShippingGuidesQuery creates a query for PENDENTE guides.
// This is a parameterless query that fetches the whole billing backlog.
func NewGetPendingShippingGuidesQuery() GetPendingShippingGuidesQuery {
	return GetPendingShippingGuidesQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetPendingShippingGuidesQueryIsNotConstructed if validation fails.
func (q GetPendingShippingGuidesQuery) Validate() error {
	return q.guard.Validate(ErrGetPendingShippingGuidesQueryIsNotConstructed)
}

// GetPendingShippingGuidesQueryResponse represents one guide awaiting
// invoicing. Item snapshots stay in the guide record; the work queue only
// needs the references.
type GetPendingShippingGuidesQueryResponse struct {
	ID         kernel.UUID
	OrderID    kernel.UUID
	BatchID    kernel.UUID
	ClientID   string
	ContractID string
	CreatedAt  time.Time
}
