package ports

import (
	"context"

	"orderflow/internal/core/domain/model/guide"
	"orderflow/internal/core/domain/model/kernel"
)

// GuideRepository defines the persistence contract for shipping guides.
// Guides are written inside the same transaction as the status change that
// triggers them, so issuance and the transition commit or roll back together.
type GuideRepository interface {
	// Add persists a new shipping guide.
	Add(ctx context.Context, g *guide.ShippingGuide) error

	// ExistsForOrder reports whether a guide was already issued for the
	// given order. Used to keep issuance to exactly one guide per order.
	ExistsForOrder(ctx context.Context, orderID kernel.UUID) (bool, error)
}
