package services

import (
	"github.com/shopspring/decimal"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
)

// Progress summarizes how fulfilled an order's item list is.
type Progress struct {
	// TotalQty is the sum of requested quantities across all items.
	TotalQty kernel.Quantity

	// DoneQty is the sum of min(preparedQty, qty) per item: over-preparing a
	// line never counts beyond its request.
	DoneQty kernel.Quantity

	// Percent is DoneQty/TotalQty as a whole percentage, rounded half-up.
	// Zero when TotalQty is zero.
	Percent int
}

// PreparationTracker is a domain service computing fulfillment progress and
// the missing-items determination for a warehouse job.
//
// An order closed with missing items lands on FALTAS; one closed complete
// lands on A_FATURAR. Closing below a completeness threshold is a soft,
// user-confirmable warning at the caller; it is never enforced here.
type PreparationTracker struct{}

// NewPreparationTracker creates a new PreparationTracker instance.
func NewPreparationTracker() PreparationTracker {
	return PreparationTracker{}
}

// Progress computes the fulfillment summary for an item list.
func (PreparationTracker) Progress(items []order.Item) Progress {
	total := kernel.ZeroQuantity()
	done := kernel.ZeroQuantity()

	for _, item := range items {
		total = total.Add(item.Qty())
		done = done.Add(item.DoneQty())
	}

	percent := 0
	if !total.IsZero() {
		percent = int(done.Ratio(total).
			Mul(kernel.QuantityFromFloat(100)).
			Decimal().
			Round(0).
			IntPart())
	}

	return Progress{TotalQty: total, DoneQty: done, Percent: percent}
}

// HasMissing reports whether any item's prepared plus purchased coverage
// falls below its requested quantity.
func (PreparationTracker) HasMissing(items []order.Item) bool {
	for _, item := range items {
		if item.IsShort() {
			return true
		}
	}
	return false
}

// CloseDestination returns the status a warehouse job lands on when closed
// with the given items: FALTAS when anything is missing, A_FATURAR otherwise.
func (t PreparationTracker) CloseDestination(items []order.Item) order.Status {
	if t.HasMissing(items) {
		return order.StatusFaltas
	}
	return order.StatusAFaturar
}

// ConservationTolerance returns the acceptable absolute deviation between a
// batch's prepared quantity and the sum of the amounts distributed to its n
// sub-orders: n × 0.01, one rounding step per sub-order.
func ConservationTolerance(subOrders int) kernel.Quantity {
	tolerance, _ := kernel.NewQuantity(decimal.New(int64(subOrders), -2))
	return tolerance
}
