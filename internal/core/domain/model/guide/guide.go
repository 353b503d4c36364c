package guide

import (
	"errors"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
)

// ErrGuideIsNotConstructed is returned when a ShippingGuide was not created
// through NewShippingGuide or RestoreShippingGuide.
var ErrGuideIsNotConstructed = errors.New("ShippingGuide must be created via NewShippingGuide or RestoreShippingGuide constructor")

// ShippingGuide is the immutable hand-off record given to invoicing when a
// bulk-linked order becomes ready to bill. It snapshots the order's items at
// the moment of the PREP -> A_FATURAR transition, so later edits to the order
// never change what invoicing sees.
//
// A guide is issued exactly once per order transition; issuing rides in the
// same atomic commit as the status change that triggers it.
type ShippingGuide struct {
	id         kernel.UUID
	orderID    kernel.UUID
	batchID    kernel.UUID
	clientID   string
	contractID string
	locationID string
	items      []order.Item
	status     Status
	createdAt  time.Time
	createdBy  string

	isConstructed bool
}

// NewShippingGuide snapshots a bulk-linked order into a PENDENTE guide.
// The order must be linked to a bulk batch; items are copied at call time.
func NewShippingGuide(o *order.Order, actor kernel.Actor) (*ShippingGuide, error) {
	if err := errors.Join(o.Validate(), actor.Validate()); err != nil {
		return nil, err
	}

	batchID := o.LinkedBatchID()
	if batchID == nil {
		return nil, errors.New("shipping guide requires an order linked to a bulk batch")
	}

	return &ShippingGuide{
		id:            kernel.NewUUID(),
		orderID:       o.ID(),
		batchID:       *batchID,
		clientID:      o.ClientID(),
		contractID:    o.ContractID(),
		locationID:    o.LocationID(),
		items:         o.Items(),
		status:        StatusPendente,
		createdAt:     time.Now().UTC(),
		createdBy:     actor.ID(),
		isConstructed: true,
	}, nil
}

// RestoreShippingGuideParams carries the full persisted state of a guide.
type RestoreShippingGuideParams struct {
	ID         kernel.UUID
	OrderID    kernel.UUID
	BatchID    kernel.UUID
	ClientID   string
	ContractID string
	LocationID string
	Items      []order.Item
	Status     Status
	CreatedAt  time.Time
	CreatedBy  string
}

// RestoreShippingGuide reconstructs a guide from persistence.
func RestoreShippingGuide(p RestoreShippingGuideParams) (*ShippingGuide, error) {
	if err := errors.Join(
		p.ID.Validate(),
		p.OrderID.Validate(),
		p.BatchID.Validate(),
		p.Status.Validate(),
	); err != nil {
		return nil, err
	}

	return &ShippingGuide{
		id:            p.ID,
		orderID:       p.OrderID,
		batchID:       p.BatchID,
		clientID:      p.ClientID,
		contractID:    p.ContractID,
		locationID:    p.LocationID,
		items:         p.Items,
		status:        p.Status,
		createdAt:     p.CreatedAt,
		createdBy:     p.CreatedBy,
		isConstructed: true,
	}, nil
}

// ID returns the guide's unique identifier.
func (g *ShippingGuide) ID() kernel.UUID {
	return g.id
}

// OrderID returns the source order.
func (g *ShippingGuide) OrderID() kernel.UUID {
	return g.orderID
}

// BatchID returns the bulk batch the source order was delegated to.
func (g *ShippingGuide) BatchID() kernel.UUID {
	return g.batchID
}

// ClientID returns the snapshotted client reference.
func (g *ShippingGuide) ClientID() string {
	return g.clientID
}

// ContractID returns the snapshotted contract reference.
func (g *ShippingGuide) ContractID() string {
	return g.contractID
}

// LocationID returns the snapshotted delivery-location reference.
func (g *ShippingGuide) LocationID() string {
	return g.locationID
}

// Items returns a copy of the item snapshot.
func (g *ShippingGuide) Items() []order.Item {
	items := make([]order.Item, len(g.items))
	copy(items, g.items)
	return items
}

// Status returns the invoicing status of the guide.
func (g *ShippingGuide) Status() Status {
	return g.status
}

// CreatedAt returns when the guide was issued.
func (g *ShippingGuide) CreatedAt() time.Time {
	return g.createdAt
}

// CreatedBy returns the actor ID that triggered issuance.
func (g *ShippingGuide) CreatedBy() string {
	return g.createdBy
}

// Validate ensures the guide was created through a constructor.
func (g *ShippingGuide) Validate() error {
	if g == nil || !g.isConstructed {
		return ErrGuideIsNotConstructed
	}
	return nil
}
