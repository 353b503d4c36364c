package order

import (
	"errors"
	"fmt"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through one of the factory methods. This ensures all orders are properly
	// validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder, NewBulkBatch, NewBulkSub or RestoreOrder")

	// ErrNotABulkBatch is returned when a batch-only operation is invoked on a
	// normal or sub order.
	ErrNotABulkBatch = errors.New("operation requires a BULK_BATCH order")

	// ErrOrderIsArchived is returned when a mutation targets an archived batch.
	ErrOrderIsArchived = errors.New("order is archived")
)

// Order is the aggregate root for a customer order in the system. It manages
// the lifecycle from intake through warehouse preparation, invoicing and
// delivery, including the bulk linkage between a consolidated batch and the
// customer orders it prepares.
//
// Order follows these invariants:
//   - Must have a valid unique identifier
//   - Status transitions follow the explicit legal-transition table
//   - A BULK_SUB always references its owning BULK_BATCH; a BULK_BATCH lists
//     the IDs of all its sub-orders (bidirectional referential integrity,
//     enforced at creation inside one atomic commit)
//   - Orders are never deleted: they reach a terminal status, or a BULK_BATCH
//     is archived after close
//   - Can only be created through the factory methods
//
// The struct uses private fields to ensure encapsulation and maintains its
// invariants through validated methods.
type Order struct {
	id   kernel.UUID
	kind Kind

	status   Status
	archived bool

	clientID   string
	contractID string
	locationID string

	// date is the requested delivery date.
	date time.Time

	items   []Item
	carrier string

	// linkedBatchID is set on BULK_SUB orders and points at the owning batch.
	linkedBatchID *kernel.UUID

	// subOrderIDs is set on BULK_BATCH orders and lists the delegated orders.
	subOrderIDs []kernel.UUID

	warehouseStartedAt *time.Time
	warehouseStartedBy string
	warehouseClosedAt  *time.Time
	warehouseClosedBy  string

	// version is the optimistic-concurrency counter; persistence rejects
	// updates whose version does not match the stored row.
	version int

	createdAt time.Time
	updatedAt time.Time

	isConstructed bool
}

// NewOrder creates a regular customer order in ESPERA status.
//
// Parameters:
//   - id: unique identifier (must be a valid UUID)
//   - clientID: the ordering client reference (required)
//   - contractID, locationID: contract and delivery-location references
//   - date: requested delivery date (required)
//   - carrier: carrier reference, may be empty until dispatch
//   - items: the requested product lines (at least one)
func NewOrder(
	id kernel.UUID,
	clientID, contractID, locationID string,
	date time.Time,
	carrier string,
	items []Item,
) (*Order, error) {
	o := &Order{
		kind:          KindNormal,
		status:        StatusEspera,
		contractID:    contractID,
		locationID:    locationID,
		carrier:       carrier,
		createdAt:     time.Now().UTC(),
		isConstructed: true,
	}
	o.updatedAt = o.createdAt

	if err := errors.Join(
		o.setID(id),
		o.setClientID(clientID),
		o.setDate(date),
		o.setItems(items),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// NewBulkBatch creates the consolidated warehouse job aggregating several
// customer orders. Items must already be consolidated by product key, with
// each line's qty equal to the sum of the corresponding sub-order quantities;
// subOrderIDs lists the delegated orders. The batch carries no client of its
// own.
func NewBulkBatch(
	id kernel.UUID,
	date time.Time,
	items []Item,
	subOrderIDs []kernel.UUID,
) (*Order, error) {
	o := &Order{
		kind:          KindBulkBatch,
		status:        StatusEspera,
		createdAt:     time.Now().UTC(),
		isConstructed: true,
	}
	o.updatedAt = o.createdAt

	if err := errors.Join(
		o.setID(id),
		o.setDate(date),
		o.setItems(items),
		o.setSubOrderIDs(subOrderIDs),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// NewBulkSub creates a customer order whose preparation is delegated to the
// bulk batch identified by batchID.
func NewBulkSub(
	id kernel.UUID,
	clientID, contractID, locationID string,
	date time.Time,
	carrier string,
	items []Item,
	batchID kernel.UUID,
) (*Order, error) {
	o, err := NewOrder(id, clientID, contractID, locationID, date, carrier, items)
	if err != nil {
		return nil, err
	}

	if err = batchID.Validate(); err != nil {
		return nil, err
	}

	o.kind = KindBulkSub
	o.linkedBatchID = &batchID
	return o, nil
}

// RestoreOrderParams carries the full persisted state of an order.
type RestoreOrderParams struct {
	ID                 kernel.UUID
	Kind               Kind
	Status             Status
	Archived           bool
	ClientID           string
	ContractID         string
	LocationID         string
	Date               time.Time
	Items              []Item
	Carrier            string
	LinkedBatchID      *kernel.UUID
	SubOrderIDs        []kernel.UUID
	WarehouseStartedAt *time.Time
	WarehouseStartedBy string
	WarehouseClosedAt  *time.Time
	WarehouseClosedBy  string
	Version            int
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// RestoreOrder reconstructs an order aggregate from persistence.
// It validates identity, kind, status and version but deliberately does not
// re-run creation rules: historical rows must load even if intake rules have
// since tightened.
func RestoreOrder(p RestoreOrderParams) (*Order, error) {
	if err := errors.Join(
		p.ID.Validate(),
		p.Kind.Validate(),
		p.Status.Validate(),
	); err != nil {
		return nil, err
	}

	if p.Version < 0 {
		return nil, errs.NewVersionIsInvalidErrorWithCause(
			"version",
			fmt.Errorf("%d is negative", p.Version),
		)
	}

	for _, item := range p.Items {
		if err := item.Validate(); err != nil {
			return nil, err
		}
	}

	return &Order{
		id:                 p.ID,
		kind:               p.Kind,
		status:             p.Status,
		archived:           p.Archived,
		clientID:           p.ClientID,
		contractID:         p.ContractID,
		locationID:         p.LocationID,
		date:               p.Date,
		items:              p.Items,
		carrier:            p.Carrier,
		linkedBatchID:      p.LinkedBatchID,
		subOrderIDs:        p.SubOrderIDs,
		warehouseStartedAt: p.WarehouseStartedAt,
		warehouseStartedBy: p.WarehouseStartedBy,
		warehouseClosedAt:  p.WarehouseClosedAt,
		warehouseClosedBy:  p.WarehouseClosedBy,
		version:            p.Version,
		createdAt:          p.CreatedAt,
		updatedAt:          p.UpdatedAt,
		isConstructed:      true,
	}, nil
}

// Validate ensures the Order instance was properly constructed through a
// factory method. This prevents bypassing validation by directly
// instantiating the struct.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Kind returns the order kind.
func (o *Order) Kind() Kind {
	return o.kind
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// IsArchived reports whether the order is an archived bulk batch.
// Archived batches stay readable for audit but accept no further mutations.
func (o *Order) IsArchived() bool {
	return o.archived
}

// IsActive reports whether the order should appear in active warehouse views:
// not terminal-stated and not archived.
func (o *Order) IsActive() bool {
	return !o.status.IsTerminal() && !o.archived
}

// ClientID returns the ordering client reference. Empty for bulk batches.
func (o *Order) ClientID() string {
	return o.clientID
}

// ContractID returns the contract reference.
func (o *Order) ContractID() string {
	return o.contractID
}

// LocationID returns the delivery-location reference.
func (o *Order) LocationID() string {
	return o.locationID
}

// Date returns the requested delivery date.
func (o *Order) Date() time.Time {
	return o.date
}

// Carrier returns the carrier reference.
func (o *Order) Carrier() string {
	return o.carrier
}

// Items returns a copy of the order's product lines. Mutating the returned
// slice does not affect the aggregate.
func (o *Order) Items() []Item {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}

// Item returns the line for the given product key.
func (o *Order) Item(key kernel.ProductKey) (Item, bool) {
	for _, item := range o.items {
		if item.Key().IsEqual(key) {
			return item, true
		}
	}
	return Item{}, false
}

// LinkedBatchID returns the owning batch ID for a BULK_SUB order, nil otherwise.
func (o *Order) LinkedBatchID() *kernel.UUID {
	return o.linkedBatchID
}

// SubOrderIDs returns the delegated order IDs of a BULK_BATCH, nil otherwise.
func (o *Order) SubOrderIDs() []kernel.UUID {
	ids := make([]kernel.UUID, len(o.subOrderIDs))
	copy(ids, o.subOrderIDs)
	return ids
}

// WarehouseStartedAt returns when preparation started, nil if it has not.
func (o *Order) WarehouseStartedAt() *time.Time {
	return o.warehouseStartedAt
}

// WarehouseStartedBy returns the actor ID that started preparation.
func (o *Order) WarehouseStartedBy() string {
	return o.warehouseStartedBy
}

// WarehouseClosedAt returns when preparation closed, nil if it has not.
func (o *Order) WarehouseClosedAt() *time.Time {
	return o.warehouseClosedAt
}

// WarehouseClosedBy returns the actor ID that closed preparation.
func (o *Order) WarehouseClosedBy() string {
	return o.warehouseClosedBy
}

// Version returns the optimistic-concurrency counter.
func (o *Order) Version() int {
	return o.version
}

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the last-mutation timestamp.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// ChangeStatus moves the order along a legal edge of the state machine.
//
// Returns an error when the order is archived or the edge is not in the
// legal-transition table. A no-op change (target equals current status) is
// rejected; callers that only patch non-status fields must not call this.
func (o *Order) ChangeStatus(target Status) error {
	if o.archived {
		return ErrOrderIsArchived
	}

	newStatus, err := o.status.TransitionTo(target)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.touch()
	return nil
}

// SetCarrier updates the carrier reference.
func (o *Order) SetCarrier(carrier string) {
	o.carrier = carrier
	o.touch()
}

// MarkWarehouseStarted stamps the start of preparation.
func (o *Order) MarkWarehouseStarted(actor kernel.Actor, at time.Time) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	t := at.UTC()
	o.warehouseStartedAt = &t
	o.warehouseStartedBy = actor.ID()
	o.touch()
	return nil
}

// MarkWarehouseClosed stamps the close of preparation.
func (o *Order) MarkWarehouseClosed(actor kernel.Actor, at time.Time) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	t := at.UTC()
	o.warehouseClosedAt = &t
	o.warehouseClosedBy = actor.ID()
	o.touch()
	return nil
}

// ApplyItemsDraft overwrites prepared/purchased quantities and observations
// from a warehouse draft. Every draft line must match an existing product
// key; requested quantities are fixed at creation and never patched here.
func (o *Order) ApplyItemsDraft(draft []Item) error {
	if o.archived {
		return ErrOrderIsArchived
	}

	for _, d := range draft {
		if err := d.Validate(); err != nil {
			return err
		}

		idx := o.itemIndex(d.Key())
		if idx < 0 {
			return errs.NewObjectNotFoundError("item", d.Key().String())
		}

		o.items[idx] = o.items[idx].
			WithPrepared(d.PreparedQty()).
			WithPurchased(d.PurchasedQty()).
			WithObs(d.Obs())
	}

	o.touch()
	return nil
}

// ApplyPreparedQuantities sets preparedQty per product key. Used by the bulk
// distribution engine when fanning a batch's prepared amounts back out to its
// sub-orders. Every key must match an existing line.
func (o *Order) ApplyPreparedQuantities(prepared map[kernel.ProductKey]kernel.Quantity) error {
	if o.archived {
		return ErrOrderIsArchived
	}

	for key, qty := range prepared {
		if err := qty.Validate(); err != nil {
			return err
		}

		idx := o.itemIndex(key)
		if idx < 0 {
			return errs.NewObjectNotFoundError("item", key.String())
		}

		o.items[idx] = o.items[idx].WithPrepared(qty)
	}

	o.touch()
	return nil
}

// HasMissingItems reports whether any line's prepared plus purchased coverage
// falls below its requested quantity.
func (o *Order) HasMissingItems() bool {
	for _, item := range o.items {
		if item.IsShort() {
			return true
		}
	}
	return false
}

// Archive marks a closed bulk batch as archived so it disappears from active
// warehouse views while remaining for audit. Only a BULK_BATCH can be
// archived; archiving twice fails, which is what makes a replayed batch close
// detectable.
func (o *Order) Archive() error {
	if o.kind != KindBulkBatch {
		return ErrNotABulkBatch
	}
	if o.archived {
		return ErrOrderIsArchived
	}

	o.archived = true
	o.touch()
	return nil
}

func (o *Order) itemIndex(key kernel.ProductKey) int {
	for i, item := range o.items {
		if item.Key().IsEqual(key) {
			return i
		}
	}
	return -1
}

func (o *Order) touch() {
	o.updatedAt = time.Now().UTC()
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setClientID(clientID string) error {
	if clientID == "" {
		return errs.NewValueIsRequiredError("clientID")
	}
	o.clientID = clientID
	return nil
}

func (o *Order) setDate(date time.Time) error {
	if date.IsZero() {
		return errs.NewValueIsRequiredError("date")
	}
	o.date = date
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	seen := make(map[kernel.ProductKey]struct{}, len(items))
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
		if _, dup := seen[item.Key()]; dup {
			return errs.NewValueIsInvalidErrorWithCause(
				"items",
				fmt.Errorf("duplicate product key %s", item.Key()),
			)
		}
		seen[item.Key()] = struct{}{}
	}

	o.items = make([]Item, len(items))
	copy(o.items, items)
	return nil
}

func (o *Order) setSubOrderIDs(ids []kernel.UUID) error {
	if len(ids) == 0 {
		return errs.NewValueIsRequiredError("subOrderIDs")
	}

	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return err
		}
	}

	o.subOrderIDs = make([]kernel.UUID, len(ids))
	copy(o.subOrderIDs, ids)
	return nil
}
