package order

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
)

// ErrItemIsNotConstructed is returned when an Item was not created through
// NewItem or RestoreItem.
var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem or RestoreItem constructor")

// Item is one product line of an order. It tracks three quantities:
//
//   - qty: the amount the customer requested, fixed at creation
//   - preparedQty: the amount the warehouse has set aside
//   - purchasedQty: the amount restocked through purchasing but not yet
//     moved into preparation
//
// An item is short when preparedQty + purchasedQty < qty at close time.
// Item is immutable; the With* methods return updated copies, which keeps
// item lists safe to share between an order snapshot and a shipping guide.
type Item struct {
	key          kernel.ProductKey
	qty          kernel.Quantity
	preparedQty  kernel.Quantity
	purchasedQty kernel.Quantity
	obs          string

	isConstructed bool
}

// NewItem creates an item with the requested quantity and nothing prepared
// or purchased yet.
func NewItem(key kernel.ProductKey, qty kernel.Quantity) (Item, error) {
	return RestoreItem(key, qty, kernel.ZeroQuantity(), kernel.ZeroQuantity(), "")
}

// RestoreItem reconstructs an item from persistence with all quantities.
func RestoreItem(key kernel.ProductKey, qty, preparedQty, purchasedQty kernel.Quantity, obs string) (Item, error) {
	if err := errors.Join(
		key.Validate(),
		qty.Validate(),
		preparedQty.Validate(),
		purchasedQty.Validate(),
	); err != nil {
		return Item{}, err
	}

	return Item{
		key:           key,
		qty:           qty,
		preparedQty:   preparedQty,
		purchasedQty:  purchasedQty,
		obs:           obs,
		isConstructed: true,
	}, nil
}

// Key returns the composite product key of the line.
func (i Item) Key() kernel.ProductKey {
	return i.key
}

// Qty returns the requested quantity.
func (i Item) Qty() kernel.Quantity {
	return i.qty
}

// PreparedQty returns the quantity the warehouse has set aside.
func (i Item) PreparedQty() kernel.Quantity {
	return i.preparedQty
}

// PurchasedQty returns the restocked-but-not-yet-prepared quantity.
func (i Item) PurchasedQty() kernel.Quantity {
	return i.purchasedQty
}

// Obs returns the free-text observation attached to the line.
func (i Item) Obs() string {
	return i.obs
}

// WithPrepared returns a copy of the item with preparedQty replaced.
func (i Item) WithPrepared(q kernel.Quantity) Item {
	i.preparedQty = q
	return i
}

// WithPurchased returns a copy of the item with purchasedQty replaced.
func (i Item) WithPurchased(q kernel.Quantity) Item {
	i.purchasedQty = q
	return i
}

// WithObs returns a copy of the item with the observation replaced.
func (i Item) WithObs(obs string) Item {
	i.obs = obs
	return i
}

// DoneQty returns min(preparedQty, qty): the portion of the request that is
// actually fulfilled. Over-preparation does not count beyond the request.
func (i Item) DoneQty() kernel.Quantity {
	return i.preparedQty.Min(i.qty)
}

// IsShort reports whether prepared plus purchased coverage falls below the
// requested quantity.
func (i Item) IsShort() bool {
	return i.preparedQty.Add(i.purchasedQty).LessThan(i.qty)
}

// Validate ensures the item was created through a constructor.
func (i Item) Validate() error {
	if !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}
