package kernel

import (
	"errors"
	"fmt"

	"orderflow/internal/pkg/errs"
)

// ErrProductKeyIsNotConstructed is returned when a ProductKey was not created
// through NewProductKey.
var ErrProductKeyIsNotConstructed = errors.New("ProductKey must be created via NewProductKey constructor")

// ProductKey is the composite identity of a product line inside an order:
// the product identifier, the unit it is measured in, and its display name.
// Two items refer to the same product line only when all three parts match,
// so the same product sold by kilogram and by box aggregates separately.
//
// ProductKey is a comparable value object and can be used directly as a map
// key, which is what the consolidation engine does when grouping items
// across sub-orders. A typed key avoids the delimiter collisions that an
// ad hoc "id|unit|name" string concatenation would allow.
type ProductKey struct {
	productID string
	unit      string
	name      string

	isConstructed bool
}

// NewProductKey creates a validated ProductKey.
// Product ID and unit are required; the display name may not be empty either,
// since downstream invoicing snapshots it verbatim.
func NewProductKey(productID, unit, name string) (ProductKey, error) {
	if err := errors.Join(
		requireField("productID", productID),
		requireField("unit", unit),
		requireField("productName", name),
	); err != nil {
		return ProductKey{}, err
	}

	return ProductKey{
		productID:     productID,
		unit:          unit,
		name:          name,
		isConstructed: true,
	}, nil
}

func requireField(param, value string) error {
	if value == "" {
		return errs.NewValueIsRequiredError(param)
	}
	return nil
}

// ProductID returns the product identifier.
func (k ProductKey) ProductID() string {
	return k.productID
}

// Unit returns the unit of measure, e.g. "kg" or "cx".
func (k ProductKey) Unit() string {
	return k.unit
}

// Name returns the product display name.
func (k ProductKey) Name() string {
	return k.name
}

// String renders the key for logs and error messages.
func (k ProductKey) String() string {
	return fmt.Sprintf("%s (%s, %s)", k.name, k.productID, k.unit)
}

// IsEqual reports whether two keys identify the same product line.
func (k ProductKey) IsEqual(other ProductKey) bool {
	return k.productID == other.productID && k.unit == other.unit && k.name == other.name
}

// Validate ensures the key was created through NewProductKey.
func (k ProductKey) Validate() error {
	if !k.isConstructed {
		return ErrProductKeyIsNotConstructed
	}
	return nil
}
