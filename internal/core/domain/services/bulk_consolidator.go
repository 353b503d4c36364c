package services

import (
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"
)

// BulkConsolidator is the domain service behind bulk orders. It owns the two
// quantity-affecting computations of the batch lifecycle:
//
//   - Consolidation: summing per-product requested quantities across several
//     customer orders into the single item list of a BULK_BATCH.
//   - Distribution: proportionally allocating the batch's prepared quantity
//     for each product back to every contributing sub-order once the batch
//     closes.
//
// Distribution preserves quantity within a rounding tolerance: with n
// sub-orders and amounts rounded to two decimals, the distributed sum for a
// product deviates from the batch's prepared quantity by at most n × 0.01.
//
// Both computations are pure; persistence and atomicity are the caller's
// concern, and any failure here must abort the surrounding commit entirely.
type BulkConsolidator struct{}

// NewBulkConsolidator creates a new BulkConsolidator instance.
func NewBulkConsolidator() BulkConsolidator {
	return BulkConsolidator{}
}

// Consolidate groups the items of all sub-orders by product key and sums
// their requested quantities into the batch's item list. Key order follows
// first appearance across the inputs, so the batch reads in the same order
// operators entered the orders.
func (BulkConsolidator) Consolidate(subItemLists [][]order.Item) ([]order.Item, error) {
	if len(subItemLists) == 0 {
		return nil, errs.NewValueIsRequiredError("subOrders")
	}

	var keys []kernel.ProductKey
	totals := make(map[kernel.ProductKey]kernel.Quantity)

	for _, items := range subItemLists {
		if len(items) == 0 {
			return nil, errs.NewValueIsRequiredError("items")
		}

		for _, item := range items {
			if err := item.Validate(); err != nil {
				return nil, err
			}

			key := item.Key()
			if _, seen := totals[key]; !seen {
				keys = append(keys, key)
				totals[key] = kernel.ZeroQuantity()
			}
			totals[key] = totals[key].Add(item.Qty())
		}
	}

	consolidated := make([]order.Item, 0, len(keys))
	for _, key := range keys {
		item, err := order.NewItem(key, totals[key])
		if err != nil {
			return nil, err
		}
		consolidated = append(consolidated, item)
	}

	return consolidated, nil
}

// Distribute computes a sub-order's share of the batch's prepared
// quantities. For every item of the sub-order:
//
//	ratio    = subQty / batchQty   (0 when batchQty is 0)
//	prepared = round(batchPrepared × ratio, 2 decimals)
//
// Every sub-order item must exist in the batch's item list; a missing key
// means the bidirectional linkage is corrupt and the whole batch close must
// abort.
func (BulkConsolidator) Distribute(
	batchItems []order.Item,
	subItems []order.Item,
) (map[kernel.ProductKey]kernel.Quantity, error) {
	batchByKey := make(map[kernel.ProductKey]order.Item, len(batchItems))
	for _, item := range batchItems {
		batchByKey[item.Key()] = item
	}

	prepared := make(map[kernel.ProductKey]kernel.Quantity, len(subItems))
	for _, sub := range subItems {
		batchItem, ok := batchByKey[sub.Key()]
		if !ok {
			return nil, errs.NewObjectNotFoundError("batchItem", sub.Key().String())
		}

		ratio := sub.Qty().Ratio(batchItem.Qty())
		prepared[sub.Key()] = batchItem.PreparedQty().Mul(ratio).Round2()
	}

	return prepared, nil
}
