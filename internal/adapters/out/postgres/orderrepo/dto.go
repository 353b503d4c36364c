// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Product lines live in the order_items child table; the sub-order list of a
// BULK_BATCH is not stored here but derived from the linked_batch_id column
// of its sub-orders, keeping the linkage in one place.
type OrderDTO struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	Kind               int
	Status             int `gorm:"index"`
	Archived           bool
	ClientID           string
	ContractID         string
	LocationID         string
	Date               time.Time `gorm:"index"`
	Carrier            string
	LinkedBatchID      *uuid.UUID `gorm:"type:uuid;index"`
	WarehouseStartedAt *time.Time
	WarehouseStartedBy string
	WarehouseClosedAt  *time.Time
	WarehouseClosedBy  string
	Version            int
	CreatedAt          time.Time
	UpdatedAt          time.Time

	Items []ItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO represents one product line of an order. Quantities are numeric
// columns so decimal amounts survive the round trip without float drift.
type ItemDTO struct {
	OrderID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	Position     int       `gorm:"primaryKey"`
	ProductID    string
	Unit         string
	Name         string
	Qty          decimal.Decimal `gorm:"type:numeric(14,3)"`
	PreparedQty  decimal.Decimal `gorm:"type:numeric(14,3)"`
	PurchasedQty decimal.Decimal `gorm:"type:numeric(14,3)"`
	Obs          string
}

// TableName specifies the database table name for order items.
func (ItemDTO) TableName() string {
	return "order_items"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	var linkedBatchID *uuid.UUID
	if id := aggregate.LinkedBatchID(); id != nil {
		raw := id.Bytes()
		linkedBatchID = &raw
	}

	items := aggregate.Items()
	itemDTOs := make([]ItemDTO, 0, len(items))
	for i, item := range items {
		itemDTOs = append(itemDTOs, ItemDTO{
			OrderID:      aggregate.ID().Bytes(),
			Position:     i,
			ProductID:    item.Key().ProductID(),
			Unit:         item.Key().Unit(),
			Name:         item.Key().Name(),
			Qty:          item.Qty().Decimal(),
			PreparedQty:  item.PreparedQty().Decimal(),
			PurchasedQty: item.PurchasedQty().Decimal(),
			Obs:          item.Obs(),
		})
	}

	return OrderDTO{
		ID:                 aggregate.ID().Bytes(),
		Kind:               int(aggregate.Kind()),
		Status:             int(aggregate.Status()),
		Archived:           aggregate.IsArchived(),
		ClientID:           aggregate.ClientID(),
		ContractID:         aggregate.ContractID(),
		LocationID:         aggregate.LocationID(),
		Date:               aggregate.Date(),
		Carrier:            aggregate.Carrier(),
		LinkedBatchID:      linkedBatchID,
		WarehouseStartedAt: aggregate.WarehouseStartedAt(),
		WarehouseStartedBy: aggregate.WarehouseStartedBy(),
		WarehouseClosedAt:  aggregate.WarehouseClosedAt(),
		WarehouseClosedBy:  aggregate.WarehouseClosedBy(),
		Version:            aggregate.Version(),
		CreatedAt:          aggregate.CreatedAt(),
		UpdatedAt:          aggregate.UpdatedAt(),
		Items:              itemDTOs,
	}
}

// toDomain converts a database DTO to an order domain aggregate using
// RestoreOrder. Items arrive ordered by position; subOrderIDs is the derived
// sub-order list for a BULK_BATCH, nil for other kinds.
func toDomain(dto OrderDTO, subOrderIDs []kernel.UUID) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var linkedBatchID *kernel.UUID
	if dto.LinkedBatchID != nil {
		batchID, batchErr := kernel.UUIDFromBytes((*dto.LinkedBatchID)[:])
		if batchErr != nil {
			return nil, batchErr
		}
		linkedBatchID = &batchID
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := itemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(order.RestoreOrderParams{
		ID:                 id,
		Kind:               order.Kind(dto.Kind),
		Status:             order.Status(dto.Status),
		Archived:           dto.Archived,
		ClientID:           dto.ClientID,
		ContractID:         dto.ContractID,
		LocationID:         dto.LocationID,
		Date:               dto.Date,
		Items:              items,
		Carrier:            dto.Carrier,
		LinkedBatchID:      linkedBatchID,
		SubOrderIDs:        subOrderIDs,
		WarehouseStartedAt: dto.WarehouseStartedAt,
		WarehouseStartedBy: dto.WarehouseStartedBy,
		WarehouseClosedAt:  dto.WarehouseClosedAt,
		WarehouseClosedBy:  dto.WarehouseClosedBy,
		Version:            dto.Version,
		CreatedAt:          dto.CreatedAt,
		UpdatedAt:          dto.UpdatedAt,
	})
}

func itemToDomain(dto ItemDTO) (order.Item, error) {
	key, err := kernel.NewProductKey(dto.ProductID, dto.Unit, dto.Name)
	if err != nil {
		return order.Item{}, err
	}

	qty, err := kernel.NewQuantity(dto.Qty)
	if err != nil {
		return order.Item{}, err
	}
	prepared, err := kernel.NewQuantity(dto.PreparedQty)
	if err != nil {
		return order.Item{}, err
	}
	purchased, err := kernel.NewQuantity(dto.PurchasedQty)
	if err != nil {
		return order.Item{}, err
	}

	return order.RestoreItem(key, qty, prepared, purchased, dto.Obs)
}
