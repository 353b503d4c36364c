// Package guiderepo persists immutable shipping guides.
package guiderepo

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"orderflow/internal/core/domain/model/guide"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
)

// GuideDTO represents the database structure for shipping guides. The item
// snapshot is stored as a jsonb document: guides are immutable hand-off
// records read as a whole, never queried line by line. The unique index on
// order_id backs the one-guide-per-order rule at the schema level.
type GuideDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	BatchID    uuid.UUID `gorm:"type:uuid;index"`
	ClientID   string
	ContractID string
	LocationID string
	Items      []byte `gorm:"type:jsonb"`
	Status     int    `gorm:"index"`
	CreatedAt  time.Time
	CreatedBy  string
}

// TableName specifies the database table name for shipping guides.
func (GuideDTO) TableName() string {
	return "shipping_guides"
}

type guideItem struct {
	ProductID    string          `json:"productId"`
	Unit         string          `json:"unit"`
	Name         string          `json:"name"`
	Qty          decimal.Decimal `json:"qty"`
	PreparedQty  decimal.Decimal `json:"preparedQty"`
	PurchasedQty decimal.Decimal `json:"purchasedQty"`
	Obs          string          `json:"obs,omitempty"`
}

func fromDomain(g *guide.ShippingGuide) (GuideDTO, error) {
	items := g.Items()
	snapshot := make([]guideItem, 0, len(items))
	for _, item := range items {
		snapshot = append(snapshot, guideItem{
			ProductID:    item.Key().ProductID(),
			Unit:         item.Key().Unit(),
			Name:         item.Key().Name(),
			Qty:          item.Qty().Decimal(),
			PreparedQty:  item.PreparedQty().Decimal(),
			PurchasedQty: item.PurchasedQty().Decimal(),
			Obs:          item.Obs(),
		})
	}

	raw, err := json.Marshal(snapshot)
	if err != nil {
		return GuideDTO{}, err
	}

	return GuideDTO{
		ID:         g.ID().Bytes(),
		OrderID:    g.OrderID().Bytes(),
		BatchID:    g.BatchID().Bytes(),
		ClientID:   g.ClientID(),
		ContractID: g.ContractID(),
		LocationID: g.LocationID(),
		Items:      raw,
		Status:     int(g.Status()),
		CreatedAt:  g.CreatedAt(),
		CreatedBy:  g.CreatedBy(),
	}, nil
}

func toDomain(dto GuideDTO) (*guide.ShippingGuide, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	batchID, err := kernel.UUIDFromBytes(dto.BatchID[:])
	if err != nil {
		return nil, err
	}

	var snapshot []guideItem
	if len(dto.Items) > 0 {
		if err = json.Unmarshal(dto.Items, &snapshot); err != nil {
			return nil, err
		}
	}

	items := make([]order.Item, 0, len(snapshot))
	for _, s := range snapshot {
		item, itemErr := snapshotToItem(s)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return guide.RestoreShippingGuide(guide.RestoreShippingGuideParams{
		ID:         id,
		OrderID:    orderID,
		BatchID:    batchID,
		ClientID:   dto.ClientID,
		ContractID: dto.ContractID,
		LocationID: dto.LocationID,
		Items:      items,
		Status:     guide.Status(dto.Status),
		CreatedAt:  dto.CreatedAt,
		CreatedBy:  dto.CreatedBy,
	})
}

func snapshotToItem(s guideItem) (order.Item, error) {
	key, err := kernel.NewProductKey(s.ProductID, s.Unit, s.Name)
	if err != nil {
		return order.Item{}, err
	}

	qty, err := kernel.NewQuantity(s.Qty)
	if err != nil {
		return order.Item{}, err
	}
	prepared, err := kernel.NewQuantity(s.PreparedQty)
	if err != nil {
		return order.Item{}, err
	}
	purchased, err := kernel.NewQuantity(s.PurchasedQty)
	if err != nil {
		return order.Item{}, err
	}

	return order.RestoreItem(key, qty, prepared, purchased, s.Obs)
}
