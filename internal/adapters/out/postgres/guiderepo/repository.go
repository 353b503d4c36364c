package guiderepo

import (
	"context"

	"gorm.io/gorm"

	"orderflow/internal/core/domain/model/guide"
	"orderflow/internal/core/domain/model/kernel"
)

// GormGuideRepository implements GuideRepository using GORM.
type GormGuideRepository struct {
	db *gorm.DB
}

// NewGormGuideRepository creates a new GORM shipping guide repository.
func NewGormGuideRepository(db *gorm.DB) *GormGuideRepository {
	return &GormGuideRepository{db: db}
}

// Add persists a new shipping guide.
func (r *GormGuideRepository) Add(ctx context.Context, g *guide.ShippingGuide) error {
	if err := g.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(g)
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).Create(&dto).Error
}

// ExistsForOrder reports whether a guide was already issued for the order.
func (r *GormGuideRepository) ExistsForOrder(ctx context.Context, orderID kernel.UUID) (bool, error) {
	if err := orderID.Validate(); err != nil {
		return false, err
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&GuideDTO{}).
		Where("order_id = ?", orderID.Bytes()).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// Get retrieves a shipping guide by ID.
func (r *GormGuideRepository) Get(ctx context.Context, id kernel.UUID) (*guide.ShippingGuide, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto GuideDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return nil, err
	}

	return toDomain(dto)
}
