package eventrepo

import (
	"context"

	"gorm.io/gorm"

	"orderflow/internal/core/domain/model/event"
	"orderflow/internal/core/domain/model/kernel"
)

// GormEventRepository implements EventRepository using GORM.
//
// Unlike the order repository it is not bound to a unit of work: callers
// append events after their business transaction committed, on the plain
// database connection.
type GormEventRepository struct {
	db *gorm.DB
}

// NewGormEventRepository creates a new GORM event repository.
func NewGormEventRepository(db *gorm.DB) *GormEventRepository {
	return &GormEventRepository{db: db}
}

// Add appends a single audit event.
func (r *GormEventRepository) Add(ctx context.Context, evt *event.Event) error {
	if err := evt.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(evt)
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).Create(&dto).Error
}

// ListByOrder returns all events recorded for an order, ordered by their
// occurrence timestamp.
func (r *GormEventRepository) ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*event.Event, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []EventDTO
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID.Bytes()).
		Order("at, id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	events := make([]*event.Event, 0, len(dtos))
	for _, dto := range dtos {
		evt, domainErr := toDomain(dto)
		if domainErr != nil {
			return nil, domainErr
		}
		events = append(events, evt)
	}

	return events, nil
}
