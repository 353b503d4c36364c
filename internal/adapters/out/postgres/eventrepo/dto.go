// Package eventrepo persists the append-only order audit trail.
package eventrepo

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"orderflow/internal/core/domain/model/event"
	"orderflow/internal/core/domain/model/kernel"
)

// EventDTO represents the database structure for audit events. Rows are
// written once and never updated; ordering is by the writer-assigned At
// column.
type EventDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;index"`
	Kind      int
	ActorID   string
	ActorRole string
	ActorName string
	At        time.Time `gorm:"index"`
	Meta      []byte    `gorm:"type:jsonb"`
}

// TableName specifies the database table name for audit events.
func (EventDTO) TableName() string {
	return "order_events"
}

func fromDomain(evt *event.Event) (EventDTO, error) {
	meta, err := json.Marshal(evt.Meta())
	if err != nil {
		return EventDTO{}, err
	}

	return EventDTO{
		ID:        evt.ID().Bytes(),
		OrderID:   evt.OrderID().Bytes(),
		Kind:      int(evt.Kind()),
		ActorID:   evt.Actor().ID(),
		ActorRole: evt.Actor().Role(),
		ActorName: evt.Actor().Name(),
		At:        evt.At(),
		Meta:      meta,
	}, nil
}

func toDomain(dto EventDTO) (*event.Event, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	actor, err := kernel.NewActor(dto.ActorID, dto.ActorRole, dto.ActorName)
	if err != nil {
		return nil, err
	}

	var meta map[string]string
	if len(dto.Meta) > 0 {
		if err = json.Unmarshal(dto.Meta, &meta); err != nil {
			return nil, err
		}
	}

	return event.RestoreEvent(id, orderID, event.Type(dto.Kind), actor, dto.At, meta)
}
