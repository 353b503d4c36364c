package queries

import (
	"context"
	"encoding/json"

	"orderflow/internal/core/domain/model/event"
	"orderflow/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderEventsQueryHandler reads an order's audit trail from the database.
type GetOrderEventsQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderEventsQueryHandler creates a handler for audit trail queries.
// Requires a GORM database connection for query execution.
func NewGetOrderEventsQueryHandler(db *gorm.DB) GetOrderEventsQueryHandler {
	return GetOrderEventsQueryHandler{db: db}
}

// Handle executes the query to retrieve the order's recorded events.
// Results are sorted by recording time, then ID, oldest first. An order
// with no events yields an empty slice, not an error.
func (h GetOrderEventsQueryHandler) Handle(
	ctx context.Context,
	query GetOrderEventsQuery,
) ([]GetOrderEventsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	events := make([]GetOrderEventsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_id,
			kind,
			actor_id,
			actor_name,
			at,
			meta
		FROM order_events
		WHERE order_id = ?
		ORDER BY at, id
	`, query.OrderID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var eventResp GetOrderEventsQueryResponse
		var id, orderID uuid.UUID
		var kind int
		var rawMeta []byte

		err = rows.Scan(
			&id,
			&orderID,
			&kind,
			&eventResp.ActorID,
			&eventResp.ActorName,
			&eventResp.At,
			&rawMeta,
		)
		if err != nil {
			return nil, err
		}

		eventID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		eventOrderID, idErr := kernel.UUIDFromBytes(orderID[:])
		if idErr != nil {
			return nil, idErr
		}

		eventResp.ID = eventID
		eventResp.OrderID = eventOrderID
		eventResp.Kind = event.Type(kind)

		if len(rawMeta) > 0 {
			if err = json.Unmarshal(rawMeta, &eventResp.Meta); err != nil {
				return nil, err
			}
		}

		events = append(events, eventResp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}
