package queries

import (
	"context"

	"orderflow/internal/core/domain/model/guide"
	"orderflow/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetPendingShippingGuidesQueryHandler reads the billing backlog from the
// database.
type GetPendingShippingGuidesQueryHandler struct {
	db *gorm.DB
}

// NewGetPendingShippingGuidesQueryHandler creates a handler for pending
// guide queries. Requires a GORM database connection for query execution.
func NewGetPendingShippingGuidesQueryHandler(db *gorm.DB) GetPendingShippingGuidesQueryHandler {
	return GetPendingShippingGuidesQueryHandler{db: db}
}

// Handle executes the query to retrieve all guides in PENDENTE status.
// Results are sorted by issuance time, then ID, oldest first.
func (h GetPendingShippingGuidesQueryHandler) Handle(
	ctx context.Context,
	query GetPendingShippingGuidesQuery,
) ([]GetPendingShippingGuidesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	guides := make([]GetPendingShippingGuidesQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_id,
			batch_id,
			client_id,
			contract_id,
			created_at
		FROM shipping_guides
		WHERE status = ?
		ORDER BY created_at, id
	`, int(guide.StatusPendente)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var guideResp GetPendingShippingGuidesQueryResponse
		var id, orderID, batchID uuid.UUID

		err = rows.Scan(
			&id,
			&orderID,
			&batchID,
			&guideResp.ClientID,
			&guideResp.ContractID,
			&guideResp.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		guideID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		guideOrderID, idErr := kernel.UUIDFromBytes(orderID[:])
		if idErr != nil {
			return nil, idErr
		}
		guideBatchID, idErr := kernel.UUIDFromBytes(batchID[:])
		if idErr != nil {
			return nil, idErr
		}

		guideResp.ID = guideID
		guideResp.OrderID = guideOrderID
		guideResp.BatchID = guideBatchID
		guides = append(guides, guideResp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return guides, nil
}
