package commands

import (
	"context"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/services"
)

// CreateBulkOrderCommandHandler handles bulk order creation.
//
// It consolidates the sub-order items by product key into one BULK_BATCH
// aggregate, creates one BULK_SUB per customer order pointing back at the
// batch, and persists all documents in a single transaction. Referential
// integrity between the batch and its sub-orders is established atomically:
// either the whole bulk order exists or none of it does.
type CreateBulkOrderCommandHandler struct {
	uowFactory   OrderUoWFactory
	consolidator services.BulkConsolidator
}

// NewCreateBulkOrderCommandHandler creates a handler for bulk order creation.
func NewCreateBulkOrderCommandHandler(
	uowFactory OrderUoWFactory,
	consolidator services.BulkConsolidator,
) CreateBulkOrderCommandHandler {
	return CreateBulkOrderCommandHandler{
		uowFactory:   uowFactory,
		consolidator: consolidator,
	}
}

// Handle processes the bulk order creation command.
func (h *CreateBulkOrderCommandHandler) Handle(ctx context.Context, cmd CreateBulkOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	specs := cmd.SubOrders()

	itemLists := make([][]order.Item, 0, len(specs))
	subOrderIDs := make([]kernel.UUID, 0, len(specs))
	for _, spec := range specs {
		itemLists = append(itemLists, spec.Items)
		subOrderIDs = append(subOrderIDs, spec.OrderID)
	}

	batchItems, err := h.consolidator.Consolidate(itemLists)
	if err != nil {
		return err
	}

	batch, err := order.NewBulkBatch(cmd.BatchID(), cmd.Date(), batchItems, subOrderIDs)
	if err != nil {
		return err
	}

	subs := make([]*order.Order, 0, len(specs))
	for _, spec := range specs {
		sub, err := order.NewBulkSub(
			spec.OrderID,
			spec.ClientID,
			spec.ContractID,
			spec.LocationID,
			cmd.Date(),
			spec.Carrier,
			spec.Items,
			cmd.BatchID(),
		)
		if err != nil {
			return err
		}
		subs = append(subs, sub)
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	if err = repo.Add(ctx, batch); err != nil {
		return err
	}

	for _, sub := range subs {
		if err = repo.Add(ctx, sub); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
