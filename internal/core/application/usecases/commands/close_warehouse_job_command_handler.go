package commands

import (
	"context"
	"log/slog"
	"time"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/services"
	"orderflow/internal/core/ports"
)

// CloseWarehouseJobCommandHandler finishes a preparation job.
//
// The final item draft is applied, the close is stamped with operator and
// time, and the order moves to FALTAS when any line is short or A_FATURAR
// when everything is covered. Closing a BULK_BATCH is the batch close and
// routes to the CloseBulkBatchCommandHandler with the same draft.
//
// Closing below a completeness threshold is a warning the caller confirms
// before sending the command; it is never enforced here.
type CloseWarehouseJobCommandHandler struct {
	uowFactory UoWFactory
	tracker    services.PreparationTracker
	closeBatch *CloseBulkBatchCommandHandler
	audit      auditTrail
}

// NewCloseWarehouseJobCommandHandler creates a handler for warehouse closes.
func NewCloseWarehouseJobCommandHandler(
	uowFactory UoWFactory,
	closeBatch *CloseBulkBatchCommandHandler,
	events ports.EventRepository,
	logger *slog.Logger,
) CloseWarehouseJobCommandHandler {
	return CloseWarehouseJobCommandHandler{
		uowFactory: uowFactory,
		tracker:    services.NewPreparationTracker(),
		closeBatch: closeBatch,
		audit:      newAuditTrail(events, logger),
	}
}

// Handle processes the warehouse close command.
func (h *CloseWarehouseJobCommandHandler) Handle(ctx context.Context, cmd CloseWarehouseJobCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	aggregate, err := repo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if aggregate.Kind() == order.KindBulkBatch {
		_ = uow.Rollback(ctx)
		return h.delegateBatchClose(ctx, cmd)
	}

	if err = aggregate.ApplyItemsDraft(cmd.ItemsDraft()); err != nil {
		return err
	}
	if err = aggregate.MarkWarehouseClosed(cmd.Actor(), time.Now().UTC()); err != nil {
		return err
	}

	from := aggregate.Status()
	dest := h.tracker.CloseDestination(aggregate.Items())
	if err = aggregate.ChangeStatus(dest); err != nil {
		return err
	}

	if from == order.StatusPrep &&
		dest == order.StatusAFaturar &&
		aggregate.LinkedBatchID() != nil {
		if err = issueGuideOnce(ctx, uow.GuideRepository(), aggregate, cmd.Actor()); err != nil {
			return err
		}
	}

	if err = repo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.audit.record(ctx, cmd.OrderID(), services.ClassifyDestination(dest), cmd.Actor(), map[string]string{
		"from": from.String(),
		"to":   dest.String(),
	})

	return nil
}

func (h *CloseWarehouseJobCommandHandler) delegateBatchClose(ctx context.Context, cmd CloseWarehouseJobCommand) error {
	closeCmd, err := NewCloseBulkBatchCommand(cmd.OrderID(), cmd.ItemsDraft(), cmd.Actor())
	if err != nil {
		return err
	}

	return h.closeBatch.Handle(ctx, closeCmd)
}
