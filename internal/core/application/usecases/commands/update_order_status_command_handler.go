package commands

import (
	"context"
	"log/slog"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/services"
	"orderflow/internal/core/ports"
)

// UpdateOrderStatusCommandHandler orchestrates a single status transition.
//
// The transition is validated against the legal-edge table and classified
// into an audit event type by destination. The order write, and for a
// bulk-linked order entering A_FATURAR the shipping guide, commit in one
// transaction; the audit event is appended afterwards, best effort.
//
// Moving a BULK_BATCH out of preparation, to A_FATURAR or FALTAS, means
// closing the whole batch, so those edges route to the
// CloseBulkBatchCommandHandler instead of being handled as plain edges.
type UpdateOrderStatusCommandHandler struct {
	uowFactory UoWFactory
	engine     services.TransitionEngine
	closeBatch *CloseBulkBatchCommandHandler
	audit      auditTrail
}

// NewUpdateOrderStatusCommandHandler creates a handler for status updates.
func NewUpdateOrderStatusCommandHandler(
	uowFactory UoWFactory,
	closeBatch *CloseBulkBatchCommandHandler,
	events ports.EventRepository,
	logger *slog.Logger,
) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		uowFactory: uowFactory,
		engine:     services.NewTransitionEngine(),
		closeBatch: closeBatch,
		audit:      newAuditTrail(events, logger),
	}
}

// Handle processes the status update command.
func (h *UpdateOrderStatusCommandHandler) Handle(ctx context.Context, cmd UpdateOrderStatusCommand) error {
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

	// A BULK_BATCH leaving preparation for A_FATURAR or FALTAS is the batch
	// close. Routing both destinations through the close handler keeps plain
	// edges from reaching A_FATURAR without distribution.
	if aggregate.Kind() == order.KindBulkBatch &&
		(aggregate.Status() == order.StatusPrep || aggregate.Status() == order.StatusFaltas) &&
		(cmd.NewStatus() == order.StatusAFaturar || cmd.NewStatus() == order.StatusFaltas) {
		_ = uow.Rollback(ctx)
		return h.delegateBatchClose(ctx, cmd)
	}

	from := aggregate.Status()
	eventKind, err := h.engine.Classify(from, cmd.NewStatus())
	if err != nil {
		return err
	}

	if draft := cmd.ItemsDraft(); len(draft) > 0 {
		if err = aggregate.ApplyItemsDraft(draft); err != nil {
			return err
		}
	}
	if carrier := cmd.Carrier(); carrier != nil {
		aggregate.SetCarrier(*carrier)
	}

	if err = aggregate.ChangeStatus(cmd.NewStatus()); err != nil {
		return err
	}

	if from == order.StatusPrep &&
		cmd.NewStatus() == order.StatusAFaturar &&
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

	h.audit.record(ctx, cmd.OrderID(), eventKind, cmd.Actor(), map[string]string{
		"from": from.String(),
		"to":   cmd.NewStatus().String(),
	})

	return nil
}

func (h *UpdateOrderStatusCommandHandler) delegateBatchClose(ctx context.Context, cmd UpdateOrderStatusCommand) error {
	closeCmd, err := NewCloseBulkBatchCommand(cmd.OrderID(), cmd.ItemsDraft(), cmd.Actor())
	if err != nil {
		return err
	}

	return h.closeBatch.Handle(ctx, closeCmd)
}
