package commands

import (
	"context"
	"log/slog"

	"orderflow/internal/core/domain/services"
	"orderflow/internal/core/ports"
)

// RecordDeliveryCommandHandler records the outcome of a delivery attempt.
// Only orders already on the road (EMROTA or EXPEDIDA) can reach a delivery
// outcome; the legal-edge table rejects everything else.
type RecordDeliveryCommandHandler struct {
	uowFactory OrderUoWFactory
	engine     services.TransitionEngine
	audit      auditTrail
}

// NewRecordDeliveryCommandHandler creates a handler for delivery outcomes.
func NewRecordDeliveryCommandHandler(
	uowFactory OrderUoWFactory,
	events ports.EventRepository,
	logger *slog.Logger,
) RecordDeliveryCommandHandler {
	return RecordDeliveryCommandHandler{
		uowFactory: uowFactory,
		engine:     services.NewTransitionEngine(),
		audit:      newAuditTrail(events, logger),
	}
}

// Handle processes the delivery outcome command.
func (h *RecordDeliveryCommandHandler) Handle(ctx context.Context, cmd RecordDeliveryCommand) error {
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

	from := aggregate.Status()
	eventKind, err := h.engine.Classify(from, cmd.Outcome())
	if err != nil {
		return err
	}

	if err = aggregate.ChangeStatus(cmd.Outcome()); err != nil {
		return err
	}

	if err = repo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	meta := map[string]string{
		"from": from.String(),
		"to":   cmd.Outcome().String(),
	}
	if cmd.Note() != "" {
		meta["note"] = cmd.Note()
	}
	h.audit.record(ctx, cmd.OrderID(), eventKind, cmd.Actor(), meta)

	return nil
}
