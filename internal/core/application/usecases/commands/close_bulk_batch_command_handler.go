package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/services"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/errs"
)

// ErrBatchAlreadyClosed is returned when a close is replayed against a batch
// that was already closed and archived. The replay changes nothing.
var ErrBatchAlreadyClosed = errors.New("bulk batch is already closed")

// CloseBulkBatchCommandHandler closes a consolidated bulk batch.
//
// In one transaction it distributes the batch's prepared quantities back to
// the sub-orders proportionally to what each requested, stamps and advances
// every sub-order to A_FATURAR or FALTAS based on its own resulting items,
// issues a PENDENTE shipping guide for each sub-order that became ready to
// bill, and archives the batch. Archiving is what makes the close idempotent:
// a second close finds the batch archived and fails before touching anything.
//
// Audit events for the batch and every advanced sub-order are appended after
// the commit, best effort.
type CloseBulkBatchCommandHandler struct {
	uowFactory   UoWFactory
	consolidator services.BulkConsolidator
	tracker      services.PreparationTracker
	audit        auditTrail
}

// NewCloseBulkBatchCommandHandler creates a handler for bulk batch closes.
func NewCloseBulkBatchCommandHandler(
	uowFactory UoWFactory,
	events ports.EventRepository,
	logger *slog.Logger,
) CloseBulkBatchCommandHandler {
	return CloseBulkBatchCommandHandler{
		uowFactory:   uowFactory,
		consolidator: services.NewBulkConsolidator(),
		tracker:      services.NewPreparationTracker(),
		audit:        newAuditTrail(events, logger),
	}
}

// Handle processes the bulk batch close command.
func (h *CloseBulkBatchCommandHandler) Handle(ctx context.Context, cmd CloseBulkBatchCommand) error {
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

	pending, err := h.close(ctx, uow, cmd)
	if err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.audit.recordAll(ctx, cmd.Actor(), pending)
	return nil
}

func (h *CloseBulkBatchCommandHandler) close(
	ctx context.Context,
	uow UoW,
	cmd CloseBulkBatchCommand,
) ([]pendingEvent, error) {
	repo := uow.OrderRepository()

	batch, err := repo.Get(ctx, cmd.BatchID())
	if err != nil {
		return nil, err
	}

	if batch.Kind() != order.KindBulkBatch {
		return nil, order.ErrNotABulkBatch
	}
	if batch.IsArchived() {
		return nil, ErrBatchAlreadyClosed
	}
	if len(batch.SubOrderIDs()) == 0 {
		return nil, errs.NewValueIsRequiredError("subOrderIDs")
	}

	if draft := cmd.ItemsDraft(); len(draft) > 0 {
		if err = batch.ApplyItemsDraft(draft); err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	if err = batch.MarkWarehouseClosed(cmd.Actor(), now); err != nil {
		return nil, err
	}

	subs, err := repo.GetByIDs(ctx, batch.SubOrderIDs())
	if err != nil {
		return nil, err
	}

	pending := make([]pendingEvent, 0, len(subs)+1)

	for _, sub := range subs {
		shares, err := h.consolidator.Distribute(batch.Items(), sub.Items())
		if err != nil {
			return nil, err
		}

		if err = sub.ApplyPreparedQuantities(shares); err != nil {
			return nil, err
		}
		if err = sub.MarkWarehouseClosed(cmd.Actor(), now); err != nil {
			return nil, err
		}

		from := sub.Status()

		// Sub-orders delegate preparation to the batch: most still sit in
		// ESPERA when it closes, and one closed individually beforehand sits
		// on FALTAS or A_FATURAR already. Step every sub back through PREP so
		// the close always lands on a legal edge.
		if sub.Status() != order.StatusPrep {
			if err = sub.ChangeStatus(order.StatusPrep); err != nil {
				return nil, err
			}
		}

		dest := h.tracker.CloseDestination(sub.Items())
		if err = sub.ChangeStatus(dest); err != nil {
			return nil, err
		}

		if dest == order.StatusAFaturar {
			if err = issueGuideOnce(ctx, uow.GuideRepository(), sub, cmd.Actor()); err != nil {
				return nil, err
			}
		}

		if err = repo.Update(ctx, sub); err != nil {
			return nil, err
		}

		pending = append(pending, pendingEvent{
			orderID: sub.ID(),
			kind:    services.ClassifyDestination(dest),
			meta: map[string]string{
				"from":  from.String(),
				"to":    dest.String(),
				"batch": batch.ID().String(),
			},
		})
	}

	from := batch.Status()
	dest := h.tracker.CloseDestination(batch.Items())
	if err = batch.ChangeStatus(dest); err != nil {
		return nil, err
	}
	if err = batch.Archive(); err != nil {
		return nil, err
	}
	if err = repo.Update(ctx, batch); err != nil {
		return nil, err
	}

	pending = append(pending, pendingEvent{
		orderID: batch.ID(),
		kind:    services.ClassifyDestination(dest),
		meta: map[string]string{
			"from": from.String(),
			"to":   dest.String(),
		},
	})

	return pending, nil
}
