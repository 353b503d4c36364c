package commands

import (
	"context"
	"log/slog"

	"orderflow/internal/core/domain/model/event"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/ports"
)

// auditTrail appends classified audit events after a business transaction
// committed. Appends run outside the unit of work: an audit failure is logged
// and swallowed, never unwinding the committed change.
type auditTrail struct {
	events ports.EventRepository
	logger *slog.Logger
}

func newAuditTrail(events ports.EventRepository, logger *slog.Logger) auditTrail {
	return auditTrail{
		events: events,
		logger: logger.With(slog.String("component", "audit")),
	}
}

// record builds and appends one event. Best effort.
func (a auditTrail) record(
	ctx context.Context,
	orderID kernel.UUID,
	kind event.Type,
	actor kernel.Actor,
	meta map[string]string,
) {
	evt, err := event.NewEvent(orderID, kind, actor, meta)
	if err != nil {
		a.logger.ErrorContext(ctx, "failed to build audit event",
			slog.String("order_id", orderID.String()),
			slog.String("kind", kind.String()),
			slog.Any("error", err),
		)
		return
	}

	if err := a.events.Add(ctx, evt); err != nil {
		a.logger.ErrorContext(ctx, "failed to append audit event",
			slog.String("order_id", orderID.String()),
			slog.String("kind", kind.String()),
			slog.Any("error", err),
		)
	}
}

// pendingEvent is an audit entry decided inside a transaction and recorded
// only after that transaction commits.
type pendingEvent struct {
	orderID kernel.UUID
	kind    event.Type
	meta    map[string]string
}

func (a auditTrail) recordAll(ctx context.Context, actor kernel.Actor, pending []pendingEvent) {
	for _, p := range pending {
		a.record(ctx, p.orderID, p.kind, actor, p.meta)
	}
}
