package commands

import (
	"context"

	"orderflow/internal/core/domain/model/guide"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"
)

// issueGuideOnce snapshots a bulk-linked order into a PENDENTE shipping guide
// unless one was already issued for it. Replayed transitions therefore never
// produce a second guide. Runs inside the caller's transaction.
func issueGuideOnce(
	ctx context.Context,
	guides ports.GuideRepository,
	o *order.Order,
	actor kernel.Actor,
) error {
	exists, err := guides.ExistsForOrder(ctx, o.ID())
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	g, err := guide.NewShippingGuide(o, actor)
	if err != nil {
		return err
	}

	return guides.Add(ctx, g)
}
