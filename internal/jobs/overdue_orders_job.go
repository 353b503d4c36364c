package jobs

import (
	"context"
	"log/slog"
	"time"

	"orderflow/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

// OverdueOrdersJob periodically sweeps for active orders whose requested
// delivery date has passed and logs them for the dashboards. The sweep is
// read-only; it never mutates order state.
type OverdueOrdersJob struct {
	handler queries.GetOverdueOrdersQueryHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewOverdueOrdersJob creates a new job watching for overdue orders.
func NewOverdueOrdersJob(handler queries.GetOverdueOrdersQueryHandler, logger *slog.Logger) *OverdueOrdersJob {
	return &OverdueOrdersJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "overdue_orders_job"),
	}
}

// Start begins the overdue sweep, running at the top of every hour.
func (j *OverdueOrdersJob) Start() error {
	_, err := j.cron.AddFunc("0 0 * * * *", j.sweep)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Overdue orders job started (running hourly)")
	return nil
}

// Stop stops the overdue sweep.
func (j *OverdueOrdersJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Overdue orders job stopped")
}

func (j *OverdueOrdersJob) sweep() {
	ctx := context.Background()

	query, err := queries.NewGetOverdueOrdersQuery(time.Now().UTC())
	if err != nil {
		j.logger.ErrorContext(ctx, "Overdue orders sweep failed to build query", "error", err)
		return
	}

	overdue, err := j.handler.Handle(ctx, query)
	if err != nil {
		j.logger.ErrorContext(ctx, "Overdue orders sweep failed", "error", err)
		return
	}

	if len(overdue) == 0 {
		return
	}

	j.logger.WarnContext(ctx, "Found overdue orders", "count", len(overdue))
	for _, o := range overdue {
		j.logger.WarnContext(ctx, "Order past its requested delivery date",
			"order_id", o.ID.String(),
			"status", o.Status.String(),
			"client_id", o.ClientID,
			"date", o.Date.Format(time.RFC3339),
		)
	}
}
