package jobs

import (
	"context"
	"log/slog"
	"time"

	"marketplace/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

// OverdueWatchdogJob scans for live orders past their delivery estimate and
// logs them so operations can intervene.
type OverdueWatchdogJob struct {
	handler queries.GetOverdueOrdersQueryHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewOverdueWatchdogJob creates a new job for detecting overdue orders.
// Uses GetOverdueOrdersQueryHandler to scan the live order set every minute.
func NewOverdueWatchdogJob(handler queries.GetOverdueOrdersQueryHandler, logger *slog.Logger) *OverdueWatchdogJob {
	return &OverdueWatchdogJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "overdue_watchdog_job"),
	}
}

// Start begins the overdue watchdog job to run at the top of every minute.
func (j *OverdueWatchdogJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		ctx := context.Background()

		query, err := queries.NewGetOverdueOrdersQuery(time.Now().UTC())
		if err != nil {
			j.logger.ErrorContext(ctx, "Overdue watchdog job failed to build query", "error", err)
			return
		}

		overdue, err := j.handler.Handle(ctx, query)
		if err != nil {
			j.logger.ErrorContext(ctx, "Overdue watchdog job failed", "error", err)
			return
		}

		for _, summary := range overdue {
			j.logger.WarnContext(ctx, "Order is past its delivery estimate",
				"order_id", summary.ID.String(),
				"status", summary.Status.String(),
				"estimated_delivery_at", summary.EstimatedDeliveryAt,
			)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Overdue watchdog job started (running every minute)")
	return nil
}

// Stop stops the overdue watchdog job.
func (j *OverdueWatchdogJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Overdue watchdog job stopped")
}
