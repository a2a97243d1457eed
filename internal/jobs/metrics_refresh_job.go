package jobs

import (
	"context"
	"log/slog"
	"time"

	"marketplace/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

// MetricsRefreshJob recomputes the dashboard KPI snapshot once a minute and
// logs the headline figures for the operations audit trail.
type MetricsRefreshJob struct {
	handler queries.GetDashboardMetricsQueryHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewMetricsRefreshJob creates a new job for refreshing dashboard metrics.
// Uses GetDashboardMetricsQueryHandler to recompute the snapshot every minute.
func NewMetricsRefreshJob(handler queries.GetDashboardMetricsQueryHandler, logger *slog.Logger) *MetricsRefreshJob {
	return &MetricsRefreshJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "metrics_refresh_job"),
	}
}

// Start begins the metrics refresh job to run at the top of every minute.
func (j *MetricsRefreshJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		ctx := context.Background()

		now := time.Now()
		year, month, day := now.Date()
		since := time.Date(year, month, day, 0, 0, 0, 0, now.Location())

		query, err := queries.NewGetDashboardMetricsQuery(since)
		if err != nil {
			j.logger.ErrorContext(ctx, "Metrics refresh job failed to build query", "error", err)
			return
		}

		metrics, err := j.handler.Handle(ctx, query)
		if err != nil {
			j.logger.ErrorContext(ctx, "Metrics refresh job failed", "error", err)
			return
		}

		j.logger.InfoContext(ctx, "Dashboard metrics refreshed",
			"active_orders", metrics.ActiveOrderCount,
			"today_revenue_cents", metrics.TodayRevenueCents,
			"avg_delivery_minutes", metrics.AverageDeliveryMinutes,
			"success_rate", metrics.SuccessRate,
		)
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Metrics refresh job started (running every minute)")
	return nil
}

// Stop stops the metrics refresh job.
func (j *MetricsRefreshJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Metrics refresh job stopped")
}
