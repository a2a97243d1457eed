package jobs

import (
	"fmt"
	"log/slog"

	"marketplace/internal/core/application/usecases/queries"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	metricsRefreshJob  *MetricsRefreshJob
	overdueWatchdogJob *OverdueWatchdogJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes query handlers as dependencies to wire up the job execution.
func NewJobManager(
	metricsHandler queries.GetDashboardMetricsQueryHandler,
	overdueHandler queries.GetOverdueOrdersQueryHandler,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		metricsRefreshJob:  NewMetricsRefreshJob(metricsHandler, logger),
		overdueWatchdogJob: NewOverdueWatchdogJob(overdueHandler, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.metricsRefreshJob.Start(); err != nil {
		return fmt.Errorf("failed to start metrics refresh job: %w", err)
	}

	if err := jm.overdueWatchdogJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.metricsRefreshJob.Stop()
		return fmt.Errorf("failed to start overdue watchdog job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.overdueWatchdogJob.Stop()
	jm.metricsRefreshJob.Stop()
}
