// Package jobs provides scheduled background tasks for the marketplace.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle the periodic operational work around the order lifecycle.
//
// # Available Jobs
//
// 1. MetricsRefreshJob - Runs every minute to recompute the dashboard KPI snapshot
// 2. OverdueWatchdogJob - Runs every minute to surface live orders past their delivery estimate
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(metricsHandler, overdueHandler, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Both jobs use the cron expression "0 * * * * *" and run at the top of every
// minute. Metrics are cheap to recompute and a minute of staleness is
// acceptable for an operations dashboard.
//
// # Error Handling
//
// Both jobs log failures and keep running; a transient database error must not
// take the scheduler down.
package jobs
