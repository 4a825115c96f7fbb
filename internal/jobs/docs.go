// Package jobs provides scheduled background tasks for the fulfillment system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for order fulfillment.
//
// # Available Jobs
//
// 1. BackorderAllocationJob - Runs every 30 seconds to fill outstanding order lines from available stock
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(sweepBackordersHandler, logger)
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
// The allocation job uses the cron expression "*/30 * * * * *", running every
// 30 seconds. Allocation is not latency-critical; stock arrives through goods
// receipts, and a half-minute sweep keeps backorders moving without hammering
// the ledger tables.
//
// # Error Handling
//
// - The allocation job ignores sweeps that found nothing to fill (the normal case between receipts)
// - Version conflicts are ignored too; the next sweep retries against fresh state
// - Remaining errors are logged as they indicate system issues
// - Failed job starts will stop any already running jobs
package jobs
