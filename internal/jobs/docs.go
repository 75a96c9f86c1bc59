// Package jobs provides scheduled background tasks for the trade-in service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the order lifecycle.
//
// # Available Jobs
//
// 1. TrackingSyncJob - Periodically refreshes carrier tracking for orders
// with an active shipment leg and promotes their status when warranted.
// 2. AutoRequoteJob - Periodically closes revised offers whose negotiation
// window expired, applying the reduced payout.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(syncHandler, finalizeHandler, orderRepo, schedules, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Per-order failures are logged and never stop the sweep; a carrier outage
// on one order must not starve the rest. Conflicts from concurrent
// finalization are expected business scenarios and logged at debug level.
package jobs
