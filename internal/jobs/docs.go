// Package jobs provides scheduled background tasks for the fulfillment
// system, implemented with github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. DispatchSweepJob - assigns pickers to vendor-accepted orders and riders
// to picked-complete orders, retrying orders that found nobody idle earlier
// 2. SubstitutionTimeoutJob - auto-rejects substitution proposals whose
// customer response deadline has passed
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(
//		orderUoWFactory, assignPickerHandler, assignRiderHandler,
//		expireSubstitutionsHandler, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// The dispatch sweep treats "nobody idle" as a normal outcome and leaves the
// order for the next tick. All other per-order errors are logged and the
// sweep moves on; a failed order never stalls the rest of the batch.
package jobs
