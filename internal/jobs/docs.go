// Package jobs provides scheduled background tasks for the order tracking
// service.
//
// Jobs are cron-based (github.com/robfig/cron/v3, six-field expressions with
// seconds) and are started and stopped together through JobManager.
//
// # Available Jobs
//
//  1. OverdueOrdersJob - on OVERDUE_CHECK_SCHEDULE (every 15 minutes by
//     default) lists orders past their expected delivery that still have
//     undispatched rolls, logs them and publishes the count as a gauge
//
// # Usage
//
//	overdue, err := jobs.NewOverdueOrdersJob(handler, schedule, metrics, logger)
//	if err != nil {
//		return err
//	}
//	manager := jobs.NewJobManager(logger, overdue)
//	if err := manager.StartAll(); err != nil {
//		return err
//	}
//	defer manager.StopAll()
//
// # Error Handling
//
// A failed run is logged and retried on the next tick. A job that fails to
// start stops every job started before it.
package jobs
