// Package jobs provides scheduled background tasks for the consignment service.
//
// Jobs are cron-driven (github.com/robfig/cron/v3) and managed through
// JobManager:
//
//	job := jobs.NewFinalizationJob(&finalizeHandler, clock, cfg.FinalizationSchedule, 0, logger)
//	jobManager := jobs.NewJobManager(job, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		return err
//	}
//	defer jobManager.StopAll()
//
// # Available Jobs
//
// FinalizationJob promotes delivered, uncontested orders to FINALIZED once
// their contest window has elapsed. The schedule accepts six-field cron
// expressions and descriptors such as "@every 1m". Several replicas may run
// the sweep at once; each order is finalized under its row lock.
//
// # Error Handling
//
// A tick that fails is logged and the next tick retries. A single order that
// cannot be finalized does not fail the tick.
package jobs
