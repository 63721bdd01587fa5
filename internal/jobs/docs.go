// Package jobs provides scheduled background tasks for the buyback service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. ReofferSweepJob - Periodically auto-accepts re-offers whose response
// deadline has passed without a buyer decision.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager, err := jobs.NewJobManager(sweepHandler, schedule, logger)
//	if err != nil {
//		log.Fatal("Failed to create jobs:", err)
//	}
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The sweep schedule is a six-field cron expression (with seconds) taken
// from configuration. The sweep is idempotent: orders resolved by the buyer
// between the read and the write are skipped, so overlapping or frequent
// runs are safe.
package jobs
