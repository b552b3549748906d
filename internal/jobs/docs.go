// Package jobs provides scheduled background tasks for the fulfillment service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// EventRedeliveryJob retries lifecycle events the notifier parked because
// the event sink failed or its queue was full.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(eventNotifier, "*/10 * * * * *", logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Schedules are six-field cron expressions with a leading seconds field.
// An invalid schedule makes StartAll fail.
package jobs
