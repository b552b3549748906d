package jobs

import (
	"fmt"
	"log/slog"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	eventRedeliveryJob *EventRedeliveryJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(redeliverer Redeliverer, redeliverySchedule string, logger *slog.Logger) *JobManager {
	return &JobManager{
		eventRedeliveryJob: NewEventRedeliveryJob(redeliverer, redeliverySchedule, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.eventRedeliveryJob.Start(); err != nil {
		return fmt.Errorf("failed to start event redelivery job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.eventRedeliveryJob.Stop()
}
