package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// DefaultRedeliverySchedule retries parked events every ten seconds.
const DefaultRedeliverySchedule = "*/10 * * * * *"

// Redeliverer retries events that could not be published on the first try.
// notifier.Notifier satisfies it.
type Redeliverer interface {
	Redeliver(ctx context.Context) int
	Parked() int
}

// EventRedeliveryJob periodically hands parked events back to the event sink.
type EventRedeliveryJob struct {
	redeliverer Redeliverer
	schedule    string
	cron        *cron.Cron
	logger      *slog.Logger
}

// NewEventRedeliveryJob creates the job. schedule is a six-field cron
// expression with seconds; an empty one means DefaultRedeliverySchedule.
func NewEventRedeliveryJob(redeliverer Redeliverer, schedule string, logger *slog.Logger) *EventRedeliveryJob {
	if schedule == "" {
		schedule = DefaultRedeliverySchedule
	}
	return &EventRedeliveryJob{
		redeliverer: redeliverer,
		schedule:    schedule,
		cron:        cron.New(cron.WithSeconds()),
		logger:      logger.With("component", "event_redelivery_job"),
	}
}

// Start schedules the job.
func (j *EventRedeliveryJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Event redelivery job started", "schedule", j.schedule)
	return nil
}

// Stop stops the schedule and waits for a running redelivery to finish.
func (j *EventRedeliveryJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Event redelivery job stopped")
}

func (j *EventRedeliveryJob) run(ctx context.Context) {
	parked := j.redeliverer.Parked()
	if parked == 0 {
		return
	}

	delivered := j.redeliverer.Redeliver(ctx)
	remaining := j.redeliverer.Parked()
	if remaining > 0 {
		j.logger.WarnContext(ctx, "Events still parked after redelivery",
			"delivered", delivered, "remaining", remaining)
		return
	}
	j.logger.InfoContext(ctx, "Parked events redelivered", "delivered", delivered)
}
