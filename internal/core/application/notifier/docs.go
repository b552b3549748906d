// Package notifier publishes order lifecycle events after their transaction
// has committed.
//
// Notify never blocks and never fails: events are queued per order onto a
// fixed set of workers which call the configured ports.EventSink. Events the
// sink rejects, or that do not fit in a queue, are kept in a bounded
// redelivery buffer. jobs.EventRedeliveryJob drains that buffer on a
// schedule, which gives at-least-once delivery while the process lives.
// When the buffer overflows the oldest event is dropped and counted.
//
//	n := notifier.New(sink, notifier.Config{Workers: 4}, m, logger)
//	n.Start(ctx)
//	defer n.Stop()
//
//	n.Notify(ctx, aggregate.PullEvents())
package notifier
