package notifier

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// Publish outcomes passed to Observer.ObservePublish.
const (
	OutcomeDelivered = "delivered"
	OutcomeFailed    = "failed"
	OutcomeParked    = "parked"
	OutcomeDropped   = "dropped"
)

const (
	DefaultWorkers            = 4
	DefaultQueueSize          = 256
	DefaultRedeliveryCapacity = 1024
	DefaultPublishTimeout     = 5 * time.Second
)

// Observer receives publish statistics. metrics.Metrics satisfies it.
type Observer interface {
	ObservePublish(outcome string)
	SetParked(n int)
}

type noopObserver struct{}

func (noopObserver) ObservePublish(string) {}
func (noopObserver) SetParked(int)         {}

type Config struct {
	Workers            int
	QueueSize          int
	RedeliveryCapacity int
	PublishTimeout     time.Duration
}

func (c Config) withDefaults() Config {
	if c.Workers <= 0 {
		c.Workers = DefaultWorkers
	}
	if c.QueueSize <= 0 {
		c.QueueSize = DefaultQueueSize
	}
	if c.RedeliveryCapacity <= 0 {
		c.RedeliveryCapacity = DefaultRedeliveryCapacity
	}
	if c.PublishTimeout <= 0 {
		c.PublishTimeout = DefaultPublishTimeout
	}
	return c
}

// Notifier hands committed events to an EventSink in the background.
// Events of one order always go through the same worker, so their relative
// order is kept. Anything that cannot be published is parked and retried by
// Redeliver.
type Notifier struct {
	sink     ports.EventSink
	logger   *slog.Logger
	observer Observer
	cfg      Config
	queues   []chan order.Event

	mu     sync.RWMutex
	closed bool

	parkMu sync.Mutex
	parked []order.Event

	wg       sync.WaitGroup
	stopOnce sync.Once
}

func New(sink ports.EventSink, cfg Config, observer Observer, logger *slog.Logger) *Notifier {
	cfg = cfg.withDefaults()
	if observer == nil {
		observer = noopObserver{}
	}
	queues := make([]chan order.Event, cfg.Workers)
	for i := range queues {
		queues[i] = make(chan order.Event, cfg.QueueSize)
	}
	return &Notifier{
		sink:     sink,
		logger:   logger.With("component", "event_notifier"),
		observer: observer,
		cfg:      cfg,
		queues:   queues,
	}
}

// Start launches one goroutine per queue. The workers keep draining their
// queues after ctx is cancelled; Stop ends them.
func (n *Notifier) Start(ctx context.Context) {
	base := context.WithoutCancel(ctx)
	for i, q := range n.queues {
		n.wg.Add(1)
		go n.work(base, i, q)
	}
	n.logger.InfoContext(ctx, "Event notifier started", "workers", len(n.queues), "queueSize", n.cfg.QueueSize)
}

// Stop closes the queues and waits until the workers have drained them.
func (n *Notifier) Stop() {
	n.stopOnce.Do(func() {
		n.mu.Lock()
		n.closed = true
		for _, q := range n.queues {
			close(q)
		}
		n.mu.Unlock()
		n.wg.Wait()
		n.logger.Info("Event notifier stopped", "parked", n.Parked())
	})
}

// Notify enqueues events without blocking. A full queue parks the event for
// redelivery instead of waiting.
func (n *Notifier) Notify(ctx context.Context, events []order.Event) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	for _, e := range events {
		if n.closed {
			n.park(ctx, e, "notifier stopped")
			continue
		}
		select {
		case n.queues[n.queueFor(e.OrderID)] <- e:
		default:
			n.park(ctx, e, "queue full")
		}
	}
}

// Redeliver retries parked events in the order they were parked and
// returns how many got through. Events that fail again are parked again.
func (n *Notifier) Redeliver(ctx context.Context) int {
	n.parkMu.Lock()
	pending := n.parked
	n.parked = nil
	n.observer.SetParked(0)
	n.parkMu.Unlock()

	var failed []order.Event
	delivered := 0
	for i, e := range pending {
		if ctx.Err() != nil {
			failed = append(failed, pending[i:]...)
			break
		}
		if err := n.publish(ctx, e); err != nil {
			n.logger.WarnContext(ctx, "Event redelivery failed",
				"eventId", e.ID, "orderId", e.OrderID, "error", err)
			failed = append(failed, e)
			continue
		}
		delivered++
	}
	if len(failed) > 0 {
		n.repark(failed)
	}
	return delivered
}

// Parked returns the number of events waiting for redelivery.
func (n *Notifier) Parked() int {
	n.parkMu.Lock()
	defer n.parkMu.Unlock()
	return len(n.parked)
}

func (n *Notifier) work(ctx context.Context, worker int, queue <-chan order.Event) {
	defer n.wg.Done()
	for e := range queue {
		if err := n.publish(ctx, e); err != nil {
			n.logger.WarnContext(ctx, "Event publish failed",
				"worker", worker, "eventId", e.ID, "orderId", e.OrderID, "machine", e.Machine, "error", err)
			n.park(ctx, e, "publish failed")
		}
	}
}

func (n *Notifier) publish(ctx context.Context, e order.Event) error {
	ctx, cancel := context.WithTimeout(ctx, n.cfg.PublishTimeout)
	defer cancel()
	if err := n.sink.Publish(ctx, e); err != nil {
		n.observer.ObservePublish(OutcomeFailed)
		return err
	}
	n.observer.ObservePublish(OutcomeDelivered)
	return nil
}

func (n *Notifier) park(ctx context.Context, e order.Event, reason string) {
	n.parkMu.Lock()
	defer n.parkMu.Unlock()

	if len(n.parked) >= n.cfg.RedeliveryCapacity {
		dropped := n.parked[0]
		n.parked = n.parked[1:]
		n.observer.ObservePublish(OutcomeDropped)
		n.logger.ErrorContext(ctx, "Redelivery buffer full, dropping oldest event",
			"eventId", dropped.ID, "orderId", dropped.OrderID)
	}
	n.parked = append(n.parked, e)
	n.observer.ObservePublish(OutcomeParked)
	n.observer.SetParked(len(n.parked))
	n.logger.DebugContext(ctx, "Event parked", "eventId", e.ID, "orderId", e.OrderID, "reason", reason)
}

// repark puts events back in front of anything parked meanwhile.
func (n *Notifier) repark(events []order.Event) {
	n.parkMu.Lock()
	defer n.parkMu.Unlock()

	merged := append(append([]order.Event(nil), events...), n.parked...)
	if overflow := len(merged) - n.cfg.RedeliveryCapacity; overflow > 0 {
		for range overflow {
			n.observer.ObservePublish(OutcomeDropped)
		}
		merged = merged[overflow:]
	}
	n.parked = merged
	n.observer.SetParked(len(n.parked))
}

func (n *Notifier) queueFor(orderID int64) int {
	i := orderID % int64(len(n.queues))
	if i < 0 {
		i = -i
	}
	return int(i)
}
