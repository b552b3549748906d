package logsink

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

var _ ports.EventSink = (*Sink)(nil)

// Sink writes every event as a structured log line. It never fails.
type Sink struct {
	logger *slog.Logger
}

func New(logger *slog.Logger) *Sink {
	if logger == nil {
		logger = slog.Default()
	}
	return &Sink{logger: logger.With("component", "event_log")}
}

func (s *Sink) Publish(ctx context.Context, event order.Event) error {
	s.logger.InfoContext(ctx, event.Title,
		"event_id", event.ID,
		"order_id", event.OrderID,
		"machine", event.Machine,
		"from", event.From,
		"to", event.To,
		"cascade", event.Cascade,
		"actor", event.Actor,
		"version", event.Version,
		"message", event.Message,
	)
	return nil
}
