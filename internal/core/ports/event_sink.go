package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
)

// EventSink delivers lifecycle events to the outside world (a message
// broker, a log). Publish may be called concurrently and may fail; callers
// treat delivery as best effort.
type EventSink interface {
	Publish(ctx context.Context, event order.Event) error
}
