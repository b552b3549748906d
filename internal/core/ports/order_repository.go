package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates
// together with their payment and fulfillment records.
type OrderRepository interface {
	// NextID reserves a fresh order identifier.
	NextID(ctx context.Context) (int64, error)

	// Add persists a new order aggregate at its initial version.
	Add(ctx context.Context, aggregate *order.Order) error

	// Get retrieves the order with all of its records.
	// Returns errs.ObjectNotFoundError when the order does not exist.
	Get(ctx context.Context, id int64) (*order.Order, error)

	// Commit writes the aggregate only if the stored version still equals
	// expectedVersion; aggregate.Version() must be expectedVersion+1.
	// Returns errs.VersionConflictError when another writer got there first.
	Commit(ctx context.Context, aggregate *order.Order, expectedVersion int64) error
}

// OrderReader is the read side used by queries. It never observes
// uncommitted changes.
type OrderReader interface {
	// Get retrieves a committed order by id.
	Get(ctx context.Context, id int64) (*order.Order, error)

	// ListActive returns orders that are neither COMPLETED nor CANCELLED,
	// oldest first.
	ListActive(ctx context.Context) ([]*order.Order, error)
}
