// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// Every command that changes an existing order follows the same path: take
// the per-order lock, load, change, commit against the loaded version, and
// only then hand the recorded events to the notifier.
package commands

import (
	"context"
	"strconv"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// OrderUoW manages transactions for order operations.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   repo := uow.OrderRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}
)

// Collaborators shared by the handlers that change an existing order.
type (
	// OrderLocker serializes writers of the same order. keylock.Locker
	// satisfies it.
	OrderLocker interface {
		Lock(ctx context.Context, key string) (func(), error)
	}

	// EventPublisher receives events after their transaction committed.
	// notifier.Notifier satisfies it.
	EventPublisher interface {
		Notify(ctx context.Context, events []order.Event)
	}

	// TransitionObserver receives outcome statistics. metrics.Metrics
	// satisfies it.
	TransitionObserver interface {
		ObserveTransition(machine, outcome string)
		ObserveLockWait(d time.Duration)
	}

	// Clock returns the current time.
	Clock func() time.Time
)

func orderLockKey(id int64) string {
	return "order:" + strconv.FormatInt(id, 10)
}

type noopPublisher struct{}

func (noopPublisher) Notify(context.Context, []order.Event) {}

type noopObserver struct{}

func (noopObserver) ObserveTransition(string, string) {}
func (noopObserver) ObserveLockWait(time.Duration)    {}
