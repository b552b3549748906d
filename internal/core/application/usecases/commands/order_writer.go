package commands

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/order"
)

// mutation computes the next aggregate from the committed one. Returning a
// nil aggregate means there is nothing to write.
type mutation func(current *order.Order) (*order.Order, error)

// orderWriter runs mutations of a single order under its lock and commits
// them with an optimistic version check.
type orderWriter struct {
	uowFactory OrderUoWFactory
	locker     OrderLocker
	publisher  EventPublisher
	observer   TransitionObserver
	clock      Clock
}

func newOrderWriter(
	uowFactory OrderUoWFactory,
	locker OrderLocker,
	publisher EventPublisher,
	observer TransitionObserver,
	clock Clock,
) orderWriter {
	if publisher == nil {
		publisher = noopPublisher{}
	}
	if observer == nil {
		observer = noopObserver{}
	}
	if clock == nil {
		clock = time.Now
	}
	return orderWriter{
		uowFactory: uowFactory,
		locker:     locker,
		publisher:  publisher,
		observer:   observer,
		clock:      clock,
	}
}

var errMissingCollaborator = errors.New("order writer is missing a unit of work factory or a locker")

// write returns the committed aggregate, or the unchanged one when the
// mutation had nothing to do. Events are published after the commit.
func (w orderWriter) write(ctx context.Context, orderID int64, change mutation) (*order.Order, error) {
	if w.uowFactory == nil || w.locker == nil {
		return nil, errMissingCollaborator
	}

	waitStart := time.Now()
	unlock, err := w.locker.Lock(ctx, orderLockKey(orderID))
	w.observer.ObserveLockWait(time.Since(waitStart))
	if err != nil {
		return nil, err
	}
	defer unlock()

	uow := w.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	current, err := repo.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}

	next, err := change(current)
	if err != nil {
		return nil, err
	}
	if next == nil {
		return current, nil
	}

	if err = repo.Commit(ctx, next, current.Version()); err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	w.publisher.Notify(ctx, next.PullEvents())
	return next, nil
}
