package memory

import (
	"context"
	"fmt"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// UnitOfWork stages writes until Commit. It is not safe for concurrent use;
// create one per command.
type UnitOfWork struct {
	store  *Store
	active bool
	staged map[int64]stagedWrite
}

func (u *UnitOfWork) Begin(_ context.Context) error {
	if u.active {
		return nil
	}
	u.active = true
	u.staged = make(map[int64]stagedWrite)
	return nil
}

// Commit publishes all staged writes atomically. A concurrent writer that
// committed first turns the whole unit into a VersionConflictError.
func (u *UnitOfWork) Commit(_ context.Context) error {
	if !u.active {
		return ErrNoActiveTransaction
	}
	err := u.store.apply(u.staged)
	u.active = false
	u.staged = nil
	return err
}

func (u *UnitOfWork) Rollback(_ context.Context) error {
	u.active = false
	u.staged = nil
	return nil
}

func (u *UnitOfWork) OrderRepository() ports.OrderRepository {
	return &orderRepository{uow: u}
}

type orderRepository struct {
	uow *UnitOfWork
}

func (r *orderRepository) NextID(_ context.Context) (int64, error) {
	return r.uow.store.lastID.Add(1), nil
}

func (r *orderRepository) Add(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if !r.uow.active {
		return ErrNoActiveTransaction
	}
	id := aggregate.ID()
	if _, exists := r.uow.store.version(id); exists {
		return errs.NewValueIsInvalidErrorWithCause("orderId", fmt.Errorf("order %d already exists", id))
	}
	r.uow.staged[id] = stagedWrite{snapshot: aggregate.Snapshot(), insert: true}
	return nil
}

// Get sees the unit's own staged writes before the committed state.
func (r *orderRepository) Get(ctx context.Context, id int64) (*order.Order, error) {
	if w, ok := r.uow.staged[id]; ok {
		return order.RestoreOrder(w.snapshot)
	}
	return r.uow.store.Get(ctx, id)
}

func (r *orderRepository) Commit(_ context.Context, aggregate *order.Order, expectedVersion int64) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if !r.uow.active {
		return ErrNoActiveTransaction
	}
	if aggregate.Version() != expectedVersion+1 {
		return errs.NewValueIsInvalidErrorWithCause("version", fmt.Errorf(
			"aggregate is at version %d, expected %d", aggregate.Version(), expectedVersion+1))
	}

	id := aggregate.ID()
	if w, ok := r.uow.staged[id]; ok {
		if w.snapshot.Version != expectedVersion {
			return errs.NewVersionConflictError(id, expectedVersion, w.snapshot.Version)
		}
		w.snapshot = aggregate.Snapshot()
		r.uow.staged[id] = w
		return nil
	}

	stored, exists := r.uow.store.version(id)
	if !exists {
		return errs.NewObjectNotFoundError("orderId", id)
	}
	if stored != expectedVersion {
		return errs.NewVersionConflictError(id, expectedVersion, stored)
	}
	r.uow.staged[id] = stagedWrite{snapshot: aggregate.Snapshot(), expected: expectedVersion}
	return nil
}
