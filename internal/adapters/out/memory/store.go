// Package memory keeps orders in process memory. It implements the same
// ports as the postgres adapter, including the optimistic version check, and
// backs tests and STORAGE=memory deployments.
package memory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

var ErrNoActiveTransaction = errors.New("memory: no active transaction")

// Store holds committed snapshots keyed by order id.
type Store struct {
	mu     sync.RWMutex
	orders map[int64]order.Snapshot
	lastID atomic.Int64
}

var (
	_ ports.UnitOfWorkFactory = (*Store)(nil)
	_ ports.OrderReader       = (*Store)(nil)
)

func NewStore() *Store {
	return &Store{orders: make(map[int64]order.Snapshot)}
}

// Create returns a unit of work whose writes become visible on Commit.
func (s *Store) Create() ports.UnitOfWork {
	return &UnitOfWork{store: s}
}

// Get returns the committed order.
func (s *Store) Get(ctx context.Context, id int64) (*order.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	snapshot, ok := s.orders[id]
	s.mu.RUnlock()
	if !ok {
		return nil, errs.NewObjectNotFoundError("orderId", id)
	}
	return order.RestoreOrder(snapshot)
}

// ListActive returns committed orders that are not terminal, oldest first.
func (s *Store) ListActive(ctx context.Context) ([]*order.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	snapshots := make([]order.Snapshot, 0, len(s.orders))
	for _, snapshot := range s.orders {
		if !snapshot.Status.IsTerminal() {
			snapshots = append(snapshots, snapshot)
		}
	}
	s.mu.RUnlock()

	sort.Slice(snapshots, func(i, j int) bool {
		if snapshots[i].CreatedAt.Equal(snapshots[j].CreatedAt) {
			return snapshots[i].ID < snapshots[j].ID
		}
		return snapshots[i].CreatedAt.Before(snapshots[j].CreatedAt)
	})

	result := make([]*order.Order, 0, len(snapshots))
	for _, snapshot := range snapshots {
		o, err := order.RestoreOrder(snapshot)
		if err != nil {
			return nil, fmt.Errorf("restore order %d: %w", snapshot.ID, err)
		}
		result = append(result, o)
	}
	return result, nil
}

// stagedWrite is a pending change of one order. expected is zero for inserts.
type stagedWrite struct {
	snapshot order.Snapshot
	expected int64
	insert   bool
}

// apply checks every staged write against the committed versions and
// applies all of them, or none.
func (s *Store) apply(writes map[int64]stagedWrite) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, w := range writes {
		stored, exists := s.orders[id]
		switch {
		case w.insert && exists:
			return errs.NewValueIsInvalidErrorWithCause("orderId", fmt.Errorf("order %d already exists", id))
		case !w.insert && !exists:
			return errs.NewObjectNotFoundError("orderId", id)
		case !w.insert && stored.Version != w.expected:
			return errs.NewVersionConflictError(id, w.expected, stored.Version)
		}
	}
	for id, w := range writes {
		s.orders[id] = w.snapshot
	}
	return nil
}

func (s *Store) version(id int64) (int64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stored, ok := s.orders[id]
	return stored.Version, ok
}
