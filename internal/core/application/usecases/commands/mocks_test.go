package commands_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) NextID(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id int64) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) Commit(ctx context.Context, o *order.Order, expectedVersion int64) error {
	args := m.Called(ctx, o, expectedVersion)
	return args.Error(0)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockOrderLocker struct{ mock.Mock }

func (m *MockOrderLocker) Lock(ctx context.Context, key string) (func(), error) {
	args := m.Called(ctx, key)
	unlock, _ := args.Get(0).(func())
	return unlock, args.Error(1)
}

// storeFactory adapts a ports.UnitOfWorkFactory such as memory.Store.
type storeFactory struct{ store ports.UnitOfWorkFactory }

func (f storeFactory) Create() commands.OrderUoW {
	return f.store.Create()
}

// recordingPublisher keeps every event it is notified about.
type recordingPublisher struct {
	mu     sync.Mutex
	events []order.Event
}

func (p *recordingPublisher) Notify(_ context.Context, events []order.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, events...)
}

func (p *recordingPublisher) all() []order.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]order.Event(nil), p.events...)
}

// recordingObserver counts transition outcomes.
type recordingObserver struct {
	mu       sync.Mutex
	outcomes []string
}

func (o *recordingObserver) ObserveTransition(_, outcome string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.outcomes = append(o.outcomes, outcome)
}

func (o *recordingObserver) ObserveLockWait(time.Duration) {}

func (o *recordingObserver) all() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]string(nil), o.outcomes...)
}

var placedAt = time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return placedAt.Add(5 * time.Minute) }

func ramen(t *testing.T, quantity int) order.Item {
	t.Helper()
	price, err := kernel.MoneyFromString("12.00")
	require.NoError(t, err)
	item, err := order.NewItem(11, "Ramen", quantity, price, "")
	require.NoError(t, err)
	return item
}

func customer() order.Customer {
	return order.Customer{ID: 3, Name: "Grace", Email: "grace@example.com"}
}

func placedOrder(t *testing.T, id int64, orderType order.Type) *order.Order {
	t.Helper()
	o, err := order.NewOrder(id, order.Checkout{
		Type:            orderType,
		Customer:        customer(),
		Items:           []order.Item{ramen(t, 1)},
		DeliveryAddress: "5 Side St",
		PhoneNumber:     "+15550101",
	}, placedAt)
	require.NoError(t, err)
	return o
}
