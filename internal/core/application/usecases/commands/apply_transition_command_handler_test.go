package commands_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/memory"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/status"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/keylock"
	"fulfillment/internal/pkg/metrics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type transitionFixture struct {
	t         *testing.T
	store     *memory.Store
	publisher *recordingPublisher
	observer  *recordingObserver
	handler   commands.ApplyTransitionCommandHandler
	attach    commands.AttachPaymentCommandHandler
}

func newTransitionFixture(t *testing.T) *transitionFixture {
	store := memory.NewStore()
	locker := keylock.New(time.Second)
	publisher := &recordingPublisher{}
	observer := &recordingObserver{}
	engine := services.NewTransitionEngine(services.NewConsistencyRules())
	return &transitionFixture{
		t:         t,
		store:     store,
		publisher: publisher,
		observer:  observer,
		handler: commands.NewApplyTransitionCommandHandler(
			storeFactory{store}, locker, publisher, observer, engine, fixedClock),
		attach: commands.NewAttachPaymentCommandHandler(
			storeFactory{store}, locker, publisher, engine, fixedClock),
	}
}

func (f *transitionFixture) seed(o *order.Order) {
	f.t.Helper()
	uow := f.store.Create()
	require.NoError(f.t, uow.Begin(f.t.Context()))
	require.NoError(f.t, uow.OrderRepository().Add(f.t.Context(), o))
	require.NoError(f.t, uow.Commit(f.t.Context()))
}

func (f *transitionFixture) pay(orderID int64, method order.PaymentMethod) {
	f.t.Helper()
	cmd, err := commands.NewAttachPaymentCommand(orderID, method, order.Actor{Source: "checkout"})
	require.NoError(f.t, err)
	_, err = f.attach.Handle(f.t.Context(), cmd)
	require.NoError(f.t, err)
}

func (f *transitionFixture) apply(orderID int64, machine status.Machine, target string) (*order.Order, error) {
	f.t.Helper()
	cmd, err := commands.NewApplyTransitionCommand(
		orderID, machine, target, order.Actor{Source: "staff", ID: "u1"}, order.TransitionDetails{}, nil)
	require.NoError(f.t, err)
	return f.handler.Handle(f.t.Context(), cmd)
}

func (f *transitionFixture) mustApply(orderID int64, steps ...[2]string) *order.Order {
	f.t.Helper()
	var (
		o   *order.Order
		err error
	)
	for _, s := range steps {
		m, perr := status.ParseMachine(s[0])
		require.NoError(f.t, perr)
		o, err = f.apply(orderID, m, s[1])
		require.NoError(f.t, err, "%s -> %s", s[0], s[1])
	}
	return o
}

func (f *transitionFixture) stored(orderID int64) *order.Order {
	f.t.Helper()
	o, err := f.store.Get(f.t.Context(), orderID)
	require.NoError(f.t, err)
	return o
}

func TestApplyTransitionCommandHandler_PickupScenario(t *testing.T) {
	f := newTransitionFixture(t)
	f.seed(placedOrder(t, 42, order.TypePickup))
	f.pay(42, order.MethodCreditCard)

	f.mustApply(42,
		[2]string{"ORDER", "CONFIRMED"},
		[2]string{"ORDER", "PREPARING"},
		[2]string{"ORDER", "READY_FOR_PICKUP"},
	)
	before := f.stored(42)

	_, err := f.apply(42, status.OrderMachine, "COMPLETED")
	require.ErrorIs(t, err, errs.ErrConsistencyViolation)
	assert.Equal(t, before.Version(), f.stored(42).Version())

	completed := f.mustApply(42,
		[2]string{"PAYMENT", "AWAITING_SESSION"},
		[2]string{"PAYMENT", "PROCESSING"},
		[2]string{"PAYMENT", "COMPLETED"},
		[2]string{"PICKUP", "PREPARING"},
		[2]string{"PICKUP", "READY_FOR_PICKUP"},
		[2]string{"PICKUP", "COMPLETED"},
		[2]string{"ORDER", "COMPLETED"},
	)

	assert.Equal(t, status.OrderCompleted, completed.Status())
	assert.Equal(t, status.PickupCompleted, completed.FulfillmentState())
	pay, _ := completed.Payment()
	assert.Equal(t, status.PaymentCompleted, pay.Status)
	assert.NotNil(t, pay.PaidAt)
	assert.Equal(t, completed.Snapshot(), f.stored(42).Snapshot())

	events := f.publisher.all()
	last := events[len(events)-1]
	assert.Equal(t, "ORDER", last.Machine)
	assert.Equal(t, "READY_FOR_PICKUP", last.From)
	assert.Equal(t, "COMPLETED", last.To)
	assert.Equal(t, completed.Version(), last.Version)
	assert.Equal(t, "staff:u1", last.Actor)
	assert.Contains(t, f.observer.all(), metrics.OutcomeConsistencyViolation)
}

func TestApplyTransitionCommandHandler_DeliveryScenario(t *testing.T) {
	f := newTransitionFixture(t)
	f.seed(placedOrder(t, 7, order.TypeDelivery))
	f.pay(7, order.MethodCreditCard)
	f.mustApply(7,
		[2]string{"ORDER", "CONFIRMED"},
		[2]string{"ORDER", "PREPARING"},
		[2]string{"ORDER", "READY_FOR_DELIVERY"},
	)

	_, err := f.apply(7, status.OrderMachine, "OUT_FOR_DELIVERY")
	var violation *errs.ConsistencyViolationError
	require.ErrorAs(t, err, &violation)
	assert.Equal(t, "dispatch-requires-driver", violation.Rule)

	cmd, err := commands.NewApplyTransitionCommand(7, status.DeliveryMachine, "ASSIGNED",
		order.Actor{Source: "dispatch"}, order.TransitionDetails{DriverName: "Sam", DriverPhone: "+15550199"}, nil)
	require.NoError(t, err)
	assigned, err := f.handler.Handle(t.Context(), cmd)
	require.NoError(t, err)
	d, _ := assigned.Delivery()
	assert.Equal(t, "Sam", d.DriverName)
	require.NotNil(t, d.EstimatedArrivalTime)

	completed := f.mustApply(7,
		[2]string{"ORDER", "OUT_FOR_DELIVERY"},
		[2]string{"DELIVERY", "PICKED_UP"},
		[2]string{"DELIVERY", "ON_THE_WAY"},
		[2]string{"DELIVERY", "DELIVERED"},
		[2]string{"PAYMENT", "AWAITING_SESSION"},
		[2]string{"PAYMENT", "PROCESSING"},
		[2]string{"PAYMENT", "COMPLETED"},
		[2]string{"ORDER", "COMPLETED"},
	)

	assert.Equal(t, status.OrderCompleted, completed.Status())
	d, _ = completed.Delivery()
	assert.NotNil(t, d.PickupTime)
	assert.NotNil(t, d.ActualDeliveryTime)
}

func TestApplyTransitionCommandHandler_CashOnDeliveryScenario(t *testing.T) {
	f := newTransitionFixture(t)
	f.seed(placedOrder(t, 9, order.TypeDelivery))
	f.pay(9, order.MethodCashOnDelivery)

	completed := f.mustApply(9,
		[2]string{"PAYMENT", "CASH_PENDING"},
		[2]string{"ORDER", "CONFIRMED"},
		[2]string{"ORDER", "PREPARING"},
		[2]string{"ORDER", "READY_FOR_DELIVERY"},
		[2]string{"DELIVERY", "ASSIGNED"},
		[2]string{"ORDER", "OUT_FOR_DELIVERY"},
		[2]string{"DELIVERY", "PICKED_UP"},
		[2]string{"DELIVERY", "ON_THE_WAY"},
		[2]string{"DELIVERY", "DELIVERED"},
		[2]string{"ORDER", "COMPLETED"},
	)

	assert.Equal(t, status.OrderCompleted, completed.Status())
	pay, _ := completed.Payment()
	assert.Equal(t, status.PaymentCompleted, pay.Status)
	assert.NotNil(t, pay.PaidAt)

	stored := f.stored(9)
	assert.Equal(t, completed.Version(), stored.Version())
	events := f.publisher.all()
	require.NotEmpty(t, events)
	last := events[len(events)-1]
	assert.Equal(t, "PAYMENT", last.Machine)
	assert.True(t, last.Cascade)
	assert.Equal(t, "COMPLETED", last.To)
}

func TestApplyTransitionCommandHandler_IdempotentReplay(t *testing.T) {
	f := newTransitionFixture(t)
	f.seed(placedOrder(t, 42, order.TypePickup))
	f.pay(42, order.MethodCreditCard)
	confirmed := f.mustApply(42, [2]string{"ORDER", "CONFIRMED"})
	published := len(f.publisher.all())

	replayed, err := f.apply(42, status.OrderMachine, "CONFIRMED")

	require.NoError(t, err)
	assert.Equal(t, confirmed.Version(), replayed.Version())
	assert.Equal(t, confirmed.Version(), f.stored(42).Version())
	assert.Len(t, f.publisher.all(), published)
	assert.Equal(t, metrics.OutcomeReplayed, f.observer.all()[len(f.observer.all())-1])
}

func TestApplyTransitionCommandHandler_IllegalTransitionKeepsVersion(t *testing.T) {
	f := newTransitionFixture(t)
	f.seed(placedOrder(t, 42, order.TypePickup))
	f.pay(42, order.MethodCreditCard)
	before := f.stored(42)

	_, err := f.apply(42, status.OrderMachine, "COMPLETED")

	var illegal *errs.IllegalTransitionError
	require.ErrorAs(t, err, &illegal)
	assert.Equal(t, "PENDING", illegal.From)
	assert.False(t, errs.IsRetryable(err))
	assert.Equal(t, before.Version(), f.stored(42).Version())
}

func TestApplyTransitionCommandHandler_CancelCascade(t *testing.T) {
	f := newTransitionFixture(t)
	f.seed(placedOrder(t, 7, order.TypeDelivery))
	f.pay(7, order.MethodCreditCard)
	f.mustApply(7, [2]string{"ORDER", "CONFIRMED"}, [2]string{"DELIVERY", "ASSIGNED"})
	before := f.stored(7)
	published := len(f.publisher.all())

	cancelled := f.mustApply(7, [2]string{"ORDER", "CANCELLED"})

	stored := f.stored(7)
	assert.Equal(t, before.Version()+1, stored.Version())
	assert.Equal(t, status.OrderCancelled, stored.Status())
	pay, _ := stored.Payment()
	assert.Equal(t, status.PaymentCancelled, pay.Status)
	d, _ := stored.Delivery()
	assert.Equal(t, status.DeliveryCancelled, d.Status)
	assert.Equal(t, cancelled.Snapshot(), stored.Snapshot())

	events := f.publisher.all()[published:]
	require.Len(t, events, 3)
	assert.False(t, events[0].Cascade)
	assert.True(t, events[1].Cascade)
	assert.True(t, events[2].Cascade)
	for _, e := range events {
		assert.Equal(t, stored.Version(), e.Version)
	}
}

func TestApplyTransitionCommandHandler_ConcurrentWritersOnSameVersion(t *testing.T) {
	f := newTransitionFixture(t)
	f.seed(placedOrder(t, 42, order.TypePickup))
	f.pay(42, order.MethodCreditCard)
	version := f.stored(42).Version()

	targets := []string{"CONFIRMED", "CANCELLED"}
	errList := make([]error, len(targets))
	var wg sync.WaitGroup
	for i, target := range targets {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cmd, err := commands.NewApplyTransitionCommand(
				42, status.OrderMachine, target, order.Actor{Source: "staff"}, order.TransitionDetails{}, &version)
			if err != nil {
				errList[i] = err
				return
			}
			_, errList[i] = f.handler.Handle(t.Context(), cmd)
		}()
	}
	wg.Wait()

	var wins, conflicts int
	for _, err := range errList {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, errs.ErrVersionConflict):
			conflicts++
			assert.True(t, errs.IsRetryable(err))
		}
	}
	assert.Equal(t, 1, wins)
	assert.Equal(t, 1, conflicts)
	assert.Equal(t, version+1, f.stored(42).Version())
}

func TestApplyTransitionCommandHandler_NotFound(t *testing.T) {
	f := newTransitionFixture(t)

	_, err := f.apply(404, status.OrderMachine, "CONFIRMED")

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	assert.Equal(t, []string{metrics.OutcomeNotFound}, f.observer.all())
}

func TestApplyTransitionCommandHandler_LockTimeout(t *testing.T) {
	ctx := t.Context()
	locker := new(MockOrderLocker)
	locker.On("Lock", mock.Anything, "order:42").
		Return(nil, errs.NewLockTimeoutError("order:42", time.Second)).Once()
	factory := new(MockOrderUoWFactory)
	publisher := &recordingPublisher{}

	h := commands.NewApplyTransitionCommandHandler(factory, locker, publisher, nil,
		services.NewTransitionEngine(services.NewConsistencyRules()), fixedClock)
	cmd, err := commands.NewApplyTransitionCommand(
		42, status.OrderMachine, "CONFIRMED", order.Actor{Source: "staff"}, order.TransitionDetails{}, nil)
	require.NoError(t, err)

	_, err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrLockTimeout)
	assert.True(t, errs.IsRetryable(err))
	factory.AssertNotCalled(t, "Create")
	assert.Empty(t, publisher.all())
	locker.AssertExpectations(t)
}

func TestApplyTransitionCommandHandler_CommitConflictPublishesNothing(t *testing.T) {
	ctx := t.Context()
	current := placedOrder(t, 42, order.TypePickup)
	require.NoError(t, current.AttachPayment(order.MethodCreditCard, order.Actor{Source: "checkout"}, placedAt))
	current.PullEvents()

	unlocked := false
	locker := new(MockOrderLocker)
	locker.On("Lock", mock.Anything, "order:42").Return(func() { unlocked = true }, nil).Once()

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", mock.Anything).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, int64(42)).Return(current, nil).Once(),
		repo.On("Commit", mock.Anything, mock.AnythingOfType("*order.Order"), current.Version()).
			Return(errs.NewVersionConflictError(int64(42), current.Version(), current.Version()+1)).Once(),
		uow.On("Rollback", mock.Anything).Return(nil).Once(),
	)
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()
	publisher := &recordingPublisher{}

	h := commands.NewApplyTransitionCommandHandler(factory, locker, publisher, nil,
		services.NewTransitionEngine(services.NewConsistencyRules()), fixedClock)
	cmd, err := commands.NewApplyTransitionCommand(
		42, status.OrderMachine, "CONFIRMED", order.Actor{Source: "staff"}, order.TransitionDetails{}, nil)
	require.NoError(t, err)

	_, err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrVersionConflict)
	assert.Empty(t, publisher.all())
	assert.True(t, unlocked)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}
