package order_test

import (
	"strings"
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/status"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	checkoutTime = time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)
	kitchen      = order.Actor{Source: "kitchen"}
)

func money(t *testing.T, s string) kernel.Money {
	t.Helper()
	m, err := kernel.MoneyFromString(s)
	require.NoError(t, err)
	return m
}

func item(t *testing.T, productID int64, quantity int, price string) order.Item {
	t.Helper()
	it, err := order.NewItem(productID, "Margherita", quantity, money(t, price), "")
	require.NoError(t, err)
	return it
}

func checkout(t *testing.T, orderType order.Type) order.Checkout {
	t.Helper()
	return order.Checkout{
		Type:                orderType,
		Customer:            order.Customer{ID: 7, Name: "Ada", Email: "ada@example.com"},
		Items:               []order.Item{item(t, 1, 2, "9.50"), item(t, 2, 1, "3.25")},
		DeliveryAddress:     "1 Main St",
		PhoneNumber:         "+15550100",
		SpecialInstructions: "no onions",
	}
}

func newOrder(t *testing.T, orderType order.Type) *order.Order {
	t.Helper()
	o, err := order.NewOrder(42, checkout(t, orderType), checkoutTime)
	require.NoError(t, err)
	return o
}

func transition(t *testing.T, o *order.Order, m status.Machine, name string) error {
	t.Helper()
	target, err := status.Parse(m, name)
	require.NoError(t, err)
	return o.Transition(m, target, order.TransitionDetails{}, kitchen, checkoutTime.Add(time.Minute))
}

func TestNewOrder(t *testing.T) {
	t.Run("delivery_order_gets_delivery_record", func(t *testing.T) {
		o := newOrder(t, order.TypeDelivery)

		assert.Equal(t, status.OrderPending, o.Status())
		assert.Equal(t, int64(1), o.Version())
		assert.Equal(t, "22.25", o.Total().String())
		_, hasPayment := o.Payment()
		assert.False(t, hasPayment)
		d, ok := o.Delivery()
		require.True(t, ok)
		assert.Equal(t, status.DeliveryPending, d.Status)
		_, hasPickup := o.Pickup()
		assert.False(t, hasPickup)
		assert.Empty(t, o.PendingEvents())
	})

	t.Run("pickup_order_gets_pickup_record_with_code_and_window", func(t *testing.T) {
		o := newOrder(t, order.TypePickup)

		p, ok := o.Pickup()
		require.True(t, ok)
		assert.Equal(t, status.PickupAwaitingConfirmation, p.Status)
		assert.True(t, strings.HasPrefix(p.Code, "PU-"))
		assert.Len(t, p.Code, 11)
		assert.Equal(t, "Ada", p.ContactName)
		assert.Equal(t, "+15550100", p.ContactPhone)
		readyAt := checkoutTime.Add(order.DefaultPreparationTime)
		assert.Equal(t, readyAt, *p.ReadyAt)
		assert.Equal(t, readyAt.Add(-10*time.Minute), *p.WindowStart)
		assert.Equal(t, readyAt.Add(30*time.Minute), *p.WindowEnd)
		_, hasDelivery := o.Delivery()
		assert.False(t, hasDelivery)
	})

	t.Run("dine_in_order_has_no_fulfillment_record", func(t *testing.T) {
		o := newOrder(t, order.TypeDineIn)

		_, hasDelivery := o.Delivery()
		_, hasPickup := o.Pickup()
		assert.False(t, hasDelivery)
		assert.False(t, hasPickup)
		assert.Nil(t, o.FulfillmentState())
	})

	t.Run("delivery_requires_address_and_phone", func(t *testing.T) {
		c := checkout(t, order.TypeDelivery)
		c.DeliveryAddress = " "
		c.PhoneNumber = ""

		_, err := order.NewOrder(42, c, checkoutTime)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "deliveryAddress")
		assert.Contains(t, err.Error(), "phoneNumber")
	})

	t.Run("pickup_requires_phone", func(t *testing.T) {
		c := checkout(t, order.TypePickup)
		c.PhoneNumber = ""

		_, err := order.NewOrder(42, c, checkoutTime)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects_invalid_input", func(t *testing.T) {
		c := checkout(t, order.TypeUnknown)
		c.Items = nil

		_, err := order.NewOrder(0, c, checkoutTime)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "orderId")
		assert.Contains(t, err.Error(), "order type")
		assert.Contains(t, err.Error(), "orderItems")
	})
}

func TestOrder_AttachPayment(t *testing.T) {
	t.Run("cash_on_delivery_gets_cash_reference", func(t *testing.T) {
		o := newOrder(t, order.TypeDelivery)

		err := o.AttachPayment(order.MethodCashOnDelivery, kitchen, checkoutTime)

		require.NoError(t, err)
		p, ok := o.Payment()
		require.True(t, ok)
		assert.Equal(t, status.PaymentPending, p.Status)
		assert.True(t, p.Amount.IsEqual(o.Total()))
		assert.True(t, strings.HasPrefix(p.TransactionID, "COD-"))
		assert.Equal(t, int64(2), o.Version())

		events := o.PullEvents()
		require.Len(t, events, 1)
		assert.Equal(t, "PAYMENT", events[0].Machine)
		assert.Empty(t, events[0].From)
		assert.Equal(t, "PENDING", events[0].To)
		assert.Equal(t, int64(2), events[0].Version)
	})

	t.Run("live_payment_cannot_be_replaced", func(t *testing.T) {
		o := newOrder(t, order.TypeDelivery)
		require.NoError(t, o.AttachPayment(order.MethodCreditCard, kitchen, checkoutTime))

		err := o.AttachPayment(order.MethodPayPal, kitchen, checkoutTime)

		require.ErrorIs(t, err, errs.ErrConsistencyViolation)
		assert.Equal(t, int64(2), o.Version())
	})

	t.Run("failed_payment_can_be_replaced", func(t *testing.T) {
		o := newOrder(t, order.TypeDelivery)
		require.NoError(t, o.AttachPayment(order.MethodCreditCard, kitchen, checkoutTime))
		require.NoError(t, transition(t, o, status.PaymentMachine, "AWAITING_SESSION"))
		require.NoError(t, transition(t, o, status.PaymentMachine, "PROCESSING"))
		require.NoError(t, transition(t, o, status.PaymentMachine, "FAILED"))

		err := o.AttachPayment(order.MethodPayPal, kitchen, checkoutTime)

		require.NoError(t, err)
		p, _ := o.Payment()
		assert.Equal(t, order.MethodPayPal, p.Method)
		assert.Equal(t, status.PaymentPending, p.Status)
	})

	t.Run("not_attachable_after_cancellation", func(t *testing.T) {
		o := newOrder(t, order.TypeDineIn)
		require.NoError(t, o.AttachPayment(order.MethodCreditCard, kitchen, checkoutTime))
		require.NoError(t, transition(t, o, status.OrderMachine, "CONFIRMED"))
		require.NoError(t, transition(t, o, status.OrderMachine, "CANCELLED"))

		err := o.AttachPayment(order.MethodPayPal, kitchen, checkoutTime)

		require.ErrorIs(t, err, errs.ErrConsistencyViolation)
	})
}

func TestOrder_ReviseItems(t *testing.T) {
	t.Run("replaces_items_while_pending", func(t *testing.T) {
		o := newOrder(t, order.TypePickup)

		err := o.ReviseItems([]order.Item{item(t, 3, 4, "2.00")}, checkoutTime)

		require.NoError(t, err)
		assert.Equal(t, "8.00", o.Total().String())
		assert.Len(t, o.Items(), 1)
		assert.Equal(t, int64(2), o.Version())
	})

	t.Run("rejected_after_confirmation", func(t *testing.T) {
		o := newOrder(t, order.TypePickup)
		require.NoError(t, o.AttachPayment(order.MethodCreditCard, kitchen, checkoutTime))
		require.NoError(t, transition(t, o, status.OrderMachine, "CONFIRMED"))

		err := o.ReviseItems([]order.Item{item(t, 3, 4, "2.00")}, checkoutTime)

		require.ErrorIs(t, err, errs.ErrConsistencyViolation)
		assert.Equal(t, "22.25", o.Total().String())
	})

	t.Run("returned_items_are_copies", func(t *testing.T) {
		o := newOrder(t, order.TypePickup)

		items := o.Items()
		items[0] = item(t, 99, 1, "1.00")

		assert.Equal(t, int64(1), o.Items()[0].ProductID())
	})
}

func TestOrder_Transition(t *testing.T) {
	t.Run("illegal_transition_leaves_order_untouched", func(t *testing.T) {
		o := newOrder(t, order.TypeDelivery)

		err := transition(t, o, status.OrderMachine, "COMPLETED")

		var illegal *errs.IllegalTransitionError
		require.ErrorAs(t, err, &illegal)
		assert.Equal(t, "PENDING", illegal.From)
		assert.Equal(t, "COMPLETED", illegal.To)
		assert.Equal(t, status.OrderPending, o.Status())
		assert.Equal(t, int64(1), o.Version())
		assert.Empty(t, o.PendingEvents())
	})

	t.Run("missing_payment_record_is_a_consistency_violation", func(t *testing.T) {
		o := newOrder(t, order.TypeDelivery)

		err := transition(t, o, status.PaymentMachine, "CASH_PENDING")

		require.ErrorIs(t, err, errs.ErrConsistencyViolation)
	})

	t.Run("wrong_fulfillment_machine_is_a_consistency_violation", func(t *testing.T) {
		o := newOrder(t, order.TypePickup)

		err := transition(t, o, status.DeliveryMachine, "ASSIGNED")

		var violation *errs.ConsistencyViolationError
		require.ErrorAs(t, err, &violation)
		assert.Equal(t, "fulfillment-matches-type", violation.Rule)
	})

	t.Run("target_of_another_machine_is_invalid", func(t *testing.T) {
		o := newOrder(t, order.TypePickup)

		err := o.Transition(status.OrderMachine, status.PickupPreparing, order.TransitionDetails{}, kitchen, checkoutTime)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("actor_is_required", func(t *testing.T) {
		o := newOrder(t, order.TypePickup)

		err := o.Transition(status.OrderMachine, status.OrderCancelled, order.TransitionDetails{}, order.Actor{}, checkoutTime)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("cancel_cascades_to_live_records", func(t *testing.T) {
		o := newOrder(t, order.TypePickup)
		require.NoError(t, o.AttachPayment(order.MethodCreditCard, kitchen, checkoutTime))
		o.PullEvents()
		version := o.Version()

		require.NoError(t, transition(t, o, status.OrderMachine, "CANCELLED"))

		assert.Equal(t, status.OrderCancelled, o.Status())
		p, _ := o.Payment()
		assert.Equal(t, status.PaymentCancelled, p.Status)
		pu, _ := o.Pickup()
		assert.Equal(t, status.PickupCancelled, pu.Status)
		assert.Equal(t, checkoutTime.Add(time.Minute), *pu.WindowEnd)
		assert.Equal(t, version+1, o.Version())

		events := o.PullEvents()
		require.Len(t, events, 3)
		assert.False(t, events[0].Cascade)
		assert.Equal(t, "ORDER", events[0].Machine)
		assert.True(t, events[1].Cascade)
		assert.Equal(t, "PAYMENT", events[1].Machine)
		assert.True(t, events[2].Cascade)
		assert.Equal(t, "PICKUP", events[2].Machine)
		for _, e := range events {
			assert.Equal(t, version+1, e.Version)
		}
	})

	t.Run("cancel_keeps_captured_payment", func(t *testing.T) {
		o := newOrder(t, order.TypeDineIn)
		require.NoError(t, o.AttachPayment(order.MethodCreditCard, kitchen, checkoutTime))
		for _, s := range []string{"AWAITING_SESSION", "PROCESSING", "COMPLETED"} {
			require.NoError(t, transition(t, o, status.PaymentMachine, s))
		}

		require.NoError(t, transition(t, o, status.OrderMachine, "CANCELLED"))

		p, _ := o.Payment()
		assert.Equal(t, status.PaymentCompleted, p.Status)
	})

	t.Run("cash_on_delivery_completion_collects_cash", func(t *testing.T) {
		o := newOrder(t, order.TypeDineIn)
		require.NoError(t, o.AttachPayment(order.MethodCashOnDelivery, kitchen, checkoutTime))
		require.NoError(t, transition(t, o, status.PaymentMachine, "CASH_PENDING"))
		for _, s := range []string{"CONFIRMED", "PREPARING", "READY_FOR_PICKUP"} {
			require.NoError(t, transition(t, o, status.OrderMachine, s))
		}
		o.PullEvents()

		require.NoError(t, transition(t, o, status.OrderMachine, "COMPLETED"))

		p, _ := o.Payment()
		assert.Equal(t, status.PaymentCompleted, p.Status)
		require.NotNil(t, p.PaidAt)
		events := o.PullEvents()
		require.Len(t, events, 2)
		assert.Equal(t, "CASH_PENDING", events[1].From)
		assert.Equal(t, "COMPLETED", events[1].To)
		assert.True(t, events[1].Cascade)
	})

	t.Run("payment_completion_stamps_paid_at_and_reference", func(t *testing.T) {
		o := newOrder(t, order.TypeDineIn)
		require.NoError(t, o.AttachPayment(order.MethodStripe, kitchen, checkoutTime))
		require.NoError(t, transition(t, o, status.PaymentMachine, "AWAITING_WEBHOOK"))
		require.NoError(t, transition(t, o, status.PaymentMachine, "PROCESSING"))

		err := o.Transition(status.PaymentMachine, status.PaymentCompleted,
			order.TransitionDetails{TransactionID: "pi_123"}, kitchen, checkoutTime.Add(time.Hour))

		require.NoError(t, err)
		p, _ := o.Payment()
		assert.Equal(t, "pi_123", p.TransactionID)
		assert.Equal(t, checkoutTime.Add(time.Hour), *p.PaidAt)
	})

	t.Run("delivery_side_effects", func(t *testing.T) {
		o := newOrder(t, order.TypeDelivery)
		coordinates, err := kernel.NewCoordinates(52.52, 13.405)
		require.NoError(t, err)
		assignedAt := checkoutTime.Add(20 * time.Minute)

		require.NoError(t, o.Transition(status.DeliveryMachine, status.DeliveryAssigned, order.TransitionDetails{
			DriverName:  "Sam",
			DriverPhone: "+15550199",
			VehicleInfo: "scooter",
			Coordinates: &coordinates,
		}, kitchen, assignedAt))
		require.NoError(t, transition(t, o, status.DeliveryMachine, "PICKED_UP"))

		d, _ := o.Delivery()
		assert.Equal(t, "Sam", d.DriverName)
		assert.Equal(t, "scooter", d.VehicleInfo)
		assert.Equal(t, assignedAt.Add(order.DefaultDeliveryEstimate), *d.EstimatedArrivalTime)
		require.NotNil(t, d.PickupTime)
		require.NotNil(t, d.Coordinates)
		assert.InDelta(t, 52.52, d.Coordinates.Latitude(), 1e-9)
		assert.Nil(t, d.ActualDeliveryTime)
	})

	t.Run("pickup_preparing_opens_window", func(t *testing.T) {
		o := newOrder(t, order.TypePickup)
		late := checkoutTime.Add(2 * time.Hour)

		require.NoError(t, o.Transition(status.PickupMachine, status.PickupPreparing, order.TransitionDetails{}, kitchen, late))

		p, _ := o.Pickup()
		readyAt := late.Add(order.DefaultPreparationTime)
		assert.Equal(t, readyAt, *p.ReadyAt)
		assert.Equal(t, readyAt.Add(-order.PickupWindowPadding), *p.WindowStart)
		assert.Equal(t, readyAt.Add(order.PickupWindowDuration), *p.WindowEnd)
	})
}

func TestOrder_CloneAndRestore(t *testing.T) {
	t.Run("clone_is_independent", func(t *testing.T) {
		o := newOrder(t, order.TypePickup)
		c := o.Clone()

		require.NoError(t, transition(t, c, status.OrderMachine, "CANCELLED"))

		assert.Equal(t, status.OrderPending, o.Status())
		p, _ := o.Pickup()
		assert.Equal(t, status.PickupAwaitingConfirmation, p.Status)
		assert.Empty(t, o.PendingEvents())
	})

	t.Run("restore_rebuilds_snapshot", func(t *testing.T) {
		o := newOrder(t, order.TypeDelivery)
		require.NoError(t, o.AttachPayment(order.MethodCashOnDelivery, kitchen, checkoutTime))

		restored, err := order.RestoreOrder(o.Snapshot())

		require.NoError(t, err)
		assert.Equal(t, o.Snapshot(), restored.Snapshot())
		assert.Empty(t, restored.PendingEvents())
	})

	t.Run("restore_rejects_zero_version", func(t *testing.T) {
		s := newOrder(t, order.TypeDelivery).Snapshot()
		s.Version = 0

		_, err := order.RestoreOrder(s)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("zero_value_order_is_not_constructed", func(t *testing.T) {
		var o order.Order

		require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})
}
