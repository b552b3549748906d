package order

import (
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/status"
)

// Event describes one state change of one machine. A single committed
// transition yields the primary event followed by any cascaded ones, all
// stamped with the version they were committed at.
type Event struct {
	ID         string    `json:"eventId"`
	OrderID    int64     `json:"orderId"`
	Machine    string    `json:"machine"`
	From       string    `json:"fromState"`
	To         string    `json:"toState"`
	Cascade    bool      `json:"cascade"`
	Actor      string    `json:"actor"`
	Title      string    `json:"title"`
	Message    string    `json:"message"`
	Version    int64     `json:"version"`
	OccurredAt time.Time `json:"timestamp"`
}

func newEvent(orderID int64, machine status.Machine, from, to string, cascade bool, actor Actor, at time.Time) Event {
	title, message := describe(machine, to, orderID)
	return Event{
		ID:         kernel.NewUUID().String(),
		OrderID:    orderID,
		Machine:    machine.String(),
		From:       from,
		To:         to,
		Cascade:    cascade,
		Actor:      actor.String(),
		Title:      title,
		Message:    message,
		OccurredAt: at,
	}
}

// describe returns the customer-facing title and message for a new state.
func describe(machine status.Machine, to string, orderID int64) (string, string) {
	key := machine.String() + ":" + to
	titles := map[string]string{
		"ORDER:CONFIRMED":          "Order Confirmed",
		"ORDER:PREPARING":          "Order Being Prepared",
		"ORDER:READY_FOR_PICKUP":   "Ready for Pickup",
		"ORDER:READY_FOR_DELIVERY": "Ready for Delivery",
		"ORDER:OUT_FOR_DELIVERY":   "Out for Delivery",
		"ORDER:COMPLETED":          "Order Completed",
		"ORDER:CANCELLED":          "Order Cancelled",
		"PAYMENT:COMPLETED":        "Payment Received",
		"PAYMENT:FAILED":           "Payment Failed",
		"PAYMENT:REFUNDED":         "Payment Refunded",
		"DELIVERY:ASSIGNED":        "Driver Assigned",
		"DELIVERY:PICKED_UP":       "Order Picked Up",
		"DELIVERY:ON_THE_WAY":      "Driver On The Way",
		"DELIVERY:DELIVERED":       "Order Delivered",
		"PICKUP:READY_FOR_PICKUP":  "Ready at the Counter",
		"PICKUP:COMPLETED":         "Order Collected",
	}
	title, ok := titles[key]
	if !ok {
		title = "Order Updated"
	}
	return title, fmt.Sprintf("Order #%d %s is now %s", orderID, machineNoun(machine), to)
}

func machineNoun(m status.Machine) string {
	switch m {
	case status.PaymentMachine:
		return "payment"
	case status.DeliveryMachine:
		return "delivery"
	case status.PickupMachine:
		return "pickup"
	case status.OrderMachine, status.UnknownMachine:
	}
	return "status"
}
