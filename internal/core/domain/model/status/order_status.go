package status

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// OrderStatus is the top-level lifecycle of an order.
//
//	PENDING ──> CONFIRMED ──> PREPARING ──┬──> READY_FOR_PICKUP ──────────────────> COMPLETED
//	                                      └──> READY_FOR_DELIVERY ──> OUT_FOR_DELIVERY ──┘
//
// Every non-terminal state may also move to CANCELLED.
type OrderStatus int

const (
	OrderUnknown OrderStatus = iota
	OrderPending
	OrderConfirmed
	OrderPreparing
	OrderReadyForPickup
	OrderReadyForDelivery
	OrderOutForDelivery
	OrderCompleted
	OrderCancelled
)

func getOrderStatusStrings() map[OrderStatus]string {
	return map[OrderStatus]string{
		OrderUnknown:          "UNKNOWN",
		OrderPending:          "PENDING",
		OrderConfirmed:        "CONFIRMED",
		OrderPreparing:        "PREPARING",
		OrderReadyForPickup:   "READY_FOR_PICKUP",
		OrderReadyForDelivery: "READY_FOR_DELIVERY",
		OrderOutForDelivery:   "OUT_FOR_DELIVERY",
		OrderCompleted:        "COMPLETED",
		OrderCancelled:        "CANCELLED",
	}
}

// getOrderEdges lists the forward edges; cancellation is derived from IsTerminal.
func getOrderEdges() map[OrderStatus][]OrderStatus {
	//nolint:exhaustive // terminal states have no forward edges
	return map[OrderStatus][]OrderStatus{
		OrderPending:          {OrderConfirmed},
		OrderConfirmed:        {OrderPreparing},
		OrderPreparing:        {OrderReadyForPickup, OrderReadyForDelivery},
		OrderReadyForPickup:   {OrderCompleted},
		OrderReadyForDelivery: {OrderOutForDelivery},
		OrderOutForDelivery:   {OrderCompleted},
	}
}

func (s OrderStatus) Machine() Machine {
	return OrderMachine
}

func (s OrderStatus) Validate() error {
	if s <= OrderUnknown || s > OrderCancelled {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid order status", s))
	}
	return nil
}

func (s OrderStatus) String() string {
	if str, ok := getOrderStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

func (s OrderStatus) IsTerminal() bool {
	return s == OrderCompleted || s == OrderCancelled
}

func (s OrderStatus) IsTerminalSuccess() bool {
	return s == OrderCompleted
}

// CanTransitionTo reports whether s -> to is an edge of the order machine.
func (s OrderStatus) CanTransitionTo(to OrderStatus) bool {
	if s.Validate() != nil || to.Validate() != nil || s.IsTerminal() {
		return false
	}
	if to == OrderCancelled {
		return true
	}
	for _, next := range getOrderEdges()[s] {
		if next == to {
			return true
		}
	}
	return false
}
