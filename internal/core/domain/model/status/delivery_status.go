package status

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// DeliveryStatus is the lifecycle of the courier hand-off for DELIVERY orders.
//
//	PENDING ──> ASSIGNED ──> PICKED_UP ──> ON_THE_WAY ──> DELIVERED
//
// Every non-terminal state may also move to CANCELLED.
type DeliveryStatus int

const (
	DeliveryUnknown DeliveryStatus = iota
	DeliveryPending
	DeliveryAssigned
	DeliveryPickedUp
	DeliveryOnTheWay
	DeliveryDelivered
	DeliveryCancelled
)

func getDeliveryStatusStrings() map[DeliveryStatus]string {
	return map[DeliveryStatus]string{
		DeliveryUnknown:   "UNKNOWN",
		DeliveryPending:   "PENDING",
		DeliveryAssigned:  "ASSIGNED",
		DeliveryPickedUp:  "PICKED_UP",
		DeliveryOnTheWay:  "ON_THE_WAY",
		DeliveryDelivered: "DELIVERED",
		DeliveryCancelled: "CANCELLED",
	}
}

func (s DeliveryStatus) Machine() Machine {
	return DeliveryMachine
}

func (s DeliveryStatus) Validate() error {
	if s <= DeliveryUnknown || s > DeliveryCancelled {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid delivery status", s))
	}
	return nil
}

func (s DeliveryStatus) String() string {
	if str, ok := getDeliveryStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

func (s DeliveryStatus) IsTerminal() bool {
	return s == DeliveryDelivered || s == DeliveryCancelled
}

func (s DeliveryStatus) IsTerminalSuccess() bool {
	return s == DeliveryDelivered
}

// HasDriver reports whether a driver has been assigned, including a delivery
// the driver has already handed over.
func (s DeliveryStatus) HasDriver() bool {
	return s == DeliveryAssigned || s == DeliveryPickedUp || s == DeliveryOnTheWay || s == DeliveryDelivered
}

// HasLeftKitchen reports whether the food is already with the driver or the customer.
func (s DeliveryStatus) HasLeftKitchen() bool {
	return s == DeliveryPickedUp || s == DeliveryOnTheWay || s == DeliveryDelivered
}

// CanTransitionTo reports whether s -> to is an edge of the delivery machine.
// The forward path is linear, so the next state is always s+1.
func (s DeliveryStatus) CanTransitionTo(to DeliveryStatus) bool {
	if s.Validate() != nil || to.Validate() != nil || s.IsTerminal() {
		return false
	}
	return to == DeliveryCancelled || to == s+1
}
