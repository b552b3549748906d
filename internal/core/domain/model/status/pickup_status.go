package status

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// PickupStatus is the lifecycle of the counter hand-off for PICKUP orders.
//
//	AWAITING_CONFIRMATION ──> PREPARING ──> READY_FOR_PICKUP ──> COMPLETED
//
// Every non-terminal state may also move to CANCELLED.
type PickupStatus int

const (
	PickupUnknown PickupStatus = iota
	PickupAwaitingConfirmation
	PickupPreparing
	PickupReadyForPickup
	PickupCompleted
	PickupCancelled
)

func getPickupStatusStrings() map[PickupStatus]string {
	return map[PickupStatus]string{
		PickupUnknown:              "UNKNOWN",
		PickupAwaitingConfirmation: "AWAITING_CONFIRMATION",
		PickupPreparing:            "PREPARING",
		PickupReadyForPickup:       "READY_FOR_PICKUP",
		PickupCompleted:            "COMPLETED",
		PickupCancelled:            "CANCELLED",
	}
}

func (s PickupStatus) Machine() Machine {
	return PickupMachine
}

func (s PickupStatus) Validate() error {
	if s <= PickupUnknown || s > PickupCancelled {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid pickup status", s))
	}
	return nil
}

func (s PickupStatus) String() string {
	if str, ok := getPickupStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

func (s PickupStatus) IsTerminal() bool {
	return s == PickupCompleted || s == PickupCancelled
}

func (s PickupStatus) IsTerminalSuccess() bool {
	return s == PickupCompleted
}

// CanTransitionTo reports whether s -> to is an edge of the pickup machine.
func (s PickupStatus) CanTransitionTo(to PickupStatus) bool {
	if s.Validate() != nil || to.Validate() != nil || s.IsTerminal() {
		return false
	}
	return to == PickupCancelled || to == s+1
}
