package status

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// PaymentStatus is the lifecycle of the payment record.
//
//	PENDING ──┬──> AWAITING_SESSION ──┐
//	          ├──> AWAITING_WEBHOOK ──┼──> PROCESSING ──┬──> COMPLETED ──> REFUNDED
//	          └──> CASH_PENDING ──────┘                 └──> FAILED
//
// Every state that is neither terminal nor COMPLETED may move to CANCELLED.
// COMPLETED means funds were captured: it is the successful outcome and only
// a refund can follow it.
type PaymentStatus int

const (
	PaymentUnknown PaymentStatus = iota
	PaymentPending
	PaymentAwaitingSession
	PaymentAwaitingWebhook
	PaymentCashPending
	PaymentProcessing
	PaymentCompleted
	PaymentFailed
	PaymentCancelled
	PaymentRefunded
)

func getPaymentStatusStrings() map[PaymentStatus]string {
	return map[PaymentStatus]string{
		PaymentUnknown:         "UNKNOWN",
		PaymentPending:         "PENDING",
		PaymentAwaitingSession: "AWAITING_SESSION",
		PaymentAwaitingWebhook: "AWAITING_WEBHOOK",
		PaymentCashPending:     "CASH_PENDING",
		PaymentProcessing:      "PROCESSING",
		PaymentCompleted:       "COMPLETED",
		PaymentFailed:          "FAILED",
		PaymentCancelled:       "CANCELLED",
		PaymentRefunded:        "REFUNDED",
	}
}

func getPaymentEdges() map[PaymentStatus][]PaymentStatus {
	//nolint:exhaustive // terminal states have no forward edges
	return map[PaymentStatus][]PaymentStatus{
		PaymentPending:         {PaymentAwaitingSession, PaymentAwaitingWebhook, PaymentCashPending},
		PaymentAwaitingSession: {PaymentProcessing},
		PaymentAwaitingWebhook: {PaymentProcessing},
		PaymentCashPending:     {PaymentProcessing},
		PaymentProcessing:      {PaymentCompleted, PaymentFailed},
		PaymentCompleted:       {PaymentRefunded},
	}
}

func (s PaymentStatus) Machine() Machine {
	return PaymentMachine
}

func (s PaymentStatus) Validate() error {
	if s <= PaymentUnknown || s > PaymentRefunded {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid payment status", s))
	}
	return nil
}

func (s PaymentStatus) String() string {
	if str, ok := getPaymentStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

func (s PaymentStatus) IsTerminal() bool {
	return s == PaymentFailed || s == PaymentCancelled || s == PaymentRefunded
}

func (s PaymentStatus) IsTerminalSuccess() bool {
	return s == PaymentCompleted
}

// IsSettled reports whether the payment can no longer be cancelled.
func (s PaymentStatus) IsSettled() bool {
	return s.IsTerminal() || s == PaymentCompleted
}

// CanTransitionTo reports whether s -> to is an edge of the payment machine.
func (s PaymentStatus) CanTransitionTo(to PaymentStatus) bool {
	if s.Validate() != nil || to.Validate() != nil || s.IsTerminal() {
		return false
	}
	if to == PaymentCancelled {
		return !s.IsSettled()
	}
	for _, next := range getPaymentEdges()[s] {
		if next == to {
			return true
		}
	}
	return false
}
