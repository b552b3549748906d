package commands

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/status"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrApplyTransitionCommandIsNotConstructed = errors.New(
	"ApplyTransitionCommand must be created via NewApplyTransitionCommand constructor",
)

// ApplyTransitionCommand asks for one machine of an order to reach an
// explicit target state.
//
// Example:
//
//	cmd, err := NewApplyTransitionCommand(42, status.PaymentMachine, "COMPLETED",
//	    order.Actor{Source: "payment-webhook", ID: "evt_9"}, order.TransitionDetails{TransactionID: "ch_1"}, nil)
//	if err != nil {
//	    return err
//	}
//	updated, err := handler.Handle(ctx, cmd)
type ApplyTransitionCommand struct { //nolint:recvcheck //using for validation
	orderID         int64
	machine         status.Machine
	target          status.State
	actor           order.Actor
	details         order.TransitionDetails
	expectedVersion *int64

	guard guard.ConstructorGuard
}

// NewApplyTransitionCommand parses target against machine. expectedVersion
// is optional; when set, the command fails with a version conflict unless
// the stored order is at exactly that version.
func NewApplyTransitionCommand(
	orderID int64,
	machine status.Machine,
	target string,
	actor order.Actor,
	details order.TransitionDetails,
	expectedVersion *int64,
) (ApplyTransitionCommand, error) {
	cmd := ApplyTransitionCommand{
		details: details,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setTarget(machine, target),
		cmd.setActor(actor),
		cmd.setExpectedVersion(expectedVersion),
	); err != nil {
		return ApplyTransitionCommand{}, err
	}

	return cmd, nil
}

func (c ApplyTransitionCommand) Validate() error {
	return c.guard.Validate(ErrApplyTransitionCommandIsNotConstructed)
}

func (c ApplyTransitionCommand) OrderID() int64 {
	return c.orderID
}

func (c ApplyTransitionCommand) Machine() status.Machine {
	return c.machine
}

func (c ApplyTransitionCommand) Target() status.State {
	return c.target
}

func (c ApplyTransitionCommand) Actor() order.Actor {
	return c.actor
}

func (c ApplyTransitionCommand) Details() order.TransitionDetails {
	return c.details
}

// ExpectedVersion returns the version the caller based its request on.
func (c ApplyTransitionCommand) ExpectedVersion() (int64, bool) {
	if c.expectedVersion == nil {
		return 0, false
	}
	return *c.expectedVersion, true
}

func (c *ApplyTransitionCommand) setOrderID(orderID int64) error {
	if orderID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("orderId", fmt.Errorf("%d is not greater than 0", orderID))
	}
	c.orderID = orderID
	return nil
}

func (c *ApplyTransitionCommand) setTarget(machine status.Machine, target string) error {
	if err := machine.Validate(); err != nil {
		return err
	}
	s, err := status.Parse(machine, target)
	if err != nil {
		return err
	}
	c.machine = machine
	c.target = s
	return nil
}

func (c *ApplyTransitionCommand) setActor(actor order.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}

func (c *ApplyTransitionCommand) setExpectedVersion(v *int64) error {
	if v == nil {
		return nil
	}
	if *v < 1 {
		return errs.NewValueIsInvalidErrorWithCause("expectedVersion", fmt.Errorf("%d is not greater than 0", *v))
	}
	version := *v
	c.expectedVersion = &version
	return nil
}
