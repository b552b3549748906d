package commands

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrAttachPaymentCommandIsNotConstructed = errors.New(
	"AttachPaymentCommand must be created via NewAttachPaymentCommand constructor",
)

// AttachPaymentCommand creates the payment record of an order.
type AttachPaymentCommand struct { //nolint:recvcheck //using for validation
	orderID int64
	method  order.PaymentMethod
	actor   order.Actor

	guard guard.ConstructorGuard
}

func NewAttachPaymentCommand(orderID int64, method order.PaymentMethod, actor order.Actor) (AttachPaymentCommand, error) {
	cmd := AttachPaymentCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setMethod(method),
		cmd.setActor(actor),
	); err != nil {
		return AttachPaymentCommand{}, err
	}

	return cmd, nil
}

func (c AttachPaymentCommand) Validate() error {
	return c.guard.Validate(ErrAttachPaymentCommandIsNotConstructed)
}

func (c AttachPaymentCommand) OrderID() int64 {
	return c.orderID
}

func (c AttachPaymentCommand) Method() order.PaymentMethod {
	return c.method
}

func (c AttachPaymentCommand) Actor() order.Actor {
	return c.actor
}

func (c *AttachPaymentCommand) setOrderID(orderID int64) error {
	if orderID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("orderId", fmt.Errorf("%d is not greater than 0", orderID))
	}
	c.orderID = orderID
	return nil
}

func (c *AttachPaymentCommand) setMethod(method order.PaymentMethod) error {
	if err := method.Validate(); err != nil {
		return err
	}
	c.method = method
	return nil
}

func (c *AttachPaymentCommand) setActor(actor order.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}
