package commands

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrReviseItemsCommandIsNotConstructed = errors.New(
	"ReviseItemsCommand must be created via NewReviseItemsCommand constructor",
)

// ReviseItemsCommand replaces the lines of a PENDING order.
type ReviseItemsCommand struct { //nolint:recvcheck //using for validation
	orderID int64
	items   []order.Item

	guard guard.ConstructorGuard
}

func NewReviseItemsCommand(orderID int64, items []order.Item) (ReviseItemsCommand, error) {
	cmd := ReviseItemsCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setItems(items),
	); err != nil {
		return ReviseItemsCommand{}, err
	}

	return cmd, nil
}

func (c ReviseItemsCommand) Validate() error {
	return c.guard.Validate(ErrReviseItemsCommandIsNotConstructed)
}

func (c ReviseItemsCommand) OrderID() int64 {
	return c.orderID
}

func (c ReviseItemsCommand) Items() []order.Item {
	return append([]order.Item(nil), c.items...)
}

func (c *ReviseItemsCommand) setOrderID(orderID int64) error {
	if orderID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("orderId", fmt.Errorf("%d is not greater than 0", orderID))
	}
	c.orderID = orderID
	return nil
}

func (c *ReviseItemsCommand) setItems(items []order.Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("orderItems")
	}
	c.items = append([]order.Item(nil), items...)
	return nil
}
