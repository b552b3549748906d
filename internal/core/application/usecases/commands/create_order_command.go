package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand places a new order at checkout.
//
// Example:
//
//	item, _ := order.NewItem(11, "Ramen", 2, price, "no onions")
//	cmd, err := NewCreateOrderCommand(order.TypePickup, customer, []order.Item{item}, "", "+15550100", "")
//	if err != nil {
//	    return fmt.Errorf("invalid checkout: %w", err)
//	}
//
//	created, err := handler.Handle(ctx, cmd)
//	fmt.Printf("Order #%d placed", created.ID())
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	checkout order.Checkout

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand checks the command shape. Type specific rules, such
// as the address of a delivery order, are enforced when the order is built.
func NewCreateOrderCommand(
	orderType order.Type,
	customer order.Customer,
	items []order.Item,
	deliveryAddress string,
	phoneNumber string,
	specialInstructions string,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		checkout: order.Checkout{
			DeliveryAddress:     deliveryAddress,
			PhoneNumber:         phoneNumber,
			SpecialInstructions: specialInstructions,
		},
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setType(orderType),
		cmd.setCustomer(customer),
		cmd.setItems(items),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// Checkout returns a copy of the checkout data.
func (c CreateOrderCommand) Checkout() order.Checkout {
	checkout := c.checkout
	checkout.Items = append([]order.Item(nil), c.checkout.Items...)
	return checkout
}

func (c *CreateOrderCommand) setType(t order.Type) error {
	if err := t.Validate(); err != nil {
		return err
	}
	c.checkout.Type = t
	return nil
}

func (c *CreateOrderCommand) setCustomer(customer order.Customer) error {
	if err := customer.Validate(); err != nil {
		return err
	}
	c.checkout.Customer = customer
	return nil
}

func (c *CreateOrderCommand) setItems(items []order.Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("orderItems")
	}
	c.checkout.Items = append([]order.Item(nil), items...)
	return nil
}
