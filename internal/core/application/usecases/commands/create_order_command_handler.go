package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/order"
)

// CreateOrderCommandHandler persists a new order together with its
// fulfillment record. The order id comes from the repository.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      Clock
}

func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory, clock Clock) CreateOrderCommandHandler {
	if clock == nil {
		clock = time.Now
	}
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle creates the order at version 1 in status PENDING.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	id, err := repo.NextID(ctx)
	if err != nil {
		return nil, err
	}

	created, err := order.NewOrder(id, cmd.Checkout(), h.clock())
	if err != nil {
		return nil, err
	}

	if err = repo.Add(ctx, created); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return created, nil
}
