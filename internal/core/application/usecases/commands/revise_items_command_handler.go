package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
)

// ReviseItemsCommandHandler replaces the items of a PENDING order and keeps
// an unsettled payment amount in line with the new total.
type ReviseItemsCommandHandler struct {
	writer orderWriter
	engine services.TransitionEngine
}

func NewReviseItemsCommandHandler(
	uowFactory OrderUoWFactory,
	locker OrderLocker,
	engine services.TransitionEngine,
	clock Clock,
) ReviseItemsCommandHandler {
	return ReviseItemsCommandHandler{
		writer: newOrderWriter(uowFactory, locker, nil, nil, clock),
		engine: engine,
	}
}

func (h *ReviseItemsCommandHandler) Handle(ctx context.Context, cmd ReviseItemsCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return h.writer.write(ctx, cmd.OrderID(), func(current *order.Order) (*order.Order, error) {
		next := current.Clone()
		if err := next.ReviseItems(cmd.Items(), h.writer.clock()); err != nil {
			return nil, err
		}
		if err := h.engine.Verify(next); err != nil {
			return nil, err
		}
		return next, nil
	})
}
