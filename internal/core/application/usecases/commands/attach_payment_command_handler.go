package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
)

// AttachPaymentCommandHandler creates a PENDING payment for the current
// order total. A failed or cancelled payment may be replaced by a new one.
type AttachPaymentCommandHandler struct {
	writer orderWriter
	engine services.TransitionEngine
}

func NewAttachPaymentCommandHandler(
	uowFactory OrderUoWFactory,
	locker OrderLocker,
	publisher EventPublisher,
	engine services.TransitionEngine,
	clock Clock,
) AttachPaymentCommandHandler {
	return AttachPaymentCommandHandler{
		writer: newOrderWriter(uowFactory, locker, publisher, nil, clock),
		engine: engine,
	}
}

func (h *AttachPaymentCommandHandler) Handle(ctx context.Context, cmd AttachPaymentCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return h.writer.write(ctx, cmd.OrderID(), func(current *order.Order) (*order.Order, error) {
		next := current.Clone()
		if err := next.AttachPayment(cmd.Method(), cmd.Actor(), h.writer.clock()); err != nil {
			return nil, err
		}
		if err := h.engine.Verify(next); err != nil {
			return nil, err
		}
		return next, nil
	})
}
