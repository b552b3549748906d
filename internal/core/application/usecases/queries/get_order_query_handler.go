package queries

import (
	"context"

	"fulfillment/internal/core/ports"
)

// GetOrderQueryHandler reads committed orders through ports.OrderReader.
type GetOrderQueryHandler struct {
	reader ports.OrderReader
}

func NewGetOrderQueryHandler(reader ports.OrderReader) GetOrderQueryHandler {
	return GetOrderQueryHandler{reader: reader}
}

// Handle returns errs.ObjectNotFoundError when the order does not exist.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderView, error) {
	if err := query.Validate(); err != nil {
		return OrderView{}, err
	}

	o, err := h.reader.Get(ctx, query.OrderID())
	if err != nil {
		return OrderView{}, err
	}
	return NewOrderView(o), nil
}
