package queries

import (
	"context"

	"fulfillment/internal/core/ports"
)

type ListActiveOrdersQueryHandler struct {
	reader ports.OrderReader
}

func NewListActiveOrdersQueryHandler(reader ports.OrderReader) ListActiveOrdersQueryHandler {
	return ListActiveOrdersQueryHandler{reader: reader}
}

func (h ListActiveOrdersQueryHandler) Handle(ctx context.Context, query ListActiveOrdersQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders, err := h.reader.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]OrderView, len(orders))
	for i, o := range orders {
		views[i] = NewOrderView(o)
	}
	return views, nil
}
