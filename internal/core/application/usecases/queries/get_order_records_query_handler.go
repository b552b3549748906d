package queries

import (
	"context"

	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// GetOrderRecordQueryHandler serves the per-record reads. The result holds
// exactly one of Payment, Delivery or Pickup.
type GetOrderRecordQueryHandler struct {
	reader ports.OrderReader
}

type GetOrderRecordQueryResponse struct {
	Payment  *PaymentView
	Delivery *DeliveryView
	Pickup   *PickupView
}

func NewGetOrderRecordQueryHandler(reader ports.OrderReader) GetOrderRecordQueryHandler {
	return GetOrderRecordQueryHandler{reader: reader}
}

// Handle returns errs.ObjectNotFoundError when either the order or the
// requested record does not exist, e.g. the delivery of a PICKUP order.
func (h GetOrderRecordQueryHandler) Handle(
	ctx context.Context,
	query GetOrderRecordQuery,
) (GetOrderRecordQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderRecordQueryResponse{}, err
	}

	o, err := h.reader.Get(ctx, query.OrderID())
	if err != nil {
		return GetOrderRecordQueryResponse{}, err
	}

	switch query.Record() {
	case RecordPayment:
		if p, ok := o.Payment(); ok {
			view := NewPaymentView(o.ID(), p)
			return GetOrderRecordQueryResponse{Payment: &view}, nil
		}
	case RecordDelivery:
		if d, ok := o.Delivery(); ok {
			view := NewDeliveryView(o.ID(), d)
			return GetOrderRecordQueryResponse{Delivery: &view}, nil
		}
	case RecordPickup:
		if p, ok := o.Pickup(); ok {
			view := NewPickupView(o.ID(), p)
			return GetOrderRecordQueryResponse{Pickup: &view}, nil
		}
	case RecordUnknown:
	}
	return GetOrderRecordQueryResponse{}, errs.NewObjectNotFoundError(query.Record().String()+".orderId", o.ID())
}
