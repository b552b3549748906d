package queries

import (
	"errors"
	"fmt"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrGetOrderRecordQueryIsNotConstructed = errors.New(
		"GetOrderRecordQuery must be created via NewGetOrderRecordQuery constructor",
	)
)

// Record names the sub-record of an order a GetOrderRecordQuery reads.
type Record int

const (
	RecordUnknown Record = iota
	RecordPayment
	RecordDelivery
	RecordPickup
)

func (r Record) String() string {
	switch r {
	case RecordPayment:
		return "payment"
	case RecordDelivery:
		return "delivery"
	case RecordPickup:
		return "pickup"
	case RecordUnknown:
	}
	return "unknown"
}

// GetOrderRecordQuery reads the payment, delivery or pickup record of an order.
type GetOrderRecordQuery struct {
	orderID int64
	record  Record

	guard guard.ConstructorGuard
}

func NewGetOrderRecordQuery(orderID int64, record Record) (GetOrderRecordQuery, error) {
	var errList []error
	if orderID <= 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
			"orderId", fmt.Errorf("%d is not greater than 0", orderID)))
	}
	if record <= RecordUnknown || record > RecordPickup {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
			"record", fmt.Errorf("%d is not a valid order record", record)))
	}
	if err := errors.Join(errList...); err != nil {
		return GetOrderRecordQuery{}, err
	}
	return GetOrderRecordQuery{orderID: orderID, record: record, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderRecordQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderRecordQueryIsNotConstructed)
}

func (q GetOrderRecordQuery) OrderID() int64 {
	return q.orderID
}

func (q GetOrderRecordQuery) Record() Record {
	return q.record
}
