// Package order provides the Order aggregate root of the fulfillment
// coordinator.
//
// The package includes:
//   - Order: identity, type, items, total, and the order, payment and
//     fulfillment lifecycles
//   - Payment, Delivery, Pickup: the sub-records owned by an order
//   - Event: the record of a single state change, drained after commit
//
// Key business rules:
//   - DELIVERY orders carry a delivery record, PICKUP orders a pickup record,
//     DINE_IN orders neither; the record is created at checkout
//   - the payment record is attached after checkout and replaced only after
//     it failed or was cancelled
//   - items and total may change only while the order is PENDING
//   - every accepted change bumps the version exactly once and records one
//     primary event plus one event per cascaded change
package order
