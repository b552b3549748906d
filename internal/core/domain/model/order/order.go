package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/status"
	"fulfillment/internal/pkg/errs"
)

const (
	// DefaultPreparationTime is added to the checkout time to estimate when
	// the kitchen is done.
	DefaultPreparationTime = 30 * time.Minute

	// PickupWindowPadding opens the pickup window before the ready time.
	PickupWindowPadding = 10 * time.Minute

	// PickupWindowDuration keeps the pickup window open after the ready time.
	PickupWindowDuration = 30 * time.Minute

	// DefaultDeliveryEstimate is the arrival estimate used when a driver is
	// assigned without one.
	DefaultDeliveryEstimate = 30 * time.Minute

	pickupCodePrefix = "PU-"
	cashTxPrefix     = "COD-"
)

var (
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")
)

// Checkout carries everything the customer chose when placing the order.
type Checkout struct {
	Type                Type
	Customer            Customer
	Items               []Item
	DeliveryAddress     string
	PhoneNumber         string
	SpecialInstructions string
}

// Order is the aggregate root that owns the order status together with its
// payment and fulfillment records. All four lifecycles change only through
// its methods, and each successful change bumps Version exactly once.
type Order struct {
	id        int64
	orderType Type
	status    status.OrderStatus
	customer  Customer
	items     []Item
	total     kernel.Money

	deliveryAddress     string
	phoneNumber         string
	specialInstructions string
	estimatedReadyAt    *time.Time

	payment  *Payment
	delivery *Delivery
	pickup   *Pickup

	version   int64
	createdAt time.Time
	updatedAt time.Time

	events []Event

	isConstructed bool
}

// NewOrder places an order at checkout. The order starts PENDING at version 1
// without a payment record; the fulfillment record matching the type is
// created right away.
func NewOrder(id int64, checkout Checkout, now time.Time) (*Order, error) {
	o := &Order{
		status:              status.OrderPending,
		specialInstructions: checkout.SpecialInstructions,
		version:             1,
		createdAt:           now,
		updatedAt:           now,
		isConstructed:       true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setType(checkout.Type),
		o.setCustomer(checkout.Customer),
		o.setItems(checkout.Items),
		o.setContact(checkout.Type, checkout.DeliveryAddress, checkout.PhoneNumber),
	); err != nil {
		return nil, err
	}

	o.estimatedReadyAt = timePtr(now.Add(DefaultPreparationTime))

	switch o.orderType {
	case TypeDelivery:
		o.delivery = &Delivery{
			Status:    status.DeliveryPending,
			Notes:     checkout.SpecialInstructions,
			CreatedAt: now,
			UpdatedAt: now,
		}
	case TypePickup:
		readyAt := *o.estimatedReadyAt
		o.pickup = &Pickup{
			Status:       status.PickupAwaitingConfirmation,
			Code:         pickupCodePrefix + kernel.NewUUID().ShortCode(8),
			ReadyAt:      timePtr(readyAt),
			WindowStart:  timePtr(readyAt.Add(-PickupWindowPadding)),
			WindowEnd:    timePtr(readyAt.Add(PickupWindowDuration)),
			Instructions: checkout.SpecialInstructions,
			ContactName:  o.customer.Name,
			ContactPhone: o.phoneNumber,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
	case TypeUnknown, TypeDineIn:
	}

	return o, nil
}

// Snapshot is the complete persisted state of an order. Repositories map
// their storage format to and from it.
type Snapshot struct {
	ID                  int64
	Type                Type
	Status              status.OrderStatus
	Customer            Customer
	Items               []Item
	Total               kernel.Money
	DeliveryAddress     string
	PhoneNumber         string
	SpecialInstructions string
	EstimatedReadyAt    *time.Time
	Payment             *Payment
	Delivery            *Delivery
	Pickup              *Pickup
	Version             int64
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// RestoreOrder rebuilds an aggregate from persisted state. It validates
// shape only; cross-machine rules are checked when the order changes.
func RestoreOrder(s Snapshot) (*Order, error) {
	o := &Order{
		status:              s.Status,
		total:               s.Total,
		deliveryAddress:     s.DeliveryAddress,
		phoneNumber:         s.PhoneNumber,
		specialInstructions: s.SpecialInstructions,
		estimatedReadyAt:    cloneTime(s.EstimatedReadyAt),
		payment:             s.Payment.clone(),
		delivery:            s.Delivery.clone(),
		pickup:              s.Pickup.clone(),
		version:             s.Version,
		createdAt:           s.CreatedAt,
		updatedAt:           s.UpdatedAt,
		isConstructed:       true,
	}

	var errList []error
	errList = append(errList,
		o.setID(s.ID),
		o.setType(s.Type),
		o.setCustomer(s.Customer),
		o.setItems(s.Items),
		s.Status.Validate(),
		s.Total.Validate(),
	)
	if s.Version < 1 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
			"version", fmt.Errorf("%d is not greater than 0", s.Version)))
	}
	if err := errors.Join(errList...); err != nil {
		return nil, err
	}

	return o, nil
}

// Snapshot returns a deep copy of the persisted state.
func (o *Order) Snapshot() Snapshot {
	return Snapshot{
		ID:                  o.id,
		Type:                o.orderType,
		Status:              o.status,
		Customer:            o.customer,
		Items:               o.Items(),
		Total:               o.total,
		DeliveryAddress:     o.deliveryAddress,
		PhoneNumber:         o.phoneNumber,
		SpecialInstructions: o.specialInstructions,
		EstimatedReadyAt:    cloneTime(o.estimatedReadyAt),
		Payment:             o.payment.clone(),
		Delivery:            o.delivery.clone(),
		Pickup:              o.pickup.clone(),
		Version:             o.version,
		CreatedAt:           o.createdAt,
		UpdatedAt:           o.updatedAt,
	}
}

// Clone returns an independent copy of the aggregate without pending events.
func (o *Order) Clone() *Order {
	c := *o
	c.items = o.Items()
	c.estimatedReadyAt = cloneTime(o.estimatedReadyAt)
	c.payment = o.payment.clone()
	c.delivery = o.delivery.clone()
	c.pickup = o.pickup.clone()
	c.events = nil
	return &c
}

func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) ID() int64 {
	return o.id
}

func (o *Order) Type() Type {
	return o.orderType
}

func (o *Order) Status() status.OrderStatus {
	return o.status
}

func (o *Order) Customer() Customer {
	return o.customer
}

// Items returns a copy of the order lines.
func (o *Order) Items() []Item {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}

func (o *Order) Total() kernel.Money {
	return o.total
}

func (o *Order) DeliveryAddress() string {
	return o.deliveryAddress
}

func (o *Order) PhoneNumber() string {
	return o.phoneNumber
}

func (o *Order) SpecialInstructions() string {
	return o.specialInstructions
}

func (o *Order) EstimatedReadyAt() *time.Time {
	return cloneTime(o.estimatedReadyAt)
}

// Payment returns a copy of the payment record, if any.
func (o *Order) Payment() (Payment, bool) {
	if o.payment == nil {
		return Payment{}, false
	}
	return *o.payment.clone(), true
}

// Delivery returns a copy of the delivery record, if any.
func (o *Order) Delivery() (Delivery, bool) {
	if o.delivery == nil {
		return Delivery{}, false
	}
	return *o.delivery.clone(), true
}

// Pickup returns a copy of the pickup record, if any.
func (o *Order) Pickup() (Pickup, bool) {
	if o.pickup == nil {
		return Pickup{}, false
	}
	return *o.pickup.clone(), true
}

func (o *Order) Version() int64 {
	return o.version
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// StateOf returns the current state of machine m, or nil when the order has
// no record for it.
func (o *Order) StateOf(m status.Machine) status.State {
	switch m {
	case status.OrderMachine:
		return o.status
	case status.PaymentMachine:
		if o.payment != nil {
			return o.payment.Status
		}
	case status.DeliveryMachine:
		if o.delivery != nil {
			return o.delivery.Status
		}
	case status.PickupMachine:
		if o.pickup != nil {
			return o.pickup.Status
		}
	case status.UnknownMachine:
	}
	return nil
}

// FulfillmentState returns the delivery or pickup state, or nil for DINE_IN.
func (o *Order) FulfillmentState() status.State {
	return o.StateOf(o.orderType.FulfillmentMachine())
}

// PendingEvents returns the events recorded since the last PullEvents.
func (o *Order) PendingEvents() []Event {
	events := make([]Event, len(o.events))
	copy(events, o.events)
	return events
}

// PullEvents returns and clears the recorded events.
func (o *Order) PullEvents() []Event {
	events := o.events
	o.events = nil
	return events
}

// AttachPayment creates the payment record for the current total. A previous
// record may only be replaced once it failed or was cancelled.
func (o *Order) AttachPayment(method PaymentMethod, actor Actor, now time.Time) error {
	if err := errors.Join(method.Validate(), actor.Validate()); err != nil {
		return err
	}
	if o.status != status.OrderPending && o.status != status.OrderConfirmed {
		return errs.NewConsistencyViolationError(
			"payment-attachable",
			fmt.Sprintf("payment cannot be attached to a %s order", o.status),
		)
	}
	from := ""
	if o.payment != nil {
		if o.payment.Status != status.PaymentFailed && o.payment.Status != status.PaymentCancelled {
			return errs.NewConsistencyViolationError(
				"payment-attachable",
				fmt.Sprintf("order already has a %s payment", o.payment.Status),
			)
		}
		from = o.payment.Status.String()
	}

	payment := &Payment{
		Status:    status.PaymentPending,
		Method:    method,
		Amount:    o.total,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if method.IsCash() {
		payment.TransactionID = cashTxPrefix + kernel.NewUUID().String()
	}

	start := len(o.events)
	o.payment = payment
	o.record(status.PaymentMachine, from, status.PaymentPending.String(), false, actor, now)
	o.commitChange(start, now)
	return nil
}

// ReviseItems replaces the order lines and recomputes the total. Only a
// PENDING order can be revised.
func (o *Order) ReviseItems(items []Item, now time.Time) error {
	if o.status != status.OrderPending {
		return errs.NewConsistencyViolationError(
			"items-revisable",
			fmt.Sprintf("items of a %s order cannot be revised", o.status),
		)
	}
	if err := o.setItems(items); err != nil {
		return err
	}
	if o.payment != nil && !o.payment.Status.IsSettled() {
		o.payment.Amount = o.total
		o.payment.UpdatedAt = now
	}
	o.commitChange(len(o.events), now)
	return nil
}

func (o *Order) setID(id int64) error {
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("orderId", fmt.Errorf("%d is not greater than 0", id))
	}
	o.id = id
	return nil
}

func (o *Order) setType(t Type) error {
	if err := t.Validate(); err != nil {
		return err
	}
	o.orderType = t
	return nil
}

func (o *Order) setCustomer(c Customer) error {
	if err := c.Validate(); err != nil {
		return err
	}
	o.customer = c
	return nil
}

// setItems replaces the lines and, while the price may still change,
// recomputes the total.
func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("orderItems")
	}
	for i, item := range items {
		if err := item.Validate(); err != nil {
			return fmt.Errorf("orderItems[%d]: %w", i, err)
		}
	}
	o.items = make([]Item, len(items))
	copy(o.items, items)

	if o.status == status.OrderPending || o.status == status.OrderConfirmed {
		total := kernel.ZeroMoney()
		for _, item := range o.items {
			total = total.Add(item.LineTotal())
		}
		o.total = total
	}
	return nil
}

func (o *Order) setContact(t Type, deliveryAddress, phoneNumber string) error {
	var errList []error
	if t == TypeDelivery && strings.TrimSpace(deliveryAddress) == "" {
		errList = append(errList, errs.NewValueIsRequiredErrorWithCause(
			"deliveryAddress", errors.New("delivery orders need an address")))
	}
	if (t == TypeDelivery || t == TypePickup) && strings.TrimSpace(phoneNumber) == "" {
		errList = append(errList, errs.NewValueIsRequiredErrorWithCause(
			"phoneNumber", fmt.Errorf("%s orders need a phone number", strings.ToLower(t.String()))))
	}
	if err := errors.Join(errList...); err != nil {
		return err
	}
	o.deliveryAddress = deliveryAddress
	o.phoneNumber = phoneNumber
	return nil
}

func (o *Order) record(machine status.Machine, from, to string, cascade bool, actor Actor, at time.Time) {
	o.events = append(o.events, newEvent(o.id, machine, from, to, cascade, actor, at))
}

// commitChange bumps the version once and stamps the events recorded since
// start with it.
func (o *Order) commitChange(start int, now time.Time) {
	o.version++
	o.updatedAt = now
	for i := start; i < len(o.events); i++ {
		o.events[i].Version = o.version
	}
}
