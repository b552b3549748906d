package order

import (
	"fmt"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/status"
	"fulfillment/internal/pkg/errs"
)

// Actor identifies who asked for a change, e.g. {Source: "payment-webhook", ID: "evt_123"}.
type Actor struct {
	Source string
	ID     string
}

func (a Actor) Validate() error {
	if strings.TrimSpace(a.Source) == "" {
		return errs.NewValueIsRequiredError("actor.source")
	}
	return nil
}

func (a Actor) String() string {
	if a.ID == "" {
		return a.Source
	}
	return a.Source + ":" + a.ID
}

// TransitionDetails is optional data captured together with a state change.
// Fields irrelevant to the target state are ignored.
type TransitionDetails struct {
	DriverName       string
	DriverPhone      string
	VehicleInfo      string
	EstimatedArrival *time.Time
	Coordinates      *kernel.Coordinates
	CurrentLocation  string
	TransactionID    string
	Notes            string
}

// Transition moves machine m to target and applies the side effects of the
// new state. Cancelling the order cancels every record that can still be
// cancelled; completing a cash-on-delivery order marks the cash as collected.
//
// Transition checks only the machine's own graph. Whether the resulting
// aggregate is consistent across machines is the caller's concern.
func (o *Order) Transition(m status.Machine, target status.State, details TransitionDetails, actor Actor, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := m.Validate(); err != nil {
		return err
	}
	if target == nil || target.Machine() != m {
		return errs.NewValueIsInvalidErrorWithCause("targetState", fmt.Errorf("target is not a %s state", m))
	}
	if err := target.Validate(); err != nil {
		return err
	}
	if err := actor.Validate(); err != nil {
		return err
	}

	start := len(o.events)
	var err error
	switch m {
	case status.OrderMachine:
		err = o.transitionOrder(target.(status.OrderStatus), actor, now)
	case status.PaymentMachine:
		err = o.transitionPayment(target.(status.PaymentStatus), details, actor, now)
	case status.DeliveryMachine:
		err = o.transitionDelivery(target.(status.DeliveryStatus), details, actor, now)
	case status.PickupMachine:
		err = o.transitionPickup(target.(status.PickupStatus), actor, now)
	case status.UnknownMachine:
	}
	if err != nil {
		return err
	}

	o.commitChange(start, now)
	return nil
}

func (o *Order) transitionOrder(to status.OrderStatus, actor Actor, now time.Time) error {
	from := o.status
	if !status.IsLegal(status.OrderMachine, from, to) {
		return errs.NewIllegalTransitionError(status.OrderMachine.String(), from.String(), to.String())
	}

	o.status = to
	o.record(status.OrderMachine, from.String(), to.String(), false, actor, now)

	switch to {
	case status.OrderCancelled:
		o.cascadeCancel(actor, now)
	case status.OrderCompleted:
		o.cascadeCashCollected(actor, now)
	default:
	}
	return nil
}

func (o *Order) cascadeCancel(actor Actor, now time.Time) {
	if p := o.payment; p != nil && p.Status.CanTransitionTo(status.PaymentCancelled) {
		from := p.Status
		p.Status = status.PaymentCancelled
		p.UpdatedAt = now
		o.record(status.PaymentMachine, from.String(), p.Status.String(), true, actor, now)
	}
	if d := o.delivery; d != nil && d.Status.CanTransitionTo(status.DeliveryCancelled) {
		from := d.Status
		d.Status = status.DeliveryCancelled
		d.UpdatedAt = now
		o.record(status.DeliveryMachine, from.String(), d.Status.String(), true, actor, now)
	}
	if p := o.pickup; p != nil && p.Status.CanTransitionTo(status.PickupCancelled) {
		from := p.Status
		p.Status = status.PickupCancelled
		p.WindowEnd = timePtr(now)
		p.UpdatedAt = now
		o.record(status.PickupMachine, from.String(), p.Status.String(), true, actor, now)
	}
}

func (o *Order) cascadeCashCollected(actor Actor, now time.Time) {
	p := o.payment
	if p == nil || !p.Method.IsCash() || p.Status.IsSettled() {
		return
	}
	from := p.Status
	p.Status = status.PaymentCompleted
	p.PaidAt = timePtr(now)
	p.UpdatedAt = now
	o.record(status.PaymentMachine, from.String(), p.Status.String(), true, actor, now)
}

func (o *Order) transitionPayment(to status.PaymentStatus, details TransitionDetails, actor Actor, now time.Time) error {
	p := o.payment
	if p == nil {
		return errs.NewConsistencyViolationError(
			"payment-record-present", fmt.Sprintf("order %d has no payment record", o.id))
	}
	from := p.Status
	if !status.IsLegal(status.PaymentMachine, from, to) {
		return errs.NewIllegalTransitionError(status.PaymentMachine.String(), from.String(), to.String())
	}

	p.Status = to
	p.UpdatedAt = now
	if details.TransactionID != "" {
		p.TransactionID = details.TransactionID
	}
	if to == status.PaymentCompleted {
		p.PaidAt = timePtr(now)
	}
	o.record(status.PaymentMachine, from.String(), to.String(), false, actor, now)
	return nil
}

func (o *Order) transitionDelivery(to status.DeliveryStatus, details TransitionDetails, actor Actor, now time.Time) error {
	d := o.delivery
	if d == nil {
		return errs.NewConsistencyViolationError(
			"fulfillment-matches-type", fmt.Sprintf("%s order %d has no delivery record", o.orderType, o.id))
	}
	from := d.Status
	if !status.IsLegal(status.DeliveryMachine, from, to) {
		return errs.NewIllegalTransitionError(status.DeliveryMachine.String(), from.String(), to.String())
	}

	d.Status = to
	d.UpdatedAt = now
	switch to {
	case status.DeliveryAssigned:
		d.DriverName = details.DriverName
		d.DriverPhone = details.DriverPhone
		d.VehicleInfo = details.VehicleInfo
		if details.EstimatedArrival != nil {
			d.EstimatedArrivalTime = cloneTime(details.EstimatedArrival)
		} else {
			d.EstimatedArrivalTime = timePtr(now.Add(DefaultDeliveryEstimate))
		}
	case status.DeliveryPickedUp:
		d.PickupTime = timePtr(now)
	case status.DeliveryDelivered:
		d.ActualDeliveryTime = timePtr(now)
	default:
	}
	if details.Coordinates != nil {
		coordinates := *details.Coordinates
		d.Coordinates = &coordinates
	}
	if details.CurrentLocation != "" {
		d.CurrentLocation = details.CurrentLocation
	}
	if details.Notes != "" {
		d.Notes = details.Notes
	}
	o.record(status.DeliveryMachine, from.String(), to.String(), false, actor, now)
	return nil
}

func (o *Order) transitionPickup(to status.PickupStatus, actor Actor, now time.Time) error {
	p := o.pickup
	if p == nil {
		return errs.NewConsistencyViolationError(
			"fulfillment-matches-type", fmt.Sprintf("%s order %d has no pickup record", o.orderType, o.id))
	}
	from := p.Status
	if !status.IsLegal(status.PickupMachine, from, to) {
		return errs.NewIllegalTransitionError(status.PickupMachine.String(), from.String(), to.String())
	}

	p.Status = to
	p.UpdatedAt = now
	switch to {
	case status.PickupPreparing:
		readyAt := now.Add(DefaultPreparationTime)
		if o.estimatedReadyAt != nil && o.estimatedReadyAt.After(now) {
			readyAt = *o.estimatedReadyAt
		}
		p.ReadyAt = timePtr(readyAt)
		p.WindowStart = timePtr(readyAt.Add(-PickupWindowPadding))
		p.WindowEnd = timePtr(readyAt.Add(PickupWindowDuration))
	case status.PickupCompleted:
		p.PickedUpAt = timePtr(now)
	case status.PickupCancelled:
		p.WindowEnd = timePtr(now)
	default:
	}
	o.record(status.PickupMachine, from.String(), to.String(), false, actor, now)
	return nil
}
