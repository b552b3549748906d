package services

import (
	"fmt"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/status"
	"fulfillment/internal/pkg/errs"
)

// Rule is a named predicate over a whole order. Check returns false together
// with a human-readable reason when the order breaks the rule.
type Rule struct {
	Name  string
	Check func(o *order.Order) (bool, string)
}

// ConsistencyRules holds the cross-machine rules every stored order satisfies.
// They are evaluated in a fixed order and the first failure wins, so callers
// always get the same reason for the same snapshot.
type ConsistencyRules struct {
	rules []Rule
}

// NewConsistencyRules returns the rule set in evaluation order.
func NewConsistencyRules() ConsistencyRules {
	return ConsistencyRules{rules: []Rule{
		{Name: "fulfillment-matches-type", Check: fulfillmentMatchesType},
		{Name: "payment-record-present", Check: paymentRecordPresent},
		{Name: "ready-state-matches-type", Check: readyStateMatchesType},
		{Name: "dispatch-requires-driver", Check: dispatchRequiresDriver},
		{Name: "completion-requires-settlement", Check: completionRequiresSettlement},
		{Name: "delivery-progress-requires-ready-order", Check: deliveryProgressRequiresReadyOrder},
		{Name: "pickup-completion-requires-ready-order", Check: pickupCompletionRequiresReadyOrder},
		{Name: "cancellation-requires-settled-records", Check: cancellationRequiresSettledRecords},
	}}
}

// Rules returns a copy of the rules in evaluation order.
func (r ConsistencyRules) Rules() []Rule {
	rules := make([]Rule, len(r.rules))
	copy(rules, r.rules)
	return rules
}

// Evaluate returns a ConsistencyViolationError for the first rule o breaks.
func (r ConsistencyRules) Evaluate(o *order.Order) error {
	if err := o.Validate(); err != nil {
		return err
	}
	for _, rule := range r.rules {
		if ok, reason := rule.Check(o); !ok {
			return errs.NewConsistencyViolationError(rule.Name, reason)
		}
	}
	return nil
}

func fulfillmentMatchesType(o *order.Order) (bool, string) {
	_, hasDelivery := o.Delivery()
	_, hasPickup := o.Pickup()
	switch o.Type() {
	case order.TypeDelivery:
		if !hasDelivery || hasPickup {
			return false, "a DELIVERY order must carry exactly a delivery record"
		}
	case order.TypePickup:
		if !hasPickup || hasDelivery {
			return false, "a PICKUP order must carry exactly a pickup record"
		}
	case order.TypeDineIn:
		if hasDelivery || hasPickup {
			return false, "a DINE_IN order carries no fulfillment record"
		}
	case order.TypeUnknown:
		return false, "order type is unknown"
	}
	return true, ""
}

func paymentRecordPresent(o *order.Order) (bool, string) {
	s := o.Status()
	if s == status.OrderPending || s == status.OrderCancelled {
		return true, ""
	}
	if _, ok := o.Payment(); !ok {
		return false, fmt.Sprintf("a %s order must have a payment record", s)
	}
	return true, ""
}

func readyStateMatchesType(o *order.Order) (bool, string) {
	switch o.Status() {
	case status.OrderReadyForDelivery, status.OrderOutForDelivery:
		if o.Type() != order.TypeDelivery {
			return false, fmt.Sprintf("%s applies to DELIVERY orders, not %s", o.Status(), o.Type())
		}
	case status.OrderReadyForPickup:
		if o.Type() != order.TypePickup && o.Type() != order.TypeDineIn {
			return false, fmt.Sprintf("%s applies to PICKUP and DINE_IN orders, not %s", o.Status(), o.Type())
		}
	default:
	}
	return true, ""
}

func dispatchRequiresDriver(o *order.Order) (bool, string) {
	if o.Status() != status.OrderOutForDelivery {
		return true, ""
	}
	d, ok := o.Delivery()
	if !ok || !d.Status.HasDriver() {
		state := "missing"
		if ok {
			state = d.Status.String()
		}
		return false, fmt.Sprintf("OUT_FOR_DELIVERY needs an assigned driver, delivery is %s", state)
	}
	return true, ""
}

func completionRequiresSettlement(o *order.Order) (bool, string) {
	if o.Status() != status.OrderCompleted {
		return true, ""
	}

	fulfilled := true
	if m := o.Type().FulfillmentMachine(); m != status.UnknownMachine {
		fulfilled = status.IsTerminalSuccess(m, o.FulfillmentState())
	}
	if !fulfilled {
		return false, fmt.Sprintf("COMPLETED needs a finished hand-over, %s is %v",
			o.Type().FulfillmentMachine(), o.FulfillmentState())
	}

	p, ok := o.Payment()
	if !ok {
		return false, "COMPLETED needs a payment record"
	}
	paid := p.Status == status.PaymentCompleted ||
		(p.Method.IsCash() && !p.Status.IsTerminal())
	if !paid {
		return false, fmt.Sprintf("COMPLETED needs a captured payment, payment is %s", p.Status)
	}
	return true, ""
}

func deliveryProgressRequiresReadyOrder(o *order.Order) (bool, string) {
	d, ok := o.Delivery()
	if !ok || !d.Status.HasLeftKitchen() {
		return true, ""
	}
	switch o.Status() {
	case status.OrderReadyForDelivery, status.OrderOutForDelivery, status.OrderCompleted:
		return true, ""
	default:
	}
	return false, fmt.Sprintf("delivery cannot be %s while the order is %s", d.Status, o.Status())
}

func pickupCompletionRequiresReadyOrder(o *order.Order) (bool, string) {
	p, ok := o.Pickup()
	if !ok || p.Status != status.PickupCompleted {
		return true, ""
	}
	if o.Status() == status.OrderReadyForPickup || o.Status() == status.OrderCompleted {
		return true, ""
	}
	return false, fmt.Sprintf("pickup cannot be COMPLETED while the order is %s", o.Status())
}

func cancellationRequiresSettledRecords(o *order.Order) (bool, string) {
	if o.Status() != status.OrderCancelled {
		return true, ""
	}
	if p, ok := o.Payment(); ok && !p.Status.IsSettled() {
		return false, fmt.Sprintf("a CANCELLED order cannot keep a %s payment", p.Status)
	}
	if s := o.FulfillmentState(); s != nil && !s.IsTerminal() {
		return false, fmt.Sprintf("a CANCELLED order cannot keep a %s %s", s, s.Machine())
	}
	return true, ""
}
