package status

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// State is a value of one of the four status enumerations.
type State interface {
	fmt.Stringer
	Machine() Machine
	Validate() error
	IsTerminal() bool
	IsTerminalSuccess() bool
}

// IsLegal reports whether from -> to is an edge of machine m. It is a pure
// lookup: states of another machine, unknown states and self loops are never legal.
func IsLegal(m Machine, from, to State) bool {
	if from == nil || to == nil || from.Machine() != m || to.Machine() != m {
		return false
	}
	switch m {
	case OrderMachine:
		return from.(OrderStatus).CanTransitionTo(to.(OrderStatus))
	case PaymentMachine:
		return from.(PaymentStatus).CanTransitionTo(to.(PaymentStatus))
	case DeliveryMachine:
		return from.(DeliveryStatus).CanTransitionTo(to.(DeliveryStatus))
	case PickupMachine:
		return from.(PickupStatus).CanTransitionTo(to.(PickupStatus))
	case UnknownMachine:
		return false
	}
	return false
}

// IsTerminal reports whether s has no outgoing edges in machine m.
func IsTerminal(m Machine, s State) bool {
	return s != nil && s.Machine() == m && s.IsTerminal()
}

// IsTerminalSuccess reports whether s is the successful end state of machine m.
func IsTerminalSuccess(m Machine, s State) bool {
	return s != nil && s.Machine() == m && s.IsTerminalSuccess()
}

// Parse maps a wire name to the state of machine m.
func Parse(m Machine, name string) (State, error) {
	var (
		s  State
		ok bool
	)
	switch m {
	case OrderMachine:
		s, ok = parseName(name, getOrderStatusStrings())
	case PaymentMachine:
		s, ok = parseName(name, getPaymentStatusStrings())
	case DeliveryMachine:
		s, ok = parseName(name, getDeliveryStatusStrings())
	case PickupMachine:
		s, ok = parseName(name, getPickupStatusStrings())
	case UnknownMachine:
	}
	if !ok {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%q is not a valid %s status", name, m),
		)
	}
	return s, nil
}

func parseName[S interface {
	comparable
	State
}](name string, names map[S]string) (S, bool) {
	var zero S
	for s, str := range names {
		if str == name && s.Validate() == nil {
			return s, true
		}
	}
	return zero, false
}
