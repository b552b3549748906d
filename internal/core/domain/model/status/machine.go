package status

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Machine names one of the four lifecycles tracked for an order.
type Machine int

const (
	UnknownMachine Machine = iota
	OrderMachine
	PaymentMachine
	DeliveryMachine
	PickupMachine
)

func getMachineStrings() map[Machine]string {
	return map[Machine]string{
		UnknownMachine:  "UNKNOWN",
		OrderMachine:    "ORDER",
		PaymentMachine:  "PAYMENT",
		DeliveryMachine: "DELIVERY",
		PickupMachine:   "PICKUP",
	}
}

// Machines lists every valid machine in a stable order.
func Machines() []Machine {
	return []Machine{OrderMachine, PaymentMachine, DeliveryMachine, PickupMachine}
}

func (m Machine) String() string {
	if str, ok := getMachineStrings()[m]; ok {
		return str
	}
	return "UNKNOWN"
}

func (m Machine) Validate() error {
	if m < OrderMachine || m > PickupMachine {
		return errs.NewValueIsInvalidErrorWithCause("machine", fmt.Errorf("%d is not a valid machine", m))
	}
	return nil
}

// ParseMachine maps a wire name such as "PAYMENT" to its Machine.
func ParseMachine(name string) (Machine, error) {
	for _, m := range Machines() {
		if m.String() == name {
			return m, nil
		}
	}
	return UnknownMachine, errs.NewValueIsInvalidErrorWithCause("machine", fmt.Errorf("%q is not a valid machine", name))
}
