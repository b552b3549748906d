package order

import (
	"fmt"

	"fulfillment/internal/core/domain/model/status"
	"fulfillment/internal/pkg/errs"
)

// Type decides which fulfillment record an order carries.
type Type int

const (
	TypeUnknown Type = iota
	TypeDelivery
	TypePickup
	TypeDineIn
)

func getTypeStrings() map[Type]string {
	return map[Type]string{
		TypeUnknown:  "UNKNOWN",
		TypeDelivery: "DELIVERY",
		TypePickup:   "PICKUP",
		TypeDineIn:   "DINE_IN",
	}
}

func (t Type) String() string {
	if str, ok := getTypeStrings()[t]; ok {
		return str
	}
	return "UNKNOWN"
}

func (t Type) Validate() error {
	if t <= TypeUnknown || t > TypeDineIn {
		return errs.NewValueIsInvalidErrorWithCause("order type is invalid", fmt.Errorf("%d is not a valid order type", t))
	}
	return nil
}

// FulfillmentMachine returns the sub-machine tracking hand-over for this type,
// or status.UnknownMachine for DINE_IN.
func (t Type) FulfillmentMachine() status.Machine {
	switch t {
	case TypeDelivery:
		return status.DeliveryMachine
	case TypePickup:
		return status.PickupMachine
	case TypeUnknown, TypeDineIn:
	}
	return status.UnknownMachine
}

// ParseType maps a wire name such as "DINE_IN" to its Type.
func ParseType(name string) (Type, error) {
	for t, str := range getTypeStrings() {
		if str == name && t.Validate() == nil {
			return t, nil
		}
	}
	return TypeUnknown, errs.NewValueIsInvalidErrorWithCause("order type is invalid", fmt.Errorf("%q is not a valid order type", name))
}
