package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// PaymentMethod is how the customer pays for the order.
type PaymentMethod int

const (
	MethodUnknown PaymentMethod = iota
	MethodCreditCard
	MethodDebitCard
	MethodPayPal
	MethodStripe
	MethodABAPayWay
	MethodCashOnDelivery
	MethodBankTransfer
)

func getPaymentMethodStrings() map[PaymentMethod]string {
	return map[PaymentMethod]string{
		MethodUnknown:        "UNKNOWN",
		MethodCreditCard:     "CREDIT_CARD",
		MethodDebitCard:      "DEBIT_CARD",
		MethodPayPal:         "PAYPAL",
		MethodStripe:         "STRIPE",
		MethodABAPayWay:      "ABA_PAYWAY",
		MethodCashOnDelivery: "CASH_ON_DELIVERY",
		MethodBankTransfer:   "BANK_TRANSFER",
	}
}

func (m PaymentMethod) String() string {
	if str, ok := getPaymentMethodStrings()[m]; ok {
		return str
	}
	return "UNKNOWN"
}

func (m PaymentMethod) Validate() error {
	if m <= MethodUnknown || m > MethodBankTransfer {
		return errs.NewValueIsInvalidErrorWithCause("payment method is invalid", fmt.Errorf("%d is not a valid payment method", m))
	}
	return nil
}

// IsCash reports whether money changes hands at fulfillment time.
func (m PaymentMethod) IsCash() bool {
	return m == MethodCashOnDelivery
}

// ParsePaymentMethod maps a wire name such as "CASH_ON_DELIVERY" to its PaymentMethod.
func ParsePaymentMethod(name string) (PaymentMethod, error) {
	for m, str := range getPaymentMethodStrings() {
		if str == name && m.Validate() == nil {
			return m, nil
		}
	}
	return MethodUnknown, errs.NewValueIsInvalidErrorWithCause(
		"payment method is invalid", fmt.Errorf("%q is not a valid payment method", name),
	)
}
