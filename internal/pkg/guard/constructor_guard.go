package guard

import "errors"

// ErrDefaultConstructorGuard is returned by ConstructorGuard.Validate when the
// caller does not supply its own error.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks a value as built through its designated constructor.
// The zero value reports the value as not constructed, so aggregates, commands
// and queries embed a guard and call Validate before doing any work:
//
//	var ErrPaymentNotConstructed = errors.New("Payment must be created via NewPayment")
//
//	type Payment struct {
//	    method string
//	    guard  guard.ConstructorGuard
//	}
//
//	func (p Payment) Validate() error {
//	    return p.guard.Validate(ErrPaymentNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard that reports its owner as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is
// nil) if the owner was not created via NewConstructorGuard.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
