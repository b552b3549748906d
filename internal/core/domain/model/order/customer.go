package order

import (
	"errors"
	"fmt"
	"strings"

	"fulfillment/internal/pkg/errs"
)

// Customer is the snapshot of the buyer taken at checkout. Later changes to
// the customer profile do not affect placed orders.
type Customer struct {
	ID      int64
	Name    string
	Email   string
	Phone   string
	Address string
}

func (c Customer) Validate() error {
	var errList []error
	if c.ID <= 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
			"customerId", fmt.Errorf("%d is not greater than 0", c.ID)))
	}
	if strings.TrimSpace(c.Name) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("customerName"))
	}
	return errors.Join(errList...)
}
