package order

import (
	"errors"
	"fmt"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

const (
	ItemQuantityMin = 1
	ItemQuantityMax = 100
)

var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// Item is one order line. The line total is always quantity times unit price.
type Item struct {
	productID    int64
	productName  string
	quantity     int
	unitPrice    kernel.Money
	instructions string

	isConstructed bool
}

func NewItem(productID int64, productName string, quantity int, unitPrice kernel.Money, instructions string) (Item, error) {
	var errList []error
	if productID <= 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
			"productId", fmt.Errorf("%d is not greater than 0", productID)))
	}
	if strings.TrimSpace(productName) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("productName"))
	}
	if quantity < ItemQuantityMin || quantity > ItemQuantityMax {
		errList = append(errList, errs.NewValueIsOutOfRangeError("quantity", quantity, ItemQuantityMin, ItemQuantityMax))
	}
	if err := unitPrice.Validate(); err != nil {
		errList = append(errList, err)
	}
	if err := errors.Join(errList...); err != nil {
		return Item{}, err
	}

	return Item{
		productID:     productID,
		productName:   productName,
		quantity:      quantity,
		unitPrice:     unitPrice,
		instructions:  instructions,
		isConstructed: true,
	}, nil
}

func (i Item) Validate() error {
	if !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

func (i Item) ProductID() int64 {
	return i.productID
}

func (i Item) ProductName() string {
	return i.productName
}

func (i Item) Quantity() int {
	return i.quantity
}

func (i Item) UnitPrice() kernel.Money {
	return i.unitPrice
}

func (i Item) Instructions() string {
	return i.instructions
}

// LineTotal returns quantity * unit price.
func (i Item) LineTotal() kernel.Money {
	total, err := i.unitPrice.Multiply(i.quantity)
	if err != nil {
		return kernel.ZeroMoney()
	}
	return total
}
