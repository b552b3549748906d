package http

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/generated/servers"
	"fulfillment/internal/pkg/errs"
)

func toCustomer(c servers.NewCustomer) order.Customer {
	return order.Customer{
		ID:      c.Id,
		Name:    c.Name,
		Email:   deref(c.Email),
		Phone:   deref(c.Phone),
		Address: deref(c.Address),
	}
}

func toItems(in []servers.NewOrderItem) ([]order.Item, error) {
	items := make([]order.Item, 0, len(in))
	var errList []error
	for _, it := range in {
		price, err := kernel.MoneyFromString(it.UnitPrice)
		if err != nil {
			errList = append(errList, err)
			continue
		}
		item, err := order.NewItem(it.ProductId, it.ProductName, it.Quantity, price, deref(it.SpecialInstructions))
		if err != nil {
			errList = append(errList, err)
			continue
		}
		items = append(items, item)
	}
	if err := errors.Join(errList...); err != nil {
		return nil, err
	}
	return items, nil
}

func toActor(a servers.Actor) order.Actor {
	return order.Actor{Source: a.Source, ID: deref(a.Id)}
}

func toTransitionDetails(in *servers.TransitionDetails) (order.TransitionDetails, error) {
	if in == nil {
		return order.TransitionDetails{}, nil
	}
	details := order.TransitionDetails{
		DriverName:       deref(in.DriverName),
		DriverPhone:      deref(in.DriverPhone),
		VehicleInfo:      deref(in.VehicleInfo),
		EstimatedArrival: in.EstimatedArrival,
		CurrentLocation:  deref(in.CurrentLocation),
		TransactionID:    deref(in.TransactionId),
		Notes:            deref(in.Notes),
	}

	switch {
	case in.Latitude == nil && in.Longitude == nil:
	case in.Latitude == nil || in.Longitude == nil:
		return order.TransitionDetails{}, errs.NewValueIsRequiredError("details.latitude and details.longitude")
	default:
		coordinates, err := kernel.NewCoordinates(*in.Latitude, *in.Longitude)
		if err != nil {
			return order.TransitionDetails{}, err
		}
		details.Coordinates = &coordinates
	}
	return details, nil
}

func deref[T any](v *T) T {
	var zero T
	if v == nil {
		return zero
	}
	return *v
}
