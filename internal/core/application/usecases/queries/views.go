// Package queries contains read-only operations over committed orders.
// Handlers map the aggregate onto the response views used by the API:
// field selection and enum names only, no business rules.
package queries

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

type ProductView struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type OrderItemView struct {
	Product             ProductView `json:"product"`
	Quantity            int         `json:"quantity"`
	UnitPrice           float64     `json:"unitPrice"`
	TotalPrice          float64     `json:"totalPrice"`
	SpecialInstructions string      `json:"specialInstructions,omitempty"`
}

type CustomerView struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

type PaymentView struct {
	OrderID       int64      `json:"orderId"`
	Status        string     `json:"status"`
	Method        string     `json:"paymentMethod"`
	Amount        float64    `json:"amount"`
	TransactionID string     `json:"transactionId,omitempty"`
	PaidAt        *time.Time `json:"paidAt,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

type DeliveryView struct {
	OrderID              int64      `json:"orderId"`
	Status               string     `json:"status"`
	DriverName           string     `json:"driverName,omitempty"`
	DriverPhone          string     `json:"driverPhone,omitempty"`
	VehicleInfo          string     `json:"vehicleInfo,omitempty"`
	PickupTime           *time.Time `json:"pickupTime,omitempty"`
	EstimatedArrivalTime *time.Time `json:"estimatedArrivalTime,omitempty"`
	ActualDeliveryTime   *time.Time `json:"actualDeliveryTime,omitempty"`
	DeliveryNotes        string     `json:"deliveryNotes,omitempty"`
	CurrentLocation      string     `json:"currentLocation,omitempty"`
	Latitude             *float64   `json:"latitude,omitempty"`
	Longitude            *float64   `json:"longitude,omitempty"`
	CreatedAt            time.Time  `json:"createdAt"`
	UpdatedAt            time.Time  `json:"updatedAt"`
}

type PickupView struct {
	OrderID      int64      `json:"orderId"`
	PickupCode   string     `json:"pickupCode"`
	Status       string     `json:"status"`
	ReadyAt      *time.Time `json:"readyAt,omitempty"`
	WindowStart  *time.Time `json:"windowStart,omitempty"`
	WindowEnd    *time.Time `json:"windowEnd,omitempty"`
	PickedUpAt   *time.Time `json:"pickedUpAt,omitempty"`
	Instructions string     `json:"instructions,omitempty"`
	ContactName  string     `json:"contactName,omitempty"`
	ContactPhone string     `json:"contactPhone,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// OrderView is the flat order response. Payment and fulfillment fields are
// copied onto it with payment*, delivery* and pickup* prefixes and are
// empty when the record does not exist.
type OrderView struct {
	ID                    int64           `json:"id"`
	CustomerID            int64           `json:"customerId"`
	CustomerName          string          `json:"customerName"`
	Status                string          `json:"status"`
	TotalPrice            float64         `json:"totalPrice"`
	OrderType             string          `json:"orderType"`
	DeliveryAddress       string          `json:"deliveryAddress,omitempty"`
	PhoneNumber           string          `json:"phoneNumber,omitempty"`
	SpecialInstructions   string          `json:"specialInstructions,omitempty"`
	Version               int64           `json:"version"`
	CreatedAt             time.Time       `json:"createdAt"`
	UpdatedAt             time.Time       `json:"updatedAt"`
	EstimatedDeliveryTime *time.Time      `json:"estimatedDeliveryTime,omitempty"`
	OrderItems            []OrderItemView `json:"orderItems"`

	PaymentStatus        string     `json:"paymentStatus,omitempty"`
	PaymentMethod        string     `json:"paymentMethod,omitempty"`
	PaymentPaidAt        *time.Time `json:"paymentPaidAt,omitempty"`
	PaymentTransactionID string     `json:"paymentTransactionId,omitempty"`

	DeliveryStatus               string     `json:"deliveryStatus,omitempty"`
	DeliveryDriverName           string     `json:"deliveryDriverName,omitempty"`
	DeliveryDriverPhone          string     `json:"deliveryDriverPhone,omitempty"`
	DeliveryEstimatedArrivalTime *time.Time `json:"deliveryEstimatedArrivalTime,omitempty"`
	DeliveryActualDeliveryTime   *time.Time `json:"deliveryActualDeliveryTime,omitempty"`
	DeliveryLatitude             *float64   `json:"deliveryLatitude,omitempty"`
	DeliveryLongitude            *float64   `json:"deliveryLongitude,omitempty"`

	PickupStatus       string     `json:"pickupStatus,omitempty"`
	PickupCode         string     `json:"pickupCode,omitempty"`
	PickupReadyAt      *time.Time `json:"pickupReadyAt,omitempty"`
	PickupWindowStart  *time.Time `json:"pickupWindowStart,omitempty"`
	PickupWindowEnd    *time.Time `json:"pickupWindowEnd,omitempty"`
	PickupPickedUpAt   *time.Time `json:"pickupPickedUpAt,omitempty"`
	PickupInstructions string     `json:"pickupInstructions,omitempty"`
}

// NewOrderView projects an order onto the flat response.
func NewOrderView(o *order.Order) OrderView {
	customer := o.Customer()
	view := OrderView{
		ID:                  o.ID(),
		CustomerID:          customer.ID,
		CustomerName:        customer.Name,
		Status:              o.Status().String(),
		TotalPrice:          amount(o.Total()),
		OrderType:           o.Type().String(),
		DeliveryAddress:     o.DeliveryAddress(),
		PhoneNumber:         o.PhoneNumber(),
		SpecialInstructions: o.SpecialInstructions(),
		Version:             o.Version(),
		CreatedAt:           o.CreatedAt(),
		UpdatedAt:           o.UpdatedAt(),
		OrderItems:          newOrderItemViews(o.Items()),
	}
	view.EstimatedDeliveryTime = o.EstimatedReadyAt()

	if p, ok := o.Payment(); ok {
		view.PaymentStatus = p.Status.String()
		view.PaymentMethod = p.Method.String()
		view.PaymentPaidAt = p.PaidAt
		view.PaymentTransactionID = p.TransactionID
	}
	if d, ok := o.Delivery(); ok {
		view.DeliveryStatus = d.Status.String()
		view.DeliveryDriverName = d.DriverName
		view.DeliveryDriverPhone = d.DriverPhone
		view.DeliveryEstimatedArrivalTime = d.EstimatedArrivalTime
		view.DeliveryActualDeliveryTime = d.ActualDeliveryTime
		view.DeliveryLatitude, view.DeliveryLongitude = latLng(d.Coordinates)
		if d.EstimatedArrivalTime != nil {
			view.EstimatedDeliveryTime = d.EstimatedArrivalTime
		}
	}
	if p, ok := o.Pickup(); ok {
		view.PickupStatus = p.Status.String()
		view.PickupCode = p.Code
		view.PickupReadyAt = p.ReadyAt
		view.PickupWindowStart = p.WindowStart
		view.PickupWindowEnd = p.WindowEnd
		view.PickupPickedUpAt = p.PickedUpAt
		view.PickupInstructions = p.Instructions
	}
	return view
}

func NewCustomerView(c order.Customer) CustomerView {
	return CustomerView{ID: c.ID, Name: c.Name, Email: c.Email, Phone: c.Phone, Address: c.Address}
}

func NewPaymentView(orderID int64, p order.Payment) PaymentView {
	return PaymentView{
		OrderID:       orderID,
		Status:        p.Status.String(),
		Method:        p.Method.String(),
		Amount:        amount(p.Amount),
		TransactionID: p.TransactionID,
		PaidAt:        p.PaidAt,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func NewDeliveryView(orderID int64, d order.Delivery) DeliveryView {
	lat, lng := latLng(d.Coordinates)
	return DeliveryView{
		OrderID:              orderID,
		Status:               d.Status.String(),
		DriverName:           d.DriverName,
		DriverPhone:          d.DriverPhone,
		VehicleInfo:          d.VehicleInfo,
		PickupTime:           d.PickupTime,
		EstimatedArrivalTime: d.EstimatedArrivalTime,
		ActualDeliveryTime:   d.ActualDeliveryTime,
		DeliveryNotes:        d.Notes,
		CurrentLocation:      d.CurrentLocation,
		Latitude:             lat,
		Longitude:            lng,
		CreatedAt:            d.CreatedAt,
		UpdatedAt:            d.UpdatedAt,
	}
}

func NewPickupView(orderID int64, p order.Pickup) PickupView {
	return PickupView{
		OrderID:      orderID,
		PickupCode:   p.Code,
		Status:       p.Status.String(),
		ReadyAt:      p.ReadyAt,
		WindowStart:  p.WindowStart,
		WindowEnd:    p.WindowEnd,
		PickedUpAt:   p.PickedUpAt,
		Instructions: p.Instructions,
		ContactName:  p.ContactName,
		ContactPhone: p.ContactPhone,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func newOrderItemViews(items []order.Item) []OrderItemView {
	views := make([]OrderItemView, len(items))
	for i, item := range items {
		views[i] = OrderItemView{
			Product: ProductView{
				ID:    item.ProductID(),
				Name:  item.ProductName(),
				Price: amount(item.UnitPrice()),
			},
			Quantity:            item.Quantity(),
			UnitPrice:           amount(item.UnitPrice()),
			TotalPrice:          amount(item.LineTotal()),
			SpecialInstructions: item.Instructions(),
		}
	}
	return views
}

func amount(m kernel.Money) float64 {
	return m.Decimal().InexactFloat64()
}

func latLng(c *kernel.Coordinates) (*float64, *float64) {
	if c == nil {
		return nil, nil
	}
	lat, lng := c.Latitude(), c.Longitude()
	return &lat, &lng
}
