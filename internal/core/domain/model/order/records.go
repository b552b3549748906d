package order

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/status"
)

// Payment is the payment record of an order. The aggregate hands out copies,
// so changing a returned record has no effect on the order.
type Payment struct {
	Status        status.PaymentStatus
	Method        PaymentMethod
	Amount        kernel.Money
	TransactionID string
	PaidAt        *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Delivery is the courier hand-off record of a DELIVERY order.
type Delivery struct {
	Status               status.DeliveryStatus
	DriverName           string
	DriverPhone          string
	VehicleInfo          string
	Coordinates          *kernel.Coordinates
	CurrentLocation      string
	PickupTime           *time.Time
	EstimatedArrivalTime *time.Time
	ActualDeliveryTime   *time.Time
	Notes                string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// Pickup is the counter hand-off record of a PICKUP order.
type Pickup struct {
	Status       status.PickupStatus
	Code         string
	ReadyAt      *time.Time
	WindowStart  *time.Time
	WindowEnd    *time.Time
	PickedUpAt   *time.Time
	Instructions string
	ContactName  string
	ContactPhone string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (p *Payment) clone() *Payment {
	if p == nil {
		return nil
	}
	c := *p
	c.PaidAt = cloneTime(p.PaidAt)
	return &c
}

func (d *Delivery) clone() *Delivery {
	if d == nil {
		return nil
	}
	c := *d
	if d.Coordinates != nil {
		coordinates := *d.Coordinates
		c.Coordinates = &coordinates
	}
	c.PickupTime = cloneTime(d.PickupTime)
	c.EstimatedArrivalTime = cloneTime(d.EstimatedArrivalTime)
	c.ActualDeliveryTime = cloneTime(d.ActualDeliveryTime)
	return &c
}

func (p *Pickup) clone() *Pickup {
	if p == nil {
		return nil
	}
	c := *p
	c.ReadyAt = cloneTime(p.ReadyAt)
	c.WindowStart = cloneTime(p.WindowStart)
	c.WindowEnd = cloneTime(p.WindowEnd)
	c.PickedUpAt = cloneTime(p.PickedUpAt)
	return &c
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

func timePtr(t time.Time) *time.Time {
	return &t
}
