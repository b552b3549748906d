// Package orderrepo maps order aggregates onto relational tables: one row in
// orders plus its order_items, and at most one row each in payments,
// deliveries and pickups keyed by order id.
package orderrepo

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/status"

	"github.com/shopspring/decimal"
)

// OrderDTO is the orders row. Version backs the optimistic commit.
type OrderDTO struct {
	ID                  int64           `gorm:"primaryKey;autoIncrement:false"`
	Type                int             `gorm:"not null"`
	Status              int             `gorm:"not null;index"`
	CustomerID          int64           `gorm:"not null;index"`
	CustomerName        string          `gorm:"not null"`
	CustomerEmail       string
	CustomerPhone       string
	CustomerAddress     string
	TotalPrice          decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	DeliveryAddress     string
	PhoneNumber         string
	SpecialInstructions string
	EstimatedReadyAt    *time.Time
	Version             int64     `gorm:"not null"`
	CreatedAt           time.Time `gorm:"autoCreateTime:false;index"`
	UpdatedAt           time.Time `gorm:"autoUpdateTime:false"`

	Items    []OrderItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Payment  *PaymentDTO    `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Delivery *DeliveryDTO   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Pickup   *PickupDTO     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

type OrderItemDTO struct {
	ID           uint            `gorm:"primaryKey"`
	OrderID      int64           `gorm:"not null;index"`
	Position     int             `gorm:"not null"`
	ProductID    int64           `gorm:"not null"`
	ProductName  string          `gorm:"not null"`
	Quantity     int             `gorm:"not null"`
	UnitPrice    decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Instructions string
}

func (OrderItemDTO) TableName() string {
	return "order_items"
}

type PaymentDTO struct {
	OrderID       int64           `gorm:"primaryKey;autoIncrement:false"`
	Status        int             `gorm:"not null"`
	Method        int             `gorm:"not null"`
	Amount        decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	TransactionID string          `gorm:"index"`
	PaidAt        *time.Time
	CreatedAt     time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime:false"`
}

func (PaymentDTO) TableName() string {
	return "payments"
}

type DeliveryDTO struct {
	OrderID              int64 `gorm:"primaryKey;autoIncrement:false"`
	Status               int   `gorm:"not null;index"`
	DriverName           string
	DriverPhone          string
	VehicleInfo          string
	Latitude             *float64
	Longitude            *float64
	CurrentLocation      string
	PickupTime           *time.Time
	EstimatedArrivalTime *time.Time
	ActualDeliveryTime   *time.Time
	Notes                string
	CreatedAt            time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt            time.Time `gorm:"autoUpdateTime:false"`
}

func (DeliveryDTO) TableName() string {
	return "deliveries"
}

type PickupDTO struct {
	OrderID      int64  `gorm:"primaryKey;autoIncrement:false"`
	Status       int    `gorm:"not null;index"`
	Code         string `gorm:"size:16;uniqueIndex"`
	ReadyAt      *time.Time
	WindowStart  *time.Time
	WindowEnd    *time.Time
	PickedUpAt   *time.Time
	Instructions string
	ContactName  string
	ContactPhone string
	CreatedAt    time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime:false"`
}

func (PickupDTO) TableName() string {
	return "pickups"
}

func fromDomain(o *order.Order) OrderDTO {
	s := o.Snapshot()
	dto := OrderDTO{
		ID:                  s.ID,
		Type:                int(s.Type),
		Status:              int(s.Status),
		CustomerID:          s.Customer.ID,
		CustomerName:        s.Customer.Name,
		CustomerEmail:       s.Customer.Email,
		CustomerPhone:       s.Customer.Phone,
		CustomerAddress:     s.Customer.Address,
		TotalPrice:          s.Total.Decimal(),
		DeliveryAddress:     s.DeliveryAddress,
		PhoneNumber:         s.PhoneNumber,
		SpecialInstructions: s.SpecialInstructions,
		EstimatedReadyAt:    s.EstimatedReadyAt,
		Version:             s.Version,
		CreatedAt:           s.CreatedAt,
		UpdatedAt:           s.UpdatedAt,
		Items:               make([]OrderItemDTO, len(s.Items)),
	}
	for i, item := range s.Items {
		dto.Items[i] = OrderItemDTO{
			OrderID:      s.ID,
			Position:     i,
			ProductID:    item.ProductID(),
			ProductName:  item.ProductName(),
			Quantity:     item.Quantity(),
			UnitPrice:    item.UnitPrice().Decimal(),
			Instructions: item.Instructions(),
		}
	}
	if p := s.Payment; p != nil {
		dto.Payment = &PaymentDTO{
			OrderID:       s.ID,
			Status:        int(p.Status),
			Method:        int(p.Method),
			Amount:        p.Amount.Decimal(),
			TransactionID: p.TransactionID,
			PaidAt:        p.PaidAt,
			CreatedAt:     p.CreatedAt,
			UpdatedAt:     p.UpdatedAt,
		}
	}
	if d := s.Delivery; d != nil {
		dto.Delivery = &DeliveryDTO{
			OrderID:              s.ID,
			Status:               int(d.Status),
			DriverName:           d.DriverName,
			DriverPhone:          d.DriverPhone,
			VehicleInfo:          d.VehicleInfo,
			CurrentLocation:      d.CurrentLocation,
			PickupTime:           d.PickupTime,
			EstimatedArrivalTime: d.EstimatedArrivalTime,
			ActualDeliveryTime:   d.ActualDeliveryTime,
			Notes:                d.Notes,
			CreatedAt:            d.CreatedAt,
			UpdatedAt:            d.UpdatedAt,
		}
		if c := d.Coordinates; c != nil {
			lat, lng := c.Latitude(), c.Longitude()
			dto.Delivery.Latitude, dto.Delivery.Longitude = &lat, &lng
		}
	}
	if p := s.Pickup; p != nil {
		dto.Pickup = &PickupDTO{
			OrderID:      s.ID,
			Status:       int(p.Status),
			Code:         p.Code,
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
	return dto
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	total, err := kernel.NewMoney(dto.TotalPrice)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, len(dto.Items))
	for i, it := range dto.Items {
		price, priceErr := kernel.NewMoney(it.UnitPrice)
		if priceErr != nil {
			return nil, priceErr
		}
		items[i], err = order.NewItem(it.ProductID, it.ProductName, it.Quantity, price, it.Instructions)
		if err != nil {
			return nil, fmt.Errorf("order item %d: %w", it.ID, err)
		}
	}

	snapshot := order.Snapshot{
		ID:     dto.ID,
		Type:   order.Type(dto.Type),
		Status: status.OrderStatus(dto.Status),
		Customer: order.Customer{
			ID:      dto.CustomerID,
			Name:    dto.CustomerName,
			Email:   dto.CustomerEmail,
			Phone:   dto.CustomerPhone,
			Address: dto.CustomerAddress,
		},
		Items:               items,
		Total:               total,
		DeliveryAddress:     dto.DeliveryAddress,
		PhoneNumber:         dto.PhoneNumber,
		SpecialInstructions: dto.SpecialInstructions,
		EstimatedReadyAt:    dto.EstimatedReadyAt,
		Version:             dto.Version,
		CreatedAt:           dto.CreatedAt,
		UpdatedAt:           dto.UpdatedAt,
	}

	var errList []error
	if p := dto.Payment; p != nil {
		amount, amountErr := kernel.NewMoney(p.Amount)
		errList = append(errList, amountErr)
		snapshot.Payment = &order.Payment{
			Status:        status.PaymentStatus(p.Status),
			Method:        order.PaymentMethod(p.Method),
			Amount:        amount,
			TransactionID: p.TransactionID,
			PaidAt:        p.PaidAt,
			CreatedAt:     p.CreatedAt,
			UpdatedAt:     p.UpdatedAt,
		}
	}
	if d := dto.Delivery; d != nil {
		snapshot.Delivery = &order.Delivery{
			Status:               status.DeliveryStatus(d.Status),
			DriverName:           d.DriverName,
			DriverPhone:          d.DriverPhone,
			VehicleInfo:          d.VehicleInfo,
			CurrentLocation:      d.CurrentLocation,
			PickupTime:           d.PickupTime,
			EstimatedArrivalTime: d.EstimatedArrivalTime,
			ActualDeliveryTime:   d.ActualDeliveryTime,
			Notes:                d.Notes,
			CreatedAt:            d.CreatedAt,
			UpdatedAt:            d.UpdatedAt,
		}
		if d.Latitude != nil && d.Longitude != nil {
			c, coordErr := kernel.NewCoordinates(*d.Latitude, *d.Longitude)
			errList = append(errList, coordErr)
			if coordErr == nil {
				snapshot.Delivery.Coordinates = &c
			}
		}
	}
	if p := dto.Pickup; p != nil {
		snapshot.Pickup = &order.Pickup{
			Status:       status.PickupStatus(p.Status),
			Code:         p.Code,
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
	if err = errors.Join(errList...); err != nil {
		return nil, err
	}

	return order.RestoreOrder(snapshot)
}
