// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The status history is flattened into one nullable timestamp column per stage,
// which keeps the whole aggregate in a single row and makes the read-side
// queries plain column scans.
type OrderDTO struct {
	ID                  uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CustomerID          uuid.UUID  `gorm:"type:uuid;index"`
	CustomerName        string     `gorm:"type:varchar(255)"`
	CustomerPhone       string     `gorm:"type:varchar(32)"`
	PickupAddress       string     `gorm:"type:varchar(512)"`
	DeliveryAddress     string     `gorm:"type:varchar(512)"`
	OrderType           string     `gorm:"type:varchar(16)"`
	SpecialInstructions string     `gorm:"type:text"`
	ValueCents          int64      `gorm:"type:bigint"`
	DeliveryFeeCents    int64      `gorm:"type:bigint"`
	Status              int        `gorm:"index"`
	DriverID            *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt           time.Time  `gorm:"index"`
	EstimatedDeliveryAt time.Time
	ConfirmedAt         *time.Time
	PreparingAt         *time.Time
	ReadyAt             *time.Time
	PickedUpAt          *time.Time
	InTransitAt         *time.Time
	DeliveredAt         *time.Time
	CancelledAt         *time.Time
	CancelledFrom       *int
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// statusColumns maps each post-placement status to the DTO field holding its
// transition time.
func statusColumns(dto *OrderDTO) map[order.Status]**time.Time {
	return map[order.Status]**time.Time{
		order.Confirmed: &dto.ConfirmedAt,
		order.Preparing: &dto.PreparingAt,
		order.Ready:     &dto.ReadyAt,
		order.PickedUp:  &dto.PickedUpAt,
		order.InTransit: &dto.InTransitAt,
		order.Delivered: &dto.DeliveredAt,
		order.Cancelled: &dto.CancelledAt,
	}
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	var driverID *uuid.UUID
	if id := aggregate.Driver(); id != nil {
		raw := id.Bytes()
		driverID = &raw
	}

	dto := OrderDTO{
		ID:                  aggregate.ID().Bytes(),
		CustomerID:          aggregate.Customer().ID().Bytes(),
		CustomerName:        aggregate.Customer().Name(),
		CustomerPhone:       aggregate.Customer().Phone(),
		PickupAddress:       aggregate.Route().PickupAddress(),
		DeliveryAddress:     aggregate.Route().DeliveryAddress(),
		OrderType:           aggregate.OrderType().String(),
		SpecialInstructions: aggregate.SpecialInstructions(),
		ValueCents:          aggregate.Pricing().Value().Cents(),
		DeliveryFeeCents:    aggregate.Pricing().DeliveryFee().Cents(),
		Status:              int(aggregate.Status()),
		DriverID:            driverID,
		CreatedAt:           aggregate.CreatedAt(),
		EstimatedDeliveryAt: aggregate.EstimatedDeliveryAt(),
	}

	for status, column := range statusColumns(&dto) {
		if at, ok := aggregate.ReachedAt(status); ok {
			reached := at
			*column = &reached
		}
	}

	if aggregate.Status() == order.Cancelled {
		from := int(aggregate.CancelledFrom())
		dto.CancelledFrom = &from
	}

	return dto
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including the status history using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	customer, err := order.NewCustomer(customerID, dto.CustomerName, dto.CustomerPhone)
	if err != nil {
		return nil, err
	}

	route, err := order.NewRoute(dto.PickupAddress, dto.DeliveryAddress)
	if err != nil {
		return nil, err
	}

	orderType, err := order.ParseOrderType(dto.OrderType)
	if err != nil {
		return nil, err
	}

	value, err := kernel.NewMoneyFromCents(dto.ValueCents)
	if err != nil {
		return nil, err
	}

	fee, err := kernel.NewMoneyFromCents(dto.DeliveryFeeCents)
	if err != nil {
		return nil, err
	}

	pricing, err := order.NewPricing(value, fee)
	if err != nil {
		return nil, err
	}

	var driverID *kernel.UUID
	if dto.DriverID != nil {
		dID, driverErr := kernel.UUIDFromBytes((*dto.DriverID)[:])
		if driverErr != nil {
			return nil, driverErr
		}

		driverID = &dID
	}

	reachedAt := map[order.Status]time.Time{order.Placed: dto.CreatedAt}
	for status, column := range statusColumns(&dto) {
		if *column != nil {
			reachedAt[status] = **column
		}
	}

	cancelledFrom := order.Unknown
	if dto.CancelledFrom != nil {
		cancelledFrom = order.Status(*dto.CancelledFrom)
	}

	return order.RestoreOrder(
		id,
		customer,
		route,
		orderType,
		pricing,
		dto.SpecialInstructions,
		order.Status(dto.Status),
		driverID,
		dto.CreatedAt,
		dto.EstimatedDeliveryAt,
		reachedAt,
		cancelledFrom,
	)
}
