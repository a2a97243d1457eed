package queries

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/guard"
)

var ErrGetOrderTrackingQueryIsNotConstructed = errors.New(
	"GetOrderTrackingQuery must be created via NewGetOrderTrackingQuery constructor",
)

// GetOrderTrackingQuery retrieves the customer-facing tracking view of one
// order: its timeline, progress, and the assigned driver's card.
type GetOrderTrackingQuery struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderTrackingQuery creates a query for an order's tracking view.
// Validates that the order ID is valid.
func NewGetOrderTrackingQuery(orderID kernel.UUID) (GetOrderTrackingQuery, error) {
	query := GetOrderTrackingQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := query.setOrderID(orderID); err != nil {
		return GetOrderTrackingQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderTrackingQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderTrackingQueryIsNotConstructed)
}

// OrderID returns the order whose tracking view is requested.
func (q GetOrderTrackingQuery) OrderID() kernel.UUID {
	return q.orderID
}

func (q *GetOrderTrackingQuery) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	q.orderID = orderID
	return nil
}

// GetOrderTrackingQueryResponse is the full tracking view of one order.
type GetOrderTrackingQueryResponse struct {
	ID                  kernel.UUID
	Status              order.Status
	StatusLabel         string
	StatusColor         string
	ProgressPercent     int
	PickupAddress       string
	DeliveryAddress     string
	SpecialInstructions string
	EstimatedDeliveryAt time.Time
	Timeline            []order.Milestone
	Driver              *ports.Driver
}
