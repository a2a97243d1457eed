// Package queries contains read-only operations for order and dashboard views.
// Implements the Query side of the CQRS architecture: handlers read denormalized
// rows straight from the database and never mutate state.
package queries

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/guard"
)

var ErrGetCustomerOrdersQueryIsNotConstructed = errors.New(
	"GetCustomerOrdersQuery must be created via NewGetCustomerOrdersQuery constructor",
)

// GetCustomerOrdersQuery retrieves the order history of one customer,
// newest first.
//
// Example:
//
//	query, err := NewGetCustomerOrdersQuery(customerID)
//	if err != nil {
//	    return err
//	}
//
//	orders, err := NewGetCustomerOrdersQueryHandler(db).Handle(ctx, query)
type GetCustomerOrdersQuery struct { //nolint:recvcheck //using for validation
	customerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetCustomerOrdersQuery creates a query for one customer's order history.
// Validates that the customer ID is valid.
func NewGetCustomerOrdersQuery(customerID kernel.UUID) (GetCustomerOrdersQuery, error) {
	query := GetCustomerOrdersQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := query.setCustomerID(customerID); err != nil {
		return GetCustomerOrdersQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q GetCustomerOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetCustomerOrdersQueryIsNotConstructed)
}

// CustomerID returns the customer whose orders are requested.
func (q GetCustomerOrdersQuery) CustomerID() kernel.UUID {
	return q.customerID
}

func (q *GetCustomerOrdersQuery) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}

	q.customerID = customerID
	return nil
}

// OrderSummaryResponse is the list-view projection of an order: enough for a
// dashboard or history row without loading the full aggregate.
type OrderSummaryResponse struct {
	ID                  kernel.UUID
	CustomerName        string
	Status              order.Status
	StatusLabel         string
	StatusColor         string
	OrderType           string
	ValueCents          int64
	DeliveryFeeCents    int64
	CreatedAt           time.Time
	EstimatedDeliveryAt time.Time
	ProgressPercent     int
	DriverID            *kernel.UUID
}
