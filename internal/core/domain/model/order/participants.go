package order

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var (
	// ErrCustomerIsNotConstructed is returned when a Customer instance was not
	// created through the NewCustomer factory method.
	ErrCustomerIsNotConstructed = errors.New("Customer must be created via NewCustomer constructor")

	// ErrRouteIsNotConstructed is returned when a Route instance was not
	// created through the NewRoute factory method.
	ErrRouteIsNotConstructed = errors.New("Route must be created via NewRoute constructor")

	// ErrPricingIsNotConstructed is returned when a Pricing instance was not
	// created through the NewPricing factory method.
	ErrPricingIsNotConstructed = errors.New("Pricing must be created via NewPricing constructor")
)

// Customer is a value object identifying the ordering actor.
// The identity is immutable once the order is placed.
type Customer struct {
	id    kernel.UUID
	name  string
	phone string

	guard guard.ConstructorGuard
}

// NewCustomer creates a Customer reference with validation.
// The id must be valid and the name non-empty; phone is optional free text.
func NewCustomer(id kernel.UUID, name, phone string) (Customer, error) {
	if err := id.Validate(); err != nil {
		return Customer{}, err
	}
	if name == "" {
		return Customer{}, errs.NewValueIsRequiredError("customerName")
	}

	return Customer{
		id:    id,
		name:  name,
		phone: phone,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Customer was created through the constructor.
func (c Customer) Validate() error {
	return c.guard.Validate(ErrCustomerIsNotConstructed)
}

// ID returns the customer's unique identifier.
func (c Customer) ID() kernel.UUID {
	return c.id
}

// Name returns the customer's display name.
func (c Customer) Name() string {
	return c.name
}

// Phone returns the customer's contact phone, empty if not provided.
func (c Customer) Phone() string {
	return c.phone
}

// Route is a value object holding the pickup and delivery addresses of an
// order. Addresses are free text and immutable after placement.
type Route struct {
	pickupAddress   string
	deliveryAddress string

	guard guard.ConstructorGuard
}

// NewRoute creates a Route with validation. Both addresses are required.
func NewRoute(pickupAddress, deliveryAddress string) (Route, error) {
	if pickupAddress == "" {
		return Route{}, errs.NewValueIsRequiredError("pickupAddress")
	}
	if deliveryAddress == "" {
		return Route{}, errs.NewValueIsRequiredError("deliveryAddress")
	}

	return Route{
		pickupAddress:   pickupAddress,
		deliveryAddress: deliveryAddress,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Route was created through the constructor.
func (r Route) Validate() error {
	return r.guard.Validate(ErrRouteIsNotConstructed)
}

// PickupAddress returns where the order is collected.
func (r Route) PickupAddress() string {
	return r.pickupAddress
}

// DeliveryAddress returns where the order is delivered.
func (r Route) DeliveryAddress() string {
	return r.deliveryAddress
}

// Pricing is a value object holding the monetary attributes of an order.
// Amounts are non-negative by construction of kernel.Money.
type Pricing struct {
	value       kernel.Money
	deliveryFee kernel.Money

	guard guard.ConstructorGuard
}

// NewPricing creates a Pricing from an order value and a delivery fee.
func NewPricing(value, deliveryFee kernel.Money) (Pricing, error) {
	return Pricing{
		value:       value,
		deliveryFee: deliveryFee,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Pricing was created through the constructor.
func (p Pricing) Validate() error {
	return p.guard.Validate(ErrPricingIsNotConstructed)
}

// Value returns the monetary value of the order.
func (p Pricing) Value() kernel.Money {
	return p.value
}

// DeliveryFee returns the delivery fee charged for the order.
func (p Pricing) DeliveryFee() kernel.Money {
	return p.deliveryFee
}
