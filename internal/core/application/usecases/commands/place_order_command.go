package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/guard"
)

var (
	ErrPlaceOrderCommandIsNotConstructed = errors.New(
		"PlaceOrderCommand must be created via NewPlaceOrderCommand constructor",
	)
	ErrCustomerNameIsRequired    = errors.New("customer name is required")
	ErrPickupAddressIsRequired   = errors.New("pickup address is required")
	ErrDeliveryAddressIsRequired = errors.New("delivery address is required")
)

// PlaceOrderCommand represents a request to place a new delivery order.
// Encapsulates the ordering customer, the route, and the kind of goods.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	cmd, err := NewPlaceOrderCommand(orderID, customerID, "Sarah Chen", "+1-555-0142",
//	    "123 Market St", "456 Oak Ave", order.TypeFood, "Leave at door")
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewPlaceOrderCommandHandler(uowFactory, placement)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to place order: %w", err)
//	}
type PlaceOrderCommand struct { //nolint:recvcheck //using for validation
	orderID             kernel.UUID
	customerID          kernel.UUID
	customerName        string
	customerPhone       string
	pickupAddress       string
	deliveryAddress     string
	orderType           order.OrderType
	specialInstructions string

	guard guard.ConstructorGuard
}

// NewPlaceOrderCommand creates a command to place a new delivery order.
// Validates that both identifiers are valid, the customer name and both
// addresses are non-empty, and the order type is supported.
func NewPlaceOrderCommand(
	orderID kernel.UUID,
	customerID kernel.UUID,
	customerName string,
	customerPhone string,
	pickupAddress string,
	deliveryAddress string,
	orderType order.OrderType,
	specialInstructions string,
) (PlaceOrderCommand, error) {
	command := PlaceOrderCommand{
		customerPhone:       customerPhone,
		specialInstructions: specialInstructions,
		guard:               guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setCustomerID(customerID),
		command.setCustomerName(customerName),
		command.setPickupAddress(pickupAddress),
		command.setDeliveryAddress(deliveryAddress),
		command.setOrderType(orderType),
	); err != nil {
		return PlaceOrderCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c PlaceOrderCommand) Validate() error {
	return c.guard.Validate(ErrPlaceOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the new order.
func (c PlaceOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CustomerID returns the identifier of the ordering customer.
func (c PlaceOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// CustomerName returns the display name of the ordering customer.
func (c PlaceOrderCommand) CustomerName() string {
	return c.customerName
}

// CustomerPhone returns the customer's contact phone, empty if not provided.
func (c PlaceOrderCommand) CustomerPhone() string {
	return c.customerPhone
}

// PickupAddress returns where the order is collected.
func (c PlaceOrderCommand) PickupAddress() string {
	return c.pickupAddress
}

// DeliveryAddress returns where the order is delivered.
func (c PlaceOrderCommand) DeliveryAddress() string {
	return c.deliveryAddress
}

// OrderType returns the kind of goods the order carries.
func (c PlaceOrderCommand) OrderType() order.OrderType {
	return c.orderType
}

// SpecialInstructions returns the optional delivery note.
func (c PlaceOrderCommand) SpecialInstructions() string {
	return c.specialInstructions
}

func (c *PlaceOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *PlaceOrderCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}

	c.customerID = customerID
	return nil
}

func (c *PlaceOrderCommand) setCustomerName(customerName string) error {
	if customerName == "" {
		return ErrCustomerNameIsRequired
	}

	c.customerName = customerName
	return nil
}

func (c *PlaceOrderCommand) setPickupAddress(pickupAddress string) error {
	if pickupAddress == "" {
		return ErrPickupAddressIsRequired
	}

	c.pickupAddress = pickupAddress
	return nil
}

func (c *PlaceOrderCommand) setDeliveryAddress(deliveryAddress string) error {
	if deliveryAddress == "" {
		return ErrDeliveryAddressIsRequired
	}

	c.deliveryAddress = deliveryAddress
	return nil
}

func (c *PlaceOrderCommand) setOrderType(orderType order.OrderType) error {
	if err := orderType.Validate(); err != nil {
		return err
	}

	c.orderType = orderType
	return nil
}
