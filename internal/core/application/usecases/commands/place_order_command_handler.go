package commands

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
)

// PlacementConfig carries the commercial parameters applied to every placed
// order: the quoted order value, the delivery fee, and the offset used to
// estimate the delivery time. Pricing comes from configuration because the
// marketplace quotes flat rates; a rate card per merchant is a separate
// concern.
type PlacementConfig struct {
	OrderValue  kernel.Money
	DeliveryFee kernel.Money
	EtaOffset   time.Duration
}

// NewPlacementConfig creates a PlacementConfig with validation.
// The ETA offset must be positive; the amounts are non-negative by
// construction of kernel.Money.
func NewPlacementConfig(orderValue, deliveryFee kernel.Money, etaOffset time.Duration) (PlacementConfig, error) {
	if etaOffset <= 0 {
		return PlacementConfig{}, errs.NewValueIsOutOfRangeError("etaOffset", etaOffset, "1ns", "+inf")
	}

	return PlacementConfig{
		OrderValue:  orderValue,
		DeliveryFee: deliveryFee,
		EtaOffset:   etaOffset,
	}, nil
}

// PlaceOrderCommandHandler handles the business logic for order placement.
// Creates new orders in "placed" status with a delivery estimate derived from
// the configured ETA offset.
//
// Example:
//
//	handler := NewPlaceOrderCommandHandler(uowFactory, placement)
//	cmd, _ := NewPlaceOrderCommand(orderID, customerID, "Sarah Chen", "",
//	    "123 Market St", "456 Oak Ave", order.TypeFood, "")
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("order placement failed: %w", err)
//	}
//	// Order is now placed and visible on the dashboard
type PlaceOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	placement  PlacementConfig
}

// NewPlaceOrderCommandHandler creates a handler for order placement operations.
// Requires an OrderUoWFactory for transactional persistence and the placement
// configuration applied to each order.
func NewPlaceOrderCommandHandler(uowFactory OrderUoWFactory, placement PlacementConfig) PlaceOrderCommandHandler {
	return PlaceOrderCommandHandler{
		uowFactory: uowFactory,
		placement:  placement,
	}
}

// Handle processes the order placement command.
// Builds the order aggregate from the command and the placement configuration
// and persists it. Uses transaction to ensure the order is properly persisted
// or rolled back on error.
func (h PlaceOrderCommandHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	customer, err := order.NewCustomer(cmd.CustomerID(), cmd.CustomerName(), cmd.CustomerPhone())
	if err != nil {
		return err
	}

	route, err := order.NewRoute(cmd.PickupAddress(), cmd.DeliveryAddress())
	if err != nil {
		return err
	}

	pricing, err := order.NewPricing(h.placement.OrderValue, h.placement.DeliveryFee)
	if err != nil {
		return err
	}

	aggregate, err := order.NewOrder(
		cmd.OrderID(),
		customer,
		route,
		cmd.OrderType(),
		pricing,
		cmd.SpecialInstructions(),
		time.Now().UTC(),
		h.placement.EtaOffset,
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
