package commands

import (
	"context"

	"marketplace/internal/core/ports"
)

// AssignDriverCommandHandler handles the business logic for driver assignment.
// Verifies the driver against the fleet roster before handing the assignment
// to the aggregate, so orders never reference drivers that don't exist.
//
// Example:
//
//	handler := NewAssignDriverCommandHandler(uowFactory, roster)
//	cmd, _ := NewAssignDriverCommand(orderID, driverID)
//
//	err := handler.Handle(ctx, cmd)
//	if errors.Is(err, order.ErrDriverAlreadyAssigned) {
//	    // the order already has a driver
//	}
type AssignDriverCommandHandler struct {
	uowFactory OrderUoWFactory
	roster     ports.DriverRoster
}

// NewAssignDriverCommandHandler creates a handler for driver assignment
// operations. Requires an OrderUoWFactory for transactional persistence and
// the fleet roster for driver lookups.
func NewAssignDriverCommandHandler(uowFactory OrderUoWFactory, roster ports.DriverRoster) AssignDriverCommandHandler {
	return AssignDriverCommandHandler{
		uowFactory: uowFactory,
		roster:     roster,
	}
}

// Handle processes the driver assignment command.
// Confirms the driver is on the roster, loads the order, assigns the driver,
// and persists the change in one transaction.
func (h AssignDriverCommandHandler) Handle(ctx context.Context, cmd AssignDriverCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	driver, err := h.roster.Get(ctx, cmd.DriverID())
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

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = aggregate.AssignDriver(driver.ID); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
