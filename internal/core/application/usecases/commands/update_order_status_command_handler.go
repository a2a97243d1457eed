package commands

import (
	"context"
	"time"
)

// UpdateOrderStatusCommandHandler handles the business logic for advancing an
// order along the fulfillment sequence. The transition rules live on the
// aggregate; the handler loads, advances, and persists.
//
// Example:
//
//	handler := NewUpdateOrderStatusCommandHandler(uowFactory)
//	cmd, _ := NewUpdateOrderStatusCommand(orderID, order.Confirmed)
//
//	err := handler.Handle(ctx, cmd)
//	if errors.Is(err, order.ErrIllegalTransition) {
//	    // the order is not at the preceding stage
//	}
type UpdateOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewUpdateOrderStatusCommandHandler creates a handler for status update
// operations. Requires an OrderUoWFactory for transactional persistence.
func NewUpdateOrderStatusCommandHandler(uowFactory OrderUoWFactory) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the status update command.
// Loads the order, applies the transition with the current time, and persists
// the change. The read and write happen in one transaction so concurrent
// updates cannot interleave between load and save.
func (h UpdateOrderStatusCommandHandler) Handle(ctx context.Context, cmd UpdateOrderStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
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

	if err = aggregate.AdvanceTo(cmd.Target(), time.Now().UTC()); err != nil {
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
