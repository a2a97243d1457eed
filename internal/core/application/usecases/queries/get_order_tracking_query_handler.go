package queries

import (
	"context"
	"errors"

	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// GetOrderTrackingQueryHandler builds the tracking view of one order.
//
// Unlike the list queries, the tracking view needs the timeline derivation
// that lives on the aggregate, so the handler loads the full order through
// the repository instead of scanning raw rows.
type GetOrderTrackingQueryHandler struct {
	orders ports.OrderRepository
	roster ports.DriverRoster
}

// NewGetOrderTrackingQueryHandler creates a handler for tracking queries.
// Requires the order repository and the fleet roster for driver details.
func NewGetOrderTrackingQueryHandler(
	orders ports.OrderRepository,
	roster ports.DriverRoster,
) GetOrderTrackingQueryHandler {
	return GetOrderTrackingQueryHandler{orders: orders, roster: roster}
}

// Handle executes the query and assembles the tracking view.
// A driver missing from the roster does not fail the view; the driver card is
// simply omitted, since tracking must keep working if the fleet system lags.
func (h GetOrderTrackingQueryHandler) Handle(
	ctx context.Context,
	query GetOrderTrackingQuery,
) (GetOrderTrackingQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderTrackingQueryResponse{}, err
	}

	aggregate, err := h.orders.Get(ctx, query.OrderID())
	if err != nil {
		return GetOrderTrackingQueryResponse{}, err
	}

	timeline, err := aggregate.Timeline()
	if err != nil {
		return GetOrderTrackingQueryResponse{}, err
	}

	response := GetOrderTrackingQueryResponse{
		ID:                  aggregate.ID(),
		Status:              aggregate.Status(),
		StatusLabel:         aggregate.Status().Display().Label,
		StatusColor:         aggregate.Status().Display().Color,
		ProgressPercent:     aggregate.ProgressPercent(),
		PickupAddress:       aggregate.Route().PickupAddress(),
		DeliveryAddress:     aggregate.Route().DeliveryAddress(),
		SpecialInstructions: aggregate.SpecialInstructions(),
		EstimatedDeliveryAt: aggregate.EstimatedDeliveryAt(),
		Timeline:            timeline,
	}

	if driverID := aggregate.Driver(); driverID != nil {
		driver, rosterErr := h.roster.Get(ctx, *driverID)
		switch {
		case rosterErr == nil:
			response.Driver = &driver
		case errors.Is(rosterErr, errs.ErrObjectNotFound):
		default:
			return GetOrderTrackingQueryResponse{}, rosterErr
		}
	}

	return response, nil
}
