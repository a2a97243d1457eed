// Package http provides the inbound REST adapter. Handlers translate JSON
// requests into commands and queries, and domain errors into HTTP status
// codes; no business rules live here.
package http

import (
	"errors"
	"net/http"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	placeOrderHandler        commands.PlaceOrderCommandHandler
	updateOrderStatusHandler commands.UpdateOrderStatusCommandHandler
	assignDriverHandler      commands.AssignDriverCommandHandler
	cancelOrderHandler       commands.CancelOrderCommandHandler

	// Query handlers
	getOrderTrackingHandler    queries.GetOrderTrackingQueryHandler
	getCustomerOrdersHandler   queries.GetCustomerOrdersQueryHandler
	getActiveOrdersHandler     queries.GetActiveOrdersQueryHandler
	getDashboardMetricsHandler queries.GetDashboardMetricsQueryHandler
	getDriverQueueHandler      queries.GetDriverQueueQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	placeOrderHandler commands.PlaceOrderCommandHandler,
	updateOrderStatusHandler commands.UpdateOrderStatusCommandHandler,
	assignDriverHandler commands.AssignDriverCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	getOrderTrackingHandler queries.GetOrderTrackingQueryHandler,
	getCustomerOrdersHandler queries.GetCustomerOrdersQueryHandler,
	getActiveOrdersHandler queries.GetActiveOrdersQueryHandler,
	getDashboardMetricsHandler queries.GetDashboardMetricsQueryHandler,
	getDriverQueueHandler queries.GetDriverQueueQueryHandler,
) *Server {
	return &Server{
		placeOrderHandler:          placeOrderHandler,
		updateOrderStatusHandler:   updateOrderStatusHandler,
		assignDriverHandler:        assignDriverHandler,
		cancelOrderHandler:         cancelOrderHandler,
		getOrderTrackingHandler:    getOrderTrackingHandler,
		getCustomerOrdersHandler:   getCustomerOrdersHandler,
		getActiveOrdersHandler:     getActiveOrdersHandler,
		getDashboardMetricsHandler: getDashboardMetricsHandler,
		getDriverQueueHandler:      getDriverQueueHandler,
	}
}

// RegisterRoutes attaches all endpoints to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1")
	api.POST("/orders", s.PlaceOrder)
	api.GET("/orders", s.GetCustomerOrders)
	api.GET("/orders/active", s.GetActiveOrders)
	api.GET("/orders/:id/tracking", s.GetOrderTracking)
	api.POST("/orders/:id/status", s.UpdateOrderStatus)
	api.POST("/orders/:id/driver", s.AssignDriver)
	api.POST("/orders/:id/cancel", s.CancelOrder)
	api.GET("/dashboard/metrics", s.GetDashboardMetrics)
	api.GET("/drivers/:id/queue", s.GetDriverQueue)
}

// Health handles GET /health - liveness probe.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "healthy"})
}

// PlaceOrder handles POST /api/v1/orders - places a new order.
func (s *Server) PlaceOrder(ctx echo.Context) error {
	var request PlaceOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	customerID, err := kernel.UUIDFromString(request.CustomerID)
	if err != nil {
		return badRequest(ctx, "Invalid customer id: "+err.Error())
	}

	orderType, err := order.ParseOrderType(request.OrderType)
	if err != nil {
		return badRequest(ctx, "Invalid order type: "+err.Error())
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewPlaceOrderCommand(
		orderID,
		customerID,
		request.CustomerName,
		request.CustomerPhone,
		request.PickupAddress,
		request.DeliveryAddress,
		orderType,
		request.SpecialInstructions,
	)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	if err = s.placeOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return commandError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, PlaceOrderResponse{ID: orderID.String()})
}

// UpdateOrderStatus handles POST /api/v1/orders/:id/status - advances an order.
func (s *Server) UpdateOrderStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	var request UpdateStatusRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	target, err := order.ParseStatus(request.Status)
	if err != nil {
		return badRequest(ctx, "Invalid status: "+err.Error())
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(orderID, target)
	if err != nil {
		return badRequest(ctx, "Invalid status update: "+err.Error())
	}

	if err = s.updateOrderStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return commandError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AssignDriver handles POST /api/v1/orders/:id/driver - assigns a driver.
func (s *Server) AssignDriver(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	var request AssignDriverRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	driverID, err := kernel.UUIDFromString(request.DriverID)
	if err != nil {
		return badRequest(ctx, "Invalid driver id: "+err.Error())
	}

	cmd, err := commands.NewAssignDriverCommand(orderID, driverID)
	if err != nil {
		return badRequest(ctx, "Invalid assignment: "+err.Error())
	}

	if err = s.assignDriverHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return commandError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CancelOrder handles POST /api/v1/orders/:id/cancel - cancels an order.
func (s *Server) CancelOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	cmd, err := commands.NewCancelOrderCommand(orderID)
	if err != nil {
		return badRequest(ctx, "Invalid cancellation: "+err.Error())
	}

	if err = s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return commandError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetOrderTracking handles GET /api/v1/orders/:id/tracking - tracking view.
func (s *Server) GetOrderTracking(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	query, err := queries.NewGetOrderTrackingQuery(orderID)
	if err != nil {
		return badRequest(ctx, "Invalid tracking request: "+err.Error())
	}

	view, err := s.getOrderTrackingHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return notFound(ctx, "Order not found")
		}
		return internalError(ctx, "Failed to retrieve tracking view")
	}

	response := TrackingResponse{
		ID:                  view.ID.String(),
		Status:              view.Status.String(),
		StatusLabel:         view.StatusLabel,
		StatusColor:         view.StatusColor,
		ProgressPercent:     view.ProgressPercent,
		PickupAddress:       view.PickupAddress,
		DeliveryAddress:     view.DeliveryAddress,
		SpecialInstructions: view.SpecialInstructions,
		EstimatedDeliveryAt: view.EstimatedDeliveryAt,
		Timeline:            make([]Milestone, 0, len(view.Timeline)),
	}

	for _, milestone := range view.Timeline {
		m := Milestone{
			Status:      milestone.Status.String(),
			Description: milestone.Description,
			Estimated:   milestone.Estimated,
			Completed:   milestone.Completed,
			Current:     milestone.Current,
		}
		if !milestone.Timestamp.IsZero() {
			timestamp := milestone.Timestamp
			m.Timestamp = &timestamp
		}
		response.Timeline = append(response.Timeline, m)
	}

	if view.Driver != nil {
		response.Driver = &DriverCard{
			ID:      view.Driver.ID.String(),
			Name:    view.Driver.Name,
			Phone:   view.Driver.Phone,
			Vehicle: view.Driver.Vehicle,
			Rating:  view.Driver.Rating,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetCustomerOrders handles GET /api/v1/orders?customer_id=... - order history.
func (s *Server) GetCustomerOrders(ctx echo.Context) error {
	customerID, err := kernel.UUIDFromString(ctx.QueryParam("customer_id"))
	if err != nil {
		return badRequest(ctx, "Invalid customer id: "+err.Error())
	}

	query, err := queries.NewGetCustomerOrdersQuery(customerID)
	if err != nil {
		return badRequest(ctx, "Invalid history request: "+err.Error())
	}

	orders, err := s.getCustomerOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return internalError(ctx, "Failed to retrieve orders")
	}

	return ctx.JSON(http.StatusOK, toOrderSummaries(orders))
}

// GetActiveOrders handles GET /api/v1/orders/active - in-flight orders.
func (s *Server) GetActiveOrders(ctx echo.Context) error {
	orders, err := s.getActiveOrdersHandler.Handle(ctx.Request().Context(), queries.NewGetActiveOrdersQuery())
	if err != nil {
		return internalError(ctx, "Failed to retrieve active orders")
	}

	return ctx.JSON(http.StatusOK, toOrderSummaries(orders))
}

// GetDashboardMetrics handles GET /api/v1/dashboard/metrics - KPI snapshot.
// The revenue period starts at the local midnight of the current day.
func (s *Server) GetDashboardMetrics(ctx echo.Context) error {
	now := time.Now()
	year, month, day := now.Date()
	since := time.Date(year, month, day, 0, 0, 0, 0, now.Location())

	query, err := queries.NewGetDashboardMetricsQuery(since)
	if err != nil {
		return internalError(ctx, "Failed to build metrics query")
	}

	metrics, err := s.getDashboardMetricsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return internalError(ctx, "Failed to compute metrics")
	}

	return ctx.JSON(http.StatusOK, MetricsResponse{
		ActiveOrderCount:       metrics.ActiveOrderCount,
		TodayRevenueCents:      metrics.TodayRevenueCents,
		AverageDeliveryMinutes: metrics.AverageDeliveryMinutes,
		SuccessRate:            metrics.SuccessRate,
	})
}

// GetDriverQueue handles GET /api/v1/drivers/:id/queue - driver work queue.
func (s *Server) GetDriverQueue(ctx echo.Context) error {
	driverID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid driver id: "+err.Error())
	}

	query, err := queries.NewGetDriverQueueQuery(driverID)
	if err != nil {
		return badRequest(ctx, "Invalid queue request: "+err.Error())
	}

	orders, err := s.getDriverQueueHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return internalError(ctx, "Failed to retrieve driver queue")
	}

	return ctx.JSON(http.StatusOK, toOrderSummaries(orders))
}

func toOrderSummaries(orders []queries.OrderSummaryResponse) []OrderSummary {
	response := make([]OrderSummary, len(orders))
	for i, summary := range orders {
		response[i] = OrderSummary{
			ID:                  summary.ID.String(),
			CustomerName:        summary.CustomerName,
			Status:              summary.Status.String(),
			StatusLabel:         summary.StatusLabel,
			StatusColor:         summary.StatusColor,
			OrderType:           summary.OrderType,
			ValueCents:          summary.ValueCents,
			DeliveryFeeCents:    summary.DeliveryFeeCents,
			CreatedAt:           summary.CreatedAt,
			EstimatedDeliveryAt: summary.EstimatedDeliveryAt,
			ProgressPercent:     summary.ProgressPercent,
		}
		if summary.DriverID != nil {
			response[i].DriverID = summary.DriverID.String()
		}
	}
	return response
}

// commandError maps domain failures from command handlers to HTTP statuses.
func commandError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return notFound(ctx, err.Error())
	case errors.Is(err, order.ErrIllegalTransition),
		errors.Is(err, order.ErrDriverAlreadyAssigned):
		return conflict(ctx, err.Error())
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return badRequest(ctx, err.Error())
	default:
		return internalError(ctx, "Command failed")
	}
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: message})
}

func notFound(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusNotFound, Error{Code: http.StatusNotFound, Message: message})
}

func conflict(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusConflict, Error{Code: http.StatusConflict, Message: message})
}

func internalError(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusInternalServerError, Error{Code: http.StatusInternalServerError, Message: message})
}
