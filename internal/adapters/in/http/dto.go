package http

import "time"

// Error is the JSON error envelope returned by every failing endpoint.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// PlaceOrderRequest is the payload for creating a new order.
type PlaceOrderRequest struct {
	CustomerID          string `json:"customer_id"`
	CustomerName        string `json:"customer_name"`
	CustomerPhone       string `json:"customer_phone,omitempty"`
	PickupAddress       string `json:"pickup_address"`
	DeliveryAddress     string `json:"delivery_address"`
	OrderType           string `json:"order_type"`
	SpecialInstructions string `json:"special_instructions,omitempty"`
}

// PlaceOrderResponse returns the identifier assigned to a newly placed order.
type PlaceOrderResponse struct {
	ID string `json:"id"`
}

// UpdateStatusRequest is the payload for advancing an order's status.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// AssignDriverRequest is the payload for assigning a driver to an order.
type AssignDriverRequest struct {
	DriverID string `json:"driver_id"`
}

// OrderSummary is the list-view representation of an order.
type OrderSummary struct {
	ID                  string    `json:"id"`
	CustomerName        string    `json:"customer_name"`
	Status              string    `json:"status"`
	StatusLabel         string    `json:"status_label"`
	StatusColor         string    `json:"status_color"`
	OrderType           string    `json:"order_type"`
	ValueCents          int64     `json:"value_cents"`
	DeliveryFeeCents    int64     `json:"delivery_fee_cents"`
	CreatedAt           time.Time `json:"created_at"`
	EstimatedDeliveryAt time.Time `json:"estimated_delivery_at"`
	ProgressPercent     int       `json:"progress_percent"`
	DriverID            string    `json:"driver_id,omitempty"`
}

// Milestone is one step of the tracking timeline.
type Milestone struct {
	Status      string     `json:"status"`
	Description string     `json:"description"`
	Timestamp   *time.Time `json:"timestamp,omitempty"`
	Estimated   bool       `json:"estimated,omitempty"`
	Completed   bool       `json:"completed"`
	Current     bool       `json:"current"`
}

// DriverCard is the driver block shown on the tracking view.
type DriverCard struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Phone   string  `json:"phone,omitempty"`
	Vehicle string  `json:"vehicle"`
	Rating  float64 `json:"rating"`
}

// TrackingResponse is the customer-facing tracking view of one order.
type TrackingResponse struct {
	ID                  string      `json:"id"`
	Status              string      `json:"status"`
	StatusLabel         string      `json:"status_label"`
	StatusColor         string      `json:"status_color"`
	ProgressPercent     int         `json:"progress_percent"`
	PickupAddress       string      `json:"pickup_address"`
	DeliveryAddress     string      `json:"delivery_address"`
	SpecialInstructions string      `json:"special_instructions,omitempty"`
	EstimatedDeliveryAt time.Time   `json:"estimated_delivery_at"`
	Timeline            []Milestone `json:"timeline"`
	Driver              *DriverCard `json:"driver,omitempty"`
}

// MetricsResponse carries the headline dashboard figures.
type MetricsResponse struct {
	ActiveOrderCount       int     `json:"active_order_count"`
	TodayRevenueCents      int64   `json:"today_revenue_cents"`
	AverageDeliveryMinutes float64 `json:"average_delivery_minutes"`
	SuccessRate            float64 `json:"success_rate"`
}
