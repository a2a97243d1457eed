package queries

import (
	"context"

	"marketplace/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GetDriverQueueQueryHandler retrieves a driver's live assignments from the
// database. Terminal orders drop out of the queue as soon as they settle.
type GetDriverQueueQueryHandler struct {
	db *gorm.DB
}

// NewGetDriverQueueQueryHandler creates a handler for driver queue queries.
// Requires a GORM database connection for query execution.
func NewGetDriverQueueQueryHandler(db *gorm.DB) GetDriverQueueQueryHandler {
	return GetDriverQueueQueryHandler{db: db}
}

// Handle executes the query to retrieve the driver's live orders, oldest
// first so the driver works the queue in placement order.
func (h GetDriverQueueQueryHandler) Handle(
	ctx context.Context,
	query GetDriverQueueQuery,
) ([]OrderSummaryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+orderSummaryColumns+`
		FROM orders
		WHERE driver_id = ? AND status NOT IN ?
		ORDER BY created_at
	`, query.DriverID().Bytes(), []int{int(order.Delivered), int(order.Cancelled)}).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanOrderSummaries(rows)
}
