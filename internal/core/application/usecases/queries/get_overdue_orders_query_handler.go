package queries

import (
	"context"

	"marketplace/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GetOverdueOrdersQueryHandler retrieves live orders past their delivery
// estimate, most overdue first.
type GetOverdueOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetOverdueOrdersQueryHandler creates a handler for overdue order queries.
// Requires a GORM database connection for query execution.
func NewGetOverdueOrdersQueryHandler(db *gorm.DB) GetOverdueOrdersQueryHandler {
	return GetOverdueOrdersQueryHandler{db: db}
}

// Handle executes the query to retrieve orders overdue as of the query time.
func (h GetOverdueOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetOverdueOrdersQuery,
) ([]OrderSummaryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+orderSummaryColumns+`
		FROM orders
		WHERE status NOT IN ? AND estimated_delivery_at < ?
		ORDER BY estimated_delivery_at
	`, []int{int(order.Delivered), int(order.Cancelled)}, query.AsOf()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanOrderSummaries(rows)
}
