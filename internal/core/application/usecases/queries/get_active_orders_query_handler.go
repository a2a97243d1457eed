package queries

import (
	"context"

	"marketplace/internal/core/domain/services"

	"gorm.io/gorm"
)

// GetActiveOrdersQueryHandler retrieves in-flight orders from the database.
// The in-flight set matches what the dashboard counts as active, so the list
// and the headline figure never disagree.
type GetActiveOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetActiveOrdersQueryHandler creates a handler for active order queries.
// Requires a GORM database connection for query execution.
func NewGetActiveOrdersQueryHandler(db *gorm.DB) GetActiveOrdersQueryHandler {
	return GetActiveOrdersQueryHandler{db: db}
}

// Handle executes the query to retrieve all in-flight orders, oldest first so
// operators see the longest-waiting orders at the top.
func (h GetActiveOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetActiveOrdersQuery,
) ([]OrderSummaryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	statuses := make([]int, 0, len(services.InFlightStatuses()))
	for _, status := range services.InFlightStatuses() {
		statuses = append(statuses, int(status))
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+orderSummaryColumns+`
		FROM orders
		WHERE status IN ?
		ORDER BY created_at
	`, statuses).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanOrderSummaries(rows)
}
