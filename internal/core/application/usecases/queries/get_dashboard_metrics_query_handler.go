package queries

import (
	"context"
	"database/sql"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/services"

	"gorm.io/gorm"
)

// GetDashboardMetricsQueryHandler computes the KPI snapshot over all orders.
// The handler only loads the projection columns the formulas need and hands
// the arithmetic to the domain's MetricsAggregator, so the figures shown on
// the dashboard follow the same rules as everywhere else.
type GetDashboardMetricsQueryHandler struct {
	db         *gorm.DB
	aggregator services.MetricsAggregator
}

// NewGetDashboardMetricsQueryHandler creates a handler for KPI snapshot
// queries. Requires a GORM database connection and the metrics aggregator.
func NewGetDashboardMetricsQueryHandler(
	db *gorm.DB,
	aggregator services.MetricsAggregator,
) GetDashboardMetricsQueryHandler {
	return GetDashboardMetricsQueryHandler{db: db, aggregator: aggregator}
}

// Handle executes the query and computes the KPI snapshot.
func (h GetDashboardMetricsQueryHandler) Handle(
	ctx context.Context,
	query GetDashboardMetricsQuery,
) (GetDashboardMetricsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetDashboardMetricsQueryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			status,
			created_at,
			delivered_at,
			value_cents
		FROM orders
	`).Rows()
	if err != nil {
		return GetDashboardMetricsQueryResponse{}, err
	}
	defer rows.Close()

	records := make([]services.OrderRecord, 0)
	for rows.Next() {
		var (
			status      int
			createdAt   time.Time
			deliveredAt sql.NullTime
			valueCents  int64
		)

		if err = rows.Scan(&status, &createdAt, &deliveredAt, &valueCents); err != nil {
			return GetDashboardMetricsQueryResponse{}, err
		}

		value, moneyErr := kernel.NewMoneyFromCents(valueCents)
		if moneyErr != nil {
			return GetDashboardMetricsQueryResponse{}, moneyErr
		}

		record := services.OrderRecord{
			Status:    order.Status(status),
			CreatedAt: createdAt,
			Value:     value,
		}
		if deliveredAt.Valid {
			delivered := deliveredAt.Time
			record.DeliveredAt = &delivered
		}

		records = append(records, record)
	}

	if err = rows.Err(); err != nil {
		return GetDashboardMetricsQueryResponse{}, err
	}

	snapshot, err := h.aggregator.Snapshot(records, query.Since())
	if err != nil {
		return GetDashboardMetricsQueryResponse{}, err
	}

	return GetDashboardMetricsQueryResponse{
		ActiveOrderCount:       snapshot.ActiveOrderCount,
		TodayRevenueCents:      snapshot.TodayRevenue.Cents(),
		AverageDeliveryMinutes: snapshot.AverageDeliveryMinutes,
		SuccessRate:            snapshot.SuccessRate,
	}, nil
}
