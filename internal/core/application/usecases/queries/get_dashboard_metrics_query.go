package queries

import (
	"errors"
	"time"

	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrGetDashboardMetricsQueryIsNotConstructed = errors.New(
	"GetDashboardMetricsQuery must be created via NewGetDashboardMetricsQuery constructor",
)

// GetDashboardMetricsQuery retrieves the operational KPI snapshot for the
// dashboard. The period start bounds the revenue figure; counts and rates
// cover all orders.
//
// Example:
//
//	since := time.Now().Truncate(24 * time.Hour)
//	query, err := NewGetDashboardMetricsQuery(since)
//	if err != nil {
//	    return err
//	}
//
//	metrics, err := handler.Handle(ctx, query)
type GetDashboardMetricsQuery struct { //nolint:recvcheck //using for validation
	since time.Time

	guard guard.ConstructorGuard
}

// NewGetDashboardMetricsQuery creates a query for the KPI snapshot with the
// revenue period starting at since.
func NewGetDashboardMetricsQuery(since time.Time) (GetDashboardMetricsQuery, error) {
	query := GetDashboardMetricsQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := query.setSince(since); err != nil {
		return GetDashboardMetricsQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q GetDashboardMetricsQuery) Validate() error {
	return q.guard.Validate(ErrGetDashboardMetricsQueryIsNotConstructed)
}

// Since returns the start of the revenue period.
func (q GetDashboardMetricsQuery) Since() time.Time {
	return q.since
}

func (q *GetDashboardMetricsQuery) setSince(since time.Time) error {
	if since.IsZero() {
		return errs.NewValueIsRequiredError("since")
	}

	q.since = since
	return nil
}

// GetDashboardMetricsQueryResponse carries the headline dashboard figures.
type GetDashboardMetricsQueryResponse struct {
	ActiveOrderCount       int
	TodayRevenueCents      int64
	AverageDeliveryMinutes float64
	SuccessRate            float64
}
