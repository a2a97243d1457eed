package services

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
)

// OrderRecord is the read model the aggregator consumes: the projection of a
// single order onto the fields the KPI formulas need. Building metrics over
// records instead of full aggregates keeps the service usable with rows
// loaded straight from the read side.
type OrderRecord struct {
	Status      order.Status
	CreatedAt   time.Time
	DeliveredAt *time.Time
	Value       kernel.Money
}

// RecordOf projects an order aggregate onto its metrics record.
func RecordOf(o *order.Order) (OrderRecord, error) {
	if err := o.Validate(); err != nil {
		return OrderRecord{}, err
	}

	record := OrderRecord{
		Status:    o.Status(),
		CreatedAt: o.CreatedAt(),
		Value:     o.Pricing().Value(),
	}
	if deliveredAt, ok := o.DeliveredAt(); ok {
		record.DeliveredAt = &deliveredAt
	}

	return record, nil
}

// KpiSnapshot holds the headline figures shown on the operations dashboard,
// all computed over the same input set so they are mutually consistent.
type KpiSnapshot struct {
	ActiveOrderCount       int
	TodayRevenue           kernel.Money
	AverageDeliveryMinutes float64
	SuccessRate            float64
}

// MetricsAggregator is a domain service computing operational KPIs over order
// records.
//
// Business rules:
//   - Active counts only orders in the in-flight statuses
//   - Revenue sums order values created at or after the period start
//   - Success rate is the delivered share of settled orders, in percent
//   - Average delivery time covers delivered orders only
//
// Empty inputs yield the service's configured defaults rather than NaN: a
// fleet with no settled orders reports a 100% success rate, and with no
// deliveries reports the configured baseline delivery time.
type MetricsAggregator struct {
	baselineDeliveryMinutes float64
}

// NewMetricsAggregator creates a MetricsAggregator with the baseline average
// delivery time reported while no deliveries have completed.
func NewMetricsAggregator(baselineDeliveryMinutes float64) (MetricsAggregator, error) {
	if baselineDeliveryMinutes < 0 {
		return MetricsAggregator{}, errs.NewValueIsOutOfRangeError(
			"baselineDeliveryMinutes", baselineDeliveryMinutes, 0, "+inf")
	}

	return MetricsAggregator{baselineDeliveryMinutes: baselineDeliveryMinutes}, nil
}

// InFlightStatuses returns the statuses counted as active on the dashboard.
func InFlightStatuses() []order.Status {
	return []order.Status{order.Placed, order.Preparing, order.InTransit}
}

// CountActive returns how many records are in an in-flight status.
func (m MetricsAggregator) CountActive(records []OrderRecord) int {
	count := 0
	for _, record := range records {
		for _, status := range InFlightStatuses() {
			if record.Status == status {
				count++
				break
			}
		}
	}
	return count
}

// SumRevenue totals the value of records created at or after since.
// Cancelled orders still count: revenue tracks demand, not settlement.
func (m MetricsAggregator) SumRevenue(records []OrderRecord, since time.Time) kernel.Money {
	var total kernel.Money
	for _, record := range records {
		if record.CreatedAt.Before(since) {
			continue
		}
		total = total.Add(record.Value)
	}
	return total
}

// SuccessRate returns the delivered share of settled (delivered or cancelled)
// orders as a percentage in [0,100]. With no settled orders it returns 100.
func (m MetricsAggregator) SuccessRate(records []OrderRecord) float64 {
	delivered, cancelled := 0, 0
	for _, record := range records {
		switch record.Status {
		case order.Delivered:
			delivered++
		case order.Cancelled:
			cancelled++
		}
	}

	settled := delivered + cancelled
	if settled == 0 {
		return 100
	}
	return 100 * float64(delivered) / float64(settled)
}

// AverageDeliveryMinutes returns the mean placement-to-delivery duration in
// minutes over delivered records. With no delivered records it returns the
// configured baseline.
func (m MetricsAggregator) AverageDeliveryMinutes(records []OrderRecord) float64 {
	var total time.Duration
	delivered := 0
	for _, record := range records {
		if record.Status != order.Delivered || record.DeliveredAt == nil {
			continue
		}
		total += record.DeliveredAt.Sub(record.CreatedAt)
		delivered++
	}

	if delivered == 0 {
		return m.baselineDeliveryMinutes
	}
	return total.Minutes() / float64(delivered)
}

// Snapshot computes all KPIs over the same record set. The period start
// bounds the revenue figure only; counts and rates cover the whole set.
//
// Every record's status is validated up front so one corrupt row fails the
// whole snapshot instead of silently skewing the figures.
func (m MetricsAggregator) Snapshot(records []OrderRecord, since time.Time) (KpiSnapshot, error) {
	for _, record := range records {
		if err := record.Status.Validate(); err != nil {
			return KpiSnapshot{}, err
		}
	}

	return KpiSnapshot{
		ActiveOrderCount:       m.CountActive(records),
		TodayRevenue:           m.SumRevenue(records, since),
		AverageDeliveryMinutes: m.AverageDeliveryMinutes(records),
		SuccessRate:            m.SuccessRate(records),
	}, nil
}
