package queries

import (
	"errors"
	"time"

	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrGetOverdueOrdersQueryIsNotConstructed = errors.New(
	"GetOverdueOrdersQuery must be created via NewGetOverdueOrdersQuery constructor",
)

// GetOverdueOrdersQuery retrieves live orders whose delivery estimate has
// passed. The watchdog job runs it periodically to surface stuck orders.
type GetOverdueOrdersQuery struct { //nolint:recvcheck //using for validation
	asOf time.Time

	guard guard.ConstructorGuard
}

// NewGetOverdueOrdersQuery creates a query for orders overdue as of the given
// time.
func NewGetOverdueOrdersQuery(asOf time.Time) (GetOverdueOrdersQuery, error) {
	query := GetOverdueOrdersQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := query.setAsOf(asOf); err != nil {
		return GetOverdueOrdersQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOverdueOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOverdueOrdersQueryIsNotConstructed)
}

// AsOf returns the point in time overdueness is judged against.
func (q GetOverdueOrdersQuery) AsOf() time.Time {
	return q.asOf
}

func (q *GetOverdueOrdersQuery) setAsOf(asOf time.Time) error {
	if asOf.IsZero() {
		return errs.NewValueIsRequiredError("asOf")
	}

	q.asOf = asOf
	return nil
}
