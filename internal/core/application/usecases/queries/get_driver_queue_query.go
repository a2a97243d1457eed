package queries

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrGetDriverQueueQueryIsNotConstructed = errors.New(
	"GetDriverQueueQuery must be created via NewGetDriverQueueQuery constructor",
)

// GetDriverQueueQuery retrieves the live orders assigned to one driver,
// oldest first, forming the driver's work queue.
type GetDriverQueueQuery struct { //nolint:recvcheck //using for validation
	driverID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetDriverQueueQuery creates a query for a driver's work queue.
// Validates that the driver ID is valid.
func NewGetDriverQueueQuery(driverID kernel.UUID) (GetDriverQueueQuery, error) {
	query := GetDriverQueueQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := query.setDriverID(driverID); err != nil {
		return GetDriverQueueQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q GetDriverQueueQuery) Validate() error {
	return q.guard.Validate(ErrGetDriverQueueQueryIsNotConstructed)
}

// DriverID returns the driver whose queue is requested.
func (q GetDriverQueueQuery) DriverID() kernel.UUID {
	return q.driverID
}

func (q *GetDriverQueueQuery) setDriverID(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}

	q.driverID = driverID
	return nil
}
