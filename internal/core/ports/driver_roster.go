package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
)

// Driver is the roster's read model for a delivery driver. Drivers are
// managed by a separate fleet system; orders only reference them by ID.
type Driver struct {
	ID      kernel.UUID
	Name    string
	Phone   string
	Vehicle string
	Rating  float64
}

// DriverRoster defines the lookup contract for the delivery fleet.
type DriverRoster interface {
	// Get retrieves a driver by its unique identifier.
	// Returns ObjectNotFoundError if the driver is not on the roster.
	Get(ctx context.Context, id kernel.UUID) (Driver, error)

	// GetAll retrieves every driver on the roster.
	GetAll(ctx context.Context) ([]Driver, error)
}
