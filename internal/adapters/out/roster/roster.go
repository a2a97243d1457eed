// Package roster provides the fleet directory adapter. Drivers are managed by
// a separate fleet system and change rarely, so the adapter serves a fixed
// in-memory roster instead of hitting a remote service on every lookup.
package roster

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// StaticDriverRoster implements ports.DriverRoster over a fixed set of drivers.
type StaticDriverRoster struct {
	drivers map[kernel.UUID]ports.Driver
}

// NewStaticDriverRoster creates a roster preloaded with the current fleet.
func NewStaticDriverRoster() (*StaticDriverRoster, error) {
	fleet := []struct {
		id      string
		name    string
		phone   string
		vehicle string
		rating  float64
	}{
		{"0d9b7e5e-2c3a-4f6b-9a1d-5e8c7b6a4f30", "Mike Johnson", "+1-555-0101", "Honda Civic - ABC123", 4.9},
		{"6f2a1c8d-9b4e-4a7f-8c3d-1e5b9a7c2d46", "Emma Davis", "+1-555-0102", "Toyota Prius - XYZ789", 4.8},
		{"3c8e5a2f-1d7b-4e9c-a6f4-8b2d5c9e1a73", "Tom Anderson", "+1-555-0103", "Ford Transit - QRS456", 4.7},
		{"9a4d2b7c-5e8f-4c1a-b3d9-7f6e2a8c5b14", "Anna Lee", "+1-555-0104", "Yamaha MT-07 - LMN321", 4.9},
	}

	drivers := make(map[kernel.UUID]ports.Driver, len(fleet))
	for _, d := range fleet {
		id, err := kernel.UUIDFromString(d.id)
		if err != nil {
			return nil, err
		}

		drivers[id] = ports.Driver{
			ID:      id,
			Name:    d.name,
			Phone:   d.phone,
			Vehicle: d.vehicle,
			Rating:  d.rating,
		}
	}

	return &StaticDriverRoster{drivers: drivers}, nil
}

// Get retrieves a driver by its unique identifier.
func (r *StaticDriverRoster) Get(_ context.Context, id kernel.UUID) (ports.Driver, error) {
	if err := id.Validate(); err != nil {
		return ports.Driver{}, err
	}

	driver, ok := r.drivers[id]
	if !ok {
		return ports.Driver{}, errs.NewObjectNotFoundError("driver", id.String())
	}

	return driver, nil
}

// GetAll retrieves every driver on the roster.
func (r *StaticDriverRoster) GetAll(_ context.Context) ([]ports.Driver, error) {
	drivers := make([]ports.Driver, 0, len(r.drivers))
	for _, driver := range r.drivers {
		drivers = append(drivers, driver)
	}

	return drivers, nil
}
