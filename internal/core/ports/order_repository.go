// Package ports defines repository interfaces for the marketplace domain.
// These interfaces establish contracts between the domain layer and
// infrastructure, enabling dependency inversion and testability.
package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Provides methods for storing, retrieving, and querying order entities
// based on their status and assignment state.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// The order must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns the complete order with its status history and assignment.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllNonTerminal retrieves every order that is still live, i.e. neither
	// delivered nor cancelled. Used by the overdue watchdog.
	GetAllNonTerminal(ctx context.Context) ([]*order.Order, error)
}
