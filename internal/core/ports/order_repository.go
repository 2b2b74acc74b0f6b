// Package ports defines the repository and collaborator interfaces the
// application layer depends on. These interfaces establish contracts between
// the domain layer and infrastructure, enabling dependency inversion and
// testability.
package ports

import (
	"context"

	"afrimercato/internal/core/domain/model/kernel"
	"afrimercato/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate. The write is
	// conditional on the version the aggregate was loaded with; a concurrent
	// writer surfaces as errs.VersionIsInvalidError, and the caller re-runs
	// the command rather than retrying the write.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier, including
	// line items and the full event log.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllActive retrieves orders that have not reached a terminal status.
	GetAllActive(ctx context.Context) ([]*order.Order, error)

	// GetAllInStatus retrieves orders currently in the given status. The
	// dispatch sweep uses it to find orders waiting for a picker or rider.
	GetAllInStatus(ctx context.Context, status order.Status) ([]*order.Order, error)
}
