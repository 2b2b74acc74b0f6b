package ports

import (
	"context"

	"afrimercato/internal/core/domain/model/kernel"
	"afrimercato/internal/core/domain/model/worker"
)

// WorkerRepository defines the persistence contract for picker and rider
// aggregates.
type WorkerRepository interface {
	// Add persists a new worker aggregate to storage.
	Add(ctx context.Context, aggregate *worker.Worker) error

	// Update persists changes to an existing worker aggregate. Booking a
	// worker is written conditionally on the worker still being idle, so two
	// orders never book the same worker.
	Update(ctx context.Context, aggregate *worker.Worker) error

	// Get retrieves a worker aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*worker.Worker, error)

	// GetIdlePickersForVendor retrieves idle pickers affiliated with the
	// given vendor's store.
	GetIdlePickersForVendor(ctx context.Context, vendorID kernel.UUID) ([]*worker.Worker, error)

	// GetIdleRiders retrieves the idle riders among the given candidates.
	// The candidate set comes from the geolocation collaborator; an empty
	// candidate list means no area filter.
	GetIdleRiders(ctx context.Context, candidateIDs []kernel.UUID) ([]*worker.Worker, error)
}
