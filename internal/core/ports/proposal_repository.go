package ports

import (
	"context"
	"time"

	"afrimercato/internal/core/domain/model/kernel"
	"afrimercato/internal/core/domain/model/substitution"
)

// ProposalRepository defines the persistence contract for substitution
// proposal aggregates.
type ProposalRepository interface {
	// Add persists a new proposal aggregate to storage.
	Add(ctx context.Context, aggregate *substitution.Proposal) error

	// Update persists changes to an existing proposal aggregate.
	Update(ctx context.Context, aggregate *substitution.Proposal) error

	// Get retrieves a proposal aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*substitution.Proposal, error)

	// GetOpenByLineItem retrieves the open proposal blocking a line item,
	// or errs.ObjectNotFoundError when none is open.
	GetOpenByLineItem(ctx context.Context, lineItemID kernel.UUID) (*substitution.Proposal, error)

	// GetAllExpired retrieves open proposals whose deadline is at or before
	// the given moment. The timeout sweep auto-rejects them.
	GetAllExpired(ctx context.Context, now time.Time) ([]*substitution.Proposal, error)
}
