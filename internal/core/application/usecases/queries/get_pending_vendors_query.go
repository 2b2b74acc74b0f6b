package queries

import (
	"errors"
	"time"

	"afrimercato/internal/core/domain/model/kernel"
	"afrimercato/internal/pkg/guard"
)

var (
	ErrGetPendingVendorsQueryIsNotConstructed = errors.New(
		"GetPendingVendorsQuery must be created via NewGetPendingVendorsQuery constructor",
	)
)

// GetPendingVendorsQuery retrieves vendors awaiting an approval decision,
// for the admin review queue.
type GetPendingVendorsQuery struct {
	guard guard.ConstructorGuard
}

// NewGetPendingVendorsQuery creates a query for the vendor review queue.
func NewGetPendingVendorsQuery() GetPendingVendorsQuery {
	return GetPendingVendorsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetPendingVendorsQuery) Validate() error {
	return q.guard.Validate(ErrGetPendingVendorsQueryIsNotConstructed)
}

// GetPendingVendorsQueryResponse is one row of the vendor review queue.
type GetPendingVendorsQueryResponse struct {
	ID        kernel.UUID
	StoreName string
	Category  string
	CreatedAt time.Time
}
