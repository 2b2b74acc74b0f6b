// Package geo provides the outbound geolocation adapter. The real service
// maps a delivery address to the riders covering that area; this adapter is
// the seam it plugs into.
package geo

import (
	"context"

	"afrimercato/internal/core/domain/model/kernel"
)

// OpenAreaService places no geographic restriction on rider dispatch. It
// returns an empty candidate list, which the worker repository reads as
// "no area filter".
type OpenAreaService struct{}

// NewOpenAreaService creates a geolocation service without area filtering.
func NewOpenAreaService() *OpenAreaService {
	return &OpenAreaService{}
}

// EligibleRiderIDs returns the riders allowed to serve the order's area.
func (s *OpenAreaService) EligibleRiderIDs(_ context.Context, orderID kernel.UUID) ([]kernel.UUID, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}
	return nil, nil
}
