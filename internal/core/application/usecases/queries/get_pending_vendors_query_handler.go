package queries

import (
	"context"

	"afrimercato/internal/core/domain/model/vendor"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetPendingVendorsQueryHandler reads the vendor review queue from the
// database.
type GetPendingVendorsQueryHandler struct {
	db *gorm.DB
}

// NewGetPendingVendorsQueryHandler creates a handler for review queue
// queries.
func NewGetPendingVendorsQueryHandler(db *gorm.DB) GetPendingVendorsQueryHandler {
	return GetPendingVendorsQueryHandler{db: db}
}

// Handle executes the query. Results come back oldest registration first,
// the order admins review them in.
func (h GetPendingVendorsQueryHandler) Handle(
	ctx context.Context,
	query GetPendingVendorsQuery,
) ([]GetPendingVendorsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	vendors := make([]GetPendingVendorsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			store_name,
			category,
			created_at
		FROM vendors
		WHERE status = ?
		ORDER BY created_at
	`, int(vendor.ApprovalPending)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetPendingVendorsQueryResponse
		var id uuid.UUID

		err = rows.Scan(
			&id,
			&resp.StoreName,
			&resp.Category,
			&resp.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		if err = assignUUID(&resp.ID, id); err != nil {
			return nil, err
		}

		vendors = append(vendors, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return vendors, nil
}
