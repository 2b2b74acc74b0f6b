package queries

import (
	"context"

	"afrimercato/internal/core/domain/model/kernel"
	"afrimercato/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetActiveOrdersQueryHandler reads all non-terminal orders from the
// database.
type GetActiveOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetActiveOrdersQueryHandler creates a handler for active-order queries.
func NewGetActiveOrdersQueryHandler(db *gorm.DB) GetActiveOrdersQueryHandler {
	return GetActiveOrdersQueryHandler{db: db}
}

// Handle executes the query. Results are sorted by order ID for consistent
// output.
func (h GetActiveOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetActiveOrdersQuery,
) ([]GetActiveOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetActiveOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			vendor_id,
			status,
			picker_id,
			rider_id
		FROM orders
		WHERE status NOT IN (?, ?, ?)
		ORDER BY id
	`, int(order.StatusVendorRejected), int(order.StatusDelivered), int(order.StatusCancelled)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetActiveOrdersQueryResponse
		var id, vendorID uuid.UUID
		var pickerID, riderID *uuid.UUID
		var status int

		err = rows.Scan(
			&id,
			&vendorID,
			&status,
			&pickerID,
			&riderID,
		)
		if err != nil {
			return nil, err
		}

		if err = assignUUID(&resp.ID, id); err != nil {
			return nil, err
		}
		if err = assignUUID(&resp.VendorID, vendorID); err != nil {
			return nil, err
		}
		if resp.PickerID, err = optionalUUID(pickerID); err != nil {
			return nil, err
		}
		if resp.RiderID, err = optionalUUID(riderID); err != nil {
			return nil, err
		}

		resp.Status = order.Status(status).String()
		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}

// optionalUUID converts a nullable raw UUID into the domain representation.
func optionalUUID(src *uuid.UUID) (*kernel.UUID, error) {
	if src == nil {
		return nil, nil
	}
	converted, err := kernel.UUIDFromBytes((*src)[:])
	if err != nil {
		return nil, err
	}
	return &converted, nil
}
