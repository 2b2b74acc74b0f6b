package queries

import (
	"context"
	"database/sql"
	"errors"

	"afrimercato/internal/core/domain/model/kernel"
	"afrimercato/internal/core/domain/model/order"
	"afrimercato/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderQueryHandler reads one order with its items and event log straight
// from the database.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single-order queries.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the query. The line total is summed over the effective
// unit prices, so approved substitutions are already reflected.
func (h GetOrderQueryHandler) Handle(
	ctx context.Context,
	query GetOrderQuery,
) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	var resp GetOrderQueryResponse

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			customer_id,
			vendor_id,
			status
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Row()

	var id, customerID, vendorID uuid.UUID
	var status int
	if err := row.Scan(&id, &customerID, &vendorID, &status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
		}
		return GetOrderQueryResponse{}, err
	}

	if err := assignUUID(&resp.ID, id); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if err := assignUUID(&resp.CustomerID, customerID); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if err := assignUUID(&resp.VendorID, vendorID); err != nil {
		return GetOrderQueryResponse{}, err
	}

	orderStatus := order.Status(status)
	resp.Status = orderStatus.String()
	resp.CustomerLabel = orderStatus.CustomerLabel()
	resp.RiderLabel = orderStatus.RiderLabel()

	items, total, err := h.loadItems(ctx, id)
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	resp.Items = items
	resp.TotalMinor = total

	events, err := h.loadEvents(ctx, id)
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	resp.Events = events

	return resp, nil
}

func (h GetOrderQueryHandler) loadItems(ctx context.Context, orderID uuid.UUID) ([]GetOrderQueryItem, int64, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			product_id,
			name,
			quantity,
			unit,
			unit_price,
			state,
			substituted_product_id
		FROM order_items
		WHERE order_id = ?
		ORDER BY pos
	`, orderID).Rows()
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	items := make([]GetOrderQueryItem, 0)
	var total int64

	for rows.Next() {
		var item GetOrderQueryItem
		var id, productID uuid.UUID
		var substitutedProductID *uuid.UUID
		var state int

		err = rows.Scan(
			&id,
			&productID,
			&item.Name,
			&item.Quantity,
			&item.Unit,
			&item.UnitPriceMinor,
			&state,
			&substitutedProductID,
		)
		if err != nil {
			return nil, 0, err
		}

		if err = assignUUID(&item.ID, id); err != nil {
			return nil, 0, err
		}
		if err = assignUUID(&item.ProductID, productID); err != nil {
			return nil, 0, err
		}
		if substitutedProductID != nil {
			var subID kernel.UUID
			if err = assignUUID(&subID, *substitutedProductID); err != nil {
				return nil, 0, err
			}
			item.SubstitutedProductID = &subID
		}

		itemState := order.ItemState(state)
		item.State = itemState.String()
		if itemState != order.ItemStateOutOfStock {
			total += item.UnitPriceMinor * int64(item.Quantity)
		}

		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func (h GetOrderQueryHandler) loadEvents(ctx context.Context, orderID uuid.UUID) ([]GetOrderQueryEvent, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			at,
			role,
			from_status,
			to_status,
			note
		FROM order_events
		WHERE order_id = ?
		ORDER BY seq
	`, orderID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]GetOrderQueryEvent, 0)
	for rows.Next() {
		var event GetOrderQueryEvent
		var role, fromStatus, toStatus int

		err = rows.Scan(
			&event.At,
			&role,
			&fromStatus,
			&toStatus,
			&event.Note,
		)
		if err != nil {
			return nil, err
		}

		event.Role = kernel.Role(role).String()
		event.From = order.Status(fromStatus).String()
		event.To = order.Status(toStatus).String()
		events = append(events, event)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}

// assignUUID converts a raw database UUID into the domain representation.
func assignUUID(dst *kernel.UUID, src uuid.UUID) error {
	converted, err := kernel.UUIDFromBytes(src[:])
	if err != nil {
		return err
	}
	*dst = converted
	return nil
}
