// Package queries contains the read side of the application layer. Query
// handlers bypass the domain aggregates and read the database directly,
// returning flat read models for the HTTP layer.
package queries

import (
	"errors"
	"time"

	"afrimercato/internal/core/domain/model/kernel"
	"afrimercato/internal/pkg/guard"
)

var (
	ErrGetOrderQueryIsNotConstructed = errors.New(
		"GetOrderQuery must be created via NewGetOrderQuery constructor",
	)
)

// GetOrderQuery retrieves one order with its line items and event log.
// The status comes back both as its canonical name and as the wording shown
// to the customer and the rider, which differ for the same underlying state.
type GetOrderQuery struct {
	orderID kernel.UUID
	guard   guard.ConstructorGuard
}

// NewGetOrderQuery creates a query for the given order.
func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// OrderID returns the identifier of the order to fetch.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// GetOrderQueryResponse is the full read model of one order.
type GetOrderQueryResponse struct {
	ID            kernel.UUID
	CustomerID    kernel.UUID
	VendorID      kernel.UUID
	Status        string
	CustomerLabel string
	RiderLabel    string
	TotalMinor    int64
	Items         []GetOrderQueryItem
	Events        []GetOrderQueryEvent
}

// GetOrderQueryItem is the read model of one line item.
type GetOrderQueryItem struct {
	ID                   kernel.UUID
	ProductID            kernel.UUID
	Name                 string
	Quantity             int
	Unit                 string
	UnitPriceMinor       int64
	State                string
	SubstitutedProductID *kernel.UUID
}

// GetOrderQueryEvent is the read model of one event-log entry.
type GetOrderQueryEvent struct {
	At   time.Time
	Role string
	From string
	To   string
	Note string
}
