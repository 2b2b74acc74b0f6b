package services

import (
	"errors"
	"fmt"

	"afrimercato/internal/core/domain/model/kernel"
	"afrimercato/internal/core/domain/model/order"
	"afrimercato/internal/core/domain/model/product"
)

// ErrProductUnavailable is returned per cart line when the referenced product
// is inactive or missing at snapshot time. The line is excluded; the caller
// decides whether to proceed with the remainder.
var ErrProductUnavailable = errors.New("product unavailable")

// ErrEmptySnapshot is returned when no cart line survived the snapshot.
var ErrEmptySnapshot = errors.New("no orderable lines in cart")

// CartLine is one requested product and quantity at checkout, before any
// catalog values are copied.
type CartLine struct {
	ProductID kernel.UUID
	Quantity  int
}

// RejectedLine reports a cart line excluded from the snapshot and why.
type RejectedLine struct {
	ProductID kernel.UUID
	Cause     error
}

// CatalogSnapshotter copies live catalog values into immutable order line
// items at placement time, so later catalog edits never alter a placed order.
type CatalogSnapshotter struct{}

// NewCatalogSnapshotter creates a CatalogSnapshotter.
func NewCatalogSnapshotter() CatalogSnapshotter {
	return CatalogSnapshotter{}
}

// Snapshot resolves each cart line against the catalog and freezes the
// product's current name, unit and price into a line item. Lines whose
// product is missing or inactive come back in rejected with
// ErrProductUnavailable. ErrEmptySnapshot is returned when nothing survived.
func (s CatalogSnapshotter) Snapshot(lines []CartLine, catalog []*product.Product) ([]*order.LineItem, []RejectedLine, error) {
	byID := make(map[string]*product.Product, len(catalog))
	for _, p := range catalog {
		if err := p.Validate(); err != nil {
			return nil, nil, err
		}
		byID[p.ID().String()] = p
	}

	var (
		items    []*order.LineItem
		rejected []RejectedLine
	)

	for _, line := range lines {
		if err := line.ProductID.Validate(); err != nil {
			return nil, nil, err
		}

		p, ok := byID[line.ProductID.String()]
		if !ok || !p.IsActive() {
			rejected = append(rejected, RejectedLine{
				ProductID: line.ProductID,
				Cause:     fmt.Errorf("%w: %s", ErrProductUnavailable, line.ProductID),
			})
			continue
		}

		item, err := order.NewLineItem(
			kernel.NewUUID(), p.ID(), p.Name(), line.Quantity, p.Unit(), p.Price())
		if err != nil {
			return nil, nil, err
		}
		items = append(items, item)
	}

	if len(items) == 0 {
		return nil, rejected, ErrEmptySnapshot
	}
	return items, rejected, nil
}
