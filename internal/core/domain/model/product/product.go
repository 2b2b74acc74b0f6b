// Package product holds the live catalog entity that order placement
// snapshots from. Orders never reference live products after placement;
// the snapshot in the order's line items is authoritative from then on.
package product

import (
	"errors"
	"time"

	"afrimercato/internal/core/domain/model/kernel"
	"afrimercato/internal/pkg/errs"
	"afrimercato/internal/pkg/guard"
)

var (
	// ErrProductIsNotConstructed is returned when using an improperly
	// initialized Product.
	ErrProductIsNotConstructed = errors.New("Product must be created via NewProduct constructor")

	// ErrProductNameIsRequired is returned for an empty product name.
	ErrProductNameIsRequired = errs.NewValueIsRequiredError("product name")

	// ErrProductUnitIsRequired is returned for an empty measurement unit.
	ErrProductUnitIsRequired = errs.NewValueIsRequiredError("product unit")
)

// Product is one live catalog entry belonging to a vendor. Price and name
// may change at any time; placed orders are insulated by their snapshot.
type Product struct {
	id        kernel.UUID
	vendorID  kernel.UUID
	name      string
	unit      string
	price     kernel.Money
	active    bool
	updatedAt time.Time

	guard guard.ConstructorGuard
}

// NewProduct creates an active catalog entry.
func NewProduct(id, vendorID kernel.UUID, name, unit string, price kernel.Money) (*Product, error) {
	p := &Product{
		active:    true,
		updatedAt: time.Now().UTC(),
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setID(id),
		p.setVendorID(vendorID),
		p.setName(name),
		p.setUnit(unit),
		p.setPrice(price),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// RestoreProduct reconstructs a catalog entry from persistence.
func RestoreProduct(
	id, vendorID kernel.UUID,
	name, unit string,
	price kernel.Money,
	active bool,
	updatedAt time.Time,
) (*Product, error) {
	p, err := NewProduct(id, vendorID, name, unit, price)
	if err != nil {
		return nil, err
	}

	p.active = active
	p.updatedAt = updatedAt
	return p, nil
}

// Validate ensures the product was created through a constructor.
func (p *Product) Validate() error {
	if p == nil {
		return ErrProductIsNotConstructed
	}
	return p.guard.Validate(ErrProductIsNotConstructed)
}

// ID returns the product's unique identifier.
func (p *Product) ID() kernel.UUID {
	return p.id
}

// VendorID returns the owning vendor.
func (p *Product) VendorID() kernel.UUID {
	return p.vendorID
}

// Name returns the current catalog name.
func (p *Product) Name() string {
	return p.name
}

// Unit returns the measurement unit (e.g. "pcs", "kg").
func (p *Product) Unit() string {
	return p.unit
}

// Price returns the current catalog price.
func (p *Product) Price() kernel.Money {
	return p.price
}

// IsActive reports whether the product may appear on new orders.
func (p *Product) IsActive() bool {
	return p.active
}

// UpdatedAt returns the last catalog mutation time.
func (p *Product) UpdatedAt() time.Time {
	return p.updatedAt
}

// UpdatePrice changes the live catalog price. Placed orders are unaffected.
func (p *Product) UpdatePrice(price kernel.Money) error {
	if err := price.Validate(); err != nil {
		return err
	}
	p.price = price
	p.updatedAt = time.Now().UTC()
	return nil
}

// Deactivate removes the product from new-order eligibility.
func (p *Product) Deactivate() {
	p.active = false
	p.updatedAt = time.Now().UTC()
}

func (p *Product) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Product) setVendorID(vendorID kernel.UUID) error {
	if err := vendorID.Validate(); err != nil {
		return err
	}
	p.vendorID = vendorID
	return nil
}

func (p *Product) setName(name string) error {
	if name == "" {
		return ErrProductNameIsRequired
	}
	p.name = name
	return nil
}

func (p *Product) setUnit(unit string) error {
	if unit == "" {
		return ErrProductUnitIsRequired
	}
	p.unit = unit
	return nil
}

func (p *Product) setPrice(price kernel.Money) error {
	if err := price.Validate(); err != nil {
		return err
	}
	p.price = price
	return nil
}
