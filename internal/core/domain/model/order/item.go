package order

import (
	"errors"
	"fmt"

	"afrimercato/internal/core/domain/model/kernel"
	"afrimercato/internal/pkg/errs"
)

var (
	// ErrLineItemIsNotConstructed is returned when a LineItem was not created
	// through NewLineItem or RestoreLineItem.
	ErrLineItemIsNotConstructed = errors.New("LineItem must be created via NewLineItem constructor")

	// ErrItemQuantityIsInvalid is returned for non-positive quantities.
	ErrItemQuantityIsInvalid = errors.New("quantity must be greater than 0")

	// ErrItemUnitIsRequired is returned for an empty measurement unit.
	ErrItemUnitIsRequired = errs.NewValueIsRequiredError("unit")

	// ErrItemNameIsRequired is returned for an empty product name.
	ErrItemNameIsRequired = errs.NewValueIsRequiredError("product name")
)

// ItemState is the fulfillment sub-state of a single line item.
type ItemState int

const (
	// ItemStateUnknown represents an invalid or undefined item state.
	ItemStateUnknown ItemState = iota

	// ItemStateUnpicked is the initial sub-state of every snapshotted line.
	ItemStateUnpicked

	// ItemStatePicked means the picker collected the item as ordered.
	ItemStatePicked

	// ItemStateSubstitutionPending means the item is blocked on an open
	// substitution proposal awaiting the customer's decision.
	ItemStateSubstitutionPending

	// ItemStateSubstitutionResolved means the customer approved a substitute;
	// the item carries the replacement product and its price.
	ItemStateSubstitutionResolved

	// ItemStateOutOfStock means the item is explicitly acknowledged as
	// unavailable and excluded from the order total.
	ItemStateOutOfStock
)

func getItemStateStrings() map[ItemState]string {
	return map[ItemState]string{
		ItemStateUnknown:              "Unknown",
		ItemStateUnpicked:             "Unpicked",
		ItemStatePicked:               "Picked",
		ItemStateSubstitutionPending:  "SubstitutionPending",
		ItemStateSubstitutionResolved: "SubstitutionResolved",
		ItemStateOutOfStock:           "OutOfStock",
	}
}

// String returns the canonical state name, or "Unknown" for invalid values.
func (s ItemState) String() string {
	if str, ok := getItemStateStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Validate rejects ItemStateUnknown and out-of-range values.
func (s ItemState) Validate() error {
	if _, ok := getItemStateStrings()[s]; !ok || s == ItemStateUnknown {
		return errs.NewValueIsInvalidErrorWithCause("item state",
			fmt.Errorf("%d is not a valid item state", s))
	}
	return nil
}

// IsResolved reports whether the item no longer blocks picking completion.
// Unpicked and SubstitutionPending items keep the order out of PickedComplete.
func (s ItemState) IsResolved() bool {
	return s == ItemStatePicked || s == ItemStateSubstitutionResolved || s == ItemStateOutOfStock
}

// CountsTowardTotal reports whether the item contributes to the order total.
// Only explicitly acknowledged out-of-stock items are excluded.
func (s ItemState) CountsTowardTotal() bool {
	return s != ItemStateOutOfStock && s != ItemStateUnknown
}

// LineItem is an immutable catalog snapshot of one ordered product plus its
// mutable fulfillment sub-state. The snapshot fields (name, unit, unit price)
// are copied at placement time and never change when the live catalog does;
// only an approved substitution may replace the product and price.
type LineItem struct {
	id        kernel.UUID
	productID kernel.UUID
	name      string
	quantity  int
	unit      string
	unitPrice kernel.Money
	state     ItemState

	// substitutedProductID is set when an approved substitution replaced
	// the original product.
	substitutedProductID *kernel.UUID

	isConstructed bool
}

// NewLineItem creates a line item in the Unpicked sub-state from snapshotted
// catalog values. All snapshot fields are validated.
func NewLineItem(
	id kernel.UUID,
	productID kernel.UUID,
	name string,
	quantity int,
	unit string,
	unitPrice kernel.Money,
) (*LineItem, error) {
	item := &LineItem{
		state:         ItemStateUnpicked,
		isConstructed: true,
	}

	if err := errors.Join(
		item.setID(id),
		item.setProductID(productID),
		item.setName(name),
		item.setQuantity(quantity),
		item.setUnit(unit),
		item.setUnitPrice(unitPrice),
	); err != nil {
		return nil, err
	}

	return item, nil
}

// RestoreLineItem reconstructs a line item from persistence, including its
// current sub-state and any substitution applied to it.
func RestoreLineItem(
	id kernel.UUID,
	productID kernel.UUID,
	name string,
	quantity int,
	unit string,
	unitPrice kernel.Money,
	state ItemState,
	substitutedProductID *kernel.UUID,
) (*LineItem, error) {
	item, err := NewLineItem(id, productID, name, quantity, unit, unitPrice)
	if err != nil {
		return nil, err
	}

	if err = state.Validate(); err != nil {
		return nil, err
	}
	if substitutedProductID != nil {
		if err = substitutedProductID.Validate(); err != nil {
			return nil, err
		}
	}

	item.state = state
	item.substitutedProductID = substitutedProductID
	return item, nil
}

// Validate ensures the line item was created through a constructor.
func (i *LineItem) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrLineItemIsNotConstructed
	}
	return nil
}

// ID returns the line item's unique identifier.
func (i *LineItem) ID() kernel.UUID {
	return i.id
}

// ProductID returns the snapshotted product reference.
func (i *LineItem) ProductID() kernel.UUID {
	return i.productID
}

// Name returns the product name captured at placement time.
func (i *LineItem) Name() string {
	return i.name
}

// Quantity returns the ordered quantity.
func (i *LineItem) Quantity() int {
	return i.quantity
}

// Unit returns the measurement unit captured at placement time.
func (i *LineItem) Unit() string {
	return i.unit
}

// UnitPrice returns the per-unit price. After an approved substitution this is
// the substitute's price.
func (i *LineItem) UnitPrice() kernel.Money {
	return i.unitPrice
}

// State returns the current fulfillment sub-state.
func (i *LineItem) State() ItemState {
	return i.state
}

// SubstitutedProductID returns the replacement product reference, or nil if
// the item was never substituted.
func (i *LineItem) SubstitutedProductID() *kernel.UUID {
	return i.substitutedProductID
}

// LineTotal returns quantity times unit price, regardless of sub-state.
// Callers exclude out-of-stock items when summing an order total.
func (i *LineItem) LineTotal() kernel.Money {
	return i.unitPrice.Multiply(i.quantity)
}

func (i *LineItem) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *LineItem) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return err
	}
	i.productID = productID
	return nil
}

func (i *LineItem) setName(name string) error {
	if name == "" {
		return ErrItemNameIsRequired
	}
	i.name = name
	return nil
}

func (i *LineItem) setQuantity(quantity int) error {
	if quantity <= 0 {
		return ErrItemQuantityIsInvalid
	}
	i.quantity = quantity
	return nil
}

func (i *LineItem) setUnit(unit string) error {
	if unit == "" {
		return ErrItemUnitIsRequired
	}
	i.unit = unit
	return nil
}

func (i *LineItem) setUnitPrice(unitPrice kernel.Money) error {
	if err := unitPrice.Validate(); err != nil {
		return err
	}
	i.unitPrice = unitPrice
	return nil
}
