package commands

import (
	"errors"

	"afrimercato/internal/core/domain/model/kernel"
	"afrimercato/internal/core/domain/services"
	"afrimercato/internal/pkg/guard"
)

var (
	ErrPlaceOrderCommandIsNotConstructed = errors.New(
		"PlaceOrderCommand must be created via NewPlaceOrderCommand constructor",
	)
	ErrCartIsEmpty = errors.New("cart must contain at least one line")
)

// PlaceOrderCommand represents a checkout confirmation. The handler gates on
// the vendor's approval, snapshots the catalog into immutable line items,
// authorizes payment and creates the order.
//
// Example:
//
//	cmd, err := NewPlaceOrderCommand(kernel.NewUUID(), customerID, vendorID, cartLines)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//	result, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, vendor.ErrVendorNotOrderable) {
//	    // storefront is not accepting orders
//	}
type PlaceOrderCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	customerID kernel.UUID
	vendorID   kernel.UUID
	lines      []services.CartLine

	guard guard.ConstructorGuard
}

// NewPlaceOrderCommand creates a command to place an order for the given
// cart lines against one vendor's storefront.
func NewPlaceOrderCommand(orderID, customerID, vendorID kernel.UUID, lines []services.CartLine) (PlaceOrderCommand, error) {
	cmd := PlaceOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCustomerID(customerID),
		cmd.setVendorID(vendorID),
	); err != nil {
		return PlaceOrderCommand{}, err
	}
	if len(lines) == 0 {
		return PlaceOrderCommand{}, ErrCartIsEmpty
	}

	cmd.lines = lines
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c PlaceOrderCommand) Validate() error {
	return c.guard.Validate(ErrPlaceOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the new order.
func (c PlaceOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CustomerID returns the ordering customer.
func (c PlaceOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// VendorID returns the storefront the order targets.
func (c PlaceOrderCommand) VendorID() kernel.UUID {
	return c.vendorID
}

// Lines returns the requested cart lines.
func (c PlaceOrderCommand) Lines() []services.CartLine {
	return c.lines
}

func (c *PlaceOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *PlaceOrderCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}

	c.customerID = customerID
	return nil
}

func (c *PlaceOrderCommand) setVendorID(vendorID kernel.UUID) error {
	if err := vendorID.Validate(); err != nil {
		return err
	}

	c.vendorID = vendorID
	return nil
}
