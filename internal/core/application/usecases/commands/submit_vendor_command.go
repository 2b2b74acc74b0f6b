package commands

import (
	"errors"

	"afrimercato/internal/core/domain/model/kernel"
	"afrimercato/internal/pkg/guard"
)

var (
	ErrSubmitVendorCommandIsNotConstructed = errors.New(
		"SubmitVendorCommand must be created via NewSubmitVendorCommand constructor",
	)
	ErrStoreNameIsRequired = errors.New("store name is required")
	ErrCategoryIsRequired  = errors.New("category is required")
)

// SubmitVendorCommand represents a vendor registration request. The vendor
// enters the registry as pending and cannot receive orders until an
// administrator approves it.
//
// Example:
//
//	vendorID := kernel.NewUUID()
//	cmd, err := NewSubmitVendorCommand(vendorID, "Mama Nkechi Stores", "groceries")
//	if err != nil {
//	    return fmt.Errorf("invalid vendor data: %w", err)
//	}
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to submit vendor: %w", err)
//	}
type SubmitVendorCommand struct { //nolint:recvcheck //using for validation
	vendorID  kernel.UUID
	storeName string
	category  string

	guard guard.ConstructorGuard
}

// NewSubmitVendorCommand creates a command to register a new vendor.
// Validates that the vendor ID is valid and the store name and category are
// not empty.
func NewSubmitVendorCommand(vendorID kernel.UUID, storeName, category string) (SubmitVendorCommand, error) {
	cmd := SubmitVendorCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setVendorID(vendorID),
		cmd.setStoreName(storeName),
		cmd.setCategory(category),
	); err != nil {
		return SubmitVendorCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SubmitVendorCommand) Validate() error {
	return c.guard.Validate(ErrSubmitVendorCommandIsNotConstructed)
}

// VendorID returns the unique identifier for the new vendor.
func (c SubmitVendorCommand) VendorID() kernel.UUID {
	return c.vendorID
}

// StoreName returns the vendor's storefront name.
func (c SubmitVendorCommand) StoreName() string {
	return c.storeName
}

// Category returns the vendor's product category.
func (c SubmitVendorCommand) Category() string {
	return c.category
}

func (c *SubmitVendorCommand) setVendorID(vendorID kernel.UUID) error {
	if err := vendorID.Validate(); err != nil {
		return err
	}

	c.vendorID = vendorID
	return nil
}

func (c *SubmitVendorCommand) setStoreName(storeName string) error {
	if storeName == "" {
		return ErrStoreNameIsRequired
	}

	c.storeName = storeName
	return nil
}

func (c *SubmitVendorCommand) setCategory(category string) error {
	if category == "" {
		return ErrCategoryIsRequired
	}

	c.category = category
	return nil
}
