package commands

import (
	"errors"

	"afrimercato/internal/core/domain/model/kernel"
	"afrimercato/internal/pkg/guard"
)

var (
	ErrSuspendVendorCommandIsNotConstructed = errors.New(
		"SuspendVendorCommand must be created via NewSuspendVendorCommand constructor",
	)
	ErrSuspensionReasonIsRequired = errors.New("suspension reason is required")
)

// SuspendVendorCommand withdraws an approved vendor from the marketplace.
// In-flight orders for the vendor continue to completion; only new orders
// are blocked.
type SuspendVendorCommand struct { //nolint:recvcheck //using for validation
	vendorID kernel.UUID
	reason   string

	guard guard.ConstructorGuard
}

// NewSuspendVendorCommand creates a command to suspend an approved vendor.
// A reason is mandatory: suspensions are audited.
func NewSuspendVendorCommand(vendorID kernel.UUID, reason string) (SuspendVendorCommand, error) {
	cmd := SuspendVendorCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setVendorID(vendorID); err != nil {
		return SuspendVendorCommand{}, err
	}
	if reason == "" {
		return SuspendVendorCommand{}, ErrSuspensionReasonIsRequired
	}

	cmd.reason = reason
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SuspendVendorCommand) Validate() error {
	return c.guard.Validate(ErrSuspendVendorCommandIsNotConstructed)
}

// VendorID returns the vendor being suspended.
func (c SuspendVendorCommand) VendorID() kernel.UUID {
	return c.vendorID
}

// Reason returns the audit reason for the suspension.
func (c SuspendVendorCommand) Reason() string {
	return c.reason
}

func (c *SuspendVendorCommand) setVendorID(vendorID kernel.UUID) error {
	if err := vendorID.Validate(); err != nil {
		return err
	}

	c.vendorID = vendorID
	return nil
}
