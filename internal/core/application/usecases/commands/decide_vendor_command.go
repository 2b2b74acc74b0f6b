package commands

import (
	"errors"

	"afrimercato/internal/core/domain/model/kernel"
	"afrimercato/internal/pkg/guard"
)

var (
	ErrDecideVendorCommandIsNotConstructed = errors.New(
		"DecideVendorCommand must be created via NewDecideVendorCommand constructor",
	)
	ErrDecisionIsInvalid = errors.New("decision must be approve or reject")
)

// VendorDecision is the administrator's verdict on a pending vendor.
type VendorDecision string

const (
	// VendorDecisionApprove makes the vendor orderable.
	VendorDecisionApprove VendorDecision = "approve"

	// VendorDecisionReject terminally declines the registration.
	VendorDecisionReject VendorDecision = "reject"
)

// DecideVendorCommand represents an administrative decision on a pending
// vendor registration. Valid only while the vendor is pending; deciding an
// already-decided vendor is an invalid state, not a no-op.
type DecideVendorCommand struct { //nolint:recvcheck //using for validation
	vendorID kernel.UUID
	decision VendorDecision
	note     string

	guard guard.ConstructorGuard
}

// NewDecideVendorCommand creates a command to approve or reject a pending
// vendor. The note is the administrator's reason and may be empty.
func NewDecideVendorCommand(vendorID kernel.UUID, decision VendorDecision, note string) (DecideVendorCommand, error) {
	cmd := DecideVendorCommand{
		note:  note,
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setVendorID(vendorID); err != nil {
		return DecideVendorCommand{}, err
	}
	if decision != VendorDecisionApprove && decision != VendorDecisionReject {
		return DecideVendorCommand{}, ErrDecisionIsInvalid
	}

	cmd.decision = decision
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c DecideVendorCommand) Validate() error {
	return c.guard.Validate(ErrDecideVendorCommandIsNotConstructed)
}

// VendorID returns the vendor being decided.
func (c DecideVendorCommand) VendorID() kernel.UUID {
	return c.vendorID
}

// Decision returns the administrator's verdict.
func (c DecideVendorCommand) Decision() VendorDecision {
	return c.decision
}

// Note returns the administrator's reason.
func (c DecideVendorCommand) Note() string {
	return c.note
}

func (c *DecideVendorCommand) setVendorID(vendorID kernel.UUID) error {
	if err := vendorID.Validate(); err != nil {
		return err
	}

	c.vendorID = vendorID
	return nil
}
