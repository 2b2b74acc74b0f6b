package commands

import (
	"errors"

	"afrimercato/internal/core/domain/model/kernel"
	"afrimercato/internal/core/domain/model/substitution"
	"afrimercato/internal/pkg/guard"
)

var ErrReportItemIssueCommandIsNotConstructed = errors.New(
	"ReportItemIssueCommand must be created via NewReportItemIssueCommand constructor",
)

// ReportItemIssueCommand is the picker's report that a line item cannot be
// picked as ordered. It opens a substitution proposal and blocks the item
// until the customer decides or the deadline expires.
//
// Example:
//
//	alternatives := []substitution.Alternative{dano, threeCrowns}
//	cmd, err := NewReportItemIssueCommand(
//	    orderID, pickerID, itemID, substitution.IssueTypeOutOfStock, alternatives)
//	if err != nil {
//	    return fmt.Errorf("invalid issue report: %w", err)
//	}
//	proposalID, err := handler.Handle(ctx, cmd)
type ReportItemIssueCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	pickerID     kernel.UUID
	itemID       kernel.UUID
	issueType    substitution.IssueType
	alternatives []substitution.Alternative

	guard guard.ConstructorGuard
}

// NewReportItemIssueCommand creates a command to report an item issue.
// Alternatives may be empty when the picker has nothing to offer.
func NewReportItemIssueCommand(
	orderID, pickerID, itemID kernel.UUID,
	issueType substitution.IssueType,
	alternatives []substitution.Alternative,
) (ReportItemIssueCommand, error) {
	cmd := ReportItemIssueCommand{
		alternatives: alternatives,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setPickerID(pickerID),
		cmd.setItemID(itemID),
		issueType.Validate(),
	); err != nil {
		return ReportItemIssueCommand{}, err
	}

	cmd.issueType = issueType
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ReportItemIssueCommand) Validate() error {
	return c.guard.Validate(ErrReportItemIssueCommandIsNotConstructed)
}

// OrderID returns the order the issue belongs to.
func (c ReportItemIssueCommand) OrderID() kernel.UUID {
	return c.orderID
}

// PickerID returns the reporting picker.
func (c ReportItemIssueCommand) PickerID() kernel.UUID {
	return c.pickerID
}

// ItemID returns the affected line item.
func (c ReportItemIssueCommand) ItemID() kernel.UUID {
	return c.itemID
}

// IssueType returns the issue classification.
func (c ReportItemIssueCommand) IssueType() substitution.IssueType {
	return c.issueType
}

// Alternatives returns the proposed replacement candidates.
func (c ReportItemIssueCommand) Alternatives() []substitution.Alternative {
	return c.alternatives
}

func (c *ReportItemIssueCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ReportItemIssueCommand) setPickerID(pickerID kernel.UUID) error {
	if err := pickerID.Validate(); err != nil {
		return err
	}

	c.pickerID = pickerID
	return nil
}

func (c *ReportItemIssueCommand) setItemID(itemID kernel.UUID) error {
	if err := itemID.Validate(); err != nil {
		return err
	}

	c.itemID = itemID
	return nil
}
