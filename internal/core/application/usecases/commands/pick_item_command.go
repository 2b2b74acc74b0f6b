package commands

import (
	"errors"

	"afrimercato/internal/core/domain/model/kernel"
	"afrimercato/internal/pkg/guard"
)

var ErrPickItemCommandIsNotConstructed = errors.New(
	"PickItemCommand must be created via NewPickItemCommand constructor",
)

// PickItemCommand records that the picker put one line item in the basket.
// Picking the last unresolved item completes the picking stage.
type PickItemCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	pickerID kernel.UUID
	itemID   kernel.UUID

	guard guard.ConstructorGuard
}

// NewPickItemCommand creates a command to mark one line item picked.
func NewPickItemCommand(orderID, pickerID, itemID kernel.UUID) (PickItemCommand, error) {
	cmd := PickItemCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setPickerID(pickerID),
		cmd.setItemID(itemID),
	); err != nil {
		return PickItemCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c PickItemCommand) Validate() error {
	return c.guard.Validate(ErrPickItemCommandIsNotConstructed)
}

// OrderID returns the order being picked.
func (c PickItemCommand) OrderID() kernel.UUID {
	return c.orderID
}

// PickerID returns the picker issuing the command.
func (c PickItemCommand) PickerID() kernel.UUID {
	return c.pickerID
}

// ItemID returns the line item going into the basket.
func (c PickItemCommand) ItemID() kernel.UUID {
	return c.itemID
}

func (c *PickItemCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *PickItemCommand) setPickerID(pickerID kernel.UUID) error {
	if err := pickerID.Validate(); err != nil {
		return err
	}

	c.pickerID = pickerID
	return nil
}

func (c *PickItemCommand) setItemID(itemID kernel.UUID) error {
	if err := itemID.Validate(); err != nil {
		return err
	}

	c.itemID = itemID
	return nil
}
