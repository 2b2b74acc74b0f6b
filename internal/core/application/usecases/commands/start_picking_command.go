package commands

import (
	"errors"

	"afrimercato/internal/core/domain/model/kernel"
	"afrimercato/internal/pkg/guard"
)

var ErrStartPickingCommandIsNotConstructed = errors.New(
	"StartPickingCommand must be created via NewStartPickingCommand constructor",
)

// StartPickingCommand is the assigned picker's signal that they are in the
// aisles working the order.
type StartPickingCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	pickerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewStartPickingCommand creates a command to move an order into picking.
func NewStartPickingCommand(orderID, pickerID kernel.UUID) (StartPickingCommand, error) {
	cmd := StartPickingCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setPickerID(pickerID),
	); err != nil {
		return StartPickingCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c StartPickingCommand) Validate() error {
	return c.guard.Validate(ErrStartPickingCommandIsNotConstructed)
}

// OrderID returns the order being picked.
func (c StartPickingCommand) OrderID() kernel.UUID {
	return c.orderID
}

// PickerID returns the picker issuing the command.
func (c StartPickingCommand) PickerID() kernel.UUID {
	return c.pickerID
}

func (c *StartPickingCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *StartPickingCommand) setPickerID(pickerID kernel.UUID) error {
	if err := pickerID.Validate(); err != nil {
		return err
	}

	c.pickerID = pickerID
	return nil
}
