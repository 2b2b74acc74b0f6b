package commands

import (
	"errors"

	"afrimercato/internal/core/domain/model/kernel"
	"afrimercato/internal/pkg/guard"
)

var ErrAssignPickerCommandIsNotConstructed = errors.New(
	"AssignPickerCommand must be created via NewAssignPickerCommand constructor",
)

// AssignPickerCommand triggers picker dispatch for a vendor-accepted order.
//
// Example:
//
//	cmd, _ := NewAssignPickerCommand(orderID)
//	pickerID, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, services.ErrNoPickerAvailable) {
//	    // transient: the dispatch sweep retries later
//	}
type AssignPickerCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewAssignPickerCommand creates a command to dispatch a picker to an order.
func NewAssignPickerCommand(orderID kernel.UUID) (AssignPickerCommand, error) {
	cmd := AssignPickerCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setOrderID(orderID); err != nil {
		return AssignPickerCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignPickerCommand) Validate() error {
	return c.guard.Validate(ErrAssignPickerCommandIsNotConstructed)
}

// OrderID returns the order awaiting a picker.
func (c AssignPickerCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c *AssignPickerCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}
