package commands

import (
	"errors"

	"afrimercato/internal/core/domain/model/kernel"
	"afrimercato/internal/pkg/guard"
)

var ErrConfirmPickupCommandIsNotConstructed = errors.New(
	"ConfirmPickupCommand must be created via NewConfirmPickupCommand constructor",
)

// ConfirmPickupCommand is the rider's confirmation that the packed order
// left the store with them.
type ConfirmPickupCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	riderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewConfirmPickupCommand creates a command moving an order into transit.
func NewConfirmPickupCommand(orderID, riderID kernel.UUID) (ConfirmPickupCommand, error) {
	cmd := ConfirmPickupCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setRiderID(riderID),
	); err != nil {
		return ConfirmPickupCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ConfirmPickupCommand) Validate() error {
	return c.guard.Validate(ErrConfirmPickupCommandIsNotConstructed)
}

// OrderID returns the order being picked up.
func (c ConfirmPickupCommand) OrderID() kernel.UUID {
	return c.orderID
}

// RiderID returns the rider issuing the command.
func (c ConfirmPickupCommand) RiderID() kernel.UUID {
	return c.riderID
}

func (c *ConfirmPickupCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ConfirmPickupCommand) setRiderID(riderID kernel.UUID) error {
	if err := riderID.Validate(); err != nil {
		return err
	}

	c.riderID = riderID
	return nil
}
