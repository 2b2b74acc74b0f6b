package commands

import (
	"errors"

	"afrimercato/internal/core/domain/model/kernel"
	"afrimercato/internal/pkg/guard"
)

var ErrCancelOrderCommandIsNotConstructed = errors.New(
	"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
)

// CancelOrderCommand short-circuits an active order to cancelled. Customers,
// vendors and administrators may cancel; cancellation after a rider is
// assigned requires an explicit override reason and triggers a refund.
type CancelOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	role    kernel.Role
	reason  string

	guard guard.ConstructorGuard
}

// NewCancelOrderCommand creates a command to cancel an order on behalf of
// the given actor role. The reason may be empty for early cancellations;
// the aggregate insists on one once a rider holds the order.
func NewCancelOrderCommand(orderID kernel.UUID, role kernel.Role, reason string) (CancelOrderCommand, error) {
	cmd := CancelOrderCommand{
		reason: reason,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		role.Validate(),
	); err != nil {
		return CancelOrderCommand{}, err
	}

	cmd.role = role
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

// OrderID returns the order being cancelled.
func (c CancelOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Role returns the cancelling actor's role.
func (c CancelOrderCommand) Role() kernel.Role {
	return c.role
}

// Reason returns the cancellation reason.
func (c CancelOrderCommand) Reason() string {
	return c.reason
}

func (c *CancelOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}
