package commands

import (
	"errors"

	"afrimercato/internal/core/domain/model/kernel"
	"afrimercato/internal/pkg/guard"
)

var ErrRespondToOrderCommandIsNotConstructed = errors.New(
	"RespondToOrderCommand must be created via NewRespondToOrderCommand constructor",
)

// RespondToOrderCommand is the vendor's accept or reject decision on a
// freshly placed order.
type RespondToOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	accept  bool
	note    string

	guard guard.ConstructorGuard
}

// NewRespondToOrderCommand creates a command carrying the vendor's decision.
func NewRespondToOrderCommand(orderID kernel.UUID, accept bool, note string) (RespondToOrderCommand, error) {
	cmd := RespondToOrderCommand{
		accept: accept,
		note:   note,
		guard:  guard.NewConstructorGuard(),
	}

	if err := cmd.setOrderID(orderID); err != nil {
		return RespondToOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RespondToOrderCommand) Validate() error {
	return c.guard.Validate(ErrRespondToOrderCommandIsNotConstructed)
}

// OrderID returns the order being decided.
func (c RespondToOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Accept reports whether the vendor takes the order.
func (c RespondToOrderCommand) Accept() bool {
	return c.accept
}

// Note returns the vendor's optional reason.
func (c RespondToOrderCommand) Note() string {
	return c.note
}

func (c *RespondToOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}
