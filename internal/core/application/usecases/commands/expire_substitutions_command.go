package commands

import (
	"errors"

	"afrimercato/internal/pkg/guard"
)

var ErrExpireSubstitutionsCommandIsNotConstructed = errors.New(
	"ExpireSubstitutionsCommand must be created via NewExpireSubstitutionsCommand constructor",
)

// ExpireSubstitutionsCommand triggers the timeout sweep over open
// substitution proposals. Proposals past their deadline auto-reject so
// fulfillment never blocks indefinitely on a silent customer.
//
// Example:
//
//	cmd := NewExpireSubstitutionsCommand()
//	expired, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    log.Printf("substitution sweep failed: %v", err)
//	}
type ExpireSubstitutionsCommand struct {
	guard guard.ConstructorGuard
}

// NewExpireSubstitutionsCommand creates a command to run the timeout sweep.
func NewExpireSubstitutionsCommand() ExpireSubstitutionsCommand {
	return ExpireSubstitutionsCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c *ExpireSubstitutionsCommand) Validate() error {
	return c.guard.Validate(ErrExpireSubstitutionsCommandIsNotConstructed)
}
