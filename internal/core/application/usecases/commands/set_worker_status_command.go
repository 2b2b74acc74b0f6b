package commands

import (
	"errors"

	"afrimercato/internal/core/domain/model/kernel"
	"afrimercato/internal/pkg/guard"
)

var ErrSetWorkerStatusCommandIsNotConstructed = errors.New(
	"SetWorkerStatusCommand must be created via NewSetWorkerStatusCommand constructor",
)

// SetWorkerStatusCommand flips a worker between online and offline. Taking a
// busy worker offline triggers reassignment of their active order.
type SetWorkerStatusCommand struct { //nolint:recvcheck //using for validation
	workerID kernel.UUID
	online   bool

	guard guard.ConstructorGuard
}

// NewSetWorkerStatusCommand creates a command to change a worker's
// availability.
func NewSetWorkerStatusCommand(workerID kernel.UUID, online bool) (SetWorkerStatusCommand, error) {
	cmd := SetWorkerStatusCommand{
		online: online,
		guard:  guard.NewConstructorGuard(),
	}

	if err := cmd.setWorkerID(workerID); err != nil {
		return SetWorkerStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SetWorkerStatusCommand) Validate() error {
	return c.guard.Validate(ErrSetWorkerStatusCommandIsNotConstructed)
}

// WorkerID returns the worker whose availability changes.
func (c SetWorkerStatusCommand) WorkerID() kernel.UUID {
	return c.workerID
}

// Online reports whether the worker is going online or offline.
func (c SetWorkerStatusCommand) Online() bool {
	return c.online
}

func (c *SetWorkerStatusCommand) setWorkerID(workerID kernel.UUID) error {
	if err := workerID.Validate(); err != nil {
		return err
	}

	c.workerID = workerID
	return nil
}
