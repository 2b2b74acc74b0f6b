package commands

import (
	"errors"

	"afrimercato/internal/core/domain/model/kernel"
	"afrimercato/internal/core/domain/model/worker"
	"afrimercato/internal/pkg/guard"
)

var (
	ErrRegisterWorkerCommandIsNotConstructed = errors.New(
		"RegisterWorkerCommand must be created via NewRegisterWorkerCommand constructor",
	)
	ErrWorkerNameIsRequired = errors.New("worker name is required")
	ErrZoneIsRequired       = errors.New("rider registration requires a zone")
)

// RegisterWorkerCommand enrolls a new picker or rider into the worker pool.
// Pickers are affiliated with one vendor's store; riders cover a delivery
// zone.
type RegisterWorkerCommand struct { //nolint:recvcheck //using for validation
	workerID kernel.UUID
	name     string
	kind     worker.Kind
	vendorID *kernel.UUID
	zone     string

	guard guard.ConstructorGuard
}

// NewRegisterPickerCommand creates a command enrolling a store picker.
func NewRegisterPickerCommand(workerID kernel.UUID, name string, vendorID kernel.UUID) (RegisterWorkerCommand, error) {
	cmd := RegisterWorkerCommand{
		kind:  worker.KindPicker,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setWorkerID(workerID),
		cmd.setName(name),
		vendorID.Validate(),
	); err != nil {
		return RegisterWorkerCommand{}, err
	}

	cmd.vendorID = &vendorID
	return cmd, nil
}

// NewRegisterRiderCommand creates a command enrolling a delivery rider.
func NewRegisterRiderCommand(workerID kernel.UUID, name, zone string) (RegisterWorkerCommand, error) {
	cmd := RegisterWorkerCommand{
		kind:  worker.KindRider,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setWorkerID(workerID),
		cmd.setName(name),
	); err != nil {
		return RegisterWorkerCommand{}, err
	}
	if zone == "" {
		return RegisterWorkerCommand{}, ErrZoneIsRequired
	}

	cmd.zone = zone
	return cmd, nil
}

// Validate ensures the command was created through a constructor.
func (c RegisterWorkerCommand) Validate() error {
	return c.guard.Validate(ErrRegisterWorkerCommandIsNotConstructed)
}

// WorkerID returns the unique identifier for the new worker.
func (c RegisterWorkerCommand) WorkerID() kernel.UUID {
	return c.workerID
}

// Name returns the worker's name.
func (c RegisterWorkerCommand) Name() string {
	return c.name
}

// Kind reports whether a picker or a rider is being enrolled.
func (c RegisterWorkerCommand) Kind() worker.Kind {
	return c.kind
}

// VendorID returns the affiliated store for pickers, nil for riders.
func (c RegisterWorkerCommand) VendorID() *kernel.UUID {
	return c.vendorID
}

// Zone returns the delivery zone for riders, empty for pickers.
func (c RegisterWorkerCommand) Zone() string {
	return c.zone
}

func (c *RegisterWorkerCommand) setWorkerID(workerID kernel.UUID) error {
	if err := workerID.Validate(); err != nil {
		return err
	}

	c.workerID = workerID
	return nil
}

func (c *RegisterWorkerCommand) setName(name string) error {
	if name == "" {
		return ErrWorkerNameIsRequired
	}

	c.name = name
	return nil
}
