package commands

import (
	"context"

	"afrimercato/internal/core/domain/model/worker"
)

// RegisterWorkerCommandHandler persists new picker and rider enrollments.
type RegisterWorkerCommandHandler struct {
	uowFactory WorkerUoWFactory
}

// NewRegisterWorkerCommandHandler creates a handler for worker enrollment.
func NewRegisterWorkerCommandHandler(uowFactory WorkerUoWFactory) RegisterWorkerCommandHandler {
	return RegisterWorkerCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the enrollment. New workers start idle.
func (h RegisterWorkerCommandHandler) Handle(ctx context.Context, command RegisterWorkerCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	var (
		aggregate *worker.Worker
		err       error
	)
	if command.Kind() == worker.KindPicker {
		aggregate, err = worker.NewPicker(command.WorkerID(), command.Name(), *command.VendorID())
	} else {
		aggregate, err = worker.NewRider(command.WorkerID(), command.Name(), command.Zone())
	}
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.WorkerRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
