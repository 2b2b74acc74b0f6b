package commands

import (
	"context"
	"errors"

	"afrimercato/internal/core/domain/model/kernel"
	"afrimercato/internal/core/domain/model/order"
	"afrimercato/internal/core/domain/services"
	"afrimercato/internal/core/ports"
)

// AssignPickerCommandHandler books an idle store picker onto a
// vendor-accepted order. Assignment is exclusive: two racing calls cannot
// both succeed, the loser observes the winner's assignment through the
// version conflict and reports the already-booked picker.
type AssignPickerCommandHandler struct {
	uowFactory DispatchUoWFactory
	dispatcher services.Dispatcher
	notifier   ports.Notifier
}

// NewAssignPickerCommandHandler creates a handler for picker dispatch.
func NewAssignPickerCommandHandler(
	uowFactory DispatchUoWFactory,
	dispatcher services.Dispatcher,
	notifier ports.Notifier,
) AssignPickerCommandHandler {
	return AssignPickerCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
		notifier:   notifier,
	}
}

// Handle processes the dispatch command and returns the assigned picker's
// identifier. An order that already holds a picker is a benign collision:
// the existing picker is returned with no error and no state change.
// Returns services.ErrNoPickerAvailable when no candidate is eligible.
func (h AssignPickerCommandHandler) Handle(ctx context.Context, command AssignPickerCommand) (kernel.UUID, error) {
	if err := command.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	var assignedID kernel.UUID
	err := retryOnVersionConflict(ctx, func(ctx context.Context) error {
		uow := h.uowFactory.Create()
		if err := uow.Begin(ctx); err != nil {
			return err
		}

		defer func() {
			_ = uow.Rollback(ctx)
		}()

		orderRepo := uow.OrderRepository()
		workerRepo := uow.WorkerRepository()

		aggregate, err := orderRepo.Get(ctx, command.OrderID())
		if err != nil {
			return err
		}

		candidates, err := workerRepo.GetIdlePickersForVendor(ctx, aggregate.VendorID())
		if err != nil {
			return err
		}

		picked, err := h.dispatcher.DispatchPicker(aggregate, candidates)
		if errors.Is(err, order.ErrPickerAlreadyAssigned) {
			assignedID = *aggregate.PickerID()
			return nil
		}
		if err != nil {
			return err
		}

		if err := orderRepo.Update(ctx, aggregate); err != nil {
			return err
		}
		if err := workerRepo.Update(ctx, picked); err != nil {
			return err
		}

		if err := uow.Commit(ctx); err != nil {
			return err
		}

		assignedID = picked.ID()
		h.notifier.Notify(ctx, kernel.RolePicker, aggregate.ID(), "PICKER_ASSIGNED")
		return nil
	})

	return assignedID, err
}
