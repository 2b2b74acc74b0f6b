package commands

import (
	"context"

	"afrimercato/internal/core/domain/model/kernel"
	"afrimercato/internal/core/ports"
)

// PickItemCommandHandler marks a line item picked. When that resolves the
// last open item, the order moves to picked-complete and the picker is
// released back into the idle pool.
type PickItemCommandHandler struct {
	uowFactory DispatchUoWFactory
	notifier   ports.Notifier
}

// NewPickItemCommandHandler creates a handler for the pick-item command.
func NewPickItemCommandHandler(uowFactory DispatchUoWFactory, notifier ports.Notifier) PickItemCommandHandler {
	return PickItemCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the pick. Returns order.ErrItemStateConflict when the
// item is not unpicked, order.ErrActorMismatch for the wrong picker.
func (h PickItemCommandHandler) Handle(ctx context.Context, command PickItemCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	return retryOnVersionConflict(ctx, func(ctx context.Context) error {
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

		if err := aggregate.PickItem(command.PickerID(), command.ItemID()); err != nil {
			return err
		}

		completed, err := aggregate.TryCompletePicking(kernel.RolePicker)
		if err != nil {
			return err
		}

		if completed {
			picker, err := workerRepo.Get(ctx, command.PickerID())
			if err != nil {
				return err
			}
			if err := picker.Release(aggregate.ID()); err != nil {
				return err
			}
			if err := workerRepo.Update(ctx, picker); err != nil {
				return err
			}
		}

		if err := orderRepo.Update(ctx, aggregate); err != nil {
			return err
		}

		if err := uow.Commit(ctx); err != nil {
			return err
		}

		if completed {
			h.notifier.Notify(ctx, kernel.RoleCustomer, aggregate.ID(), "PICKING_COMPLETED")
		}
		return nil
	})
}
