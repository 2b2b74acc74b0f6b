package commands

import (
	"context"
)

// StartPickingCommandHandler moves a picker-assigned order into picking.
type StartPickingCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewStartPickingCommandHandler creates a handler for the start-picking command.
func NewStartPickingCommandHandler(uowFactory OrderUoWFactory) StartPickingCommandHandler {
	return StartPickingCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the command. Returns order.ErrActorMismatch when someone
// other than the assigned picker issues it.
func (h StartPickingCommandHandler) Handle(ctx context.Context, command StartPickingCommand) error {
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

		aggregate, err := orderRepo.Get(ctx, command.OrderID())
		if err != nil {
			return err
		}

		if err := aggregate.StartPicking(command.PickerID()); err != nil {
			return err
		}

		if err := orderRepo.Update(ctx, aggregate); err != nil {
			return err
		}

		return uow.Commit(ctx)
	})
}
