package commands

import (
	"context"

	"afrimercato/internal/core/domain/model/kernel"
	"afrimercato/internal/core/ports"
)

// ConfirmPickupCommandHandler moves a rider-assigned order into transit.
type ConfirmPickupCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.Notifier
}

// NewConfirmPickupCommandHandler creates a handler for pickup confirmations.
func NewConfirmPickupCommandHandler(uowFactory OrderUoWFactory, notifier ports.Notifier) ConfirmPickupCommandHandler {
	return ConfirmPickupCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the confirmation. Returns order.ErrActorMismatch when
// someone other than the assigned rider issues it.
func (h ConfirmPickupCommandHandler) Handle(ctx context.Context, command ConfirmPickupCommand) error {
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

		if err := aggregate.ConfirmPickup(command.RiderID()); err != nil {
			return err
		}

		if err := orderRepo.Update(ctx, aggregate); err != nil {
			return err
		}

		if err := uow.Commit(ctx); err != nil {
			return err
		}

		h.notifier.Notify(ctx, kernel.RoleCustomer, aggregate.ID(), "ORDER_IN_TRANSIT")
		return nil
	})
}
