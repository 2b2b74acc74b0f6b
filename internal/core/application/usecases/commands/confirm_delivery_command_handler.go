package commands

import (
	"context"

	"afrimercato/internal/core/domain/model/kernel"
	"afrimercato/internal/core/ports"
)

// ConfirmDeliveryCommandHandler completes an order and releases the rider
// back into the idle pool in the same transaction.
type ConfirmDeliveryCommandHandler struct {
	uowFactory DispatchUoWFactory
	notifier   ports.Notifier
}

// NewConfirmDeliveryCommandHandler creates a handler for delivery confirmations.
func NewConfirmDeliveryCommandHandler(uowFactory DispatchUoWFactory, notifier ports.Notifier) ConfirmDeliveryCommandHandler {
	return ConfirmDeliveryCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the confirmation. Returns order.ErrActorMismatch when
// someone other than the assigned rider issues it.
func (h ConfirmDeliveryCommandHandler) Handle(ctx context.Context, command ConfirmDeliveryCommand) error {
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

		if err := aggregate.ConfirmDelivery(command.RiderID()); err != nil {
			return err
		}

		rider, err := workerRepo.Get(ctx, command.RiderID())
		if err != nil {
			return err
		}
		if err := rider.Release(aggregate.ID()); err != nil {
			return err
		}

		if err := orderRepo.Update(ctx, aggregate); err != nil {
			return err
		}
		if err := workerRepo.Update(ctx, rider); err != nil {
			return err
		}

		if err := uow.Commit(ctx); err != nil {
			return err
		}

		h.notifier.Notify(ctx, kernel.RoleCustomer, aggregate.ID(), "ORDER_DELIVERED")
		return nil
	})
}
