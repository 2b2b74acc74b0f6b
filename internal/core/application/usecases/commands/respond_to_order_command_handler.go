package commands

import (
	"context"

	"afrimercato/internal/core/domain/model/kernel"
	"afrimercato/internal/core/ports"
)

// RespondToOrderCommandHandler applies the vendor's accept/reject decision
// to a placed order.
type RespondToOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.Notifier
}

// NewRespondToOrderCommandHandler creates a handler for vendor order decisions.
func NewRespondToOrderCommandHandler(uowFactory OrderUoWFactory, notifier ports.Notifier) RespondToOrderCommandHandler {
	return RespondToOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the vendor's decision. Returns order.ErrIllegalTransition
// when the order has already left the placed status. Re-runs the command on
// an optimistic concurrency conflict.
func (h RespondToOrderCommandHandler) Handle(ctx context.Context, command RespondToOrderCommand) error {
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

		eventType := "ORDER_ACCEPTED"
		if command.Accept() {
			err = aggregate.AcceptByVendor(command.Note())
		} else {
			err = aggregate.RejectByVendor(command.Note())
			eventType = "ORDER_REJECTED"
		}
		if err != nil {
			return err
		}

		if err := orderRepo.Update(ctx, aggregate); err != nil {
			return err
		}

		if err := uow.Commit(ctx); err != nil {
			return err
		}

		h.notifier.Notify(ctx, kernel.RoleCustomer, aggregate.ID(), eventType)
		return nil
	})
}
