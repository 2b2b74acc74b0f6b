package commands

import (
	"context"
	"errors"
	"log/slog"

	"afrimercato/internal/core/domain/model/kernel"
	"afrimercato/internal/core/domain/model/order"
	"afrimercato/internal/core/domain/model/worker"
	"afrimercato/internal/core/ports"
)

// CancelOrderCommandHandler cancels an active order, frees any booked
// workers and, for late-stage cancellations, asks the payment collaborator
// for a refund. Cancelling an already-cancelled order is a no-op.
type CancelOrderCommandHandler struct {
	uowFactory DispatchUoWFactory
	payments   ports.PaymentGateway
	notifier   ports.Notifier
	logger     *slog.Logger
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
func NewCancelOrderCommandHandler(
	uowFactory DispatchUoWFactory,
	payments ports.PaymentGateway,
	notifier ports.Notifier,
	logger *slog.Logger,
) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		payments:   payments,
		notifier:   notifier,
		logger:     logger.With("component", "cancel_order"),
	}
}

// Handle processes the cancellation. Returns order.ErrIllegalTransition for
// terminal non-cancelled orders and order.ErrOverrideReasonRequired when a
// late-stage cancellation arrives without a reason.
func (h CancelOrderCommandHandler) Handle(ctx context.Context, command CancelOrderCommand) error {
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

		if aggregate.Status() == order.StatusCancelled {
			return nil
		}
		lateStage := aggregate.Status().CancelRequiresOverride()

		if err := aggregate.Cancel(command.Role(), command.Reason()); err != nil {
			return err
		}

		if err := h.releaseWorkers(ctx, uow, aggregate); err != nil {
			return err
		}

		if err := orderRepo.Update(ctx, aggregate); err != nil {
			return err
		}

		if err := uow.Commit(ctx); err != nil {
			return err
		}

		if lateStage {
			// The cancellation is already durable; a refund failure must
			// not turn it into a caller-visible error. Refund retry
			// bookkeeping lives with the payment collaborator.
			if err := h.payments.Refund(ctx, aggregate.ID(), aggregate.Total()); err != nil {
				h.logger.ErrorContext(ctx, "Refund failed after cancellation",
					"order_id", aggregate.ID().String(), "error", err)
			}
		}

		h.notifier.Notify(ctx, kernel.RoleCustomer, aggregate.ID(), "ORDER_CANCELLED")
		h.notifier.Notify(ctx, kernel.RoleVendor, aggregate.ID(), "ORDER_CANCELLED")
		return nil
	})
}

// releaseWorkers frees whichever workers still hold a booking on the order.
// A worker already released, or re-booked onto another order, is skipped.
func (h CancelOrderCommandHandler) releaseWorkers(ctx context.Context, uow DispatchUoW, aggregate *order.Order) error {
	workerRepo := uow.WorkerRepository()

	for _, workerID := range []*kernel.UUID{aggregate.PickerID(), aggregate.RiderID()} {
		if workerID == nil {
			continue
		}

		booked, err := workerRepo.Get(ctx, *workerID)
		if err != nil {
			return err
		}

		err = booked.Release(aggregate.ID())
		if errors.Is(err, worker.ErrWorkerNotBusy) {
			continue
		}
		if err != nil {
			return err
		}

		if err := workerRepo.Update(ctx, booked); err != nil {
			return err
		}
	}

	return nil
}
