package commands

import (
	"context"
	"errors"

	"afrimercato/internal/core/domain/model/kernel"
	"afrimercato/internal/core/domain/model/order"
	"afrimercato/internal/core/domain/model/worker"
	"afrimercato/internal/core/domain/services"
	"afrimercato/internal/core/ports"
)

// SetWorkerStatusCommandHandler applies worker availability changes. When a
// busy worker goes offline mid-stage, their active order is redispatched to
// a replacement and the reassignment is logged on the order. No replacement
// being available is tolerated: the availability change still commits and
// the order waits for the next dispatch attempt.
type SetWorkerStatusCommandHandler struct {
	uowFactory DispatchUoWFactory
	dispatcher services.Dispatcher
	geo        ports.GeoService
	notifier   ports.Notifier
}

// NewSetWorkerStatusCommandHandler creates a handler for worker availability
// changes.
func NewSetWorkerStatusCommandHandler(
	uowFactory DispatchUoWFactory,
	dispatcher services.Dispatcher,
	geo ports.GeoService,
	notifier ports.Notifier,
) SetWorkerStatusCommandHandler {
	return SetWorkerStatusCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
		geo:        geo,
		notifier:   notifier,
	}
}

// Handle processes the availability change.
func (h SetWorkerStatusCommandHandler) Handle(ctx context.Context, command SetWorkerStatusCommand) error {
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

		workerRepo := uow.WorkerRepository()

		aggregate, err := workerRepo.Get(ctx, command.WorkerID())
		if err != nil {
			return err
		}

		if command.Online() {
			aggregate.GoOnline()
			if err := workerRepo.Update(ctx, aggregate); err != nil {
				return err
			}
			return uow.Commit(ctx)
		}

		abandonedOrderID := aggregate.ActiveOrderID()
		aggregate.GoOffline()

		var replacement *worker.Worker
		if abandonedOrderID != nil {
			replacement, err = h.redispatch(ctx, uow, aggregate, *abandonedOrderID)
			if err != nil {
				return err
			}
		}

		if err := workerRepo.Update(ctx, aggregate); err != nil {
			return err
		}
		if replacement != nil {
			if err := workerRepo.Update(ctx, replacement); err != nil {
				return err
			}
		}

		if err := uow.Commit(ctx); err != nil {
			return err
		}

		if replacement != nil && abandonedOrderID != nil {
			role := kernel.RolePicker
			if replacement.Kind() == worker.KindRider {
				role = kernel.RoleRider
			}
			h.notifier.Notify(ctx, role, *abandonedOrderID, "ORDER_REASSIGNED")
		}
		return nil
	})
}

// redispatch moves the offline worker's active order to a replacement.
// Returns a nil worker when no candidate is available.
func (h SetWorkerStatusCommandHandler) redispatch(
	ctx context.Context,
	uow DispatchUoW,
	offline *worker.Worker,
	orderID kernel.UUID,
) (*worker.Worker, error) {
	orderRepo := uow.OrderRepository()
	workerRepo := uow.WorkerRepository()

	aggregate, err := orderRepo.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}

	var replacement *worker.Worker
	switch offline.Kind() {
	case worker.KindRider:
		// A rider already in transit keeps the order; there is nothing
		// to hand over remotely.
		if aggregate.Status() != order.StatusRiderAssigned {
			return nil, nil
		}
		candidateIDs, err := h.geo.EligibleRiderIDs(ctx, orderID)
		if err != nil {
			return nil, err
		}
		candidates, err := workerRepo.GetIdleRiders(ctx, candidateIDs)
		if err != nil {
			return nil, err
		}
		replacement, err = h.dispatcher.RedispatchRider(aggregate, offline, candidates)
		if errors.Is(err, services.ErrNoRiderAvailable) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
	case worker.KindPicker:
		candidates, err := workerRepo.GetIdlePickersForVendor(ctx, aggregate.VendorID())
		if err != nil {
			return nil, err
		}
		replacement, err = h.dispatcher.RedispatchPicker(aggregate, offline, candidates)
		if errors.Is(err, services.ErrNoPickerAvailable) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
	}

	if err := orderRepo.Update(ctx, aggregate); err != nil {
		return nil, err
	}
	return replacement, nil
}
