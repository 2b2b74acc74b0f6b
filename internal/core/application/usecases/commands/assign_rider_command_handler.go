package commands

import (
	"context"
	"errors"

	"afrimercato/internal/core/domain/model/kernel"
	"afrimercato/internal/core/domain/model/order"
	"afrimercato/internal/core/domain/services"
	"afrimercato/internal/core/ports"
)

// AssignRiderCommandHandler books an idle rider onto a packed order. The
// geolocation collaborator narrows the candidate set to riders in the
// delivery area before the selection policy runs.
type AssignRiderCommandHandler struct {
	uowFactory DispatchUoWFactory
	dispatcher services.Dispatcher
	geo        ports.GeoService
	notifier   ports.Notifier
}

// NewAssignRiderCommandHandler creates a handler for rider dispatch.
func NewAssignRiderCommandHandler(
	uowFactory DispatchUoWFactory,
	dispatcher services.Dispatcher,
	geo ports.GeoService,
	notifier ports.Notifier,
) AssignRiderCommandHandler {
	return AssignRiderCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
		geo:        geo,
		notifier:   notifier,
	}
}

// Handle processes the dispatch command and returns the assigned rider's
// identifier. Already-assigned orders report the existing rider with no
// error. Returns services.ErrNoRiderAvailable when no area rider is idle.
func (h AssignRiderCommandHandler) Handle(ctx context.Context, command AssignRiderCommand) (kernel.UUID, error) {
	if err := command.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	candidateIDs, err := h.geo.EligibleRiderIDs(ctx, command.OrderID())
	if err != nil {
		return kernel.UUID{}, err
	}

	var assignedID kernel.UUID
	err = retryOnVersionConflict(ctx, func(ctx context.Context) error {
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

		candidates, err := workerRepo.GetIdleRiders(ctx, candidateIDs)
		if err != nil {
			return err
		}

		picked, err := h.dispatcher.DispatchRider(aggregate, candidates)
		if errors.Is(err, order.ErrRiderAlreadyAssigned) {
			assignedID = *aggregate.RiderID()
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
		h.notifier.Notify(ctx, kernel.RoleRider, aggregate.ID(), "RIDER_ASSIGNED")
		return nil
	})

	return assignedID, err
}
