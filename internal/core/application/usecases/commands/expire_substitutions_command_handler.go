package commands

import (
	"context"
	"time"

	"afrimercato/internal/core/domain/model/kernel"
	"afrimercato/internal/core/domain/model/order"
	"afrimercato/internal/core/ports"
)

// ExpireSubstitutionsCommandHandler auto-rejects proposals whose deadline
// has passed. Each proposal is handled in its own transaction: one bad
// proposal never stalls the rest of the sweep, and the aggregate's Expire
// guard keeps a sweep that fires twice from double-applying the rejection.
type ExpireSubstitutionsCommandHandler struct {
	uowFactory FulfillmentUoWFactory
	notifier   ports.Notifier
}

// NewExpireSubstitutionsCommandHandler creates a handler for the timeout sweep.
func NewExpireSubstitutionsCommandHandler(uowFactory FulfillmentUoWFactory, notifier ports.Notifier) ExpireSubstitutionsCommandHandler {
	return ExpireSubstitutionsCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle runs the sweep and returns how many proposals it expired. The
// first per-proposal error is returned after the remaining proposals have
// been attempted.
func (h ExpireSubstitutionsCommandHandler) Handle(ctx context.Context, command ExpireSubstitutionsCommand) (int, error) {
	if err := command.Validate(); err != nil {
		return 0, err
	}

	now := time.Now().UTC()

	listUow := h.uowFactory.Create()
	if err := listUow.Begin(ctx); err != nil {
		return 0, err
	}
	expired, err := listUow.ProposalRepository().GetAllExpired(ctx, now)
	_ = listUow.Rollback(ctx)
	if err != nil {
		return 0, err
	}

	var expiredCount int
	var firstErr error
	for _, proposal := range expired {
		fired, err := h.expireOne(ctx, proposal.ID(), now)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		if fired {
			expiredCount++
		}
	}

	return expiredCount, firstErr
}

func (h ExpireSubstitutionsCommandHandler) expireOne(ctx context.Context, proposalID kernel.UUID, now time.Time) (bool, error) {
	var fired bool
	err := retryOnVersionConflict(ctx, func(ctx context.Context) error {
		fired = false
		uow := h.uowFactory.Create()
		if err := uow.Begin(ctx); err != nil {
			return err
		}

		defer func() {
			_ = uow.Rollback(ctx)
		}()

		orderRepo := uow.OrderRepository()
		proposalRepo := uow.ProposalRepository()

		proposal, err := proposalRepo.Get(ctx, proposalID)
		if err != nil {
			return err
		}

		// A customer decision may have landed between the listing and
		// this transaction.
		if !proposal.Expire(now) {
			return nil
		}
		fired = true

		aggregate, err := orderRepo.Get(ctx, proposal.OrderID())
		if err != nil {
			return err
		}

		err = aggregate.ApplySubstitutionRejection(
			proposal.LineItemID(), kernel.RoleSystem, order.NoteAutoRejectedTimeout)
		if err != nil {
			return err
		}

		completed, err := aggregate.TryCompletePicking(kernel.RoleSystem)
		if err != nil {
			return err
		}
		if completed && aggregate.PickerID() != nil {
			workerRepo := uow.WorkerRepository()
			picker, err := workerRepo.Get(ctx, *aggregate.PickerID())
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

		if err := proposalRepo.Update(ctx, proposal); err != nil {
			return err
		}
		if err := orderRepo.Update(ctx, aggregate); err != nil {
			return err
		}

		if err := uow.Commit(ctx); err != nil {
			return err
		}

		h.notifier.Notify(ctx, kernel.RoleCustomer, aggregate.ID(), "SUBSTITUTION_AUTO_REJECTED")
		h.notifier.Notify(ctx, kernel.RolePicker, aggregate.ID(), "SUBSTITUTION_RESOLVED")
		return nil
	})

	return fired, err
}
