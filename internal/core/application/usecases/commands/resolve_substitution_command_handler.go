package commands

import (
	"context"

	"afrimercato/internal/core/domain/model/kernel"
	"afrimercato/internal/core/ports"
)

// ResolveSubstitutionCommandHandler applies the customer's decision to the
// proposal and the blocked line item in one transaction. Approval rewrites
// the item to the chosen alternative and recomputes the total; rejection
// marks the item out of stock and drops it from the total. Resolving the
// last open item completes picking and releases the picker.
type ResolveSubstitutionCommandHandler struct {
	uowFactory FulfillmentUoWFactory
	notifier   ports.Notifier
}

// NewResolveSubstitutionCommandHandler creates a handler for substitution
// decisions.
func NewResolveSubstitutionCommandHandler(uowFactory FulfillmentUoWFactory, notifier ports.Notifier) ResolveSubstitutionCommandHandler {
	return ResolveSubstitutionCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the decision. Returns
// substitution.ErrProposalAlreadyResolved on a second resolution attempt,
// with no state change.
func (h ResolveSubstitutionCommandHandler) Handle(ctx context.Context, command ResolveSubstitutionCommand) error {
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
		proposalRepo := uow.ProposalRepository()

		proposal, err := proposalRepo.Get(ctx, command.ProposalID())
		if err != nil {
			return err
		}

		aggregate, err := orderRepo.Get(ctx, proposal.OrderID())
		if err != nil {
			return err
		}

		if command.Approve() {
			alt, err := proposal.Approve(*command.AlternativeProductID())
			if err != nil {
				return err
			}
			err = aggregate.ApplySubstitutionApproval(
				proposal.LineItemID(), alt.ProductID(), alt.Name(), alt.UnitPrice())
			if err != nil {
				return err
			}
		} else {
			if err := proposal.Reject(); err != nil {
				return err
			}
			item, err := aggregate.Item(proposal.LineItemID())
			if err != nil {
				return err
			}
			err = aggregate.ApplySubstitutionRejection(
				proposal.LineItemID(), kernel.RoleCustomer, "substitution rejected: "+item.Name())
			if err != nil {
				return err
			}
		}

		completed, err := aggregate.TryCompletePicking(kernel.RoleSystem)
		if err != nil {
			return err
		}
		if completed && aggregate.PickerID() != nil {
			if err := h.releasePicker(ctx, uow, aggregate.ID(), *aggregate.PickerID()); err != nil {
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

		h.notifier.Notify(ctx, kernel.RolePicker, aggregate.ID(), "SUBSTITUTION_RESOLVED")
		if completed {
			h.notifier.Notify(ctx, kernel.RoleCustomer, aggregate.ID(), "PICKING_COMPLETED")
		}
		return nil
	})
}

func (h ResolveSubstitutionCommandHandler) releasePicker(ctx context.Context, uow FulfillmentUoW, orderID, pickerID kernel.UUID) error {
	workerRepo := uow.WorkerRepository()

	picker, err := workerRepo.Get(ctx, pickerID)
	if err != nil {
		return err
	}
	if err := picker.Release(orderID); err != nil {
		return err
	}
	return workerRepo.Update(ctx, picker)
}
