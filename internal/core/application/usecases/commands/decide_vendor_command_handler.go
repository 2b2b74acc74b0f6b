package commands

import (
	"context"
)

// DecideVendorCommandHandler applies administrative approve/reject decisions
// to pending vendors.
type DecideVendorCommandHandler struct {
	uowFactory VendorUoWFactory
}

// NewDecideVendorCommandHandler creates a handler for vendor decisions.
func NewDecideVendorCommandHandler(uowFactory VendorUoWFactory) DecideVendorCommandHandler {
	return DecideVendorCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the decision command. Loads the pending vendor, applies
// the decision through the aggregate's guard, and persists the result.
// Returns vendor.ErrInvalidState when the vendor has already been decided;
// a decision racing another writer re-reads and reports the settled state.
func (h DecideVendorCommandHandler) Handle(ctx context.Context, command DecideVendorCommand) error {
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

		vendorRepo := uow.VendorRepository()

		aggregate, err := vendorRepo.Get(ctx, command.VendorID())
		if err != nil {
			return err
		}

		switch command.Decision() {
		case VendorDecisionApprove:
			err = aggregate.Approve(command.Note())
		case VendorDecisionReject:
			err = aggregate.Reject(command.Note())
		}
		if err != nil {
			return err
		}

		if err := vendorRepo.Update(ctx, aggregate); err != nil {
			return err
		}

		return uow.Commit(ctx)
	})
}
