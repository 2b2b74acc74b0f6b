package commands

import (
	"context"
)

// SuspendVendorCommandHandler suspends approved vendors. Their in-flight
// orders are deliberately untouched.
type SuspendVendorCommandHandler struct {
	uowFactory VendorUoWFactory
}

// NewSuspendVendorCommandHandler creates a handler for vendor suspension.
func NewSuspendVendorCommandHandler(uowFactory VendorUoWFactory) SuspendVendorCommandHandler {
	return SuspendVendorCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the suspension command. Returns vendor.ErrInvalidState
// when the vendor is not currently approved.
func (h SuspendVendorCommandHandler) Handle(ctx context.Context, command SuspendVendorCommand) error {
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

		if err := aggregate.Suspend(command.Reason()); err != nil {
			return err
		}

		if err := vendorRepo.Update(ctx, aggregate); err != nil {
			return err
		}

		return uow.Commit(ctx)
	})
}
