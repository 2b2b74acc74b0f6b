package commands

import (
	"context"

	"afrimercato/internal/core/domain/model/vendor"
)

// SubmitVendorCommandHandler persists new vendor registrations in pending
// status.
type SubmitVendorCommandHandler struct {
	uowFactory VendorUoWFactory
}

// NewSubmitVendorCommandHandler creates a handler for vendor registration.
func NewSubmitVendorCommandHandler(uowFactory VendorUoWFactory) SubmitVendorCommandHandler {
	return SubmitVendorCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the vendor registration command. Creates the vendor
// aggregate in pending status and persists it within a transaction.
func (h SubmitVendorCommandHandler) Handle(ctx context.Context, command SubmitVendorCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	newVendor, err := vendor.NewVendor(command.VendorID(), command.StoreName(), command.Category())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.VendorRepository().Add(ctx, newVendor); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
