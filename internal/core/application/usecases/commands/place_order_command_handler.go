package commands

import (
	"context"

	"afrimercato/internal/core/domain/model/kernel"
	"afrimercato/internal/core/domain/model/order"
	"afrimercato/internal/core/domain/services"
	"afrimercato/internal/core/ports"
)

// PlaceOrderResult reports the outcome of a successful placement: the
// payment authorization reference and any cart lines excluded because their
// product was unavailable at snapshot time.
type PlaceOrderResult struct {
	PaymentRef    string
	RejectedLines []services.RejectedLine
}

// PlaceOrderCommandHandler orchestrates order placement: vendor approval
// gate, catalog snapshot, payment authorization and order creation, in that
// order. Payment is authorized before the order exists, so a declined card
// never leaves a dangling order behind.
type PlaceOrderCommandHandler struct {
	uowFactory  PlacementUoWFactory
	snapshotter services.CatalogSnapshotter
	payments    ports.PaymentGateway
	notifier    ports.Notifier
}

// NewPlaceOrderCommandHandler creates a handler for order placement.
func NewPlaceOrderCommandHandler(
	uowFactory PlacementUoWFactory,
	snapshotter services.CatalogSnapshotter,
	payments ports.PaymentGateway,
	notifier ports.Notifier,
) PlaceOrderCommandHandler {
	return PlaceOrderCommandHandler{
		uowFactory:  uowFactory,
		snapshotter: snapshotter,
		payments:    payments,
		notifier:    notifier,
	}
}

// Handle processes the placement command.
//
// Returns vendor.ErrVendorNotOrderable when the storefront is not approved,
// services.ErrEmptySnapshot when no cart line survived the snapshot, and the
// payment gateway's error when authorization is declined. Lines rejected with
// services.ErrProductUnavailable do not fail the placement; they come back in
// the result for the caller to surface.
func (h PlaceOrderCommandHandler) Handle(ctx context.Context, command PlaceOrderCommand) (PlaceOrderResult, error) {
	if err := command.Validate(); err != nil {
		return PlaceOrderResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return PlaceOrderResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	storefront, err := uow.VendorRepository().Get(ctx, command.VendorID())
	if err != nil {
		return PlaceOrderResult{}, err
	}
	if err := storefront.EnsureOrderable(); err != nil {
		return PlaceOrderResult{}, err
	}

	productIDs := make([]kernel.UUID, 0, len(command.Lines()))
	for _, line := range command.Lines() {
		productIDs = append(productIDs, line.ProductID)
	}

	catalog, err := uow.ProductRepository().GetByIDs(ctx, productIDs)
	if err != nil {
		return PlaceOrderResult{}, err
	}

	items, rejected, err := h.snapshotter.Snapshot(command.Lines(), catalog)
	if err != nil {
		return PlaceOrderResult{RejectedLines: rejected}, err
	}

	aggregate, err := order.NewOrder(command.OrderID(), command.CustomerID(), command.VendorID(), items)
	if err != nil {
		return PlaceOrderResult{}, err
	}

	paymentRef, err := h.payments.Authorize(ctx, command.CustomerID(), aggregate.Total())
	if err != nil {
		return PlaceOrderResult{RejectedLines: rejected}, err
	}

	if err := uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return PlaceOrderResult{}, err
	}

	if err := uow.Commit(ctx); err != nil {
		return PlaceOrderResult{}, err
	}

	h.notifier.Notify(ctx, kernel.RoleVendor, aggregate.ID(), "ORDER_PLACED")

	return PlaceOrderResult{
		PaymentRef:    paymentRef,
		RejectedLines: rejected,
	}, nil
}
