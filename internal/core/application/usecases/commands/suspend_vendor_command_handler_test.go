package commands_test

import (
	"testing"

	"afrimercato/internal/core/application/usecases/commands"
	"afrimercato/internal/core/domain/model/kernel"
	"afrimercato/internal/core/domain/model/order"
	"afrimercato/internal/core/domain/model/vendor"
	"afrimercato/internal/core/domain/model/worker"
	"afrimercato/internal/core/domain/services"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Suspending a vendor mid-flight must not touch their active orders: the
// in-transit order still runs to Delivered, while a new placement against
// the suspended storefront is turned away.
func TestSuspendVendorCommandHandler_Handle_MidFlightOrderStillDelivers(t *testing.T) {
	ctx := t.Context()
	v := newApprovedVendor(t)

	pickerID := kernel.NewUUID()
	riderID := kernel.NewUUID()
	o, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), v.ID(),
		[]*order.LineItem{newTestItem(t, "Golden Penny Semovita 1kg", 1800)})
	require.NoError(t, err)
	require.NoError(t, o.AcceptByVendor(""))
	require.NoError(t, o.AssignPicker(pickerID))
	require.NoError(t, o.StartPicking(pickerID))
	require.NoError(t, o.PickItem(pickerID, o.Items()[0].ID()))
	completed, err := o.TryCompletePicking(kernel.RolePicker)
	require.NoError(t, err)
	require.True(t, completed)
	require.NoError(t, o.AssignRider(riderID))
	require.NoError(t, o.ConfirmPickup(riderID))

	rider, err := worker.NewRider(riderID, "Chidi", "yaba")
	require.NoError(t, err)
	require.NoError(t, rider.Book(o.ID()))

	// Suspend while the order is in transit.
	suspendCmd, err := commands.NewSuspendVendorCommand(v.ID(), "repeated stock complaints")
	require.NoError(t, err)

	vendorRepo := new(MockVendorRepository)
	vendorUoW := new(MockUoW)
	mock.InOrder(
		vendorUoW.On("Begin", ctx).Return(nil).Once(),
		vendorUoW.On("VendorRepository").Return(vendorRepo).Once(),
		vendorRepo.On("Get", mock.Anything, v.ID()).Return(v, nil).Once(),
		vendorRepo.On("Update", mock.Anything, v).Return(nil).Once(),
		vendorUoW.On("Commit", ctx).Return(nil).Once(),
		vendorUoW.On("Rollback", ctx).Return(nil).Once(),
	)
	vendorFactory := new(MockVendorUoWFactory)
	vendorFactory.On("Create").Return(vendorUoW).Once()

	suspendHandler := commands.NewSuspendVendorCommandHandler(vendorFactory)
	require.NoError(t, suspendHandler.Handle(ctx, suspendCmd))
	require.Equal(t, vendor.ApprovalSuspended, v.Status())
	require.False(t, v.IsOrderable())

	// The in-flight order still completes.
	deliverCmd, err := commands.NewConfirmDeliveryCommand(o.ID(), riderID)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	workerRepo := new(MockWorkerRepository)
	dispatchUoW := new(MockUoW)
	mock.InOrder(
		dispatchUoW.On("Begin", ctx).Return(nil).Once(),
		dispatchUoW.On("OrderRepository").Return(orderRepo).Once(),
		dispatchUoW.On("WorkerRepository").Return(workerRepo).Once(),
		orderRepo.On("Get", mock.Anything, o.ID()).Return(o, nil).Once(),
		workerRepo.On("Get", mock.Anything, riderID).Return(rider, nil).Once(),
		orderRepo.On("Update", mock.Anything, o).Return(nil).Once(),
		workerRepo.On("Update", mock.Anything, rider).Return(nil).Once(),
		dispatchUoW.On("Commit", ctx).Return(nil).Once(),
		dispatchUoW.On("Rollback", ctx).Return(nil).Once(),
	)
	dispatchFactory := new(MockDispatchUoWFactory)
	dispatchFactory.On("Create").Return(dispatchUoW).Once()

	notifier := new(MockNotifier)
	notifier.On("Notify", mock.Anything, kernel.RoleCustomer, o.ID(), "ORDER_DELIVERED").Once()

	deliverHandler := commands.NewConfirmDeliveryCommandHandler(dispatchFactory, notifier)
	require.NoError(t, deliverHandler.Handle(ctx, deliverCmd))
	require.Equal(t, order.StatusDelivered, o.Status())
	require.True(t, rider.IsIdle())

	// A fresh placement against the suspended storefront is refused.
	placeCmd, err := commands.NewPlaceOrderCommand(
		kernel.NewUUID(), kernel.NewUUID(), v.ID(),
		[]services.CartLine{{ProductID: kernel.NewUUID(), Quantity: 1}})
	require.NoError(t, err)

	placementVendorRepo := new(MockVendorRepository)
	placementUoW := new(MockUoW)
	mock.InOrder(
		placementUoW.On("Begin", ctx).Return(nil).Once(),
		placementUoW.On("VendorRepository").Return(placementVendorRepo).Once(),
		placementVendorRepo.On("Get", mock.Anything, v.ID()).Return(v, nil).Once(),
		placementUoW.On("Rollback", ctx).Return(nil).Once(),
	)
	placementFactory := new(MockPlacementUoWFactory)
	placementFactory.On("Create").Return(placementUoW).Once()

	placeHandler := commands.NewPlaceOrderCommandHandler(
		placementFactory, services.NewCatalogSnapshotter(), new(MockPaymentGateway), new(MockNotifier))
	_, err = placeHandler.Handle(ctx, placeCmd)
	require.ErrorIs(t, err, vendor.ErrVendorNotOrderable)

	vendorRepo.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
	notifier.AssertExpectations(t)
	placementUoW.AssertExpectations(t)
}
