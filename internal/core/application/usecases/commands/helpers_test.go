package commands_test

import (
	"testing"
	"time"

	"afrimercato/internal/core/domain/model/kernel"
	"afrimercato/internal/core/domain/model/order"
	"afrimercato/internal/core/domain/model/substitution"
	"afrimercato/internal/core/domain/model/vendor"
	"afrimercato/internal/core/domain/model/worker"

	"github.com/stretchr/testify/require"
)

func newApprovedVendor(t *testing.T) *vendor.Vendor {
	t.Helper()
	v, err := vendor.NewVendor(kernel.NewUUID(), "Mama Nkechi Stores", "groceries")
	require.NoError(t, err)
	require.NoError(t, v.Approve(""))
	return v
}

func newTestItem(t *testing.T, name string, price int64) *order.LineItem {
	t.Helper()
	item, err := order.NewLineItem(
		kernel.NewUUID(), kernel.NewUUID(), name, 1, "piece", kernel.NewMoney(price))
	require.NoError(t, err)
	return item
}

func newPlacedOrder(t *testing.T, items ...*order.LineItem) *order.Order {
	t.Helper()
	if len(items) == 0 {
		items = []*order.LineItem{newTestItem(t, "Basmati Rice 5kg", 9500)}
	}
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), items)
	require.NoError(t, err)
	return o
}

// newPickingOrder drives an order to picking under the given picker.
func newPickingOrder(t *testing.T, pickerID kernel.UUID, items ...*order.LineItem) *order.Order {
	t.Helper()
	o := newPlacedOrder(t, items...)
	require.NoError(t, o.AcceptByVendor(""))
	require.NoError(t, o.AssignPicker(pickerID))
	require.NoError(t, o.StartPicking(pickerID))
	return o
}

func newBookedPicker(t *testing.T, o *order.Order) *worker.Worker {
	t.Helper()
	require.NotNil(t, o.PickerID())
	w, err := worker.RestoreWorker(
		*o.PickerID(), "Tunde", worker.KindPicker, ptr(o.VendorID()), "",
		worker.AvailabilityBusy, ptr(o.ID()), time.Now().UTC())
	require.NoError(t, err)
	return w
}

func newOpenProposal(t *testing.T, o *order.Order, itemID kernel.UUID, alternatives ...substitution.Alternative) *substitution.Proposal {
	t.Helper()
	item, err := o.Item(itemID)
	require.NoError(t, err)
	p, err := substitution.NewProposal(
		kernel.NewUUID(), o.ID(), itemID, item.ProductID(),
		substitution.IssueTypeOutOfStock, alternatives,
		time.Now().UTC().Add(10*time.Minute))
	require.NoError(t, err)
	return p
}

func ptr[T any](v T) *T {
	return &v
}
