package services_test

import (
	"testing"

	"afrimercato/internal/core/domain/model/kernel"
	"afrimercato/internal/core/domain/model/order"
	"afrimercato/internal/core/domain/model/product"
	"afrimercato/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCatalogProduct(t *testing.T, name string, price int64) *product.Product {
	t.Helper()
	p, err := product.NewProduct(kernel.NewUUID(), kernel.NewUUID(), name, "piece", kernel.NewMoney(price))
	require.NoError(t, err)
	return p
}

func TestCatalogSnapshotter_Snapshot(t *testing.T) {
	t.Run("freezes current catalog values into line items", func(t *testing.T) {
		rice := newCatalogProduct(t, "Basmati Rice 5kg", 9500)
		oil := newCatalogProduct(t, "Groundnut Oil 1L", 2800)
		lines := []services.CartLine{
			{ProductID: rice.ID(), Quantity: 2},
			{ProductID: oil.ID(), Quantity: 1},
		}

		items, rejected, err := services.NewCatalogSnapshotter().
			Snapshot(lines, []*product.Product{rice, oil})

		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Empty(t, rejected)
		assert.Equal(t, "Basmati Rice 5kg", items[0].Name())
		assert.Equal(t, 2, items[0].Quantity())
		assert.True(t, items[0].UnitPrice().IsEqual(kernel.NewMoney(9500)))
		assert.Equal(t, order.ItemStateUnpicked, items[0].State())
	})

	t.Run("later catalog edits never touch the snapshot", func(t *testing.T) {
		rice := newCatalogProduct(t, "Basmati Rice 5kg", 9500)
		lines := []services.CartLine{{ProductID: rice.ID(), Quantity: 1}}

		items, _, err := services.NewCatalogSnapshotter().
			Snapshot(lines, []*product.Product{rice})
		require.NoError(t, err)
		require.NoError(t, rice.UpdatePrice(kernel.NewMoney(12000)))

		assert.True(t, items[0].UnitPrice().IsEqual(kernel.NewMoney(9500)))
	})

	t.Run("inactive and unknown products are rejected per line", func(t *testing.T) {
		rice := newCatalogProduct(t, "Basmati Rice 5kg", 9500)
		delisted := newCatalogProduct(t, "Delisted", 100)
		delisted.Deactivate()
		unknownID := kernel.NewUUID()
		lines := []services.CartLine{
			{ProductID: rice.ID(), Quantity: 1},
			{ProductID: delisted.ID(), Quantity: 1},
			{ProductID: unknownID, Quantity: 1},
		}

		items, rejected, err := services.NewCatalogSnapshotter().
			Snapshot(lines, []*product.Product{rice, delisted})

		require.NoError(t, err)
		require.Len(t, items, 1)
		require.Len(t, rejected, 2)
		require.ErrorIs(t, rejected[0].Cause, services.ErrProductUnavailable)
		assert.True(t, rejected[1].ProductID.IsEqual(unknownID))
	})

	t.Run("an entirely unavailable cart fails", func(t *testing.T) {
		delisted := newCatalogProduct(t, "Delisted", 100)
		delisted.Deactivate()
		lines := []services.CartLine{{ProductID: delisted.ID(), Quantity: 1}}

		items, rejected, err := services.NewCatalogSnapshotter().
			Snapshot(lines, []*product.Product{delisted})

		require.ErrorIs(t, err, services.ErrEmptySnapshot)
		assert.Empty(t, items)
		require.Len(t, rejected, 1)
	})

	t.Run("a zero quantity line fails the snapshot", func(t *testing.T) {
		rice := newCatalogProduct(t, "Basmati Rice 5kg", 9500)
		lines := []services.CartLine{{ProductID: rice.ID(), Quantity: 0}}

		_, _, err := services.NewCatalogSnapshotter().
			Snapshot(lines, []*product.Product{rice})

		require.Error(t, err)
	})
}
