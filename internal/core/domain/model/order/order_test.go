package order_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"
)

func mustKey(t *testing.T, productID, unit, name string) kernel.ProductKey {
	t.Helper()
	key, err := kernel.NewProductKey(productID, unit, name)
	require.NoError(t, err)
	return key
}

func mustItem(t *testing.T, key kernel.ProductKey, qty float64) order.Item {
	t.Helper()
	item, err := order.NewItem(key, kernel.QuantityFromFloat(qty))
	require.NoError(t, err)
	return item
}

func mustActor(t *testing.T) kernel.Actor {
	t.Helper()
	actor, err := kernel.NewActor("u-1", "armazem", "Ana")
	require.NoError(t, err)
	return actor
}

func newTestOrder(t *testing.T) *order.Order {
	t.Helper()
	key := mustKey(t, "P-001", "kg", "Tomate")
	o, err := order.NewOrder(
		kernel.NewUUID(),
		"client-1", "contract-1", "location-1",
		time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		"carrier-1",
		[]order.Item{mustItem(t, key, 10)},
	)
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	t.Run("valid order starts in ESPERA", func(t *testing.T) {
		o := newTestOrder(t)

		require.NoError(t, o.Validate())
		assert.Equal(t, order.KindNormal, o.Kind())
		assert.Equal(t, order.StatusEspera, o.Status())
		assert.Equal(t, "client-1", o.ClientID())
		assert.False(t, o.IsArchived())
		assert.True(t, o.IsActive())
		assert.Equal(t, 0, o.Version())
		assert.Nil(t, o.LinkedBatchID())
	})

	t.Run("client is required", func(t *testing.T) {
		key := mustKey(t, "P-001", "kg", "Tomate")
		_, err := order.NewOrder(
			kernel.NewUUID(), "", "", "",
			time.Now(), "",
			[]order.Item{mustItem(t, key, 10)},
		)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("date is required", func(t *testing.T) {
		key := mustKey(t, "P-001", "kg", "Tomate")
		_, err := order.NewOrder(
			kernel.NewUUID(), "client-1", "", "",
			time.Time{}, "",
			[]order.Item{mustItem(t, key, 10)},
		)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("at least one item is required", func(t *testing.T) {
		_, err := order.NewOrder(
			kernel.NewUUID(), "client-1", "", "",
			time.Now(), "",
			nil,
		)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("duplicate product keys are rejected", func(t *testing.T) {
		key := mustKey(t, "P-001", "kg", "Tomate")
		_, err := order.NewOrder(
			kernel.NewUUID(), "client-1", "", "",
			time.Now(), "",
			[]order.Item{mustItem(t, key, 10), mustItem(t, key, 5)},
		)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var o order.Order
		require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})
}

func TestNewBulkBatch(t *testing.T) {
	t.Run("valid batch links sub orders", func(t *testing.T) {
		subA, subB := kernel.NewUUID(), kernel.NewUUID()
		key := mustKey(t, "P-001", "kg", "Tomate")

		batch, err := order.NewBulkBatch(
			kernel.NewUUID(),
			time.Now(),
			[]order.Item{mustItem(t, key, 15)},
			[]kernel.UUID{subA, subB},
		)
		require.NoError(t, err)

		assert.Equal(t, order.KindBulkBatch, batch.Kind())
		assert.Equal(t, order.StatusEspera, batch.Status())
		assert.Empty(t, batch.ClientID())
		assert.Len(t, batch.SubOrderIDs(), 2)
	})

	t.Run("at least one sub order is required", func(t *testing.T) {
		key := mustKey(t, "P-001", "kg", "Tomate")
		_, err := order.NewBulkBatch(
			kernel.NewUUID(),
			time.Now(),
			[]order.Item{mustItem(t, key, 15)},
			nil,
		)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestNewBulkSub(t *testing.T) {
	batchID := kernel.NewUUID()
	key := mustKey(t, "P-001", "kg", "Tomate")

	sub, err := order.NewBulkSub(
		kernel.NewUUID(),
		"client-1", "contract-1", "location-1",
		time.Now(), "carrier-1",
		[]order.Item{mustItem(t, key, 10)},
		batchID,
	)
	require.NoError(t, err)

	assert.Equal(t, order.KindBulkSub, sub.Kind())
	require.NotNil(t, sub.LinkedBatchID())
	assert.True(t, sub.LinkedBatchID().IsEqual(batchID))
}

func TestOrder_ChangeStatus(t *testing.T) {
	t.Run("legal edge moves the order", func(t *testing.T) {
		o := newTestOrder(t)

		require.NoError(t, o.ChangeStatus(order.StatusPrep))
		assert.Equal(t, order.StatusPrep, o.Status())
	})

	t.Run("illegal edge is rejected", func(t *testing.T) {
		o := newTestOrder(t)

		err := o.ChangeStatus(order.StatusEntregue)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Equal(t, order.StatusEspera, o.Status())
	})

	t.Run("archived batch accepts no transitions", func(t *testing.T) {
		batch := newTestBatch(t)
		require.NoError(t, batch.Archive())

		err := batch.ChangeStatus(order.StatusPrep)
		require.ErrorIs(t, err, order.ErrOrderIsArchived)
	})
}

func newTestBatch(t *testing.T) *order.Order {
	t.Helper()
	key := mustKey(t, "P-001", "kg", "Tomate")
	batch, err := order.NewBulkBatch(
		kernel.NewUUID(),
		time.Now(),
		[]order.Item{mustItem(t, key, 15)},
		[]kernel.UUID{kernel.NewUUID()},
	)
	require.NoError(t, err)
	return batch
}

func TestOrder_WarehouseStamps(t *testing.T) {
	o := newTestOrder(t)
	actor := mustActor(t)
	started := time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC)
	closed := started.Add(2 * time.Hour)

	require.NoError(t, o.MarkWarehouseStarted(actor, started))
	require.NoError(t, o.MarkWarehouseClosed(actor, closed))

	require.NotNil(t, o.WarehouseStartedAt())
	assert.Equal(t, started, *o.WarehouseStartedAt())
	assert.Equal(t, "u-1", o.WarehouseStartedBy())
	require.NotNil(t, o.WarehouseClosedAt())
	assert.Equal(t, closed, *o.WarehouseClosedAt())
	assert.Equal(t, "u-1", o.WarehouseClosedBy())
}

func TestOrder_ApplyItemsDraft(t *testing.T) {
	t.Run("updates prepared, purchased and obs for matching keys", func(t *testing.T) {
		key := mustKey(t, "P-001", "kg", "Tomate")
		o := newTestOrder(t)

		draft, err := order.RestoreItem(
			key,
			kernel.QuantityFromFloat(10),
			kernel.QuantityFromFloat(8),
			kernel.QuantityFromFloat(1),
			"caixa danificada",
		)
		require.NoError(t, err)

		require.NoError(t, o.ApplyItemsDraft([]order.Item{draft}))

		got, ok := o.Item(key)
		require.True(t, ok)
		assert.True(t, got.PreparedQty().IsEqual(kernel.QuantityFromFloat(8)))
		assert.True(t, got.PurchasedQty().IsEqual(kernel.QuantityFromFloat(1)))
		assert.Equal(t, "caixa danificada", got.Obs())
		// Requested quantity is fixed at creation.
		assert.True(t, got.Qty().IsEqual(kernel.QuantityFromFloat(10)))
	})

	t.Run("unknown key is rejected", func(t *testing.T) {
		o := newTestOrder(t)
		other := mustKey(t, "P-999", "kg", "Cebola")
		draft := mustItem(t, other, 5)

		err := o.ApplyItemsDraft([]order.Item{draft})
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}

func TestOrder_ApplyPreparedQuantities(t *testing.T) {
	key := mustKey(t, "P-001", "kg", "Tomate")
	o := newTestOrder(t)

	require.NoError(t, o.ApplyPreparedQuantities(map[kernel.ProductKey]kernel.Quantity{
		key: kernel.QuantityFromFloat(7.5),
	}))

	got, ok := o.Item(key)
	require.True(t, ok)
	assert.True(t, got.PreparedQty().IsEqual(kernel.QuantityFromFloat(7.5)))
}

func TestOrder_HasMissingItems(t *testing.T) {
	key := mustKey(t, "P-001", "kg", "Tomate")

	t.Run("short item is missing", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.ApplyPreparedQuantities(map[kernel.ProductKey]kernel.Quantity{
			key: kernel.QuantityFromFloat(9),
		}))
		assert.True(t, o.HasMissingItems())
	})

	t.Run("purchased coverage closes the gap", func(t *testing.T) {
		o := newTestOrder(t)
		draft, err := order.RestoreItem(
			key,
			kernel.QuantityFromFloat(10),
			kernel.QuantityFromFloat(9),
			kernel.QuantityFromFloat(1),
			"",
		)
		require.NoError(t, err)
		require.NoError(t, o.ApplyItemsDraft([]order.Item{draft}))
		assert.False(t, o.HasMissingItems())
	})

	t.Run("fully prepared is not missing", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.ApplyPreparedQuantities(map[kernel.ProductKey]kernel.Quantity{
			key: kernel.QuantityFromFloat(10),
		}))
		assert.False(t, o.HasMissingItems())
	})
}

func TestOrder_Archive(t *testing.T) {
	t.Run("only bulk batches can be archived", func(t *testing.T) {
		o := newTestOrder(t)
		require.ErrorIs(t, o.Archive(), order.ErrNotABulkBatch)
	})

	t.Run("archiving twice fails", func(t *testing.T) {
		batch := newTestBatch(t)
		require.NoError(t, batch.Archive())
		require.ErrorIs(t, batch.Archive(), order.ErrOrderIsArchived)
		assert.False(t, batch.IsActive())
	})
}

func TestRestoreOrder(t *testing.T) {
	t.Run("restores full state", func(t *testing.T) {
		id := kernel.NewUUID()
		batchID := kernel.NewUUID()
		key := mustKey(t, "P-001", "kg", "Tomate")
		item, err := order.RestoreItem(
			key,
			kernel.QuantityFromFloat(10),
			kernel.QuantityFromFloat(8),
			kernel.ZeroQuantity(),
			"",
		)
		require.NoError(t, err)

		closedAt := time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)
		o, err := order.RestoreOrder(order.RestoreOrderParams{
			ID:                id,
			Kind:              order.KindBulkSub,
			Status:            order.StatusAFaturar,
			ClientID:          "client-1",
			Date:              time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
			Items:             []order.Item{item},
			LinkedBatchID:     &batchID,
			WarehouseClosedAt: &closedAt,
			WarehouseClosedBy: "u-1",
			Version:           3,
			CreatedAt:         closedAt.Add(-24 * time.Hour),
			UpdatedAt:         closedAt,
		})
		require.NoError(t, err)

		assert.True(t, o.ID().IsEqual(id))
		assert.Equal(t, order.StatusAFaturar, o.Status())
		assert.Equal(t, 3, o.Version())
		require.NotNil(t, o.LinkedBatchID())
		assert.True(t, o.LinkedBatchID().IsEqual(batchID))
	})

	t.Run("negative version is rejected", func(t *testing.T) {
		_, err := order.RestoreOrder(order.RestoreOrderParams{
			ID:      kernel.NewUUID(),
			Kind:    order.KindNormal,
			Status:  order.StatusEspera,
			Version: -1,
		})
		require.ErrorIs(t, err, errs.ErrVersionIsInvalid)
	})

	t.Run("invalid status is rejected", func(t *testing.T) {
		_, err := order.RestoreOrder(order.RestoreOrderParams{
			ID:     kernel.NewUUID(),
			Kind:   order.KindNormal,
			Status: order.StatusUnknown,
		})
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}
