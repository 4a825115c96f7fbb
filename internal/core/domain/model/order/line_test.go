package order_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustSKU(t *testing.T, code string) kernel.SKU {
	t.Helper()
	sku, err := kernel.NewSKU(code)
	require.NoError(t, err)
	return sku
}

func mustQty(t *testing.T, value int) kernel.Quantity {
	t.Helper()
	qty, err := kernel.NewQuantity(value)
	require.NoError(t, err)
	return qty
}

func TestNewLine(t *testing.T) {
	t.Run("should create line with zero counters", func(t *testing.T) {
		l, err := order.NewLine(kernel.NewUUID(), mustSKU(t, "500ml"), mustQty(t, 300), 1250)

		require.NoError(t, err)
		require.NoError(t, l.Validate())
		assert.Equal(t, 300, l.OrderedQuantity())
		assert.Equal(t, int64(1250), l.UnitPrice())
		assert.Equal(t, 0, l.AllocatedQuantity())
		assert.Equal(t, 0, l.DispatchedQuantity())
		assert.Equal(t, 0, l.DeliveredQuantity())
		assert.Equal(t, order.LineStatusPending, l.Status())
		assert.Equal(t, 300, l.OutstandingQuantity())
		assert.Equal(t, 0, l.ReservedQuantity())
	})

	t.Run("should fail with invalid id", func(t *testing.T) {
		var id kernel.UUID

		_, err := order.NewLine(id, mustSKU(t, "500ml"), mustQty(t, 300), 0)

		require.Error(t, err)
	})

	t.Run("should fail with negative unit price", func(t *testing.T) {
		_, err := order.NewLine(kernel.NewUUID(), mustSKU(t, "500ml"), mustQty(t, 300), -1)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestRestoreLine(t *testing.T) {
	t.Run("should restore counters", func(t *testing.T) {
		l, err := order.RestoreLine(kernel.NewUUID(), mustSKU(t, "500ml"), 300, 1250, 300, 100, 50, false)

		require.NoError(t, err)
		assert.Equal(t, 300, l.AllocatedQuantity())
		assert.Equal(t, 100, l.DispatchedQuantity())
		assert.Equal(t, 50, l.DeliveredQuantity())
		assert.Equal(t, 200, l.ReservedQuantity())
	})

	t.Run("should reject counters that break the chain", func(t *testing.T) {
		tests := []struct {
			name                             string
			allocated, dispatched, delivered int
		}{
			{"allocated above ordered", 400, 0, 0},
			{"dispatched above allocated", 200, 300, 0},
			{"delivered above dispatched", 200, 100, 150},
			{"negative delivered", 200, 100, -1},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := order.RestoreLine(kernel.NewUUID(), mustSKU(t, "500ml"), 300, 0,
					tt.allocated, tt.dispatched, tt.delivered, false)
				require.Error(t, err)
			})
		}
	})

	t.Run("should reject non-positive ordered quantity", func(t *testing.T) {
		_, err := order.RestoreLine(kernel.NewUUID(), mustSKU(t, "500ml"), 0, 0, 0, 0, 0, false)

		require.Error(t, err)
	})
}

func TestLine_Status(t *testing.T) {
	id := kernel.NewUUID()

	tests := []struct {
		name                             string
		allocated, dispatched, delivered int
		cancelled                        bool
		expected                         order.LineStatus
	}{
		{"zero counters", 0, 0, 0, false, order.LineStatusPending},
		{"partially allocated", 100, 0, 0, false, order.LineStatusPending},
		{"fully allocated", 300, 0, 0, false, order.LineStatusReady},
		{"partially dispatched", 300, 100, 0, false, order.LineStatusReady},
		{"fully dispatched", 300, 300, 0, false, order.LineStatusDispatched},
		{"partially delivered", 300, 300, 100, false, order.LineStatusDispatched},
		{"fully delivered", 300, 300, 300, false, order.LineStatusDelivered},
		{"cancelled wins", 300, 0, 0, true, order.LineStatusCancelled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := order.RestoreLine(id, mustSKU(t, "500ml"), 300, 0,
				tt.allocated, tt.dispatched, tt.delivered, tt.cancelled)

			require.NoError(t, err)
			assert.Equal(t, tt.expected, l.Status())
		})
	}
}

func TestLine_Validate(t *testing.T) {
	t.Run("zero value is invalid", func(t *testing.T) {
		var l order.Line

		require.Error(t, l.Validate())
	})

	t.Run("nil pointer is invalid", func(t *testing.T) {
		var l *order.Line

		require.Error(t, l.Validate())
	})
}
