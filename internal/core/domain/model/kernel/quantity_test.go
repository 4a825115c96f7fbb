package kernel_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQuantity(t *testing.T) {
	t.Run("should create valid quantity", func(t *testing.T) {
		qty, err := kernel.NewQuantity(300)

		require.NoError(t, err)
		require.NoError(t, qty.Validate())
		assert.Equal(t, 300, qty.Value())
		assert.Equal(t, "300", qty.String())
	})

	t.Run("should accept minimum value", func(t *testing.T) {
		qty, err := kernel.NewQuantity(1)

		require.NoError(t, err)
		assert.Equal(t, 1, qty.Value())
	})

	t.Run("should fail with zero", func(t *testing.T) {
		_, err := kernel.NewQuantity(0)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "0 is not greater than 0")
	})

	t.Run("should fail with negative value", func(t *testing.T) {
		_, err := kernel.NewQuantity(-50)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestQuantity_Validate(t *testing.T) {
	t.Run("zero value is invalid", func(t *testing.T) {
		var qty kernel.Quantity

		err := qty.Validate()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "Quantity must be created")
	})
}
