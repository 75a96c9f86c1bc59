package kernel_test

import (
	"testing"

	"tradein/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrderNumber(t *testing.T) {
	t.Run("should create valid order number", func(t *testing.T) {
		n, err := kernel.NewOrderNumber("TI", 42)

		require.NoError(t, err)
		require.NoError(t, n.Validate())
		assert.Equal(t, "TI", n.Prefix())
		assert.Equal(t, int64(42), n.Value())
	})

	t.Run("should fail with empty prefix", func(t *testing.T) {
		_, err := kernel.NewOrderNumber("", 42)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "prefix")
	})

	t.Run("should fail with separator in prefix", func(t *testing.T) {
		_, err := kernel.NewOrderNumber("TI-X", 42)

		require.Error(t, err)
	})

	t.Run("should fail with non-positive value", func(t *testing.T) {
		_, err := kernel.NewOrderNumber("TI", 0)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "0 is not greater than 0")
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var n kernel.OrderNumber

		require.Error(t, n.Validate())
	})
}

func TestOrderNumber_String(t *testing.T) {
	t.Run("should zero-pad to five digits", func(t *testing.T) {
		n, err := kernel.NewOrderNumber("TI", 42)

		require.NoError(t, err)
		assert.Equal(t, "TI-00042", n.String())
	})

	t.Run("should keep natural width above five digits", func(t *testing.T) {
		n, err := kernel.NewOrderNumber("TI", 123456)

		require.NoError(t, err)
		assert.Equal(t, "TI-123456", n.String())
	})
}

func TestParseOrderNumber(t *testing.T) {
	t.Run("should round-trip the string form", func(t *testing.T) {
		original, err := kernel.NewOrderNumber("TI", 10001)
		require.NoError(t, err)

		parsed, err := kernel.ParseOrderNumber(original.String())

		require.NoError(t, err)
		assert.True(t, parsed.IsEqual(original))
	})

	t.Run("should fail on malformed input", func(t *testing.T) {
		for _, s := range []string{"", "TI", "TI-", "-00042", "TI-abc"} {
			_, err := kernel.ParseOrderNumber(s)
			require.Error(t, err, "input %q", s)
		}
	})
}

func TestRound2(t *testing.T) {
	assert.InDelta(t, 25.00, kernel.Round2(100.0*0.25), 0.0001)
	assert.InDelta(t, 24.99, kernel.Round2(24.994), 0.0001)
	assert.InDelta(t, 25.00, kernel.Round2(24.995), 0.0001)
	assert.InDelta(t, 0.33, kernel.Round2(1.0/3.0), 0.0001)
}
