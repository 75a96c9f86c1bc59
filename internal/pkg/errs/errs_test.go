package errs_test

import (
	"errors"
	"testing"

	"tradein/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("orderNumber", "TI-00123")

		assert.Equal(t, "orderNumber", err.ParamName)
		assert.Equal(t, "TI-00123", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: TI-00123", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("database connection failed")
		err := errs.NewObjectNotFoundErrorWithCause("orderNumber", "TI-00123", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: orderNumber, ID is: TI-00123 (cause: database connection failed)",
			err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("NewValueIsInvalidError", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("newPrice")

		assert.Equal(t, "newPrice", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: newPrice", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("NewValueIsInvalidErrorWithCause", func(t *testing.T) {
		cause := errors.New("must be greater than 0")
		err := errs.NewValueIsInvalidErrorWithCause("newPrice", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is invalid: newPrice (cause: must be greater than 0)", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})
}

func TestValueIsRequiredError(t *testing.T) {
	t.Run("NewValueIsRequiredError", func(t *testing.T) {
		err := errs.NewValueIsRequiredError("customerEmail")

		assert.Equal(t, "customerEmail", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is required: customerEmail", err.Error())
		assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
	})
}

func TestConflictError(t *testing.T) {
	t.Run("NewConflictError", func(t *testing.T) {
		err := errs.NewConflictError("re-offer is already resolved")

		assert.Equal(t, "re-offer is already resolved", err.Operation)
		require.NoError(t, err.Cause)
		assert.Equal(t, "conflict: re-offer is already resolved", err.Error())
		assert.Equal(t, errs.ErrConflict, err.Unwrap())
	})

	t.Run("NewConflictErrorWithCause", func(t *testing.T) {
		cause := errors.New("version 3 expected, version 4 found")
		err := errs.NewConflictErrorWithCause("order update", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "conflict: order update (cause: version 3 expected, version 4 found)", err.Error())
		assert.Equal(t, errs.ErrConflict, err.Unwrap())
	})
}

func TestUpstreamUnavailableError(t *testing.T) {
	t.Run("NewUpstreamUnavailableErrorWithCause", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := errs.NewUpstreamUnavailableErrorWithCause("carrier API", cause)

		assert.Equal(t, "carrier API", err.Service)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "upstream unavailable: carrier API (cause: connection refused)", err.Error())
		assert.Equal(t, errs.ErrUpstreamUnavailable, err.Unwrap())
	})
}

func TestInvariantViolationError(t *testing.T) {
	t.Run("NewInvariantViolationError", func(t *testing.T) {
		err := errs.NewInvariantViolationError("customer copy diverged from primary record")

		assert.Equal(t, "customer copy diverged from primary record", err.Message)
		require.NoError(t, err.Cause)
		assert.Equal(t, "invariant violation: customer copy diverged from primary record", err.Error())
		assert.Equal(t, errs.ErrInvariantViolation, err.Unwrap())
	})
}

func TestSentinelErrors(t *testing.T) {
	t.Run("errors.Is classifies constructed errors", func(t *testing.T) {
		assert.ErrorIs(t, errs.NewConflictError("x"), errs.ErrConflict)
		assert.ErrorIs(t, errs.NewObjectNotFoundError("order", "TI-00001"), errs.ErrObjectNotFound)
		assert.ErrorIs(t, errs.NewValueIsInvalidError("x"), errs.ErrValueIsInvalid)
		assert.ErrorIs(t, errs.NewValueIsRequiredError("x"), errs.ErrValueIsRequired)
		assert.ErrorIs(t, errs.NewUpstreamUnavailableError("x"), errs.ErrUpstreamUnavailable)
		assert.ErrorIs(t, errs.NewInvariantViolationError("x"), errs.ErrInvariantViolation)
	})

	t.Run("sanitize strips newlines", func(t *testing.T) {
		err := errs.NewConflictError("first\nsecond")
		assert.Contains(t, err.Error(), "first second")
		assert.NotContains(t, err.Error(), "\n")
	})
}
