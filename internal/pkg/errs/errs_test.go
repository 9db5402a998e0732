package errs_test

import (
	"errors"
	"testing"

	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("orderId", "123")

		assert.Equal(t, "orderId", err.ParamName)
		assert.Equal(t, "123", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: 123", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("database connection failed")
		err := errs.NewObjectNotFoundErrorWithCause("orderId", "123", cause)

		assert.Equal(t, "orderId", err.ParamName)
		assert.Equal(t, "123", err.ID)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: orderId, ID is: 123 (cause: database connection failed)",
			err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("Error with different ID types", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("batchId", 456)
		assert.Equal(t, "object not found: %!s(int=456)", err.Error())
	})
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("NewValueIsInvalidError", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("sku")

		assert.Equal(t, "sku", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: sku", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("NewValueIsInvalidErrorWithCause", func(t *testing.T) {
		cause := errors.New("invalid format")
		err := errs.NewValueIsInvalidErrorWithCause("sku", cause)

		assert.Equal(t, "sku", err.ParamName)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is invalid: sku (cause: invalid format)", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})
}

func TestValueIsOutOfRangeError(t *testing.T) {
	t.Run("NewValueIsOutOfRangeError", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("qty", 150, 0, 120)

		assert.Equal(t, "qty", err.ParamName)
		assert.Equal(t, 150, err.Value)
		assert.Equal(t, 0, err.Min)
		assert.Equal(t, 120, err.Max)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: 150 is qty, min value is 0, max value is 120", err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("NewValueIsOutOfRangeErrorWithCause", func(t *testing.T) {
		cause := errors.New("validation failed")
		err := errs.NewValueIsOutOfRangeErrorWithCause("qty", -5, 0, 100, cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"value is invalid: -5 is qty, min value is 0, max value is 100 (cause: validation failed)",
			err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("sanitize function with newlines", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("text", "hello\nworld", 0, 10)
		assert.Contains(t, err.Error(), "hello world")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestValueIsRequiredError(t *testing.T) {
	t.Run("NewValueIsRequiredError", func(t *testing.T) {
		err := errs.NewValueIsRequiredError("lotNo")

		assert.Equal(t, "lotNo", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is required: lotNo", err.Error())
		assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
	})

	t.Run("NewValueIsRequiredErrorWithCause", func(t *testing.T) {
		cause := errors.New("missing required field")
		err := errs.NewValueIsRequiredErrorWithCause("lotNo", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is required: lotNo (cause: missing required field)", err.Error())
		assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
	})
}

func TestInvalidTransitionError(t *testing.T) {
	t.Run("NewInvalidTransitionError", func(t *testing.T) {
		err := errs.NewInvalidTransitionError("ship", "ORD-20251101-0001", "delivered")

		assert.Equal(t, "ship", err.Operation)
		assert.Equal(t, "ORD-20251101-0001", err.OrderNo)
		assert.Equal(t, "delivered", err.Status)
		require.NoError(t, err.Cause)
		assert.Equal(t,
			"invalid transition: cannot ship order ORD-20251101-0001 in status delivered",
			err.Error())
		assert.Equal(t, errs.ErrInvalidTransition, err.Unwrap())
	})

	t.Run("NewInvalidTransitionErrorWithCause", func(t *testing.T) {
		cause := errors.New("terminal state")
		err := errs.NewInvalidTransitionErrorWithCause("pick", "ORD-1", "new", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"invalid transition: cannot pick order ORD-1 in status new (cause: terminal state)",
			err.Error())
		assert.Equal(t, errs.ErrInvalidTransition, err.Unwrap())
	})
}

func TestConcurrentModificationError(t *testing.T) {
	t.Run("NewConcurrentModificationError", func(t *testing.T) {
		err := errs.NewConcurrentModificationError("batch", "LOT-7")

		assert.Equal(t, "batch", err.ParamName)
		assert.Equal(t, "LOT-7", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "concurrent modification: batch LOT-7", err.Error())
		assert.Equal(t, errs.ErrConcurrentModification, err.Unwrap())
	})

	t.Run("NewConcurrentModificationErrorWithCause", func(t *testing.T) {
		cause := errors.New("stale available_qty")
		err := errs.NewConcurrentModificationErrorWithCause("batch", "LOT-7", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"concurrent modification: param is: batch, ID is: LOT-7 (cause: stale available_qty)",
			err.Error())
		assert.Equal(t, errs.ErrConcurrentModification, err.Unwrap())
	})
}

func TestSentinelErrors(t *testing.T) {
	t.Run("sentinel errors are defined", func(t *testing.T) {
		require.Error(t, errs.ErrObjectNotFound)
		require.Error(t, errs.ErrValueIsInvalid)
		require.Error(t, errs.ErrValueIsOutOfRange)
		require.Error(t, errs.ErrValueIsRequired)
		require.Error(t, errs.ErrInvalidTransition)
		require.Error(t, errs.ErrConcurrentModification)
	})

	t.Run("error messages match expectations", func(t *testing.T) {
		assert.Equal(t, "object not found", errs.ErrObjectNotFound.Error())
		assert.Equal(t, "value is invalid", errs.ErrValueIsInvalid.Error())
		assert.Equal(t, "value is out of range", errs.ErrValueIsOutOfRange.Error())
		assert.Equal(t, "value is required", errs.ErrValueIsRequired.Error())
		assert.Equal(t, "invalid transition", errs.ErrInvalidTransition.Error())
		assert.Equal(t, "concurrent modification", errs.ErrConcurrentModification.Error())
	})
}

func TestErrorsCanBeUnwrapped(t *testing.T) {
	t.Run("errors.Is works with custom errors", func(t *testing.T) {
		objectNotFoundErr := errs.NewObjectNotFoundError("orderId", "123")
		require.ErrorIs(t, objectNotFoundErr, errs.ErrObjectNotFound)

		valueInvalidErr := errs.NewValueIsInvalidError("sku")
		require.ErrorIs(t, valueInvalidErr, errs.ErrValueIsInvalid)

		valueRequiredErr := errs.NewValueIsRequiredError("lotNo")
		require.ErrorIs(t, valueRequiredErr, errs.ErrValueIsRequired)

		invalidTransitionErr := errs.NewInvalidTransitionError("ship", "ORD-1", "cancelled")
		require.ErrorIs(t, invalidTransitionErr, errs.ErrInvalidTransition)

		concurrentErr := errs.NewConcurrentModificationError("batch", "LOT-7")
		require.ErrorIs(t, concurrentErr, errs.ErrConcurrentModification)
	})
}
