package errs_test

import (
	"errors"
	"testing"

	"consignment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("without cause", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("orderId", "9f1c")

		assert.Equal(t, "orderId", err.ParamName)
		assert.Equal(t, "9f1c", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: orderId 9f1c", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("with cause", func(t *testing.T) {
		cause := errors.New("database connection failed")
		err := errs.NewObjectNotFoundErrorWithCause("orderId", "9f1c", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "object not found: orderId 9f1c (cause: database connection failed)", err.Error())
	})

	t.Run("non-string id", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("windowId", 456)
		assert.Equal(t, "object not found: windowId 456", err.Error())
	})
}

func TestValueIsInvalidError(t *testing.T) {
	err := errs.NewValueIsInvalidError("windowId")
	assert.Equal(t, "value is invalid: windowId", err.Error())
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)

	withCause := errs.NewValueIsInvalidErrorWithCause("windowId", errors.New("unknown window"))
	assert.Equal(t, "value is invalid: windowId (cause: unknown window)", withCause.Error())
}

func TestValueIsOutOfRangeError(t *testing.T) {
	t.Run("without cause", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("candidates", 5, 2, 3)

		assert.Equal(t, 5, err.Value)
		assert.Equal(t, 2, err.Min)
		assert.Equal(t, 3, err.Max)
		assert.Equal(t, "value is out of range: candidates is 5, min 2, max 3", err.Error())
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("with cause", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeErrorWithCause("maxCapacity", -5, 1, 100, errors.New("config"))
		assert.Equal(t, "value is out of range: maxCapacity is -5, min 1, max 100 (cause: config)", err.Error())
	})

	t.Run("newlines are flattened", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("deliveryNotes", "left at\ndoor", 0, 10)
		assert.Contains(t, err.Error(), "left at door")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestValueIsRequiredError(t *testing.T) {
	err := errs.NewValueIsRequiredError("actor")
	assert.Equal(t, "value is required: actor", err.Error())
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)

	withCause := errs.NewValueIsRequiredErrorWithCause("actor", errors.New("missing bearer subject"))
	assert.Equal(t, "value is required: actor (cause: missing bearer subject)", withCause.Error())
}

func TestVersionIsInvalidError(t *testing.T) {
	err := errs.NewVersionIsInvalidError("version")
	require.NoError(t, err.Cause)
	assert.Equal(t, "version is invalid: version", err.Error())
	assert.ErrorIs(t, err, errs.ErrVersionIsInvalid)

	withCause := errs.NewVersionIsInvalidErrorWithCause("version", errors.New("expected 3, current 4"))
	assert.Equal(t, "version is invalid: version (cause: expected 3, current 4)", withCause.Error())
}

func TestWrappedErrorsStillMatch(t *testing.T) {
	wrapped := errors.Join(errors.New("load order"), errs.NewObjectNotFoundError("orderId", "9f1c"))

	var notFound *errs.ObjectNotFoundError
	require.ErrorAs(t, wrapped, &notFound)
	assert.Equal(t, "9f1c", notFound.ID)
	assert.ErrorIs(t, wrapped, errs.ErrObjectNotFound)
}
