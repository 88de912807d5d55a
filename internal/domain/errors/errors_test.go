package errors

import (
	"net/http"
	"testing"

	"tastelocal/internal/errors"

	"github.com/stretchr/testify/assert"
)

func TestBaseError_WithDetailsMatchesKind(t *testing.T) {
	err := NotFound("menu item item_9 not found")

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrValidationFailed))
	assert.Equal(t, "no business found: menu item item_9 not found", err.Error())
	assert.Equal(t, http.StatusNotFound, err.HTTPCode())

	wrapped := errors.Wrap(Validation("bad day").WithDetails("duplicate day"), "update hours")
	assert.True(t, errors.Is(wrapped, ErrValidationFailed))
}

func TestWriteError(t *testing.T) {
	cause := errors.New("permission denied")
	err := errors.Wrap(NewWriteError(cause, "businesses/b1"), "add order")

	assert.True(t, IsWriteError(err))
	assert.True(t, errors.Is(err, cause))

	var appErr AppError
	assert.True(t, errors.As(err, &appErr))
	assert.Equal(t, "WRITE_FAILED", appErr.ErrorCode())
	assert.Equal(t, "businesses/b1", appErr.Details())
}
