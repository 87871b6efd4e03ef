package errors

import (
	"context"
	"net/http"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
)

func TestHTTPStatusFromErr(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", NewError("fee missing").Mark(ErrNotFound), http.StatusNotFound},
		{"already exists", NewError("duplicate").Mark(ErrAlreadyExists), http.StatusConflict},
		{"version conflict", NewError("stale").Mark(ErrVersionConflict), http.StatusConflict},
		{"locked", NewError("busy").Mark(ErrLocked), http.StatusConflict},
		{"validation", NewError("bad input").WithHint("Name is required").Mark(ErrValidation), http.StatusBadRequest},
		{"invalid operation", NewError("nope").Mark(ErrInvalidOperation), http.StatusBadRequest},
		{"permission denied", NewError("forbidden").Mark(ErrPermissionDenied), http.StatusForbidden},
		{"configuration", NewError("bad calculator").Mark(ErrConfiguration), http.StatusUnprocessableEntity},
		{"database", WithError(context.Canceled).Mark(ErrDatabase), http.StatusInternalServerError},
		{"unmarked", errors.New("boom"), http.StatusInternalServerError},
		{"wrapped", errors.Wrap(NewError("fee missing").Mark(ErrNotFound), "loading fee"), http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatusFromErr(tt.err))
		})
	}
}

func TestIsHelpers(t *testing.T) {
	configuration := errors.Wrap(
		NewError("weight calculator has unknown unit").
			WithReportableDetails(map[string]any{"unit": "oz"}).
			Mark(ErrConfiguration),
		"computing fee",
	)

	assert.True(t, IsConfiguration(configuration))
	assert.False(t, IsValidation(configuration))
	assert.False(t, IsNotFound(configuration))

	locked := WithError(context.DeadlineExceeded).Mark(ErrLocked)
	assert.True(t, IsLocked(locked))
	assert.True(t, errors.Is(locked, context.DeadlineExceeded))

	assert.True(t, IsNotFound(NewError("x").Mark(ErrNotFound)))
	assert.True(t, IsAlreadyExists(NewError("x").Mark(ErrAlreadyExists)))
	assert.True(t, IsVersionConflict(NewError("x").Mark(ErrVersionConflict)))
	assert.True(t, IsInvalidOperation(NewError("x").Mark(ErrInvalidOperation)))
	assert.True(t, IsPermissionDenied(NewError("x").Mark(ErrPermissionDenied)))
	assert.True(t, IsDatabase(NewError("x").Mark(ErrDatabase)))
	assert.False(t, IsNotFound(nil))
}

func TestInternalErrorMatchesByCode(t *testing.T) {
	err := &InternalError{Code: ErrCodeNotFound, Message: "order not found", Err: context.Canceled}

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrValidation))
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, "not_found: context canceled", err.Error())
	assert.Equal(t, "not_found: order not found", err.DisplayError())
}
