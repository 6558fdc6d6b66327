package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationErrors_JoinsInOrder(t *testing.T) {
	errs := ValidationErrors{
		NewValidationError("name", "name must be at least 3 characters"),
		NewValidationError("age", "age must be at most 120"),
	}

	assert.Equal(t, "name must be at least 3 characters, age must be at most 120", errs.Error())
	assert.Equal(t, []string{"name", "age"}, errs.Fields())
	assert.Equal(t, http.StatusBadRequest, errs.HTTPStatus())
}

func TestValidationErrors_AsThroughWrapping(t *testing.T) {
	var err error = ValidationErrors{NewValidationError("age", "age is required")}
	wrapped := fmt.Errorf("create user: %w", err)

	var target ValidationErrors
	require.True(t, stderrors.As(wrapped, &target))
	assert.Len(t, target, 1)
}

func TestNotFoundError_Message(t *testing.T) {
	assert.Equal(t, "user not found", NewNotFoundError("user", "").Error())
	assert.Equal(t, "no such user", NewNotFoundError("user", "no such user").Error())
	assert.Equal(t, http.StatusNotFound, ErrNotFound.HTTPStatus())
}

func TestInternalError_Unwrap(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := NewInternalError("server error", cause)

	assert.Equal(t, "server error: connection refused", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, http.StatusInternalServerError, err.HTTPStatus())
}

func TestHTTPStatuser(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "validation", err: NewValidationError("id", "invalid id"), want: http.StatusBadRequest},
		{name: "not found", err: NewNotFoundError("user", ""), want: http.StatusNotFound},
		{name: "internal", err: NewInternalError("server error", nil), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s HTTPStatuser
			require.True(t, stderrors.As(tt.err, &s))
			assert.Equal(t, tt.want, s.HTTPStatus())
		})
	}
}
