package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{Validation("bad input"), http.StatusBadRequest},
		{NotFound("missing"), http.StatusNotFound},
		{Unauthorized("who are you"), http.StatusUnauthorized},
		{Forbidden("not yours"), http.StatusForbidden},
		{Conflict("already taken"), http.StatusConflict},
		{Internal(errors.New("boom")), http.StatusInternalServerError},
		{errors.New("plain error"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.status, HTTPStatus(tt.err), "for %v", tt.err)
	}
}

func TestIsCodeUnwrapsWrappedErrors(t *testing.T) {
	err := fmt.Errorf("outer context: %w", Conflict("inner"))
	assert.True(t, IsCode(err, CodeConflict))
	assert.False(t, IsCode(err, CodeNotFound))
	assert.Equal(t, CodeConflict, CodeOf(err))
}

func TestMessageOfHidesInternalCause(t *testing.T) {
	err := Internal(errors.New("pq: connection refused"))
	assert.NotContains(t, MessageOf(err), "connection refused")
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("root cause")
	err := Wrap(CodeInternal, "something failed", cause)
	assert.True(t, errors.Is(err, cause))
}
