// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yomira-press/internal/platform/apperr"
)

/*
TestAppError_WithCause verifies that a cloned sentinel still matches with errors.Is
and keeps its cause reachable.
*/
func TestAppError_WithCause(t *testing.T) {
	sentinel := apperr.BadGateway("Upstream unavailable")
	cause := errors.New("connection refused")

	err := sentinel.WithCause(cause)

	assert.True(t, errors.Is(err, sentinel))
	assert.True(t, errors.Is(err, cause))
	assert.Nil(t, sentinel.Cause, "sentinel must not be mutated")

	// A second derivation still points at the original sentinel
	again := err.WithCause(errors.New("timeout"))
	assert.True(t, errors.Is(again, sentinel))

	// Wrapped with fmt.Errorf, the chain still resolves
	wrapped := fmt.Errorf("import: %w", err)
	assert.True(t, errors.Is(wrapped, sentinel))

	ae := apperr.As(wrapped)
	require.NotNil(t, ae)
	assert.Equal(t, http.StatusBadGateway, ae.HTTPStatus)
	assert.Equal(t, "BAD_GATEWAY", ae.Code)
}

/*
TestAppError_DistinctSentinels ensures two different sentinels never match each other.
*/
func TestAppError_DistinctSentinels(t *testing.T) {
	first := apperr.Unprocessable("first")
	second := apperr.Unprocessable("second")

	assert.False(t, errors.Is(first, second))
	assert.False(t, errors.Is(first.WithCause(nil), second))
}

/*
TestConstructors checks the status code mapping of each constructor.
*/
func TestConstructors(t *testing.T) {
	tests := []struct {
		name   string
		err    *apperr.AppError
		status int
	}{
		{"not_found", apperr.NotFound("Comic"), http.StatusNotFound},
		{"unauthorized", apperr.Unauthorized("x"), http.StatusUnauthorized},
		{"forbidden", apperr.Forbidden("x"), http.StatusForbidden},
		{"conflict", apperr.Conflict("x"), http.StatusConflict},
		{"validation", apperr.ValidationError("x"), http.StatusBadRequest},
		{"rate_limited", apperr.RateLimited(5), http.StatusTooManyRequests},
		{"unprocessable", apperr.Unprocessable("x"), http.StatusUnprocessableEntity},
		{"internal", apperr.Internal(errors.New("x")), http.StatusInternalServerError},
		{"bad_gateway", apperr.BadGateway("x"), http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.HTTPStatus)
		})
	}

	assert.Equal(t, "Comic not found", apperr.NotFound("Comic").Error())
}
