// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package respond_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/yomira-press/internal/platform/apperr"
	"github.com/taibuivan/yomira-press/internal/platform/ctxutil"
	"github.com/taibuivan/yomira-press/internal/platform/respond"
	"github.com/taibuivan/yomira-press/pkg/pagination"
)

/*
TestError_AppError keeps the status and details of a wrapped AppError.
*/
func TestError_AppError(t *testing.T) {
	request := httptest.NewRequest(http.MethodPost, "/", nil)
	request = request.WithContext(ctxutil.WithRequestID(request.Context(), "req-1"))
	recorder := httptest.NewRecorder()

	err := fmt.Errorf("create: %w", apperr.ValidationError("Validation failed",
		apperr.FieldError{Field: "title", Message: "is required"}))
	respond.Error(recorder, request, err)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.JSONEq(t, `{
		"error": "Validation failed",
		"code": "VALIDATION_ERROR",
		"details": [{"field": "title", "message": "is required"}],
		"request_id": "req-1"
	}`, recorder.Body.String())
}

/*
TestError_Unknown hides the cause of an unexpected error.
*/
func TestError_Unknown(t *testing.T) {
	recorder := httptest.NewRecorder()
	respond.Error(recorder, httptest.NewRequest(http.MethodGet, "/", nil), errors.New("pq: relation missing"))

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.NotContains(t, recorder.Body.String(), "relation")
	assert.Contains(t, recorder.Body.String(), "INTERNAL_ERROR")
}

/*
TestPaginated writes the data and meta envelope.
*/
func TestPaginated(t *testing.T) {
	recorder := httptest.NewRecorder()
	respond.Paginated(recorder, []string{"a"}, pagination.NewMeta(2, 1, 3))

	assert.Equal(t, "application/json; charset=utf-8", recorder.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"data":["a"],"meta":{"page":2,"limit":1,"total":3,"total_pages":3}}`, recorder.Body.String())
}
