// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package apperr defines the error type that crosses from services to HTTP.

Services return an [*AppError] for every failure a client should see; the
respond package turns it into status, code and message. Anything else is
treated as an internal error and never shown to the client.

Package-level values act as sentinels. [AppError.WithCause] clones one and
keeps [errors.Is] working against the original:

	var ErrNoImages = apperr.Unprocessable("Could not extract images from imgur album")

	return ErrNoImages.WithCause(err) // errors.Is(..., ErrNoImages) == true
*/
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError carries a client-safe message and the status that goes with it.
// Cause is for server logs only.
type AppError struct {
	Code       string       `json:"code"`
	Message    string       `json:"error"`
	HTTPStatus int          `json:"-"`
	Cause      error        `json:"-"`
	Details    []FieldError `json:"details,omitempty"`

	sentinel *AppError
}

// FieldError is one failed validation rule.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string { return e.Message }

func (e *AppError) Unwrap() error { return e.Cause }

func newError(status int, code, message string) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: status}
}

// # 4xx

// NotFound reads as "<resource> not found".
func NotFound(resource string) *AppError {
	return newError(http.StatusNotFound, "NOT_FOUND", resource+" not found")
}

func Unauthorized(message string) *AppError {
	return newError(http.StatusUnauthorized, "UNAUTHORIZED", message)
}

func Forbidden(message string) *AppError {
	return newError(http.StatusForbidden, "FORBIDDEN", message)
}

func Conflict(message string) *AppError {
	return newError(http.StatusConflict, "CONFLICT", message)
}

// ValidationError is a 400 with one entry per failed field.
func ValidationError(message string, details ...FieldError) *AppError {
	err := newError(http.StatusBadRequest, "VALIDATION_ERROR", message)
	err.Details = details
	return err
}

func RateLimited(retryAfterSeconds int) *AppError {
	return newError(http.StatusTooManyRequests, "RATE_LIMITED",
		fmt.Sprintf("Too many requests. Try again in %ds.", retryAfterSeconds))
}

// Unprocessable is a 422 for input that is well formed but cannot be acted on.
func Unprocessable(message string) *AppError {
	return newError(http.StatusUnprocessableEntity, "UNPROCESSABLE", message)
}

// # 5xx

// Internal hides cause behind a generic message.
func Internal(cause error) *AppError {
	err := newError(http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred")
	err.Cause = cause
	return err
}

// BadGateway reports a failing upstream, such as an unreachable album page.
func BadGateway(message string) *AppError {
	return newError(http.StatusBadGateway, "BAD_GATEWAY", message)
}

// # Sentinels

// WithCause returns a copy of e carrying cause. The copy still matches the
// original sentinel under [errors.Is], however many times it is derived.
func (e *AppError) WithCause(cause error) *AppError {
	clone := *e
	clone.Cause = cause
	clone.sentinel = e
	if e.sentinel != nil {
		clone.sentinel = e.sentinel
	}
	return &clone
}

// Is matches e itself or the sentinel it was cloned from.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e == t || (e.sentinel != nil && e.sentinel == t)
}

// As returns the first [*AppError] in err's chain, or nil.
func As(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}
