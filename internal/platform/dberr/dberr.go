// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr maps pgx errors onto the apperr sentinels services compare
// against.
package dberr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/yomira-press/internal/platform/apperr"
)

var (
	// ErrNotFound is a standard error returned when a queried row doesn't exist.
	ErrNotFound = apperr.NotFound("Resource")

	// ErrDuplicate is returned when an insert or update violates a unique constraint.
	ErrDuplicate = apperr.Conflict("Resource already exists")

	// ErrReference is returned when a foreign key points at a missing row.
	ErrReference = apperr.Unprocessable("Referenced resource does not exist")

	// ErrInvalidValue is returned when a CHECK constraint rejects a value.
	ErrInvalidValue = apperr.Unprocessable("Invalid value")
)

// Wrap classifies err by SQLSTATE. Unknown failures become internal errors
// labelled with action, so the query text never reaches a client.
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return ErrDuplicate.WithCause(err)
		case pgerrcode.ForeignKeyViolation:
			return ErrReference.WithCause(err)
		case pgerrcode.CheckViolation:
			return ErrInvalidValue.WithCause(err)
		case pgerrcode.InvalidTextRepresentation:
			// A malformed id, such as "abc" against a uuid column, cannot match a row.
			return ErrNotFound.WithCause(err)
		}
	}

	return apperr.Internal(fmt.Errorf("%s: %w", action, err))
}
