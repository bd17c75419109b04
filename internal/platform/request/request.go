// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package requestutil reads bodies, path parameters and caller identity from
// incoming requests.
package requestutil

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/yomira-press/internal/platform/apperr"
	"github.com/taibuivan/yomira-press/internal/platform/ctxutil"
	"github.com/taibuivan/yomira-press/internal/platform/sec"
	"github.com/taibuivan/yomira-press/internal/platform/validate"
)

// MaxBodyBytes caps every JSON body. The largest legitimate payload is a
// site section with its comic list.
const MaxBodyBytes = 1 << 20

var errAuthRequired = apperr.Unauthorized("Authentication required")

// DecodeJSON decodes exactly one JSON value into target. Empty, oversized,
// malformed or trailing input yields [validate.ErrInvalidJSON].
func DecodeJSON(request *http.Request, target any) error {
	decoder := json.NewDecoder(io.LimitReader(request.Body, MaxBodyBytes))
	if err := decoder.Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	if err := decoder.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return validate.ErrInvalidJSON
	}
	return nil
}

// ID returns a path parameter that identifies a row: a UUID, slug or number.
func ID(request *http.Request, name string) string {
	return strings.TrimSpace(chi.URLParam(request, name))
}

// Param returns any other path parameter verbatim.
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

// Claims returns nil for anonymous callers.
func Claims(request *http.Request) *sec.AuthClaims {
	return ctxutil.GetAuthUser(request.Context())
}

// RequiredClaims fails with 401 for anonymous callers.
func RequiredClaims(request *http.Request) (*sec.AuthClaims, error) {
	if claims := Claims(request); claims != nil {
		return claims, nil
	}
	return nil, errAuthRequired
}

// RequiredUserID is [RequiredClaims] reduced to the user id.
func RequiredUserID(request *http.Request) (string, error) {
	claims, err := RequiredClaims(request)
	if err != nil {
		return "", err
	}
	return claims.UserID, nil
}
