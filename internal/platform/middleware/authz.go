// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/taibuivan/yomira-press/internal/platform/apperr"
	"github.com/taibuivan/yomira-press/internal/platform/constants"
	"github.com/taibuivan/yomira-press/internal/platform/ctxutil"
	"github.com/taibuivan/yomira-press/internal/platform/respond"
	"github.com/taibuivan/yomira-press/internal/platform/sec"
)

// TokenVerifier checks an access token. [sec.TokenService] satisfies it.
type TokenVerifier interface {
	VerifyToken(token string) (*sec.AuthClaims, error)
}

var (
	errMalformedAuth    = apperr.Unauthorized("Invalid authorization format")
	errInvalidToken     = apperr.Unauthorized("Invalid or expired token")
	errAuthRequired     = apperr.Unauthorized("Authentication required")
	errInsufficientRole = apperr.Forbidden("Insufficient permissions")
)

/*
Authenticate resolves a bearer token into claims on the request context.

Description: A request without an Authorization header continues anonymously.
A header that is present but malformed or carries a bad token is rejected
with 401 rather than downgraded to anonymous.
*/
func Authenticate(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			header := request.Header.Get(constants.HeaderAuthorization)
			if header == "" {
				next.ServeHTTP(writer, request)
				return
			}

			scheme, token, ok := strings.Cut(header, " ")
			token = strings.TrimSpace(token)
			if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
				respond.Error(writer, request, errMalformedAuth)
				return
			}

			claims, err := verifier.VerifyToken(token)
			if err != nil {
				respond.Error(writer, request, errInvalidToken.WithCause(err))
				return
			}

			next.ServeHTTP(writer, request.WithContext(ctxutil.WithAuthUser(request.Context(), claims)))
		})
	}
}

// RequireAuth rejects anonymous requests. Mount it after [Authenticate].
func RequireAuth(next http.Handler) http.Handler {
	return RequireRole(sec.RoleMember)(next)
}

// RequireRole rejects anonymous callers with 401 and callers below role
// with 403.
func RequireRole(role sec.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			claims := GetUser(request.Context())
			switch {
			case claims == nil:
				respond.Error(writer, request, errAuthRequired)
			case !sec.UserRole(claims.Role).AtLeast(role):
				respond.Error(writer, request, errInsufficientRole)
			default:
				next.ServeHTTP(writer, request)
			}
		})
	}
}

// GetUser returns the caller's claims, or nil when anonymous.
func GetUser(ctx context.Context) *sec.AuthClaims {
	return ctxutil.GetAuthUser(ctx)
}
