// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yomira-press/internal/api"
	"github.com/taibuivan/yomira-press/internal/core/author"
	"github.com/taibuivan/yomira-press/internal/core/chapter"
	"github.com/taibuivan/yomira-press/internal/core/comic"
	"github.com/taibuivan/yomira-press/internal/core/genre"
	"github.com/taibuivan/yomira-press/internal/imgur"
	"github.com/taibuivan/yomira-press/internal/platform/config"
	"github.com/taibuivan/yomira-press/internal/platform/constants"
	"github.com/taibuivan/yomira-press/internal/platform/middleware"
	"github.com/taibuivan/yomira-press/internal/platform/sec"
	"github.com/taibuivan/yomira-press/internal/site/layout"
	"github.com/taibuivan/yomira-press/internal/site/merch"
	"github.com/taibuivan/yomira-press/internal/site/text"
	"github.com/taibuivan/yomira-press/internal/social/comment"
	"github.com/taibuivan/yomira-press/internal/social/rating"
	"github.com/taibuivan/yomira-press/internal/users/account"
	"github.com/taibuivan/yomira-press/internal/users/auth"
)

type tokenTable map[string]*sec.AuthClaims

func (table tokenTable) VerifyToken(token string) (*sec.AuthClaims, error) {
	claims, ok := table[token]
	if !ok {
		return nil, errors.New("unknown token")
	}
	return claims, nil
}

func newTestServer(t *testing.T, deps api.HealthDependencies) http.Handler {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	liveness, readiness := api.NewHealthHandlers(deps, logger)

	verifier := tokenTable{
		"member": {UserID: "u-1", Username: "reader", Role: string(sec.RoleMember)},
		"admin":  {UserID: "u-2", Username: "editor", Role: string(sec.RoleAdmin)},
	}

	cfg := &config.Config{ServerPort: "0", Environment: "development"}
	importThrottle := middleware.NewImportThrottle()

	// Route registration never touches the services, so nil is enough here.
	server := api.NewServer(cfg, logger, verifier, api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Domains: []api.RouteRegistrar{
			auth.NewHandler(nil, false),
			account.NewHandler(nil),
			comic.NewHandler(nil),
			chapter.NewHandler(nil, importThrottle),
			author.NewHandler(nil),
			genre.NewHandler(nil),
			imgur.NewHandler(imgur.NewImporter(stubFetcher{}, logger), importThrottle),
			rating.NewHandler(nil),
			comment.NewHandler(nil),
			merch.NewHandler(nil),
			layout.NewHandler(nil),
			text.NewHandler(nil),
		},
	})
	return server.Handler()
}

type stubFetcher struct{}

func (stubFetcher) FetchAlbumJSON(context.Context, string) ([]byte, error) {
	return []byte(`{"images":[{"hash":"abc1234","ext":".png"}]}`), nil
}

func (stubFetcher) FetchAlbumPage(context.Context, string) ([]byte, error) {
	return nil, errors.New("not reached")
}

/*
TestHealth reports liveness without touching dependencies.
*/
func TestHealth(t *testing.T) {
	handler := newTestServer(t, api.HealthDependencies{})

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"status":"ok"`)
}

/*
TestReady_Degraded returns 503 and names the failing dependency.
*/
func TestReady_Degraded(t *testing.T) {
	deps := api.HealthDependencies{}
	deps.Add("postgres", func(context.Context) error { return nil })
	deps.Add("redis", func(context.Context) error { return errors.New("connection refused") })

	handler := newTestServer(t, deps)

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/ready", nil))
	require.Equal(t, http.StatusServiceUnavailable, recorder.Code)

	var body struct {
		Data struct {
			Status string `json:"status"`
			Checks []struct {
				Name string `json:"name"`
				OK   bool   `json:"ok"`
			} `json:"checks"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))

	assert.Equal(t, "degraded", body.Data.Status)
	require.Len(t, body.Data.Checks, 2)
	assert.True(t, body.Data.Checks[0].OK)
	assert.Equal(t, "redis", body.Data.Checks[1].Name)
	assert.False(t, body.Data.Checks[1].OK)
}

/*
TestParse_RoleGate lets only admins run the album parser.
*/
func TestParse_RoleGate(t *testing.T) {
	handler := newTestServer(t, api.HealthDependencies{})

	tests := []struct {
		name   string
		token  string
		status int
	}{
		{"anonymous", "", http.StatusUnauthorized},
		{"bad token", "forged", http.StatusUnauthorized},
		{"member", "member", http.StatusForbidden},
		{"admin", "admin", http.StatusOK},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodPost, "/api/v1/imgur/parse",
				strings.NewReader(`{"url":"https://imgur.com/a/AbC123"}`))
			request.Header.Set("Content-Type", "application/json")
			if tc.token != "" {
				request.Header.Set("Authorization", "Bearer "+tc.token)
			}

			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, request)
			assert.Equal(t, tc.status, recorder.Code)
		})
	}
}

func postParse(handler http.Handler, body string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(http.MethodPost, "/api/v1/imgur/parse", strings.NewReader(body))
	request.Header.Set("Authorization", "Bearer admin")

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

/*
TestParse_MalformedBody names the body as the problem, not the URL.
*/
func TestParse_MalformedBody(t *testing.T) {
	handler := newTestServer(t, api.HealthDependencies{})

	recorder := postParse(handler, `{"url":`)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.JSONEq(t, `{"success":false,"error":"Invalid JSON payload"}`, recorder.Body.String())
}

/*
TestParse_ThrottlePerServer verifies each server owns its import budget.
*/
func TestParse_ThrottlePerServer(t *testing.T) {
	first := newTestServer(t, api.HealthDependencies{})

	for i := 0; i < constants.ImportRateLimitBurst; i++ {
		require.Equal(t, http.StatusOK, postParse(first, `{"url":"https://imgur.com/a/AbC123"}`).Code)
	}
	assert.Equal(t, http.StatusTooManyRequests, postParse(first, `{"url":"https://imgur.com/a/AbC123"}`).Code)

	second := newTestServer(t, api.HealthDependencies{})
	assert.Equal(t, http.StatusOK, postParse(second, `{"url":"https://imgur.com/a/AbC123"}`).Code)
}

/*
TestParse_Contract answers with the bare success payload.
*/
func TestParse_Contract(t *testing.T) {
	handler := newTestServer(t, api.HealthDependencies{})

	request := httptest.NewRequest(http.MethodPost, "/api/v1/imgur/parse",
		strings.NewReader(`{"url":"https://imgur.com/a/AbC123"}`))
	request.Header.Set("Authorization", "Bearer admin")

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	require.Equal(t, http.StatusOK, recorder.Code)

	assert.JSONEq(t,
		`{"success":true,"images":[{"url":"https://i.imgur.com/abc1234.png","page_number":1}]}`,
		recorder.Body.String())
}
