// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package rating

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/yomira-press/internal/platform/middleware"
	requestutil "github.com/taibuivan/yomira-press/internal/platform/request"
	"github.com/taibuivan/yomira-press/internal/platform/respond"
)

// Handler implements the rating endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a new rating [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes attaches /comics/{id}/rating.
func (handler *Handler) RegisterRoutes(api chi.Router) {
	api.Get("/comics/{id}/rating", handler.getRating)

	api.Group(func(member chi.Router) {
		member.Use(middleware.RequireAuth)

		member.Put("/comics/{id}/rating", handler.rate)
		member.Delete("/comics/{id}/rating", handler.unrate)
	})
}

/*
GET /api/v1/comics/{id}/rating.

Response:
  - 200: Summary (user_score set when authenticated)
  - 404: Comic not found
*/
func (handler *Handler) getRating(writer http.ResponseWriter, request *http.Request) {
	var userID string
	if claims := requestutil.Claims(request); claims != nil {
		userID = claims.UserID
	}

	summary, err := handler.service.GetSummary(request.Context(), requestutil.ID(request, "id"), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, summary)
}

type rateRequest struct {
	Score int `json:"score"`
}

/*
PUT /api/v1/comics/{id}/rating.

Request:
  - body: {"score": 1..10}

Response:
  - 200: Summary
  - 400: Score out of range
  - 401: Not authenticated
*/
func (handler *Handler) rate(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input rateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	summary, err := handler.service.Rate(request.Context(), userID, requestutil.ID(request, "id"), input.Score)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, summary)
}

// unrate handles DELETE /api/v1/comics/{id}/rating.
func (handler *Handler) unrate(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	summary, err := handler.service.Unrate(request.Context(), userID, requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, summary)
}
