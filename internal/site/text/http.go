// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package text

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/yomira-press/internal/platform/middleware"
	requestutil "github.com/taibuivan/yomira-press/internal/platform/request"
	"github.com/taibuivan/yomira-press/internal/platform/respond"
	"github.com/taibuivan/yomira-press/internal/platform/sec"
)

// Handler implements the site copy endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a new text [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes attaches /site/texts.
func (handler *Handler) RegisterRoutes(api chi.Router) {
	api.Get("/site/texts", handler.listTexts)
	api.Get("/site/texts/{key}", handler.getText)

	api.With(middleware.RequireRole(sec.RoleAdmin)).Put("/site/texts/{key}", handler.putText)
}

func (handler *Handler) listTexts(writer http.ResponseWriter, request *http.Request) {
	texts, err := handler.service.ListTexts(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, texts)
}

func (handler *Handler) getText(writer http.ResponseWriter, request *http.Request) {
	text, err := handler.service.GetText(request.Context(), requestutil.Param(request, "key"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, text)
}

type putTextRequest struct {
	Value       string `json:"value"`
	Description string `json:"description"`
}

/*
PUT /api/v1/site/texts/{key}.

Request:
  - body: {"value": string, "description": string (optional)}

Response:
  - 200: Text
  - 400: Invalid key or oversized value
*/
func (handler *Handler) putText(writer http.ResponseWriter, request *http.Request) {
	var input putTextRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	text, err := handler.service.PutText(request.Context(), requestutil.Param(request, "key"), input.Value, input.Description)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, text)
}
