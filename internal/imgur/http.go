// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package imgur

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/yomira-press/internal/platform/apperr"
	"github.com/taibuivan/yomira-press/internal/platform/middleware"
	requestutil "github.com/taibuivan/yomira-press/internal/platform/request"
	"github.com/taibuivan/yomira-press/internal/platform/respond"
	"github.com/taibuivan/yomira-press/internal/platform/sec"
)

// Handler exposes the extraction pipeline without touching any chapter.
type Handler struct {
	importer *Importer
	throttle func(http.Handler) http.Handler
}

// NewHandler constructs the imgur [Handler]. throttle guards the parse route.
func NewHandler(importer *Importer, throttle func(http.Handler) http.Handler) *Handler {
	return &Handler{importer: importer, throttle: throttle}
}

// RegisterRoutes attaches the admin-only parse and validate endpoints.
func (handler *Handler) RegisterRoutes(api chi.Router) {
	api.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireRole(sec.RoleAdmin))
		admin.Post("/imgur/validate", handler.Validate)
		admin.With(handler.throttle).Post("/imgur/parse", handler.Parse)
	})
}

type urlRequest struct {
	URL string `json:"url"`
}

/*
POST /api/v1/imgur/parse.

Description: Runs the extraction pipeline and answers with the bare
{success, images} / {success, error} contract, outside the usual envelope.

Request:
  - body: {"url": string}

Response:
  - 200: Result with success true
  - 400: Result: Invalid JSON payload or Invalid imgur URL format
  - 422: Result: Could not extract images from imgur album
  - 502: Result: Album page unreachable
*/
func (handler *Handler) Parse(writer http.ResponseWriter, request *http.Request) {
	var input urlRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.JSON(writer, http.StatusBadRequest, NewResult(nil, err))
		return
	}

	images, err := handler.importer.Extract(request.Context(), input.URL)
	result := NewResult(images, err)

	status := http.StatusOK
	if !result.Success {
		status = http.StatusInternalServerError
		if ae := apperr.As(err); ae != nil {
			status = ae.HTTPStatus
		} else if err == nil {
			status = ErrNoImages.HTTPStatus
		}
	}

	respond.JSON(writer, status, result)
}

type validateResponse struct {
	Valid bool   `json:"valid"`
	Kind  Kind   `json:"kind"`
	ID    string `json:"id,omitempty"`
}

/*
POST /api/v1/imgur/validate.

Description: Classifies a link without fetching anything.

Response:
  - 200: {valid, kind, id}
  - 400: ErrInvalidJSON
*/
func (handler *Handler) Validate(writer http.ResponseWriter, request *http.Request) {
	var input urlRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	ref := Classify(input.URL)
	respond.OK(writer, validateResponse{Valid: ref.Valid(), Kind: ref.Kind, ID: ref.ID})
}
