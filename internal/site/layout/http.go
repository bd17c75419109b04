// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package layout

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/yomira-press/internal/platform/middleware"
	requestutil "github.com/taibuivan/yomira-press/internal/platform/request"
	"github.com/taibuivan/yomira-press/internal/platform/respond"
	"github.com/taibuivan/yomira-press/internal/platform/sec"
	"github.com/taibuivan/yomira-press/pkg/pointer"
)

// Handler implements the homepage layout endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a new layout [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes attaches /site/home and the /site/sections editor.
func (handler *Handler) RegisterRoutes(api chi.Router) {
	api.Get("/site/home", handler.home)

	api.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireRole(sec.RoleAdmin))

		admin.Get("/site/sections", handler.listSections)
		admin.Post("/site/sections", handler.createSection)
		admin.Put("/site/sections/order", handler.reorderSections)
		admin.Patch("/site/sections/{id}", handler.updateSection)
		admin.Delete("/site/sections/{id}", handler.deleteSection)
	})
}

// home handles GET /api/v1/site/home.
func (handler *Handler) home(writer http.ResponseWriter, request *http.Request) {
	sections, err := handler.service.Home(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, sections)
}

func (handler *Handler) listSections(writer http.ResponseWriter, request *http.Request) {
	sections, err := handler.service.ListSections(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, sections)
}

type sectionRequest struct {
	Kind      *Kind     `json:"kind"`
	Title     *string   `json:"title"`
	Body      *string   `json:"body"`
	ComicIDs  *[]string `json:"comic_ids"`
	IsVisible *bool     `json:"is_visible"`
}

/*
POST /api/v1/site/sections.

Description: New sections are appended at the bottom and are visible unless
is_visible is false.
*/
func (handler *Handler) createSection(writer http.ResponseWriter, request *http.Request) {
	var input sectionRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	section := &Section{
		Kind:      pointer.Val(input.Kind),
		Title:     pointer.Val(input.Title),
		Body:      pointer.Val(input.Body),
		ComicIDs:  pointer.Val(input.ComicIDs),
		IsVisible: pointer.Fallback(input.IsVisible, true),
	}
	if err := handler.service.CreateSection(request.Context(), section); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, section)
}

func (handler *Handler) updateSection(writer http.ResponseWriter, request *http.Request) {
	var input sectionRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	section, err := handler.service.UpdateSection(request.Context(), requestutil.ID(request, "id"), UpdateInput(input))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, section)
}

func (handler *Handler) deleteSection(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteSection(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

type reorderRequest struct {
	IDs []string `json:"ids"`
}

/*
PUT /api/v1/site/sections/order.

Request:
  - body: {"ids": [every section id, top to bottom]}

Response:
  - 200: []Section in the new order
  - 400: Empty, duplicated or malformed ids
  - 422: ids does not match the stored sections
*/
func (handler *Handler) reorderSections(writer http.ResponseWriter, request *http.Request) {
	var input reorderRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	sections, err := handler.service.ReorderSections(request.Context(), input.IDs)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, sections)
}
