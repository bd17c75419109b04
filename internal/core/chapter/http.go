// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package chapter

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/yomira-press/internal/platform/middleware"
	requestutil "github.com/taibuivan/yomira-press/internal/platform/request"
	"github.com/taibuivan/yomira-press/internal/platform/respond"
	"github.com/taibuivan/yomira-press/internal/platform/sec"
	"github.com/taibuivan/yomira-press/pkg/pagination"
)

// # Handler Implementation

// Handler implements the HTTP layer for chapter and page management.
type Handler struct {
	service  *Service
	throttle func(http.Handler) http.Handler
}

// NewHandler constructs a new chapter [Handler]. throttle guards album imports.
func NewHandler(service *Service, throttle func(http.Handler) http.Handler) *Handler {
	return &Handler{service: service, throttle: throttle}
}

// RegisterRoutes attaches chapter endpoints. They span both the
// /comics/{id}/chapters and /chapters/{id} prefixes. Comic
// routes share the {id} param name with the comic package.
func (handler *Handler) RegisterRoutes(api chi.Router) {
	// Reader endpoints
	api.Get("/comics/{id}/chapters", handler.ListChapters)
	api.Get("/chapters/{id}", handler.ReadChapter)
	api.Get("/chapters/{id}/pages", handler.ListPages)

	// Publishing endpoints
	api.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireRole(sec.RoleAdmin))

		admin.Post("/comics/{id}/chapters", handler.CreateChapter)
		admin.Patch("/chapters/{id}", handler.UpdateChapter)
		admin.Delete("/chapters/{id}", handler.DeleteChapter)

		admin.With(handler.throttle).Post("/chapters/{id}/imgur", handler.ImportAlbum)
		admin.Delete("/chapters/{id}/imgur", handler.RemoveAlbumLink)
		admin.Post("/chapters/{id}/pages", handler.UploadPage)
	})
}

// # Chapter Retrieval

/*
GET /api/v1/comics/{id}/chapters.

Request:
  - dir: string (asc, desc)
  - published: bool (only released chapters)
  - limit, page: int

Response:
  - 200: []Chapter: Paginated list
*/
func (handler *Handler) ListChapters(writer http.ResponseWriter, request *http.Request) {
	comicID := requestutil.ID(request, "id")
	params := pagination.FromRequest(request)

	filter := Filter{
		SortDir:   request.URL.Query().Get("dir"),
		Published: request.URL.Query().Get("published") == "true",
	}

	chapters, total, err := handler.service.ListChapters(request.Context(), comicID, filter, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, chapters, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
GET /api/v1/chapters/{id}.

Description: Returns the chapter with its ordered pages for the reader.

Response:
  - 200: Chapter with pages
  - 404: ErrNotFound
*/
func (handler *Handler) ReadChapter(writer http.ResponseWriter, request *http.Request) {
	chapter, err := handler.service.ReadChapter(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, chapter)
}

// ListPages handles GET /api/v1/chapters/{id}/pages.
func (handler *Handler) ListPages(writer http.ResponseWriter, request *http.Request) {
	pages, err := handler.service.ListPages(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, pages)
}

// # Chapter Management

type createChapterRequest struct {
	Number      float64    `json:"number"`
	Title       string     `json:"title"`
	PublishedAt *time.Time `json:"published_at"`
}

/*
POST /api/v1/comics/{id}/chapters.

Response:
  - 201: Chapter
  - 400: Validation error
  - 422: Comic does not exist
*/
func (handler *Handler) CreateChapter(writer http.ResponseWriter, request *http.Request) {
	var input createChapterRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	chapter := &Chapter{
		ComicID:     requestutil.ID(request, "id"),
		Number:      input.Number,
		Title:       input.Title,
		PublishedAt: input.PublishedAt,
	}

	if err := handler.service.CreateChapter(request.Context(), chapter); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, chapter)
}

type updateChapterRequest struct {
	Number      *float64   `json:"number"`
	Title       *string    `json:"title"`
	PublishedAt *time.Time `json:"published_at"`
}

// UpdateChapter handles PATCH /api/v1/chapters/{id}.
func (handler *Handler) UpdateChapter(writer http.ResponseWriter, request *http.Request) {
	var input updateChapterRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	chapter, err := handler.service.UpdateChapter(request.Context(), requestutil.ID(request, "id"), UpdateInput{
		Number:      input.Number,
		Title:       input.Title,
		PublishedAt: input.PublishedAt,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, chapter)
}

// DeleteChapter handles DELETE /api/v1/chapters/{id}.
func (handler *Handler) DeleteChapter(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteChapter(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # Page Sources

type importRequest struct {
	URL string `json:"url"`
}

/*
POST /api/v1/chapters/{id}/imgur.

Description: Replaces every page of the chapter with the images of an imgur
album, gallery or direct image link.

Request:
  - body: {"url": string}

Response:
  - 200: ImportResult
  - 400: Invalid imgur URL format
  - 404: Chapter not found
  - 409: Another import is running
  - 422: Could not extract images from imgur album
  - 502: Album page unreachable
*/
func (handler *Handler) ImportAlbum(writer http.ResponseWriter, request *http.Request) {
	var input importRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.ImportAlbum(request.Context(), requestutil.ID(request, "id"), input.URL)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}

// RemoveAlbumLink handles DELETE /api/v1/chapters/{id}/imgur. Pages are kept.
func (handler *Handler) RemoveAlbumLink(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.RemoveAlbumLink(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

type uploadPageRequest struct {
	ImageURL string `json:"image_url"`
}

/*
POST /api/v1/chapters/{id}/pages.

Response:
  - 201: Page
  - 400: Validation error
  - 409: Chapter is linked to an imgur album
*/
func (handler *Handler) UploadPage(writer http.ResponseWriter, request *http.Request) {
	var input uploadPageRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	page, err := handler.service.UploadPage(request.Context(), requestutil.ID(request, "id"), input.ImageURL)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, page)
}
