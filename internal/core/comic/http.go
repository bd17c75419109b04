// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comic

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/yomira-press/internal/platform/middleware"
	requestutil "github.com/taibuivan/yomira-press/internal/platform/request"
	"github.com/taibuivan/yomira-press/internal/platform/respond"
	"github.com/taibuivan/yomira-press/internal/platform/sec"
	"github.com/taibuivan/yomira-press/pkg/pagination"
	"github.com/taibuivan/yomira-press/pkg/pointer"
	"github.com/taibuivan/yomira-press/pkg/query"
	"github.com/taibuivan/yomira-press/pkg/slice"
)

// # Handler Implementation

// Handler implements the HTTP layer for comic discovery and management.
type Handler struct {
	service *Service
}

// NewHandler constructs a new comic [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes attaches the comic endpoints.
//
//   - Discovery (Public): list and lookup by id or slug.
//   - Management (Admin): create, update and delete.
func (handler *Handler) RegisterRoutes(api chi.Router) {
	api.Get("/comics", handler.listComics)
	api.Get("/comics/{id}", handler.getComic)

	api.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireRole(sec.RoleAdmin))

		admin.Post("/comics", handler.createComic)
		admin.Patch("/comics/{id}", handler.updateComic)
		admin.Delete("/comics/{id}", handler.deleteComic)
	})
}

/*
GET /api/v1/comics.

Request:
  - q: string (Title search)
  - status: string (comma separated: ongoing,completed,hiatus,cancelled)
  - genre: string
  - sort: string (latest, alphabetic, rating, popular)
  - dir: string (asc, desc)
  - limit, page: int

Response:
  - 200: []Comic: Paginated list
*/
func (handler *Handler) listComics(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	values := request.URL.Query()

	filter := Filter{
		Query:   values.Get("q"),
		Genre:   values.Get("genre"),
		Sort:    values.Get("sort"),
		SortDir: values.Get("dir"),
		Status: slice.Map(query.StringSlice(values.Get("status")), func(status string) Status {
			return Status(status)
		}),
	}

	comics, total, err := handler.service.ListComics(request.Context(), filter, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, comics, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
GET /api/v1/comics/{id}.

Description: {id} is either the UUID or the slug.

Response:
  - 200: Comic
  - 404: ErrNotFound
*/
func (handler *Handler) getComic(writer http.ResponseWriter, request *http.Request) {
	comic, err := handler.service.GetComic(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, comic)
}

type comicRequest struct {
	Title    *string   `json:"title"`
	Slug     *string   `json:"slug"`
	Synopsis *string   `json:"synopsis"`
	CoverURL *string   `json:"cover_url"`
	Status   *Status   `json:"status"`
	AuthorID *int      `json:"author_id"`
	Genres   *[]string `json:"genres"`
}

/*
POST /api/v1/comics.

Response:
  - 201: Comic
  - 400: Validation error
  - 409: Slug already in use
*/
func (handler *Handler) createComic(writer http.ResponseWriter, request *http.Request) {
	var input comicRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comic := &Comic{
		Title:    pointer.Val(input.Title),
		Slug:     pointer.Val(input.Slug),
		Synopsis: pointer.Val(input.Synopsis),
		CoverURL: pointer.Val(input.CoverURL),
		Status:   pointer.Val(input.Status),
		AuthorID: input.AuthorID,
		Genres:   pointer.Val(input.Genres),
	}

	if err := handler.service.CreateComic(request.Context(), comic); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, comic)
}

// updateComic handles PATCH /api/v1/comics/{id}. Only UUIDs are accepted here.
func (handler *Handler) updateComic(writer http.ResponseWriter, request *http.Request) {
	var input comicRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comic, err := handler.service.UpdateComic(request.Context(), requestutil.ID(request, "id"), UpdateInput{
		Title:    input.Title,
		Slug:     input.Slug,
		Synopsis: input.Synopsis,
		CoverURL: input.CoverURL,
		Status:   input.Status,
		AuthorID: input.AuthorID,
		Genres:   input.Genres,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, comic)
}

// deleteComic handles DELETE /api/v1/comics/{id}.
func (handler *Handler) deleteComic(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteComic(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
