// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/yomira-press/internal/platform/middleware"
	requestutil "github.com/taibuivan/yomira-press/internal/platform/request"
	"github.com/taibuivan/yomira-press/internal/platform/respond"
	"github.com/taibuivan/yomira-press/pkg/pagination"
)

// Handler implements the comment endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a new comment [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes attaches the comment endpoints.
func (handler *Handler) RegisterRoutes(api chi.Router) {
	api.Get("/comics/{id}/comments", handler.listComments)

	api.Group(func(member chi.Router) {
		member.Use(middleware.RequireAuth)

		member.Post("/comics/{id}/comments", handler.postComment)
		member.Delete("/comments/{id}", handler.deleteComment)
	})
}

/*
GET /api/v1/comics/{id}/comments.

Request:
  - chapter_id: string (optional)
  - limit, page: int

Response:
  - 200: []Comment: Paginated, newest first
*/
func (handler *Handler) listComments(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	filter := Filter{ChapterID: request.URL.Query().Get("chapter_id")}

	comments, total, err := handler.service.ListComments(request.Context(), requestutil.ID(request, "id"), filter, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, comments, pagination.NewMeta(params.Page, params.Limit, total))
}

type commentRequest struct {
	Body      string  `json:"body"`
	ChapterID *string `json:"chapter_id"`
}

// postComment handles POST /api/v1/comics/{id}/comments.
func (handler *Handler) postComment(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input commentRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment := &Comment{
		UserID:    userID,
		ComicID:   requestutil.ID(request, "id"),
		ChapterID: input.ChapterID,
		Body:      input.Body,
	}
	if err := handler.service.PostComment(request.Context(), comment); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, comment)
}

/*
DELETE /api/v1/comments/{id}.

Response:
  - 204: Deleted
  - 403: Not the author and not a moderator
  - 404: Comment not found
*/
func (handler *Handler) deleteComment(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteComment(request.Context(), requestutil.ID(request, "id"), claims); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
