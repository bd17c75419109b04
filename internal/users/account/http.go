// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/yomira-press/internal/platform/middleware"
	requestutil "github.com/taibuivan/yomira-press/internal/platform/request"
	"github.com/taibuivan/yomira-press/internal/platform/respond"
	"github.com/taibuivan/yomira-press/internal/platform/sec"
	"github.com/taibuivan/yomira-press/internal/platform/validate"
	"github.com/taibuivan/yomira-press/pkg/pagination"
)

// Handler implements profile and account administration endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts /account for members and /users for admins.
func (handler *Handler) RegisterRoutes(api chi.Router) {
	api.Group(func(member chi.Router) {
		member.Use(middleware.RequireAuth)
		member.Patch("/account", handler.updateProfile)
		member.Delete("/account", handler.deleteAccount)
	})

	api.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireRole(sec.RoleAdmin))
		admin.Get("/users", handler.listAccounts)
		admin.Get("/users/{id}", handler.getAccount)
		admin.Patch("/users/{id}/role", handler.changeRole)
		admin.Patch("/users/{id}/status", handler.setActive)
	})
}

type profileRequest struct {
	DisplayName string `json:"display_name"`
}

type deleteRequest struct {
	Password string `json:"password"`
}

type roleRequest struct {
	Role sec.UserRole `json:"role"`
}

type statusRequest struct {
	IsActive *bool `json:"is_active"`
}

// PATCH /api/v1/account
func (handler *Handler) updateProfile(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input profileRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	user, err := handler.service.UpdateProfile(request.Context(), userID, input.DisplayName)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
DELETE /api/v1/account

Request:
  - Body: {"password": "..."}

Response:
  - 204: Account closed, every session revoked
  - 401: Wrong password
*/
func (handler *Handler) deleteAccount(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input deleteRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	if err := handler.service.DeleteAccount(request.Context(), userID, input.Password); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// GET /api/v1/users?q=&role=
func (handler *Handler) listAccounts(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	filter := Filter{
		Query: request.URL.Query().Get("q"),
		Role:  sec.UserRole(request.URL.Query().Get("role")),
	}

	users, total, err := handler.service.ListAccounts(request.Context(), filter, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, users, pagination.NewMeta(params.Page, params.Limit, total))
}

// GET /api/v1/users/{id}
func (handler *Handler) getAccount(writer http.ResponseWriter, request *http.Request) {
	user, err := handler.service.GetAccount(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

// PATCH /api/v1/users/{id}/role
func (handler *Handler) changeRole(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input roleRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	user, err := handler.service.ChangeRole(request.Context(), actorID, requestutil.ID(request, "id"), input.Role)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

// PATCH /api/v1/users/{id}/status
func (handler *Handler) setActive(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input statusRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	if input.IsActive == nil {
		respond.Error(writer, request, validate.RequiredError(FieldIsActive, "is required"))
		return
	}

	user, err := handler.service.SetActive(request.Context(), actorID, requestutil.ID(request, "id"), *input.IsActive)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}
