// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package merch

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/yomira-press/internal/platform/middleware"
	requestutil "github.com/taibuivan/yomira-press/internal/platform/request"
	"github.com/taibuivan/yomira-press/internal/platform/respond"
	"github.com/taibuivan/yomira-press/internal/platform/sec"
	"github.com/taibuivan/yomira-press/pkg/pointer"
)

// Handler implements the merchandise endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a new merch [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes attaches /merch.
//
//   - Storefront (Public): active products in display order.
//   - Management (Admin): full list including drafts, CRUD.
func (handler *Handler) RegisterRoutes(api chi.Router) {
	api.Get("/merch", handler.listActive)

	api.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireRole(sec.RoleAdmin))

		admin.Get("/merch/all", handler.listAll)
		admin.Post("/merch", handler.createProduct)
		admin.Patch("/merch/{id}", handler.updateProduct)
		admin.Delete("/merch/{id}", handler.deleteProduct)
	})
}

func (handler *Handler) listActive(writer http.ResponseWriter, request *http.Request) {
	products, err := handler.service.ListActive(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, products)
}

func (handler *Handler) listAll(writer http.ResponseWriter, request *http.Request) {
	products, err := handler.service.ListAll(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, products)
}

type productRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	PriceCents  *int    `json:"price_cents"`
	Currency    *string `json:"currency"`
	ImageURL    *string `json:"image_url"`
	PurchaseURL *string `json:"purchase_url"`
	IsActive    *bool   `json:"is_active"`
	SortOrder   *int    `json:"sort_order"`
}

/*
POST /api/v1/merch.

Response:
  - 201: Product
  - 400: Validation error
*/
func (handler *Handler) createProduct(writer http.ResponseWriter, request *http.Request) {
	var input productRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	product := &Product{
		Name:        pointer.Val(input.Name),
		Description: pointer.Val(input.Description),
		PriceCents:  pointer.Val(input.PriceCents),
		Currency:    pointer.Val(input.Currency),
		ImageURL:    pointer.Val(input.ImageURL),
		PurchaseURL: pointer.Val(input.PurchaseURL),
		IsActive:    pointer.Fallback(input.IsActive, true),
		SortOrder:   pointer.Val(input.SortOrder),
	}
	if err := handler.service.CreateProduct(request.Context(), product); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, product)
}

func (handler *Handler) updateProduct(writer http.ResponseWriter, request *http.Request) {
	var input productRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	product, err := handler.service.UpdateProduct(request.Context(), requestutil.ID(request, "id"), UpdateInput(input))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, product)
}

func (handler *Handler) deleteProduct(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteProduct(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
