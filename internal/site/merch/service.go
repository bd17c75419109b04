// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package merch

import (
	"context"
	"log/slog"
	"strings"

	"github.com/taibuivan/yomira-press/internal/platform/validate"
	"github.com/taibuivan/yomira-press/pkg/uuid"
)

// Service manages the merchandise shelf.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a new [Service].
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// ListActive returns the products visitors can see.
func (service *Service) ListActive(ctx context.Context) ([]*Product, error) {
	return service.repo.List(ctx, true)
}

// ListAll includes inactive drafts for the admin view.
func (service *Service) ListAll(ctx context.Context) ([]*Product, error) {
	return service.repo.List(ctx, false)
}

func (service *Service) GetProduct(ctx context.Context, id string) (*Product, error) {
	return service.repo.FindByID(ctx, id)
}

// CreateProduct validates and stores a product. New products start active
// unless the caller says otherwise.
func (service *Service) CreateProduct(ctx context.Context, product *Product) error {
	normalize(product)
	if err := validateProduct(product); err != nil {
		return err
	}

	product.ID = uuid.New()
	if err := service.repo.Create(ctx, product); err != nil {
		return err
	}

	service.logger.Info("product_created", slog.String("product_id", product.ID), slog.String("name", product.Name))
	return nil
}

// UpdateInput carries a partial product update.
type UpdateInput struct {
	Name        *string
	Description *string
	PriceCents  *int
	Currency    *string
	ImageURL    *string
	PurchaseURL *string
	IsActive    *bool
	SortOrder   *int
}

func (service *Service) UpdateProduct(ctx context.Context, id string, input UpdateInput) (*Product, error) {
	product, err := service.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.PriceCents != nil {
		product.PriceCents = *input.PriceCents
	}
	if input.Currency != nil {
		product.Currency = *input.Currency
	}
	if input.ImageURL != nil {
		product.ImageURL = *input.ImageURL
	}
	if input.PurchaseURL != nil {
		product.PurchaseURL = *input.PurchaseURL
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}
	if input.SortOrder != nil {
		product.SortOrder = *input.SortOrder
	}

	normalize(product)
	if err := validateProduct(product); err != nil {
		return nil, err
	}

	if err := service.repo.Update(ctx, product); err != nil {
		return nil, err
	}

	service.logger.Info("product_updated", slog.String("product_id", product.ID))
	return product, nil
}

func (service *Service) DeleteProduct(ctx context.Context, id string) error {
	if err := service.repo.Delete(ctx, id); err != nil {
		return err
	}

	service.logger.Warn("product_deleted", slog.String("product_id", id))
	return nil
}

func normalize(product *Product) {
	product.Name = strings.TrimSpace(product.Name)
	product.Currency = strings.ToUpper(strings.TrimSpace(product.Currency))
	if product.Currency == "" {
		product.Currency = DefaultCurrency
	}
}

func validateProduct(product *Product) error {
	validator := &validate.Validator{}
	validator.Required(FieldName, product.Name).MaxLen(FieldName, product.Name, 200)
	validator.MaxLen(FieldDescription, product.Description, 5000)
	validator.Custom(FieldPriceCents, product.PriceCents < 0, "Price cannot be negative")
	validator.Custom(FieldCurrency, len(product.Currency) != 3, "Must be a 3-letter ISO 4217 code")
	validator.Required(FieldPurchaseURL, product.PurchaseURL).URL(FieldPurchaseURL, product.PurchaseURL)
	if product.ImageURL != "" {
		validator.URL(FieldImageURL, product.ImageURL)
	}
	return validator.Err()
}
