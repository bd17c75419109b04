// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package merch manages the merchandise shelf shown on the site. Products link
// out to an external store; no checkout happens here.
package merch

import "time"

// Product is a merchandise listing.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	PriceCents  int       `json:"price_cents"`
	Currency    string    `json:"currency"`
	ImageURL    string    `json:"image_url"`
	PurchaseURL string    `json:"purchase_url"`
	IsActive    bool      `json:"is_active"`
	SortOrder   int       `json:"sort_order"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// DefaultCurrency applies when a product is created without one.
const DefaultCurrency = "USD"

const (
	FieldName        = "name"
	FieldDescription = "description"
	FieldPriceCents  = "price_cents"
	FieldCurrency    = "currency"
	FieldImageURL    = "image_url"
	FieldPurchaseURL = "purchase_url"
)
