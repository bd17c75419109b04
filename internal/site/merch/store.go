// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package merch

import "context"

// Repository persists products.
type Repository interface {
	// List returns products ordered by sort order; activeOnly hides drafts.
	List(context context.Context, activeOnly bool) ([]*Product, error)
	FindByID(context context.Context, id string) (*Product, error)
	Create(context context.Context, product *Product) error
	Update(context context.Context, product *Product) error
	Delete(context context.Context, id string) error
}
