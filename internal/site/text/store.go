// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package text

import "context"

// Repository persists site copy.
type Repository interface {
	// List returns every text ordered by key.
	List(context context.Context) ([]*Text, error)

	// Get returns one text or dberr.ErrNotFound.
	Get(context context.Context, key string) (*Text, error)

	// Upsert creates or replaces the text stored under text.Key.
	Upsert(context context.Context, text *Text) error
}
