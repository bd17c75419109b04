// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import "context"

// Repository persists comments.
type Repository interface {
	// ListByComic returns live comments, newest first, with the total count.
	ListByComic(context context.Context, comicID string, filter Filter, limit, offset int) ([]*Comment, int, error)

	// FindByID returns a live comment or dberr.ErrNotFound.
	FindByID(context context.Context, id string) (*Comment, error)

	// Create stores a comment. A missing comic or chapter yields dberr.ErrReference.
	Create(context context.Context, comment *Comment) error

	// SoftDelete flags the comment as deleted.
	SoftDelete(context context.Context, id string) error
}
