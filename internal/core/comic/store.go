// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comic

import "context"

// # Comic Data Access

// Repository defines the data access contract for comics.
type Repository interface {

	/*
		List returns a filtered, paginated slice of comics.

		Parameters:
		  - context: context.Context
		  - filter: Filter
		  - limit: int
		  - offset: int

		Returns:
		  - []*Comic: Matching comics
		  - int: Total matches before pagination
		  - error: Storage failures
	*/
	List(context context.Context, filter Filter, limit, offset int) ([]*Comic, int, error)

	// FindByID returns the comic with the given UUID or dberr.ErrNotFound.
	FindByID(context context.Context, id string) (*Comic, error)

	// FindBySlug returns the comic with the given slug or dberr.ErrNotFound.
	FindBySlug(context context.Context, slug string) (*Comic, error)

	/*
		Create persists a new comic.

		Returns:
		  - error: dberr.ErrDuplicate when the slug is taken
	*/
	Create(context context.Context, comic *Comic) error

	// Update persists editable metadata.
	Update(context context.Context, comic *Comic) error

	// SoftDelete hides a comic from every listing.
	SoftDelete(context context.Context, id string) error
}
