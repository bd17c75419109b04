// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package rating

import "context"

// Repository persists ratings and keeps the comic aggregate in sync.
type Repository interface {

	// Summary returns the aggregate for a comic, or dberr.ErrNotFound.
	Summary(context context.Context, comicID string) (*Summary, error)

	// UserScore returns the user's score, or nil when they have not rated.
	UserScore(context context.Context, userID, comicID string) (*int, error)

	/*
		Upsert records a score and recomputes the aggregate atomically.

		Returns:
		  - *Summary: The aggregate after the write
		  - error: dberr.ErrNotFound if the comic is missing
	*/
	Upsert(context context.Context, userID, comicID string, score int) (*Summary, error)

	// Remove withdraws the user's score. Removing a missing score is not an error.
	Remove(context context.Context, userID, comicID string) (*Summary, error)
}
