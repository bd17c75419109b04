// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package rating stores reader scores for comics.

Every write recomputes the denormalised rating_avg and rating_count columns on
core.comic in the same transaction, so listings sorted by rating never read a
stale aggregate.
*/
package rating

// Score bounds, inclusive.
const (
	MinScore = 1
	MaxScore = 10
)

// Summary is the public view of a comic's rating.
type Summary struct {
	ComicID string  `json:"comic_id"`
	Average float64 `json:"average"`
	Count   int     `json:"count"`

	// UserScore is the caller's own score; nil for anonymous callers or when
	// they have not rated the comic.
	UserScore *int `json:"user_score"`
}

const FieldScore = "score"
