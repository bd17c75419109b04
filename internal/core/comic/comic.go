// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package comic defines the series published on the site.

Core Responsibility:

  - Catalogue: Series metadata, publication status and genres.
  - Discovery: Title search, status filtering and sorting for the listing pages.
  - Metrics: View and rating aggregates kept on the row for cheap listing.

Chapters live in their own package and reference a comic by ID.
*/
package comic

import "time"

// # Domain Enums

// Status represents the publication status of a comic.
type Status string

const (
	// StatusOngoing indicates the series is actively updating.
	StatusOngoing Status = "ongoing"

	// StatusCompleted indicates no further chapters are expected.
	StatusCompleted Status = "completed"

	// StatusHiatus indicates the series is paused.
	StatusHiatus Status = "hiatus"

	// StatusCancelled indicates the series has been permanently discontinued.
	StatusCancelled Status = "cancelled"
)

// IsValid reports whether s is a recognised [Status] value.
func (s Status) IsValid() bool {
	switch s {
	case StatusOngoing, StatusCompleted, StatusHiatus, StatusCancelled:
		return true
	}
	return false
}

// # Core Entities

// Comic is a single series in the catalogue.
type Comic struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Slug     string   `json:"slug"` // URL-safe identifier
	Synopsis string   `json:"synopsis"`
	CoverURL string   `json:"cover_url"`
	Status   Status   `json:"status"`
	AuthorID *int     `json:"author_id"`
	Genres   []string `json:"genres"`

	// # Computed Metrics
	ViewCount   int64   `json:"view_count"`
	RatingAvg   float64 `json:"rating_avg"`
	RatingCount int     `json:"rating_count"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"-"` // nil = active; non-nil = soft-deleted
}

// # Search & Filtering

// Sort orders accepted by [Filter].
const (
	SortLatest     = "latest"
	SortAlphabetic = "alphabetic"
	SortRating     = "rating"
	SortPopular    = "popular"
)

// Filter holds the parameters for a filtered comic list query.
type Filter struct {
	Query   string   // Case-insensitive title search
	Status  []Status // Any of
	Genre   string   // Exact genre match
	Sort    string   // latest, alphabetic, rating, popular
	SortDir string   // "asc" or "desc"
}

// # Field Identifiers

const (
	FieldTitle    = "title"
	FieldSlug     = "slug"
	FieldSynopsis = "synopsis"
	FieldCoverURL = "cover_url"
	FieldStatus   = "status"
	FieldGenres   = "genres"
)

// MaxSlugLength bounds slugs derived from titles.
const MaxSlugLength = 120
