// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package genre lists the genres in use across the live catalogue.
package genre

import "context"

// Genre is one distinct genre and how many live comics carry it.
type Genre struct {
	Name       string `json:"name"`
	ComicCount int    `json:"comic_count"`
}

// Repository reads the genre index.
type Repository interface {
	// List returns every genre, most used first, ties by name.
	List(context context.Context) ([]*Genre, error)
}
