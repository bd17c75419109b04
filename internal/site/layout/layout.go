// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package layout controls the homepage: an ordered list of sections that the
frontend renders top to bottom.
*/
package layout

import "time"

// Kind tells the frontend how to render a section.
type Kind string

const (
	KindHero     Kind = "hero"
	KindFeatured Kind = "featured"
	KindLatest   Kind = "latest"
	KindMerch    Kind = "merch"
	KindCustom   Kind = "custom"
)

// Kinds lists every accepted [Kind].
var Kinds = []string{string(KindHero), string(KindFeatured), string(KindLatest), string(KindMerch), string(KindCustom)}

// Section is one homepage block.
type Section struct {
	ID        string    `json:"id"`
	Kind      Kind      `json:"kind"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	ComicIDs  []string  `json:"comic_ids"`
	Position  int       `json:"position"`
	IsVisible bool      `json:"is_visible"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MaxComicsPerSection caps hand-picked comics in hero and featured blocks.
const MaxComicsPerSection = 24

const (
	FieldKind     = "kind"
	FieldTitle    = "title"
	FieldBody     = "body"
	FieldComicIDs = "comic_ids"
	FieldOrder    = "ids"
)
