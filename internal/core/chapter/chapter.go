// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package chapter manages chapters and their page images.

A chapter gets its pages from exactly one source at a time:

  - Imgur import: the whole page set is replaced by the images of an album,
    and the album link is kept as provenance.
  - Manual upload: pages are appended one by one.

# Page Source State

	none ──import──▶ imgur ──remove link──▶ imgur (pages kept, link cleared)
	  │                ▲  │
	  │                └──┘ re-import replaces every page
	  └──upload──▶ upload

Uploading into a chapter that still carries an album link is rejected.
*/
package chapter

import "time"

// PageSource records where a chapter's current pages came from.
type PageSource string

const (
	SourceNone   PageSource = "none"
	SourceImgur  PageSource = "imgur"
	SourceUpload PageSource = "upload"
)

// # Chapter Aggregate

// Chapter represents a single chapter (episode) of a comic.
type Chapter struct {
	ID      string  `json:"id"`
	ComicID string  `json:"comic_id"`
	Number  float64 `json:"number"` // Supports half-chapters (e.g. 12.5)
	Title   string  `json:"title"`

	// ImgurAlbumURL is the album the current pages were imported from.
	ImgurAlbumURL *string    `json:"imgur_album_url"`
	PageSource    PageSource `json:"page_source"`

	ViewCount   int64      `json:"view_count"`
	PublishedAt *time.Time `json:"published_at"` // nil indicates a draft
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"-"`

	// Pages is only populated by the reader endpoint.
	Pages []*Page `json:"pages,omitempty"`
}

// HasAlbumLink reports whether the chapter still points at an imgur album.
func (c *Chapter) HasAlbumLink() bool {
	return c.ImgurAlbumURL != nil && *c.ImgurAlbumURL != ""
}

// # Image Delivery

// Page is a single image page within a [Chapter].
type Page struct {
	ID         string    `json:"id"`
	ChapterID  string    `json:"chapter_id"`
	PageNumber int       `json:"page_number"`
	ImageURL   string    `json:"image_url"`
	CreatedAt  time.Time `json:"created_at"`
}

// ImportResult summarises a successful album import.
type ImportResult struct {
	ChapterID string  `json:"chapter_id"`
	AlbumURL  string  `json:"album_url"`
	Pages     []*Page `json:"pages"`
}

// # Filter Criteria

// Filter holds parameters for listing a comic's chapters.
type Filter struct {
	SortDir   string // "asc" or "desc" by chapter number
	Published bool   // only chapters with a past publish date
}

// Field names used in validation errors.
const (
	FieldComicID  = "comic_id"
	FieldNumber   = "number"
	FieldTitle    = "title"
	FieldURL      = "url"
	FieldImageURL = "image_url"
)
