// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package comment implements reader discussion threads on comics and chapters.
package comment

import "time"

// Comment is a reader message attached to a comic and optionally a chapter.
type Comment struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	ComicID   string    `json:"comic_id"`
	ChapterID *string   `json:"chapter_id,omitempty"`
	Body      string    `json:"body"`
	IsDeleted bool      `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Filter narrows a comment listing. An empty ChapterID lists every comment on
// the comic.
type Filter struct {
	ChapterID string
}

// Body length bounds in characters.
const (
	MinBodyLength = 1
	MaxBodyLength = 2000
)

const (
	FieldBody      = "body"
	FieldChapterID = "chapter_id"
)
