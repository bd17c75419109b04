// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package chapter

import (
	"context"
	"time"
)

// # Chapter & Page Data Access

// Repository defines the data access contract for chapters and pages.
type Repository interface {

	/*
		ListByComic returns the chapters of a comic ordered by chapter number.

		Parameters:
		  - context: context.Context
		  - comicID: string (Owner ID)
		  - filter: Filter
		  - limit: int
		  - offset: int

		Returns:
		  - []*Chapter: Chapters without pages
		  - int: Total matching chapters
		  - error: Storage failures
	*/
	ListByComic(context context.Context, comicID string, filter Filter, limit, offset int) ([]*Chapter, int, error)

	/*
		FindByID returns the chapter with the given ID.

		Returns:
		  - *Chapter: Chapter without pages
		  - error: dberr.ErrNotFound if missing or soft-deleted
	*/
	FindByID(context context.Context, id string) (*Chapter, error)

	// Create persists a new chapter.
	Create(context context.Context, chapter *Chapter) error

	// Update persists number, title and publish date.
	Update(context context.Context, chapter *Chapter) error

	// SoftDelete marks a chapter as deleted without physical row removal.
	SoftDelete(context context.Context, id string) error

	/*
		ListPages returns the pages of a chapter ordered by page number.

		Parameters:
		  - context: context.Context
		  - chapterID: string (UUID)

		Returns:
		  - []*Page: Ordered pages
		  - error: Retrieval failure
	*/
	ListPages(context context.Context, chapterID string) ([]*Page, error)

	/*
		ReplacePages swaps the whole page set of a chapter for pages and records
		albumURL as its provenance.

		Description: Runs in one transaction. Either every old page is gone and
		every new page is stored, or nothing changed.

		Parameters:
		  - context: context.Context
		  - chapterID: string (UUID)
		  - pages: []*Page (non-empty, numbered 1..N)
		  - albumURL: string

		Returns:
		  - error: Storage failure; the previous pages are intact
	*/
	ReplacePages(context context.Context, chapterID string, pages []*Page, albumURL string) error

	// ClearAlbumLink removes the album provenance link. Pages are kept.
	ClearAlbumLink(context context.Context, chapterID string) error

	/*
		AppendPage stores one uploaded page after the current last page and marks
		the chapter as upload-sourced. page.PageNumber is set on return.
	*/
	AppendPage(context context.Context, page *Page) error

	// IncrementViewCount atomically increments the view counter on a chapter.
	IncrementViewCount(context context.Context, id string, delta int64) error
}

// ImportLock serialises album imports per chapter.
type ImportLock interface {
	// Acquire returns a token naming the holder, or "" when another import
	// holds the lock.
	Acquire(context context.Context, chapterID string, ttl time.Duration) (string, error)

	// Release drops the lock if token still holds it.
	Release(context context.Context, chapterID, token string) error
}
