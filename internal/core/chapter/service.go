// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package chapter

import (
	"context"
	"log/slog"
	"time"

	"github.com/taibuivan/yomira-press/internal/imgur"
	"github.com/taibuivan/yomira-press/internal/platform/apperr"
	"github.com/taibuivan/yomira-press/internal/platform/constants"
	"github.com/taibuivan/yomira-press/internal/platform/validate"
	"github.com/taibuivan/yomira-press/pkg/uuid"
)

var (
	// ErrImportInProgress is returned when another import holds the chapter's lock.
	ErrImportInProgress = apperr.Conflict("An album import is already running for this chapter")

	// ErrAlbumLinked is returned when uploading into a chapter whose pages come from an imgur album.
	ErrAlbumLinked = apperr.Conflict("Chapter pages are linked to an imgur album; remove the link before uploading")
)

// AlbumExtractor resolves an imgur link into ordered page images.
type AlbumExtractor interface {
	Extract(ctx context.Context, raw string) ([]imgur.ExtractedImage, error)
}

// # Service Layer

// Service orchestrates the business logic for chapters and their pages.
type Service struct {
	repo      Repository
	lock      ImportLock
	extractor AlbumExtractor
	lockTTL   time.Duration
	logger    *slog.Logger
}

// NewService constructs a new [Service]. A non-positive lockTTL falls back to the default.
func NewService(repo Repository, lock ImportLock, extractor AlbumExtractor, lockTTL time.Duration, logger *slog.Logger) *Service {
	if lockTTL <= 0 {
		lockTTL = constants.ImportLockTTL
	}
	return &Service{
		repo:      repo,
		lock:      lock,
		extractor: extractor,
		lockTTL:   lockTTL,
		logger:    logger,
	}
}

// importDeadline leaves a tenth of the lock TTL for the final write and release.
func importDeadline(lockTTL time.Duration) time.Duration {
	return lockTTL - lockTTL/10
}

// # Chapter Operations

// ListChapters returns a page of a comic's chapters.
func (service *Service) ListChapters(ctx context.Context, comicID string, filter Filter, limit, offset int) ([]*Chapter, int, error) {
	return service.repo.ListByComic(ctx, comicID, filter, limit, offset)
}

// GetChapter returns chapter metadata without pages.
func (service *Service) GetChapter(ctx context.Context, id string) (*Chapter, error) {
	return service.repo.FindByID(ctx, id)
}

/*
ReadChapter returns a chapter with its ordered pages and counts the view.

Description: A failed view count is logged and otherwise ignored; the reader
should never fail because of it.
*/
func (service *Service) ReadChapter(ctx context.Context, id string) (*Chapter, error) {
	chapter, err := service.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	pages, err := service.repo.ListPages(ctx, id)
	if err != nil {
		return nil, err
	}
	chapter.Pages = pages

	if err := service.repo.IncrementViewCount(ctx, id, 1); err != nil {
		service.logger.Warn("chapter_view_count_failed",
			slog.String("chapter_id", id),
			slog.Any("error", err),
		)
	}

	return chapter, nil
}

/*
CreateChapter initialises a new chapter with no pages.

Parameters:
  - ctx: context.Context
  - chapter: *Chapter (ComicID, Number, Title, PublishedAt)

Returns:
  - error: Validation or persistence errors
*/
func (service *Service) CreateChapter(ctx context.Context, chapter *Chapter) error {
	validator := &validate.Validator{}
	validator.Required(FieldComicID, chapter.ComicID)
	validator.MaxLen(FieldTitle, chapter.Title, 255)
	validator.Custom(FieldNumber, chapter.Number < 0, "Chapter number cannot be negative")

	if err := validator.Err(); err != nil {
		return err
	}

	if chapter.ID == "" {
		chapter.ID = uuid.New()
	}
	chapter.PageSource = SourceNone
	chapter.ImgurAlbumURL = nil

	if err := service.repo.Create(ctx, chapter); err != nil {
		return err
	}

	service.logger.Info("chapter_created",
		slog.String("chapter_id", chapter.ID),
		slog.String("comic_id", chapter.ComicID),
		slog.Float64("number", chapter.Number),
	)

	return nil
}

// UpdateInput carries a partial chapter update. Nil fields are left unchanged.
type UpdateInput struct {
	Number      *float64
	Title       *string
	PublishedAt *time.Time
}

// UpdateChapter applies input to the chapter and returns the stored result.
func (service *Service) UpdateChapter(ctx context.Context, id string, input UpdateInput) (*Chapter, error) {
	chapter, err := service.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Number != nil {
		chapter.Number = *input.Number
	}
	if input.Title != nil {
		chapter.Title = *input.Title
	}
	if input.PublishedAt != nil {
		chapter.PublishedAt = input.PublishedAt
	}

	validator := &validate.Validator{}
	validator.MaxLen(FieldTitle, chapter.Title, 255)
	validator.Custom(FieldNumber, chapter.Number < 0, "Chapter number cannot be negative")
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.repo.Update(ctx, chapter); err != nil {
		return nil, err
	}

	return chapter, nil
}

// DeleteChapter soft-deletes a chapter. Its pages stay in place.
func (service *Service) DeleteChapter(ctx context.Context, id string) error {
	if err := service.repo.SoftDelete(ctx, id); err != nil {
		return err
	}

	service.logger.Info("chapter_deleted", slog.String("chapter_id", id))
	return nil
}

// # Page Operations

// ListPages returns the ordered pages of an existing chapter.
func (service *Service) ListPages(ctx context.Context, chapterID string) ([]*Page, error) {
	if _, err := service.repo.FindByID(ctx, chapterID); err != nil {
		return nil, err
	}
	return service.repo.ListPages(ctx, chapterID)
}

/*
ImportAlbum replaces every page of a chapter with the images of an imgur link.

Description: Extraction runs to completion before anything is written, so a
failed or empty extraction leaves the chapter untouched. The write itself is
a single transaction. Only one import per chapter runs at a time.

Parameters:
  - ctx: context.Context
  - chapterID: string (UUID)
  - rawURL: string (album, gallery or direct image link)

Returns:
  - *ImportResult: The stored pages
  - error: imgur.ErrInvalidURL, ErrImportInProgress, an extraction error, or a storage failure
*/
func (service *Service) ImportAlbum(ctx context.Context, chapterID, rawURL string) (*ImportResult, error) {
	ref := imgur.Classify(rawURL)
	if !ref.Valid() {
		return nil, imgur.ErrInvalidURL
	}

	if _, err := service.repo.FindByID(ctx, chapterID); err != nil {
		return nil, err
	}

	// 1. Exclusive access
	token, err := service.lock.Acquire(ctx, chapterID, service.lockTTL)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if token == "" {
		return nil, ErrImportInProgress
	}
	defer func() {
		if err := service.lock.Release(context.WithoutCancel(ctx), chapterID, token); err != nil {
			service.logger.Warn("chapter_import_lock_release_failed",
				slog.String("chapter_id", chapterID),
				slog.Any("error", err),
			)
		}
	}()

	// The work must finish while the lock is still ours.
	importCtx, cancel := context.WithTimeout(ctx, importDeadline(service.lockTTL))
	defer cancel()

	// 2. Extraction
	images, err := service.extractor.Extract(importCtx, ref.Raw)
	if err != nil {
		service.logger.Info("chapter_album_import_failed",
			slog.String("chapter_id", chapterID),
			slog.String("album_url", ref.Raw),
			slog.Any("error", err),
		)
		return nil, err
	}
	if len(images) == 0 {
		return nil, imgur.ErrNoImages
	}

	// 3. Replacement
	pages := make([]*Page, len(images))
	for i, image := range images {
		pages[i] = &Page{
			ID:         uuid.New(),
			ChapterID:  chapterID,
			PageNumber: image.PageNumber,
			ImageURL:   image.URL,
		}
	}

	if err := service.repo.ReplacePages(importCtx, chapterID, pages, ref.Raw); err != nil {
		return nil, err
	}

	service.logger.Info("chapter_album_imported",
		slog.String("chapter_id", chapterID),
		slog.String("album_url", ref.Raw),
		slog.String("kind", string(ref.Kind)),
		slog.Int("pages", len(pages)),
	)

	return &ImportResult{ChapterID: chapterID, AlbumURL: ref.Raw, Pages: pages}, nil
}

// RemoveAlbumLink clears the album provenance of a chapter. Pages are kept,
// and removing a link that is already gone succeeds.
func (service *Service) RemoveAlbumLink(ctx context.Context, chapterID string) error {
	chapter, err := service.repo.FindByID(ctx, chapterID)
	if err != nil {
		return err
	}

	if !chapter.HasAlbumLink() {
		return nil
	}

	if err := service.repo.ClearAlbumLink(ctx, chapterID); err != nil {
		return err
	}

	service.logger.Info("chapter_album_link_removed",
		slog.String("chapter_id", chapterID),
		slog.String("album_url", *chapter.ImgurAlbumURL),
	)

	return nil
}

/*
UploadPage appends a manually uploaded image to a chapter.

Returns:
  - *Page: The stored page with its assigned number
  - error: Validation errors, ErrAlbumLinked, or storage failures
*/
func (service *Service) UploadPage(ctx context.Context, chapterID, imageURL string) (*Page, error) {
	validator := &validate.Validator{}
	validator.Required(FieldImageURL, imageURL)
	validator.URL(FieldImageURL, imageURL)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	chapter, err := service.repo.FindByID(ctx, chapterID)
	if err != nil {
		return nil, err
	}

	if chapter.HasAlbumLink() {
		return nil, ErrAlbumLinked
	}

	page := &Page{ID: uuid.New(), ChapterID: chapterID, ImageURL: imageURL}
	if err := service.repo.AppendPage(ctx, page); err != nil {
		return nil, err
	}

	service.logger.Info("chapter_page_uploaded",
		slog.String("chapter_id", chapterID),
		slog.Int("page_number", page.PageNumber),
	)

	return page, nil
}
