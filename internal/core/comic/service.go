// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comic

import (
	"context"
	"log/slog"
	"strings"

	"github.com/taibuivan/yomira-press/internal/platform/validate"
	"github.com/taibuivan/yomira-press/pkg/slice"
	"github.com/taibuivan/yomira-press/pkg/slug"
	uuidv7 "github.com/taibuivan/yomira-press/pkg/uuid"
)

// # Service Layer

// Service orchestrates the business logic for the comic catalogue.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a new [Service].
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// # Comic Lookups

// ListComics retrieves a paginated and filtered collection of comics.
func (service *Service) ListComics(ctx context.Context, filter Filter, limit, offset int) ([]*Comic, int, error) {
	return service.repo.List(ctx, filter, limit, offset)
}

/*
GetComic fetches a single comic by UUID or slug.

Description: Identifiers that parse as a UUID hit the primary key; anything
else resolves through the unique slug.
*/
func (service *Service) GetComic(ctx context.Context, identifier string) (*Comic, error) {
	if uuidv7.IsValid(identifier) {
		return service.repo.FindByID(ctx, identifier)
	}
	return service.repo.FindBySlug(ctx, identifier)
}

// # Comic Management

/*
CreateComic validates and persists a new comic.

Description: Generates a UUIDv7 identity and, when none is given, a slug
derived from the title.

Returns:
  - error: Validation errors, or dberr.ErrDuplicate for a taken slug
*/
func (service *Service) CreateComic(ctx context.Context, comic *Comic) error {
	comic.Title = strings.TrimSpace(comic.Title)
	if comic.Slug == "" {
		comic.Slug = slug.FromMax(comic.Title, MaxSlugLength)
	}
	if comic.Status == "" {
		comic.Status = StatusOngoing
	}
	comic.Genres = normalizeGenres(comic.Genres)

	if err := validateComic(comic); err != nil {
		return err
	}

	if comic.ID == "" {
		comic.ID = uuidv7.New()
	}

	if err := service.repo.Create(ctx, comic); err != nil {
		return err
	}

	service.logger.Info("comic_created",
		slog.String("comic_id", comic.ID),
		slog.String("slug", comic.Slug),
	)

	return nil
}

// UpdateInput carries a partial comic update. Nil fields are left unchanged.
type UpdateInput struct {
	Title    *string
	Slug     *string
	Synopsis *string
	CoverURL *string
	Status   *Status
	AuthorID *int
	Genres   *[]string
}

/*
UpdateComic applies input to an existing comic.

Description: Changing the title keeps the slug, so published links keep
working; pass Slug explicitly to move it.
*/
func (service *Service) UpdateComic(ctx context.Context, id string, input UpdateInput) (*Comic, error) {
	comic, err := service.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		comic.Title = strings.TrimSpace(*input.Title)
	}
	if input.Slug != nil {
		comic.Slug = *input.Slug
	}
	if input.Synopsis != nil {
		comic.Synopsis = *input.Synopsis
	}
	if input.CoverURL != nil {
		comic.CoverURL = *input.CoverURL
	}
	if input.Status != nil {
		comic.Status = *input.Status
	}
	if input.AuthorID != nil {
		comic.AuthorID = input.AuthorID
	}
	if input.Genres != nil {
		comic.Genres = normalizeGenres(*input.Genres)
	}

	if err := validateComic(comic); err != nil {
		return nil, err
	}

	if err := service.repo.Update(ctx, comic); err != nil {
		return nil, err
	}

	service.logger.Info("comic_updated", slog.String("comic_id", comic.ID))
	return comic, nil
}

// DeleteComic soft-deletes a comic.
func (service *Service) DeleteComic(ctx context.Context, id string) error {
	if err := service.repo.SoftDelete(ctx, id); err != nil {
		return err
	}

	service.logger.Warn("comic_deleted", slog.String("comic_id", id))
	return nil
}

// # Internal Helpers

func validateComic(comic *Comic) error {
	validator := &validate.Validator{}
	validator.Required(FieldTitle, comic.Title).MaxLen(FieldTitle, comic.Title, 500)
	validator.Required(FieldSlug, comic.Slug).Slug(FieldSlug, comic.Slug).MaxLen(FieldSlug, comic.Slug, MaxSlugLength)
	validator.MaxLen(FieldSynopsis, comic.Synopsis, 5000)
	validator.Custom(FieldStatus, !comic.Status.IsValid(), "Must be one of: ongoing, completed, hiatus, cancelled")
	validator.Custom(FieldGenres, len(comic.Genres) > 20, "At most 20 genres are allowed")

	if comic.CoverURL != "" {
		validator.URL(FieldCoverURL, comic.CoverURL)
	}

	return validator.Err()
}

// normalizeGenres lowercases, trims and deduplicates genre names, keeping the first occurrence.
func normalizeGenres(genres []string) []string {
	cleaned := slice.Map(genres, func(genre string) string {
		return strings.ToLower(strings.TrimSpace(genre))
	})

	seen := make(map[string]bool, len(cleaned))
	unique := slice.Filter(cleaned, func(genre string) bool {
		if genre == "" || seen[genre] {
			return false
		}
		seen[genre] = true
		return true
	})

	if unique == nil {
		return []string{}
	}
	return unique
}
