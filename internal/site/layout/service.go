// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package layout

import (
	"context"
	"log/slog"
	"strings"

	"github.com/taibuivan/yomira-press/internal/platform/apperr"
	"github.com/taibuivan/yomira-press/internal/platform/validate"
	"github.com/taibuivan/yomira-press/pkg/uuid"
)

// ErrOrderMismatch is returned when a reorder does not name every section
// exactly once.
var ErrOrderMismatch = apperr.Unprocessable("Order must list every section exactly once")

// Service manages homepage sections.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a new [Service].
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Home returns the visible sections in render order.
func (service *Service) Home(ctx context.Context) ([]*Section, error) {
	return service.repo.List(ctx, true)
}

// ListSections includes hidden sections for the admin editor.
func (service *Service) ListSections(ctx context.Context) ([]*Section, error) {
	return service.repo.List(ctx, false)
}

func (service *Service) CreateSection(ctx context.Context, section *Section) error {
	normalize(section)
	if err := validateSection(section); err != nil {
		return err
	}

	section.ID = uuid.New()
	if err := service.repo.Create(ctx, section); err != nil {
		return err
	}

	service.logger.Info("section_created",
		slog.String("section_id", section.ID),
		slog.String("kind", string(section.Kind)),
		slog.Int("position", section.Position),
	)
	return nil
}

// UpdateInput carries a partial section update.
type UpdateInput struct {
	Kind      *Kind
	Title     *string
	Body      *string
	ComicIDs  *[]string
	IsVisible *bool
}

func (service *Service) UpdateSection(ctx context.Context, id string, input UpdateInput) (*Section, error) {
	section, err := service.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Kind != nil {
		section.Kind = *input.Kind
	}
	if input.Title != nil {
		section.Title = *input.Title
	}
	if input.Body != nil {
		section.Body = *input.Body
	}
	if input.ComicIDs != nil {
		section.ComicIDs = *input.ComicIDs
	}
	if input.IsVisible != nil {
		section.IsVisible = *input.IsVisible
	}

	normalize(section)
	if err := validateSection(section); err != nil {
		return nil, err
	}

	if err := service.repo.Update(ctx, section); err != nil {
		return nil, err
	}

	service.logger.Info("section_updated", slog.String("section_id", section.ID))
	return section, nil
}

func (service *Service) DeleteSection(ctx context.Context, id string) error {
	if err := service.repo.Delete(ctx, id); err != nil {
		return err
	}

	service.logger.Warn("section_deleted", slog.String("section_id", id))
	return nil
}

/*
ReorderSections rewrites every position to follow ids.

Description: Duplicates and malformed ids are rejected before storage is
touched; the repository then checks that ids covers the stored set.
*/
func (service *Service) ReorderSections(ctx context.Context, ids []string) ([]*Section, error) {
	validator := &validate.Validator{}
	validator.Custom(FieldOrder, len(ids) == 0, "At least one section id is required")

	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		validator.UUID(FieldOrder, id)
		validator.Custom(FieldOrder, seen[id], "Duplicate section id: "+id)
		seen[id] = true
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.repo.Reorder(ctx, ids); err != nil {
		return nil, err
	}

	service.logger.Info("sections_reordered", slog.Int("count", len(ids)))
	return service.repo.List(ctx, false)
}

func normalize(section *Section) {
	section.Title = strings.TrimSpace(section.Title)
	if section.ComicIDs == nil {
		section.ComicIDs = []string{}
	}
}

func validateSection(section *Section) error {
	validator := &validate.Validator{}
	validator.OneOf(FieldKind, string(section.Kind), Kinds...)
	validator.MaxLen(FieldTitle, section.Title, 200)
	validator.MaxLen(FieldBody, section.Body, 20000)
	validator.Custom(FieldBody, section.Kind == KindCustom && strings.TrimSpace(section.Body) == "", "Custom sections need a body")
	validator.Custom(FieldComicIDs, len(section.ComicIDs) > MaxComicsPerSection, "Too many comics in one section")
	for _, id := range section.ComicIDs {
		validator.UUID(FieldComicIDs, id)
	}
	return validator.Err()
}
