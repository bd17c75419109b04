// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/taibuivan/yomira-press/internal/platform/apperr"
	"github.com/taibuivan/yomira-press/internal/platform/sec"
	"github.com/taibuivan/yomira-press/internal/platform/validate"
	"github.com/taibuivan/yomira-press/pkg/uuid"
)

// ErrNotOwner is returned when a member deletes someone else's comment.
var ErrNotOwner = apperr.Forbidden("Only the author or a moderator can delete this comment")

// Service applies comment rules.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a new [Service].
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// ListComments pages through the live comments of a comic.
func (service *Service) ListComments(ctx context.Context, comicID string, filter Filter, limit, offset int) ([]*Comment, int, error) {
	return service.repo.ListByComic(ctx, comicID, filter, limit, offset)
}

/*
PostComment validates and stores a new comment.

Description: The body is trimmed; its length is counted in characters, not
bytes.
*/
func (service *Service) PostComment(ctx context.Context, comment *Comment) error {
	comment.Body = strings.TrimSpace(comment.Body)
	if comment.ChapterID != nil && *comment.ChapterID == "" {
		comment.ChapterID = nil
	}

	length := utf8.RuneCountInString(comment.Body)
	validator := &validate.Validator{}
	validator.Custom(FieldBody, length < MinBodyLength, "Comment cannot be empty")
	validator.Custom(FieldBody, length > MaxBodyLength, "Comment must be at most 2000 characters")
	if comment.ChapterID != nil {
		validator.UUID(FieldChapterID, *comment.ChapterID)
	}
	if err := validator.Err(); err != nil {
		return err
	}

	comment.ID = uuid.New()
	if err := service.repo.Create(ctx, comment); err != nil {
		return err
	}

	service.logger.Info("comment_posted",
		slog.String("comment_id", comment.ID),
		slog.String("comic_id", comment.ComicID),
		slog.String("user_id", comment.UserID),
	)
	return nil
}

// DeleteComment soft-deletes a comment the caller owns, or any comment when
// the caller is a moderator or above.
func (service *Service) DeleteComment(ctx context.Context, id string, actor *sec.AuthClaims) error {
	comment, err := service.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if comment.UserID != actor.UserID && !sec.UserRole(actor.Role).AtLeast(sec.RoleModerator) {
		return ErrNotOwner
	}

	if err := service.repo.SoftDelete(ctx, id); err != nil {
		return err
	}

	service.logger.Warn("comment_deleted",
		slog.String("comment_id", id),
		slog.String("actor_id", actor.UserID),
	)
	return nil
}
