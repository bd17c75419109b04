// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package rating

import (
	"context"
	"log/slog"

	"github.com/taibuivan/yomira-press/internal/platform/validate"
)

// Service applies the rating rules.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a new [Service].
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// GetSummary returns the aggregate. userID may be empty for anonymous callers.
func (service *Service) GetSummary(ctx context.Context, comicID, userID string) (*Summary, error) {
	summary, err := service.repo.Summary(ctx, comicID)
	if err != nil {
		return nil, err
	}

	if userID != "" {
		score, err := service.repo.UserScore(ctx, userID, comicID)
		if err != nil {
			return nil, err
		}
		summary.UserScore = score
	}

	return summary, nil
}

// Rate records score for the user, replacing any earlier score.
func (service *Service) Rate(ctx context.Context, userID, comicID string, score int) (*Summary, error) {
	validator := &validate.Validator{}
	validator.Range(FieldScore, score, MinScore, MaxScore)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	summary, err := service.repo.Upsert(ctx, userID, comicID, score)
	if err != nil {
		return nil, err
	}

	service.logger.Info("comic_rated",
		slog.String("comic_id", comicID),
		slog.String("user_id", userID),
		slog.Int("score", score),
	)
	return summary, nil
}

// Unrate withdraws the user's score.
func (service *Service) Unrate(ctx context.Context, userID, comicID string) (*Summary, error) {
	return service.repo.Remove(ctx, userID, comicID)
}
