// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package text

import (
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/taibuivan/yomira-press/internal/platform/validate"
)

// Service exposes site copy.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a new [Service].
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// ListTexts returns every text.
func (service *Service) ListTexts(ctx context.Context) ([]*Text, error) {
	return service.repo.List(ctx)
}

// GetText returns one text by key.
func (service *Service) GetText(ctx context.Context, key string) (*Text, error) {
	return service.repo.Get(ctx, strings.ToLower(strings.TrimSpace(key)))
}

// PutText creates or replaces the copy stored under key.
func (service *Service) PutText(ctx context.Context, key, value, description string) (*Text, error) {
	text := &Text{
		Key:         strings.ToLower(strings.TrimSpace(key)),
		Value:       value,
		Description: strings.TrimSpace(description),
	}

	validator := &validate.Validator{}
	validator.Custom(FieldKey, !keyPattern.MatchString(text.Key), "Use lowercase letters, digits, dots, dashes or underscores")
	validator.Custom(FieldValue, utf8.RuneCountInString(text.Value) > MaxValueLength, "Value is too long")
	validator.MaxLen(FieldDescription, text.Description, 500)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.repo.Upsert(ctx, text); err != nil {
		return nil, err
	}

	service.logger.Info("site_text_updated", slog.String("key", text.Key))
	return text, nil
}
