// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package genre

import (
	"context"
	"log/slog"
	"strings"

	"github.com/taibuivan/yomira-press/pkg/slice"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// ListGenres returns the genre index. prefix, when set, keeps only genres
// starting with it (case-insensitive), for tag pickers.
func (service *Service) ListGenres(context context.Context, prefix string) ([]*Genre, error) {
	genres, err := service.repo.List(context)
	if err != nil {
		return nil, err
	}

	prefix = strings.ToLower(strings.TrimSpace(prefix))
	if prefix == "" {
		return genres, nil
	}

	matched := slice.Filter(genres, func(genre *Genre) bool {
		return strings.HasPrefix(genre.Name, prefix)
	})
	if matched == nil {
		matched = []*Genre{}
	}
	return matched, nil
}
