// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package genre_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yomira-press/internal/core/genre"
)

type staticRepository []*genre.Genre

func (repo staticRepository) List(context.Context) ([]*genre.Genre, error) {
	return repo, nil
}

/*
TestListGenres_Prefix filters case-insensitively and keeps the order.
*/
func TestListGenres_Prefix(t *testing.T) {
	repo := staticRepository{
		{Name: "romance", ComicCount: 9},
		{Name: "action", ComicCount: 7},
		{Name: "romcom", ComicCount: 2},
	}
	service := genre.NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))

	all, err := service.ListGenres(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	matched, err := service.ListGenres(context.Background(), " ROM ")
	require.NoError(t, err)
	require.Len(t, matched, 2)
	assert.Equal(t, "romance", matched[0].Name)
	assert.Equal(t, "romcom", matched[1].Name)

	none, err := service.ListGenres(context.Background(), "horror")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}
