// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comic_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yomira-press/internal/core/comic"
	"github.com/taibuivan/yomira-press/internal/platform/apperr"
	"github.com/taibuivan/yomira-press/internal/platform/dberr"
	"github.com/taibuivan/yomira-press/pkg/pointer"
)

type memoryRepository struct {
	byID      map[string]*comic.Comic
	slugCalls int
	idCalls   int
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{byID: make(map[string]*comic.Comic)}
}

func (repo *memoryRepository) List(_ context.Context, _ comic.Filter, _, _ int) ([]*comic.Comic, int, error) {
	out := make([]*comic.Comic, 0, len(repo.byID))
	for _, c := range repo.byID {
		out = append(out, c)
	}
	return out, len(out), nil
}

func (repo *memoryRepository) FindByID(_ context.Context, id string) (*comic.Comic, error) {
	repo.idCalls++
	c, ok := repo.byID[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	clone := *c
	return &clone, nil
}

func (repo *memoryRepository) FindBySlug(_ context.Context, slug string) (*comic.Comic, error) {
	repo.slugCalls++
	for _, c := range repo.byID {
		if c.Slug == slug {
			clone := *c
			return &clone, nil
		}
	}
	return nil, dberr.ErrNotFound
}

func (repo *memoryRepository) Create(_ context.Context, c *comic.Comic) error {
	for _, existing := range repo.byID {
		if existing.Slug == c.Slug {
			return dberr.ErrDuplicate
		}
	}
	clone := *c
	repo.byID[c.ID] = &clone
	return nil
}

func (repo *memoryRepository) Update(_ context.Context, c *comic.Comic) error {
	if _, ok := repo.byID[c.ID]; !ok {
		return dberr.ErrNotFound
	}
	clone := *c
	repo.byID[c.ID] = &clone
	return nil
}

func (repo *memoryRepository) SoftDelete(_ context.Context, id string) error {
	if _, ok := repo.byID[id]; !ok {
		return dberr.ErrNotFound
	}
	delete(repo.byID, id)
	return nil
}

func newService() (*comic.Service, *memoryRepository) {
	repo := newMemoryRepository()
	return comic.NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil))), repo
}

/*
TestCreateComic_Defaults covers slug derivation, the default status and
genre normalisation.
*/
func TestCreateComic_Defaults(t *testing.T) {
	service, repo := newService()

	c := &comic.Comic{
		Title:  "  Café Noir  ",
		Genres: []string{" Action", "action", "", "Drama"},
	}
	require.NoError(t, service.CreateComic(context.Background(), c))

	assert.NotEmpty(t, c.ID)
	assert.Equal(t, "Café Noir", c.Title)
	assert.Equal(t, "cafe-noir", c.Slug)
	assert.Equal(t, comic.StatusOngoing, c.Status)
	assert.Equal(t, []string{"action", "drama"}, c.Genres)
	assert.Contains(t, repo.byID, c.ID)
}

/*
TestCreateComic_EmptyGenres stores an empty array rather than NULL.
*/
func TestCreateComic_EmptyGenres(t *testing.T) {
	service, _ := newService()

	c := &comic.Comic{Title: "Blank"}
	require.NoError(t, service.CreateComic(context.Background(), c))

	assert.NotNil(t, c.Genres)
	assert.Empty(t, c.Genres)
}

/*
TestCreateComic_Validation reports every invalid field at once.
*/
func TestCreateComic_Validation(t *testing.T) {
	service, repo := newService()

	err := service.CreateComic(context.Background(), &comic.Comic{
		Title:    "",
		Slug:     "Not A Slug",
		Status:   comic.Status("paused"),
		CoverURL: "ftp//broken",
	})
	require.Error(t, err)

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)

	fields := make(map[string]bool)
	for _, detail := range appErr.Details {
		fields[detail.Field] = true
	}
	assert.True(t, fields[comic.FieldTitle])
	assert.True(t, fields[comic.FieldSlug])
	assert.True(t, fields[comic.FieldStatus])
	assert.True(t, fields[comic.FieldCoverURL])
	assert.Empty(t, repo.byID)
}

/*
TestCreateComic_DuplicateSlug surfaces the storage conflict unchanged.
*/
func TestCreateComic_DuplicateSlug(t *testing.T) {
	service, _ := newService()

	require.NoError(t, service.CreateComic(context.Background(), &comic.Comic{Title: "Twin"}))
	err := service.CreateComic(context.Background(), &comic.Comic{Title: "Twin"})

	assert.ErrorIs(t, err, dberr.ErrDuplicate)
}

/*
TestGetComic_RoutesByIdentifier resolves UUIDs by primary key and anything
else by slug.
*/
func TestGetComic_RoutesByIdentifier(t *testing.T) {
	service, repo := newService()

	c := &comic.Comic{Title: "Night Market"}
	require.NoError(t, service.CreateComic(context.Background(), c))

	byID, err := service.GetComic(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, c.Slug, byID.Slug)
	assert.Equal(t, 1, repo.idCalls)
	assert.Equal(t, 0, repo.slugCalls)

	bySlug, err := service.GetComic(context.Background(), "night-market")
	require.NoError(t, err)
	assert.Equal(t, c.ID, bySlug.ID)
	assert.Equal(t, 1, repo.slugCalls)

	_, err = service.GetComic(context.Background(), "missing")
	assert.ErrorIs(t, err, dberr.ErrNotFound)
}

/*
TestUpdateComic_KeepsSlug leaves the slug alone when only the title changes.
*/
func TestUpdateComic_KeepsSlug(t *testing.T) {
	service, _ := newService()

	c := &comic.Comic{Title: "First Name"}
	require.NoError(t, service.CreateComic(context.Background(), c))

	updated, err := service.UpdateComic(context.Background(), c.ID, comic.UpdateInput{
		Title:  pointer.To("Second Name"),
		Status: pointer.To(comic.StatusHiatus),
		Genres: pointer.To([]string{"Romance", "romance"}),
	})
	require.NoError(t, err)

	assert.Equal(t, "Second Name", updated.Title)
	assert.Equal(t, "first-name", updated.Slug)
	assert.Equal(t, comic.StatusHiatus, updated.Status)
	assert.Equal(t, []string{"romance"}, updated.Genres)
}

/*
TestUpdateComic_InvalidStatus rejects the change without writing it.
*/
func TestUpdateComic_InvalidStatus(t *testing.T) {
	service, repo := newService()

	c := &comic.Comic{Title: "Stable"}
	require.NoError(t, service.CreateComic(context.Background(), c))

	_, err := service.UpdateComic(context.Background(), c.ID, comic.UpdateInput{
		Status: pointer.To(comic.Status("unknown")),
	})
	require.Error(t, err)
	assert.Equal(t, comic.StatusOngoing, repo.byID[c.ID].Status)
}

/*
TestDeleteComic_Missing maps to not found.
*/
func TestDeleteComic_Missing(t *testing.T) {
	service, _ := newService()
	assert.ErrorIs(t, service.DeleteComic(context.Background(), "nope"), dberr.ErrNotFound)
}
