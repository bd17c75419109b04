package author_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yomira-press/internal/core/author"
	"github.com/taibuivan/yomira-press/internal/platform/dberr"
	"github.com/taibuivan/yomira-press/pkg/pointer"
)

type memoryRepository struct {
	nextID  int
	authors map[int]*author.Author
	updates int
}

func (repo *memoryRepository) List(_ context.Context, _ author.Filter, _, _ int) ([]*author.Author, int, error) {
	out := make([]*author.Author, 0, len(repo.authors))
	for _, a := range repo.authors {
		out = append(out, a)
	}
	return out, len(out), nil
}

func (repo *memoryRepository) FindByID(_ context.Context, id int) (*author.Author, error) {
	a, ok := repo.authors[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	clone := *a
	return &clone, nil
}

func (repo *memoryRepository) Create(_ context.Context, a *author.Author) error {
	repo.nextID++
	a.ID = repo.nextID
	clone := *a
	repo.authors[a.ID] = &clone
	return nil
}

func (repo *memoryRepository) Update(_ context.Context, a *author.Author) error {
	repo.updates++
	clone := *a
	repo.authors[a.ID] = &clone
	return nil
}

func (repo *memoryRepository) SoftDelete(_ context.Context, id int) error {
	if _, ok := repo.authors[id]; !ok {
		return dberr.ErrNotFound
	}
	delete(repo.authors, id)
	return nil
}

func newService() (*author.Service, *memoryRepository) {
	repo := &memoryRepository{authors: make(map[int]*author.Author)}
	return author.NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil))), repo
}

/*
TestCreateAuthor_Normalizes trims names and drops blank alternates.
*/
func TestCreateAuthor_Normalizes(t *testing.T) {
	service, repo := newService()

	a := &author.Author{
		Name:     "  Oda Eiichiro ",
		NameAlt:  []string{" 尾田栄一郎", "", "  "},
		ImageURL: pointer.To(" "),
	}
	require.NoError(t, service.CreateAuthor(context.Background(), a))

	assert.Equal(t, 1, a.ID)
	assert.Equal(t, "Oda Eiichiro", a.Name)
	assert.Equal(t, []string{"尾田栄一郎"}, a.NameAlt)
	assert.Nil(t, a.ImageURL)
	assert.Len(t, repo.authors, 1)
}

/*
TestCreateAuthor_Validation rejects a blank name and a malformed image URL.
*/
func TestCreateAuthor_Validation(t *testing.T) {
	service, repo := newService()

	err := service.CreateAuthor(context.Background(), &author.Author{
		Name:     " ",
		ImageURL: pointer.To("not a url"),
	})
	require.Error(t, err)
	assert.Empty(t, repo.authors)
}

/*
TestUpdateAuthor_Partial only touches the provided fields.
*/
func TestUpdateAuthor_Partial(t *testing.T) {
	service, repo := newService()

	a := &author.Author{Name: "Before", Bio: pointer.To("bio")}
	require.NoError(t, service.CreateAuthor(context.Background(), a))

	updated, err := service.UpdateAuthor(context.Background(), a.ID, author.UpdateInput{Name: pointer.To("After")})
	require.NoError(t, err)

	assert.Equal(t, "After", updated.Name)
	assert.Equal(t, "bio", pointer.Val(updated.Bio))
	assert.Equal(t, 1, repo.updates)
}

/*
TestGetAuthor_InvalidID never reaches storage for unparsable ids.
*/
func TestGetAuthor_InvalidID(t *testing.T) {
	service, _ := newService()

	_, err := service.GetAuthor(context.Background(), 0)
	assert.ErrorIs(t, err, dberr.ErrNotFound)

	assert.ErrorIs(t, service.DeleteAuthor(context.Background(), -3), dberr.ErrNotFound)
}
