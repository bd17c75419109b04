// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package text_test

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yomira-press/internal/platform/dberr"
	"github.com/taibuivan/yomira-press/internal/site/text"
)

type memoryRepository struct {
	texts map[string]*text.Text
}

func (repo *memoryRepository) List(_ context.Context) ([]*text.Text, error) {
	out := []*text.Text{}
	for _, t := range repo.texts {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func (repo *memoryRepository) Get(_ context.Context, key string) (*text.Text, error) {
	t, ok := repo.texts[key]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	return t, nil
}

func (repo *memoryRepository) Upsert(_ context.Context, t *text.Text) error {
	if existing, ok := repo.texts[t.Key]; ok && t.Description == "" {
		t.Description = existing.Description
	}
	clone := *t
	repo.texts[t.Key] = &clone
	return nil
}

func newService() (*text.Service, *memoryRepository) {
	repo := &memoryRepository{texts: make(map[string]*text.Text)}
	return text.NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil))), repo
}

/*
TestPutText_KeyRules normalises case and rejects keys outside the allowed
alphabet.
*/
func TestPutText_KeyRules(t *testing.T) {
	tests := []struct {
		key   string
		valid bool
	}{
		{key: "footer.copyright", valid: true},
		{key: "  About_Page ", valid: true},
		{key: "banner-2026", valid: true},
		{key: "", valid: false},
		{key: ".hidden", valid: false},
		{key: "with space", valid: false},
		{key: strings.Repeat("k", 101), valid: false},
	}

	for _, tt := range tests {
		service, repo := newService()

		_, err := service.PutText(context.Background(), tt.key, "value", "")
		if tt.valid {
			assert.NoError(t, err, tt.key)
			assert.Len(t, repo.texts, 1, tt.key)
			continue
		}
		assert.Error(t, err, tt.key)
		assert.Empty(t, repo.texts, tt.key)
	}
}

/*
TestPutText_Replaces keeps the description when an update omits it.
*/
func TestPutText_Replaces(t *testing.T) {
	service, _ := newService()
	ctx := context.Background()

	_, err := service.PutText(ctx, "footer.copyright", "© 2025", "Footer line")
	require.NoError(t, err)

	updated, err := service.PutText(ctx, "footer.copyright", "© 2026", "")
	require.NoError(t, err)
	assert.Equal(t, "Footer line", updated.Description)

	got, err := service.GetText(ctx, "FOOTER.copyright")
	require.NoError(t, err)
	assert.Equal(t, "© 2026", got.Value)
}

/*
TestGetText_Missing surfaces not found.
*/
func TestGetText_Missing(t *testing.T) {
	service, _ := newService()

	_, err := service.GetText(context.Background(), "nope")
	assert.ErrorIs(t, err, dberr.ErrNotFound)
}
