// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package chapter_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yomira-press/internal/core/chapter"
	"github.com/taibuivan/yomira-press/internal/imgur"
	"github.com/taibuivan/yomira-press/internal/platform/apperr"
	"github.com/taibuivan/yomira-press/internal/platform/dberr"
)

// # Fakes

type memoryRepository struct {
	mu           sync.Mutex
	chapters     map[string]*chapter.Chapter
	pages        map[string][]*chapter.Page
	replaceCalls int
	replaceErr   error
}

func newMemoryRepository(chapters ...*chapter.Chapter) *memoryRepository {
	repo := &memoryRepository{
		chapters: make(map[string]*chapter.Chapter),
		pages:    make(map[string][]*chapter.Page),
	}
	for _, c := range chapters {
		repo.chapters[c.ID] = c
	}
	return repo
}

func (repo *memoryRepository) ListByComic(_ context.Context, comicID string, _ chapter.Filter, _, _ int) ([]*chapter.Chapter, int, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	var out []*chapter.Chapter
	for _, c := range repo.chapters {
		if c.ComicID == comicID {
			out = append(out, c)
		}
	}
	return out, len(out), nil
}

func (repo *memoryRepository) FindByID(_ context.Context, id string) (*chapter.Chapter, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	c, ok := repo.chapters[id]
	if !ok || c.DeletedAt != nil {
		return nil, dberr.ErrNotFound
	}
	clone := *c
	return &clone, nil
}

func (repo *memoryRepository) Create(_ context.Context, c *chapter.Chapter) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	repo.chapters[c.ID] = c
	return nil
}

func (repo *memoryRepository) Update(_ context.Context, c *chapter.Chapter) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	repo.chapters[c.ID] = c
	return nil
}

func (repo *memoryRepository) SoftDelete(_ context.Context, id string) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	c, ok := repo.chapters[id]
	if !ok {
		return dberr.ErrNotFound
	}
	now := time.Now()
	c.DeletedAt = &now
	return nil
}

func (repo *memoryRepository) ListPages(_ context.Context, chapterID string) ([]*chapter.Page, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	pages := append([]*chapter.Page(nil), repo.pages[chapterID]...)
	sort.Slice(pages, func(i, j int) bool { return pages[i].PageNumber < pages[j].PageNumber })
	return pages, nil
}

func (repo *memoryRepository) ReplacePages(_ context.Context, chapterID string, pages []*chapter.Page, albumURL string) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	repo.replaceCalls++
	if repo.replaceErr != nil {
		return repo.replaceErr
	}

	repo.pages[chapterID] = append([]*chapter.Page(nil), pages...)
	c := repo.chapters[chapterID]
	c.ImgurAlbumURL = &albumURL
	c.PageSource = chapter.SourceImgur
	return nil
}

func (repo *memoryRepository) ClearAlbumLink(_ context.Context, chapterID string) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	repo.chapters[chapterID].ImgurAlbumURL = nil
	return nil
}

func (repo *memoryRepository) AppendPage(_ context.Context, page *chapter.Page) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	page.PageNumber = len(repo.pages[page.ChapterID]) + 1
	repo.pages[page.ChapterID] = append(repo.pages[page.ChapterID], page)
	repo.chapters[page.ChapterID].PageSource = chapter.SourceUpload
	return nil
}

func (repo *memoryRepository) IncrementViewCount(_ context.Context, id string, delta int64) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	repo.chapters[id].ViewCount += delta
	return nil
}

type memoryLock struct {
	mu     sync.Mutex
	held   map[string]string
	issued int
}

func newMemoryLock() *memoryLock {
	return &memoryLock{held: make(map[string]string)}
}

func (lock *memoryLock) Acquire(_ context.Context, chapterID string, _ time.Duration) (string, error) {
	lock.mu.Lock()
	defer lock.mu.Unlock()
	if _, taken := lock.held[chapterID]; taken {
		return "", nil
	}
	lock.issued++
	token := fmt.Sprintf("token-%d", lock.issued)
	lock.held[chapterID] = token
	return token, nil
}

func (lock *memoryLock) Release(_ context.Context, chapterID, token string) error {
	lock.mu.Lock()
	defer lock.mu.Unlock()
	if lock.held[chapterID] == token {
		delete(lock.held, chapterID)
	}
	return nil
}

type stubExtractor struct {
	albums   map[string][]string
	err      error
	calls    int
	deadline time.Time
}

func (stub *stubExtractor) Extract(ctx context.Context, raw string) ([]imgur.ExtractedImage, error) {
	stub.calls++
	stub.deadline, _ = ctx.Deadline()
	if stub.err != nil {
		return nil, stub.err
	}
	urls, ok := stub.albums[raw]
	if !ok {
		return nil, imgur.ErrNoImages
	}
	return imgur.Sequence(urls), nil
}

// # Helpers

const (
	chapterID = "0190a000-0000-7000-8000-000000000001"
	albumOne  = "https://imgur.com/a/one"
	albumTwo  = "https://imgur.com/gallery/two"
)

type harness struct {
	repo      *memoryRepository
	lock      *memoryLock
	extractor *stubExtractor
	service   *chapter.Service
}

func newHarness() *harness {
	h := &harness{
		repo: newMemoryRepository(&chapter.Chapter{ID: chapterID, ComicID: "comic-1", Number: 1, PageSource: chapter.SourceNone}),
		lock: newMemoryLock(),
		extractor: &stubExtractor{albums: map[string][]string{
			albumOne: {"https://i.imgur.com/a.jpg", "https://i.imgur.com/b.jpg", "https://i.imgur.com/c.png"},
			albumTwo: {"https://i.imgur.com/x.jpg"},
		}},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h.service = chapter.NewService(h.repo, h.lock, h.extractor, time.Minute, logger)
	return h
}

func pageView(pages []*chapter.Page) []imgur.ExtractedImage {
	out := make([]imgur.ExtractedImage, len(pages))
	for i, page := range pages {
		out[i] = imgur.ExtractedImage{URL: page.ImageURL, PageNumber: page.PageNumber}
	}
	return out
}

// # Import

/*
TestImportAlbum_StoresPages verifies pages and provenance after a first import.
*/
func TestImportAlbum_StoresPages(t *testing.T) {
	h := newHarness()

	result, err := h.service.ImportAlbum(context.Background(), chapterID, "  "+albumOne+"  ")
	require.NoError(t, err)

	assert.Equal(t, albumOne, result.AlbumURL)
	assert.Len(t, result.Pages, 3)

	stored, _ := h.repo.ListPages(context.Background(), chapterID)
	assert.Equal(t, []imgur.ExtractedImage{
		{URL: "https://i.imgur.com/a.jpg", PageNumber: 1},
		{URL: "https://i.imgur.com/b.jpg", PageNumber: 2},
		{URL: "https://i.imgur.com/c.png", PageNumber: 3},
	}, pageView(stored))

	c, _ := h.repo.FindByID(context.Background(), chapterID)
	require.True(t, c.HasAlbumLink())
	assert.Equal(t, albumOne, *c.ImgurAlbumURL)
	assert.Equal(t, chapter.SourceImgur, c.PageSource)
}

/*
TestImportAlbum_Idempotent verifies importing the same album twice yields the same page set.
*/
func TestImportAlbum_Idempotent(t *testing.T) {
	h := newHarness()
	ctx := context.Background()

	_, err := h.service.ImportAlbum(ctx, chapterID, albumOne)
	require.NoError(t, err)
	first, _ := h.repo.ListPages(ctx, chapterID)

	_, err = h.service.ImportAlbum(ctx, chapterID, albumOne)
	require.NoError(t, err)
	second, _ := h.repo.ListPages(ctx, chapterID)

	assert.Equal(t, pageView(first), pageView(second))
	assert.Equal(t, 2, h.repo.replaceCalls)
}

/*
TestImportAlbum_ReplacesPreviousPages verifies a re-import never mixes page sets.
*/
func TestImportAlbum_ReplacesPreviousPages(t *testing.T) {
	h := newHarness()
	ctx := context.Background()

	_, err := h.service.ImportAlbum(ctx, chapterID, albumOne)
	require.NoError(t, err)

	_, err = h.service.ImportAlbum(ctx, chapterID, albumTwo)
	require.NoError(t, err)

	stored, _ := h.repo.ListPages(ctx, chapterID)
	assert.Equal(t, []imgur.ExtractedImage{{URL: "https://i.imgur.com/x.jpg", PageNumber: 1}}, pageView(stored))
}

/*
TestImportAlbum_FailureKeepsPages verifies a failed extraction writes nothing.
*/
func TestImportAlbum_FailureKeepsPages(t *testing.T) {
	h := newHarness()
	ctx := context.Background()

	_, err := h.service.ImportAlbum(ctx, chapterID, albumOne)
	require.NoError(t, err)

	_, err = h.service.ImportAlbum(ctx, chapterID, "https://imgur.com/a/empty")
	assert.ErrorIs(t, err, imgur.ErrNoImages)
	assert.Equal(t, 1, h.repo.replaceCalls)

	stored, _ := h.repo.ListPages(ctx, chapterID)
	assert.Len(t, stored, 3)
}

/*
TestImportAlbum_InvalidURL verifies invalid input never reaches the extractor.
*/
func TestImportAlbum_InvalidURL(t *testing.T) {
	h := newHarness()

	_, err := h.service.ImportAlbum(context.Background(), chapterID, "https://example.com/a/one")

	assert.ErrorIs(t, err, imgur.ErrInvalidURL)
	assert.Zero(t, h.extractor.calls)
	assert.Zero(t, h.repo.replaceCalls)
}

/*
TestImportAlbum_MissingChapter verifies a 404 before any extraction.
*/
func TestImportAlbum_MissingChapter(t *testing.T) {
	h := newHarness()

	_, err := h.service.ImportAlbum(context.Background(), "missing", albumOne)

	assert.ErrorIs(t, err, dberr.ErrNotFound)
	assert.Zero(t, h.extractor.calls)
}

/*
TestImportAlbum_LockHeld verifies concurrent imports into one chapter are rejected.
*/
func TestImportAlbum_LockHeld(t *testing.T) {
	h := newHarness()
	ctx := context.Background()

	token, _ := h.lock.Acquire(ctx, chapterID, time.Minute)
	require.NotEmpty(t, token)

	_, err := h.service.ImportAlbum(ctx, chapterID, albumOne)

	assert.ErrorIs(t, err, chapter.ErrImportInProgress)
	assert.Equal(t, 409, apperr.As(err).HTTPStatus)
	assert.Zero(t, h.extractor.calls)
}

/*
TestImportAlbum_ReleasesLock verifies the lock is freed on success and on failure.
*/
func TestImportAlbum_ReleasesLock(t *testing.T) {
	h := newHarness()
	ctx := context.Background()

	_, err := h.service.ImportAlbum(ctx, chapterID, albumOne)
	require.NoError(t, err)
	assert.Empty(t, h.lock.held)

	h.extractor.err = imgur.ErrAlbumUnavailable.WithCause(errors.New("503"))
	_, err = h.service.ImportAlbum(ctx, chapterID, albumOne)
	assert.ErrorIs(t, err, imgur.ErrAlbumUnavailable)
	assert.Empty(t, h.lock.held)
}

/*
TestImportAlbum_FinishesBeforeLockExpiry verifies extraction runs under a
deadline shorter than the lock TTL.
*/
func TestImportAlbum_FinishesBeforeLockExpiry(t *testing.T) {
	h := newHarness()
	start := time.Now()

	_, err := h.service.ImportAlbum(context.Background(), chapterID, albumOne)
	require.NoError(t, err)

	require.False(t, h.extractor.deadline.IsZero())
	assert.True(t, h.extractor.deadline.Before(start.Add(time.Minute)))
}

/*
TestImportAlbum_StaleReleaseKeepsNewHolder verifies releasing an old token does
not free a lock another import now holds.
*/
func TestImportAlbum_StaleReleaseKeepsNewHolder(t *testing.T) {
	h := newHarness()
	ctx := context.Background()

	stale, _ := h.lock.Acquire(ctx, chapterID, time.Minute)
	require.NoError(t, h.lock.Release(ctx, chapterID, stale))

	current, _ := h.lock.Acquire(ctx, chapterID, time.Minute)
	require.NoError(t, h.lock.Release(ctx, chapterID, stale))

	_, err := h.service.ImportAlbum(ctx, chapterID, albumOne)
	assert.ErrorIs(t, err, chapter.ErrImportInProgress)
	assert.Equal(t, current, h.lock.held[chapterID])
}

/*
TestImportAlbum_StorageFailure verifies storage errors are returned as-is.
*/
func TestImportAlbum_StorageFailure(t *testing.T) {
	h := newHarness()
	h.repo.replaceErr = errors.New("connection reset")

	_, err := h.service.ImportAlbum(context.Background(), chapterID, albumOne)

	assert.EqualError(t, err, "connection reset")
}

// # Page Sources

/*
TestUploadPage_RejectedWhileLinked verifies uploads and imports never mix.
*/
func TestUploadPage_RejectedWhileLinked(t *testing.T) {
	h := newHarness()
	ctx := context.Background()

	_, err := h.service.ImportAlbum(ctx, chapterID, albumOne)
	require.NoError(t, err)

	_, err = h.service.UploadPage(ctx, chapterID, "https://cdn.example.com/p4.jpg")
	assert.ErrorIs(t, err, chapter.ErrAlbumLinked)

	require.NoError(t, h.service.RemoveAlbumLink(ctx, chapterID))

	page, err := h.service.UploadPage(ctx, chapterID, "https://cdn.example.com/p4.jpg")
	require.NoError(t, err)
	assert.Equal(t, 4, page.PageNumber)

	c, _ := h.repo.FindByID(ctx, chapterID)
	assert.False(t, c.HasAlbumLink())
	assert.Equal(t, chapter.SourceUpload, c.PageSource)
}

/*
TestRemoveAlbumLink_KeepsPages verifies removing the link leaves the pages alone.
*/
func TestRemoveAlbumLink_KeepsPages(t *testing.T) {
	h := newHarness()
	ctx := context.Background()

	_, err := h.service.ImportAlbum(ctx, chapterID, albumOne)
	require.NoError(t, err)

	require.NoError(t, h.service.RemoveAlbumLink(ctx, chapterID))
	require.NoError(t, h.service.RemoveAlbumLink(ctx, chapterID))

	stored, _ := h.repo.ListPages(ctx, chapterID)
	assert.Len(t, stored, 3)
}

/*
TestUploadPage_Validation verifies the image URL is checked before storage.
*/
func TestUploadPage_Validation(t *testing.T) {
	h := newHarness()

	_, err := h.service.UploadPage(context.Background(), chapterID, "ftp://nope")

	require.Error(t, err)
	assert.Equal(t, 400, apperr.As(err).HTTPStatus)
}

// # Chapter Lifecycle

/*
TestCreateChapter covers defaults and validation.
*/
func TestCreateChapter(t *testing.T) {
	h := newHarness()
	ctx := context.Background()

	created := &chapter.Chapter{ComicID: "comic-1", Number: 2.5, Title: "Side story"}
	require.NoError(t, h.service.CreateChapter(ctx, created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, chapter.SourceNone, created.PageSource)

	err := h.service.CreateChapter(ctx, &chapter.Chapter{Number: -1})
	require.Error(t, err)
	assert.Len(t, apperr.As(err).Details, 2)
}

/*
TestReadChapter verifies the reader gets pages and bumps the view count.
*/
func TestReadChapter(t *testing.T) {
	h := newHarness()
	ctx := context.Background()

	_, err := h.service.ImportAlbum(ctx, chapterID, albumTwo)
	require.NoError(t, err)

	c, err := h.service.ReadChapter(ctx, chapterID)
	require.NoError(t, err)
	assert.Len(t, c.Pages, 1)

	stored, _ := h.repo.FindByID(ctx, chapterID)
	assert.EqualValues(t, 1, stored.ViewCount)
}

/*
TestDeleteChapter verifies deleted chapters disappear from lookups.
*/
func TestDeleteChapter(t *testing.T) {
	h := newHarness()
	ctx := context.Background()

	require.NoError(t, h.service.DeleteChapter(ctx, chapterID))

	_, err := h.service.GetChapter(ctx, chapterID)
	assert.ErrorIs(t, err, dberr.ErrNotFound)
}
