// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package imgur_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yomira-press/internal/imgur"
	"github.com/taibuivan/yomira-press/internal/platform/constants"
)

// fixture serves one album's JSON document and HTML page and counts hits.
type fixture struct {
	jsonStatus int
	jsonBody   string
	pageStatus int
	pageBody   string

	jsonHits  atomic.Int32
	pageHits  atomic.Int32
	userAgent atomic.Value
}

func (f *fixture) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	f.userAgent.Store(request.Header.Get("User-Agent"))

	switch request.URL.Path {
	case "/a/alb1.json":
		f.jsonHits.Add(1)
		writer.WriteHeader(statusOr(f.jsonStatus))
		_, _ = io.WriteString(writer, f.jsonBody)
	case "/a/alb1":
		f.pageHits.Add(1)
		writer.WriteHeader(statusOr(f.pageStatus))
		_, _ = io.WriteString(writer, f.pageBody)
	default:
		http.NotFound(writer, request)
	}
}

func statusOr(status int) int {
	if status == 0 {
		return http.StatusOK
	}
	return status
}

func newImporter(t *testing.T, f *fixture, retries int) *imgur.Importer {
	t.Helper()

	server := httptest.NewServer(f)
	t.Cleanup(server.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	fetcher := imgur.NewHTTPFetcher(imgur.Options{
		BaseURL:    server.URL,
		Timeout:    2 * time.Second,
		MaxRetries: retries,
		RetryWait:  time.Millisecond,
		Logger:     logger,
	})

	return imgur.NewImporter(fetcher, logger)
}

/*
TestExtract_DirectLink verifies a direct image never reaches the network.
*/
func TestExtract_DirectLink(t *testing.T) {
	f := &fixture{}
	importer := newImporter(t, f, 0)

	images, err := importer.Extract(context.Background(), "https://i.imgur.com/img1.jpg")

	require.NoError(t, err)
	assert.Equal(t, []imgur.ExtractedImage{{URL: "https://i.imgur.com/img1.jpg", PageNumber: 1}}, images)
	assert.Zero(t, f.jsonHits.Load())
	assert.Zero(t, f.pageHits.Load())
}

/*
TestExtract_InvalidURL verifies rejected input makes no requests.
*/
func TestExtract_InvalidURL(t *testing.T) {
	f := &fixture{}
	importer := newImporter(t, f, 0)

	images, err := importer.Extract(context.Background(), "https://example.com/a/xyz")

	assert.Nil(t, images)
	assert.ErrorIs(t, err, imgur.ErrInvalidURL)
	assert.Equal(t, "Invalid imgur URL format", imgur.NewResult(images, err).Error)
	assert.Zero(t, f.jsonHits.Load()+f.pageHits.Load())
}

/*
TestExtract_JSONWins verifies the JSON endpoint short-circuits the page fetch.
*/
func TestExtract_JSONWins(t *testing.T) {
	f := &fixture{
		jsonBody: `{"images":[{"hash":"a","ext":".jpg"},{"hash":"b","ext":".png"}]}`,
		pageBody: `<img src="https://i.imgur.com/zzz.jpg">`,
	}
	importer := newImporter(t, f, 0)

	images, err := importer.Extract(context.Background(), "https://imgur.com/a/alb1")

	require.NoError(t, err)
	assert.Equal(t, []imgur.ExtractedImage{
		{URL: "https://i.imgur.com/a.jpg", PageNumber: 1},
		{URL: "https://i.imgur.com/b.png", PageNumber: 2},
	}, images)
	assert.EqualValues(t, 1, f.jsonHits.Load())
	assert.Zero(t, f.pageHits.Load())
	assert.Equal(t, constants.ImgurUserAgent, f.userAgent.Load())
}

/*
TestExtract_FallsBackToEmbedded verifies a failed JSON fetch moves on to the page.
*/
func TestExtract_FallsBackToEmbedded(t *testing.T) {
	f := &fixture{
		jsonStatus: http.StatusNotFound,
		pageBody: `<script>var album = {"album_images":{"images":[{"hash":"e1","ext":".jpg"}]}};</script>
			<img src="https://i.imgur.com/other.jpg">`,
	}
	importer := newImporter(t, f, 0)

	images, err := importer.Extract(context.Background(), "https://imgur.com/gallery/alb1")

	require.NoError(t, err)
	assert.Equal(t, []imgur.ExtractedImage{{URL: "https://i.imgur.com/e1.jpg", PageNumber: 1}}, images)
	assert.EqualValues(t, 1, f.jsonHits.Load())
	assert.EqualValues(t, 1, f.pageHits.Load())
}

/*
TestExtract_PageScanLastResort verifies the regex scan runs on the same page
body, deduplicating links, without a second page request.
*/
func TestExtract_PageScanLastResort(t *testing.T) {
	f := &fixture{
		jsonBody: `not json`,
		pageBody: `<img src="https://i.imgur.com/p1.jpg"><img src="https://i.imgur.com/p2.gif"><img src="https://i.imgur.com/p1.jpg">`,
	}
	importer := newImporter(t, f, 0)

	images, err := importer.Extract(context.Background(), "imgur.com/a/alb1")

	require.NoError(t, err)
	assert.Equal(t, []imgur.ExtractedImage{
		{URL: "https://i.imgur.com/p1.jpg", PageNumber: 1},
		{URL: "https://i.imgur.com/p2.gif", PageNumber: 2},
	}, images)
	assert.EqualValues(t, 1, f.pageHits.Load())
}

/*
TestExtract_NoImages verifies the error returned when every strategy is empty.
*/
func TestExtract_NoImages(t *testing.T) {
	f := &fixture{
		jsonBody: `{"images":[]}`,
		pageBody: `<html><body>nothing here</body></html>`,
	}
	importer := newImporter(t, f, 0)

	images, err := importer.Extract(context.Background(), "https://imgur.com/a/alb1")

	assert.Empty(t, images)
	assert.ErrorIs(t, err, imgur.ErrNoImages)

	result := imgur.NewResult(images, err)
	assert.False(t, result.Success)
	assert.Equal(t, "Could not extract images from imgur album", result.Error)
}

/*
TestExtract_PageUnavailable verifies 5xx responses are retried a bounded
number of times before the album is reported unavailable.
*/
func TestExtract_PageUnavailable(t *testing.T) {
	f := &fixture{
		jsonStatus: http.StatusNotFound,
		pageStatus: http.StatusServiceUnavailable,
	}
	importer := newImporter(t, f, 1)

	_, err := importer.Extract(context.Background(), "https://imgur.com/a/alb1")

	assert.ErrorIs(t, err, imgur.ErrAlbumUnavailable)
	assert.EqualValues(t, 1, f.jsonHits.Load(), "4xx must not be retried")
	assert.EqualValues(t, 2, f.pageHits.Load())

	var fetchErr *imgur.FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, http.StatusServiceUnavailable, fetchErr.Status)
}

/*
TestExtract_Cancelled verifies a cancelled context stops the waterfall.
*/
func TestExtract_Cancelled(t *testing.T) {
	f := &fixture{jsonBody: `{"images":[{"hash":"a"}]}`}
	importer := newImporter(t, f, 0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := importer.Extract(ctx, "https://imgur.com/a/alb1")

	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, f.jsonHits.Load())
}

/*
TestExtract_CustomStrategies verifies the order passed to NewImporter is honoured.
*/
func TestExtract_CustomStrategies(t *testing.T) {
	f := &fixture{
		jsonBody: `{"images":[{"hash":"a"}]}`,
		pageBody: `<img src="https://i.imgur.com/p1.png">`,
	}

	server := httptest.NewServer(f)
	t.Cleanup(server.Close)

	fetcher := imgur.NewHTTPFetcher(imgur.Options{BaseURL: server.URL})
	importer := imgur.NewImporter(fetcher, nil, imgur.Strategy{
		Name:    "page-only",
		Source:  imgur.SourcePage,
		Extract: imgur.FromPageLinks,
	})

	images, err := importer.Extract(context.Background(), "https://imgur.com/a/alb1")

	require.NoError(t, err)
	assert.Equal(t, []imgur.ExtractedImage{{URL: "https://i.imgur.com/p1.png", PageNumber: 1}}, images)
	assert.Zero(t, f.jsonHits.Load())
}
