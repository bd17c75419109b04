// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package imgur

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/taibuivan/yomira-press/internal/platform/constants"
)

// Fetcher retrieves the two album documents the extractor works from.
type Fetcher interface {
	// FetchAlbumJSON returns the body of {base}/a/{id}.json.
	FetchAlbumJSON(ctx context.Context, albumID string) ([]byte, error)

	// FetchAlbumPage returns the body of {base}/a/{id}.
	FetchAlbumPage(ctx context.Context, albumID string) ([]byte, error)
}

// Options configures an [HTTPFetcher]. Zero values fall back to the package defaults.
type Options struct {
	BaseURL    string
	UserAgent  string
	Timeout    time.Duration
	MaxRetries int

	// RetryWait is the initial backoff between attempts.
	RetryWait time.Duration

	Logger *slog.Logger
}

const (
	defaultRetryWait    = 250 * time.Millisecond
	defaultRetryMaxWait = 2 * time.Second
)

// HTTPFetcher is the resty-backed [Fetcher].
type HTTPFetcher struct {
	client *resty.Client
	logger *slog.Logger
}

// NewHTTPFetcher builds a fetcher that sends a desktop User-Agent and retries
// transport failures and 5xx responses at most opts.MaxRetries times.
func NewHTTPFetcher(opts Options) *HTTPFetcher {
	if opts.BaseURL == "" {
		opts.BaseURL = constants.ImgurBaseURL
	}
	if opts.UserAgent == "" {
		opts.UserAgent = constants.ImgurUserAgent
	}
	if opts.Timeout <= 0 {
		opts.Timeout = constants.ImgurTimeout
	}
	if opts.RetryWait <= 0 {
		opts.RetryWait = defaultRetryWait
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	client := resty.New()
	client.SetBaseURL(strings.TrimRight(opts.BaseURL, "/"))
	client.SetHeader("User-Agent", opts.UserAgent)
	client.SetHeader("Accept-Language", "en-US,en;q=0.9")
	client.SetTimeout(opts.Timeout)

	client.SetRetryCount(opts.MaxRetries)
	client.SetRetryWaitTime(opts.RetryWait)
	client.SetRetryMaxWaitTime(defaultRetryMaxWait)
	client.AddRetryCondition(func(res *resty.Response, err error) bool {
		if err != nil {
			return true
		}
		return res.StatusCode() >= 500
	})

	logger := opts.Logger
	client.OnAfterResponse(func(_ *resty.Client, res *resty.Response) error {
		logger.Debug("imgur_response",
			slog.String("url", res.Request.URL),
			slog.Int("status", res.StatusCode()),
			slog.Int("attempt", res.Request.Attempt),
			slog.Duration("elapsed", res.Time()),
		)
		return nil
	})

	return &HTTPFetcher{client: client, logger: logger}
}

// FetchAlbumJSON implements [Fetcher].
func (fetcher *HTTPFetcher) FetchAlbumJSON(ctx context.Context, albumID string) ([]byte, error) {
	return fetcher.get(ctx, "/a/"+url.PathEscape(albumID)+".json", "application/json")
}

// FetchAlbumPage implements [Fetcher].
func (fetcher *HTTPFetcher) FetchAlbumPage(ctx context.Context, albumID string) ([]byte, error) {
	return fetcher.get(ctx, "/a/"+url.PathEscape(albumID), "text/html,application/xhtml+xml")
}

func (fetcher *HTTPFetcher) get(ctx context.Context, path, accept string) ([]byte, error) {
	res, err := fetcher.client.R().
		SetContext(ctx).
		SetHeader("Accept", accept).
		Get(path)
	if err != nil {
		return nil, &FetchError{URL: path, Err: err}
	}

	if !res.IsSuccess() {
		return nil, &FetchError{URL: res.Request.URL, Status: res.StatusCode()}
	}

	body := res.Body()
	if len(body) == 0 {
		return nil, &FetchError{URL: res.Request.URL, Status: res.StatusCode(), Err: errEmptyBody}
	}

	return body, nil
}
