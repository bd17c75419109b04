// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package imgur

import (
	"context"
	"fmt"
	"log/slog"
)

// Importer runs the extraction waterfall for one link at a time.
//
// It is safe for concurrent use; each call to [Importer.Extract] keeps its
// own payload cache.
type Importer struct {
	fetcher    Fetcher
	strategies []Strategy
	logger     *slog.Logger
}

// NewImporter returns an importer using strategies in the given order, or
// [DefaultStrategies] when none are passed.
func NewImporter(fetcher Fetcher, logger *slog.Logger, strategies ...Strategy) *Importer {
	if len(strategies) == 0 {
		strategies = DefaultStrategies()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Importer{fetcher: fetcher, strategies: strategies, logger: logger}
}

/*
Extract resolves raw into an ordered list of page images.

Description: Direct image links short-circuit to a single page without any
network call. Album and gallery links both read /a/{id}: the JSON document
first, then the HTML page, each fetched at most once and only when a strategy
needs it.

Failure rules:
  - Invalid input returns [ErrInvalidURL].
  - A failed JSON fetch or an undecodable payload only skips that strategy.
  - A failed HTML fetch returns [ErrAlbumUnavailable].
  - Every strategy empty returns [ErrNoImages].

Returns:
  - []ExtractedImage: Pages numbered 1..N
  - error: One of the above, or the context error
*/
func (importer *Importer) Extract(ctx context.Context, raw string) ([]ExtractedImage, error) {
	ref := Classify(raw)

	switch ref.Kind {
	case KindInvalid:
		return nil, ErrInvalidURL
	case KindDirect:
		return Sequence([]string{ref.ImageURL()}), nil
	}

	log := importer.logger.With(slog.String("album_id", ref.ID), slog.String("kind", string(ref.Kind)))
	payloads := &payloadCache{fetcher: importer.fetcher, albumID: ref.ID}

	for _, strategy := range importer.strategies {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		payload, err := payloads.load(ctx, strategy.Source)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			if strategy.Source == SourcePage {
				log.Warn("imgur_page_unavailable", slog.Any("error", err))
				return nil, ErrAlbumUnavailable.WithCause(err)
			}
			log.Warn("imgur_strategy_failed",
				slog.String("strategy", strategy.Name),
				slog.Any("error", err),
			)
			continue
		}

		urls, err := strategy.Extract(payload)
		if err != nil {
			log.Warn("imgur_strategy_failed",
				slog.String("strategy", strategy.Name),
				slog.Any("error", err),
			)
			continue
		}

		if len(urls) == 0 {
			log.Debug("imgur_strategy_empty", slog.String("strategy", strategy.Name))
			continue
		}

		log.Info("imgur_album_extracted",
			slog.String("strategy", strategy.Name),
			slog.Int("images", len(urls)),
		)
		return Sequence(urls), nil
	}

	return nil, ErrNoImages
}

// payloadCache fetches each upstream document on first use and remembers the
// outcome, failures included, so no source is requested twice.
type payloadCache struct {
	fetcher Fetcher
	albumID string

	bodies map[Source][]byte
	errs   map[Source]error
}

func (cache *payloadCache) load(ctx context.Context, source Source) ([]byte, error) {
	if cache.bodies == nil {
		cache.bodies = make(map[Source][]byte, 2)
		cache.errs = make(map[Source]error, 2)
	}

	if err, seen := cache.errs[source]; seen {
		return nil, err
	}
	if body, seen := cache.bodies[source]; seen {
		return body, nil
	}

	var (
		body []byte
		err  error
	)
	switch source {
	case SourceJSON:
		body, err = cache.fetcher.FetchAlbumJSON(ctx, cache.albumID)
	case SourcePage:
		body, err = cache.fetcher.FetchAlbumPage(ctx, cache.albumID)
	default:
		err = fmt.Errorf("imgur: unknown source %d", source)
	}

	if err != nil {
		cache.errs[source] = err
		return nil, err
	}

	cache.bodies[source] = body
	return body, nil
}
