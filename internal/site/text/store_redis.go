// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package text

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/yomira-press/internal/platform/constants"
	"github.com/taibuivan/yomira-press/internal/platform/dberr"
)

/*
CachedRepository wraps a [Repository] with a Redis read-through cache.

Description: The full copy set is cached as one JSON document; every write
drops it. Redis failures are logged and fall back to the wrapped store.
*/
type CachedRepository struct {
	next   Repository
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewCachedRepository constructs a [CachedRepository].
func NewCachedRepository(next Repository, client *redis.Client, ttl time.Duration, logger *slog.Logger) *CachedRepository {
	return &CachedRepository{next: next, client: client, ttl: ttl, logger: logger}
}

// List implements [Repository].
func (repository *CachedRepository) List(context context.Context) ([]*Text, error) {
	raw, err := repository.client.Get(context, constants.RedisKeySiteTexts).Bytes()
	if err == nil {
		var texts []*Text
		if err := json.Unmarshal(raw, &texts); err == nil {
			return texts, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		repository.logger.Warn("site_text_cache_read_failed", slog.Any("error", err))
	}

	texts, err := repository.next.List(context)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(texts); err == nil {
		if err := repository.client.Set(context, constants.RedisKeySiteTexts, payload, repository.ttl).Err(); err != nil {
			repository.logger.Warn("site_text_cache_write_failed", slog.Any("error", err))
		}
	}

	return texts, nil
}

// Get implements [Repository] by scanning the cached set.
func (repository *CachedRepository) Get(context context.Context, key string) (*Text, error) {
	texts, err := repository.List(context)
	if err != nil {
		return nil, err
	}

	for _, text := range texts {
		if text.Key == key {
			return text, nil
		}
	}
	return nil, dberr.ErrNotFound
}

// Upsert implements [Repository] and invalidates the cache.
func (repository *CachedRepository) Upsert(context context.Context, text *Text) error {
	if err := repository.next.Upsert(context, text); err != nil {
		return err
	}

	if err := repository.client.Del(context, constants.RedisKeySiteTexts).Err(); err != nil {
		return fmt.Errorf("redis: failed to invalidate site texts: %w", err)
	}
	return nil
}
