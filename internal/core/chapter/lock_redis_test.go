// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package chapter_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yomira-press/internal/core/chapter"
	"github.com/taibuivan/yomira-press/internal/platform/constants"
)

func newRedisLock(t *testing.T) (*chapter.RedisImportLock, *miniredis.Miniredis) {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return chapter.NewRedisImportLock(client), server
}

/*
TestRedisImportLock_Exclusive verifies a held lock refuses a second holder and
carries the TTL it was given.
*/
func TestRedisImportLock_Exclusive(t *testing.T) {
	lock, server := newRedisLock(t)
	ctx := context.Background()
	key := constants.RedisPrefixImportLock + chapterID

	token, err := lock.Acquire(ctx, chapterID, time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	value, err := server.Get(key)
	require.NoError(t, err)
	assert.Equal(t, token, value)
	assert.Equal(t, time.Minute, server.TTL(key))

	second, err := lock.Acquire(ctx, chapterID, time.Minute)
	require.NoError(t, err)
	assert.Empty(t, second)

	require.NoError(t, lock.Release(ctx, chapterID, token))
	assert.False(t, server.Exists(key))
}

/*
TestRedisImportLock_ExpiredHolderCannotRelease verifies an import whose lock
expired does not delete the lock of the import that took over.
*/
func TestRedisImportLock_ExpiredHolderCannotRelease(t *testing.T) {
	lock, server := newRedisLock(t)
	ctx := context.Background()
	key := constants.RedisPrefixImportLock + chapterID

	first, err := lock.Acquire(ctx, chapterID, time.Minute)
	require.NoError(t, err)

	server.FastForward(time.Minute + time.Second)

	second, err := lock.Acquire(ctx, chapterID, time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, second)
	assert.NotEqual(t, first, second)

	require.NoError(t, lock.Release(ctx, chapterID, first))

	value, err := server.Get(key)
	require.NoError(t, err)
	assert.Equal(t, second, value)

	third, err := lock.Acquire(ctx, chapterID, time.Minute)
	require.NoError(t, err)
	assert.Empty(t, third)

	require.NoError(t, lock.Release(ctx, chapterID, second))
	assert.False(t, server.Exists(key))
}
