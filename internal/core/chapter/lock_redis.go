// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package chapter

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/yomira-press/internal/platform/constants"
	"github.com/taibuivan/yomira-press/pkg/uuid"
)

// RedisImportLock implements [ImportLock] with SET NX keys that expire on their own.
// Each holder stores a random token, and release only deletes a key that
// still carries it.
type RedisImportLock struct {
	client *redis.Client
}

// releaseScript deletes KEYS[1] only while it holds ARGV[1].
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// NewRedisImportLock creates a Redis-backed [ImportLock].
func NewRedisImportLock(client *redis.Client) *RedisImportLock {
	return &RedisImportLock{client: client}
}

func importLockKey(chapterID string) string {
	return constants.RedisPrefixImportLock + chapterID
}

/*
Acquire claims the import lock for a chapter.

Description: The key expires after ttl, so a crashed import cannot block the
chapter forever. ttl must outlive the import deadline.

Returns:
  - string: The holder token, or "" if another import holds the lock
  - error: Connectivity errors
*/
func (lock *RedisImportLock) Acquire(context context.Context, chapterID string, ttl time.Duration) (string, error) {
	token := uuid.New()

	acquired, err := lock.client.SetNX(context, importLockKey(chapterID), token, ttl).Result()
	if err != nil {
		return "", fmt.Errorf("redis_import_lock_acquire_failed: %w", err)
	}
	if !acquired {
		return "", nil
	}
	return token, nil
}

// Release deletes the lock key if token still owns it. A lock that expired
// and was claimed by another import is left alone.
func (lock *RedisImportLock) Release(context context.Context, chapterID, token string) error {
	if err := releaseScript.Run(context, lock.client, []string{importLockKey(chapterID)}, token).Err(); err != nil {
		return fmt.Errorf("redis_import_lock_release_failed: %w", err)
	}
	return nil
}
