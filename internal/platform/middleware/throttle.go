// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/taibuivan/yomira-press/internal/platform/apperr"
	"github.com/taibuivan/yomira-press/internal/platform/constants"
	"github.com/taibuivan/yomira-press/internal/platform/ctxutil"
	"github.com/taibuivan/yomira-press/internal/platform/respond"
)

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per client. Idle buckets are swept
// inline, at most once per [constants.RateLimitCleanupInterval].
type RateLimiter struct {
	limit rate.Limit
	burst int
	now   func() time.Time

	mu        sync.Mutex
	buckets   map[string]*bucket
	lastSweep time.Time
}

// NewRateLimiter allows rps requests per second per client with the given burst.
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	return &RateLimiter{
		limit:   rate.Limit(rps),
		burst:   burst,
		now:     time.Now,
		buckets: make(map[string]*bucket),
	}
}

// Allow consumes one token for key.
func (limiter *RateLimiter) Allow(key string) bool {
	now := limiter.now()

	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	if now.Sub(limiter.lastSweep) >= constants.RateLimitCleanupInterval {
		for k, b := range limiter.buckets {
			if now.Sub(b.lastSeen) > constants.RateLimitClientTTL {
				delete(limiter.buckets, k)
			}
		}
		limiter.lastSweep = now
	}

	b, ok := limiter.buckets[key]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(limiter.limit, limiter.burst)}
		limiter.buckets[key] = b
	}
	b.lastSeen = now

	return b.limiter.AllowN(now, 1)
}

// retryAfter is the whole number of seconds until one token refills.
func (limiter *RateLimiter) retryAfter() int {
	if limiter.limit <= 0 {
		return 60
	}
	return int(math.Ceil(1 / float64(limiter.limit)))
}

// Handler rejects over-limit requests with 429 and a Retry-After header.
// Authenticated callers are keyed by user id, anonymous ones by IP.
func (limiter *RateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		key := "ip:" + RealIP(request)
		if claims := ctxutil.GetAuthUser(request.Context()); claims != nil {
			key = "user:" + claims.UserID
		}

		if !limiter.Allow(key) {
			seconds := limiter.retryAfter()
			writer.Header().Set("Retry-After", strconv.Itoa(seconds))
			respond.Error(writer, request, apperr.RateLimited(seconds))
			return
		}

		next.ServeHTTP(writer, request)
	})
}

// Throttle is shorthand for a fresh [RateLimiter] used as middleware.
func Throttle(rps float64, burst int) func(http.Handler) http.Handler {
	return NewRateLimiter(rps, burst).Handler
}

// NewImportThrottle builds the limiter for routes that trigger outbound album
// fetches. Pass the same instance to every such route so parse and import
// draw on one budget per user.
func NewImportThrottle() func(http.Handler) http.Handler {
	return NewRateLimiter(constants.ImportRateLimitRPS, constants.ImportRateLimitBurst).Handler
}
