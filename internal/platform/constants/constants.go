// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants holds the fixed values shared across packages: server
timing, rate limits, header and cookie names, cache keys and the Imgur
defaults that configuration falls back to.
*/
package constants

import "time"

const (
	AppName    = "yomira-press"
	AppVersion = "0.2.0-dev"
)

// # Server Timing

const (
	DefaultReadTimeout       = 5 * time.Second
	DefaultReadHeaderTimeout = 2 * time.Second
	DefaultIdleTimeout       = 120 * time.Second

	// DefaultWriteTimeout sits above GlobalRequestTimeout because an album
	// import may fetch two upstream documents before it answers.
	DefaultWriteTimeout = 35 * time.Second

	GlobalRequestTimeout = 30 * time.Second
	ShutdownTimeout      = 30 * time.Second
)

// # Rate Limiting

const (
	// RateLimitRPS and RateLimitBurst apply to every client by IP.
	RateLimitRPS   = 100.0
	RateLimitBurst = 150

	// ImportRateLimitRPS and ImportRateLimitBurst apply per staff user to the
	// routes that fetch albums from Imgur: 12 per minute after a burst of 5.
	ImportRateLimitRPS   = 0.2
	ImportRateLimitBurst = 5

	RateLimitCleanupInterval = time.Minute
	RateLimitClientTTL       = 3 * time.Minute
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderOrigin        = "Origin"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderAuthorization = "Authorization"
)

// # Authentication

const (
	AuthIssuer = "yomira.app"

	RefreshTokenCookieName = "refresh_token"
	RefreshTokenCookiePath = "/api/v1/auth"
)

// AllowedOriginSuffix is accepted by CORS outside development.
const AllowedOriginSuffix = "yomira.app"

// # Probe Fields

const (
	FieldStatus  = "status"
	FieldApp     = "app"
	FieldVersion = "version"
	FieldChecks  = "checks"
)

// # Redis Keys

const (
	// RedisPrefixImportLock guards a chapter against concurrent album imports.
	RedisPrefixImportLock = "chapter:import_lock:"

	// RedisKeySiteTexts holds the cached site copy as one JSON document.
	RedisKeySiteTexts = "site:texts"
	SiteTextCacheTTL  = 10 * time.Minute
)

// # Imgur

const (
	ImgurBaseURL      = "https://imgur.com"
	ImgurImageBaseURL = "https://i.imgur.com/"

	// ImgurUserAgent is sent with every album request. Imgur serves a reduced
	// page to clients without a desktop browser signature.
	ImgurUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

	ImgurTimeout  = 10 * time.Second
	ImportLockTTL = 60 * time.Second
)
