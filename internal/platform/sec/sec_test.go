// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"crypto/rand"
	"crypto/rsa"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yomira-press/internal/platform/sec"
)

/*
TestUserRole_AtLeast verifies the role hierarchy used by the admin routes.
*/
func TestUserRole_AtLeast(t *testing.T) {
	assert.True(t, sec.RoleAdmin.AtLeast(sec.RoleAdmin))
	assert.True(t, sec.RoleAdmin.AtLeast(sec.RoleModerator))
	assert.True(t, sec.RoleModerator.AtLeast(sec.RoleMember))
	assert.False(t, sec.RoleMember.AtLeast(sec.RoleAdmin))
	assert.False(t, sec.UserRole("ghost").AtLeast(sec.RoleMember))
}

/*
TestGenerateSecureToken checks uniqueness and hashing stability.
*/
func TestGenerateSecureToken(t *testing.T) {
	first, err := sec.GenerateSecureToken(32)
	require.NoError(t, err)
	second, err := sec.GenerateSecureToken(32)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.Len(t, first, 43) // 32 bytes, raw base64url

	assert.Equal(t, sec.HashToken(first), sec.HashToken(first))
	assert.NotEqual(t, sec.HashToken(first), sec.HashToken(second))
	assert.Len(t, sec.HashToken(first), 64)
}

/*
TestPasswordHash verifies bcrypt round trip.
*/
func TestPasswordHash(t *testing.T) {
	hash, err := sec.HashPassword("correct horse battery")
	require.NoError(t, err)

	assert.True(t, sec.CheckPasswordHash("correct horse battery", hash))
	assert.False(t, sec.CheckPasswordHash("wrong", hash))
}

/*
TestHashPassword_TooLong checks the bcrypt input limit.
*/
func TestHashPassword_TooLong(t *testing.T) {
	_, err := sec.HashPassword(strings.Repeat("a", sec.MaxPasswordBytes+1))
	assert.ErrorIs(t, err, sec.ErrPasswordTooLong)
}

/*
TestRoleNames lists roles least privileged first and validates names.
*/
func TestRoleNames(t *testing.T) {
	assert.Equal(t, []string{"member", "author", "moderator", "admin"}, sec.RoleNames())
	assert.True(t, sec.RoleAuthor.Valid())
	assert.False(t, sec.UserRole("root").Valid())
}

func newTokenService(t *testing.T, issuer string) *sec.TokenService {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return sec.NewTokenServiceFromKeys(key, &key.PublicKey, issuer)
}

/*
TestTokenService_RoundTrip signs and verifies a token.
*/
func TestTokenService_RoundTrip(t *testing.T) {
	service := newTokenService(t, "yomira.app")

	token, err := service.GenerateAccessToken("u-1", "reader", string(sec.RoleMember), time.Minute)
	require.NoError(t, err)

	claims, err := service.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "reader", claims.Username)
	assert.Equal(t, "member", claims.Role)
}

/*
TestTokenService_Rejections covers expiry, foreign keys and foreign issuers.
*/
func TestTokenService_Rejections(t *testing.T) {
	service := newTokenService(t, "yomira.app")

	expired, err := service.GenerateAccessToken("u-1", "reader", "member", -time.Hour)
	require.NoError(t, err)
	_, err = service.VerifyToken(expired)
	assert.Error(t, err)

	foreign, err := newTokenService(t, "yomira.app").GenerateAccessToken("u-1", "reader", "member", time.Minute)
	require.NoError(t, err)
	_, err = service.VerifyToken(foreign)
	assert.Error(t, err)

	other := newTokenService(t, "elsewhere")
	otherToken, err := other.GenerateAccessToken("u-1", "reader", "member", time.Minute)
	require.NoError(t, err)
	_, err = service.VerifyToken(otherToken)
	assert.Error(t, err)

	_, err = service.VerifyToken("not.a.token")
	assert.Error(t, err)
}
