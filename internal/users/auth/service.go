// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/taibuivan/yomira-press/internal/platform/apperr"
	"github.com/taibuivan/yomira-press/internal/platform/dberr"
	"github.com/taibuivan/yomira-press/internal/platform/sec"
	"github.com/taibuivan/yomira-press/internal/platform/validate"
	"github.com/taibuivan/yomira-press/pkg/uuid"
)

// # Contracts & Types

// TokenProvider signs access tokens. [sec.TokenService] satisfies it.
type TokenProvider interface {
	GenerateAccessToken(userID, username, role string, timeToLive time.Duration) (string, error)
}

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

var (
	// ErrInvalidCredentials is deliberately identical for unknown logins and
	// wrong passwords.
	ErrInvalidCredentials = apperr.Unauthorized("Invalid login credentials")

	// ErrInvalidRefresh covers missing, expired, revoked and replayed tokens.
	ErrInvalidRefresh = apperr.Unauthorized("Invalid or expired refresh token")
)

// Service implements account and session use cases.
type Service struct {
	users    UserRepository
	sessions SessionRepository
	tokens   TokenProvider
	logger   *slog.Logger
	now      func() time.Time
}

// NewService constructs a [Service].
func NewService(users UserRepository, sessions SessionRepository, tokens TokenProvider, logger *slog.Logger) *Service {
	return &Service{
		users:    users,
		sessions: sessions,
		tokens:   tokens,
		logger:   logger,
		now:      time.Now,
	}
}

// # Registration

// RegisterInput holds the data required to enroll a new reader.
type RegisterInput struct {
	Username    string
	Email       string
	Password    string
	DisplayName string
}

/*
Register validates, hashes, and persists a new member account.

Returns:
  - *User: The created account
  - error: Validation failure, or Conflict when the email or username is taken
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*User, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.DisplayName = strings.TrimSpace(input.DisplayName)

	validator := &validate.Validator{}
	validator.Required(FieldUsername, input.Username).
		MinLen(FieldUsername, input.Username, MinUsernameLength).
		MaxLen(FieldUsername, input.Username, MaxUsernameLength).
		Custom(FieldUsername, input.Username != "" && !usernamePattern.MatchString(input.Username), "may only contain letters, digits and underscores").
		Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		Required(FieldPassword, input.Password).
		MinLen(FieldPassword, input.Password, MinPasswordLength).
		Custom(FieldPassword, len(input.Password) > sec.MaxPasswordBytes, "must be at most 72 bytes")
	if err := validator.Err(); err != nil {
		return nil, err
	}

	hash, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	if input.DisplayName == "" {
		input.DisplayName = input.Username
	}

	user := &User{
		ID:           uuid.New(),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		DisplayName:  input.DisplayName,
		Role:         sec.RoleMember,
		IsActive:     true,
	}

	if err := service.users.Create(context, user); err != nil {
		if errors.Is(err, dberr.ErrDuplicate) {
			return nil, apperr.Conflict("Email or username is already registered")
		}
		return nil, fmt.Errorf("auth_service_register_failed: %w", err)
	}

	service.logger.Info("account_registered", slog.String("user_id", user.ID))
	return user, nil
}

// # Sessions

// ClientInfo describes the device opening a session.
type ClientInfo struct {
	UserAgent string
	IPAddress string
}

// LoginSession is the transport-ready result of a login or refresh.
type LoginSession struct {
	AccessToken           string
	RefreshToken          string
	RefreshTokenExpiresAt time.Time
	SessionID             string
	User                  *User
}

/*
Login verifies credentials and opens a new session.

Description: Unknown logins, wrong passwords and disabled accounts all return
[ErrInvalidCredentials].
*/
func (service *Service) Login(context context.Context, login, password string, client ClientInfo) (*LoginSession, error) {
	user, err := service.users.FindByLogin(context, strings.TrimSpace(login))
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("auth_service_login_lookup_failed: %w", err)
	}

	if !user.IsActive || !sec.CheckPasswordHash(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	issued, next, err := service.issue(user, client)
	if err != nil {
		return nil, err
	}

	if err := service.sessions.Create(context, next); err != nil {
		return nil, fmt.Errorf("auth_service_session_creation_failed: %w", err)
	}

	if err := service.users.TouchLogin(context, user.ID); err != nil {
		service.logger.Warn("login_touch_failed", slog.String("user_id", user.ID), slog.Any("error", err))
	}

	service.logger.Info("login_succeeded", slog.String("user_id", user.ID), slog.String("session_id", next.ID))
	return issued, nil
}

/*
Refresh rotates a refresh token.

Description: The presented session is revoked and replaced in one
transaction. A token that was already rotated is rejected, so a replayed
token never yields a second session.
*/
func (service *Service) Refresh(context context.Context, refreshToken string, client ClientInfo) (*LoginSession, error) {
	if refreshToken == "" {
		return nil, ErrInvalidRefresh
	}

	current, err := service.sessions.FindActive(context, sec.HashToken(refreshToken))
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return nil, ErrInvalidRefresh
		}
		return nil, fmt.Errorf("auth_service_refresh_lookup_failed: %w", err)
	}

	user, err := service.users.FindByID(context, current.UserID)
	if err != nil || !user.IsActive {
		_ = service.sessions.Revoke(context, current.ID)
		return nil, ErrInvalidRefresh
	}

	issued, next, err := service.issue(user, client)
	if err != nil {
		return nil, err
	}

	if err := service.sessions.Rotate(context, current.ID, next); err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			service.logger.Warn("refresh_token_replayed", slog.String("session_id", current.ID))
			return nil, ErrInvalidRefresh
		}
		return nil, fmt.Errorf("auth_service_refresh_rotate_failed: %w", err)
	}

	return issued, nil
}

// Logout revokes the session behind refreshToken. Unknown tokens are ignored.
func (service *Service) Logout(context context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}

	session, err := service.sessions.FindActive(context, sec.HashToken(refreshToken))
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("auth_service_logout_lookup_failed: %w", err)
	}

	if err := service.sessions.Revoke(context, session.ID); err != nil {
		return fmt.Errorf("auth_service_logout_failed: %w", err)
	}
	return nil
}

// Me returns the account behind an access token.
func (service *Service) Me(context context.Context, userID string) (*User, error) {
	return service.users.FindByID(context, userID)
}

/*
ChangePassword replaces the password after checking the current one.

Description: Every other session of the user is revoked. The session behind
currentRefreshToken, if any, stays alive.
*/
func (service *Service) ChangePassword(context context.Context, userID, currentPassword, newPassword, currentRefreshToken string) error {
	validator := &validate.Validator{}
	validator.Required(FieldCurrentPassword, currentPassword).
		Required(FieldNewPassword, newPassword).
		MinLen(FieldNewPassword, newPassword, MinPasswordLength).
		Custom(FieldNewPassword, len(newPassword) > sec.MaxPasswordBytes, "must be at most 72 bytes")
	if err := validator.Err(); err != nil {
		return err
	}

	user, err := service.users.FindByID(context, userID)
	if err != nil {
		return err
	}

	if !sec.CheckPasswordHash(currentPassword, user.PasswordHash) {
		return apperr.Unauthorized("Current password is incorrect")
	}

	hash, err := sec.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	if err := service.users.UpdatePassword(context, userID, hash); err != nil {
		return fmt.Errorf("auth_service_password_update_failed: %w", err)
	}

	keepID := ""
	if currentRefreshToken != "" {
		if session, err := service.sessions.FindActive(context, sec.HashToken(currentRefreshToken)); err == nil && session.UserID == userID {
			keepID = session.ID
		}
	}

	if err := service.sessions.RevokeAll(context, userID, keepID); err != nil {
		return fmt.Errorf("auth_service_revoke_sessions_failed: %w", err)
	}

	service.logger.Info("password_changed", slog.String("user_id", userID))
	return nil
}

// ListSessions returns the live sessions of a user.
func (service *Service) ListSessions(context context.Context, userID string) ([]*Session, error) {
	return service.sessions.ListActive(context, userID)
}

// RevokeSession ends one of the user's own sessions.
func (service *Service) RevokeSession(context context.Context, userID, sessionID string) error {
	sessions, err := service.sessions.ListActive(context, userID)
	if err != nil {
		return err
	}

	for _, session := range sessions {
		if session.ID == sessionID {
			return service.sessions.Revoke(context, sessionID)
		}
	}
	return dberr.ErrNotFound
}

// PurgeExpiredSessions deletes sessions past their expiry.
func (service *Service) PurgeExpiredSessions(context context.Context) (int64, error) {
	purged, err := service.sessions.DeleteExpired(context)
	if err != nil {
		return 0, fmt.Errorf("auth_service_purge_failed: %w", err)
	}
	if purged > 0 {
		service.logger.Info("sessions_purged", slog.Int64("count", purged))
	}
	return purged, nil
}

// issue signs an access token and prepares, but does not store, a session.
func (service *Service) issue(user *User, client ClientInfo) (*LoginSession, *Session, error) {
	accessToken, err := service.tokens.GenerateAccessToken(user.ID, user.Username, string(user.Role), AccessTokenTTL)
	if err != nil {
		return nil, nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	refreshToken, err := sec.GenerateSecureToken(RefreshTokenLength)
	if err != nil {
		return nil, nil, fmt.Errorf("auth_service_refresh_token_failed: %w", err)
	}

	expiresAt := service.now().Add(RefreshTokenTTL)
	session := &Session{
		ID:        uuid.New(),
		UserID:    user.ID,
		TokenHash: sec.HashToken(refreshToken),
		UserAgent: client.UserAgent,
		IPAddress: client.IPAddress,
		ExpiresAt: expiresAt,
	}

	return &LoginSession{
		AccessToken:           accessToken,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresAt: expiresAt,
		SessionID:             session.ID,
		User:                  user,
	}, session, nil
}
