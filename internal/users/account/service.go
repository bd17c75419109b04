// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/taibuivan/yomira-press/internal/platform/apperr"
	"github.com/taibuivan/yomira-press/internal/platform/sec"
	"github.com/taibuivan/yomira-press/internal/platform/validate"
	"github.com/taibuivan/yomira-press/internal/users/auth"
)

// ErrSelfModification stops an admin from demoting or suspending themself.
var ErrSelfModification = apperr.Forbidden("Admins cannot change their own role or status")

// # Service Layer

// Service implements profile and account administration use cases.
type Service struct {
	repository Repository
	sessions   SessionRevoker
	logger     *slog.Logger
}

// NewService constructs a [Service].
func NewService(repository Repository, sessions SessionRevoker, logger *slog.Logger) *Service {
	return &Service{repository: repository, sessions: sessions, logger: logger}
}

// # Profile

// UpdateProfile changes the caller's display name.
func (service *Service) UpdateProfile(context context.Context, userID, displayName string) (*auth.User, error) {
	displayName = strings.TrimSpace(displayName)

	validator := &validate.Validator{}
	validator.Required(FieldDisplayName, displayName).
		MaxLen(FieldDisplayName, displayName, MaxDisplayNameLength)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	user, err := service.repository.FindByID(context, userID)
	if err != nil {
		return nil, err
	}

	user.DisplayName = displayName
	if err := service.repository.UpdateProfile(context, user); err != nil {
		return nil, fmt.Errorf("account_service_update_profile_failed: %w", err)
	}

	return user, nil
}

/*
DeleteAccount closes the caller's account after re-checking the password.

Description: Every session is revoked. Comments and ratings stay, attributed
to the tombstoned account.
*/
func (service *Service) DeleteAccount(context context.Context, userID, password string) error {
	user, err := service.repository.FindByID(context, userID)
	if err != nil {
		return err
	}

	if !sec.CheckPasswordHash(password, user.PasswordHash) {
		return apperr.Unauthorized("Password is incorrect")
	}

	if err := service.repository.SoftDelete(context, userID); err != nil {
		return fmt.Errorf("account_service_delete_failed: %w", err)
	}

	if err := service.sessions.RevokeAll(context, userID, ""); err != nil {
		return fmt.Errorf("account_service_revoke_failed: %w", err)
	}

	service.logger.Info("account_deleted", slog.String("user_id", userID))
	return nil
}

// # Administration

// ListAccounts returns a page of accounts for staff.
func (service *Service) ListAccounts(context context.Context, filter Filter, limit, offset int) ([]*auth.User, int, error) {
	filter.Query = strings.TrimSpace(filter.Query)

	if filter.Role != "" {
		validator := &validate.Validator{}
		validator.OneOf(FieldRole, string(filter.Role), Roles...)
		if err := validator.Err(); err != nil {
			return nil, 0, err
		}
	}

	return service.repository.List(context, filter, limit, offset)
}

// GetAccount returns one account for staff.
func (service *Service) GetAccount(context context.Context, id string) (*auth.User, error) {
	return service.repository.FindByID(context, id)
}

// ChangeRole assigns role to the account. The change applies to new access
// tokens; tokens already issued keep the old role until they expire.
func (service *Service) ChangeRole(context context.Context, actorID, id string, role sec.UserRole) (*auth.User, error) {
	validator := &validate.Validator{}
	validator.Required(FieldRole, string(role)).OneOf(FieldRole, string(role), Roles...)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if actorID == id {
		return nil, ErrSelfModification
	}

	if err := service.repository.UpdateRole(context, id, role); err != nil {
		return nil, err
	}

	service.logger.Info("account_role_changed",
		slog.String("user_id", id),
		slog.String("role", string(role)),
		slog.String("actor_id", actorID),
	)
	return service.repository.FindByID(context, id)
}

// SetActive suspends or restores an account. Suspension revokes every session.
func (service *Service) SetActive(context context.Context, actorID, id string, active bool) (*auth.User, error) {
	if actorID == id {
		return nil, ErrSelfModification
	}

	if err := service.repository.SetActive(context, id, active); err != nil {
		return nil, err
	}

	if !active {
		if err := service.sessions.RevokeAll(context, id, ""); err != nil {
			return nil, fmt.Errorf("account_service_revoke_failed: %w", err)
		}
	}

	service.logger.Info("account_status_changed",
		slog.String("user_id", id),
		slog.Bool("active", active),
		slog.String("actor_id", actorID),
	)
	return service.repository.FindByID(context, id)
}
