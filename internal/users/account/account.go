// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package account manages profiles and staff administration of accounts.

Credentials and sessions belong to package auth; this package edits the
mutable profile fields, lets a reader close their account, and lets admins
change roles or suspend users.
*/
package account

import (
	"context"

	"github.com/taibuivan/yomira-press/internal/platform/sec"
	"github.com/taibuivan/yomira-press/internal/users/auth"
)

// Filter narrows the admin account listing.
type Filter struct {
	Query string
	Role  sec.UserRole
}

// Roles lists every assignable role.
var Roles = sec.RoleNames()

// # Field Identifiers

const (
	FieldDisplayName = "display_name"
	FieldRole        = "role"
	FieldIsActive    = "is_active"
	FieldPassword    = "password"
)

// MaxDisplayNameLength bounds the public display name.
const MaxDisplayNameLength = 64

// # Repository Contracts

// Repository persists account profile and administrative state.
type Repository interface {

	// List returns live accounts matching filter, newest first, with the total.
	List(context context.Context, filter Filter, limit, offset int) ([]*auth.User, int, error)

	// FindByID returns a live account or dberr.ErrNotFound.
	FindByID(context context.Context, id string) (*auth.User, error)

	// UpdateProfile writes the display name.
	UpdateProfile(context context.Context, user *auth.User) error

	// UpdateRole writes the role.
	UpdateRole(context context.Context, id string, role sec.UserRole) error

	// SetActive enables or suspends the account.
	SetActive(context context.Context, id string, active bool) error

	/*
		SoftDelete closes an account.

		Description: The username and email are released by rewriting them
		to tombstone values, so they can be registered again.
	*/
	SoftDelete(context context.Context, id string) error
}

// SessionRevoker ends sessions. [auth.SessionRepository] satisfies it.
type SessionRevoker interface {
	RevokeAll(context context.Context, userID, keepID string) error
}
