// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import "context"

// # User Data Access

// UserRepository persists accounts.
type UserRepository interface {

	// FindByID returns a live account or dberr.ErrNotFound.
	FindByID(context context.Context, id string) (*User, error)

	/*
		FindByLogin resolves an email or a username, case-insensitively.

		Returns:
		  - *User: The live account
		  - error: dberr.ErrNotFound when neither matches
	*/
	FindByLogin(context context.Context, login string) (*User, error)

	/*
		Create stores a new account.

		Returns:
		  - error: dberr.ErrDuplicate when the email or username is taken
	*/
	Create(context context.Context, user *User) error

	// UpdatePassword replaces the password hash.
	UpdatePassword(context context.Context, userID, passwordHash string) error

	// TouchLogin records a successful login.
	TouchLogin(context context.Context, userID string) error
}

// # Session Data Access

// SessionRepository persists refresh-token sessions.
type SessionRepository interface {

	// Create stores a session.
	Create(context context.Context, session *Session) error

	// FindActive returns the unrevoked, unexpired session for tokenHash, or
	// dberr.ErrNotFound.
	FindActive(context context.Context, tokenHash string) (*Session, error)

	/*
		Rotate revokes the old session and stores the new one atomically.

		Returns:
		  - error: dberr.ErrNotFound when the old session was already revoked,
		    which means its refresh token was replayed
	*/
	Rotate(context context.Context, oldSessionID string, next *Session) error

	// Revoke ends one session. Revoking twice is not an error.
	Revoke(context context.Context, sessionID string) error

	// RevokeAll ends every session of the user except keepID (may be empty).
	RevokeAll(context context.Context, userID, keepID string) error

	// ListActive returns the user's live sessions, newest first.
	ListActive(context context.Context, userID string) ([]*Session, error)

	// DeleteExpired purges sessions past their expiry and returns the count.
	DeleteExpired(context context.Context) (int64, error)
}
