// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/yomira-press/internal/platform/database/schema"
	"github.com/taibuivan/yomira-press/internal/platform/dberr"
	"github.com/taibuivan/yomira-press/internal/platform/postgres"
)

// # User Repository

// PostgresUserRepository implements [UserRepository] on users.account.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository constructs a PostgreSQL backed account store.
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

var userColumns = schema.List(
	schema.UserAccount.ID,
	schema.UserAccount.Username,
	schema.UserAccount.Email,
	schema.UserAccount.Password,
	schema.UserAccount.DisplayName,
	schema.UserAccount.Role,
	schema.UserAccount.IsActive,
	schema.UserAccount.LastLoginAt,
	schema.UserAccount.CreatedAt,
	schema.UserAccount.UpdatedAt,
)

// UserScanTargets lists the destinations matching the account column order.
func UserScanTargets(user *User) []any {
	return []any{
		&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.DisplayName,
		&user.Role, &user.IsActive, &user.LastLoginAt, &user.CreatedAt, &user.UpdatedAt,
	}
}

// UserColumns is the select list matching [UserScanTargets].
func UserColumns() string {
	return userColumns
}

func (repository *PostgresUserRepository) findOne(context context.Context, where string, arg any) (*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s AND %s IS NULL`,
		userColumns, schema.UserAccount.Table, where, schema.UserAccount.DeletedAt)

	user := &User{}
	if err := repository.pool.QueryRow(context, query, arg).Scan(UserScanTargets(user)...); err != nil {
		return nil, dberr.Wrap(err, "find_user")
	}
	return user, nil
}

// FindByID implements [UserRepository].
func (repository *PostgresUserRepository) FindByID(context context.Context, id string) (*User, error) {
	return repository.findOne(context, schema.UserAccount.ID+" = $1", id)
}

// FindByLogin implements [UserRepository].
func (repository *PostgresUserRepository) FindByLogin(context context.Context, login string) (*User, error) {
	where := fmt.Sprintf(`(LOWER(%s) = LOWER($1) OR LOWER(%s) = LOWER($1))`,
		schema.UserAccount.Email, schema.UserAccount.Username)
	return repository.findOne(context, where, login)
}

// Create implements [UserRepository].
func (repository *PostgresUserRepository) Create(context context.Context, user *User) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, TRUE)
		RETURNING %s, %s, %s
	`,
		schema.UserAccount.Table,
		schema.UserAccount.ID, schema.UserAccount.Username, schema.UserAccount.Email,
		schema.UserAccount.Password, schema.UserAccount.DisplayName, schema.UserAccount.Role,
		schema.UserAccount.IsActive,
		schema.UserAccount.IsActive, schema.UserAccount.CreatedAt, schema.UserAccount.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		user.ID, user.Username, user.Email, user.PasswordHash, user.DisplayName, user.Role,
	).Scan(&user.IsActive, &user.CreatedAt, &user.UpdatedAt)

	return dberr.Wrap(err, "create_user")
}

// UpdatePassword implements [UserRepository].
func (repository *PostgresUserRepository) UpdatePassword(context context.Context, userID, passwordHash string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = NOW() WHERE %s = $1 AND %s IS NULL`,
		schema.UserAccount.Table, schema.UserAccount.Password, schema.UserAccount.UpdatedAt,
		schema.UserAccount.ID, schema.UserAccount.DeletedAt)

	tag, err := repository.pool.Exec(context, query, userID, passwordHash)
	if err != nil {
		return fmt.Errorf("postgres: failed to update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

// TouchLogin implements [UserRepository].
func (repository *PostgresUserRepository) TouchLogin(context context.Context, userID string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = NOW() WHERE %s = $1`,
		schema.UserAccount.Table, schema.UserAccount.LastLoginAt, schema.UserAccount.ID)

	if _, err := repository.pool.Exec(context, query, userID); err != nil {
		return fmt.Errorf("postgres: failed to record login: %w", err)
	}
	return nil
}

// # Session Repository

// PostgresSessionRepository implements [SessionRepository] on users.session.
type PostgresSessionRepository struct {
	pool *pgxpool.Pool
}

// NewSessionRepository constructs a PostgreSQL backed session store.
func NewSessionRepository(pool *pgxpool.Pool) *PostgresSessionRepository {
	return &PostgresSessionRepository{pool: pool}
}

var sessionColumns = schema.List(
	schema.UserSession.ID,
	schema.UserSession.UserID,
	schema.UserSession.TokenHash,
	schema.UserSession.UserAgent,
	schema.UserSession.IPAddress,
	schema.UserSession.ExpiresAt,
	schema.UserSession.RevokedAt,
	schema.UserSession.CreatedAt,
)

func sessionScanTargets(session *Session) []any {
	return []any{
		&session.ID, &session.UserID, &session.TokenHash, &session.UserAgent,
		&session.IPAddress, &session.ExpiresAt, &session.RevokedAt, &session.CreatedAt,
	}
}

type execer interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func insertSession(context context.Context, db execer, session *Session) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING %s
	`,
		schema.UserSession.Table,
		schema.UserSession.ID, schema.UserSession.UserID, schema.UserSession.TokenHash,
		schema.UserSession.UserAgent, schema.UserSession.IPAddress, schema.UserSession.ExpiresAt,
		schema.UserSession.CreatedAt,
	)

	err := db.QueryRow(context, query,
		session.ID, session.UserID, session.TokenHash, session.UserAgent, session.IPAddress, session.ExpiresAt,
	).Scan(&session.CreatedAt)

	return dberr.Wrap(err, "create_session")
}

// Create implements [SessionRepository].
func (repository *PostgresSessionRepository) Create(context context.Context, session *Session) error {
	return insertSession(context, repository.pool, session)
}

// FindActive implements [SessionRepository].
func (repository *PostgresSessionRepository) FindActive(context context.Context, tokenHash string) (*Session, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s IS NULL AND %s > NOW()`,
		sessionColumns, schema.UserSession.Table,
		schema.UserSession.TokenHash, schema.UserSession.RevokedAt, schema.UserSession.ExpiresAt)

	session := &Session{}
	if err := repository.pool.QueryRow(context, query, tokenHash).Scan(sessionScanTargets(session)...); err != nil {
		return nil, dberr.Wrap(err, "find_session")
	}
	return session, nil
}

/*
Rotate implements [SessionRepository].

Description: The revoke is conditional on the old session still being live,
so two concurrent refreshes with the same token cannot both succeed.
*/
func (repository *PostgresSessionRepository) Rotate(context context.Context, oldSessionID string, next *Session) error {
	return postgres.InTx(context, repository.pool, func(tx pgx.Tx) error {
		revoke := fmt.Sprintf(`UPDATE %s SET %s = NOW() WHERE %s = $1 AND %s IS NULL`,
			schema.UserSession.Table, schema.UserSession.RevokedAt, schema.UserSession.ID, schema.UserSession.RevokedAt)

		tag, err := tx.Exec(context, revoke, oldSessionID)
		if err != nil {
			return fmt.Errorf("postgres: failed to revoke session: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return dberr.ErrNotFound
		}

		return insertSession(context, tx, next)
	})
}

// Revoke implements [SessionRepository].
func (repository *PostgresSessionRepository) Revoke(context context.Context, sessionID string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = NOW() WHERE %s = $1 AND %s IS NULL`,
		schema.UserSession.Table, schema.UserSession.RevokedAt, schema.UserSession.ID, schema.UserSession.RevokedAt)

	if _, err := repository.pool.Exec(context, query, sessionID); err != nil {
		return fmt.Errorf("postgres: failed to revoke session: %w", err)
	}
	return nil
}

// RevokeAll implements [SessionRepository].
func (repository *PostgresSessionRepository) RevokeAll(context context.Context, userID, keepID string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = NOW() WHERE %s = $1 AND %s IS NULL AND %s::text <> $2`,
		schema.UserSession.Table, schema.UserSession.RevokedAt, schema.UserSession.UserID,
		schema.UserSession.RevokedAt, schema.UserSession.ID)

	if _, err := repository.pool.Exec(context, query, userID, keepID); err != nil {
		return fmt.Errorf("postgres: failed to revoke sessions: %w", err)
	}
	return nil
}

// ListActive implements [SessionRepository].
func (repository *PostgresSessionRepository) ListActive(context context.Context, userID string) ([]*Session, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s IS NULL AND %s > NOW() ORDER BY %s DESC`,
		sessionColumns, schema.UserSession.Table, schema.UserSession.UserID,
		schema.UserSession.RevokedAt, schema.UserSession.ExpiresAt, schema.UserSession.CreatedAt)

	rows, err := repository.pool.Query(context, query, userID)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to list sessions: %w", err)
	}

	sessions, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*Session, error) {
		session := &Session{}
		return session, row.Scan(sessionScanTargets(session)...)
	})
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to scan sessions: %w", err)
	}
	return sessions, nil
}

// DeleteExpired implements [SessionRepository].
func (repository *PostgresSessionRepository) DeleteExpired(context context.Context) (int64, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s < NOW()`, schema.UserSession.Table, schema.UserSession.ExpiresAt)

	tag, err := repository.pool.Exec(context, query)
	if err != nil {
		return 0, fmt.Errorf("postgres: failed to purge sessions: %w", err)
	}
	return tag.RowsAffected(), nil
}
