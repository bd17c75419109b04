// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/yomira-press/internal/platform/database/schema"
	"github.com/taibuivan/yomira-press/internal/platform/dberr"
	"github.com/taibuivan/yomira-press/internal/platform/sec"
	"github.com/taibuivan/yomira-press/internal/users/auth"
)

// PostgresRepository implements [Repository] on users.account.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a [PostgresRepository].
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// List implements [Repository].
func (repository *PostgresRepository) List(context context.Context, filter Filter, limit, offset int) ([]*auth.User, int, error) {
	conditions := []string{schema.UserAccount.DeletedAt + " IS NULL"}
	args := []any{}

	if filter.Query != "" {
		args = append(args, "%"+filter.Query+"%")
		conditions = append(conditions, fmt.Sprintf("(%s ILIKE $%d OR %s ILIKE $%d OR %s ILIKE $%d)",
			schema.UserAccount.Username, len(args),
			schema.UserAccount.Email, len(args),
			schema.UserAccount.DisplayName, len(args)))
	}

	if filter.Role != "" {
		args = append(args, filter.Role)
		conditions = append(conditions, fmt.Sprintf("%s = $%d", schema.UserAccount.Role, len(args)))
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER()
		FROM %s
		WHERE %s
		ORDER BY %s DESC
		LIMIT $%d OFFSET $%d`,
		auth.UserColumns(), schema.UserAccount.Table,
		strings.Join(conditions, " AND "),
		schema.UserAccount.CreatedAt, len(args)-1, len(args),
	)

	rows, err := repository.pool.Query(context, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_account_repo_list_failed: %w", err)
	}

	var total int
	users, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*auth.User, error) {
		user := &auth.User{}
		return user, row.Scan(append(auth.UserScanTargets(user), &total)...)
	})
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_account_repo_scan_failed: %w", err)
	}

	return users, total, nil
}

// FindByID implements [Repository].
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*auth.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s IS NULL`,
		auth.UserColumns(), schema.UserAccount.Table, schema.UserAccount.ID, schema.UserAccount.DeletedAt)

	user := &auth.User{}
	if err := repository.pool.QueryRow(context, query, id).Scan(auth.UserScanTargets(user)...); err != nil {
		return nil, dberr.Wrap(err, "find_account")
	}
	return user, nil
}

func (repository *PostgresRepository) exec(context context.Context, action, query string, args ...any) error {
	tag, err := repository.pool.Exec(context, query, args...)
	if err != nil {
		return dberr.Wrap(err, action)
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

// UpdateProfile implements [Repository].
func (repository *PostgresRepository) UpdateProfile(context context.Context, user *auth.User) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = NOW() WHERE %s = $1 AND %s IS NULL`,
		schema.UserAccount.Table, schema.UserAccount.DisplayName, schema.UserAccount.UpdatedAt,
		schema.UserAccount.ID, schema.UserAccount.DeletedAt)
	return repository.exec(context, "update_profile", query, user.ID, user.DisplayName)
}

// UpdateRole implements [Repository].
func (repository *PostgresRepository) UpdateRole(context context.Context, id string, role sec.UserRole) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = NOW() WHERE %s = $1 AND %s IS NULL`,
		schema.UserAccount.Table, schema.UserAccount.Role, schema.UserAccount.UpdatedAt,
		schema.UserAccount.ID, schema.UserAccount.DeletedAt)
	return repository.exec(context, "update_role", query, id, role)
}

// SetActive implements [Repository].
func (repository *PostgresRepository) SetActive(context context.Context, id string, active bool) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = NOW() WHERE %s = $1 AND %s IS NULL`,
		schema.UserAccount.Table, schema.UserAccount.IsActive, schema.UserAccount.UpdatedAt,
		schema.UserAccount.ID, schema.UserAccount.DeletedAt)
	return repository.exec(context, "set_active", query, id, active)
}

// SoftDelete implements [Repository].
func (repository *PostgresRepository) SoftDelete(context context.Context, id string) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = NOW(), %s = FALSE,
		    %s = 'deleted_' || REPLACE(%s::text, '-', ''),
		    %s = 'deleted_' || REPLACE(%s::text, '-', '') || '@invalid'
		WHERE %s = $1 AND %s IS NULL`,
		schema.UserAccount.Table,
		schema.UserAccount.DeletedAt, schema.UserAccount.IsActive,
		schema.UserAccount.Username, schema.UserAccount.ID,
		schema.UserAccount.Email, schema.UserAccount.ID,
		schema.UserAccount.ID, schema.UserAccount.DeletedAt,
	)
	return repository.exec(context, "delete_account", query, id)
}
