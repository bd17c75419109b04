// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package text

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/yomira-press/internal/platform/database/schema"
	"github.com/taibuivan/yomira-press/internal/platform/dberr"
)

// PostgresRepository implements [Repository] on system.setting.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed text store.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

var selectTexts = fmt.Sprintf(`SELECT %s, %s, %s, %s FROM %s`,
	schema.SystemSetting.Key, schema.SystemSetting.Value, schema.SystemSetting.Description,
	schema.SystemSetting.UpdatedAt, schema.SystemSetting.Table)

// List implements [Repository].
func (repository *PostgresRepository) List(context context.Context) ([]*Text, error) {
	rows, err := repository.pool.Query(context, selectTexts+fmt.Sprintf(` ORDER BY %s ASC`, schema.SystemSetting.Key))
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to list texts: %w", err)
	}
	defer rows.Close()

	texts := []*Text{}
	for rows.Next() {
		text := &Text{}
		if err := rows.Scan(&text.Key, &text.Value, &text.Description, &text.UpdatedAt); err != nil {
			return nil, fmt.Errorf("postgres: failed to scan text: %w", err)
		}
		texts = append(texts, text)
	}

	return texts, rows.Err()
}

// Get implements [Repository].
func (repository *PostgresRepository) Get(context context.Context, key string) (*Text, error) {
	text := &Text{}
	err := repository.pool.QueryRow(context, selectTexts+fmt.Sprintf(` WHERE %s = $1`, schema.SystemSetting.Key), key).
		Scan(&text.Key, &text.Value, &text.Description, &text.UpdatedAt)
	if err != nil {
		return nil, dberr.Wrap(err, "get_text")
	}
	return text, nil
}

// Upsert implements [Repository]. An empty description keeps the stored one.
func (repository *PostgresRepository) Upsert(context context.Context, text *Text) error {
	query := fmt.Sprintf(`
		INSERT INTO %s AS existing (%s, %s, %s, %s)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (%s) DO UPDATE
		SET %s = EXCLUDED.%s,
		    %s = COALESCE(NULLIF(EXCLUDED.%s, ''), existing.%s),
		    %s = NOW()
		RETURNING %s, %s
	`,
		schema.SystemSetting.Table,
		schema.SystemSetting.Key, schema.SystemSetting.Value, schema.SystemSetting.Description, schema.SystemSetting.UpdatedAt,
		schema.SystemSetting.Key,
		schema.SystemSetting.Value, schema.SystemSetting.Value,
		schema.SystemSetting.Description, schema.SystemSetting.Description, schema.SystemSetting.Description,
		schema.SystemSetting.UpdatedAt,
		schema.SystemSetting.Description, schema.SystemSetting.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query, text.Key, text.Value, text.Description).
		Scan(&text.Description, &text.UpdatedAt)
	return dberr.Wrap(err, "upsert_text")
}
