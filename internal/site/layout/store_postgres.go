// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package layout

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/yomira-press/internal/platform/database/schema"
	"github.com/taibuivan/yomira-press/internal/platform/dberr"
	"github.com/taibuivan/yomira-press/internal/platform/postgres"
)

// PostgresRepository implements [Repository] on site.section.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed layout store.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

var sectionColumns = schema.List(
	schema.SiteSection.ID,
	schema.SiteSection.Kind,
	schema.SiteSection.Title,
	schema.SiteSection.Body,
	schema.SiteSection.ComicIDs,
	schema.SiteSection.Position,
	schema.SiteSection.IsVisible,
	schema.SiteSection.CreatedAt,
	schema.SiteSection.UpdatedAt,
)

func scanTargets(section *Section) []any {
	return []any{
		&section.ID, &section.Kind, &section.Title, &section.Body, &section.ComicIDs,
		&section.Position, &section.IsVisible, &section.CreatedAt, &section.UpdatedAt,
	}
}

// List implements [Repository].
func (repository *PostgresRepository) List(context context.Context, visibleOnly bool) ([]*Section, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s`, sectionColumns, schema.SiteSection.Table)
	if visibleOnly {
		query += fmt.Sprintf(` WHERE %s = TRUE`, schema.SiteSection.IsVisible)
	}
	query += fmt.Sprintf(` ORDER BY %s ASC, %s ASC`, schema.SiteSection.Position, schema.SiteSection.CreatedAt)

	rows, err := repository.pool.Query(context, query)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to list sections: %w", err)
	}
	defer rows.Close()

	sections := []*Section{}
	for rows.Next() {
		section := &Section{}
		if err := rows.Scan(scanTargets(section)...); err != nil {
			return nil, fmt.Errorf("postgres: failed to scan section: %w", err)
		}
		sections = append(sections, section)
	}

	return sections, rows.Err()
}

// FindByID implements [Repository].
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Section, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, sectionColumns, schema.SiteSection.Table, schema.SiteSection.ID)

	section := &Section{}
	if err := repository.pool.QueryRow(context, query, id).Scan(scanTargets(section)...); err != nil {
		return nil, dberr.Wrap(err, "find_section")
	}
	return section, nil
}

// Create implements [Repository].
func (repository *PostgresRepository) Create(context context.Context, section *Section) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, (SELECT COALESCE(MAX(%s), 0) + 1 FROM %s), $6)
		RETURNING %s, %s, %s
	`,
		schema.SiteSection.Table,
		schema.SiteSection.ID, schema.SiteSection.Kind, schema.SiteSection.Title, schema.SiteSection.Body,
		schema.SiteSection.ComicIDs, schema.SiteSection.Position, schema.SiteSection.IsVisible,
		schema.SiteSection.Position, schema.SiteSection.Table,
		schema.SiteSection.Position, schema.SiteSection.CreatedAt, schema.SiteSection.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		section.ID, section.Kind, section.Title, section.Body, section.ComicIDs, section.IsVisible,
	).Scan(&section.Position, &section.CreatedAt, &section.UpdatedAt)

	return dberr.Wrap(err, "create_section")
}

// Update implements [Repository]. Position only changes through Reorder.
func (repository *PostgresRepository) Update(context context.Context, section *Section) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = NOW()
		WHERE %s = $1
		RETURNING %s
	`,
		schema.SiteSection.Table,
		schema.SiteSection.Kind, schema.SiteSection.Title, schema.SiteSection.Body,
		schema.SiteSection.ComicIDs, schema.SiteSection.IsVisible, schema.SiteSection.UpdatedAt,
		schema.SiteSection.ID,
		schema.SiteSection.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		section.ID, section.Kind, section.Title, section.Body, section.ComicIDs, section.IsVisible,
	).Scan(&section.UpdatedAt)

	return dberr.Wrap(err, "update_section")
}

// Delete implements [Repository]. Gaps in position are harmless; the next
// reorder closes them.
func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.SiteSection.Table, schema.SiteSection.ID)

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return fmt.Errorf("postgres: failed to delete section: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

/*
Reorder implements [Repository].

Description: The table is locked in SHARE ROW EXCLUSIVE mode so a concurrent
create cannot slip a section in between the set check and the rewrite.
*/
func (repository *PostgresRepository) Reorder(context context.Context, ids []string) error {
	return postgres.InTx(context, repository.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(context, fmt.Sprintf(`LOCK TABLE %s IN SHARE ROW EXCLUSIVE MODE`, schema.SiteSection.Table)); err != nil {
			return fmt.Errorf("postgres: failed to lock sections: %w", err)
		}

		var stored, matched int
		check := fmt.Sprintf(`SELECT COUNT(*), COUNT(*) FILTER (WHERE %s = ANY($1)) FROM %s`,
			schema.SiteSection.ID, schema.SiteSection.Table)
		if err := tx.QueryRow(context, check, ids).Scan(&stored, &matched); err != nil {
			return fmt.Errorf("postgres: failed to verify section order: %w", err)
		}
		if stored != len(ids) || matched != len(ids) {
			return ErrOrderMismatch
		}

		update := fmt.Sprintf(`
			UPDATE %s AS s
			SET %s = ordered.position, %s = NOW()
			FROM UNNEST($1::uuid[]) WITH ORDINALITY AS ordered(id, position)
			WHERE s.%s = ordered.id
		`,
			schema.SiteSection.Table,
			schema.SiteSection.Position, schema.SiteSection.UpdatedAt,
			schema.SiteSection.ID,
		)
		if _, err := tx.Exec(context, update, ids); err != nil {
			return fmt.Errorf("postgres: failed to reorder sections: %w", err)
		}
		return nil
	})
}
