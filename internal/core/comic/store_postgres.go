// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comic

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/yomira-press/internal/platform/database/schema"
	"github.com/taibuivan/yomira-press/internal/platform/dberr"
)

// # PostgreSQL Repository

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed comic store.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

var comicColumns = schema.List(
	schema.CoreComic.ID,
	schema.CoreComic.Title,
	schema.CoreComic.Slug,
	schema.CoreComic.Synopsis,
	schema.CoreComic.CoverURL,
	schema.CoreComic.Status,
	schema.CoreComic.AuthorID,
	schema.CoreComic.Genres,
	schema.CoreComic.ViewCount,
	schema.CoreComic.RatingAvg,
	schema.CoreComic.RatingCount,
	schema.CoreComic.CreatedAt,
	schema.CoreComic.UpdatedAt,
)

func comicScanTargets(comic *Comic) []any {
	return []any{
		&comic.ID,
		&comic.Title,
		&comic.Slug,
		&comic.Synopsis,
		&comic.CoverURL,
		&comic.Status,
		&comic.AuthorID,
		&comic.Genres,
		&comic.ViewCount,
		&comic.RatingAvg,
		&comic.RatingCount,
		&comic.CreatedAt,
		&comic.UpdatedAt,
	}
}

/*
List retrieves a page of comics matching filter.

Description: Filters are appended as numbered placeholders; the total comes
from a window function so one round-trip covers both the rows and the count.
*/
func (repository *PostgresRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Comic, int, error) {
	var queryBuilder strings.Builder
	var args []any
	argID := 1

	queryBuilder.WriteString(fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total_count
		FROM %s
		WHERE %s IS NULL
	`, comicColumns, schema.CoreComic.Table, schema.CoreComic.DeletedAt))

	// Status filtering
	if len(filter.Status) > 0 {
		statuses := make([]string, len(filter.Status))
		for i, status := range filter.Status {
			statuses[i] = string(status)
		}
		queryBuilder.WriteString(fmt.Sprintf(" AND %s = ANY($%d)", schema.CoreComic.Status, argID))
		args = append(args, statuses)
		argID++
	}

	// Genre filtering
	if filter.Genre != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND $%d = ANY(%s)", argID, schema.CoreComic.Genres))
		args = append(args, filter.Genre)
		argID++
	}

	// Title search
	if filter.Query != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND %s ILIKE $%d", schema.CoreComic.Title, argID))
		args = append(args, "%"+filter.Query+"%")
		argID++
	}

	// Sorting
	sortColumn := schema.CoreComic.CreatedAt
	sortDir := "DESC"
	switch filter.Sort {
	case SortAlphabetic:
		sortColumn = schema.CoreComic.Title
		sortDir = "ASC"
	case SortRating:
		sortColumn = schema.CoreComic.RatingAvg
	case SortPopular:
		sortColumn = schema.CoreComic.ViewCount
	}

	switch strings.ToLower(filter.SortDir) {
	case "asc":
		sortDir = "ASC"
	case "desc":
		sortDir = "DESC"
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY %s %s, %s ASC LIMIT $%d OFFSET $%d",
		sortColumn, sortDir, schema.CoreComic.ID, argID, argID+1))
	args = append(args, limit, offset)

	rows, err := repository.pool.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres: failed to list comics: %w", err)
	}
	defer rows.Close()

	comics := make([]*Comic, 0, limit)
	var totalCount int

	for rows.Next() {
		var comic Comic
		if err := rows.Scan(append(comicScanTargets(&comic), &totalCount)...); err != nil {
			return nil, 0, fmt.Errorf("postgres: failed to scan comic: %w", err)
		}
		comics = append(comics, &comic)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres: failed to iterate comics: %w", err)
	}

	return comics, totalCount, nil
}

// FindByID implements [Repository].
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Comic, error) {
	return repository.findOne(context, schema.CoreComic.ID, id)
}

// FindBySlug implements [Repository].
func (repository *PostgresRepository) FindBySlug(context context.Context, slug string) (*Comic, error) {
	return repository.findOne(context, schema.CoreComic.Slug, slug)
}

func (repository *PostgresRepository) findOne(context context.Context, column, value string) (*Comic, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s IS NULL`,
		comicColumns, schema.CoreComic.Table, column, schema.CoreComic.DeletedAt)

	var comic Comic
	if err := repository.pool.QueryRow(context, query, value).Scan(comicScanTargets(&comic)...); err != nil {
		return nil, dberr.Wrap(err, "find_comic")
	}

	return &comic, nil
}

// Create implements [Repository].
func (repository *PostgresRepository) Create(context context.Context, comic *Comic) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING %s, %s
	`,
		schema.CoreComic.Table,
		schema.CoreComic.ID,
		schema.CoreComic.Title,
		schema.CoreComic.Slug,
		schema.CoreComic.Synopsis,
		schema.CoreComic.CoverURL,
		schema.CoreComic.Status,
		schema.CoreComic.AuthorID,
		schema.CoreComic.Genres,
		schema.CoreComic.CreatedAt,
		schema.CoreComic.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		comic.ID,
		comic.Title,
		comic.Slug,
		comic.Synopsis,
		comic.CoverURL,
		comic.Status,
		comic.AuthorID,
		comic.Genres,
	).Scan(&comic.CreatedAt, &comic.UpdatedAt)

	return dberr.Wrap(err, "create_comic")
}

// Update implements [Repository].
func (repository *PostgresRepository) Update(context context.Context, comic *Comic) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = $8, %s = NOW()
		WHERE %s = $1 AND %s IS NULL
		RETURNING %s
	`,
		schema.CoreComic.Table,
		schema.CoreComic.Title,
		schema.CoreComic.Slug,
		schema.CoreComic.Synopsis,
		schema.CoreComic.CoverURL,
		schema.CoreComic.Status,
		schema.CoreComic.AuthorID,
		schema.CoreComic.Genres,
		schema.CoreComic.UpdatedAt,
		schema.CoreComic.ID,
		schema.CoreComic.DeletedAt,
		schema.CoreComic.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		comic.ID,
		comic.Title,
		comic.Slug,
		comic.Synopsis,
		comic.CoverURL,
		comic.Status,
		comic.AuthorID,
		comic.Genres,
	).Scan(&comic.UpdatedAt)

	return dberr.Wrap(err, "update_comic")
}

// SoftDelete implements [Repository].
func (repository *PostgresRepository) SoftDelete(context context.Context, id string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = NOW() WHERE %s = $1 AND %s IS NULL`,
		schema.CoreComic.Table, schema.CoreComic.DeletedAt, schema.CoreComic.ID, schema.CoreComic.DeletedAt)

	result, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return fmt.Errorf("postgres: failed to delete comic: %w", err)
	}

	if result.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return nil
}
