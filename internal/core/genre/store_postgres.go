// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package genre

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/yomira-press/internal/platform/database/schema"
)

// PostgresRepository derives genres from core.comic.genres.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a [PostgresRepository].
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// List implements [Repository].
func (repository *PostgresRepository) List(context context.Context) ([]*Genre, error) {
	query := fmt.Sprintf(`
		SELECT genre, COUNT(*)
		FROM %s, UNNEST(%s) AS genre
		WHERE %s IS NULL
		GROUP BY genre
		ORDER BY COUNT(*) DESC, genre ASC`,
		schema.CoreComic.Table, schema.CoreComic.Genres, schema.CoreComic.DeletedAt,
	)

	rows, err := repository.pool.Query(context, query)
	if err != nil {
		return nil, fmt.Errorf("postgres_genre_repo_list_failed: %w", err)
	}

	genres, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*Genre, error) {
		genre := &Genre{}
		return genre, row.Scan(&genre.Name, &genre.ComicCount)
	})
	if err != nil {
		return nil, fmt.Errorf("postgres_genre_repo_scan_failed: %w", err)
	}
	return genres, nil
}
