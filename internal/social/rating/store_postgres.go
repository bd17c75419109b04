// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package rating

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/yomira-press/internal/platform/database/schema"
	"github.com/taibuivan/yomira-press/internal/platform/dberr"
	"github.com/taibuivan/yomira-press/internal/platform/postgres"
)

// PostgresRepository implements [Repository] on social.comicrating.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed rating store.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Summary implements [Repository].
func (repository *PostgresRepository) Summary(context context.Context, comicID string) (*Summary, error) {
	query := fmt.Sprintf(`SELECT %s, %s, %s FROM %s WHERE %s = $1 AND %s IS NULL`,
		schema.CoreComic.ID, schema.CoreComic.RatingAvg, schema.CoreComic.RatingCount,
		schema.CoreComic.Table, schema.CoreComic.ID, schema.CoreComic.DeletedAt)

	summary := &Summary{}
	if err := repository.pool.QueryRow(context, query, comicID).Scan(&summary.ComicID, &summary.Average, &summary.Count); err != nil {
		return nil, dberr.Wrap(err, "find_rating_summary")
	}
	return summary, nil
}

// UserScore implements [Repository].
func (repository *PostgresRepository) UserScore(context context.Context, userID, comicID string) (*int, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s = $2`,
		schema.SocialComicRating.Score, schema.SocialComicRating.Table,
		schema.SocialComicRating.UserID, schema.SocialComicRating.ComicID)

	var score int
	err := repository.pool.QueryRow(context, query, userID, comicID).Scan(&score)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to read user score: %w", err)
	}
	return &score, nil
}

/*
Upsert implements [Repository].

Description: The comic row is locked first, which serialises concurrent
writers on the same comic and keeps the recomputed aggregate exact.
*/
func (repository *PostgresRepository) Upsert(context context.Context, userID, comicID string, score int) (*Summary, error) {
	var summary *Summary

	err := postgres.InTx(context, repository.pool, func(tx pgx.Tx) error {
		if err := lockComic(context, tx, comicID); err != nil {
			return err
		}

		upsert := fmt.Sprintf(`
			INSERT INTO %s (%s, %s, %s)
			VALUES ($1, $2, $3)
			ON CONFLICT (%s, %s) DO UPDATE SET %s = EXCLUDED.%s, %s = NOW()
		`,
			schema.SocialComicRating.Table,
			schema.SocialComicRating.UserID, schema.SocialComicRating.ComicID, schema.SocialComicRating.Score,
			schema.SocialComicRating.UserID, schema.SocialComicRating.ComicID,
			schema.SocialComicRating.Score, schema.SocialComicRating.Score,
			schema.SocialComicRating.UpdatedAt,
		)
		if _, err := tx.Exec(context, upsert, userID, comicID, score); err != nil {
			return dberr.Wrap(err, "upsert_rating")
		}

		var err error
		summary, err = recompute(context, tx, comicID)
		return err
	})
	if err != nil {
		return nil, err
	}

	summary.UserScore = &score
	return summary, nil
}

// Remove implements [Repository].
func (repository *PostgresRepository) Remove(context context.Context, userID, comicID string) (*Summary, error) {
	var summary *Summary

	err := postgres.InTx(context, repository.pool, func(tx pgx.Tx) error {
		if err := lockComic(context, tx, comicID); err != nil {
			return err
		}

		remove := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
			schema.SocialComicRating.Table, schema.SocialComicRating.UserID, schema.SocialComicRating.ComicID)
		if _, err := tx.Exec(context, remove, userID, comicID); err != nil {
			return fmt.Errorf("postgres: failed to delete rating: %w", err)
		}

		var err error
		summary, err = recompute(context, tx, comicID)
		return err
	})

	return summary, err
}

func lockComic(context context.Context, tx pgx.Tx, comicID string) error {
	query := fmt.Sprintf(`SELECT 1 FROM %s WHERE %s = $1 AND %s IS NULL FOR UPDATE`,
		schema.CoreComic.Table, schema.CoreComic.ID, schema.CoreComic.DeletedAt)

	var one int
	return dberr.Wrap(tx.QueryRow(context, query, comicID).Scan(&one), "lock_comic")
}

func recompute(context context.Context, tx pgx.Tx, comicID string) (*Summary, error) {
	query := fmt.Sprintf(`
		UPDATE %s AS c
		SET %s = agg.average, %s = agg.total
		FROM (
			SELECT COALESCE(ROUND(AVG(%s)::numeric, 2), 0)::float8 AS average, COUNT(*)::int AS total
			FROM %s WHERE %s = $1
		) AS agg
		WHERE c.%s = $1
		RETURNING c.%s, c.%s, c.%s
	`,
		schema.CoreComic.Table,
		schema.CoreComic.RatingAvg, schema.CoreComic.RatingCount,
		schema.SocialComicRating.Score,
		schema.SocialComicRating.Table, schema.SocialComicRating.ComicID,
		schema.CoreComic.ID,
		schema.CoreComic.ID, schema.CoreComic.RatingAvg, schema.CoreComic.RatingCount,
	)

	summary := &Summary{}
	if err := tx.QueryRow(context, query, comicID).Scan(&summary.ComicID, &summary.Average, &summary.Count); err != nil {
		return nil, dberr.Wrap(err, "recompute_rating")
	}
	return summary, nil
}
