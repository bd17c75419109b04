// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package chapter

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/yomira-press/internal/platform/database/schema"
	"github.com/taibuivan/yomira-press/internal/platform/dberr"
	"github.com/taibuivan/yomira-press/internal/platform/postgres"
)

// # PostgreSQL Repository

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed chapter store.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// chapterColumns is the select list shared by every chapter read.
var chapterColumns = schema.List(
	schema.CoreChapter.ID,
	schema.CoreChapter.ComicID,
	schema.CoreChapter.Number,
	schema.CoreChapter.Title,
	schema.CoreChapter.ImgurAlbumURL,
	schema.CoreChapter.PageSource,
	schema.CoreChapter.ViewCount,
	schema.CoreChapter.PublishedAt,
	schema.CoreChapter.CreatedAt,
	schema.CoreChapter.UpdatedAt,
)

func chapterScanTargets(chapter *Chapter) []any {
	return []any{
		&chapter.ID,
		&chapter.ComicID,
		&chapter.Number,
		&chapter.Title,
		&chapter.ImgurAlbumURL,
		&chapter.PageSource,
		&chapter.ViewCount,
		&chapter.PublishedAt,
		&chapter.CreatedAt,
		&chapter.UpdatedAt,
	}
}

/*
ListByComic retrieves the chapters linked to a specific comic.

Description: Uses a window function for the total count so a single
round-trip serves both the page and the pagination metadata.
*/
func (repository *PostgresRepository) ListByComic(context context.Context, comicID string, filter Filter, limit, offset int) ([]*Chapter, int, error) {
	var queryBuilder strings.Builder

	queryBuilder.WriteString(fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total_count
		FROM %s
		WHERE %s = $1 AND %s IS NULL
	`,
		chapterColumns,
		schema.CoreChapter.Table,
		schema.CoreChapter.ComicID,
		schema.CoreChapter.DeletedAt,
	))

	if filter.Published {
		queryBuilder.WriteString(fmt.Sprintf(" AND %s IS NOT NULL AND %s <= NOW()",
			schema.CoreChapter.PublishedAt, schema.CoreChapter.PublishedAt))
	}

	sortDir := "DESC"
	if strings.EqualFold(filter.SortDir, "asc") {
		sortDir = "ASC"
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY %s %s LIMIT $2 OFFSET $3", schema.CoreChapter.Number, sortDir))

	rows, err := repository.pool.Query(context, queryBuilder.String(), comicID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres: failed to list chapters: %w", err)
	}
	defer rows.Close()

	chapters := make([]*Chapter, 0, limit)
	var totalCount int

	for rows.Next() {
		var chapter Chapter
		if err := rows.Scan(append(chapterScanTargets(&chapter), &totalCount)...); err != nil {
			return nil, 0, fmt.Errorf("postgres: failed to scan chapter: %w", err)
		}
		chapters = append(chapters, &chapter)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres: failed to iterate chapters: %w", err)
	}

	return chapters, totalCount, nil
}

// FindByID implements [Repository].
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Chapter, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s IS NULL`,
		chapterColumns,
		schema.CoreChapter.Table,
		schema.CoreChapter.ID,
		schema.CoreChapter.DeletedAt,
	)

	var chapter Chapter
	if err := repository.pool.QueryRow(context, query, id).Scan(chapterScanTargets(&chapter)...); err != nil {
		return nil, dberr.Wrap(err, "find_chapter")
	}

	return &chapter, nil
}

// Create implements [Repository]. A missing comic surfaces as [dberr.ErrReference].
func (repository *PostgresRepository) Create(context context.Context, chapter *Chapter) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING %s, %s
	`,
		schema.CoreChapter.Table,
		schema.CoreChapter.ID,
		schema.CoreChapter.ComicID,
		schema.CoreChapter.Number,
		schema.CoreChapter.Title,
		schema.CoreChapter.PageSource,
		schema.CoreChapter.PublishedAt,
		schema.CoreChapter.CreatedAt,
		schema.CoreChapter.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		chapter.ID,
		chapter.ComicID,
		chapter.Number,
		chapter.Title,
		chapter.PageSource,
		chapter.PublishedAt,
	).Scan(&chapter.CreatedAt, &chapter.UpdatedAt)

	return dberr.Wrap(err, "create_chapter")
}

// Update implements [Repository].
func (repository *PostgresRepository) Update(context context.Context, chapter *Chapter) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = NOW()
		WHERE %s = $1 AND %s IS NULL
		RETURNING %s
	`,
		schema.CoreChapter.Table,
		schema.CoreChapter.Number,
		schema.CoreChapter.Title,
		schema.CoreChapter.PublishedAt,
		schema.CoreChapter.UpdatedAt,
		schema.CoreChapter.ID,
		schema.CoreChapter.DeletedAt,
		schema.CoreChapter.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		chapter.ID,
		chapter.Number,
		chapter.Title,
		chapter.PublishedAt,
	).Scan(&chapter.UpdatedAt)

	return dberr.Wrap(err, "update_chapter")
}

// SoftDelete implements [Repository].
func (repository *PostgresRepository) SoftDelete(context context.Context, id string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = NOW() WHERE %s = $1 AND %s IS NULL`,
		schema.CoreChapter.Table, schema.CoreChapter.DeletedAt, schema.CoreChapter.ID, schema.CoreChapter.DeletedAt)

	result, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return fmt.Errorf("postgres: failed to delete chapter: %w", err)
	}

	if result.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return nil
}

// # Page Management

// ListPages implements [Repository].
func (repository *PostgresRepository) ListPages(context context.Context, chapterID string) ([]*Page, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
		ORDER BY %s ASC
	`,
		schema.CorePage.ID, schema.CorePage.ChapterID, schema.CorePage.PageNumber, schema.CorePage.ImageURL, schema.CorePage.CreatedAt,
		schema.CorePage.Table,
		schema.CorePage.ChapterID,
		schema.CorePage.PageNumber,
	)

	rows, err := repository.pool.Query(context, query, chapterID)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to list pages: %w", err)
	}
	defer rows.Close()

	pages := []*Page{}
	for rows.Next() {
		var page Page
		if err := rows.Scan(&page.ID, &page.ChapterID, &page.PageNumber, &page.ImageURL, &page.CreatedAt); err != nil {
			return nil, fmt.Errorf("postgres: failed to scan page: %w", err)
		}
		pages = append(pages, &page)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: failed to iterate pages: %w", err)
	}

	return pages, nil
}

/*
ReplacePages swaps the whole page set of a chapter inside one transaction.

Description: The chapter row is updated first, which takes its row lock and
serialises concurrent replacements at the database level. Old pages are then
deleted and the new ones pipelined in a single batch.

Parameters:
  - context: context.Context
  - chapterID: string (UUID)
  - pages: []*Page
  - albumURL: string

Returns:
  - error: dberr.ErrNotFound for a missing chapter, or the failing statement
*/
func (repository *PostgresRepository) ReplacePages(context context.Context, chapterID string, pages []*Page, albumURL string) error {
	return postgres.InTx(context, repository.pool, func(tx pgx.Tx) error {

		// 1. Provenance and row lock
		updateChapter := fmt.Sprintf(`
			UPDATE %s SET %s = $2, %s = $3, %s = NOW()
			WHERE %s = $1 AND %s IS NULL
		`,
			schema.CoreChapter.Table,
			schema.CoreChapter.ImgurAlbumURL,
			schema.CoreChapter.PageSource,
			schema.CoreChapter.UpdatedAt,
			schema.CoreChapter.ID,
			schema.CoreChapter.DeletedAt,
		)

		result, err := tx.Exec(context, updateChapter, chapterID, albumURL, SourceImgur)
		if err != nil {
			return fmt.Errorf("postgres: failed to mark chapter as imported: %w", err)
		}
		if result.RowsAffected() == 0 {
			return dberr.ErrNotFound
		}

		// 2. Drop the previous page set
		deletePages := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CorePage.Table, schema.CorePage.ChapterID)
		if _, err := tx.Exec(context, deletePages, chapterID); err != nil {
			return fmt.Errorf("postgres: failed to delete pages: %w", err)
		}

		// 3. Insert the new page set
		insertPage := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s) VALUES ($1, $2, $3, $4)`,
			schema.CorePage.Table, schema.CorePage.ID, schema.CorePage.ChapterID, schema.CorePage.PageNumber, schema.CorePage.ImageURL)

		batch := &pgx.Batch{}
		for _, page := range pages {
			batch.Queue(insertPage, page.ID, chapterID, page.PageNumber, page.ImageURL)
		}

		batchResults := tx.SendBatch(context, batch)
		for i := range pages {
			if _, err := batchResults.Exec(); err != nil {
				batchResults.Close()
				return fmt.Errorf("postgres: failed to insert page %d: %w", pages[i].PageNumber, err)
			}
		}

		if err := batchResults.Close(); err != nil {
			return fmt.Errorf("postgres: failed to close page batch: %w", err)
		}

		return nil
	})
}

// ClearAlbumLink implements [Repository].
func (repository *PostgresRepository) ClearAlbumLink(context context.Context, chapterID string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = NULL, %s = NOW() WHERE %s = $1 AND %s IS NULL`,
		schema.CoreChapter.Table,
		schema.CoreChapter.ImgurAlbumURL,
		schema.CoreChapter.UpdatedAt,
		schema.CoreChapter.ID,
		schema.CoreChapter.DeletedAt,
	)

	result, err := repository.pool.Exec(context, query, chapterID)
	if err != nil {
		return fmt.Errorf("postgres: failed to clear album link: %w", err)
	}

	if result.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return nil
}

/*
AppendPage stores one uploaded page after the current last page.

Description: Locking the chapter row first keeps two concurrent uploads from
computing the same next page number.
*/
func (repository *PostgresRepository) AppendPage(context context.Context, page *Page) error {
	return postgres.InTx(context, repository.pool, func(tx pgx.Tx) error {
		markUpload := fmt.Sprintf(`
			UPDATE %s SET %s = $2, %s = NOW()
			WHERE %s = $1 AND %s IS NULL
		`,
			schema.CoreChapter.Table,
			schema.CoreChapter.PageSource,
			schema.CoreChapter.UpdatedAt,
			schema.CoreChapter.ID,
			schema.CoreChapter.DeletedAt,
		)

		result, err := tx.Exec(context, markUpload, page.ChapterID, SourceUpload)
		if err != nil {
			return fmt.Errorf("postgres: failed to mark chapter as uploaded: %w", err)
		}
		if result.RowsAffected() == 0 {
			return dberr.ErrNotFound
		}

		insertPage := fmt.Sprintf(`
			INSERT INTO %s (%s, %s, %s, %s)
			SELECT $1, $2, COALESCE(MAX(%s), 0) + 1, $3 FROM %s WHERE %s = $2
			RETURNING %s, %s
		`,
			schema.CorePage.Table, schema.CorePage.ID, schema.CorePage.ChapterID, schema.CorePage.PageNumber, schema.CorePage.ImageURL,
			schema.CorePage.PageNumber, schema.CorePage.Table, schema.CorePage.ChapterID,
			schema.CorePage.PageNumber, schema.CorePage.CreatedAt,
		)

		err = tx.QueryRow(context, insertPage, page.ID, page.ChapterID, page.ImageURL).Scan(&page.PageNumber, &page.CreatedAt)
		return dberr.Wrap(err, "append_page")
	})
}

// IncrementViewCount implements [Repository].
func (repository *PostgresRepository) IncrementViewCount(context context.Context, id string, delta int64) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = %s + $1 WHERE %s = $2`,
		schema.CoreChapter.Table, schema.CoreChapter.ViewCount, schema.CoreChapter.ViewCount, schema.CoreChapter.ID)

	if _, err := repository.pool.Exec(context, query, delta, id); err != nil {
		return fmt.Errorf("postgres: failed to increment chapter view count: %w", err)
	}

	return nil
}
