// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/yomira-press/internal/platform/database/schema"
	"github.com/taibuivan/yomira-press/internal/platform/dberr"
)

// PostgresRepository implements [Repository] on social.comment.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed comment store.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// selectComments joins the author's username so listings need a single query.
var selectComments = fmt.Sprintf(`
	SELECT c.%s, c.%s, u.%s, c.%s, c.%s, c.%s, c.%s, c.%s
	FROM %s AS c
	JOIN %s AS u ON u.%s = c.%s
`,
	schema.SocialComment.ID, schema.SocialComment.UserID, schema.UserAccount.Username,
	schema.SocialComment.ComicID, schema.SocialComment.ChapterID, schema.SocialComment.Body,
	schema.SocialComment.CreatedAt, schema.SocialComment.UpdatedAt,
	schema.SocialComment.Table,
	schema.UserAccount.Table, schema.UserAccount.ID, schema.SocialComment.UserID,
)

func scanTargets(comment *Comment) []any {
	return []any{
		&comment.ID, &comment.UserID, &comment.Username, &comment.ComicID,
		&comment.ChapterID, &comment.Body, &comment.CreatedAt, &comment.UpdatedAt,
	}
}

// ListByComic implements [Repository].
func (repository *PostgresRepository) ListByComic(context context.Context, comicID string, filter Filter, limit, offset int) ([]*Comment, int, error) {
	query := selectComments + fmt.Sprintf(`WHERE c.%s = $1 AND c.%s = FALSE`,
		schema.SocialComment.ComicID, schema.SocialComment.IsDeleted)
	args := []any{comicID}

	if filter.ChapterID != "" {
		query += fmt.Sprintf(` AND c.%s = $2`, schema.SocialComment.ChapterID)
		args = append(args, filter.ChapterID)
	}

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s AS c WHERE c.%s = $1 AND c.%s = FALSE`,
		schema.SocialComment.Table, schema.SocialComment.ComicID, schema.SocialComment.IsDeleted)
	if filter.ChapterID != "" {
		countQuery += fmt.Sprintf(` AND c.%s = $2`, schema.SocialComment.ChapterID)
	}

	var total int
	if err := repository.pool.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres: failed to count comments: %w", err)
	}

	query += fmt.Sprintf(` ORDER BY c.%s DESC, c.%s DESC LIMIT $%d OFFSET $%d`,
		schema.SocialComment.CreatedAt, schema.SocialComment.ID, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := repository.pool.Query(context, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres: failed to list comments: %w", err)
	}
	defer rows.Close()

	comments := make([]*Comment, 0, limit)
	for rows.Next() {
		comment := &Comment{}
		if err := rows.Scan(scanTargets(comment)...); err != nil {
			return nil, 0, fmt.Errorf("postgres: failed to scan comment: %w", err)
		}
		comments = append(comments, comment)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres: failed to iterate comments: %w", err)
	}
	return comments, total, nil
}

// FindByID implements [Repository].
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Comment, error) {
	query := selectComments + fmt.Sprintf(`WHERE c.%s = $1 AND c.%s = FALSE`,
		schema.SocialComment.ID, schema.SocialComment.IsDeleted)

	comment := &Comment{}
	if err := repository.pool.QueryRow(context, query, id).Scan(scanTargets(comment)...); err != nil {
		return nil, dberr.Wrap(err, "find_comment")
	}
	return comment, nil
}

// Create implements [Repository].
func (repository *PostgresRepository) Create(context context.Context, comment *Comment) error {
	query := fmt.Sprintf(`
		WITH inserted AS (
			INSERT INTO %s (%s, %s, %s, %s, %s)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING %s, %s, %s
		)
		SELECT inserted.%s, inserted.%s, u.%s
		FROM inserted JOIN %s AS u ON u.%s = inserted.%s
	`,
		schema.SocialComment.Table,
		schema.SocialComment.ID, schema.SocialComment.UserID, schema.SocialComment.ComicID,
		schema.SocialComment.ChapterID, schema.SocialComment.Body,
		schema.SocialComment.CreatedAt, schema.SocialComment.UpdatedAt, schema.SocialComment.UserID,
		schema.SocialComment.CreatedAt, schema.SocialComment.UpdatedAt, schema.UserAccount.Username,
		schema.UserAccount.Table, schema.UserAccount.ID, schema.SocialComment.UserID,
	)

	err := repository.pool.QueryRow(context, query,
		comment.ID, comment.UserID, comment.ComicID, comment.ChapterID, comment.Body,
	).Scan(&comment.CreatedAt, &comment.UpdatedAt, &comment.Username)

	return dberr.Wrap(err, "create_comment")
}

// SoftDelete implements [Repository].
func (repository *PostgresRepository) SoftDelete(context context.Context, id string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = TRUE, %s = NOW() WHERE %s = $1 AND %s = FALSE`,
		schema.SocialComment.Table, schema.SocialComment.IsDeleted, schema.SocialComment.UpdatedAt,
		schema.SocialComment.ID, schema.SocialComment.IsDeleted)

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return fmt.Errorf("postgres: failed to delete comment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
