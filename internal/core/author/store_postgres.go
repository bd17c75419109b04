package author

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/yomira-press/internal/platform/database/schema"
	"github.com/taibuivan/yomira-press/internal/platform/dberr"
)

// PostgresRepository implements [Repository] on core.author.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

var authorColumns = schema.List(
	schema.CoreAuthor.ID,
	schema.CoreAuthor.Name,
	schema.CoreAuthor.NameAlt,
	schema.CoreAuthor.Bio,
	schema.CoreAuthor.ImageURL,
	schema.CoreAuthor.CreatedAt,
	schema.CoreAuthor.UpdatedAt,
)

func scanTargets(author *Author) []any {
	return []any{&author.ID, &author.Name, &author.NameAlt, &author.Bio, &author.ImageURL, &author.CreatedAt, &author.UpdatedAt}
}

func (repository *PostgresRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Author, int, error) {
	query := fmt.Sprintf(`SELECT %s, COUNT(*) OVER() FROM %s WHERE %s IS NULL`,
		authorColumns, schema.CoreAuthor.Table, schema.CoreAuthor.DeletedAt)
	args := []any{}

	if filter.Query != "" {
		query += fmt.Sprintf(` AND (%s ILIKE $1 OR array_to_string(%s, ' ') ILIKE $1)`,
			schema.CoreAuthor.Name, schema.CoreAuthor.NameAlt)
		args = append(args, "%"+filter.Query+"%")
	}

	query += fmt.Sprintf(` ORDER BY %s ASC, %s ASC LIMIT $%d OFFSET $%d`,
		schema.CoreAuthor.Name, schema.CoreAuthor.ID, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := repository.pool.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_authors")
	}
	defer rows.Close()

	authors := make([]*Author, 0, limit)
	var total int
	for rows.Next() {
		author := &Author{}
		if err := rows.Scan(append(scanTargets(author), &total)...); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_author")
		}
		authors = append(authors, author)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "iterate_authors")
	}
	return authors, total, nil
}

func (repository *PostgresRepository) FindByID(context context.Context, id int) (*Author, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s IS NULL`,
		authorColumns, schema.CoreAuthor.Table, schema.CoreAuthor.ID, schema.CoreAuthor.DeletedAt)

	author := &Author{}
	if err := repository.pool.QueryRow(context, query, id).Scan(scanTargets(author)...); err != nil {
		return nil, dberr.Wrap(err, "find_author")
	}
	return author, nil
}

func (repository *PostgresRepository) Create(context context.Context, author *Author) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, $4)
		RETURNING %s, %s, %s
	`,
		schema.CoreAuthor.Table, schema.CoreAuthor.Name, schema.CoreAuthor.NameAlt, schema.CoreAuthor.Bio, schema.CoreAuthor.ImageURL,
		schema.CoreAuthor.ID, schema.CoreAuthor.CreatedAt, schema.CoreAuthor.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query, author.Name, author.NameAlt, author.Bio, author.ImageURL).
		Scan(&author.ID, &author.CreatedAt, &author.UpdatedAt)
	return dberr.Wrap(err, "create_author")
}

func (repository *PostgresRepository) Update(context context.Context, author *Author) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = NOW()
		WHERE %s = $1 AND %s IS NULL
		RETURNING %s
	`,
		schema.CoreAuthor.Table, schema.CoreAuthor.Name, schema.CoreAuthor.NameAlt, schema.CoreAuthor.Bio,
		schema.CoreAuthor.ImageURL, schema.CoreAuthor.UpdatedAt, schema.CoreAuthor.ID, schema.CoreAuthor.DeletedAt,
		schema.CoreAuthor.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query, author.ID, author.Name, author.NameAlt, author.Bio, author.ImageURL).
		Scan(&author.UpdatedAt)
	return dberr.Wrap(err, "update_author")
}

// SoftDelete hides the author. Comics keep their author_id; the foreign key
// only blocks hard deletes.
func (repository *PostgresRepository) SoftDelete(context context.Context, id int) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = NOW() WHERE %s = $1 AND %s IS NULL`,
		schema.CoreAuthor.Table, schema.CoreAuthor.DeletedAt, schema.CoreAuthor.ID, schema.CoreAuthor.DeletedAt)

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_author")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
