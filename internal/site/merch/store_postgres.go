// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package merch

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/yomira-press/internal/platform/database/schema"
	"github.com/taibuivan/yomira-press/internal/platform/dberr"
)

// PostgresRepository implements [Repository] on site.product.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed product store.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

var productColumns = schema.List(
	schema.SiteProduct.ID,
	schema.SiteProduct.Name,
	schema.SiteProduct.Description,
	schema.SiteProduct.PriceCents,
	schema.SiteProduct.Currency,
	schema.SiteProduct.ImageURL,
	schema.SiteProduct.PurchaseURL,
	schema.SiteProduct.IsActive,
	schema.SiteProduct.SortOrder,
	schema.SiteProduct.CreatedAt,
	schema.SiteProduct.UpdatedAt,
)

func scanTargets(product *Product) []any {
	return []any{
		&product.ID, &product.Name, &product.Description, &product.PriceCents, &product.Currency,
		&product.ImageURL, &product.PurchaseURL, &product.IsActive, &product.SortOrder,
		&product.CreatedAt, &product.UpdatedAt,
	}
}

// List implements [Repository].
func (repository *PostgresRepository) List(context context.Context, activeOnly bool) ([]*Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s`, productColumns, schema.SiteProduct.Table)
	if activeOnly {
		query += fmt.Sprintf(` WHERE %s = TRUE`, schema.SiteProduct.IsActive)
	}
	query += fmt.Sprintf(` ORDER BY %s ASC, %s ASC`, schema.SiteProduct.SortOrder, schema.SiteProduct.CreatedAt)

	rows, err := repository.pool.Query(context, query)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to list products: %w", err)
	}
	defer rows.Close()

	products := []*Product{}
	for rows.Next() {
		product := &Product{}
		if err := rows.Scan(scanTargets(product)...); err != nil {
			return nil, fmt.Errorf("postgres: failed to scan product: %w", err)
		}
		products = append(products, product)
	}

	return products, rows.Err()
}

// FindByID implements [Repository].
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, productColumns, schema.SiteProduct.Table, schema.SiteProduct.ID)

	product := &Product{}
	if err := repository.pool.QueryRow(context, query, id).Scan(scanTargets(product)...); err != nil {
		return nil, dberr.Wrap(err, "find_product")
	}
	return product, nil
}

// Create implements [Repository].
func (repository *PostgresRepository) Create(context context.Context, product *Product) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING %s, %s
	`,
		schema.SiteProduct.Table,
		schema.SiteProduct.ID, schema.SiteProduct.Name, schema.SiteProduct.Description,
		schema.SiteProduct.PriceCents, schema.SiteProduct.Currency, schema.SiteProduct.ImageURL,
		schema.SiteProduct.PurchaseURL, schema.SiteProduct.IsActive, schema.SiteProduct.SortOrder,
		schema.SiteProduct.CreatedAt, schema.SiteProduct.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		product.ID, product.Name, product.Description, product.PriceCents, product.Currency,
		product.ImageURL, product.PurchaseURL, product.IsActive, product.SortOrder,
	).Scan(&product.CreatedAt, &product.UpdatedAt)

	return dberr.Wrap(err, "create_product")
}

// Update implements [Repository].
func (repository *PostgresRepository) Update(context context.Context, product *Product) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = $8, %s = $9, %s = NOW()
		WHERE %s = $1
		RETURNING %s
	`,
		schema.SiteProduct.Table,
		schema.SiteProduct.Name, schema.SiteProduct.Description, schema.SiteProduct.PriceCents,
		schema.SiteProduct.Currency, schema.SiteProduct.ImageURL, schema.SiteProduct.PurchaseURL,
		schema.SiteProduct.IsActive, schema.SiteProduct.SortOrder, schema.SiteProduct.UpdatedAt,
		schema.SiteProduct.ID,
		schema.SiteProduct.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		product.ID, product.Name, product.Description, product.PriceCents, product.Currency,
		product.ImageURL, product.PurchaseURL, product.IsActive, product.SortOrder,
	).Scan(&product.UpdatedAt)

	return dberr.Wrap(err, "update_product")
}

// Delete implements [Repository]. Products are removed outright.
func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.SiteProduct.Table, schema.SiteProduct.ID)

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return fmt.Errorf("postgres: failed to delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
