// Package db holds the Postgres-backed repositories (catalog and orders).
package db

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/lib/pq"

	productdom "straightenup/internal/domain/product"
)

// ProductRepositoryPG implements product.Repository.
//
// Table:
//
//	CREATE TABLE products (
//	  id          TEXT PRIMARY KEY,
//	  name        TEXT NOT NULL,
//	  price_cents BIGINT NOT NULL,
//	  description TEXT NOT NULL DEFAULT '',
//	  image_url   TEXT NOT NULL DEFAULT '',
//	  category    TEXT NOT NULL DEFAULT '',
//	  rating      DOUBLE PRECISION NOT NULL DEFAULT 0,
//	  features    TEXT[] NOT NULL DEFAULT '{}',
//	  in_stock    BOOLEAN NOT NULL DEFAULT TRUE,
//	  pre_order   BOOLEAN NOT NULL DEFAULT FALSE,
//	  created_at  TIMESTAMPTZ NOT NULL,
//	  updated_at  TIMESTAMPTZ NOT NULL
//	);
type ProductRepositoryPG struct {
	DB *sql.DB
}

func NewProductRepositoryPG(db *sql.DB) *ProductRepositoryPG {
	return &ProductRepositoryPG{DB: db}
}

const productColumns = `
  id, name, price_cents, description, image_url, category,
  rating, features, in_stock, pre_order, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (productdom.Product, error) {
	var p productdom.Product
	err := row.Scan(
		&p.ID, &p.Name, &p.PriceCents, &p.Description, &p.ImageURL, &p.Category,
		&p.Rating, pq.Array(&p.Features), &p.InStock, &p.PreOrder, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

func (r *ProductRepositoryPG) GetByID(ctx context.Context, id string) (*productdom.Product, error) {
	const q = `SELECT` + productColumns + ` FROM products WHERE id = $1`

	row := r.DB.QueryRowContext(ctx, q, strings.TrimSpace(id))
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, productdom.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepositoryPG) List(ctx context.Context, f productdom.Filter) ([]productdom.Product, error) {
	var (
		where []string
		args  []any
	)
	if cat := strings.TrimSpace(f.Category); cat != "" {
		args = append(args, cat)
		where = append(where, "category = $1")
	}
	if f.InStockOnly {
		where = append(where, "in_stock")
	}

	q := `SELECT` + productColumns + ` FROM products`
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY created_at DESC, id"

	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []productdom.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *ProductRepositoryPG) Insert(ctx context.Context, p productdom.Product) error {
	const q = `
INSERT INTO products (id, name, price_cents, description, image_url, category,
                      rating, features, in_stock, pre_order, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`

	_, err := r.DB.ExecContext(ctx, q,
		p.ID, p.Name, p.PriceCents, p.Description, p.ImageURL, p.Category,
		p.Rating, pq.Array(p.Features), p.InStock, p.PreOrder, p.CreatedAt, p.UpdatedAt,
	)
	return err
}

func (r *ProductRepositoryPG) Update(ctx context.Context, p productdom.Product) error {
	const q = `
UPDATE products
SET name = $2, price_cents = $3, description = $4, image_url = $5, category = $6,
    rating = $7, features = $8, in_stock = $9, pre_order = $10, updated_at = $11
WHERE id = $1`

	res, err := r.DB.ExecContext(ctx, q,
		p.ID, p.Name, p.PriceCents, p.Description, p.ImageURL, p.Category,
		p.Rating, pq.Array(p.Features), p.InStock, p.PreOrder, p.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return productdom.ErrNotFound
	}
	return nil
}

func (r *ProductRepositoryPG) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, strings.TrimSpace(id))
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return productdom.ErrNotFound
	}
	return nil
}
