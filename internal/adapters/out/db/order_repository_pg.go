package db

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/lib/pq"

	orderdom "straightenup/internal/domain/order"
)

// OrderRepositoryPG implements order.Repository.
//
// Tables:
//
//	CREATE TABLE orders (
//	  id              TEXT PRIMARY KEY,
//	  user_id         TEXT NOT NULL,
//	  status          TEXT NOT NULL,
//	  subtotal_cents  BIGINT NOT NULL,
//	  shipping_cents  BIGINT NOT NULL,
//	  total_cents     BIGINT NOT NULL,
//	  ship_label      TEXT NOT NULL DEFAULT '',
//	  ship_line1      TEXT NOT NULL,
//	  ship_line2      TEXT NOT NULL DEFAULT '',
//	  ship_city       TEXT NOT NULL,
//	  ship_state      TEXT NOT NULL DEFAULT '',
//	  ship_postal     TEXT NOT NULL,
//	  ship_country    TEXT NOT NULL,
//	  created_at      TIMESTAMPTZ NOT NULL,
//	  updated_at      TIMESTAMPTZ NOT NULL
//	);
//	CREATE TABLE order_items (
//	  id               TEXT PRIMARY KEY,
//	  order_id         TEXT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
//	  product_id       TEXT NOT NULL,
//	  name             TEXT NOT NULL,
//	  unit_price_cents BIGINT NOT NULL,
//	  qty              INTEGER NOT NULL,
//	  image_url        TEXT NOT NULL DEFAULT ''
//	);
type OrderRepositoryPG struct {
	DB *sql.DB
}

func NewOrderRepositoryPG(db *sql.DB) *OrderRepositoryPG {
	return &OrderRepositoryPG{DB: db}
}

const orderColumns = `
  id, user_id, status, subtotal_cents, shipping_cents, total_cents,
  ship_label, ship_line1, ship_line2, ship_city, ship_state, ship_postal, ship_country,
  created_at, updated_at`

func scanOrder(row rowScanner) (orderdom.Order, error) {
	var o orderdom.Order
	err := row.Scan(
		&o.ID, &o.UserID, &o.Status, &o.SubtotalCents, &o.ShippingCents, &o.TotalCents,
		&o.ShippingAddress.Label, &o.ShippingAddress.Line1, &o.ShippingAddress.Line2,
		&o.ShippingAddress.City, &o.ShippingAddress.State, &o.ShippingAddress.PostalCode,
		&o.ShippingAddress.Country,
		&o.CreatedAt, &o.UpdatedAt,
	)
	return o, err
}

func (r *OrderRepositoryPG) GetByID(ctx context.Context, id string) (*orderdom.Order, error) {
	const q = `SELECT` + orderColumns + ` FROM orders WHERE id = $1`

	row := r.DB.QueryRowContext(ctx, q, strings.TrimSpace(id))
	o, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, orderdom.ErrNotFound
		}
		return nil, err
	}
	if err := r.loadItems(ctx, map[string]*orderdom.Order{o.ID: &o}); err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepositoryPG) ListByUserID(ctx context.Context, userID string) ([]orderdom.Order, error) {
	const q = `SELECT` + orderColumns + ` FROM orders WHERE user_id = $1 ORDER BY created_at DESC, id`
	return r.queryOrders(ctx, q, strings.TrimSpace(userID))
}

func (r *OrderRepositoryPG) List(ctx context.Context) ([]orderdom.Order, error) {
	const q = `SELECT` + orderColumns + ` FROM orders ORDER BY created_at DESC, id`
	return r.queryOrders(ctx, q)
}

func (r *OrderRepositoryPG) queryOrders(ctx context.Context, q string, args ...any) ([]orderdom.Order, error) {
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []orderdom.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.loadItems(ctx, indexOrders(out)); err != nil {
		return nil, err
	}
	return out, nil
}

// indexOrders must run only after the slice has stopped growing; a pointer
// taken mid-append goes stale when the backing array reallocates.
func indexOrders(orders []orderdom.Order) map[string]*orderdom.Order {
	byID := make(map[string]*orderdom.Order, len(orders))
	for i := range orders {
		byID[orders[i].ID] = &orders[i]
	}
	return byID
}

func (r *OrderRepositoryPG) loadItems(ctx context.Context, orders map[string]*orderdom.Order) error {
	if len(orders) == 0 {
		return nil
	}
	ids := make([]string, 0, len(orders))
	for id := range orders {
		ids = append(ids, id)
	}

	const q = `
SELECT order_id, id, product_id, name, unit_price_cents, qty, image_url
FROM order_items
WHERE order_id = ANY($1)
ORDER BY order_id, id`

	rows, err := r.DB.QueryContext(ctx, q, pq.Array(ids))
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			orderID string
			it      orderdom.Item
		)
		if err := rows.Scan(&orderID, &it.ID, &it.ProductID, &it.Name, &it.UnitPriceCents, &it.Qty, &it.ImageURL); err != nil {
			return err
		}
		if o, ok := orders[orderID]; ok {
			o.Items = append(o.Items, it)
		}
	}
	return rows.Err()
}

// Insert writes the order row and all item rows in one transaction.
func (r *OrderRepositoryPG) Insert(ctx context.Context, o orderdom.Order) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	const qo = `
INSERT INTO orders (id, user_id, status, subtotal_cents, shipping_cents, total_cents,
                    ship_label, ship_line1, ship_line2, ship_city, ship_state, ship_postal, ship_country,
                    created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)`

	if _, err := tx.ExecContext(ctx, qo,
		o.ID, o.UserID, o.Status, o.SubtotalCents, o.ShippingCents, o.TotalCents,
		o.ShippingAddress.Label, o.ShippingAddress.Line1, o.ShippingAddress.Line2,
		o.ShippingAddress.City, o.ShippingAddress.State, o.ShippingAddress.PostalCode,
		o.ShippingAddress.Country,
		o.CreatedAt, o.UpdatedAt,
	); err != nil {
		return err
	}

	const qi = `
INSERT INTO order_items (id, order_id, product_id, name, unit_price_cents, qty, image_url)
VALUES ($1,$2,$3,$4,$5,$6,$7)`

	for _, it := range o.Items {
		if _, err := tx.ExecContext(ctx, qi,
			it.ID, o.ID, it.ProductID, it.Name, it.UnitPriceCents, it.Qty, it.ImageURL,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *OrderRepositoryPG) UpdateStatus(ctx context.Context, id string, s orderdom.Status) error {
	const q = `UPDATE orders SET status = $2, updated_at = NOW() WHERE id = $1`

	res, err := r.DB.ExecContext(ctx, q, strings.TrimSpace(id), s)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return orderdom.ErrNotFound
	}
	return nil
}
