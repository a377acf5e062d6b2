package order

import (
	"context"
	"errors"
	"io"
	"log"
	"time"

	"grocerystore/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

type placementLine struct {
	ProductID   string
	ProductName string
	Quantity    int
	PriceCents  int64
	Stock       int
}

func (r *postgresRepo) CreateFromCart(ctx context.Context, in CreateFromCartInput) (*domain.Order, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var cartID string
	err = tx.QueryRow(ctx, `SELECT id::text FROM carts WHERE user_id = $1`, in.UserID).Scan(&cartID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEmptyCart
		}
		return nil, err
	}

	// Locking the product rows up front serializes concurrent placements
	// touching the same products, so the stock check below cannot race
	// with another order's decrement.
	const linesQuery = `
SELECT cl.product_id::text, p.name, cl.quantity, p.price_cents, p.stock
FROM cart_lines cl
JOIN products p ON p.id = cl.product_id
WHERE cl.cart_id = $1
ORDER BY cl.created_at ASC
FOR UPDATE OF p
`
	rows, err := tx.Query(ctx, linesQuery, cartID)
	if err != nil {
		return nil, err
	}

	var lines []placementLine
	for rows.Next() {
		var line placementLine
		if err := rows.Scan(&line.ProductID, &line.ProductName, &line.Quantity, &line.PriceCents, &line.Stock); err != nil {
			rows.Close()
			return nil, err
		}
		lines = append(lines, line)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(lines) == 0 {
		return nil, domain.ErrEmptyCart
	}

	// All-or-nothing: reject the whole placement before any write.
	var totalCents int64
	for _, line := range lines {
		if line.Stock < line.Quantity {
			return nil, &domain.InsufficientStockError{ProductName: line.ProductName}
		}
		totalCents += line.PriceCents * int64(line.Quantity)
	}
	totalCents += in.DeliveryFeeCents

	var orderID string
	err = tx.QueryRow(ctx, `
INSERT INTO orders (user_id, total_cents, shipping_address, phone, payment_method, status)
VALUES ($1, $2, $3, $4, $5, 'pending')
RETURNING id::text
`, in.UserID, totalCents, in.ShippingAddress, in.Phone, in.PaymentMethod).Scan(&orderID)
	if err != nil {
		return nil, err
	}

	for _, line := range lines {
		// Conditional decrement keeps the non-negative invariant even if
		// the row lock above were ever lost to a schema change.
		cmd, err := tx.Exec(ctx, `
UPDATE products SET stock = stock - $2 WHERE id = $1 AND stock >= $2
`, line.ProductID, line.Quantity)
		if err != nil {
			return nil, err
		}
		if cmd.RowsAffected() == 0 {
			return nil, &domain.InsufficientStockError{ProductName: line.ProductName}
		}

		if _, err := tx.Exec(ctx, `
INSERT INTO order_items (order_id, product_id, quantity, unit_price_cents)
VALUES ($1, $2, $3, $4)
`, orderID, line.ProductID, line.Quantity, line.PriceCents); err != nil {
			return nil, err
		}
	}

	if _, err := tx.Exec(ctx, `DELETE FROM cart_lines WHERE cart_id = $1`, cartID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	r.logger.Printf("order repo: placed id=%s user_id=%s total_cents=%d lines=%d", orderID, in.UserID, totalCents, len(lines))
	return r.GetByID(ctx, orderID)
}

const orderColumns = `
o.id::text, o.user_id::text, o.total_cents, o.shipping_address, o.phone, o.payment_method, o.status,
o.delivery_partner, o.delivery_tracking_id, o.delivery_notes, o.delivery_expected_at, o.delivery_updated_at,
o.created_at`

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	q := `
SELECT ` + orderColumns + `
FROM orders o
WHERE o.id = $1
`
	order, err := scanOrder(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if err := r.attachItems(ctx, []*domain.Order{order}); err != nil {
		return nil, err
	}
	return order, nil
}

func (r *postgresRepo) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	q := `
SELECT ` + orderColumns + `
FROM orders o
WHERE o.user_id = $1
ORDER BY o.created_at DESC
`
	return r.queryOrders(ctx, q, false, userID)
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.Order, error) {
	q := `
SELECT ` + orderColumns + `
FROM orders o
ORDER BY o.created_at DESC
`
	return r.queryOrders(ctx, q, true)
}

func (r *postgresRepo) Update(ctx context.Context, id string, in UpdateInput) (*domain.Order, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if in.Status != nil {
		cmd, err := tx.Exec(ctx, `UPDATE orders SET status = $2 WHERE id = $1`, id, string(*in.Status))
		if err != nil {
			return nil, err
		}
		if cmd.RowsAffected() == 0 {
			return nil, domain.ErrNotFound
		}
	}

	if in.Delivery != nil {
		patch := in.Delivery
		var expected *time.Time
		setExpected := patch.ClearExpectedDelivery
		if patch.ExpectedDelivery != nil {
			expected = patch.ExpectedDelivery
			setExpected = true
		}
		// Any delivery field touched stamps delivery_updated_at; a
		// status-only update leaves it alone.
		cmd, err := tx.Exec(ctx, `
UPDATE orders
SET delivery_partner = COALESCE($2, delivery_partner),
    delivery_tracking_id = COALESCE($3, delivery_tracking_id),
    delivery_notes = COALESCE($4, delivery_notes),
    delivery_expected_at = CASE WHEN $5 THEN $6 ELSE delivery_expected_at END,
    delivery_updated_at = now()
WHERE id = $1
`, id, patch.Partner, patch.TrackingID, patch.Notes, setExpected, expected)
		if err != nil {
			return nil, err
		}
		if cmd.RowsAffected() == 0 {
			return nil, domain.ErrNotFound
		}
	}

	if in.Status == nil && in.Delivery == nil {
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM orders WHERE id = $1)`, id).Scan(&exists); err != nil {
			return nil, err
		}
		if !exists {
			return nil, domain.ErrNotFound
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	order, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.attachUsers(ctx, []*domain.Order{order}); err != nil {
		return nil, err
	}
	return order, nil
}

func (r *postgresRepo) queryOrders(ctx context.Context, q string, withUsers bool, args ...interface{}) ([]domain.Order, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		r.logger.Printf("order repo: query error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	refs := make([]*domain.Order, len(orders))
	for i := range orders {
		refs[i] = &orders[i]
	}
	if err := r.attachItems(ctx, refs); err != nil {
		return nil, err
	}
	if withUsers {
		if err := r.attachUsers(ctx, refs); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var o domain.Order
	var status string
	var delivery domain.DeliveryDetails
	err := row.Scan(
		&o.ID,
		&o.UserID,
		&o.TotalCents,
		&o.ShippingAddress,
		&o.Phone,
		&o.PaymentMethod,
		&status,
		&delivery.Partner,
		&delivery.TrackingID,
		&delivery.Notes,
		&delivery.ExpectedDelivery,
		&delivery.LastUpdated,
		&o.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	o.Status = domain.OrderStatus(status)
	if !delivery.Empty() {
		o.Delivery = &delivery
	}
	return &o, nil
}

func (r *postgresRepo) attachItems(ctx context.Context, orders []*domain.Order) error {
	if len(orders) == 0 {
		return nil
	}
	ids := make([]string, len(orders))
	byID := make(map[string]*domain.Order, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
		byID[o.ID] = o
	}

	const q = `
SELECT oi.id::text, oi.order_id::text, oi.product_id::text, oi.quantity, oi.unit_price_cents,
       p.id::text, p.name, p.category, p.price_cents, p.stock, COALESCE(p.description, ''), COALESCE(p.image_url, ''), p.created_at
FROM order_items oi
JOIN products p ON p.id = oi.product_id
WHERE oi.order_id = ANY($1)
`
	rows, err := r.pool.Query(ctx, q, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.OrderItem
		var p domain.Product
		if err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.ProductID,
			&item.Quantity,
			&item.UnitPriceCents,
			&p.ID,
			&p.Name,
			&p.Category,
			&p.PriceCents,
			&p.Stock,
			&p.Description,
			&p.ImageURL,
			&p.CreatedAt,
		); err != nil {
			return err
		}
		item.Product = &p
		if o, ok := byID[item.OrderID]; ok {
			o.Items = append(o.Items, item)
		}
	}
	return rows.Err()
}

func (r *postgresRepo) attachUsers(ctx context.Context, orders []*domain.Order) error {
	if len(orders) == 0 {
		return nil
	}
	ids := make([]string, 0, len(orders))
	seen := make(map[string]bool, len(orders))
	for _, o := range orders {
		if !seen[o.UserID] {
			seen[o.UserID] = true
			ids = append(ids, o.UserID)
		}
	}

	const q = `
SELECT id::text, name, email, COALESCE(address, ''), created_at
FROM users
WHERE id = ANY($1)
`
	rows, err := r.pool.Query(ctx, q, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	users := make(map[string]*domain.User, len(ids))
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Address, &u.CreatedAt); err != nil {
			return err
		}
		users[u.ID] = &u
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for _, o := range orders {
		o.User = users[o.UserID]
	}
	return nil
}
