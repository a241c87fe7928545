package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Pasindu991182/food-delivery-system/internal/model"
)

const orderColumns = `id, oid, user_id, items, amount, address, status, payment, date`

func scanOrder(row scanner) (*model.Order, error) {
	o := &model.Order{}
	var items, address string
	err := row.Scan(&o.ID, &o.OID, &o.UserID, &items, &o.Amount, &address, &o.Status, &o.Payment, &o.Date)
	if err != nil {
		return nil, err
	}
	if err := decodeJSON(items, &o.Items); err != nil {
		return nil, fmt.Errorf("decode items: %w", err)
	}
	if err := decodeJSON(address, &o.Address); err != nil {
		return nil, fmt.Errorf("decode address: %w", err)
	}
	return o, nil
}

func encodeOrder(o *model.Order) (items, address string, err error) {
	if items, err = encodeJSON(o.Items); err != nil {
		return "", "", fmt.Errorf("encode items: %w", err)
	}
	if address, err = encodeJSON(o.Address); err != nil {
		return "", "", fmt.Errorf("encode address: %w", err)
	}
	return items, address, nil
}

// CreateOrder assigns the order's oid, inserts it and empties the
// customer's cart in the same transaction.
func (s *SQLiteStore) CreateOrder(ctx context.Context, o *model.Order) error {
	items, address, err := encodeOrder(o)
	if err != nil {
		return err
	}

	return s.create(ctx, o, func(ctx context.Context) error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin tx: %w", err)
		}
		defer tx.Rollback()

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO orders (`+orderColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			o.ID, o.OID, o.UserID, items, o.Amount, address, o.Status, o.Payment, o.Date,
		); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM cart_items WHERE user_id = ?`, o.UserID); err != nil {
			return fmt.Errorf("clear cart: %w", err)
		}
		return tx.Commit()
	})
}

// GetOrder retrieves an order by primary key.
func (s *SQLiteStore) GetOrder(ctx context.Context, id string) (*model.Order, error) {
	o, err := scanOrder(s.db.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = ?`, id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	return o, nil
}

// ListOrders returns orders with the given status (all when empty), newest first.
func (s *SQLiteStore) ListOrders(ctx context.Context, status string, p Page) ([]*model.Order, int, error) {
	where, args := "", []any{}
	if status != "" {
		where, args = " WHERE status = ?", []any{status}
	}
	return listPage(ctx, s.db, "orders",
		`SELECT COUNT(*) FROM orders`+where,
		`SELECT `+orderColumns+` FROM orders`+where+` ORDER BY date DESC, oid DESC LIMIT ? OFFSET ?`,
		args, p, scanOrder,
	)
}

// ListOrdersByUser returns a customer's order history, newest first.
func (s *SQLiteStore) ListOrdersByUser(ctx context.Context, userID string) ([]*model.Order, error) {
	return queryAll(ctx, s.db, "orders",
		`SELECT `+orderColumns+` FROM orders WHERE user_id = ? ORDER BY date DESC, oid DESC`,
		[]any{userID}, scanOrder,
	)
}

// UpdateOrder overwrites an order's mutable fields. The oid, owner and
// placement date are never changed.
func (s *SQLiteStore) UpdateOrder(ctx context.Context, o *model.Order) error {
	items, address, err := encodeOrder(o)
	if err != nil {
		return err
	}
	return execUpdate(ctx, s.db, "update order",
		`UPDATE orders SET items = ?, amount = ?, address = ?, status = ?, payment = ? WHERE id = ?`,
		items, o.Amount, address, o.Status, o.Payment, o.ID,
	)
}

// UpdateOrderStatus sets an order's status.
func (s *SQLiteStore) UpdateOrderStatus(ctx context.Context, id, status string) error {
	return execUpdate(ctx, s.db, "update order status",
		`UPDATE orders SET status = ? WHERE id = ?`, status, id,
	)
}

// DeleteOrder removes an order.
func (s *SQLiteStore) DeleteOrder(ctx context.Context, id string) error {
	return execUpdate(ctx, s.db, "delete order", `DELETE FROM orders WHERE id = ?`, id)
}
