package store

import (
	"context"
	"fmt"

	"github.com/Pasindu991182/food-delivery-system/internal/model"
)

// AddCartItem adds one unit of foodID to the user's cart.
func (s *SQLiteStore) AddCartItem(ctx context.Context, userID, foodID string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO cart_items (user_id, food_id, quantity) VALUES (?, ?, 1)
		ON CONFLICT (user_id, food_id) DO UPDATE SET quantity = quantity + 1`,
		userID, foodID,
	)
	if err != nil {
		return fmt.Errorf("add cart item: %w", err)
	}
	return nil
}

// RemoveCartItem removes one unit of foodID from the user's cart, dropping the
// line when it reaches zero. It returns ErrNotFound if the item is not in the cart.
func (s *SQLiteStore) RemoveCartItem(ctx context.Context, userID, foodID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := execUpdate(ctx, tx, "decrement cart item",
		`UPDATE cart_items SET quantity = quantity - 1 WHERE user_id = ? AND food_id = ?`,
		userID, foodID,
	); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM cart_items WHERE user_id = ? AND food_id = ? AND quantity <= 0`,
		userID, foodID,
	); err != nil {
		return fmt.Errorf("drop empty cart item: %w", err)
	}
	return tx.Commit()
}

// GetCart returns the user's cart ordered by food id.
func (s *SQLiteStore) GetCart(ctx context.Context, userID string) ([]model.CartItem, error) {
	return queryAll(ctx, s.db, "cart items",
		`SELECT food_id, quantity FROM cart_items WHERE user_id = ? ORDER BY food_id`,
		[]any{userID},
		func(row scanner) (model.CartItem, error) {
			var it model.CartItem
			err := row.Scan(&it.FoodID, &it.Quantity)
			return it, err
		},
	)
}
