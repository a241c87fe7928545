package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Pasindu991182/food-delivery-system/internal/model"
)

const foodColumns = `id, fid, name, description, price, image, category, ingredients,
	is_vegetarian, is_gluten_free, is_vegan, is_on_offer, offer_description,
	discount_percentage, created_at, updated_at`

func scanFood(row scanner) (*model.Food, error) {
	f := &model.Food{}
	var ingredients string
	err := row.Scan(
		&f.ID, &f.FID, &f.Name, &f.Description, &f.Price, &f.Image, &f.Category, &ingredients,
		&f.DietaryInfo.IsVegetarian, &f.DietaryInfo.IsGlutenFree, &f.DietaryInfo.IsVegan,
		&f.SpecialOffer.IsOnOffer, &f.SpecialOffer.OfferDescription,
		&f.SpecialOffer.DiscountPercentage, &f.CreatedAt, &f.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := decodeJSON(ingredients, &f.Ingredients); err != nil {
		return nil, fmt.Errorf("decode ingredients: %w", err)
	}
	return f, nil
}

// CreateFood assigns the food item's fid and inserts it.
func (s *SQLiteStore) CreateFood(ctx context.Context, f *model.Food) error {
	ingredients, err := encodeJSON(f.Ingredients)
	if err != nil {
		return fmt.Errorf("encode ingredients: %w", err)
	}

	return s.create(ctx, f, func(ctx context.Context) error {
		_, err := s.db.ExecContext(ctx,
			`INSERT INTO foods (`+foodColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			f.ID, f.FID, f.Name, f.Description, f.Price, f.Image, f.Category, ingredients,
			f.DietaryInfo.IsVegetarian, f.DietaryInfo.IsGlutenFree, f.DietaryInfo.IsVegan,
			f.SpecialOffer.IsOnOffer, f.SpecialOffer.OfferDescription,
			f.SpecialOffer.DiscountPercentage, f.CreatedAt, f.UpdatedAt,
		)
		return err
	})
}

// GetFood retrieves a food item by primary key.
func (s *SQLiteStore) GetFood(ctx context.Context, id string) (*model.Food, error) {
	f, err := scanFood(s.db.QueryRowContext(ctx,
		`SELECT `+foodColumns+` FROM foods WHERE id = ?`, id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get food: %w", err)
	}
	return f, nil
}

// ListFoods returns food items in category (all when empty), newest first.
func (s *SQLiteStore) ListFoods(ctx context.Context, category string, p Page) ([]*model.Food, int, error) {
	where, args := "", []any{}
	if category != "" {
		where, args = " WHERE category = ?", []any{category}
	}
	return listPage(ctx, s.db, "foods",
		`SELECT COUNT(*) FROM foods`+where,
		`SELECT `+foodColumns+` FROM foods`+where+` ORDER BY created_at DESC, fid DESC LIMIT ? OFFSET ?`,
		args, p, scanFood,
	)
}

// UpdateFood overwrites a food item's catalog fields. The fid and creation
// time are never changed.
func (s *SQLiteStore) UpdateFood(ctx context.Context, f *model.Food) error {
	ingredients, err := encodeJSON(f.Ingredients)
	if err != nil {
		return fmt.Errorf("encode ingredients: %w", err)
	}

	return execUpdate(ctx, s.db, "update food",
		`UPDATE foods SET name = ?, description = ?, price = ?, image = ?, category = ?,
			ingredients = ?, is_vegetarian = ?, is_gluten_free = ?, is_vegan = ?,
			is_on_offer = ?, offer_description = ?, discount_percentage = ?, updated_at = ?
		WHERE id = ?`,
		f.Name, f.Description, f.Price, f.Image, f.Category, ingredients,
		f.DietaryInfo.IsVegetarian, f.DietaryInfo.IsGlutenFree, f.DietaryInfo.IsVegan,
		f.SpecialOffer.IsOnOffer, f.SpecialOffer.OfferDescription,
		f.SpecialOffer.DiscountPercentage, f.UpdatedAt, f.ID,
	)
}

// DeleteFood removes a food item and drops it from every cart.
func (s *SQLiteStore) DeleteFood(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := execUpdate(ctx, tx, "delete food", `DELETE FROM foods WHERE id = ?`, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM cart_items WHERE food_id = ?`, id); err != nil {
		return fmt.Errorf("delete cart items: %w", err)
	}
	return tx.Commit()
}
