package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Pasindu991182/food-delivery-system/internal/model"
)

// reviewSelect joins the reviewer's name and the order's oid onto each review.
const reviewSelect = `SELECT r.id, r.rid, r.reviewed_by, COALESCE(u.name, ''), r.review, r.rate,
	r.order_id, COALESCE(o.oid, ''), r.created_at, r.updated_at
FROM reviews r
LEFT JOIN users u ON u.id = r.reviewed_by
LEFT JOIN orders o ON o.id = r.order_id`

func scanReview(row scanner) (*model.Review, error) {
	r := &model.Review{}
	err := row.Scan(
		&r.ID, &r.RID, &r.ReviewedBy, &r.ReviewerName, &r.Review, &r.Rate,
		&r.OrderID, &r.OrderOID, &r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// CreateReview assigns the review's rid and inserts it.
func (s *SQLiteStore) CreateReview(ctx context.Context, r *model.Review) error {
	return s.create(ctx, r, func(ctx context.Context) error {
		_, err := s.db.ExecContext(ctx,
			`INSERT INTO reviews (id, rid, reviewed_by, review, rate, order_id, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			r.ID, r.RID, r.ReviewedBy, r.Review, r.Rate, r.OrderID, r.CreatedAt, r.UpdatedAt,
		)
		return err
	})
}

// GetReview retrieves a review by primary key.
func (s *SQLiteStore) GetReview(ctx context.Context, id string) (*model.Review, error) {
	r, err := scanReview(s.db.QueryRowContext(ctx, reviewSelect+` WHERE r.id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get review: %w", err)
	}
	return r, nil
}

// ListReviews returns reviews, newest first.
func (s *SQLiteStore) ListReviews(ctx context.Context, p Page) ([]*model.Review, int, error) {
	return listPage(ctx, s.db, "reviews",
		`SELECT COUNT(*) FROM reviews`,
		reviewSelect+` ORDER BY r.created_at DESC, r.rid DESC LIMIT ? OFFSET ?`,
		nil, p, scanReview,
	)
}

// ListReviewsByFood returns reviews of every order that contains foodID.
func (s *SQLiteStore) ListReviewsByFood(ctx context.Context, foodID string) ([]*model.Review, error) {
	return queryAll(ctx, s.db, "reviews",
		reviewSelect+` WHERE r.order_id IN (
			SELECT oi.id FROM orders oi, json_each(oi.items) item
			WHERE json_extract(item.value, '$.food_id') = ?
		) ORDER BY r.created_at DESC, r.rid DESC`,
		[]any{foodID}, scanReview,
	)
}

// UpdateReview overwrites a review's text and rate. The rid is never changed.
func (s *SQLiteStore) UpdateReview(ctx context.Context, r *model.Review) error {
	return execUpdate(ctx, s.db, "update review",
		`UPDATE reviews SET review = ?, rate = ?, updated_at = ? WHERE id = ?`,
		r.Review, r.Rate, r.UpdatedAt, r.ID,
	)
}

// DeleteReview removes a review.
func (s *SQLiteStore) DeleteReview(ctx context.Context, id string) error {
	return execUpdate(ctx, s.db, "delete review", `DELETE FROM reviews WHERE id = ?`, id)
}
