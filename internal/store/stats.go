package store

import (
	"context"
	"fmt"

	"github.com/Pasindu991182/food-delivery-system/internal/model"
)

// GetStats computes dashboard figures in a single read transaction.
func (s *SQLiteStore) GetStats(ctx context.Context) (*Stats, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin read tx: %w", err)
	}
	defer tx.Rollback()

	stats := &Stats{OrdersByStatus: make(map[string]int)}

	err = tx.QueryRowContext(ctx,
		`SELECT
			(SELECT COUNT(*) FROM users WHERE role = ?),
			(SELECT COUNT(*) FROM foods),
			(SELECT COUNT(*) FROM orders),
			(SELECT COUNT(*) FROM delivery_persons),
			(SELECT COUNT(*) FROM reviews),
			(SELECT COUNT(*) FROM contact_messages WHERE status = ?),
			(SELECT COALESCE(SUM(amount), 0) FROM orders WHERE payment = 1)`,
		model.RoleUser, model.MessagePending,
	).Scan(
		&stats.Users, &stats.Foods, &stats.Orders, &stats.DeliveryPersons,
		&stats.Reviews, &stats.PendingMessages, &stats.Revenue,
	)
	if err != nil {
		return nil, fmt.Errorf("count records: %w", err)
	}

	rows, err := tx.QueryContext(ctx, `SELECT status, COUNT(*) FROM orders GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("count by status: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("scan status count: %w", err)
		}
		stats.OrdersByStatus[status] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate status counts: %w", err)
	}

	return stats, nil
}
