package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Pasindu991182/food-delivery-system/internal/model"
)

const messageColumns = `id, cid, message, status, user_id, email, created_at, updated_at`

func scanContactMessage(row scanner) (*model.ContactMessage, error) {
	m := &model.ContactMessage{}
	err := row.Scan(&m.ID, &m.CID, &m.Message, &m.Status, &m.UserID, &m.Email, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// CreateContactMessage assigns the message's cid and inserts it.
func (s *SQLiteStore) CreateContactMessage(ctx context.Context, m *model.ContactMessage) error {
	return s.create(ctx, m, func(ctx context.Context) error {
		_, err := s.db.ExecContext(ctx,
			`INSERT INTO contact_messages (`+messageColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			m.ID, m.CID, m.Message, m.Status, m.UserID, m.Email, m.CreatedAt, m.UpdatedAt,
		)
		return err
	})
}

// GetContactMessage retrieves a contact message by primary key.
func (s *SQLiteStore) GetContactMessage(ctx context.Context, id string) (*model.ContactMessage, error) {
	m, err := scanContactMessage(s.db.QueryRowContext(ctx,
		`SELECT `+messageColumns+` FROM contact_messages WHERE id = ?`, id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get contact message: %w", err)
	}
	return m, nil
}

// ListContactMessages returns contact messages, newest first.
func (s *SQLiteStore) ListContactMessages(ctx context.Context, p Page) ([]*model.ContactMessage, int, error) {
	return listPage(ctx, s.db, "contact messages",
		`SELECT COUNT(*) FROM contact_messages`,
		`SELECT `+messageColumns+` FROM contact_messages ORDER BY created_at DESC, cid DESC LIMIT ? OFFSET ?`,
		nil, p, scanContactMessage,
	)
}

// UpdateContactMessage overwrites a message's fields. The cid is never changed.
func (s *SQLiteStore) UpdateContactMessage(ctx context.Context, m *model.ContactMessage) error {
	return execUpdate(ctx, s.db, "update contact message",
		`UPDATE contact_messages SET message = ?, status = ?, user_id = ?, email = ?, updated_at = ? WHERE id = ?`,
		m.Message, m.Status, m.UserID, m.Email, m.UpdatedAt, m.ID,
	)
}

// DeleteContactMessage removes a contact message.
func (s *SQLiteStore) DeleteContactMessage(ctx context.Context, id string) error {
	return execUpdate(ctx, s.db, "delete contact message", `DELETE FROM contact_messages WHERE id = ?`, id)
}
