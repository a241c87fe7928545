package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Pasindu991182/food-delivery-system/internal/model"
)

const userColumns = `id, uid, name, email, phone_number, password_hash, address, role, created_at, updated_at`

func scanUser(row scanner) (*model.User, error) {
	u := &model.User{}
	err := row.Scan(
		&u.ID, &u.UID, &u.Name, &u.Email, &u.PhoneNumber, &u.PasswordHash,
		&u.Address, &u.Role, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// CreateUser assigns the user's uid and inserts it.
func (s *SQLiteStore) CreateUser(ctx context.Context, u *model.User) error {
	return s.create(ctx, u, func(ctx context.Context) error {
		_, err := s.db.ExecContext(ctx,
			`INSERT INTO users (`+userColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			u.ID, u.UID, u.Name, u.Email, u.PhoneNumber, u.PasswordHash,
			u.Address, u.Role, u.CreatedAt, u.UpdatedAt,
		)
		return err
	})
}

// GetUser retrieves a user by primary key.
func (s *SQLiteStore) GetUser(ctx context.Context, id string) (*model.User, error) {
	return s.getUser(ctx, "id", id)
}

// GetUserByEmail retrieves a user by email address.
func (s *SQLiteStore) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.getUser(ctx, "email", email)
}

func (s *SQLiteStore) getUser(ctx context.Context, column, value string) (*model.User, error) {
	u, err := scanUser(s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE `+column+` = ?`, value,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// ListUsers returns users with the given role (all roles when empty),
// newest first, along with the total count.
func (s *SQLiteStore) ListUsers(ctx context.Context, role string, p Page) ([]*model.User, int, error) {
	where, args := "", []any{}
	if role != "" {
		where, args = " WHERE role = ?", []any{role}
	}
	return listPage(ctx, s.db, "users",
		`SELECT COUNT(*) FROM users`+where,
		`SELECT `+userColumns+` FROM users`+where+` ORDER BY created_at DESC, uid DESC LIMIT ? OFFSET ?`,
		args, p, scanUser,
	)
}

// UpdateUser overwrites a user's profile fields. The uid and creation time
// are never changed.
func (s *SQLiteStore) UpdateUser(ctx context.Context, u *model.User) error {
	return execUpdate(ctx, s.db, "update user",
		`UPDATE users SET name = ?, email = ?, phone_number = ?, password_hash = ?,
			address = ?, role = ?, updated_at = ?
		WHERE id = ?`,
		u.Name, u.Email, u.PhoneNumber, u.PasswordHash, u.Address, u.Role, u.UpdatedAt, u.ID,
	)
}

// DeleteUser removes a user and their cart.
func (s *SQLiteStore) DeleteUser(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := execUpdate(ctx, tx, "delete user", `DELETE FROM users WHERE id = ?`, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM cart_items WHERE user_id = ?`, id); err != nil {
		return fmt.Errorf("delete cart: %w", err)
	}
	return tx.Commit()
}
