package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Pasindu991182/food-delivery-system/internal/model"
)

const deliveryPersonColumns = `id, did, first_name, last_name, nic, email, age, vehicle_type, address`

func scanDeliveryPerson(row scanner) (*model.DeliveryPerson, error) {
	p := &model.DeliveryPerson{}
	err := row.Scan(&p.ID, &p.DID, &p.FirstName, &p.LastName, &p.NIC, &p.Email, &p.Age, &p.VehicleType, &p.Address)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// CreateDeliveryPerson assigns the courier's did and inserts it.
func (s *SQLiteStore) CreateDeliveryPerson(ctx context.Context, p *model.DeliveryPerson) error {
	return s.create(ctx, p, func(ctx context.Context) error {
		_, err := s.db.ExecContext(ctx,
			`INSERT INTO delivery_persons (`+deliveryPersonColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			p.ID, p.DID, p.FirstName, p.LastName, p.NIC, p.Email, p.Age, p.VehicleType, p.Address,
		)
		return err
	})
}

// GetDeliveryPerson retrieves a courier by primary key.
func (s *SQLiteStore) GetDeliveryPerson(ctx context.Context, id string) (*model.DeliveryPerson, error) {
	p, err := scanDeliveryPerson(s.db.QueryRowContext(ctx,
		`SELECT `+deliveryPersonColumns+` FROM delivery_persons WHERE id = ?`, id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get delivery person: %w", err)
	}
	return p, nil
}

// FindDeliveryPerson retrieves the courier matching both nic and email.
func (s *SQLiteStore) FindDeliveryPerson(ctx context.Context, nic, email string) (*model.DeliveryPerson, error) {
	p, err := scanDeliveryPerson(s.db.QueryRowContext(ctx,
		`SELECT `+deliveryPersonColumns+` FROM delivery_persons WHERE nic = ? AND email = ?`, nic, email,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find delivery person: %w", err)
	}
	return p, nil
}

// ListDeliveryPersons returns couriers ordered by did, newest first.
func (s *SQLiteStore) ListDeliveryPersons(ctx context.Context, p Page) ([]*model.DeliveryPerson, int, error) {
	return listPage(ctx, s.db, "delivery persons",
		`SELECT COUNT(*) FROM delivery_persons`,
		`SELECT `+deliveryPersonColumns+` FROM delivery_persons ORDER BY length(did) DESC, did DESC LIMIT ? OFFSET ?`,
		nil, p, scanDeliveryPerson,
	)
}

// UpdateDeliveryPerson overwrites a courier's profile. The did is never changed.
func (s *SQLiteStore) UpdateDeliveryPerson(ctx context.Context, p *model.DeliveryPerson) error {
	return execUpdate(ctx, s.db, "update delivery person",
		`UPDATE delivery_persons SET first_name = ?, last_name = ?, nic = ?, email = ?,
			age = ?, vehicle_type = ?, address = ?
		WHERE id = ?`,
		p.FirstName, p.LastName, p.NIC, p.Email, p.Age, p.VehicleType, p.Address, p.ID,
	)
}

// DeleteDeliveryPerson removes a courier.
func (s *SQLiteStore) DeleteDeliveryPerson(ctx context.Context, id string) error {
	return execUpdate(ctx, s.db, "delete delivery person", `DELETE FROM delivery_persons WHERE id = ?`, id)
}

const assignmentColumns = `id, did, order_id, delivery_person_id, assigned_at, status`

func scanAssignment(row scanner) (*model.DeliveryAssignment, error) {
	a := &model.DeliveryAssignment{}
	err := row.Scan(&a.ID, &a.DID, &a.OrderID, &a.DeliveryPersonID, &a.AssignedAt, &a.Status)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// CreateAssignment assigns the assignment's did, inserts it and moves the
// order to "Assigned for Delivery" in one transaction. It returns ErrNotFound
// when either the order or the courier does not exist.
func (s *SQLiteStore) CreateAssignment(ctx context.Context, a *model.DeliveryAssignment) error {
	return s.create(ctx, a, func(ctx context.Context) error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin tx: %w", err)
		}
		defer tx.Rollback()

		// Write first so the transaction holds the write lock from the start.
		if err := execUpdate(ctx, tx, "assign order",
			`UPDATE orders SET status = ? WHERE id = ?`, model.OrderStatusAssigned, a.OrderID,
		); err != nil {
			return err
		}

		var exists int
		err = tx.QueryRowContext(ctx, `SELECT 1 FROM delivery_persons WHERE id = ?`, a.DeliveryPersonID).Scan(&exists)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("check delivery person: %w", err)
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO delivery_assignments (`+assignmentColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
			a.ID, a.DID, a.OrderID, a.DeliveryPersonID, a.AssignedAt, a.Status,
		); err != nil {
			return err
		}
		return tx.Commit()
	})
}

// GetAssignment retrieves an assignment by primary key.
func (s *SQLiteStore) GetAssignment(ctx context.Context, id string) (*model.DeliveryAssignment, error) {
	a, err := scanAssignment(s.db.QueryRowContext(ctx,
		`SELECT `+assignmentColumns+` FROM delivery_assignments WHERE id = ?`, id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get assignment: %w", err)
	}
	return a, nil
}

// ListAssignments returns assignments, most recently assigned first.
func (s *SQLiteStore) ListAssignments(ctx context.Context, p Page) ([]*model.DeliveryAssignment, int, error) {
	return listPage(ctx, s.db, "assignments",
		`SELECT COUNT(*) FROM delivery_assignments`,
		`SELECT `+assignmentColumns+` FROM delivery_assignments ORDER BY assigned_at DESC, did DESC LIMIT ? OFFSET ?`,
		nil, p, scanAssignment,
	)
}

// UpdateAssignmentStatus sets an assignment's status.
func (s *SQLiteStore) UpdateAssignmentStatus(ctx context.Context, id, status string) error {
	return execUpdate(ctx, s.db, "update assignment status",
		`UPDATE delivery_assignments SET status = ? WHERE id = ?`, status, id,
	)
}

// DeleteAssignment removes an assignment.
func (s *SQLiteStore) DeleteAssignment(ctx context.Context, id string) error {
	return execUpdate(ctx, s.db, "delete assignment", `DELETE FROM delivery_assignments WHERE id = ?`, id)
}
