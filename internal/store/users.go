package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/skons/warehouse/internal/model"
)

// CreateUser creates a user. Newly registered employees start unapproved;
// the bootstrap admin is created approved.
func CreateUser(ctx context.Context, db *sql.DB, name, employeeID, team, passwordHash, role string, approved bool) (*model.User, error) {
	result, err := db.ExecContext(ctx,
		`INSERT INTO users (name, employee_id, team, password_hash, role, approved)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		name, employeeID, team, passwordHash, role, approved,
	)
	if err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting user id: %w", err)
	}

	return GetUser(ctx, db, id)
}

// GetUser returns a user by ID.
func GetUser(ctx context.Context, db *sql.DB, id int64) (*model.User, error) {
	u := &model.User{}
	err := db.QueryRowContext(ctx,
		`SELECT id, name, employee_id, team, password_hash, role, approved, created_at
		 FROM users WHERE id = ?`, id,
	).Scan(&u.ID, &u.Name, &u.EmployeeID, &u.Team, &u.PasswordHash, &u.Role, &u.Approved, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting user: %w", err)
	}
	return u, nil
}

// GetUserByEmployeeID returns a user by employee ID.
func GetUserByEmployeeID(ctx context.Context, db *sql.DB, employeeID string) (*model.User, error) {
	u := &model.User{}
	err := db.QueryRowContext(ctx,
		`SELECT id, name, employee_id, team, password_hash, role, approved, created_at
		 FROM users WHERE employee_id = ?`, employeeID,
	).Scan(&u.ID, &u.Name, &u.EmployeeID, &u.Team, &u.PasswordHash, &u.Role, &u.Approved, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting user by employee id: %w", err)
	}
	return u, nil
}

// ListUsers returns all non-admin users, pending first.
func ListUsers(ctx context.Context, db *sql.DB) ([]model.User, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, name, employee_id, team, password_hash, role, approved, created_at
		 FROM users WHERE role != ? ORDER BY approved, id`, model.RoleAdmin,
	)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Name, &u.EmployeeID, &u.Team, &u.PasswordHash, &u.Role, &u.Approved, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// ApproveUser marks a registered user as approved.
func ApproveUser(ctx context.Context, db *sql.DB, id int64) error {
	result, err := db.ExecContext(ctx,
		`UPDATE users SET approved = 1 WHERE id = ?`, id,
	)
	if err != nil {
		return fmt.Errorf("approving user: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return fmt.Errorf("user %d: %w", id, ErrNotFound)
	}
	return nil
}

// DeleteUser removes a user. Admin accounts cannot be deleted.
func DeleteUser(ctx context.Context, db *sql.DB, id int64) error {
	result, err := db.ExecContext(ctx,
		`DELETE FROM users WHERE id = ? AND role != ?`, id, model.RoleAdmin,
	)
	if err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return fmt.Errorf("user %d: %w", id, ErrNotFound)
	}
	return nil
}

// UpdateUserPassword updates a user's password hash.
func UpdateUserPassword(ctx context.Context, db *sql.DB, id int64, passwordHash string) error {
	_, err := db.ExecContext(ctx,
		`UPDATE users SET password_hash = ? WHERE id = ?`,
		passwordHash, id,
	)
	if err != nil {
		return fmt.Errorf("updating user password: %w", err)
	}
	return nil
}
