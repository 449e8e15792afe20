package directory

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const userColumns = `
    id, name, email, role,
    COALESCE(department, ''),
    COALESCE(departments, '{}'),
    COALESCE(permissions, '{}'),
    created_at, updated_at
`

func (s *Store) GetUsers(ctx context.Context) ([]User, error) {
	rows, err := s.DB.Query(ctx, "SELECT "+userColumns+" FROM users ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.Department, &u.Departments, &u.Permissions, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (s *Store) GetUserByID(ctx context.Context, userID string) (*User, error) {
	var u User
	err := s.DB.QueryRow(ctx, "SELECT "+userColumns+" FROM users WHERE id = $1", userID).
		Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.Department, &u.Departments, &u.Permissions, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	err := s.DB.QueryRow(ctx, "SELECT "+userColumns+", password_hash FROM users WHERE lower(email) = lower($1)", email).
		Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.Department, &u.Departments, &u.Permissions, &u.CreatedAt, &u.UpdatedAt, &u.PasswordHash)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *Store) CreateUser(ctx context.Context, u *User) error {
	return s.DB.QueryRow(ctx, `
    INSERT INTO users (name, email, role, department, departments, permissions, password_hash)
    VALUES ($1, $2, $3, $4, $5, $6, $7)
    RETURNING id, created_at, updated_at
  `, u.Name, u.Email, u.Role, u.Department, u.Departments, u.Permissions, u.PasswordHash).
		Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
}

func (s *Store) UpdateUser(ctx context.Context, u *User) error {
	_, err := s.DB.Exec(ctx, `
    UPDATE users
    SET name = $2, email = $3, role = $4, department = $5, departments = $6, permissions = $7, updated_at = now()
    WHERE id = $1
  `, u.ID, u.Name, u.Email, u.Role, u.Department, u.Departments, u.Permissions)
	return err
}

func (s *Store) UpdateUserPassword(ctx context.Context, userID, passwordHash string) error {
	_, err := s.DB.Exec(ctx, "UPDATE users SET password_hash = $2, updated_at = now() WHERE id = $1", userID, passwordHash)
	return err
}

func (s *Store) DeleteUser(ctx context.Context, userID string) error {
	_, err := s.DB.Exec(ctx, "DELETE FROM users WHERE id = $1", userID)
	return err
}

func (s *Store) GetDepartments(ctx context.Context) ([]Department, error) {
	rows, err := s.DB.Query(ctx, "SELECT id, name, COALESCE(manager, ''), created_at FROM departments ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var departments []Department
	for rows.Next() {
		var d Department
		if err := rows.Scan(&d.ID, &d.Name, &d.Manager, &d.CreatedAt); err != nil {
			return nil, err
		}
		departments = append(departments, d)
	}
	return departments, rows.Err()
}

func (s *Store) CreateDepartment(ctx context.Context, d *Department) error {
	return s.DB.QueryRow(ctx, `
    INSERT INTO departments (name, manager)
    VALUES ($1, $2)
    RETURNING id, created_at
  `, d.Name, d.Manager).Scan(&d.ID, &d.CreatedAt)
}

func (s *Store) UpdateDepartment(ctx context.Context, d *Department) error {
	_, err := s.DB.Exec(ctx, "UPDATE departments SET name = $2, manager = $3 WHERE id = $1", d.ID, d.Name, d.Manager)
	return err
}

func (s *Store) DeleteDepartment(ctx context.Context, departmentID string) error {
	_, err := s.DB.Exec(ctx, "DELETE FROM departments WHERE id = $1", departmentID)
	return err
}
