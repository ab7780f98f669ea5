package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"pharmaDeliveryManagement/models"
)

// SQLiteAdminRepository persists admins in the admins table.
type SQLiteAdminRepository struct {
	db *sql.DB
}

func NewSQLiteAdminRepository(db *sql.DB) *SQLiteAdminRepository {
	return &SQLiteAdminRepository{db: db}
}

func (r *SQLiteAdminRepository) Insert(ctx context.Context, a *models.Admin) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO admins (id, email, password_hash, name, role, created_at, last_login) VALUES (?,?,?,?,?,?,?)`,
		a.ID, a.Email, a.PasswordHash, a.Name, a.Role, formatTime(a.CreatedAt), formatNullTime(a.LastLogin))
	return err
}

func (r *SQLiteAdminRepository) GetByID(ctx context.Context, id string) (*models.Admin, error) {
	return r.getWhere(ctx, `id = ?`, id)
}

func (r *SQLiteAdminRepository) GetByEmail(ctx context.Context, email string) (*models.Admin, error) {
	return r.getWhere(ctx, `email = ?`, email)
}

func (r *SQLiteAdminRepository) getWhere(ctx context.Context, where string, arg any) (*models.Admin, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	var a models.Admin
	var createdAt string
	var lastLogin sql.NullString
	err := r.db.QueryRowContext(ctx,
		`SELECT id, email, password_hash, name, role, created_at, last_login FROM admins WHERE `+where, arg).
		Scan(&a.ID, &a.Email, &a.PasswordHash, &a.Name, &a.Role, &createdAt, &lastLogin)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	a.CreatedAt = parseTime(createdAt)
	a.LastLogin = parseNullTime(lastLogin)
	return &a, nil
}

func (r *SQLiteAdminRepository) Update(ctx context.Context, id string, u models.AdminUpdate) (*models.Admin, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	a, err := r.getWhere(ctx, `id = ?`, id)
	if err != nil || a == nil {
		return nil, err
	}
	if u.Email != nil {
		a.Email = *u.Email
	}
	if u.PasswordHash != nil {
		a.PasswordHash = *u.PasswordHash
	}
	if u.Name != nil {
		a.Name = *u.Name
	}
	if u.LastLogin != nil {
		t := *u.LastLogin
		a.LastLogin = &t
	}
	_, err = r.db.ExecContext(ctx,
		`UPDATE admins SET email = ?, password_hash = ?, name = ?, last_login = ? WHERE id = ?`,
		a.Email, a.PasswordHash, a.Name, formatNullTime(a.LastLogin), id)
	if err != nil {
		return nil, err
	}
	return a, nil
}
