package models

import "time"

// Admin is a back-office operator account. Role is always "admin"; the
// field exists so tokens and API payloads can carry it explicitly.
type Admin struct {
	ID           string     `db:"id" json:"id"`
	Email        string     `db:"email" json:"email"`
	PasswordHash string     `db:"password_hash" json:"-"`
	Name         string     `db:"name" json:"name"`
	Role         string     `db:"role" json:"role"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	LastLogin    *time.Time `db:"last_login" json:"last_login,omitempty"`
}

// NewAdmin creates an admin model with Role preset to "admin".
func NewAdmin(id, email, passwordHash, name string) *Admin {
	return &Admin{
		ID:           id,
		Email:        email,
		PasswordHash: passwordHash,
		Name:         name,
		Role:         "admin",
		CreatedAt:    time.Now().UTC(),
	}
}

// AdminUpdate carries a partial update; nil fields are left untouched.
type AdminUpdate struct {
	Email        *string
	PasswordHash *string
	Name         *string
	LastLogin    *time.Time
}
