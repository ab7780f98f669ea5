package repository

import (
	"database/sql"
	"time"
)

// NewSQLiteStores returns Stores backed by the given SQLite database.
// The schema is created by the migrations in internal/db.
func NewSQLiteStores(d *sql.DB) *Stores {
	return &Stores{
		Admins:     NewSQLiteAdminRepository(d),
		Pharmacies: NewSQLitePharmacyRepository(d),
		Deliveries: NewSQLiteDeliveryRepository(d),
	}
}

// Timestamps are stored as RFC3339Nano text; SQLite has no native
// time type and text sorts chronologically.

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func formatNullTime(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: formatTime(*t), Valid: true}
}

func parseNullTime(s sql.NullString) *time.Time {
	if !s.Valid {
		return nil
	}
	t := parseTime(s.String)
	return &t
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func fromNullString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}
