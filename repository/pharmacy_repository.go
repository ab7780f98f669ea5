package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"pharmaDeliveryManagement/models"
)

const pharmacyColumns = `id, name, email, password_hash, phone, address, license_number, contact_name, position, status, created_at, approved_at, approved_by, rejected_at, rejected_by, rejection_reason`

// SQLitePharmacyRepository persists pharmacies in the pharmacies table.
type SQLitePharmacyRepository struct {
	db *sql.DB
}

func NewSQLitePharmacyRepository(db *sql.DB) *SQLitePharmacyRepository {
	return &SQLitePharmacyRepository{db: db}
}

func (r *SQLitePharmacyRepository) Insert(ctx context.Context, p *models.Pharmacy) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO pharmacies (`+pharmacyColumns+`) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		p.ID, p.Name, p.Email, p.PasswordHash, p.Phone, p.Address, p.LicenseNumber, p.ContactName, p.Position,
		string(p.Status), formatTime(p.CreatedAt),
		formatNullTime(p.ApprovedAt), nullString(p.ApprovedBy),
		formatNullTime(p.RejectedAt), nullString(p.RejectedBy), nullString(p.RejectionReason))
	return err
}

func (r *SQLitePharmacyRepository) GetByID(ctx context.Context, id string) (*models.Pharmacy, error) {
	return r.getWhere(ctx, `id = ?`, id)
}

func (r *SQLitePharmacyRepository) GetByEmail(ctx context.Context, email string) (*models.Pharmacy, error) {
	return r.getWhere(ctx, `email = ?`, email)
}

func (r *SQLitePharmacyRepository) getWhere(ctx context.Context, where string, arg any) (*models.Pharmacy, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	row := r.db.QueryRowContext(ctx, `SELECT `+pharmacyColumns+` FROM pharmacies WHERE `+where, arg)
	p, err := scanPharmacy(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return p, nil
}

func (r *SQLitePharmacyRepository) List(ctx context.Context) ([]models.Pharmacy, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, `SELECT `+pharmacyColumns+` FROM pharmacies ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []models.Pharmacy
	for rows.Next() {
		p, err := scanPharmacy(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (r *SQLitePharmacyRepository) Update(ctx context.Context, id string, u models.PharmacyUpdate) (*models.Pharmacy, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	p, err := r.getWhere(ctx, `id = ?`, id)
	if err != nil || p == nil {
		return nil, err
	}
	applyPharmacyUpdate(p, u)
	_, err = r.db.ExecContext(ctx,
		`UPDATE pharmacies SET name = ?, email = ?, password_hash = ?, phone = ?, address = ?, license_number = ?, contact_name = ?, position = ?, status = ?, approved_at = ?, approved_by = ?, rejected_at = ?, rejected_by = ?, rejection_reason = ? WHERE id = ?`,
		p.Name, p.Email, p.PasswordHash, p.Phone, p.Address, p.LicenseNumber, p.ContactName, p.Position,
		string(p.Status),
		formatNullTime(p.ApprovedAt), nullString(p.ApprovedBy),
		formatNullTime(p.RejectedAt), nullString(p.RejectedBy), nullString(p.RejectionReason), id)
	if err != nil {
		return nil, err
	}
	return p, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPharmacy(row rowScanner) (*models.Pharmacy, error) {
	var p models.Pharmacy
	var status, createdAt string
	var approvedAt, approvedBy, rejectedAt, rejectedBy, rejectionReason sql.NullString
	err := row.Scan(&p.ID, &p.Name, &p.Email, &p.PasswordHash, &p.Phone, &p.Address, &p.LicenseNumber,
		&p.ContactName, &p.Position, &status, &createdAt,
		&approvedAt, &approvedBy, &rejectedAt, &rejectedBy, &rejectionReason)
	if err != nil {
		return nil, err
	}
	p.Status = models.PharmacyStatus(status)
	p.CreatedAt = parseTime(createdAt)
	p.ApprovedAt = parseNullTime(approvedAt)
	p.ApprovedBy = fromNullString(approvedBy)
	p.RejectedAt = parseNullTime(rejectedAt)
	p.RejectedBy = fromNullString(rejectedBy)
	p.RejectionReason = fromNullString(rejectionReason)
	return &p, nil
}
