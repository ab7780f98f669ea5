package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"pharmaDeliveryManagement/models"
)

const deliveryColumns = `id, tracking_number, patient_name, address, phone, packages, status, pharmacy_id, pharmacy_name, notes, created_at, updated_at, estimated_delivery, driver_name, driver_phone, location_history`

// SQLiteDeliveryRepository persists deliveries in the deliveries table.
// The location history is stored as a JSON array in a text column.
type SQLiteDeliveryRepository struct {
	db *sql.DB
}

func NewSQLiteDeliveryRepository(db *sql.DB) *SQLiteDeliveryRepository {
	return &SQLiteDeliveryRepository{db: db}
}

func (r *SQLiteDeliveryRepository) Insert(ctx context.Context, d *models.Delivery) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	history, err := marshalHistory(d.LocationHistory)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO deliveries (`+deliveryColumns+`) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		d.ID, d.TrackingNumber, d.PatientName, d.Address, d.Phone, d.Packages, string(d.Status),
		d.PharmacyID, d.PharmacyName, d.Notes, formatTime(d.CreatedAt), formatTime(d.UpdatedAt),
		formatNullTime(d.EstimatedDelivery), nullString(d.DriverName), nullString(d.DriverPhone), history)
	return err
}

func (r *SQLiteDeliveryRepository) GetByID(ctx context.Context, id string) (*models.Delivery, error) {
	return r.getWhere(ctx, `id = ?`, id)
}

func (r *SQLiteDeliveryRepository) GetByTrackingNumber(ctx context.Context, trackingNumber string) (*models.Delivery, error) {
	return r.getWhere(ctx, `tracking_number = ?`, trackingNumber)
}

func (r *SQLiteDeliveryRepository) getWhere(ctx context.Context, where string, arg any) (*models.Delivery, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	row := r.db.QueryRowContext(ctx, `SELECT `+deliveryColumns+` FROM deliveries WHERE `+where, arg)
	d, err := scanDelivery(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return d, nil
}

func (r *SQLiteDeliveryRepository) List(ctx context.Context) ([]models.Delivery, error) {
	return r.listWhere(ctx, ``, nil)
}

func (r *SQLiteDeliveryRepository) ListByPharmacy(ctx context.Context, pharmacyID string) ([]models.Delivery, error) {
	return r.listWhere(ctx, ` WHERE pharmacy_id = ?`, []any{pharmacyID})
}

func (r *SQLiteDeliveryRepository) listWhere(ctx context.Context, where string, args []any) ([]models.Delivery, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, `SELECT `+deliveryColumns+` FROM deliveries`+where+` ORDER BY created_at, id`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []models.Delivery
	for rows.Next() {
		d, err := scanDelivery(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *d)
	}
	return out, rows.Err()
}

func (r *SQLiteDeliveryRepository) Update(ctx context.Context, id string, u models.DeliveryUpdate) (*models.Delivery, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	d, err := r.getWhere(ctx, `id = ?`, id)
	if err != nil || d == nil {
		return nil, err
	}
	applyDeliveryUpdate(d, u)
	d.UpdatedAt = time.Now().UTC()
	history, err := marshalHistory(d.LocationHistory)
	if err != nil {
		return nil, err
	}
	_, err = r.db.ExecContext(ctx,
		`UPDATE deliveries SET status = ?, notes = ?, updated_at = ?, estimated_delivery = ?, driver_name = ?, driver_phone = ?, location_history = ? WHERE id = ?`,
		string(d.Status), d.Notes, formatTime(d.UpdatedAt),
		formatNullTime(d.EstimatedDelivery), nullString(d.DriverName), nullString(d.DriverPhone), history, id)
	if err != nil {
		return nil, err
	}
	return d, nil
}

func marshalHistory(points []models.LocationPoint) (string, error) {
	if len(points) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(points)
	if err != nil {
		return "", fmt.Errorf("marshal location history: %w", err)
	}
	return string(b), nil
}

func scanDelivery(row rowScanner) (*models.Delivery, error) {
	var d models.Delivery
	var status, createdAt, updatedAt, history string
	var estimated, driverName, driverPhone sql.NullString
	err := row.Scan(&d.ID, &d.TrackingNumber, &d.PatientName, &d.Address, &d.Phone, &d.Packages, &status,
		&d.PharmacyID, &d.PharmacyName, &d.Notes, &createdAt, &updatedAt,
		&estimated, &driverName, &driverPhone, &history)
	if err != nil {
		return nil, err
	}
	d.Status = models.DeliveryStatus(status)
	d.CreatedAt = parseTime(createdAt)
	d.UpdatedAt = parseTime(updatedAt)
	d.EstimatedDelivery = parseNullTime(estimated)
	d.DriverName = fromNullString(driverName)
	d.DriverPhone = fromNullString(driverPhone)
	if history != "" && history != "[]" {
		if err := json.Unmarshal([]byte(history), &d.LocationHistory); err != nil {
			return nil, fmt.Errorf("unmarshal location history: %w", err)
		}
	}
	return &d, nil
}
