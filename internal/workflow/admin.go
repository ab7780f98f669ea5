package workflow

import (
	"context"
	"fmt"
	"time"

	"pharmaDeliveryManagement/internal/credentials"
	"pharmaDeliveryManagement/models"
)

// LoginAdmin authenticates an admin by email and password and stamps
// LastLogin. Unknown email and wrong password are indistinguishable.
func (e *Engine) LoginAdmin(ctx context.Context, email, password string) (*models.Admin, error) {
	if email == "" || password == "" {
		return nil, validationErr("email and password are required")
	}
	a, err := e.stores.Admins.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("lookup admin: %w", err)
	}
	if a == nil {
		return nil, ErrInvalidCredentials
	}
	ok, err := credentials.VerifyPassword(password, a.PasswordHash)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}
	now := time.Now().UTC()
	updated, err := e.stores.Admins.Update(ctx, a.ID, models.AdminUpdate{LastLogin: &now})
	if err != nil {
		return nil, fmt.Errorf("stamp last login: %w", err)
	}
	if updated == nil {
		return a, nil
	}
	return updated, nil
}

// UpdateAdminProfile replaces the admin's name and email.
func (e *Engine) UpdateAdminProfile(ctx context.Context, adminID, name, email string) (*models.Admin, error) {
	if name == "" || email == "" {
		return nil, validationErr("name and email are required")
	}
	if !credentials.IsValidEmail(email) {
		return nil, validationErr("invalid email format")
	}
	updated, err := e.stores.Admins.Update(ctx, adminID, models.AdminUpdate{Name: &name, Email: &email})
	if err != nil {
		return nil, fmt.Errorf("update admin: %w", err)
	}
	if updated == nil {
		return nil, fmt.Errorf("admin %s: %w", adminID, ErrNotFound)
	}
	return updated, nil
}

// ChangeAdminPassword verifies the current password and replaces it with
// a new one meeting the strength rules.
func (e *Engine) ChangeAdminPassword(ctx context.Context, adminID, current, newPassword, confirm string) error {
	if adminID == "" || current == "" || newPassword == "" || confirm == "" {
		return validationErr("all fields are required")
	}
	if newPassword != confirm {
		return validationErr("new passwords do not match")
	}
	if !credentials.IsStrongPassword(newPassword) {
		return validationErr("password must be at least 8 characters with uppercase, lowercase, number, and special character")
	}
	a, err := e.stores.Admins.GetByID(ctx, adminID)
	if err != nil {
		return fmt.Errorf("lookup admin: %w", err)
	}
	if a == nil {
		return fmt.Errorf("admin %s: %w", adminID, ErrNotFound)
	}
	ok, err := credentials.VerifyPassword(current, a.PasswordHash)
	if err != nil {
		return err
	}
	if !ok {
		return validationErr("current password is incorrect")
	}
	hash, err := credentials.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if _, err := e.stores.Admins.Update(ctx, adminID, models.AdminUpdate{PasswordHash: &hash}); err != nil {
		return fmt.Errorf("update admin: %w", err)
	}
	return nil
}

// GetAdmin fetches one admin by id.
func (e *Engine) GetAdmin(ctx context.Context, adminID string) (*models.Admin, error) {
	a, err := e.stores.Admins.GetByID(ctx, adminID)
	if err != nil {
		return nil, fmt.Errorf("lookup admin: %w", err)
	}
	if a == nil {
		return nil, fmt.Errorf("admin %s: %w", adminID, ErrNotFound)
	}
	return a, nil
}

// Stats summarizes the dashboard counters.
type Stats struct {
	TotalPharmacies     int `json:"total_pharmacies"`
	PendingPharmacies   int `json:"pending_pharmacies"`
	ApprovedPharmacies  int `json:"approved_pharmacies"`
	TotalDeliveries     int `json:"total_deliveries"`
	PendingDeliveries   int `json:"pending_deliveries"`
	InTransitDeliveries int `json:"in_transit_deliveries"`
	DeliveredDeliveries int `json:"delivered_deliveries"`
}

// GetStats counts pharmacies and deliveries per status.
func (e *Engine) GetStats(ctx context.Context) (*Stats, error) {
	pharmacies, err := e.stores.Pharmacies.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list pharmacies: %w", err)
	}
	deliveries, err := e.stores.Deliveries.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list deliveries: %w", err)
	}
	s := &Stats{TotalPharmacies: len(pharmacies), TotalDeliveries: len(deliveries)}
	for i := range pharmacies {
		switch pharmacies[i].Status {
		case models.PharmacyStatusPending:
			s.PendingPharmacies++
		case models.PharmacyStatusApproved:
			s.ApprovedPharmacies++
		}
	}
	for i := range deliveries {
		switch deliveries[i].Status {
		case models.DeliveryStatusPending:
			s.PendingDeliveries++
		case models.DeliveryStatusInTransit:
			s.InTransitDeliveries++
		case models.DeliveryStatusDelivered:
			s.DeliveredDeliveries++
		}
	}
	return s, nil
}
