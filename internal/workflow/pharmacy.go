package workflow

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"pharmaDeliveryManagement/internal/credentials"
	"pharmaDeliveryManagement/internal/notify"
	"pharmaDeliveryManagement/models"
)

// RegisterPharmacyInput carries the registration form fields. All fields
// are required.
type RegisterPharmacyInput struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
	Phone           string
	Address         string
	LicenseNumber   string
	ContactName     string
	Position        string
}

// RegisterPharmacy creates a new pharmacy in pending status and notifies
// the admin. The email must not be used by any existing pharmacy,
// whatever its status.
func (e *Engine) RegisterPharmacy(ctx context.Context, in RegisterPharmacyInput) (*models.Pharmacy, error) {
	if in.Name == "" || in.Email == "" || in.Password == "" || in.ConfirmPassword == "" ||
		in.Phone == "" || in.Address == "" || in.LicenseNumber == "" || in.ContactName == "" || in.Position == "" {
		return nil, validationErr("all fields are required")
	}
	if !credentials.IsValidEmail(in.Email) {
		return nil, validationErr("invalid email format")
	}
	if !credentials.IsStrongPassword(in.Password) {
		return nil, validationErr("password must be at least 8 characters with uppercase, lowercase, number, and special character")
	}
	if in.Password != in.ConfirmPassword {
		return nil, validationErr("passwords do not match")
	}

	existing, err := e.stores.Pharmacies.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, fmt.Errorf("lookup pharmacy email: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("email already registered: %w", ErrConflict)
	}

	hash, err := credentials.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	p := &models.Pharmacy{
		ID:            "PHARM-" + credentials.SecureID(),
		Name:          in.Name,
		Email:         in.Email,
		PasswordHash:  hash,
		Phone:         in.Phone,
		Address:       in.Address,
		LicenseNumber: in.LicenseNumber,
		ContactName:   in.ContactName,
		Position:      in.Position,
		Status:        models.PharmacyStatusPending,
		CreatedAt:     time.Now().UTC(),
	}
	if err := e.stores.Pharmacies.Insert(ctx, p); err != nil {
		return nil, fmt.Errorf("insert pharmacy: %w", err)
	}
	e.logger.Info("pharmacy registered", zap.String("pharmacy_id", p.ID), zap.String("email", p.Email))

	e.dispatcher.Dispatch(ctx, notify.Event{
		Type: notify.EventNewRegistration,
		To:   e.adminEmail,
		Data: map[string]string{
			"pharmacyName":  p.Name,
			"email":         p.Email,
			"contactName":   p.ContactName,
			"licenseNumber": p.LicenseNumber,
			"phone":         p.Phone,
			"address":       p.Address,
		},
	})
	return p, nil
}

// LoginPharmacy authenticates a pharmacy by email and password. Unknown
// email and wrong password are indistinguishable to the caller. The
// approval status is checked only after the password has been verified,
// so "not approved" is never disclosed without valid credentials.
func (e *Engine) LoginPharmacy(ctx context.Context, email, password string) (*models.Pharmacy, error) {
	if email == "" || password == "" {
		return nil, validationErr("email and password are required")
	}
	p, err := e.stores.Pharmacies.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("lookup pharmacy: %w", err)
	}
	if p == nil {
		return nil, ErrInvalidCredentials
	}
	ok, err := credentials.VerifyPassword(password, p.PasswordHash)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}
	if p.Status != models.PharmacyStatusApproved {
		return nil, fmt.Errorf("account not approved yet: %w", ErrForbidden)
	}
	return p, nil
}

// ApprovePharmacy transitions a pending pharmacy to approved, stamping
// the audit fields. Approving an already-approved pharmacy is an
// idempotent success; approving a rejected pharmacy is a conflict.
func (e *Engine) ApprovePharmacy(ctx context.Context, pharmacyID, adminID string) (*models.Pharmacy, error) {
	if adminID == "" {
		return nil, validationErr("admin id is required")
	}
	p, err := e.stores.Pharmacies.GetByID(ctx, pharmacyID)
	if err != nil {
		return nil, fmt.Errorf("lookup pharmacy: %w", err)
	}
	if p == nil {
		return nil, fmt.Errorf("pharmacy %s: %w", pharmacyID, ErrNotFound)
	}
	switch p.Status {
	case models.PharmacyStatusApproved:
		return p, nil
	case models.PharmacyStatusRejected:
		return nil, fmt.Errorf("pharmacy is rejected: %w", ErrConflict)
	}

	now := time.Now().UTC()
	status := models.PharmacyStatusApproved
	updated, err := e.stores.Pharmacies.Update(ctx, pharmacyID, models.PharmacyUpdate{
		Status:     &status,
		ApprovedAt: &now,
		ApprovedBy: &adminID,
	})
	if err != nil {
		return nil, fmt.Errorf("update pharmacy: %w", err)
	}
	if updated == nil {
		return nil, fmt.Errorf("pharmacy %s: %w", pharmacyID, ErrNotFound)
	}
	e.logger.Info("pharmacy approved",
		zap.String("pharmacy_id", updated.ID),
		zap.String("admin_id", adminID))

	e.dispatcher.Dispatch(ctx, notify.Event{
		Type: notify.EventPharmacyApproved,
		To:   updated.Email,
		Data: map[string]string{"pharmacyName": updated.Name},
	})
	e.dispatcher.Dispatch(ctx, notify.Event{
		Type: notify.EventNewRegistration,
		To:   e.adminEmail,
		Data: map[string]string{
			"pharmacyName":  updated.Name + " (approved)",
			"email":         updated.Email,
			"contactName":   updated.ContactName,
			"licenseNumber": updated.LicenseNumber,
			"phone":         updated.Phone,
		},
	})
	return updated, nil
}

// RejectPharmacy transitions a pending pharmacy to rejected. A non-empty
// reason is required. Rejecting an already-rejected pharmacy is an
// idempotent success; rejecting an approved pharmacy is a conflict.
func (e *Engine) RejectPharmacy(ctx context.Context, pharmacyID, adminID, reason string) (*models.Pharmacy, error) {
	if adminID == "" {
		return nil, validationErr("admin id is required")
	}
	if strings.TrimSpace(reason) == "" {
		return nil, validationErr("rejection reason is required")
	}
	p, err := e.stores.Pharmacies.GetByID(ctx, pharmacyID)
	if err != nil {
		return nil, fmt.Errorf("lookup pharmacy: %w", err)
	}
	if p == nil {
		return nil, fmt.Errorf("pharmacy %s: %w", pharmacyID, ErrNotFound)
	}
	switch p.Status {
	case models.PharmacyStatusRejected:
		return p, nil
	case models.PharmacyStatusApproved:
		return nil, fmt.Errorf("pharmacy is approved: %w", ErrConflict)
	}

	now := time.Now().UTC()
	status := models.PharmacyStatusRejected
	updated, err := e.stores.Pharmacies.Update(ctx, pharmacyID, models.PharmacyUpdate{
		Status:          &status,
		RejectedAt:      &now,
		RejectedBy:      &adminID,
		RejectionReason: &reason,
	})
	if err != nil {
		return nil, fmt.Errorf("update pharmacy: %w", err)
	}
	if updated == nil {
		return nil, fmt.Errorf("pharmacy %s: %w", pharmacyID, ErrNotFound)
	}
	e.logger.Info("pharmacy rejected",
		zap.String("pharmacy_id", updated.ID),
		zap.String("admin_id", adminID))

	e.dispatcher.Dispatch(ctx, notify.Event{
		Type: notify.EventPharmacyRejected,
		To:   updated.Email,
		Data: map[string]string{"pharmacyName": updated.Name, "reason": reason},
	})
	return updated, nil
}

// PharmacyProfileInput carries a full profile update. All fields are
// required; the email must remain unique across pharmacies.
type PharmacyProfileInput struct {
	Name          string
	Email         string
	Phone         string
	Address       string
	LicenseNumber string
	ContactName   string
	Position      string
}

// UpdatePharmacyProfile replaces the profile fields of a pharmacy.
// Credentials and status are untouched.
func (e *Engine) UpdatePharmacyProfile(ctx context.Context, pharmacyID string, in PharmacyProfileInput) (*models.Pharmacy, error) {
	if in.Name == "" || in.Email == "" || in.Phone == "" || in.Address == "" ||
		in.LicenseNumber == "" || in.ContactName == "" || in.Position == "" {
		return nil, validationErr("all fields are required")
	}
	if !credentials.IsValidEmail(in.Email) {
		return nil, validationErr("invalid email format")
	}
	other, err := e.stores.Pharmacies.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, fmt.Errorf("lookup pharmacy email: %w", err)
	}
	if other != nil && other.ID != pharmacyID {
		return nil, fmt.Errorf("email already registered: %w", ErrConflict)
	}
	updated, err := e.stores.Pharmacies.Update(ctx, pharmacyID, models.PharmacyUpdate{
		Name:          &in.Name,
		Email:         &in.Email,
		Phone:         &in.Phone,
		Address:       &in.Address,
		LicenseNumber: &in.LicenseNumber,
		ContactName:   &in.ContactName,
		Position:      &in.Position,
	})
	if err != nil {
		return nil, fmt.Errorf("update pharmacy: %w", err)
	}
	if updated == nil {
		return nil, fmt.Errorf("pharmacy %s: %w", pharmacyID, ErrNotFound)
	}
	return updated, nil
}

// ChangePharmacyPassword verifies the current password and replaces it
// with a new one meeting the strength rules.
func (e *Engine) ChangePharmacyPassword(ctx context.Context, pharmacyID, current, newPassword, confirm string) error {
	if pharmacyID == "" || current == "" || newPassword == "" || confirm == "" {
		return validationErr("all fields are required")
	}
	if newPassword != confirm {
		return validationErr("new passwords do not match")
	}
	if !credentials.IsStrongPassword(newPassword) {
		return validationErr("password must be at least 8 characters with uppercase, lowercase, number, and special character")
	}
	p, err := e.stores.Pharmacies.GetByID(ctx, pharmacyID)
	if err != nil {
		return fmt.Errorf("lookup pharmacy: %w", err)
	}
	if p == nil {
		return fmt.Errorf("pharmacy %s: %w", pharmacyID, ErrNotFound)
	}
	ok, err := credentials.VerifyPassword(current, p.PasswordHash)
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
	if _, err := e.stores.Pharmacies.Update(ctx, pharmacyID, models.PharmacyUpdate{PasswordHash: &hash}); err != nil {
		return fmt.Errorf("update pharmacy: %w", err)
	}
	return nil
}

// ListPharmacies returns every pharmacy record regardless of status.
func (e *Engine) ListPharmacies(ctx context.Context) ([]models.Pharmacy, error) {
	return e.stores.Pharmacies.List(ctx)
}
