package workflow

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"pharmaDeliveryManagement/internal/credentials"
	"pharmaDeliveryManagement/models"
)

// SeedParams describes the accounts created at process start. Values
// come from configuration; nothing here is hard-coded in the code paths.
type SeedParams struct {
	AdminEmail    string
	AdminPassword string
	AdminName     string

	// Optional pre-approved pharmacy for controlled environments.
	TestPharmacy         bool
	TestPharmacyEmail    string
	TestPharmacyPassword string
	TestPharmacyName     string
}

// Seed creates the initial admin and, when enabled, a pre-approved test
// pharmacy. It is idempotent: accounts already present (by email) are
// left untouched, so a durable store survives restarts without
// duplicates.
func (e *Engine) Seed(ctx context.Context, p SeedParams) error {
	if p.AdminEmail == "" || p.AdminPassword == "" {
		return validationErr("seed admin email and password are required")
	}

	existing, err := e.stores.Admins.GetByEmail(ctx, p.AdminEmail)
	if err != nil {
		return fmt.Errorf("lookup seed admin: %w", err)
	}
	adminID := "admin-1"
	if existing == nil {
		hash, err := credentials.HashPassword(p.AdminPassword)
		if err != nil {
			return err
		}
		name := p.AdminName
		if name == "" {
			name = "System Administrator"
		}
		if err := e.stores.Admins.Insert(ctx, models.NewAdmin(adminID, p.AdminEmail, hash, name)); err != nil {
			return fmt.Errorf("insert seed admin: %w", err)
		}
		e.logger.Info("seed admin created", zap.String("email", p.AdminEmail))
	} else {
		adminID = existing.ID
	}

	if !p.TestPharmacy {
		return nil
	}
	pharm, err := e.stores.Pharmacies.GetByEmail(ctx, p.TestPharmacyEmail)
	if err != nil {
		return fmt.Errorf("lookup seed pharmacy: %w", err)
	}
	if pharm != nil {
		return nil
	}
	hash, err := credentials.HashPassword(p.TestPharmacyPassword)
	if err != nil {
		return err
	}
	name := p.TestPharmacyName
	if name == "" {
		name = "Test Pharmacy"
	}
	now := time.Now().UTC()
	status := models.PharmacyStatusApproved
	tp := &models.Pharmacy{
		ID:            "PHARM-" + credentials.SecureID(),
		Name:          name,
		Email:         p.TestPharmacyEmail,
		PasswordHash:  hash,
		Phone:         "(416) 555-0123",
		Address:       "123 Test Street, Toronto, ON M5V 3A8",
		LicenseNumber: "ON12345",
		ContactName:   "Test Manager",
		Position:      "Pharmacy Manager",
		Status:        status,
		CreatedAt:     now,
		ApprovedAt:    &now,
		ApprovedBy:    &adminID,
	}
	if err := e.stores.Pharmacies.Insert(ctx, tp); err != nil {
		return fmt.Errorf("insert seed pharmacy: %w", err)
	}
	e.logger.Info("seed pharmacy created", zap.String("email", p.TestPharmacyEmail))
	return nil
}
