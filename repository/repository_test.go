package repository_test

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"pharmaDeliveryManagement/internal/db"
	"pharmaDeliveryManagement/models"
	"pharmaDeliveryManagement/repository"
)

// forEachStore runs a subtest against both backing implementations so
// the memory and sqlite repositories stay behaviorally interchangeable.
func forEachStore(t *testing.T, fn func(t *testing.T, stores *repository.Stores)) {
	t.Run("memory", func(t *testing.T) {
		fn(t, repository.NewMemoryStores())
	})
	t.Run("sqlite", func(t *testing.T) {
		name := strings.ReplaceAll(t.Name(), "/", "_")
		dsn := fmt.Sprintf("file:repo_%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
		d, err := db.Open(dsn)
		if err != nil {
			t.Fatalf("open db: %v", err)
		}
		t.Cleanup(func() { _ = d.Close() })
		fn(t, repository.NewSQLiteStores(d))
	})
}

func samplePharmacy(id, email string) *models.Pharmacy {
	return &models.Pharmacy{
		ID:            id,
		Name:          "Lakeshore Pharmacy",
		Email:         email,
		PasswordHash:  "$2a$10$abcdefghijklmnopqrstuv",
		Phone:         "(905) 555-0142",
		Address:       "200 Lakeshore Rd, Mississauga",
		LicenseNumber: "ON55501",
		ContactName:   "Priya Nair",
		Position:      "Pharmacy Manager",
		Status:        models.PharmacyStatusPending,
		CreatedAt:     time.Now().UTC(),
	}
}

func sampleDelivery(id, tracking, pharmacyID string) *models.Delivery {
	now := time.Now().UTC()
	return &models.Delivery{
		ID:             id,
		TrackingNumber: tracking,
		PatientName:    "Avery Chen",
		Address:        "9 Birch Ave, Toronto",
		Phone:          "(416) 555-0177",
		Packages:       1,
		Status:         models.DeliveryStatusPending,
		PharmacyID:     pharmacyID,
		PharmacyName:   "Lakeshore Pharmacy",
		Notes:          "fridge item",
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func TestAdminRepository(t *testing.T) {
	forEachStore(t, func(t *testing.T, stores *repository.Stores) {
		ctx := context.Background()
		a := models.NewAdmin("admin-1", "ops@example.com", "hash", "Ops")
		if err := stores.Admins.Insert(ctx, a); err != nil {
			t.Fatalf("insert: %v", err)
		}

		got, err := stores.Admins.GetByID(ctx, "admin-1")
		if err != nil {
			t.Fatalf("get by id: %v", err)
		}
		if got == nil || got.Email != "ops@example.com" || got.Role != "admin" {
			t.Fatalf("get by id = %+v", got)
		}
		if got.LastLogin != nil {
			t.Fatalf("fresh admin has last login set")
		}
		byEmail, err := stores.Admins.GetByEmail(ctx, "ops@example.com")
		if err != nil || byEmail == nil || byEmail.ID != "admin-1" {
			t.Fatalf("get by email = %+v, %v", byEmail, err)
		}

		missing, err := stores.Admins.GetByID(ctx, "admin-2")
		if err != nil || missing != nil {
			t.Fatalf("missing lookup = %+v, %v", missing, err)
		}

		now := time.Now().UTC()
		name := "Operations"
		updated, err := stores.Admins.Update(ctx, "admin-1", models.AdminUpdate{Name: &name, LastLogin: &now})
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if updated.Name != "Operations" || updated.LastLogin == nil || !updated.LastLogin.Equal(now) {
			t.Fatalf("update result = %+v", updated)
		}
		// Untouched fields survive the partial update.
		if updated.Email != "ops@example.com" || updated.PasswordHash != "hash" {
			t.Fatalf("partial update clobbered fields: %+v", updated)
		}

		gone, err := stores.Admins.Update(ctx, "admin-2", models.AdminUpdate{Name: &name})
		if err != nil || gone != nil {
			t.Fatalf("update of missing admin = %+v, %v", gone, err)
		}
	})
}

func TestPharmacyRepository(t *testing.T) {
	forEachStore(t, func(t *testing.T, stores *repository.Stores) {
		ctx := context.Background()
		p := samplePharmacy("PHARM-1", "lake@pharmacy.com")
		if err := stores.Pharmacies.Insert(ctx, p); err != nil {
			t.Fatalf("insert: %v", err)
		}

		got, err := stores.Pharmacies.GetByEmail(ctx, "lake@pharmacy.com")
		if err != nil || got == nil {
			t.Fatalf("get by email = %+v, %v", got, err)
		}
		if got.Status != models.PharmacyStatusPending || got.LicenseNumber != "ON55501" {
			t.Fatalf("roundtrip mismatch: %+v", got)
		}
		if !got.CreatedAt.Equal(p.CreatedAt) {
			t.Fatalf("createdAt = %v, want %v", got.CreatedAt, p.CreatedAt)
		}

		missing, err := stores.Pharmacies.GetByID(ctx, "PHARM-2")
		if err != nil || missing != nil {
			t.Fatalf("missing lookup = %+v, %v", missing, err)
		}

		now := time.Now().UTC()
		status := models.PharmacyStatusApproved
		admin := "admin-1"
		updated, err := stores.Pharmacies.Update(ctx, "PHARM-1", models.PharmacyUpdate{
			Status:     &status,
			ApprovedAt: &now,
			ApprovedBy: &admin,
		})
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if updated.Status != models.PharmacyStatusApproved {
			t.Fatalf("status = %q", updated.Status)
		}
		if updated.ApprovedAt == nil || !updated.ApprovedAt.Equal(now) || updated.ApprovedBy == nil || *updated.ApprovedBy != "admin-1" {
			t.Fatalf("audit fields = %+v", updated)
		}
		if updated.RejectedAt != nil || updated.RejectionReason != nil {
			t.Fatalf("rejection fields set: %+v", updated)
		}
		// Untouched fields survive.
		if updated.Name != "Lakeshore Pharmacy" || updated.PasswordHash != p.PasswordHash {
			t.Fatalf("partial update clobbered fields: %+v", updated)
		}

		if err := stores.Pharmacies.Insert(ctx, samplePharmacy("PHARM-2", "second@pharmacy.com")); err != nil {
			t.Fatalf("insert second: %v", err)
		}
		all, err := stores.Pharmacies.List(ctx)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(all) != 2 {
			t.Fatalf("got %d pharmacies, want 2", len(all))
		}

		gone, err := stores.Pharmacies.Update(ctx, "PHARM-404", models.PharmacyUpdate{Status: &status})
		if err != nil || gone != nil {
			t.Fatalf("update of missing pharmacy = %+v, %v", gone, err)
		}
	})
}

func TestDeliveryRepository(t *testing.T) {
	forEachStore(t, func(t *testing.T, stores *repository.Stores) {
		ctx := context.Background()
		if err := stores.Pharmacies.Insert(ctx, samplePharmacy("PHARM-1", "lake@pharmacy.com")); err != nil {
			t.Fatalf("insert pharmacy: %v", err)
		}
		d := sampleDelivery("DEL-1", "TRK-1", "PHARM-1")
		if err := stores.Deliveries.Insert(ctx, d); err != nil {
			t.Fatalf("insert: %v", err)
		}

		got, err := stores.Deliveries.GetByTrackingNumber(ctx, "TRK-1")
		if err != nil || got == nil {
			t.Fatalf("get by tracking = %+v, %v", got, err)
		}
		if got.ID != "DEL-1" || got.Packages != 1 || got.Notes != "fridge item" {
			t.Fatalf("roundtrip mismatch: %+v", got)
		}
		if len(got.LocationHistory) != 0 {
			t.Fatalf("fresh delivery has history: %+v", got.LocationHistory)
		}
		if got.EstimatedDelivery != nil || got.DriverName != nil || got.DriverPhone != nil {
			t.Fatalf("optional fields set on fresh delivery: %+v", got)
		}

		missing, err := stores.Deliveries.GetByTrackingNumber(ctx, "TRK-404")
		if err != nil || missing != nil {
			t.Fatalf("missing lookup = %+v, %v", missing, err)
		}

		status := models.DeliveryStatusPickedUp
		driver := "Sam Park"
		eta := time.Now().UTC().Add(2 * time.Hour)
		point := models.LocationPoint{Lat: 43.65, Lng: -79.38, Address: "Downtown", Timestamp: time.Now().UTC()}
		updated, err := stores.Deliveries.Update(ctx, "DEL-1", models.DeliveryUpdate{
			Status:            &status,
			DriverName:        &driver,
			EstimatedDelivery: &eta,
			AppendLocation:    &point,
		})
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if updated.Status != models.DeliveryStatusPickedUp {
			t.Fatalf("status = %q", updated.Status)
		}
		if updated.DriverName == nil || *updated.DriverName != "Sam Park" {
			t.Fatalf("driver = %+v", updated.DriverName)
		}
		if updated.EstimatedDelivery == nil || !updated.EstimatedDelivery.Equal(eta) {
			t.Fatalf("eta = %+v, want %v", updated.EstimatedDelivery, eta)
		}
		if !updated.UpdatedAt.After(d.UpdatedAt) && !updated.UpdatedAt.Equal(d.UpdatedAt) {
			t.Fatalf("updatedAt went backwards: %v < %v", updated.UpdatedAt, d.UpdatedAt)
		}

		// Appends accumulate.
		second := models.LocationPoint{Lat: 43.76, Lng: -79.41, Address: "North York", Timestamp: time.Now().UTC()}
		updated, err = stores.Deliveries.Update(ctx, "DEL-1", models.DeliveryUpdate{AppendLocation: &second})
		if err != nil {
			t.Fatalf("second update: %v", err)
		}
		if len(updated.LocationHistory) != 2 {
			t.Fatalf("got %d history points, want 2", len(updated.LocationHistory))
		}
		if updated.LocationHistory[0].Address != "Downtown" || updated.LocationHistory[1].Address != "North York" {
			t.Fatalf("history order wrong: %+v", updated.LocationHistory)
		}
		// Status untouched by the history-only update.
		if updated.Status != models.DeliveryStatusPickedUp {
			t.Fatalf("history update moved status to %q", updated.Status)
		}

		// Reload to confirm the merge was persisted, not just returned.
		reloaded, err := stores.Deliveries.GetByID(ctx, "DEL-1")
		if err != nil || reloaded == nil {
			t.Fatalf("reload = %+v, %v", reloaded, err)
		}
		if len(reloaded.LocationHistory) != 2 || reloaded.DriverName == nil {
			t.Fatalf("persisted record incomplete: %+v", reloaded)
		}

		if err := stores.Pharmacies.Insert(ctx, samplePharmacy("PHARM-other", "other@pharmacy.com")); err != nil {
			t.Fatalf("insert other pharmacy: %v", err)
		}
		if err := stores.Deliveries.Insert(ctx, sampleDelivery("DEL-2", "TRK-2", "PHARM-other")); err != nil {
			t.Fatalf("insert second: %v", err)
		}
		all, err := stores.Deliveries.List(ctx)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(all) != 2 {
			t.Fatalf("got %d deliveries, want 2", len(all))
		}
		scoped, err := stores.Deliveries.ListByPharmacy(ctx, "PHARM-1")
		if err != nil {
			t.Fatalf("list by pharmacy: %v", err)
		}
		if len(scoped) != 1 || scoped[0].ID != "DEL-1" {
			t.Fatalf("scoped list = %+v", scoped)
		}

		gone, err := stores.Deliveries.Update(ctx, "DEL-404", models.DeliveryUpdate{Status: &status})
		if err != nil || gone != nil {
			t.Fatalf("update of missing delivery = %+v, %v", gone, err)
		}
	})
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	stores := repository.NewMemoryStores()
	ctx := context.Background()
	if err := stores.Pharmacies.Insert(ctx, samplePharmacy("PHARM-1", "copy@pharmacy.com")); err != nil {
		t.Fatalf("insert: %v", err)
	}
	got, err := stores.Pharmacies.GetByID(ctx, "PHARM-1")
	if err != nil || got == nil {
		t.Fatalf("get: %+v, %v", got, err)
	}
	got.Name = "Mutated"
	got.Status = models.PharmacyStatusApproved

	again, err := stores.Pharmacies.GetByID(ctx, "PHARM-1")
	if err != nil || again == nil {
		t.Fatalf("second get: %+v, %v", again, err)
	}
	if again.Name != "Lakeshore Pharmacy" || again.Status != models.PharmacyStatusPending {
		t.Fatalf("caller mutation leaked into store: %+v", again)
	}
}
