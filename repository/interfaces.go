package repository

import (
	"context"

	"pharmaDeliveryManagement/models"
)

// Lookup methods return (nil, nil) when no record matches; callers decide
// whether that is an error. Update methods merge the non-nil fields of the
// partial update into the stored record and return the full updated record,
// or (nil, nil) if the id is absent. No repository exposes a delete:
// historical pharmacy and delivery records are retained indefinitely.

// AdminRepositoryI defines operations on Admin entities.
type AdminRepositoryI interface {
	Insert(ctx context.Context, a *models.Admin) error
	GetByID(ctx context.Context, id string) (*models.Admin, error)
	GetByEmail(ctx context.Context, email string) (*models.Admin, error)
	Update(ctx context.Context, id string, u models.AdminUpdate) (*models.Admin, error)
}

// PharmacyRepositoryI defines operations on Pharmacy entities.
type PharmacyRepositoryI interface {
	Insert(ctx context.Context, p *models.Pharmacy) error
	GetByID(ctx context.Context, id string) (*models.Pharmacy, error)
	GetByEmail(ctx context.Context, email string) (*models.Pharmacy, error)
	List(ctx context.Context) ([]models.Pharmacy, error)
	Update(ctx context.Context, id string, u models.PharmacyUpdate) (*models.Pharmacy, error)
}

// DeliveryRepositoryI defines operations on Delivery entities.
type DeliveryRepositoryI interface {
	Insert(ctx context.Context, d *models.Delivery) error
	GetByID(ctx context.Context, id string) (*models.Delivery, error)
	GetByTrackingNumber(ctx context.Context, trackingNumber string) (*models.Delivery, error)
	List(ctx context.Context) ([]models.Delivery, error)
	ListByPharmacy(ctx context.Context, pharmacyID string) ([]models.Delivery, error)
	Update(ctx context.Context, id string, u models.DeliveryUpdate) (*models.Delivery, error)
}

// Stores bundles the three repositories behind one injection point.
type Stores struct {
	Admins     AdminRepositoryI
	Pharmacies PharmacyRepositoryI
	Deliveries DeliveryRepositoryI
}
