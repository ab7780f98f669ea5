package repository

import (
	"context"
	"sync"
	"time"

	"pharmaDeliveryManagement/models"
)

// In-memory repositories back the default deployment. Each repository
// guards its slice with its own RWMutex so concurrent requests cannot
// race on the shared collections; all methods return copies so callers
// never alias stored records.

// NewMemoryStores returns Stores backed by process-lifetime memory.
func NewMemoryStores() *Stores {
	return &Stores{
		Admins:     &MemoryAdminRepository{},
		Pharmacies: &MemoryPharmacyRepository{},
		Deliveries: &MemoryDeliveryRepository{},
	}
}

// MemoryAdminRepository stores admins in a mutex-guarded slice.
type MemoryAdminRepository struct {
	mu     sync.RWMutex
	admins []models.Admin
}

func (r *MemoryAdminRepository) Insert(ctx context.Context, a *models.Admin) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.admins = append(r.admins, *cloneAdmin(a))
	return nil
}

func (r *MemoryAdminRepository) GetByID(ctx context.Context, id string) (*models.Admin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.admins {
		if r.admins[i].ID == id {
			return cloneAdmin(&r.admins[i]), nil
		}
	}
	return nil, nil
}

func (r *MemoryAdminRepository) GetByEmail(ctx context.Context, email string) (*models.Admin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.admins {
		if r.admins[i].Email == email {
			return cloneAdmin(&r.admins[i]), nil
		}
	}
	return nil, nil
}

func (r *MemoryAdminRepository) Update(ctx context.Context, id string, u models.AdminUpdate) (*models.Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.admins {
		if r.admins[i].ID != id {
			continue
		}
		a := &r.admins[i]
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
		return cloneAdmin(a), nil
	}
	return nil, nil
}

// MemoryPharmacyRepository stores pharmacies in a mutex-guarded slice.
type MemoryPharmacyRepository struct {
	mu         sync.RWMutex
	pharmacies []models.Pharmacy
}

func (r *MemoryPharmacyRepository) Insert(ctx context.Context, p *models.Pharmacy) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pharmacies = append(r.pharmacies, *clonePharmacy(p))
	return nil
}

func (r *MemoryPharmacyRepository) GetByID(ctx context.Context, id string) (*models.Pharmacy, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.pharmacies {
		if r.pharmacies[i].ID == id {
			return clonePharmacy(&r.pharmacies[i]), nil
		}
	}
	return nil, nil
}

func (r *MemoryPharmacyRepository) GetByEmail(ctx context.Context, email string) (*models.Pharmacy, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.pharmacies {
		if r.pharmacies[i].Email == email {
			return clonePharmacy(&r.pharmacies[i]), nil
		}
	}
	return nil, nil
}

func (r *MemoryPharmacyRepository) List(ctx context.Context) ([]models.Pharmacy, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Pharmacy, 0, len(r.pharmacies))
	for i := range r.pharmacies {
		out = append(out, *clonePharmacy(&r.pharmacies[i]))
	}
	return out, nil
}

func (r *MemoryPharmacyRepository) Update(ctx context.Context, id string, u models.PharmacyUpdate) (*models.Pharmacy, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.pharmacies {
		if r.pharmacies[i].ID != id {
			continue
		}
		p := &r.pharmacies[i]
		applyPharmacyUpdate(p, u)
		return clonePharmacy(p), nil
	}
	return nil, nil
}

// MemoryDeliveryRepository stores deliveries in a mutex-guarded slice.
type MemoryDeliveryRepository struct {
	mu         sync.RWMutex
	deliveries []models.Delivery
}

func (r *MemoryDeliveryRepository) Insert(ctx context.Context, d *models.Delivery) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deliveries = append(r.deliveries, *cloneDelivery(d))
	return nil
}

func (r *MemoryDeliveryRepository) GetByID(ctx context.Context, id string) (*models.Delivery, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.deliveries {
		if r.deliveries[i].ID == id {
			return cloneDelivery(&r.deliveries[i]), nil
		}
	}
	return nil, nil
}

func (r *MemoryDeliveryRepository) GetByTrackingNumber(ctx context.Context, trackingNumber string) (*models.Delivery, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.deliveries {
		if r.deliveries[i].TrackingNumber == trackingNumber {
			return cloneDelivery(&r.deliveries[i]), nil
		}
	}
	return nil, nil
}

func (r *MemoryDeliveryRepository) List(ctx context.Context) ([]models.Delivery, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Delivery, 0, len(r.deliveries))
	for i := range r.deliveries {
		out = append(out, *cloneDelivery(&r.deliveries[i]))
	}
	return out, nil
}

func (r *MemoryDeliveryRepository) ListByPharmacy(ctx context.Context, pharmacyID string) ([]models.Delivery, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []models.Delivery
	for i := range r.deliveries {
		if r.deliveries[i].PharmacyID == pharmacyID {
			out = append(out, *cloneDelivery(&r.deliveries[i]))
		}
	}
	return out, nil
}

func (r *MemoryDeliveryRepository) Update(ctx context.Context, id string, u models.DeliveryUpdate) (*models.Delivery, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.deliveries {
		if r.deliveries[i].ID != id {
			continue
		}
		d := &r.deliveries[i]
		applyDeliveryUpdate(d, u)
		d.UpdatedAt = time.Now().UTC()
		return cloneDelivery(d), nil
	}
	return nil, nil
}

func applyPharmacyUpdate(p *models.Pharmacy, u models.PharmacyUpdate) {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Email != nil {
		p.Email = *u.Email
	}
	if u.PasswordHash != nil {
		p.PasswordHash = *u.PasswordHash
	}
	if u.Phone != nil {
		p.Phone = *u.Phone
	}
	if u.Address != nil {
		p.Address = *u.Address
	}
	if u.LicenseNumber != nil {
		p.LicenseNumber = *u.LicenseNumber
	}
	if u.ContactName != nil {
		p.ContactName = *u.ContactName
	}
	if u.Position != nil {
		p.Position = *u.Position
	}
	if u.Status != nil {
		p.Status = *u.Status
	}
	if u.ApprovedAt != nil {
		t := *u.ApprovedAt
		p.ApprovedAt = &t
	}
	if u.ApprovedBy != nil {
		v := *u.ApprovedBy
		p.ApprovedBy = &v
	}
	if u.RejectedAt != nil {
		t := *u.RejectedAt
		p.RejectedAt = &t
	}
	if u.RejectedBy != nil {
		v := *u.RejectedBy
		p.RejectedBy = &v
	}
	if u.RejectionReason != nil {
		v := *u.RejectionReason
		p.RejectionReason = &v
	}
}

func applyDeliveryUpdate(d *models.Delivery, u models.DeliveryUpdate) {
	if u.Status != nil {
		d.Status = *u.Status
	}
	if u.Notes != nil {
		d.Notes = *u.Notes
	}
	if u.EstimatedDelivery != nil {
		t := *u.EstimatedDelivery
		d.EstimatedDelivery = &t
	}
	if u.DriverName != nil {
		v := *u.DriverName
		d.DriverName = &v
	}
	if u.DriverPhone != nil {
		v := *u.DriverPhone
		d.DriverPhone = &v
	}
	if u.AppendLocation != nil {
		d.LocationHistory = append(d.LocationHistory, *u.AppendLocation)
	}
}

func cloneAdmin(a *models.Admin) *models.Admin {
	c := *a
	if a.LastLogin != nil {
		t := *a.LastLogin
		c.LastLogin = &t
	}
	return &c
}

func clonePharmacy(p *models.Pharmacy) *models.Pharmacy {
	c := *p
	c.ApprovedAt = cloneTime(p.ApprovedAt)
	c.ApprovedBy = cloneString(p.ApprovedBy)
	c.RejectedAt = cloneTime(p.RejectedAt)
	c.RejectedBy = cloneString(p.RejectedBy)
	c.RejectionReason = cloneString(p.RejectionReason)
	return &c
}

func cloneDelivery(d *models.Delivery) *models.Delivery {
	c := *d
	c.EstimatedDelivery = cloneTime(d.EstimatedDelivery)
	c.DriverName = cloneString(d.DriverName)
	c.DriverPhone = cloneString(d.DriverPhone)
	if d.LocationHistory != nil {
		c.LocationHistory = append([]models.LocationPoint(nil), d.LocationHistory...)
	}
	return &c
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
