package workflow

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"pharmaDeliveryManagement/internal/credentials"
	"pharmaDeliveryManagement/internal/geo"
	"pharmaDeliveryManagement/internal/notify"
	"pharmaDeliveryManagement/models"
)

// deliveryTransitions is the forward-only status machine. Re-applying
// the current status is allowed as an idempotent merge so driver and ETA
// fields can be updated without moving the status.
var deliveryTransitions = map[models.DeliveryStatus][]models.DeliveryStatus{
	models.DeliveryStatusPending:   {models.DeliveryStatusPickedUp, models.DeliveryStatusFailed},
	models.DeliveryStatusPickedUp:  {models.DeliveryStatusInTransit, models.DeliveryStatusFailed},
	models.DeliveryStatusInTransit: {models.DeliveryStatusDelivered, models.DeliveryStatusFailed},
	models.DeliveryStatusDelivered: {},
	models.DeliveryStatusFailed:    {},
}

func transitionAllowed(from, to models.DeliveryStatus) bool {
	if from == to {
		return true
	}
	for _, s := range deliveryTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

func validDeliveryStatus(s models.DeliveryStatus) bool {
	_, ok := deliveryTransitions[s]
	return ok
}

// CreateDeliveryInput carries a new delivery request.
type CreateDeliveryInput struct {
	PharmacyID  string
	PatientName string
	Address     string
	Phone       string
	Packages    int
	Notes       string
}

// CreateDelivery submits a delivery request for an approved pharmacy.
// The tracking number is assigned here and never changes; the pharmacy
// name is snapshotted onto the delivery at this point.
func (e *Engine) CreateDelivery(ctx context.Context, in CreateDeliveryInput) (*models.Delivery, error) {
	if in.PharmacyID == "" || in.PatientName == "" || in.Address == "" || in.Phone == "" {
		return nil, validationErr("pharmacy id, patient name, address and phone are required")
	}
	if in.Packages < 1 {
		return nil, validationErr("packages must be at least 1")
	}
	p, err := e.stores.Pharmacies.GetByID(ctx, in.PharmacyID)
	if err != nil {
		return nil, fmt.Errorf("lookup pharmacy: %w", err)
	}
	if p == nil {
		return nil, fmt.Errorf("pharmacy %s: %w", in.PharmacyID, ErrNotFound)
	}
	if p.Status != models.PharmacyStatusApproved {
		return nil, fmt.Errorf("pharmacy is not approved: %w", ErrForbidden)
	}

	now := time.Now().UTC()
	d := &models.Delivery{
		ID:             "DEL-" + credentials.SecureID(),
		TrackingNumber: "TRK-" + credentials.SecureID(),
		PatientName:    in.PatientName,
		Address:        in.Address,
		Phone:          in.Phone,
		Packages:       in.Packages,
		Status:         models.DeliveryStatusPending,
		PharmacyID:     p.ID,
		PharmacyName:   p.Name,
		Notes:          in.Notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := e.stores.Deliveries.Insert(ctx, d); err != nil {
		return nil, fmt.Errorf("insert delivery: %w", err)
	}
	e.logger.Info("delivery created",
		zap.String("delivery_id", d.ID),
		zap.String("tracking_number", d.TrackingNumber),
		zap.String("pharmacy_id", d.PharmacyID))
	return d, nil
}

// UpdateDeliveryInput carries a partial delivery update. A nil Status
// merges the other fields without moving the state machine.
type UpdateDeliveryInput struct {
	Status            *models.DeliveryStatus
	Notes             *string
	EstimatedDelivery *time.Time
	DriverName        *string
	DriverPhone       *string
	Location          *models.LocationPoint
}

// UpdateDelivery applies a status transition and/or field merge, then
// notifies the owning pharmacy and the admin. Notification outcomes are
// ignored; the record update alone decides success.
func (e *Engine) UpdateDelivery(ctx context.Context, deliveryID string, in UpdateDeliveryInput) (*models.Delivery, error) {
	d, err := e.stores.Deliveries.GetByID(ctx, deliveryID)
	if err != nil {
		return nil, fmt.Errorf("lookup delivery: %w", err)
	}
	if d == nil {
		return nil, fmt.Errorf("delivery %s: %w", deliveryID, ErrNotFound)
	}
	if in.Status != nil {
		if !validDeliveryStatus(*in.Status) {
			return nil, validationErr(fmt.Sprintf("unknown delivery status %q", *in.Status))
		}
		if !transitionAllowed(d.Status, *in.Status) {
			return nil, fmt.Errorf("cannot move delivery from %s to %s: %w", d.Status, *in.Status, ErrConflict)
		}
	}
	if in.Location != nil && in.Location.Timestamp.IsZero() {
		in.Location.Timestamp = time.Now().UTC()
	}

	updated, err := e.stores.Deliveries.Update(ctx, deliveryID, models.DeliveryUpdate{
		Status:            in.Status,
		Notes:             in.Notes,
		EstimatedDelivery: in.EstimatedDelivery,
		DriverName:        in.DriverName,
		DriverPhone:       in.DriverPhone,
		AppendLocation:    in.Location,
	})
	if err != nil {
		return nil, fmt.Errorf("update delivery: %w", err)
	}
	if updated == nil {
		return nil, fmt.Errorf("delivery %s: %w", deliveryID, ErrNotFound)
	}
	e.logger.Info("delivery updated",
		zap.String("delivery_id", updated.ID),
		zap.String("status", string(updated.Status)))

	p, err := e.stores.Pharmacies.GetByID(ctx, updated.PharmacyID)
	if err != nil {
		e.logger.Warn("lookup pharmacy for notification", zap.Error(err))
	}
	if p != nil {
		e.dispatcher.Dispatch(ctx, notify.Event{
			Type: notify.EventDeliveryStatusUpdate,
			To:   p.Email,
			Data: map[string]string{
				"deliveryId":     updated.ID,
				"patientName":    updated.PatientName,
				"status":         string(updated.Status),
				"trackingNumber": updated.TrackingNumber,
			},
		})
		e.dispatcher.Dispatch(ctx, notify.Event{
			Type: notify.EventDeliveryStatusUpdate,
			To:   e.adminEmail,
			Data: map[string]string{
				"deliveryId":     updated.ID,
				"patientName":    updated.PatientName,
				"status":         string(updated.Status),
				"trackingNumber": updated.TrackingNumber,
				"pharmacyName":   updated.PharmacyName,
			},
		})
	}
	return updated, nil
}

// TrackResult is the patient-facing view of a delivery.
type TrackResult struct {
	Delivery *models.Delivery `json:"delivery"`
	// MilesTraveled is the cumulative great-circle distance along the
	// recorded location history.
	MilesTraveled float64 `json:"miles_traveled"`
}

// TrackDelivery looks a delivery up by its public tracking number.
func (e *Engine) TrackDelivery(ctx context.Context, trackingNumber string) (*TrackResult, error) {
	if trackingNumber == "" {
		return nil, validationErr("tracking number is required")
	}
	d, err := e.stores.Deliveries.GetByTrackingNumber(ctx, trackingNumber)
	if err != nil {
		return nil, fmt.Errorf("lookup delivery: %w", err)
	}
	if d == nil {
		return nil, fmt.Errorf("tracking number %s: %w", trackingNumber, ErrNotFound)
	}
	points := make([]geo.Point, 0, len(d.LocationHistory))
	for _, lp := range d.LocationHistory {
		points = append(points, geo.Point{Lat: lp.Lat, Lng: lp.Lng})
	}
	return &TrackResult{Delivery: d, MilesTraveled: geo.PathMiles(points)}, nil
}

// GetDelivery fetches one delivery by internal id.
func (e *Engine) GetDelivery(ctx context.Context, deliveryID string) (*models.Delivery, error) {
	d, err := e.stores.Deliveries.GetByID(ctx, deliveryID)
	if err != nil {
		return nil, fmt.Errorf("lookup delivery: %w", err)
	}
	if d == nil {
		return nil, fmt.Errorf("delivery %s: %w", deliveryID, ErrNotFound)
	}
	return d, nil
}

// ListDeliveries returns all deliveries, or only those owned by
// pharmacyID when it is non-empty.
func (e *Engine) ListDeliveries(ctx context.Context, pharmacyID string) ([]models.Delivery, error) {
	if pharmacyID != "" {
		return e.stores.Deliveries.ListByPharmacy(ctx, pharmacyID)
	}
	return e.stores.Deliveries.List(ctx)
}
