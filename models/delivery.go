package models

import "time"

// DeliveryStatus represents the current progress of a delivery.
type DeliveryStatus string

const (
	DeliveryStatusPending   DeliveryStatus = "pending"
	DeliveryStatusPickedUp  DeliveryStatus = "picked-up"
	DeliveryStatusInTransit DeliveryStatus = "in-transit"
	DeliveryStatusDelivered DeliveryStatus = "delivered"
	DeliveryStatusFailed    DeliveryStatus = "delivery-failed"
)

// LocationPoint is one entry in a delivery's location history.
type LocationPoint struct {
	Lat       float64   `json:"lat"`
	Lng       float64   `json:"lng"`
	Address   string    `json:"address"`
	Timestamp time.Time `json:"timestamp"`
}

// Delivery represents a courier job submitted by a pharmacy.
// TrackingNumber is the public lookup key handed to patients; it is
// immutable once assigned and distinct from the internal ID.
// PharmacyName is a snapshot taken at creation time and is not kept in
// sync with later edits to the pharmacy record.
type Delivery struct {
	ID                string          `db:"id" json:"id"`
	TrackingNumber    string          `db:"tracking_number" json:"tracking_number"`
	PatientName       string          `db:"patient_name" json:"patient_name"`
	Address           string          `db:"address" json:"address"`
	Phone             string          `db:"phone" json:"phone"`
	Packages          int             `db:"packages" json:"packages"`
	Status            DeliveryStatus  `db:"status" json:"status"`
	PharmacyID        string          `db:"pharmacy_id" json:"pharmacy_id"`
	PharmacyName      string          `db:"pharmacy_name" json:"pharmacy_name"`
	Notes             string          `db:"notes" json:"notes,omitempty"`
	CreatedAt         time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time       `db:"updated_at" json:"updated_at"`
	EstimatedDelivery *time.Time      `db:"estimated_delivery" json:"estimated_delivery,omitempty"`
	DriverName        *string         `db:"driver_name" json:"driver_name,omitempty"`
	DriverPhone       *string         `db:"driver_phone" json:"driver_phone,omitempty"`
	LocationHistory   []LocationPoint `db:"location_history" json:"location_history,omitempty"`
}

// DeliveryUpdate carries a partial update; nil fields are left untouched.
// AppendLocation adds a point to the location history rather than
// replacing it; history entries are never removed.
type DeliveryUpdate struct {
	Status            *DeliveryStatus
	Notes             *string
	EstimatedDelivery *time.Time
	DriverName        *string
	DriverPhone       *string
	AppendLocation    *LocationPoint
}
