package models

import "time"

// PharmacyStatus represents where a pharmacy sits in the approval workflow.
type PharmacyStatus string

const (
	PharmacyStatusPending  PharmacyStatus = "pending"
	PharmacyStatusApproved PharmacyStatus = "approved"
	PharmacyStatusRejected PharmacyStatus = "rejected"
)

// Pharmacy represents a registered pharmacy account.
// Only approved pharmacies may authenticate for delivery operations.
// Records are never deleted; rejected pharmacies are retained with the
// rejection audit fields set.
type Pharmacy struct {
	ID            string         `db:"id" json:"id"`
	Name          string         `db:"name" json:"name"`
	Email         string         `db:"email" json:"email"`
	PasswordHash  string         `db:"password_hash" json:"-"`
	Phone         string         `db:"phone" json:"phone"`
	Address       string         `db:"address" json:"address"`
	LicenseNumber string         `db:"license_number" json:"license_number"`
	ContactName   string         `db:"contact_name" json:"contact_name"`
	Position      string         `db:"position" json:"position"`
	Status        PharmacyStatus `db:"status" json:"status"`
	CreatedAt     time.Time      `db:"created_at" json:"created_at"`
	// Approval audit trail. Exactly one of the approved/rejected pairs is
	// populated once Status leaves pending.
	ApprovedAt      *time.Time `db:"approved_at" json:"approved_at,omitempty"`
	ApprovedBy      *string    `db:"approved_by" json:"approved_by,omitempty"`
	RejectedAt      *time.Time `db:"rejected_at" json:"rejected_at,omitempty"`
	RejectedBy      *string    `db:"rejected_by" json:"rejected_by,omitempty"`
	RejectionReason *string    `db:"rejection_reason" json:"rejection_reason,omitempty"`
}

// PharmacyUpdate carries a partial update; nil fields are left untouched.
type PharmacyUpdate struct {
	Name            *string
	Email           *string
	PasswordHash    *string
	Phone           *string
	Address         *string
	LicenseNumber   *string
	ContactName     *string
	Position        *string
	Status          *PharmacyStatus
	ApprovedAt      *time.Time
	ApprovedBy      *string
	RejectedAt      *time.Time
	RejectedBy      *string
	RejectionReason *string
}
