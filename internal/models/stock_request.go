package models

import (
	"time"

	"github.com/google/uuid"
)

// Stock request workflow states.
const (
	RequestStatusPending   = "pending"
	RequestStatusApproved  = "approved"
	RequestStatusRejected  = "rejected"
	RequestStatusFulfilled = "fulfilled"
)

// StockRequest is a ward's request for item units, routed through the
// approval workflow before stock is moved.
type StockRequest struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	ItemID      uuid.UUID  `json:"item_id" db:"item_id"`
	LocationID  uuid.UUID  `json:"location_id" db:"location_id"`
	Quantity    int        `json:"quantity" db:"quantity"`
	RequestedBy string     `json:"requested_by" db:"requested_by"`
	Note        *string    `json:"note" db:"note"`
	Status      string     `json:"status" db:"status"`
	ReviewedBy  *string    `json:"reviewed_by" db:"reviewed_by"`
	ReviewNote  *string    `json:"review_note" db:"review_note"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	ReviewedAt  *time.Time `json:"reviewed_at" db:"reviewed_at"`
}

// ValidRequestStatus reports whether s is a known workflow state.
func ValidRequestStatus(s string) bool {
	switch s {
	case RequestStatusPending, RequestStatusApproved, RequestStatusRejected, RequestStatusFulfilled:
		return true
	}
	return false
}
