package models

import (
	"time"

	"github.com/google/uuid"
)

// Batch is a received lot of an item at a location, tracked for expiry.
type Batch struct {
	ID         uuid.UUID `json:"id" db:"id"`
	ItemID     uuid.UUID `json:"item_id" db:"item_id"`
	LocationID uuid.UUID `json:"location_id" db:"location_id"`
	LotNumber  string    `json:"lot_number" db:"lot_number"`
	Quantity   int       `json:"quantity" db:"quantity"`
	ExpiryDate time.Time `json:"expiry_date" db:"expiry_date"`
	ReceivedAt time.Time `json:"received_at" db:"received_at"`
}

// IsExpired reports whether the batch has passed its expiry date.
func (b *Batch) IsExpired(now time.Time) bool {
	return b.ExpiryDate.Before(now)
}

// ExpiresWithin reports whether the batch expires inside the given window.
func (b *Batch) ExpiresWithin(now time.Time, window time.Duration) bool {
	return !b.IsExpired(now) && b.ExpiryDate.Before(now.Add(window))
}
