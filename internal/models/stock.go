package models

import (
	"time"

	"github.com/google/uuid"
)

// Defaults applied when a stock row has no explicit threshold or capacity.
const (
	DefaultMinimumThreshold = 5
	DefaultMaximumCapacity  = 100
)

// LocationStock is one row per (item, location): the on-hand quantity and
// the reorder/capacity bounds for that item at that location.
type LocationStock struct {
	ID               uuid.UUID `json:"id" db:"id"`
	ItemID           uuid.UUID `json:"item_id" db:"item_id"`
	LocationID       uuid.UUID `json:"location_id" db:"location_id"`
	LocationName     string    `json:"location_name" db:"location_name"`
	Quantity         int       `json:"quantity" db:"quantity"`
	MinimumThreshold int       `json:"minimum_threshold" db:"minimum_threshold"`
	MaximumCapacity  int       `json:"maximum_capacity" db:"maximum_capacity"`
	LastUpdated      time.Time `json:"last_updated" db:"last_updated"`
}

// AvailableCapacity returns the unused storage headroom at the location.
func (s *LocationStock) AvailableCapacity() int {
	if c := s.MaximumCapacity - s.Quantity; c > 0 {
		return c
	}
	return 0
}

// IsLow reports whether the location is at or below its reorder point.
func (s *LocationStock) IsLow() bool {
	return s.Quantity <= s.MinimumThreshold
}

// StockDelta is one per-location quantity change applied when a confirmed
// distribution plan is executed.
type StockDelta struct {
	LocationID uuid.UUID `json:"location_id"`
	Delta      int       `json:"delta"`
}
