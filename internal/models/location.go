package models

import (
	"time"

	"github.com/google/uuid"
)

// Location types used across the hospital.
const (
	LocationTypeICU       = "icu"
	LocationTypeEmergency = "emergency"
	LocationTypeSurgery   = "surgery"
	LocationTypeWard      = "ward"
	LocationTypePharmacy  = "pharmacy"
	LocationTypeWarehouse = "warehouse"
	LocationTypeClinic    = "clinic"
)

// Location is a physical or organizational storage point: a ward, an ICU,
// the central pharmacy, the warehouse.
type Location struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Type         string    `json:"type" db:"type"`
	PriorityRank int       `json:"priority_rank" db:"priority_rank"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}
