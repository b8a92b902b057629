package models

import (
	"time"

	"github.com/google/uuid"
)

// Reason codes attached to plan lines.
const (
	ReasonReplenishmentToTarget = "replenishment-to-target"
	ReasonAdditionalSafetyStock = "additional-safety-stock"
	ReasonPriorityReplenishment = "priority-replenishment"
	ReasonOverflowAllocation    = "overflow-allocation"
)

// Priority tiers attached to plan lines.
const (
	TierHigh   = "high"
	TierNormal = "normal"
)

// DistributionRequest asks the planner to split an incoming delivery of
// total_quantity units across the item's current locations.
type DistributionRequest struct {
	ItemID        uuid.UUID        `json:"item_id"`
	TotalQuantity int              `json:"total_quantity"`
	ReasonCode    string           `json:"reason_code"`
	Locations     []*LocationStock `json:"locations"`
}

// PlanLine is one allocation within a distribution plan.
type PlanLine struct {
	LocationID   uuid.UUID `json:"location_id"`
	LocationName string    `json:"location_name"`
	Quantity     int       `json:"quantity"`
	ReasonCode   string    `json:"reason_code"`
	PriorityTier string    `json:"priority_tier"`
}

// DistributionPlan is the planner's output: ordered allocation lines plus
// whatever could not be placed due to capacity exhaustion. Plans are value
// snapshots; they are created fresh per request and discarded after use.
type DistributionPlan struct {
	Lines               []PlanLine `json:"lines"`
	UnallocatedQuantity int        `json:"unallocated_quantity"`
}

// TotalAllocated returns the sum of line quantities.
func (p *DistributionPlan) TotalAllocated() int {
	total := 0
	for _, line := range p.Lines {
		total += line.Quantity
	}
	return total
}

// PendingDistribution is a computed plan parked in the cache while it waits
// for operator confirmation.
type PendingDistribution struct {
	PlanID        uuid.UUID        `json:"plan_id"`
	ItemID        uuid.UUID        `json:"item_id"`
	ItemName      string           `json:"item_name"`
	TotalQuantity int              `json:"total_quantity"`
	ReasonCode    string           `json:"reason_code"`
	Plan          DistributionPlan `json:"plan"`
	CreatedAt     time.Time        `json:"created_at"`
}
