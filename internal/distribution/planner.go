package distribution

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"medstock/internal/models"
)

// Planner decides how an incoming delivery is split across an item's
// locations: urgent backfill of under-stocked critical locations first,
// then a priority-weighted spread of the remainder.
//
// Plan is a pure function over the snapshot it is handed. It performs no
// I/O, holds no locks, and is safe to call concurrently; snapshot freshness
// is the caller's responsibility.
type Planner struct {
	priorities PriorityTable
}

// ErrInvalidQuantity rejects plans for a non-positive delivery quantity.
var ErrInvalidQuantity = errors.New("total quantity must be positive")

// NewPlanner creates a planner bound to a priority table.
func NewPlanner(priorities PriorityTable) *Planner {
	return &Planner{priorities: priorities}
}

// Tunable policy constants. The safety-buffer fractions size the cushion
// placed above a low location's reorder point; the rounding bonus hands the
// spare unit from floor division to the most critical locations.
const (
	criticalBufferFraction = 0.5 // rank <= 3
	urgentBufferFraction   = 0.3 // rank <= 6
	defaultBufferFraction  = 0.2
	minimumSafetyBuffer    = 2
	topUpAllocation        = 3 // units granted to a low location already at target
	roundingBonusMaxRank   = 3
	highTierMaxRank        = 5
	maxWeight              = 12 // rank 1 weight; weight = max(1, 13-rank)
)

// slot is the planner's working state for one location.
type slot struct {
	stock     models.LocationStock // normalized copy, never the caller's row
	rank      int
	allocated int
	lineIndex int // index into the plan's lines, -1 until a line exists
}

// originalCapacity is the headroom before this planning run allocates
// anything; it drives the Phase 2 weighting.
func (s *slot) originalCapacity() int {
	return s.stock.AvailableCapacity()
}

// headroom is the physical space still open once earlier-phase allocations
// are counted. Every allocation is clamped to it so no location is ever
// planned past its maximum capacity.
func (s *slot) headroom() int {
	if h := s.stock.MaximumCapacity - s.stock.Quantity - s.allocated; h > 0 {
		return h
	}
	return 0
}

func (s *slot) weight() int {
	if w := maxWeight + 1 - s.rank; w > 1 {
		return w
	}
	return 1
}

func (s *slot) deficit() int {
	return s.stock.MinimumThreshold - s.stock.Quantity
}

// Plan produces a distribution plan for the request. Every unit of
// TotalQuantity ends up either in a plan line or in UnallocatedQuantity;
// system-wide capacity exhaustion is reported through the latter, not as an
// error.
func (p *Planner) Plan(req *models.DistributionRequest) (*models.DistributionPlan, error) {
	if req.TotalQuantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	plan := &models.DistributionPlan{Lines: []models.PlanLine{}}
	if len(req.Locations) == 0 {
		plan.UnallocatedQuantity = req.TotalQuantity
		return plan, nil
	}

	slots := make([]*slot, 0, len(req.Locations))
	for _, stock := range req.Locations {
		if stock.Quantity < 0 {
			return nil, fmt.Errorf("location %s: negative quantity %d", stock.LocationID, stock.Quantity)
		}
		s := &slot{stock: *stock, rank: p.priorities.Rank(stock.LocationID), lineIndex: -1}
		if s.stock.MinimumThreshold < 0 {
			s.stock.MinimumThreshold = models.DefaultMinimumThreshold
		}
		if s.stock.MaximumCapacity <= 0 {
			s.stock.MaximumCapacity = models.DefaultMaximumCapacity
		}
		slots = append(slots, s)
	}

	remaining := req.TotalQuantity
	remaining = p.backfillLowStock(plan, slots, remaining)
	remaining = p.weightedSpread(plan, slots, remaining)
	remaining = p.overflow(plan, slots, remaining)
	plan.UnallocatedQuantity = remaining

	return plan, nil
}

// bufferFraction sizes the safety buffer relative to clinical criticality.
func bufferFraction(rank int) float64 {
	switch {
	case rank <= 3:
		return criticalBufferFraction
	case rank <= 6:
		return urgentBufferFraction
	default:
		return defaultBufferFraction
	}
}

// backfillLowStock is Phase 1: bring every location at or below its reorder
// point up to threshold plus a criticality-sized safety buffer, most
// critical and most depleted locations first.
func (p *Planner) backfillLowStock(plan *models.DistributionPlan, slots []*slot, remaining int) int {
	var low []*slot
	for _, s := range slots {
		if s.stock.IsLow() {
			low = append(low, s)
		}
	}
	sort.SliceStable(low, func(i, j int) bool {
		if low[i].rank != low[j].rank {
			return low[i].rank < low[j].rank
		}
		if low[i].deficit() != low[j].deficit() {
			return low[i].deficit() > low[j].deficit()
		}
		return low[i].stock.LocationID.String() < low[j].stock.LocationID.String()
	})

	for _, s := range low {
		if remaining <= 0 {
			break
		}
		buffer := int(math.Ceil(float64(s.stock.MinimumThreshold) * bufferFraction(s.rank)))
		if buffer < minimumSafetyBuffer {
			buffer = minimumSafetyBuffer
		}
		target := s.stock.MinimumThreshold + buffer

		if needed := target - s.stock.Quantity; needed > 0 {
			alloc := minInt(needed, remaining, s.headroom())
			if alloc > 0 {
				p.allocate(plan, s, alloc, models.ReasonReplenishmentToTarget, models.TierHigh)
				remaining -= alloc
			}
		} else if s.deficit() >= -2 {
			// Already at target but still hovering near the reorder point:
			// grant a small top-up.
			alloc := minInt(topUpAllocation, remaining, s.headroom())
			if alloc > 0 {
				p.allocate(plan, s, alloc, models.ReasonAdditionalSafetyStock, models.TierHigh)
				remaining -= alloc
			}
		}
	}
	return remaining
}

// weightedSpread is Phase 2: distribute the remainder proportionally to
// priority weight times pre-plan available capacity, in priority order.
func (p *Planner) weightedSpread(plan *models.DistributionPlan, slots []*slot, remaining int) int {
	if remaining <= 0 {
		return remaining
	}

	ordered := orderByPriority(slots)
	totalWeighted := 0
	for _, s := range ordered {
		if c := s.originalCapacity(); c > 0 {
			totalWeighted += s.weight() * c
		}
	}
	if totalWeighted == 0 {
		return remaining
	}

	for _, s := range ordered {
		if remaining <= 0 {
			break
		}
		capacity := s.originalCapacity()
		if capacity <= 0 {
			continue
		}
		proportion := float64(s.weight()*capacity) / float64(totalWeighted)
		alloc := int(math.Floor(float64(remaining) * proportion))
		if s.rank <= roundingBonusMaxRank && alloc < remaining {
			alloc++
		}
		alloc = minInt(alloc, capacity, remaining, s.headroom())
		if alloc > 0 {
			tier := models.TierNormal
			if s.rank <= highTierMaxRank {
				tier = models.TierHigh
			}
			p.allocate(plan, s, alloc, models.ReasonPriorityReplenishment, tier)
			remaining -= alloc
		}
	}
	return remaining
}

// overflow is Phase 3: park whatever is left in the first locations, in
// priority order, that still have headroom. Anything that fits nowhere is
// reported as unallocated.
func (p *Planner) overflow(plan *models.DistributionPlan, slots []*slot, remaining int) int {
	if remaining <= 0 {
		return remaining
	}
	for _, s := range orderByPriority(slots) {
		if remaining <= 0 {
			break
		}
		alloc := minInt(remaining, s.headroom())
		if alloc > 0 {
			p.allocate(plan, s, alloc, models.ReasonOverflowAllocation, models.TierNormal)
			remaining -= alloc
		}
	}
	return remaining
}

// allocate adds quantity to the slot's existing plan line, or opens a new
// line with the given reason and tier. The first phase to touch a location
// fixes the line's reason; later phases only grow the quantity, upgrading
// the tier if theirs is higher.
func (p *Planner) allocate(plan *models.DistributionPlan, s *slot, quantity int, reason, tier string) {
	s.allocated += quantity
	if s.lineIndex >= 0 {
		line := &plan.Lines[s.lineIndex]
		line.Quantity += quantity
		if tier == models.TierHigh {
			line.PriorityTier = models.TierHigh
		}
		return
	}
	plan.Lines = append(plan.Lines, models.PlanLine{
		LocationID:   s.stock.LocationID,
		LocationName: s.stock.LocationName,
		Quantity:     quantity,
		ReasonCode:   reason,
		PriorityTier: tier,
	})
	s.lineIndex = len(plan.Lines) - 1
}

// orderByPriority returns slots sorted by rank ascending, location id
// lexical ascending for locations sharing a rank. The lexical secondary key
// keeps plans deterministic for identical input.
func orderByPriority(slots []*slot) []*slot {
	ordered := make([]*slot, len(slots))
	copy(ordered, slots)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].rank != ordered[j].rank {
			return ordered[i].rank < ordered[j].rank
		}
		return ordered[i].stock.LocationID.String() < ordered[j].stock.LocationID.String()
	})
	return ordered
}

func minInt(values ...int) int {
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}
	return m
}
