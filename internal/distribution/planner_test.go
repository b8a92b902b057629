package distribution

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medstock/internal/models"
)

var (
	icuID       = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	erID        = uuid.MustParse("22222222-2222-2222-2222-222222222222")
	wardID      = uuid.MustParse("33333333-3333-3333-3333-333333333333")
	pharmacyID  = uuid.MustParse("44444444-4444-4444-4444-444444444444")
	storeroomID = uuid.MustParse("55555555-5555-5555-5555-555555555555")
	itemID      = uuid.MustParse("99999999-9999-9999-9999-999999999999")
)

func testPriorities() PriorityTable {
	return NewPriorityTable(map[uuid.UUID]int{
		icuID:      1,
		erID:       2,
		wardID:     7,
		pharmacyID: 4,
	})
}

func stock(locationID uuid.UUID, name string, quantity, threshold, capacity int) *models.LocationStock {
	return &models.LocationStock{
		ItemID:           itemID,
		LocationID:       locationID,
		LocationName:     name,
		Quantity:         quantity,
		MinimumThreshold: threshold,
		MaximumCapacity:  capacity,
	}
}

func request(total int, locations ...*models.LocationStock) *models.DistributionRequest {
	return &models.DistributionRequest{
		ItemID:        itemID,
		TotalQuantity: total,
		ReasonCode:    "received_stock",
		Locations:     locations,
	}
}

// allocatedByLocation sums line quantities per location.
func allocatedByLocation(plan *models.DistributionPlan) map[uuid.UUID]int {
	totals := make(map[uuid.UUID]int)
	for _, line := range plan.Lines {
		totals[line.LocationID] += line.Quantity
	}
	return totals
}

func TestPlanRejectsNonPositiveQuantity(t *testing.T) {
	planner := NewPlanner(testPriorities())

	for _, total := range []int{0, -5} {
		plan, err := planner.Plan(request(total, stock(icuID, "ICU", 2, 10, 100)))
		assert.ErrorIs(t, err, ErrInvalidQuantity)
		assert.Nil(t, plan)
	}
}

func TestPlanRejectsNegativeQuantityOnHand(t *testing.T) {
	planner := NewPlanner(testPriorities())

	plan, err := planner.Plan(request(10, stock(icuID, "ICU", -3, 10, 100)))
	assert.Error(t, err)
	assert.Nil(t, plan)
}

func TestPlanNoLocations(t *testing.T) {
	planner := NewPlanner(testPriorities())

	plan, err := planner.Plan(request(25))
	require.NoError(t, err)
	assert.Empty(t, plan.Lines)
	assert.Equal(t, 25, plan.UnallocatedQuantity)
}

func TestSingleCriticalWardBackfillAndSpread(t *testing.T) {
	planner := NewPlanner(testPriorities())

	// Rank 1, well below threshold: backfill to threshold + buffer
	// (10 + max(2, ceil(10*0.5)) = 15, so 13 units), then the spread places
	// the remaining 37 into the same location.
	plan, err := planner.Plan(request(50, stock(icuID, "ICU", 2, 10, 100)))
	require.NoError(t, err)

	require.Len(t, plan.Lines, 1)
	line := plan.Lines[0]
	assert.Equal(t, icuID, line.LocationID)
	assert.Equal(t, 50, line.Quantity)
	assert.Equal(t, models.ReasonReplenishmentToTarget, line.ReasonCode)
	assert.Equal(t, models.TierHigh, line.PriorityTier)
	assert.Equal(t, 0, plan.UnallocatedQuantity)
}

func TestCapacityExhaustedEverywhere(t *testing.T) {
	planner := NewPlanner(testPriorities())

	plan, err := planner.Plan(request(10, stock(icuID, "ICU", 100, 5, 100)))
	require.NoError(t, err)
	assert.Empty(t, plan.Lines)
	assert.Equal(t, 10, plan.UnallocatedQuantity)
}

func TestConservationAndCapacitySafety(t *testing.T) {
	planner := NewPlanner(testPriorities())

	build := func() []*models.LocationStock {
		return []*models.LocationStock{
			stock(icuID, "ICU", 2, 10, 40),
			stock(erID, "ER", 15, 8, 60),
			stock(wardID, "Ward 3", 0, 5, 30),
			stock(pharmacyID, "Pharmacy", 20, 10, 200),
			stock(storeroomID, "Storeroom", 50, 5, 55), // unranked
		}
	}

	for _, total := range []int{1, 7, 23, 100, 250, 400} {
		locations := build()
		plan, err := planner.Plan(request(total, locations...))
		require.NoError(t, err)

		assert.Equal(t, total, plan.TotalAllocated()+plan.UnallocatedQuantity,
			"every unit must be placed or reported unallocated (total=%d)", total)

		totals := allocatedByLocation(plan)
		for _, loc := range locations {
			assert.LessOrEqual(t, loc.Quantity+totals[loc.LocationID], loc.MaximumCapacity,
				"location %s overfilled (total=%d)", loc.LocationName, total)
		}
	}
}

func TestBackfillNeverOvershootsCapacity(t *testing.T) {
	planner := NewPlanner(testPriorities())

	// Replenishment target (10 + 5 = 15) sits above the 12-unit ceiling;
	// the allocation stops at the ceiling.
	plan, err := planner.Plan(request(50, stock(icuID, "ICU", 2, 10, 12)))
	require.NoError(t, err)

	require.Len(t, plan.Lines, 1)
	assert.Equal(t, 10, plan.Lines[0].Quantity)
	assert.Equal(t, 40, plan.UnallocatedQuantity)
}

func TestCriticalLocationBackfilledFirst(t *testing.T) {
	planner := NewPlanner(testPriorities())

	// Both empty with equal deficits; the scarce delivery goes entirely to
	// the more critical location.
	plan, err := planner.Plan(request(4,
		stock(wardID, "Ward 3", 0, 5, 100),
		stock(icuID, "ICU", 0, 5, 100),
	))
	require.NoError(t, err)

	require.Len(t, plan.Lines, 1)
	assert.Equal(t, icuID, plan.Lines[0].LocationID)
	assert.Equal(t, 4, plan.Lines[0].Quantity)
}

func TestLargerDeficitFirstWithinSameRank(t *testing.T) {
	sameRank := NewPriorityTable(map[uuid.UUID]int{icuID: 5, erID: 5})
	planner := NewPlanner(sameRank)

	// Rank 5 buffer = ceil(10*0.3) = 3, target 13. The emptier location
	// needs 12, the other 8; with 12 units only the emptier one is served.
	plan, err := planner.Plan(request(12,
		stock(erID, "ER", 5, 10, 100),
		stock(icuID, "ICU", 1, 10, 100),
	))
	require.NoError(t, err)

	require.NotEmpty(t, plan.Lines)
	assert.Equal(t, icuID, plan.Lines[0].LocationID)
	assert.Equal(t, 12, plan.Lines[0].Quantity)
}

func TestBackfillLinesPrecedeSpreadLines(t *testing.T) {
	planner := NewPlanner(testPriorities())

	// The ward is low, the ICU is healthy. The ward's replenishment line is
	// created in the backfill phase, so it comes first even though the ICU
	// outranks it in the spread.
	plan, err := planner.Plan(request(20,
		stock(icuID, "ICU", 50, 10, 100),
		stock(wardID, "Ward 3", 1, 5, 30),
	))
	require.NoError(t, err)

	require.GreaterOrEqual(t, len(plan.Lines), 2)
	assert.Equal(t, wardID, plan.Lines[0].LocationID)
	assert.Equal(t, models.ReasonReplenishmentToTarget, plan.Lines[0].ReasonCode)
}

func TestRoundingBonusFavorsCriticalLocation(t *testing.T) {
	ranks := NewPriorityTable(map[uuid.UUID]int{icuID: 1, storeroomID: 10})
	planner := NewPlanner(ranks)

	// Equal headroom, weights 12 vs 3. The ICU's floor share of 8 gains the
	// rounding bonus, and the final stray unit lands there in the mop-up.
	plan, err := planner.Plan(request(10,
		stock(icuID, "ICU", 10, 5, 60),
		stock(storeroomID, "Storeroom", 10, 5, 60),
	))
	require.NoError(t, err)

	require.Len(t, plan.Lines, 1)
	assert.Equal(t, icuID, plan.Lines[0].LocationID)
	assert.Equal(t, 10, plan.Lines[0].Quantity)
	assert.Equal(t, models.ReasonPriorityReplenishment, plan.Lines[0].ReasonCode)
	assert.Equal(t, models.TierHigh, plan.Lines[0].PriorityTier)
	assert.Equal(t, 0, plan.UnallocatedQuantity)
}

func TestSpreadTierNormalForLowPriorityLocation(t *testing.T) {
	ranks := NewPriorityTable(map[uuid.UUID]int{storeroomID: 10})
	planner := NewPlanner(ranks)

	plan, err := planner.Plan(request(10, stock(storeroomID, "Storeroom", 50, 5, 100)))
	require.NoError(t, err)

	require.Len(t, plan.Lines, 1)
	assert.Equal(t, models.ReasonPriorityReplenishment, plan.Lines[0].ReasonCode)
	assert.Equal(t, models.TierNormal, plan.Lines[0].PriorityTier)
}

func TestOverflowOpensItsOwnLine(t *testing.T) {
	ranks := NewPriorityTable(map[uuid.UUID]int{icuID: 1, storeroomID: 9})
	planner := NewPlanner(ranks)

	// The spread fills the ICU to capacity and rounds the storeroom's tiny
	// share down to zero, so the leftover reaches it only in the mop-up.
	plan, err := planner.Plan(request(110,
		stock(icuID, "ICU", 20, 5, 120),
		stock(storeroomID, "Storeroom", 100, 5, 105),
	))
	require.NoError(t, err)

	require.Len(t, plan.Lines, 2)
	assert.Equal(t, icuID, plan.Lines[0].LocationID)
	assert.Equal(t, 100, plan.Lines[0].Quantity)
	assert.Equal(t, models.ReasonPriorityReplenishment, plan.Lines[0].ReasonCode)

	assert.Equal(t, storeroomID, plan.Lines[1].LocationID)
	assert.Equal(t, 5, plan.Lines[1].Quantity)
	assert.Equal(t, models.ReasonOverflowAllocation, plan.Lines[1].ReasonCode)
	assert.Equal(t, models.TierNormal, plan.Lines[1].PriorityTier)

	assert.Equal(t, 5, plan.UnallocatedQuantity)
}

func TestPlanIsDeterministic(t *testing.T) {
	sameRank := NewPriorityTable(map[uuid.UUID]int{icuID: 4, erID: 4, pharmacyID: 4})
	planner := NewPlanner(sameRank)

	build := func() *models.DistributionRequest {
		return request(37,
			stock(pharmacyID, "Pharmacy", 3, 10, 80),
			stock(erID, "ER", 3, 10, 80),
			stock(icuID, "ICU", 3, 10, 80),
		)
	}

	first, err := planner.Plan(build())
	require.NoError(t, err)
	second, err := planner.Plan(build())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestPlanDoesNotMutateSnapshot(t *testing.T) {
	planner := NewPlanner(testPriorities())

	snapshot := stock(icuID, "ICU", 2, 10, 100)
	_, err := planner.Plan(request(50, snapshot))
	require.NoError(t, err)

	assert.Equal(t, 2, snapshot.Quantity)
	assert.Equal(t, 10, snapshot.MinimumThreshold)
	assert.Equal(t, 100, snapshot.MaximumCapacity)
}

func TestDefaultsAppliedToUnboundedStock(t *testing.T) {
	planner := NewPlanner(testPriorities())

	// Capacity unset: the default ceiling of 100 bounds the allocation.
	plan, err := planner.Plan(request(500, stock(icuID, "ICU", 0, 10, 0)))
	require.NoError(t, err)

	assert.Equal(t, 100, plan.TotalAllocated())
	assert.Equal(t, 400, plan.UnallocatedQuantity)
}
