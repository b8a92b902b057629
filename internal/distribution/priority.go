package distribution

import (
	"github.com/google/uuid"

	"medstock/internal/models"
)

// UnknownRank is the rank resolved for locations absent from the table,
// i.e. the lowest priority.
const UnknownRank = 999

// PriorityTable is an immutable ranking of locations by clinical
// criticality (1 = most critical). It is loaded once at startup and
// injected into the planner; planning runs never mutate it.
type PriorityTable struct {
	ranks map[uuid.UUID]int
}

// NewPriorityTable builds a table from an explicit rank mapping. The map is
// copied, so later mutation by the caller has no effect.
func NewPriorityTable(ranks map[uuid.UUID]int) PriorityTable {
	copied := make(map[uuid.UUID]int, len(ranks))
	for id, rank := range ranks {
		if rank > 0 {
			copied[id] = rank
		}
	}
	return PriorityTable{ranks: copied}
}

// PriorityTableFromLocations builds a table from location records, using
// each location's configured priority rank.
func PriorityTableFromLocations(locations []*models.Location) PriorityTable {
	ranks := make(map[uuid.UUID]int, len(locations))
	for _, loc := range locations {
		if loc.PriorityRank > 0 {
			ranks[loc.ID] = loc.PriorityRank
		}
	}
	return PriorityTable{ranks: ranks}
}

// Rank returns the priority rank for a location. Unknown locations resolve
// to UnknownRank; the method never fails.
func (t PriorityTable) Rank(locationID uuid.UUID) int {
	if rank, ok := t.ranks[locationID]; ok {
		return rank
	}
	return UnknownRank
}

// Size returns the number of explicitly ranked locations.
func (t PriorityTable) Size() int {
	return len(t.ranks)
}
