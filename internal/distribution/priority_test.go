package distribution

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"medstock/internal/models"
)

func TestRankUnknownLocation(t *testing.T) {
	table := NewPriorityTable(map[uuid.UUID]int{icuID: 1})

	assert.Equal(t, 1, table.Rank(icuID))
	assert.Equal(t, UnknownRank, table.Rank(storeroomID))
}

func TestNewPriorityTableCopiesAndDropsInvalidRanks(t *testing.T) {
	source := map[uuid.UUID]int{icuID: 1, erID: 0, wardID: -2}
	table := NewPriorityTable(source)

	source[icuID] = 50 // mutation after construction must not leak in

	assert.Equal(t, 1, table.Rank(icuID))
	assert.Equal(t, UnknownRank, table.Rank(erID))
	assert.Equal(t, UnknownRank, table.Rank(wardID))
	assert.Equal(t, 1, table.Size())
}

func TestPriorityTableFromLocations(t *testing.T) {
	table := PriorityTableFromLocations([]*models.Location{
		{ID: icuID, Name: "ICU", Type: models.LocationTypeICU, PriorityRank: 1},
		{ID: wardID, Name: "Ward 3", Type: models.LocationTypeWard, PriorityRank: 7},
		{ID: storeroomID, Name: "Storeroom", Type: models.LocationTypeWarehouse},
	})

	assert.Equal(t, 1, table.Rank(icuID))
	assert.Equal(t, 7, table.Rank(wardID))
	assert.Equal(t, UnknownRank, table.Rank(storeroomID))
}
