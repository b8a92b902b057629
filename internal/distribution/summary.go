package distribution

import (
	"fmt"
	"strings"

	"medstock/internal/models"
)

// Summarize renders a pending distribution as operator-facing review text.
// It is shown before execution so mistakes are caught at confirmation time,
// not after stock has moved.
func Summarize(pending *models.PendingDistribution) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Distribute %d units of %s (%s)\n", pending.TotalQuantity, pending.ItemName, pending.ReasonCode)

	for _, line := range pending.Plan.Lines {
		name := line.LocationName
		if name == "" {
			name = line.LocationID.String()
		}
		fmt.Fprintf(&b, "  %s: +%d units (%s, %s priority)\n", name, line.Quantity, line.ReasonCode, line.PriorityTier)
	}

	if len(pending.Plan.Lines) == 0 {
		b.WriteString("  no locations can receive stock\n")
	}
	if pending.Plan.UnallocatedQuantity > 0 {
		fmt.Fprintf(&b, "  WARNING: %d units cannot be placed (capacity exhausted)\n", pending.Plan.UnallocatedQuantity)
	}
	return b.String()
}
