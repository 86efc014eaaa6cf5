package pricing

import (
	"math"

	"github.com/01moynul/flower-pricing-golang/internal/models"
)

// Allocations maps a flower item ID to the charges allocated to it.
// A missing entry means nothing was allocated.
type Allocations map[string]float64

// ChargeTotal is the full value of one charge.
//
// "Per Shipment" is a flat fee. "Per Box" is multiplied by the box count when
// one was given; without a box count the amount is taken as already covering
// all boxes. The flower items' own box counts are never used here.
func ChargeTotal(charge models.SupplierCharge) float64 {
	if charge.UnitOfCharge == models.ChargePerBox && charge.BoxCount != nil {
		return saturate(charge.Amount * float64(*charge.BoxCount))
	}
	return saturate(charge.Amount)
}

// AllocateCharges spreads every supplier charge evenly across the flower items
// of that supplier, by item count rather than by quantity.
//
// Items with no supplier get nothing. Charges for a supplier with no items are
// skipped, so they never reach any price or total.
func AllocateCharges(items []models.FlowerItem, charges []models.SupplierCharge) Allocations {
	// 1. --- Group item IDs by supplier ---
	groups := make(map[string][]string)
	for _, item := range items {
		if item.SupplierID == "" {
			continue
		}
		groups[item.SupplierID] = append(groups[item.SupplierID], item.ID)
	}

	// 2. --- Spread each charge across its supplier's group ---
	allocations := make(Allocations)
	for _, charge := range charges {
		group := groups[charge.SupplierID]
		if charge.SupplierID == "" || len(group) == 0 {
			continue
		}

		total := ChargeTotal(charge)
		if total == 0 || math.IsNaN(total) {
			continue
		}

		share := total / float64(len(group))
		for _, id := range group {
			allocations[id] = saturate(allocations[id] + share)
		}
	}

	return allocations
}
