package pricing

import "github.com/01moynul/flower-pricing-golang/internal/models"

// DefaultMarkupPercent is the global markup used until someone changes it.
const DefaultMarkupPercent = 40.0

// UnitCost is the rounded cost of one unit. A zero or negative quantity has no unit cost.
// Like every figure in this file the result is finite, however large the inputs.
func UnitCost(totalWholesaleCost, quantity float64) float64 {
	if quantity <= 0 {
		return 0
	}
	return RoundCurrency(totalWholesaleCost / quantity)
}

// RetailPerUnit applies a markup percentage to a unit cost.
func RetailPerUnit(unitCost, markupPercent float64) float64 {
	multiplier := 1 + markupPercent/100
	return RoundCurrency(unitCost * multiplier)
}

// TotalRetail is the retail value of the whole line.
func TotalRetail(quantity, retailPerUnit float64) float64 {
	return RoundCurrency(quantity * retailPerUnit)
}

// BuildPricedItem prices a single item that carries no allocated charges.
func BuildPricedItem(item models.FlowerItem, markupPercent float64) models.PricedFlowerItem {
	return buildPricedItem(item, 0, markupPercent)
}

// buildPricedItem prices one item given its allocated charge total.
// Rounding happens at the per-unit stage before multiplying back up by quantity.
func buildPricedItem(item models.FlowerItem, allocatedTotal, markupPercent float64) models.PricedFlowerItem {
	base := UnitCost(item.WholesaleCost, item.Quantity)

	// 1. --- Spread the allocated charges per unit ---
	chargePerUnit := 0.0
	if item.Quantity > 0 {
		chargePerUnit = saturate(allocatedTotal / item.Quantity)
	}
	effective := saturate(base + chargePerUnit)

	// 2. --- Apply markup to the effective unit cost ---
	stemCost := RoundCurrency(effective)
	retailPerStem := RetailPerUnit(stemCost, markupPercent)

	return models.PricedFlowerItem{
		FlowerItem:             item,
		BaseWholesaleCost:      base,
		AllocatedChargeTotal:   allocatedTotal,
		ChargePerUnit:          chargePerUnit,
		EffectiveWholesaleCost: effective,
		AppliedMarkup:          markupPercent,
		StemCost:               stemCost,
		RetailPerStem:          retailPerStem,
		TotalRetail:            TotalRetail(item.Quantity, retailPerStem),
	}
}
