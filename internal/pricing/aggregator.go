package pricing

import "github.com/01moynul/flower-pricing-golang/internal/models"

// PriceItems prices every item. Allocation runs over all charges first, and
// only then is any item priced, so the result does not depend on charge order.
func PriceItems(items []models.FlowerItem, charges []models.SupplierCharge, globalMarkup float64, itemMarkups map[string]float64) []models.PricedFlowerItem {
	allocations := AllocateCharges(items, charges)

	priced := make([]models.PricedFlowerItem, 0, len(items))
	for _, item := range items {
		markup := globalMarkup
		if override, ok := itemMarkups[item.ID]; ok {
			markup = override
		}
		priced = append(priced, buildPricedItem(item, allocations[item.ID], markup))
	}
	return priced
}

// CalculateTotals sums raw wholesale, wholesale plus charges, and retail.
func CalculateTotals(priced []models.PricedFlowerItem) models.PricingTotals {
	wholesale := make([]float64, 0, len(priced))
	withCharges := make([]float64, 0, len(priced)*2)
	retail := make([]float64, 0, len(priced))

	for _, item := range priced {
		raw := saturate(item.BaseWholesaleCost * item.Quantity)
		wholesale = append(wholesale, raw)
		withCharges = append(withCharges, raw, item.AllocatedChargeTotal)
		retail = append(retail, item.TotalRetail)
	}

	return models.PricingTotals{
		Wholesale:            sum(wholesale...),
		WholesaleWithCharges: sum(withCharges...),
		Retail:               sum(retail...),
	}
}
