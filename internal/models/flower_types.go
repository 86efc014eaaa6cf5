package models

// UnitOfMeasure is how a flower line item is counted.
type UnitOfMeasure string

const (
	UnitPerBunch UnitOfMeasure = "Per Bunch"
	UnitPerStem  UnitOfMeasure = "Per Stem"
)

// FlowerItem is one purchased batch of a single flower from a single supplier.
// It maps to the 'flowers' table (or the Flowers table in Baserow).
type FlowerItem struct {
	ID            string        `json:"id" db:"id"`
	FlowerType    string        `json:"flowerType,omitempty" db:"flower_type"`
	Name          string        `json:"name" db:"name"`
	Quantity      float64       `json:"quantity" db:"quantity"`
	WholesaleCost float64       `json:"wholesaleCost" db:"wholesale_cost"` // Cost of the whole line, not per unit
	SupplierID    string        `json:"supplierId,omitempty" db:"supplier_id"`
	Date          string        `json:"date,omitempty" db:"purchase_date"`
	Boxes         *int          `json:"boxes" db:"boxes"` // Pointer for NULL
	Unit          UnitOfMeasure `json:"unit,omitempty" db:"unit"`
}

// FlowerInput is one entry of a bulk flower submission, before it has an ID.
type FlowerInput struct {
	FlowerType    string        `json:"flowerType"`
	Name          string        `json:"name"`
	Quantity      float64       `json:"quantity"`
	WholesaleCost float64       `json:"wholesaleCost"`
	SupplierID    string        `json:"supplierId"`
	Date          string        `json:"date"`
	Boxes         *int          `json:"boxes"`
	Unit          UnitOfMeasure `json:"unit,omitempty"`
}

// PricedFlowerItem is a FlowerItem with its computed pricing.
// It is derived on every recompute and never stored.
type PricedFlowerItem struct {
	FlowerItem

	// BaseWholesaleCost is the per-unit wholesale cost before any charges.
	BaseWholesaleCost    float64 `json:"baseWholesaleCost"`
	AllocatedChargeTotal float64 `json:"allocatedChargeTotal"`
	ChargePerUnit        float64 `json:"chargePerUnit"`
	// EffectiveWholesaleCost is BaseWholesaleCost plus the allocated charges spread per unit.
	EffectiveWholesaleCost float64 `json:"effectiveWholesaleCost"`
	AppliedMarkup          float64 `json:"appliedMarkup"`
	StemCost               float64 `json:"stemCost"`
	RetailPerStem          float64 `json:"retailPerStem"`
	TotalRetail            float64 `json:"totalRetail"`
}

// PricingTotals are the running totals over every priced item.
type PricingTotals struct {
	Wholesale            float64 `json:"wholesale"`
	WholesaleWithCharges float64 `json:"wholesaleWithCharges"`
	Retail               float64 `json:"retail"`
}
