package pricing

import (
	"strings"

	"github.com/01moynul/flower-pricing-golang/internal/models"
	"github.com/gosimple/slug"
)

const uncategorized = "Other"

// SheetSection is every priced item of one flower type.
type SheetSection struct {
	Slug        string                    `json:"slug"`
	FlowerType  string                    `json:"flowerType"`
	Items       []models.PricedFlowerItem `json:"items"`
	TotalRetail float64                   `json:"totalRetail"`
	Formatted   string                    `json:"formattedTotalRetail"`
}

// PriceSheet is the customer-facing view of the priced items.
type PriceSheet struct {
	Markup   float64              `json:"markup"`
	Sections []SheetSection       `json:"sections"`
	Totals   models.PricingTotals `json:"totals"`
	// Formatted holds the totals rendered as currency strings.
	Formatted map[string]string `json:"formatted"`
}

// BuildPriceSheet groups the priced items by flower type, keeping the order in
// which each type first appears.
func BuildPriceSheet(s State) PriceSheet {
	sections := []SheetSection{}
	index := map[string]int{}

	for _, item := range s.priced {
		flowerType := strings.TrimSpace(item.FlowerType)
		if flowerType == "" {
			flowerType = uncategorized
		}
		key := slug.Make(flowerType)

		i, ok := index[key]
		if !ok {
			i = len(sections)
			index[key] = i
			sections = append(sections, SheetSection{Slug: key, FlowerType: flowerType})
		}
		sections[i].Items = append(sections[i].Items, item)
	}

	for i := range sections {
		retail := make([]float64, 0, len(sections[i].Items))
		for _, item := range sections[i].Items {
			retail = append(retail, item.TotalRetail)
		}
		sections[i].TotalRetail = sum(retail...)
		sections[i].Formatted = FormatCurrency(sections[i].TotalRetail)
	}

	totals := s.totals
	return PriceSheet{
		Markup:   s.markup,
		Sections: sections,
		Totals:   totals,
		Formatted: map[string]string{
			"wholesale":            FormatCurrency(totals.Wholesale),
			"wholesaleWithCharges": FormatCurrency(totals.WholesaleWithCharges),
			"retail":               FormatCurrency(totals.Retail),
		},
	}
}
