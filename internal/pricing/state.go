package pricing

import (
	"maps"
	"math"
	"slices"

	"github.com/01moynul/flower-pricing-golang/internal/models"
)

// State is an immutable snapshot of everything pricing depends on, plus the
// priced view derived from it. Every transition returns a new State with the
// view fully recomputed; the receiver is never modified.
type State struct {
	items       []models.FlowerItem
	suppliers   []models.Supplier
	charges     []models.SupplierCharge
	markup      float64
	itemMarkups map[string]float64

	priced []models.PricedFlowerItem
	totals models.PricingTotals
}

// NewState returns an empty state using the given global markup.
// A negative or non-finite markup falls back to DefaultMarkupPercent.
func NewState(markup float64) State {
	if math.IsNaN(markup) || math.IsInf(markup, 0) || markup < 0 {
		markup = DefaultMarkupPercent
	}
	s := State{markup: markup, itemMarkups: map[string]float64{}}
	return s.recompute()
}

// Items returns a copy of the flower items.
func (s State) Items() []models.FlowerItem { return slices.Clone(s.items) }

// Suppliers returns a copy of the suppliers.
func (s State) Suppliers() []models.Supplier { return slices.Clone(s.suppliers) }

// Charges returns a copy of the supplier charges.
func (s State) Charges() []models.SupplierCharge { return slices.Clone(s.charges) }

// Markup is the global markup percentage.
func (s State) Markup() float64 { return s.markup }

// ItemMarkups returns a copy of the per-item overrides keyed by item ID.
func (s State) ItemMarkups() map[string]float64 { return maps.Clone(s.itemMarkups) }

// PricedItems returns a copy of the priced view.
func (s State) PricedItems() []models.PricedFlowerItem { return slices.Clone(s.priced) }

// Totals are the totals over the priced view.
func (s State) Totals() models.PricingTotals { return s.totals }

// ItemMarkup returns the override for one item, if any.
func (s State) ItemMarkup(id string) (float64, bool) {
	v, ok := s.itemMarkups[id]
	return v, ok
}

// HasItem reports whether a flower item with this ID is known.
func (s State) HasItem(id string) bool {
	return slices.ContainsFunc(s.items, func(item models.FlowerItem) bool { return item.ID == id })
}

// WithItems replaces the flower items and drops overrides for items that are gone.
func (s State) WithItems(items []models.FlowerItem) State {
	next := s.clone()
	next.items = slices.Clone(items)

	known := make(map[string]struct{}, len(items))
	for _, item := range items {
		known[item.ID] = struct{}{}
	}
	for id := range next.itemMarkups {
		if _, ok := known[id]; !ok {
			delete(next.itemMarkups, id)
		}
	}
	return next.recompute()
}

// AddItems appends newly created flower items.
func (s State) AddItems(items ...models.FlowerItem) State {
	next := s.clone()
	next.items = append(next.items, items...)
	return next.recompute()
}

// WithSuppliers replaces the supplier list.
func (s State) WithSuppliers(suppliers []models.Supplier) State {
	next := s.clone()
	next.suppliers = slices.Clone(suppliers)
	return next.recompute()
}

// AddSupplier appends a newly created supplier.
func (s State) AddSupplier(supplier models.Supplier) State {
	next := s.clone()
	next.suppliers = append(next.suppliers, supplier)
	return next.recompute()
}

// WithCharges replaces the supplier charges.
func (s State) WithCharges(charges []models.SupplierCharge) State {
	next := s.clone()
	next.charges = slices.Clone(charges)
	return next.recompute()
}

// AddCharge appends a newly created supplier charge.
func (s State) AddCharge(charge models.SupplierCharge) State {
	next := s.clone()
	next.charges = append(next.charges, charge)
	return next.recompute()
}

// SetGlobalMarkup clamps the markup to zero or more. A non-finite value is
// rejected and the current markup is kept.
func (s State) SetGlobalMarkup(value float64) State {
	if !isFinite(value) {
		return s
	}
	next := s.clone()
	next.markup = math.Max(0, value)
	return next.recompute()
}

// SetItemMarkup stores an override for one item, or removes it when value is nil.
// Non-finite values and unknown item IDs are ignored.
func (s State) SetItemMarkup(id string, value *float64) State {
	if value == nil {
		return s.ResetItemMarkup(id)
	}
	if !isFinite(*value) || !s.HasItem(id) {
		return s
	}
	next := s.clone()
	next.itemMarkups[id] = math.Max(0, *value)
	return next.recompute()
}

// ResetItemMarkup removes the override for one item.
func (s State) ResetItemMarkup(id string) State {
	if _, ok := s.itemMarkups[id]; !ok {
		return s
	}
	next := s.clone()
	delete(next.itemMarkups, id)
	return next.recompute()
}

// ApplyMarkupToAll copies the current global markup into an override for every
// known item. Later global changes do not touch these overrides.
func (s State) ApplyMarkupToAll() State {
	next := s.clone()
	for _, item := range next.items {
		next.itemMarkups[item.ID] = next.markup
	}
	return next.recompute()
}

// clone copies the collections so a transition never aliases the receiver.
func (s State) clone() State {
	next := State{
		items:       slices.Clone(s.items),
		suppliers:   slices.Clone(s.suppliers),
		charges:     slices.Clone(s.charges),
		markup:      s.markup,
		itemMarkups: maps.Clone(s.itemMarkups),
	}
	if next.itemMarkups == nil {
		next.itemMarkups = map[string]float64{}
	}
	return next
}

func (s State) recompute() State {
	if s.itemMarkups == nil {
		s.itemMarkups = map[string]float64{}
	}
	s.priced = PriceItems(s.items, s.charges, s.markup, s.itemMarkups)
	s.totals = CalculateTotals(s.priced)
	return s
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
