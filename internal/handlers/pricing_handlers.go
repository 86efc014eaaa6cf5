package handlers

import (
	"net/http"

	"github.com/01moynul/flower-pricing-golang/internal/pricing"
	"github.com/gin-gonic/gin"
)

// MarkupInput is the body of PUT /v1/pricing/markup.
type MarkupInput struct {
	Markup *float64 `json:"markup" binding:"required"`
}

// ItemMarkupInput is the body of PUT /v1/pricing/items/:id/markup. A null markup clears the override.
type ItemMarkupInput struct {
	Markup *float64 `json:"markup"`
}

// pricingView is what every pricing endpoint answers with.
func pricingView(s pricing.State) gin.H {
	return gin.H{
		"items":       s.PricedItems(),
		"totals":      s.Totals(),
		"markup":      s.Markup(),
		"itemMarkups": s.ItemMarkups(),
	}
}

// GetPricing is the handler for GET /v1/pricing
func (h *Handlers) GetPricing(c *gin.Context) {
	c.JSON(http.StatusOK, pricingView(h.Planner.Snapshot()))
}

// SetGlobalMarkup is the handler for PUT /v1/pricing/markup
// Negative values are clamped to 0.
func (h *Handlers) SetGlobalMarkup(c *gin.Context) {
	var input MarkupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}
	c.JSON(http.StatusOK, pricingView(h.Planner.SetGlobalMarkup(*input.Markup)))
}

// ApplyMarkupToAll is the handler for POST /v1/pricing/markup/apply-all
func (h *Handlers) ApplyMarkupToAll(c *gin.Context) {
	c.JSON(http.StatusOK, pricingView(h.Planner.ApplyMarkupToAll()))
}

// SetItemMarkup is the handler for PUT /v1/pricing/items/:id/markup
func (h *Handlers) SetItemMarkup(c *gin.Context) {
	id := c.Param("id")
	if !h.Planner.Snapshot().HasItem(id) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Flower not found"})
		return
	}

	var input ItemMarkupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}
	c.JSON(http.StatusOK, pricingView(h.Planner.SetItemMarkup(id, input.Markup)))
}

// ResetItemMarkup is the handler for DELETE /v1/pricing/items/:id/markup
func (h *Handlers) ResetItemMarkup(c *gin.Context) {
	id := c.Param("id")
	if !h.Planner.Snapshot().HasItem(id) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Flower not found"})
		return
	}
	c.JSON(http.StatusOK, pricingView(h.Planner.ResetItemMarkup(id)))
}

// ReloadPricing is the handler for POST /v1/pricing/reload
// A failed reload leaves the current view untouched.
func (h *Handlers) ReloadPricing(c *gin.Context) {
	if err := h.Planner.Reload(c.Request.Context()); err != nil {
		respondStoreError(c, "reload records", err)
		return
	}
	c.JSON(http.StatusOK, pricingView(h.Planner.Snapshot()))
}

// GetPriceSheet is the handler for GET /v1/price-sheet
func (h *Handlers) GetPriceSheet(c *gin.Context) {
	c.JSON(http.StatusOK, pricing.BuildPriceSheet(h.Planner.Snapshot()))
}
