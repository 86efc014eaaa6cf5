package handlers

import (
	"net/http"
	"strings"

	"github.com/01moynul/flower-pricing-golang/internal/models"
	"github.com/gin-gonic/gin"
)

// FlowerEntryInput is one line of a bulk flower submission.
type FlowerEntryInput struct {
	FlowerType    string   `json:"flowerType" binding:"required"`
	Name          string   `json:"name" binding:"required"`
	Quantity      float64  `json:"quantity" binding:"required,gt=0"`
	WholesaleCost *float64 `json:"wholesaleCost" binding:"required,gte=0"` // Pointer so 0 is allowed
	SupplierID    string   `json:"supplierId" binding:"required"`
	Date          string   `json:"date" binding:"required"`
	Boxes         *int     `json:"boxes" binding:"required,gt=0"`
	Unit          string   `json:"unit" binding:"omitempty,oneof='Per Bunch' 'Per Stem'"`
}

// CreateFlowersInput is the body of POST /v1/flowers.
type CreateFlowersInput struct {
	Flowers []FlowerEntryInput `json:"flowers" binding:"required,min=1,dive"`
}

// GetFlowers is the handler for GET /v1/flowers
func (h *Handlers) GetFlowers(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"flowers": h.Planner.Snapshot().Items(),
	})
}

// CreateFlowers is the handler for POST /v1/flowers
func (h *Handlers) CreateFlowers(c *gin.Context) {
	// 1. --- Bind & Validate JSON ---
	var input CreateFlowersInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	// 2. --- Build the batch (trimmed text fields must stay non-empty) ---
	batch := make([]models.FlowerInput, 0, len(input.Flowers))
	for _, entry := range input.Flowers {
		flower := models.FlowerInput{
			FlowerType:    strings.TrimSpace(entry.FlowerType),
			Name:          strings.TrimSpace(entry.Name),
			Quantity:      entry.Quantity,
			WholesaleCost: *entry.WholesaleCost,
			SupplierID:    strings.TrimSpace(entry.SupplierID),
			Date:          strings.TrimSpace(entry.Date),
			Boxes:         entry.Boxes,
			Unit:          models.UnitOfMeasure(entry.Unit),
		}
		if flower.FlowerType == "" || flower.Name == "" || flower.SupplierID == "" || flower.Date == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "flowerType, name, supplierId and date must not be blank"})
			return
		}
		batch = append(batch, flower)
	}

	// 3. --- Create remotely, then add to the priced view ---
	created, err := h.Planner.AddFlowers(c.Request.Context(), batch)
	if err != nil {
		respondStoreError(c, "create flowers", err)
		return
	}

	// 4. --- Send Success Response ---
	c.JSON(http.StatusCreated, gin.H{
		"flowers": created,
	})
}
