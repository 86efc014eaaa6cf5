package handlers

import (
	"net/http"
	"strings"

	"github.com/01moynul/flower-pricing-golang/internal/models"
	"github.com/gin-gonic/gin"
)

// CreateChargeInput defines the JSON input for POST /v1/supplier-charges
type CreateChargeInput struct {
	ChargeType   string   `json:"chargeType" binding:"required"`
	Description  string   `json:"description"`
	Amount       *float64 `json:"amount" binding:"required,gte=0"`
	SupplierID   string   `json:"supplierId" binding:"required"`
	Date         string   `json:"date" binding:"required"`
	UnitOfCharge string   `json:"unitOfCharge" binding:"omitempty,oneof='Per Box' 'Per Shipment'"`
	BoxCount     *int     `json:"boxCount" binding:"omitempty,gt=0"`
}

// GetSupplierCharges is the handler for GET /v1/supplier-charges
func (h *Handlers) GetSupplierCharges(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"charges": h.Planner.Snapshot().Charges(),
	})
}

// CreateSupplierCharge is the handler for POST /v1/supplier-charges
func (h *Handlers) CreateSupplierCharge(c *gin.Context) {
	// 1. --- Bind & Validate JSON ---
	var input CreateChargeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	// 2. --- Build the charge ---
	unit := models.UnitOfCharge(input.UnitOfCharge)
	if unit == "" {
		unit = models.ChargePerBox
	}
	charge := models.SupplierChargeInput{
		ChargeType:   strings.TrimSpace(input.ChargeType),
		Description:  strings.TrimSpace(input.Description),
		Amount:       *input.Amount,
		SupplierID:   strings.TrimSpace(input.SupplierID),
		Date:         strings.TrimSpace(input.Date),
		UnitOfCharge: unit,
		BoxCount:     input.BoxCount,
	}
	if charge.ChargeType == "" || charge.SupplierID == "" || charge.Date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "chargeType, supplierId and date must not be blank"})
		return
	}
	// Box count under "Per Shipment" is rejected here.
	if err := charge.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// 3. --- Create remotely, then re-price ---
	created, err := h.Planner.AddCharge(c.Request.Context(), charge)
	if err != nil {
		respondStoreError(c, "create supplier charge", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Supplier charge created successfully",
		"charge":  created,
	})
}
