package handlers

import (
	"net/http"
	"strings"

	"github.com/01moynul/flower-pricing-golang/internal/models"
	"github.com/gin-gonic/gin"
)

// CreateSupplierInput defines the JSON input for creating a supplier
type CreateSupplierInput struct {
	Name     string `json:"name" binding:"required"`
	Location string `json:"location" binding:"required"`
}

// GetSuppliers is the handler for GET /v1/suppliers
func (h *Handlers) GetSuppliers(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"suppliers": h.Planner.Snapshot().Suppliers(),
	})
}

// CreateSupplier is the handler for POST /v1/suppliers
func (h *Handlers) CreateSupplier(c *gin.Context) {
	var input CreateSupplierInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	supplier := models.SupplierInput{
		Name:     strings.TrimSpace(input.Name),
		Location: strings.TrimSpace(input.Location),
	}
	if supplier.Name == "" || supplier.Location == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name and location must not be blank"})
		return
	}

	created, err := h.Planner.AddSupplier(c.Request.Context(), supplier)
	if err != nil {
		respondStoreError(c, "create supplier", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Supplier created successfully",
		"supplier": created,
	})
}
