package handlers

import (
	"log"
	"net/http"

	"github.com/01moynul/flower-pricing-golang/internal/ai"
	"github.com/01moynul/flower-pricing-golang/internal/pricing"
	"github.com/gin-gonic/gin"
)

// AskInput defines the structure of the JSON request body.
type AskInput struct {
	Question string `json:"question" binding:"required"`
}

// AskAssistant is the handler for POST /v1/pricing/assistant
func (h *Handlers) AskAssistant(c *gin.Context) {
	// 1. --- Is the assistant configured? ---
	if h.Assistant == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": ai.ErrAssistantDisabled.Error()})
		return
	}

	// 2. --- Parse Input ---
	var input AskInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	// 3. --- Ask about the current price sheet ---
	sheet := pricing.BuildPriceSheet(h.Planner.Snapshot())
	answer, tokens, err := h.Assistant.Ask(c.Request.Context(), input.Question, sheet)
	if err != nil {
		log.Printf("Assistant request failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Assistant unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"answer": answer,
		"tokens": tokens,
	})
}
