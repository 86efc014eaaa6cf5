package handlers

import (
	"context"

	"github.com/01moynul/flower-pricing-golang/internal/auth"
	"github.com/01moynul/flower-pricing-golang/internal/planner"
	"github.com/01moynul/flower-pricing-golang/internal/pricing"
)

// Assistant answers questions about a price sheet. *ai.AIService implements it.
type Assistant interface {
	Ask(ctx context.Context, question string, sheet pricing.PriceSheet) (string, int, error)
}

// Handlers struct holds all dependencies for our handlers.
type Handlers struct {
	Planner   *planner.Planner // Live pricing state and the record store behind it
	Gate      *auth.Gate
	Assistant Assistant // nil when GEMINI_API_KEY is not set
}
