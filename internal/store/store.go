// Package store defines the record sources the pricing planner loads from
// and writes to. Implementations live in the baserow, database and memory
// backends.
package store

import (
	"context"

	"github.com/01moynul/flower-pricing-golang/internal/models"
)

// FlowerStore lists and creates flower line items.
type FlowerStore interface {
	ListFlowers(ctx context.Context) ([]models.FlowerItem, error)
	// CreateFlowers persists a batch and returns the created records with their IDs.
	CreateFlowers(ctx context.Context, flowers []models.FlowerInput) ([]models.FlowerItem, error)
}

// SupplierStore lists and creates suppliers.
type SupplierStore interface {
	ListSuppliers(ctx context.Context) ([]models.Supplier, error)
	CreateSupplier(ctx context.Context, input models.SupplierInput) (models.Supplier, error)
}

// ChargeStore lists and creates supplier charges.
type ChargeStore interface {
	ListCharges(ctx context.Context) ([]models.SupplierCharge, error)
	CreateCharge(ctx context.Context, input models.SupplierChargeInput) (models.SupplierCharge, error)
}

// Store is every record source the application needs.
type Store interface {
	FlowerStore
	SupplierStore
	ChargeStore
}
