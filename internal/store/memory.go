package store

import (
	"context"
	"slices"
	"sync"

	"github.com/01moynul/flower-pricing-golang/internal/models"
	"github.com/google/uuid"
)

// Memory keeps every record in process memory. It is used for local runs
// (DATASTORE=memory) and in tests.
type Memory struct {
	mu        sync.RWMutex
	flowers   []models.FlowerItem
	suppliers []models.Supplier
	charges   []models.SupplierCharge
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) ListFlowers(ctx context.Context) ([]models.FlowerItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.flowers), nil
}

func (m *Memory) CreateFlowers(ctx context.Context, flowers []models.FlowerInput) ([]models.FlowerItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	created := make([]models.FlowerItem, 0, len(flowers))
	for _, in := range flowers {
		created = append(created, models.FlowerItem{
			ID:            uuid.NewString(),
			FlowerType:    in.FlowerType,
			Name:          in.Name,
			Quantity:      in.Quantity,
			WholesaleCost: in.WholesaleCost,
			SupplierID:    in.SupplierID,
			Date:          in.Date,
			Boxes:         in.Boxes,
			Unit:          in.Unit,
		})
	}

	m.mu.Lock()
	m.flowers = append(m.flowers, created...)
	m.mu.Unlock()

	return created, nil
}

func (m *Memory) ListSuppliers(ctx context.Context) ([]models.Supplier, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.suppliers), nil
}

func (m *Memory) CreateSupplier(ctx context.Context, input models.SupplierInput) (models.Supplier, error) {
	if err := ctx.Err(); err != nil {
		return models.Supplier{}, err
	}
	if err := input.Validate(); err != nil {
		return models.Supplier{}, err
	}

	supplier := models.Supplier{
		ID:                uuid.NewString(),
		Name:              input.Name,
		Location:          input.Location,
		AdditionalCharges: []models.AdditionalCharge{},
	}

	m.mu.Lock()
	m.suppliers = append(m.suppliers, supplier)
	m.mu.Unlock()

	return supplier, nil
}

func (m *Memory) ListCharges(ctx context.Context) ([]models.SupplierCharge, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.charges), nil
}

func (m *Memory) CreateCharge(ctx context.Context, input models.SupplierChargeInput) (models.SupplierCharge, error) {
	if err := ctx.Err(); err != nil {
		return models.SupplierCharge{}, err
	}
	if err := input.Validate(); err != nil {
		return models.SupplierCharge{}, err
	}

	charge := models.SupplierCharge{
		ID:           uuid.NewString(),
		ChargeType:   input.ChargeType,
		Description:  input.Description,
		Amount:       input.Amount,
		SupplierID:   input.SupplierID,
		Date:         input.Date,
		UnitOfCharge: input.UnitOfCharge,
		BoxCount:     input.BoxCount,
	}

	m.mu.Lock()
	for _, supplier := range m.suppliers {
		if supplier.ID == charge.SupplierID {
			charge.SupplierName = supplier.Name
			break
		}
	}
	m.charges = append(m.charges, charge)
	m.mu.Unlock()

	return charge, nil
}
