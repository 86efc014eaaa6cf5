// Package planner keeps the live pricing state and moves records between it
// and the record store.
package planner

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/01moynul/flower-pricing-golang/internal/models"
	"github.com/01moynul/flower-pricing-golang/internal/pricing"
	"github.com/01moynul/flower-pricing-golang/internal/store"
)

// Planner owns the current pricing.State. Every change swaps in a whole new
// snapshot under the lock, so readers always see a consistent priced view.
type Planner struct {
	store store.Store

	mu    sync.RWMutex
	state pricing.State
}

// New creates a planner with an empty state.
func New(s store.Store, defaultMarkup float64) *Planner {
	return &Planner{store: s, state: pricing.NewState(defaultMarkup)}
}

// Snapshot returns the current state. It is immutable and safe to read freely.
func (p *Planner) Snapshot() pricing.State {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.state
}

// update applies one transition to the current state.
func (p *Planner) update(fn func(pricing.State) pricing.State) pricing.State {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state = fn(p.state)
	return p.state
}

// Reload fetches suppliers, flowers and charges concurrently. If any fetch
// fails the state is left as it was. The last reload to finish wins.
func (p *Planner) Reload(ctx context.Context) error {
	var (
		wg        sync.WaitGroup
		flowers   []models.FlowerItem
		suppliers []models.Supplier
		charges   []models.SupplierCharge
		errs      [3]error
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		suppliers, errs[0] = p.store.ListSuppliers(ctx)
	}()
	go func() {
		defer wg.Done()
		flowers, errs[1] = p.store.ListFlowers(ctx)
	}()
	go func() {
		defer wg.Done()
		charges, errs[2] = p.store.ListCharges(ctx)
	}()
	wg.Wait()

	labels := [3]string{"suppliers", "flowers", "supplier charges"}
	for i, err := range errs {
		if err != nil {
			return fmt.Errorf("unable to load %s: %w", labels[i], err)
		}
	}

	p.update(func(s pricing.State) pricing.State {
		return s.WithSuppliers(suppliers).WithItems(flowers).WithCharges(charges)
	})
	return nil
}

// StartRefresh reloads on every tick until ctx is cancelled.
func (p *Planner) StartRefresh(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Printf("Background refresh started: reloading records every %s", interval)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := p.Reload(ctx); err != nil {
				log.Printf("Background refresh failed: %v", err)
			}
		}
	}
}

// AddFlowers creates the batch remotely, then appends what was created.
func (p *Planner) AddFlowers(ctx context.Context, flowers []models.FlowerInput) ([]models.FlowerItem, error) {
	created, err := p.store.CreateFlowers(ctx, flowers)
	if err != nil {
		return nil, err
	}
	p.update(func(s pricing.State) pricing.State { return s.AddItems(created...) })
	return created, nil
}

// AddSupplier creates the supplier remotely, then appends it.
func (p *Planner) AddSupplier(ctx context.Context, input models.SupplierInput) (models.Supplier, error) {
	created, err := p.store.CreateSupplier(ctx, input)
	if err != nil {
		return models.Supplier{}, err
	}
	p.update(func(s pricing.State) pricing.State { return s.AddSupplier(created) })
	return created, nil
}

// AddCharge creates the supplier charge remotely, then appends it.
func (p *Planner) AddCharge(ctx context.Context, input models.SupplierChargeInput) (models.SupplierCharge, error) {
	created, err := p.store.CreateCharge(ctx, input)
	if err != nil {
		return models.SupplierCharge{}, err
	}
	p.update(func(s pricing.State) pricing.State { return s.AddCharge(created) })
	return created, nil
}

// SetGlobalMarkup changes the global markup and returns the new state.
func (p *Planner) SetGlobalMarkup(value float64) pricing.State {
	return p.update(func(s pricing.State) pricing.State { return s.SetGlobalMarkup(value) })
}

// SetItemMarkup sets or, with a nil value, clears one item's override.
func (p *Planner) SetItemMarkup(id string, value *float64) pricing.State {
	return p.update(func(s pricing.State) pricing.State { return s.SetItemMarkup(id, value) })
}

// ResetItemMarkup clears one item's override.
func (p *Planner) ResetItemMarkup(id string) pricing.State {
	return p.update(func(s pricing.State) pricing.State { return s.ResetItemMarkup(id) })
}

// ApplyMarkupToAll copies the global markup onto every current item.
func (p *Planner) ApplyMarkupToAll() pricing.State {
	return p.update(func(s pricing.State) pricing.State { return s.ApplyMarkupToAll() })
}
