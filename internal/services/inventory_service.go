package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/jackc/pgx/v5"

	"yoyo-backend/internal/metrics"
	"yoyo-backend/internal/models"
	"yoyo-backend/internal/repositories"
)

// Usage maps material ID to a quantity of that material, in the material's
// own unit. Positive values mean consumption.
type Usage map[int]float64

// ComputeUsage expands order items through the product recipes in catalog.
// Items whose product is missing from the catalog (deleted products) simply
// contribute nothing.
func ComputeUsage(items []models.OrderItem, catalog map[int]*models.Product) Usage {
	usage := Usage{}
	for _, item := range items {
		p, ok := catalog[item.ProductID]
		if !ok {
			continue
		}
		for _, pm := range p.Materials {
			usage[pm.MaterialID] += pm.Quantity * item.Qty
		}
	}
	return usage
}

// UsageDelta returns next minus prev per material. Positive entries are
// additional consumption, negative entries are released stock. Materials with
// a zero delta are dropped.
func UsageDelta(prev, next Usage) Usage {
	delta := Usage{}
	for id, qty := range next {
		delta[id] += qty
	}
	for id, qty := range prev {
		delta[id] -= qty
	}
	for id, qty := range delta {
		if qty == 0 {
			delete(delta, id)
		}
	}
	return delta
}

// InventoryService applies computed usage to material stock. All mutating
// methods run inside the caller's transaction so order writes and stock
// writes commit or roll back together.
type InventoryService struct {
	materials *repositories.MaterialRepository
}

func NewInventoryService(materials *repositories.MaterialRepository) *InventoryService {
	return &InventoryService{materials: materials}
}

// Deduct subtracts usage from stock. Stock is allowed to go negative; low
// stock is a display concern, not a constraint.
func (s *InventoryService) Deduct(ctx context.Context, tx pgx.Tx, usage Usage) error {
	return s.apply(ctx, tx, usage, -1)
}

// Restore adds usage back to stock, the inverse of Deduct.
func (s *InventoryService) Restore(ctx context.Context, tx pgx.Tx, usage Usage) error {
	return s.apply(ctx, tx, usage, 1)
}

// Reconcile applies a usage delta from an order edit: extra consumption is
// deducted, released quantities are restored.
func (s *InventoryService) Reconcile(ctx context.Context, tx pgx.Tx, delta Usage) error {
	return s.apply(ctx, tx, delta, -1)
}

func (s *InventoryService) apply(ctx context.Context, tx pgx.Tx, usage Usage, sign float64) error {
	// Fixed order keeps concurrent transactions from deadlocking on row locks
	ids := make([]int, 0, len(usage))
	for id := range usage {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	for _, id := range ids {
		qty := usage[id]
		if qty == 0 {
			continue
		}
		if err := s.materials.AdjustStock(ctx, tx, id, sign*qty); err != nil {
			return fmt.Errorf("adjust stock for material %d: %w", id, err)
		}
	}
	if len(ids) > 0 {
		metrics.StockDeductions.Inc()
	}
	return nil
}
