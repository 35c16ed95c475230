package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"yoyo-backend/internal/metrics"
	"yoyo-backend/internal/models"
	"yoyo-backend/internal/repositories"
)

// ErrStockDecisionRequired is returned when a status change would complete an
// order whose stock was never deducted and the caller has not said whether to
// deduct now. Handlers translate it to 409 so the UI can ask.
var ErrStockDecisionRequired = errors.New("order completion requires a stock deduction decision")

// ErrOrderCancelled rejects edits and status changes on cancelled orders.
var ErrOrderCancelled = errors.New("order is cancelled")

type OrderService struct {
	DB           *pgxpool.Pool
	OrderRepo    *repositories.OrderRepository
	CustomerRepo *repositories.CustomerRepository
	ProductRepo  *repositories.ProductRepository
	UserRepo     *repositories.UserRepository
	Inventory    *InventoryService
}

func NewOrderService(db *pgxpool.Pool, orderRepo *repositories.OrderRepository,
	customerRepo *repositories.CustomerRepository, productRepo *repositories.ProductRepository,
	userRepo *repositories.UserRepository, inventory *InventoryService) *OrderService {
	return &OrderService{
		DB:           db,
		OrderRepo:    orderRepo,
		CustomerRepo: customerRepo,
		ProductRepo:  productRepo,
		UserRepo:     userRepo,
		Inventory:    inventory,
	}
}

// normalizeDraft turns a client draft into a full order: customer and
// salesperson names are snapshotted, items are re-priced from the current
// catalog and all totals are recomputed server-side. The returned catalog is
// the one used for pricing so callers can reuse it for stock math.
func (s *OrderService) normalizeDraft(ctx context.Context, draft *models.OrderDraft) (*models.Order, map[int]*models.Product, error) {
	if len(draft.Items) == 0 {
		return nil, nil, errors.New("order must contain at least one item")
	}

	customer, err := s.CustomerRepo.Get(ctx, draft.CustomerID)
	if err != nil {
		return nil, nil, fmt.Errorf("customer %d not found", draft.CustomerID)
	}

	catalog, err := s.ProductRepo.Catalog(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("load product catalog: %w", err)
	}

	o := &models.Order{
		CustomerID:       customer.ID,
		CustomerName:     customer.FullName,
		Discount:         draft.Discount,
		DepositPaid:      draft.DepositPaid,
		DepositAmount:    draft.DepositAmount,
		ProductionStatus: draft.ProductionStatus,
		ShippingStatus:   draft.ShippingStatus,
		Notes:            draft.Notes,
		SalespersonID:    draft.SalespersonID,
	}

	if o.ProductionStatus == "" {
		o.ProductionStatus = models.ProductionStatuses[0]
	}
	if o.ShippingStatus == "" {
		o.ShippingStatus = models.ShippingStatuses[0]
	}
	if !models.IsValidProductionStatus(o.ProductionStatus) {
		return nil, nil, fmt.Errorf("invalid production status %q", o.ProductionStatus)
	}
	if !models.IsValidShippingStatus(o.ShippingStatus) {
		return nil, nil, fmt.Errorf("invalid shipping status %q", o.ShippingStatus)
	}
	if o.Discount < 0 {
		return nil, nil, errors.New("discount cannot be negative")
	}

	if draft.SalespersonID != nil {
		sp, err := s.UserRepo.Get(ctx, *draft.SalespersonID)
		if err != nil {
			return nil, nil, fmt.Errorf("salesperson %d not found", *draft.SalespersonID)
		}
		o.SalespersonName = sp.Name
	}

	items, subtotal, err := snapshotItems(draft.Items, catalog)
	if err != nil {
		return nil, nil, err
	}
	o.Items = items
	o.Subtotal = subtotal
	o.Total = subtotal - o.Discount
	return o, catalog, nil
}

// snapshotItems freezes each requested item against the current catalog:
// name, unit price and per-unit materials cost are copied, line totals and
// the subtotal recomputed. Client-sent prices are ignored.
func snapshotItems(items []models.OrderItem, catalog map[int]*models.Product) ([]models.OrderItem, float64, error) {
	var (
		out      []models.OrderItem
		subtotal float64
	)
	for _, item := range items {
		if item.Qty <= 0 {
			return nil, 0, fmt.Errorf("item quantity must be positive, got %v", item.Qty)
		}
		p, ok := catalog[item.ProductID]
		if !ok {
			return nil, 0, fmt.Errorf("product %d not found", item.ProductID)
		}
		snap := models.OrderItem{
			ProductID:     p.ID,
			Name:          p.Name,
			Qty:           item.Qty,
			UnitPrice:     p.Price,
			MaterialsCost: p.MaterialsCost,
		}
		snap.LineTotal = snap.Qty * snap.UnitPrice
		subtotal += snap.LineTotal
		out = append(out, snap)
	}
	return out, subtotal, nil
}

// CreateOrder writes the order and, when the caller chose so, deducts
// material stock in the same transaction.
func (s *OrderService) CreateOrder(ctx context.Context, req *models.CreateOrderRequest) (*models.Order, error) {
	o, catalog, err := s.normalizeDraft(ctx, &req.OrderDraft)
	if err != nil {
		return nil, err
	}
	o.StockDeducted = req.DeductStock

	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := s.OrderRepo.Create(ctx, tx, o); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	if req.DeductStock {
		usage := ComputeUsage(o.Items, catalog)
		if err := s.Inventory.Deduct(ctx, tx, usage); err != nil {
			return nil, err
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	metrics.OrdersCreated.Inc()
	return o, nil
}

// UpdateOrder rewrites the order from the draft. If stock was already
// deducted the difference in material usage is settled in the same
// transaction, so editing 2 units down to 1 puts one unit's materials back.
func (s *OrderService) UpdateOrder(ctx context.Context, id int, draft *models.OrderDraft) (*models.Order, error) {
	existing, err := s.OrderRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.IsCancelled {
		return nil, ErrOrderCancelled
	}

	o, catalog, err := s.normalizeDraft(ctx, draft)
	if err != nil {
		return nil, err
	}
	o.ID = existing.ID
	o.StockDeducted = existing.StockDeducted
	o.SalespersonID = existing.SalespersonID
	o.SalespersonName = existing.SalespersonName
	o.CreatedAt = existing.CreatedAt

	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if existing.StockDeducted {
		// Both sides use current recipes; materials released by the edit
		// come back, extra consumption goes out.
		delta := UsageDelta(ComputeUsage(existing.Items, catalog), ComputeUsage(o.Items, catalog))
		if err := s.Inventory.Reconcile(ctx, tx, delta); err != nil {
			return nil, err
		}
	}
	if err := s.OrderRepo.Update(ctx, tx, o); err != nil {
		return nil, fmt.Errorf("update order: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return o, nil
}

// ChangeStatus updates one status axis. Moving to a completion marker on an
// order whose stock was never deducted needs an explicit decision; without
// one the call fails with ErrStockDecisionRequired and nothing changes.
func (s *OrderService) ChangeStatus(ctx context.Context, id int, req *models.ChangeStatusRequest) (*models.Order, error) {
	o, err := s.OrderRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if o.IsCancelled {
		return nil, ErrOrderCancelled
	}

	var completion bool
	switch req.Field {
	case "production_status":
		if !models.IsValidProductionStatus(req.Value) {
			return nil, fmt.Errorf("invalid production status %q", req.Value)
		}
		completion = req.Value == models.ProductionFinished
	case "shipping_status":
		if !models.IsValidShippingStatus(req.Value) {
			return nil, fmt.Errorf("invalid shipping status %q", req.Value)
		}
		completion = req.Value == models.ShippingDelivered
	default:
		return nil, fmt.Errorf("unknown status field %q", req.Field)
	}

	deductNow := false
	if completion && !o.StockDeducted {
		if req.DeductStock == nil {
			return nil, ErrStockDecisionRequired
		}
		deductNow = *req.DeductStock
	}

	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var markDeducted *bool
	if deductNow {
		catalog, err := s.ProductRepo.Catalog(ctx)
		if err != nil {
			return nil, fmt.Errorf("load product catalog: %w", err)
		}
		if err := s.Inventory.Deduct(ctx, tx, ComputeUsage(o.Items, catalog)); err != nil {
			return nil, err
		}
		t := true
		markDeducted = &t
		o.StockDeducted = true
	}
	if err := s.OrderRepo.UpdateStatus(ctx, tx, id, req.Field, req.Value, markDeducted); err != nil {
		return nil, fmt.Errorf("update status: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	switch req.Field {
	case "production_status":
		o.ProductionStatus = req.Value
	case "shipping_status":
		o.ShippingStatus = req.Value
	}
	o.UpdatedAt = time.Now()
	return o, nil
}

// CancelOrder marks the order cancelled and, if stock had been deducted,
// restores the materials in the same transaction. The order row stays for
// reporting.
func (s *OrderService) CancelOrder(ctx context.Context, id int) (*models.Order, error) {
	o, err := s.OrderRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if o.IsCancelled {
		return nil, ErrOrderCancelled
	}

	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if o.StockDeducted {
		catalog, err := s.ProductRepo.Catalog(ctx)
		if err != nil {
			return nil, fmt.Errorf("load product catalog: %w", err)
		}
		if err := s.Inventory.Restore(ctx, tx, ComputeUsage(o.Items, catalog)); err != nil {
			return nil, err
		}
	}
	if err := s.OrderRepo.MarkCancelled(ctx, tx, id, false); err != nil {
		return nil, fmt.Errorf("cancel order: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	o.IsCancelled = true
	o.StockDeducted = false
	return o, nil
}

// DeleteOrder removes the order permanently. Stock is deliberately not
// restored; cancel first if the materials should come back.
func (s *OrderService) DeleteOrder(ctx context.Context, id int) error {
	return s.OrderRepo.Delete(ctx, id)
}

func (s *OrderService) GetOrder(ctx context.Context, id int) (*models.Order, error) {
	return s.OrderRepo.Get(ctx, id)
}

func (s *OrderService) ListOrders(ctx context.Context) ([]*models.Order, error) {
	return s.OrderRepo.List(ctx)
}
