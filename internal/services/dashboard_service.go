package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"yoyo-backend/internal/cache"
	"yoyo-backend/internal/metrics"
	"yoyo-backend/internal/models"
	"yoyo-backend/internal/repositories"
	"yoyo-backend/internal/timeutil"
)

// Source names one of the four dashboard inputs. Mutating services mark
// sources dirty; only dirty sources get recomputed.
type Source string

const (
	SourceOrders    Source = "orders"
	SourceCustomers Source = "customers"
	SourceProducts  Source = "products"
	SourceExpenses  Source = "expenses"
)

type BestSeller struct {
	ProductID int     `json:"product_id"`
	Name      string  `json:"name"`
	QtySold   float64 `json:"qty_sold"`
}

type TopCustomer struct {
	CustomerID int    `json:"customer_id"`
	Name       string `json:"name"`
	OrderCount int    `json:"order_count"`
}

// MonthlyPL is one month of the profit & loss series. Costs bundle material
// cost and operational expenses together.
type MonthlyPL struct {
	Month   string  `json:"month"` // YYYY-MM
	Revenue float64 `json:"revenue"`
	Costs   float64 `json:"costs"`
	Profit  float64 `json:"profit"`
}

// DashboardSnapshot is an immutable all-time view. NetProfit subtracts both
// material cost and expenses, which is why it diverges from the report's
// profit figure by exactly the total material cost.
type DashboardSnapshot struct {
	GeneratedAt        time.Time     `json:"generated_at"`
	TotalOrders        int           `json:"total_orders"`
	TotalRevenue       float64       `json:"total_revenue"`
	TotalCustomers     int           `json:"total_customers"`
	TotalExpenses      float64       `json:"total_expenses"`
	TotalMaterialCost  float64       `json:"total_material_cost"`
	TotalDeposits      float64       `json:"total_deposits"`
	DepositOrdersCount int           `json:"deposit_orders_count"`
	NetProfit          float64       `json:"net_profit"`
	BestSellers        []BestSeller  `json:"best_sellers"`
	TopCustomers       []TopCustomer `json:"top_customers"`
	MonthlyPL          []MonthlyPL   `json:"monthly_pl"`
}

// Per-source partials. Each is rebuilt wholesale when its source is dirty.

type customerOrderStat struct {
	Name  string
	Count int
}

type ordersPartial struct {
	TotalOrders         int
	TotalRevenue        float64
	TotalDeposits       float64
	DepositOrdersCount  int
	TotalMaterialCost   float64
	CustomerCounts      map[int]customerOrderStat
	ProductQty          map[int]float64
	MonthlyRevenue      map[string]float64
	MonthlyMaterialCost map[string]float64
}

type productsPartial struct {
	Names map[int]string
}

type customersPartial struct {
	TotalCustomers int
}

type expensesPartial struct {
	TotalExpenses   float64
	MonthlyExpenses map[string]float64
}

func buildOrdersPartial(orders []*models.Order) ordersPartial {
	p := ordersPartial{
		CustomerCounts:      map[int]customerOrderStat{},
		ProductQty:          map[int]float64{},
		MonthlyRevenue:      map[string]float64{},
		MonthlyMaterialCost: map[string]float64{},
	}
	for _, o := range orders {
		if o.IsCancelled {
			continue
		}
		p.TotalOrders++
		p.TotalRevenue += o.Total
		if o.DepositPaid {
			p.DepositOrdersCount++
			p.TotalDeposits += o.DepositAmount
		}

		month := timeutil.MonthKey(o.CreatedAt)
		p.MonthlyRevenue[month] += o.Total

		stat := p.CustomerCounts[o.CustomerID]
		stat.Name = o.CustomerName
		stat.Count++
		p.CustomerCounts[o.CustomerID] = stat

		for _, item := range o.Items {
			cost := item.MaterialsCost * item.Qty
			p.TotalMaterialCost += cost
			p.MonthlyMaterialCost[month] += cost
			p.ProductQty[item.ProductID] += item.Qty
		}
	}
	return p
}

func buildProductsPartial(products []*models.Product) productsPartial {
	p := productsPartial{Names: map[int]string{}}
	for _, prod := range products {
		p.Names[prod.ID] = prod.Name
	}
	return p
}

func buildExpensesPartial(expenses []*models.Expense) expensesPartial {
	p := expensesPartial{MonthlyExpenses: map[string]float64{}}
	for _, e := range expenses {
		p.TotalExpenses += e.Amount
		// e.Date is YYYY-MM-DD, so the month bucket is its YYYY-MM prefix.
		if len(e.Date) >= 7 {
			p.MonthlyExpenses[e.Date[:7]] += e.Amount
		}
	}
	return p
}

// reduceDashboard merges the four partials into a fresh snapshot. The inputs
// are never mutated, so a half-finished refresh can never leak into readers.
func reduceDashboard(op ordersPartial, pp productsPartial, cp customersPartial, ep expensesPartial, now time.Time) *DashboardSnapshot {
	s := &DashboardSnapshot{
		GeneratedAt:        now,
		TotalOrders:        op.TotalOrders,
		TotalRevenue:       op.TotalRevenue,
		TotalCustomers:     cp.TotalCustomers,
		TotalExpenses:      ep.TotalExpenses,
		TotalMaterialCost:  op.TotalMaterialCost,
		TotalDeposits:      op.TotalDeposits,
		DepositOrdersCount: op.DepositOrdersCount,
	}
	s.NetProfit = op.TotalRevenue - op.TotalMaterialCost - ep.TotalExpenses

	for id, qty := range op.ProductQty {
		name, ok := pp.Names[id]
		if !ok {
			name = fmt.Sprintf("product #%d", id)
		}
		s.BestSellers = append(s.BestSellers, BestSeller{ProductID: id, Name: name, QtySold: qty})
	}
	sort.Slice(s.BestSellers, func(i, j int) bool {
		if s.BestSellers[i].QtySold != s.BestSellers[j].QtySold {
			return s.BestSellers[i].QtySold > s.BestSellers[j].QtySold
		}
		return s.BestSellers[i].Name < s.BestSellers[j].Name
	})
	if len(s.BestSellers) > 5 {
		s.BestSellers = s.BestSellers[:5]
	}

	for id, stat := range op.CustomerCounts {
		s.TopCustomers = append(s.TopCustomers, TopCustomer{CustomerID: id, Name: stat.Name, OrderCount: stat.Count})
	}
	sort.Slice(s.TopCustomers, func(i, j int) bool {
		if s.TopCustomers[i].OrderCount != s.TopCustomers[j].OrderCount {
			return s.TopCustomers[i].OrderCount > s.TopCustomers[j].OrderCount
		}
		return s.TopCustomers[i].Name < s.TopCustomers[j].Name
	})
	if len(s.TopCustomers) > 5 {
		s.TopCustomers = s.TopCustomers[:5]
	}

	// Last 6 calendar months, oldest first
	local := timeutil.ToLocal(now)
	first := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, timeutil.Cairo)
	for i := 5; i >= 0; i-- {
		month := timeutil.MonthKey(first.AddDate(0, -i, 0))
		revenue := op.MonthlyRevenue[month]
		costs := op.MonthlyMaterialCost[month] + ep.MonthlyExpenses[month]
		s.MonthlyPL = append(s.MonthlyPL, MonthlyPL{
			Month:   month,
			Revenue: revenue,
			Costs:   costs,
			Profit:  revenue - costs,
		})
	}
	return s
}

// DashboardService recomputes the snapshot in a single goroutine fed by a
// dirty-source channel. Readers always see the last complete snapshot.
type DashboardService struct {
	OrderRepo    *repositories.OrderRepository
	CustomerRepo *repositories.CustomerRepository
	ProductRepo  *repositories.ProductRepository
	ExpenseRepo  *repositories.ExpenseRepository

	// OnUpdate, when set, is called with every fresh snapshot (websocket
	// broadcast). Set before Run.
	OnUpdate func(*DashboardSnapshot)

	refresh chan Source

	mu   sync.RWMutex
	snap *DashboardSnapshot

	orders    ordersPartial
	products  productsPartial
	customers customersPartial
	expenses  expensesPartial
}

func NewDashboardService(orderRepo *repositories.OrderRepository, customerRepo *repositories.CustomerRepository,
	productRepo *repositories.ProductRepository, expenseRepo *repositories.ExpenseRepository) *DashboardService {
	return &DashboardService{
		OrderRepo:    orderRepo,
		CustomerRepo: customerRepo,
		ProductRepo:  productRepo,
		ExpenseRepo:  expenseRepo,
		refresh:      make(chan Source, 16),
	}
}

// Run computes the initial snapshot, then merges dirty-source refreshes until
// ctx is cancelled. Call once, from main.
func (s *DashboardService) Run(ctx context.Context) {
	for _, src := range []Source{SourceOrders, SourceCustomers, SourceProducts, SourceExpenses} {
		if err := s.rebuild(ctx, src); err != nil {
			log.Printf("[Dashboard] initial %s load: %v", src, err)
		}
	}
	s.publish(ctx)

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case src := <-s.refresh:
				if err := s.rebuild(ctx, src); err != nil {
					log.Printf("[Dashboard] refresh %s: %v", src, err)
					continue
				}
				// Drain further marks so a burst of writes costs one reduce
				for drained := false; !drained; {
					select {
					case more := <-s.refresh:
						if err := s.rebuild(ctx, more); err != nil {
							log.Printf("[Dashboard] refresh %s: %v", more, err)
						}
					default:
						drained = true
					}
				}
				s.publish(ctx)
			}
		}
	}()
}

// Invalidate marks sources dirty. Never blocks; a full channel means a
// refresh is already pending.
func (s *DashboardService) Invalidate(sources ...Source) {
	for _, src := range sources {
		select {
		case s.refresh <- src:
		default:
		}
	}
}

// Snapshot returns the last complete snapshot, nil before the first build.
func (s *DashboardService) Snapshot() *DashboardSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

func (s *DashboardService) rebuild(ctx context.Context, src Source) error {
	switch src {
	case SourceOrders:
		orders, err := s.OrderRepo.List(ctx)
		if err != nil {
			return err
		}
		s.orders = buildOrdersPartial(orders)
	case SourceCustomers:
		count, err := s.CustomerRepo.Count(ctx)
		if err != nil {
			return err
		}
		s.customers = customersPartial{TotalCustomers: count}
	case SourceProducts:
		products, err := s.ProductRepo.List(ctx)
		if err != nil {
			return err
		}
		s.products = buildProductsPartial(products)
	case SourceExpenses:
		expenses, err := s.ExpenseRepo.List(ctx)
		if err != nil {
			return err
		}
		s.expenses = buildExpensesPartial(expenses)
	}
	return nil
}

func (s *DashboardService) publish(ctx context.Context) {
	snap := reduceDashboard(s.orders, s.products, s.customers, s.expenses, timeutil.Now())
	metrics.DashboardRefreshes.Inc()

	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()

	if data, err := json.Marshal(snap); err == nil {
		cache.CacheDashboard(ctx, data)
	}
	if s.OnUpdate != nil {
		s.OnUpdate(snap)
	}
}
