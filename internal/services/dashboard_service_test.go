package services

import (
	"context"
	"testing"
	"time"

	"yoyo-backend/internal/models"
	"yoyo-backend/internal/timeutil"
)

func fixtureOrders(base time.Time) []*models.Order {
	return []*models.Order{
		{
			ID: 1, CustomerID: 1, CustomerName: "Mona", Total: 500, DepositPaid: true, DepositAmount: 100,
			CreatedAt: base,
			Items: []models.OrderItem{
				{ProductID: 1, Name: "Strawberry Cake", Qty: 2, UnitPrice: 250, MaterialsCost: 80, LineTotal: 500},
			},
		},
		{
			ID: 2, CustomerID: 1, CustomerName: "Mona", Total: 120,
			CreatedAt: base.AddDate(0, 0, 1),
			Items: []models.OrderItem{
				{ProductID: 2, Name: "Candle Box", Qty: 1, UnitPrice: 120, MaterialsCost: 30, LineTotal: 120},
			},
		},
		{
			ID: 3, CustomerID: 2, CustomerName: "Omar", Total: 250,
			CreatedAt: base.AddDate(0, 0, 2),
			Items: []models.OrderItem{
				{ProductID: 1, Name: "Strawberry Cake", Qty: 1, UnitPrice: 250, MaterialsCost: 80, LineTotal: 250},
			},
		},
		{
			// Cancelled orders never count
			ID: 4, CustomerID: 2, CustomerName: "Omar", Total: 9999, IsCancelled: true,
			CreatedAt: base,
			Items: []models.OrderItem{
				{ProductID: 1, Name: "Strawberry Cake", Qty: 40, UnitPrice: 250, MaterialsCost: 80, LineTotal: 9999},
			},
		},
	}
}

func fixtureExpenses(base time.Time) []*models.Expense {
	return []*models.Expense{
		{ID: 1, Name: "Shop rent", Category: "Rent", Amount: 200, Date: base.Format(timeutil.DateLayout)},
		{ID: 2, Name: "Ads", Category: "Marketing", Amount: 50, Date: base.AddDate(0, 0, 1).Format(timeutil.DateLayout)},
	}
}

func TestBuildOrdersPartial(t *testing.T) {
	base := time.Date(2026, 8, 10, 12, 0, 0, 0, timeutil.Cairo)
	p := buildOrdersPartial(fixtureOrders(base))

	if p.TotalOrders != 3 {
		t.Fatalf("total orders = %d, want 3", p.TotalOrders)
	}
	if p.TotalRevenue != 870 {
		t.Fatalf("total revenue = %v, want 870", p.TotalRevenue)
	}
	if p.TotalDeposits != 100 || p.DepositOrdersCount != 1 {
		t.Fatalf("deposits = %v/%d, want 100/1", p.TotalDeposits, p.DepositOrdersCount)
	}
	// 2*80 + 1*30 + 1*80
	if p.TotalMaterialCost != 270 {
		t.Fatalf("material cost = %v, want 270", p.TotalMaterialCost)
	}
	if p.CustomerCounts[1].Count != 2 || p.CustomerCounts[2].Count != 1 {
		t.Fatalf("customer counts = %+v", p.CustomerCounts)
	}
	if p.ProductQty[1] != 3 || p.ProductQty[2] != 1 {
		t.Fatalf("product qty = %+v", p.ProductQty)
	}
}

func TestReduceDashboardBestSellersAndTopCustomers(t *testing.T) {
	base := time.Date(2026, 8, 10, 12, 0, 0, 0, timeutil.Cairo)
	op := buildOrdersPartial(fixtureOrders(base))
	pp := buildProductsPartial([]*models.Product{
		{ID: 1, Name: "Strawberry Cake"},
		{ID: 2, Name: "Candle Box"},
	})
	cp := customersPartial{TotalCustomers: 2}
	ep := buildExpensesPartial(fixtureExpenses(base))

	snap := reduceDashboard(op, pp, cp, ep, base.AddDate(0, 0, 5))

	if len(snap.BestSellers) != 2 || snap.BestSellers[0].Name != "Strawberry Cake" || snap.BestSellers[0].QtySold != 3 {
		t.Fatalf("best sellers = %+v", snap.BestSellers)
	}
	if len(snap.TopCustomers) != 2 || snap.TopCustomers[0].Name != "Mona" || snap.TopCustomers[0].OrderCount != 2 {
		t.Fatalf("top customers = %+v", snap.TopCustomers)
	}
	// 870 - 270 - 250
	if snap.NetProfit != 350 {
		t.Fatalf("net profit = %v, want 350", snap.NetProfit)
	}
}

func TestReduceDashboardMonthlyBuckets(t *testing.T) {
	base := time.Date(2026, 8, 10, 12, 0, 0, 0, timeutil.Cairo)
	op := buildOrdersPartial(fixtureOrders(base))
	ep := buildExpensesPartial(fixtureExpenses(base))

	snap := reduceDashboard(op, productsPartial{Names: map[int]string{}}, customersPartial{}, ep, base)

	if len(snap.MonthlyPL) != 6 {
		t.Fatalf("monthly series length = %d, want 6", len(snap.MonthlyPL))
	}
	last := snap.MonthlyPL[5]
	if last.Month != "2026-08" {
		t.Fatalf("last bucket = %s, want 2026-08", last.Month)
	}
	if last.Revenue != 870 {
		t.Fatalf("august revenue = %v, want 870", last.Revenue)
	}
	// material cost 270 + expenses 250
	if last.Costs != 520 || last.Profit != 350 {
		t.Fatalf("august costs/profit = %v/%v, want 520/350", last.Costs, last.Profit)
	}
	// Months with no activity are present and zeroed
	if first := snap.MonthlyPL[0]; first.Month != "2026-03" || first.Revenue != 0 {
		t.Fatalf("first bucket = %+v, want empty 2026-03", first)
	}
}

func TestTopListsCapAtFive(t *testing.T) {
	op := ordersPartial{
		CustomerCounts:      map[int]customerOrderStat{},
		ProductQty:          map[int]float64{},
		MonthlyRevenue:      map[string]float64{},
		MonthlyMaterialCost: map[string]float64{},
	}
	for i := 1; i <= 8; i++ {
		op.CustomerCounts[i] = customerOrderStat{Name: "c", Count: i}
		op.ProductQty[i] = float64(i)
	}

	snap := reduceDashboard(op, productsPartial{Names: map[int]string{}}, customersPartial{},
		expensesPartial{MonthlyExpenses: map[string]float64{}}, time.Now())

	if len(snap.BestSellers) != 5 || snap.BestSellers[0].QtySold != 8 {
		t.Fatalf("best sellers = %+v", snap.BestSellers)
	}
	if len(snap.TopCustomers) != 5 || snap.TopCustomers[0].OrderCount != 8 {
		t.Fatalf("top customers = %+v", snap.TopCustomers)
	}
}

// The two profit figures disagree on purpose: the report ignores material
// cost, the dashboard subtracts it. Over identical data the gap is exactly
// the total material cost.
func TestDashboardAndReportProfitDivergence(t *testing.T) {
	base := time.Date(2026, 8, 10, 12, 0, 0, 0, timeutil.Cairo)
	orders := fixtureOrders(base)
	expenses := fixtureExpenses(base)
	catalog := pricedCatalog()

	report := BuildReport(orders, nil, catalog, nil, expenses,
		base.AddDate(0, 0, -1), base.AddDate(0, 0, 10))

	op := buildOrdersPartial(orders)
	ep := buildExpensesPartial(expenses)
	snap := reduceDashboard(op, productsPartial{Names: map[int]string{}}, customersPartial{}, ep, base)

	if snap.NetProfit != report.Profit-report.TotalMaterialCost {
		t.Fatalf("net profit %v != report profit %v - material cost %v",
			snap.NetProfit, report.Profit, report.TotalMaterialCost)
	}
}

// A callback attached before publishing must receive exactly the snapshot
// that Snapshot() then serves.
func TestPublishNotifiesAttachedCallback(t *testing.T) {
	base := time.Date(2026, 8, 10, 12, 0, 0, 0, timeutil.Cairo)
	s := NewDashboardService(nil, nil, nil, nil)
	s.orders = buildOrdersPartial(fixtureOrders(base))
	s.products = productsPartial{Names: map[int]string{}}
	s.expenses = buildExpensesPartial(fixtureExpenses(base))

	var got *DashboardSnapshot
	s.OnUpdate = func(snap *DashboardSnapshot) { got = snap }

	s.publish(context.Background())

	if got == nil {
		t.Fatalf("callback not invoked on publish")
	}
	if got != s.Snapshot() {
		t.Fatalf("callback snapshot differs from the stored snapshot")
	}
	if got.TotalRevenue != 870 {
		t.Fatalf("published revenue = %v, want 870", got.TotalRevenue)
	}
}
