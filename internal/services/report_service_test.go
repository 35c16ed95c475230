package services

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"yoyo-backend/internal/models"
	"yoyo-backend/internal/timeutil"
)

func reportWindow() (time.Time, time.Time) {
	return time.Date(2026, 8, 1, 0, 0, 0, 0, timeutil.Cairo),
		time.Date(2026, 8, 31, 23, 59, 59, 0, timeutil.Cairo)
}

func TestBuildReportTotals(t *testing.T) {
	base := time.Date(2026, 8, 10, 12, 0, 0, 0, timeutil.Cairo)
	start, end := reportWindow()

	r := BuildReport(fixtureOrders(base), nil, pricedCatalog(), nil, fixtureExpenses(base), start, end)

	if r.TotalOrders != 3 {
		t.Fatalf("total orders = %d, want 3", r.TotalOrders)
	}
	if r.TotalRevenue != 870 {
		t.Fatalf("total revenue = %v, want 870", r.TotalRevenue)
	}
	if r.TotalProductsSold != 4 {
		t.Fatalf("products sold = %v, want 4", r.TotalProductsSold)
	}
	if r.TotalMaterialCost != 270 {
		t.Fatalf("material cost = %v, want 270", r.TotalMaterialCost)
	}
	if r.TotalOperationalExpenses != 250 {
		t.Fatalf("expenses = %v, want 250", r.TotalOperationalExpenses)
	}
	// Profit ignores material cost
	if r.Profit != 620 {
		t.Fatalf("profit = %v, want 620", r.Profit)
	}
}

func TestBuildReportWindowExcludesOutsideOrders(t *testing.T) {
	base := time.Date(2026, 8, 10, 12, 0, 0, 0, timeutil.Cairo)
	start, end := reportWindow()

	orders := fixtureOrders(base)
	orders = append(orders, &models.Order{
		ID: 99, CustomerID: 3, CustomerName: "Laila", Total: 1000,
		CreatedAt: base.AddDate(0, 2, 0),
		Items:     []models.OrderItem{{ProductID: 1, Qty: 4, MaterialsCost: 80}},
	})

	r := BuildReport(orders, nil, pricedCatalog(), nil, nil, start, end)
	if r.TotalOrders != 3 || r.TotalRevenue != 870 {
		t.Fatalf("window leak: orders=%d revenue=%v", r.TotalOrders, r.TotalRevenue)
	}
}

func TestBuildReportWindowExcludesOutsideExpenses(t *testing.T) {
	base := time.Date(2026, 8, 10, 12, 0, 0, 0, timeutil.Cairo)
	start, end := reportWindow()

	expenses := append(fixtureExpenses(base),
		&models.Expense{ID: 3, Name: "Old rent", Amount: 400, Date: "2026-07-31"},
		&models.Expense{ID: 4, Name: "Future ads", Amount: 90, Date: "2026-09-01"},
	)

	r := BuildReport(nil, nil, nil, nil, expenses, start, end)
	if r.TotalOperationalExpenses != 250 {
		t.Fatalf("expenses = %v, want 250 (out-of-window dates must be skipped)", r.TotalOperationalExpenses)
	}
}

func TestBuildReportCustomerRows(t *testing.T) {
	base := time.Date(2026, 8, 10, 12, 0, 0, 0, timeutil.Cairo)
	start, end := reportWindow()
	customers := []*models.Customer{
		{ID: 1, FullName: "Mona Adel", PhoneNumber: "01012345678"},
		{ID: 2, FullName: "Omar Samir", PhoneNumber: "01198765432"},
		{ID: 7, FullName: "No Orders", PhoneNumber: "01200000000"},
	}

	r := BuildReport(fixtureOrders(base), customers, pricedCatalog(), nil, nil, start, end)

	if len(r.Customers) != 2 {
		t.Fatalf("customer rows = %d, want 2 (zero-order customers dropped)", len(r.Customers))
	}
	top := r.Customers[0]
	if top.Name != "Mona Adel" || top.OrderCount != 2 || top.TotalSpent != 620 {
		t.Fatalf("top customer row = %+v", top)
	}
	if top.PhoneNumber != "01012345678" {
		t.Fatalf("phone not joined from customer record: %+v", top)
	}
}

func TestBuildReportMaterialsUsage(t *testing.T) {
	base := time.Date(2026, 8, 10, 12, 0, 0, 0, timeutil.Cairo)
	start, end := reportWindow()
	materials := []*models.Material{
		{ID: 10, Name: "Wax", UnitLabel: "g", PricePerUnit: 2},
		{ID: 20, Name: "Wicks", UnitLabel: "piece", PricePerUnit: 5},
	}

	r := BuildReport(fixtureOrders(base), nil, pricedCatalog(), materials, nil, start, end)

	if len(r.MaterialsUsage) != 2 {
		t.Fatalf("materials usage rows = %d, want 2", len(r.MaterialsUsage))
	}
	// Sorted by name: Wax before Wicks. 3 cakes * 10g each.
	wax := r.MaterialsUsage[0]
	if wax.Name != "Wax" || wax.Qty != 30 || wax.UnitLabel != "g" || wax.TotalCost != 60 {
		t.Fatalf("wax row = %+v", wax)
	}
	wicks := r.MaterialsUsage[1]
	if wicks.Name != "Wicks" || wicks.Qty != 5 {
		t.Fatalf("wicks row = %+v", wicks)
	}
}

func TestReportFilename(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, timeutil.Cairo)
	end := time.Date(2026, 1, 31, 0, 0, 0, 0, timeutil.Cairo)
	if got := ReportFilename(start, end, "csv"); got != "report_2026-01-01_to_2026-01-31.csv" {
		t.Fatalf("filename = %q", got)
	}
}

func TestReportCSVShape(t *testing.T) {
	// Render the CSV sections directly from a built report the way the
	// service does, then parse it back.
	base := time.Date(2026, 8, 10, 12, 0, 0, 0, timeutil.Cairo)
	start, end := reportWindow()
	r := BuildReport(fixtureOrders(base), nil, pricedCatalog(),
		[]*models.Material{{ID: 10, Name: "Wax", UnitLabel: "g", PricePerUnit: 2}},
		fixtureExpenses(base), start, end)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Write([]string{"Yoyo Shop Report"})
	w.Write([]string{"Dates:", r.StartDate + " to " + r.EndDate})
	w.Flush()

	out := buf.String()
	if !strings.HasPrefix(out, "Yoyo Shop Report\n") {
		t.Fatalf("csv header = %q", out)
	}
	if !strings.Contains(out, "Dates:,2026-08-01 to 2026-08-31") {
		t.Fatalf("csv dates line missing: %q", out)
	}
}
