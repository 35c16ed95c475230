package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/jung-kurt/gofpdf/v2"

	"yoyo-backend/internal/archive"
	"yoyo-backend/internal/models"
	"yoyo-backend/internal/repositories"
	"yoyo-backend/internal/timeutil"
)

// ReportCustomerRow is one customer's activity inside the report window.
type ReportCustomerRow struct {
	CustomerID  int     `json:"customer_id"`
	Name        string  `json:"name"`
	PhoneNumber string  `json:"phone_number"`
	OrderCount  int     `json:"order_count"`
	TotalSpent  float64 `json:"total_spent"`
}

// ReportMaterialUsage is the quantity of one material consumed by the
// window's orders, expanded through current product recipes.
type ReportMaterialUsage struct {
	MaterialID int     `json:"material_id"`
	Name       string  `json:"name"`
	Qty        float64 `json:"qty"`
	UnitLabel  string  `json:"unit_label"`
	TotalCost  float64 `json:"total_cost"`
}

// Report is the date-ranged business report. Profit here is revenue minus
// operational expenses only; material cost is reported separately and, unlike
// the dashboard's net profit, never subtracted.
type Report struct {
	StartDate                string                `json:"start_date"`
	EndDate                  string                `json:"end_date"`
	TotalRevenue             float64               `json:"total_revenue"`
	TotalOrders              int                   `json:"total_orders"`
	TotalProductsSold        float64               `json:"total_products_sold"`
	Customers                []ReportCustomerRow   `json:"customers"`
	MaterialsUsage           []ReportMaterialUsage `json:"materials_usage"`
	TotalMaterialCost        float64               `json:"total_material_cost"`
	TotalOperationalExpenses float64               `json:"total_operational_expenses"`
	Profit                   float64               `json:"profit"`
}

// BuildReport aggregates a report over [start, end]. Cancelled orders are
// skipped entirely. Material usage is priced per material at current prices,
// while TotalMaterialCost comes from the per-item cost snapshots so later
// price edits do not rewrite history.
func BuildReport(orders []*models.Order, customers []*models.Customer,
	catalog map[int]*models.Product, materials []*models.Material,
	expenses []*models.Expense, start, end time.Time) *Report {

	r := &Report{
		StartDate: start.Format(timeutil.DateLayout),
		EndDate:   end.Format(timeutil.DateLayout),
	}

	byCustomer := map[int]*ReportCustomerRow{}
	usage := Usage{}

	for _, o := range orders {
		if o.IsCancelled || o.CreatedAt.Before(start) || o.CreatedAt.After(end) {
			continue
		}
		r.TotalOrders++
		r.TotalRevenue += o.Total

		row, ok := byCustomer[o.CustomerID]
		if !ok {
			row = &ReportCustomerRow{CustomerID: o.CustomerID, Name: o.CustomerName}
			byCustomer[o.CustomerID] = row
		}
		row.OrderCount++
		row.TotalSpent += o.Total

		for _, item := range o.Items {
			r.TotalProductsSold += item.Qty
			r.TotalMaterialCost += item.MaterialsCost * item.Qty
		}
		for id, qty := range ComputeUsage(o.Items, catalog) {
			usage[id] += qty
		}
	}

	for _, c := range customers {
		if row, ok := byCustomer[c.ID]; ok {
			// Prefer the current record over the order snapshot
			row.Name = c.FullName
			row.PhoneNumber = c.PhoneNumber
		}
	}
	for _, row := range byCustomer {
		r.Customers = append(r.Customers, *row)
	}
	sort.Slice(r.Customers, func(i, j int) bool {
		if r.Customers[i].OrderCount != r.Customers[j].OrderCount {
			return r.Customers[i].OrderCount > r.Customers[j].OrderCount
		}
		return r.Customers[i].Name < r.Customers[j].Name
	})

	byID := map[int]*models.Material{}
	for _, m := range materials {
		byID[m.ID] = m
	}
	for id, qty := range usage {
		row := ReportMaterialUsage{MaterialID: id, Qty: qty}
		if m, ok := byID[id]; ok {
			row.Name = m.Name
			row.UnitLabel = m.UnitLabel
			row.TotalCost = qty * m.PricePerUnit
		} else {
			row.Name = fmt.Sprintf("material #%d", id)
		}
		r.MaterialsUsage = append(r.MaterialsUsage, row)
	}
	sort.Slice(r.MaterialsUsage, func(i, j int) bool {
		return r.MaterialsUsage[i].Name < r.MaterialsUsage[j].Name
	})

	// Expense dates are YYYY-MM-DD strings; lexicographic comparison against
	// the window's Cairo-local day bounds matches chronological order.
	startDay := start.In(timeutil.Cairo).Format(timeutil.DateLayout)
	endDay := end.In(timeutil.Cairo).Format(timeutil.DateLayout)
	for _, e := range expenses {
		if e.Date < startDay || e.Date > endDay {
			continue
		}
		r.TotalOperationalExpenses += e.Amount
	}

	r.Profit = r.TotalRevenue - r.TotalOperationalExpenses
	return r
}

type ReportService struct {
	OrderRepo    *repositories.OrderRepository
	CustomerRepo *repositories.CustomerRepository
	ProductRepo  *repositories.ProductRepository
	MaterialRepo *repositories.MaterialRepository
	ExpenseRepo  *repositories.ExpenseRepository
	Archive      *archive.Uploader // optional
}

func NewReportService(orderRepo *repositories.OrderRepository, customerRepo *repositories.CustomerRepository,
	productRepo *repositories.ProductRepository, materialRepo *repositories.MaterialRepository,
	expenseRepo *repositories.ExpenseRepository) *ReportService {
	return &ReportService{
		OrderRepo:    orderRepo,
		CustomerRepo: customerRepo,
		ProductRepo:  productRepo,
		MaterialRepo: materialRepo,
		ExpenseRepo:  expenseRepo,
	}
}

// GetReport loads everything the window touches and aggregates it. start and
// end are dates; the window covers start 00:00 through end 23:59:59 Cairo
// time.
func (s *ReportService) GetReport(ctx context.Context, start, end time.Time) (*Report, error) {
	from := timeutil.StartOfDay(start)
	to := timeutil.EndOfDay(end)

	orders, err := s.OrderRepo.ListBetween(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("load orders: %w", err)
	}
	customers, err := s.CustomerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load customers: %w", err)
	}
	catalog, err := s.ProductRepo.Catalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}
	materials, err := s.MaterialRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load materials: %w", err)
	}
	expenses, err := s.ExpenseRepo.ListBetween(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("load expenses: %w", err)
	}

	return BuildReport(orders, customers, catalog, materials, expenses, from, to), nil
}

// ReportFilename builds the export filename, e.g. report_2026-01-01_to_2026-01-31.csv
func ReportFilename(start, end time.Time, ext string) string {
	return fmt.Sprintf("report_%s_to_%s.%s",
		start.Format(timeutil.DateLayout), end.Format(timeutil.DateLayout), ext)
}

// GenerateCSV renders the report as CSV with blank-line separated sections.
func (s *ReportService) GenerateCSV(ctx context.Context, start, end time.Time) ([]byte, string, error) {
	r, err := s.GetReport(ctx, start, end)
	if err != nil {
		return nil, "", err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	w.Write([]string{"Yoyo Shop Report"})
	w.Write([]string{"Dates:", fmt.Sprintf("%s to %s", r.StartDate, r.EndDate)})
	w.Write([]string{})

	w.Write([]string{"Sales & Profit Summary"})
	w.Write([]string{"Total Revenue", fmt.Sprintf("%.2f", r.TotalRevenue)})
	w.Write([]string{"Total Orders", fmt.Sprintf("%d", r.TotalOrders)})
	w.Write([]string{"Total Products Sold", fmt.Sprintf("%.0f", r.TotalProductsSold)})
	w.Write([]string{"Total Operational Expenses", fmt.Sprintf("%.2f", r.TotalOperationalExpenses)})
	w.Write([]string{"Profit", fmt.Sprintf("%.2f", r.Profit)})
	w.Write([]string{})

	w.Write([]string{"Customer Report"})
	w.Write([]string{"Customer", "Phone", "Orders", "Total Spent"})
	for _, c := range r.Customers {
		w.Write([]string{c.Name, c.PhoneNumber, fmt.Sprintf("%d", c.OrderCount), fmt.Sprintf("%.2f", c.TotalSpent)})
	}
	w.Write([]string{})

	w.Write([]string{"Materials Usage Report"})
	w.Write([]string{"Material", "Quantity", "Unit", "Total Cost"})
	for _, m := range r.MaterialsUsage {
		w.Write([]string{m.Name, fmt.Sprintf("%.2f", m.Qty), m.UnitLabel, fmt.Sprintf("%.2f", m.TotalCost)})
	}
	w.Write([]string{"Total Material Cost", fmt.Sprintf("%.2f", r.TotalMaterialCost)})

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", err
	}

	name := ReportFilename(start, end, "csv")
	s.archiveAsync(name, "text/csv", buf.Bytes())
	return buf.Bytes(), name, nil
}

// GeneratePDF renders the report as an A4 PDF.
func (s *ReportService) GeneratePDF(ctx context.Context, start, end time.Time) ([]byte, string, error) {
	r, err := s.GetReport(ctx, start, end)
	if err != nil {
		return nil, "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	// Header
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(190, 10, "Yoyo Shop Report", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(190, 6, fmt.Sprintf("Period: %s to %s", r.StartDate, r.EndDate), "", 1, "C", false, 0, "")
	pdf.CellFormat(190, 6, fmt.Sprintf("Generated: %s", timeutil.Now().Format(timeutil.DisplayLayout)), "", 1, "C", false, 0, "")
	pdf.Ln(5)

	// Summary
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Sales & Profit Summary", "1", 1, "L", true, 0, "")
	pdf.SetFont("Arial", "", 11)
	summary := [][2]string{
		{"Total Revenue", fmt.Sprintf("EGP %.2f", r.TotalRevenue)},
		{"Total Orders", fmt.Sprintf("%d", r.TotalOrders)},
		{"Total Products Sold", fmt.Sprintf("%.0f", r.TotalProductsSold)},
		{"Total Operational Expenses", fmt.Sprintf("EGP %.2f", r.TotalOperationalExpenses)},
		{"Profit", fmt.Sprintf("EGP %.2f", r.Profit)},
	}
	for _, row := range summary {
		pdf.CellFormat(95, 7, row[0], "1", 0, "L", false, 0, "")
		pdf.CellFormat(95, 7, row[1], "1", 1, "R", false, 0, "")
	}
	pdf.Ln(5)

	// Customers
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Customer Report", "1", 1, "L", true, 0, "")
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(200, 200, 200)
	pdf.CellFormat(70, 7, "Customer", "1", 0, "C", true, 0, "")
	pdf.CellFormat(45, 7, "Phone", "1", 0, "C", true, 0, "")
	pdf.CellFormat(25, 7, "Orders", "1", 0, "C", true, 0, "")
	pdf.CellFormat(50, 7, "Total Spent", "1", 1, "C", true, 0, "")
	pdf.SetFont("Arial", "", 10)
	for _, c := range r.Customers {
		name := c.Name
		if len(name) > 32 {
			name = name[:29] + "..."
		}
		pdf.CellFormat(70, 6, name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(45, 6, c.PhoneNumber, "1", 0, "C", false, 0, "")
		pdf.CellFormat(25, 6, fmt.Sprintf("%d", c.OrderCount), "1", 0, "C", false, 0, "")
		pdf.CellFormat(50, 6, fmt.Sprintf("EGP %.2f", c.TotalSpent), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(5)

	// Materials
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Materials Usage Report", "1", 1, "L", true, 0, "")
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(70, 7, "Material", "1", 0, "C", true, 0, "")
	pdf.CellFormat(45, 7, "Quantity", "1", 0, "C", true, 0, "")
	pdf.CellFormat(25, 7, "Unit", "1", 0, "C", true, 0, "")
	pdf.CellFormat(50, 7, "Total Cost", "1", 1, "C", true, 0, "")
	pdf.SetFont("Arial", "", 10)
	for _, m := range r.MaterialsUsage {
		pdf.CellFormat(70, 6, m.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(45, 6, fmt.Sprintf("%.2f", m.Qty), "1", 0, "R", false, 0, "")
		pdf.CellFormat(25, 6, m.UnitLabel, "1", 0, "C", false, 0, "")
		pdf.CellFormat(50, 6, fmt.Sprintf("EGP %.2f", m.TotalCost), "1", 1, "R", false, 0, "")
	}
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(140, 7, "Total Material Cost", "1", 0, "R", false, 0, "")
	pdf.CellFormat(50, 7, fmt.Sprintf("EGP %.2f", r.TotalMaterialCost), "1", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", fmt.Errorf("render pdf: %w", err)
	}

	name := ReportFilename(start, end, "pdf")
	s.archiveAsync(name, "application/pdf", buf.Bytes())
	return buf.Bytes(), name, nil
}

// archiveAsync ships an export to object storage when configured. Failures
// are logged only; the download must not depend on the archive.
func (s *ReportService) archiveAsync(name, contentType string, data []byte) {
	if s.Archive == nil {
		return
	}
	payload := make([]byte, len(data))
	copy(payload, data)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := s.Archive.Upload(ctx, "reports/"+name, contentType, payload); err != nil {
			log.Printf("[Report] archive %s: %v", name, err)
		}
	}()
}
