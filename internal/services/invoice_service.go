package services

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"

	"github.com/jung-kurt/gofpdf/v2"

	"yoyo-backend/internal/models"
	"yoyo-backend/internal/repositories"
	"yoyo-backend/internal/timeutil"
)

// The built-in core fonts only cover Latin, so the Arabic invoice embeds
// DejaVu Sans, which carries the Arabic block.
//
//go:embed fonts/DejaVuSans.ttf
var fontSans []byte

//go:embed fonts/DejaVuSans-Bold.ttf
var fontSansBold []byte

// invoiceLabels holds the printable strings per language.
type invoiceLabels struct {
	Title     string
	InvoiceNo string
	Date      string
	Customer  string
	Phone     string
	Item      string
	Qty       string
	UnitPrice string
	LineTotal string
	Subtotal  string
	Discount  string
	Deposit   string
	Total     string
	Balance   string
	Notes     string
	RTL       bool
}

var invoiceEN = invoiceLabels{
	Title: "Invoice", InvoiceNo: "Invoice #", Date: "Date", Customer: "Customer",
	Phone: "Phone", Item: "Item", Qty: "Qty", UnitPrice: "Unit Price",
	LineTotal: "Total", Subtotal: "Subtotal", Discount: "Discount",
	Deposit: "Deposit Paid", Total: "Total", Balance: "Balance Due", Notes: "Notes",
}

var invoiceAR = invoiceLabels{
	Title: "فاتورة", InvoiceNo: "رقم الفاتورة ", Date: "التاريخ", Customer: "العميل",
	Phone: "الهاتف", Item: "الصنف", Qty: "الكمية", UnitPrice: "سعر الوحدة",
	LineTotal: "الإجمالي", Subtotal: "المجموع الفرعي", Discount: "خصم",
	Deposit: "عربون مدفوع", Total: "الإجمالي", Balance: "المبلغ المتبقي", Notes: "ملاحظات",
	RTL: true,
}

type InvoiceService struct {
	OrderRepo    *repositories.OrderRepository
	CustomerRepo *repositories.CustomerRepository
	Settings     *SettingsService
}

func NewInvoiceService(orderRepo *repositories.OrderRepository, customerRepo *repositories.CustomerRepository,
	settings *SettingsService) *InvoiceService {
	return &InvoiceService{OrderRepo: orderRepo, CustomerRepo: customerRepo, Settings: settings}
}

// GenerateOrderInvoice renders the order as an A4 invoice PDF. lang selects
// "en" or "ar"; anything else falls back to English.
func (s *InvoiceService) GenerateOrderInvoice(ctx context.Context, orderID int, lang string) ([]byte, string, error) {
	o, err := s.OrderRepo.Get(ctx, orderID)
	if err != nil {
		return nil, "", err
	}
	settings, err := s.Settings.GetSettings(ctx)
	if err != nil {
		return nil, "", err
	}
	customer, _ := s.CustomerRepo.Get(ctx, o.CustomerID)

	labels := invoiceEN
	if lang == "ar" {
		labels = invoiceAR
	}

	data, err := renderInvoice(o, customer, settings, labels)
	if err != nil {
		return nil, "", err
	}
	return data, fmt.Sprintf("invoice_%d.pdf", o.ID), nil
}

func renderInvoice(o *models.Order, customer *models.Customer, settings *models.Settings,
	labels invoiceLabels) ([]byte, error) {

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	family := "Arial"
	alignStart, alignEnd := "L", "R"
	if labels.RTL {
		family = "DejaVu"
		alignStart, alignEnd = "R", "L"
		pdf.AddUTF8FontFromBytes("DejaVu", "", fontSans)
		pdf.AddUTF8FontFromBytes("DejaVu", "B", fontSansBold)
	}

	// Shop header
	pdf.SetFont(family, "B", 18)
	pdf.CellFormat(190, 10, settings.CompanyName, "", 1, "C", false, 0, "")
	pdf.SetFont(family, "", 9)
	if settings.CompanyAddress != "" {
		pdf.CellFormat(190, 5, settings.CompanyAddress, "", 1, "C", false, 0, "")
	}
	if settings.CompanyPhone != "" {
		pdf.CellFormat(190, 5, settings.CompanyPhone, "", 1, "C", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont(family, "B", 14)
	pdf.CellFormat(190, 8, labels.Title, "", 1, "C", false, 0, "")
	pdf.SetFont(family, "", 10)
	pdf.CellFormat(95, 6, fmt.Sprintf("%s%d", labels.InvoiceNo, o.ID), "", 0, alignStart, false, 0, "")
	pdf.CellFormat(95, 6, fmt.Sprintf("%s: %s", labels.Date, timeutil.ToLocal(o.CreatedAt).Format(timeutil.DateLayout)), "", 1, alignEnd, false, 0, "")

	pdf.CellFormat(95, 6, fmt.Sprintf("%s: %s", labels.Customer, o.CustomerName), "", 0, alignStart, false, 0, "")
	phone := ""
	if customer != nil {
		phone = customer.PhoneNumber
	}
	pdf.CellFormat(95, 6, fmt.Sprintf("%s: %s", labels.Phone, phone), "", 1, alignEnd, false, 0, "")
	pdf.Ln(4)

	// Items
	pdf.SetFont(family, "B", 10)
	pdf.SetFillColor(200, 200, 200)
	pdf.CellFormat(90, 7, labels.Item, "1", 0, "C", true, 0, "")
	pdf.CellFormat(25, 7, labels.Qty, "1", 0, "C", true, 0, "")
	pdf.CellFormat(35, 7, labels.UnitPrice, "1", 0, "C", true, 0, "")
	pdf.CellFormat(40, 7, labels.LineTotal, "1", 1, "C", true, 0, "")

	pdf.SetFont(family, "", 10)
	for _, item := range o.Items {
		name := item.Name
		if r := []rune(name); len(r) > 45 {
			name = string(r[:42]) + "..."
		}
		pdf.CellFormat(90, 6, name, "1", 0, alignStart, false, 0, "")
		pdf.CellFormat(25, 6, fmt.Sprintf("%.0f", item.Qty), "1", 0, "C", false, 0, "")
		pdf.CellFormat(35, 6, fmt.Sprintf("EGP %.2f", item.UnitPrice), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 6, fmt.Sprintf("EGP %.2f", item.LineTotal), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	// Totals block: right side for LTR, left for RTL
	indent := 110.0
	if labels.RTL {
		indent = 10.0
	}
	totals := [][2]string{
		{labels.Subtotal, fmt.Sprintf("EGP %.2f", o.Subtotal)},
	}
	if o.Discount > 0 {
		totals = append(totals, [2]string{labels.Discount, fmt.Sprintf("-EGP %.2f", o.Discount)})
	}
	totals = append(totals, [2]string{labels.Total, fmt.Sprintf("EGP %.2f", o.Total)})
	balance := o.Total
	if o.DepositPaid {
		totals = append(totals, [2]string{labels.Deposit, fmt.Sprintf("-EGP %.2f", o.DepositAmount)})
		balance -= o.DepositAmount
	}
	totals = append(totals, [2]string{labels.Balance, fmt.Sprintf("EGP %.2f", balance)})

	for i, row := range totals {
		if i == len(totals)-1 {
			pdf.SetFont(family, "B", 11)
		}
		pdf.SetX(indent)
		pdf.CellFormat(45, 7, row[0], "1", 0, alignStart, false, 0, "")
		pdf.CellFormat(45, 7, row[1], "1", 1, "R", false, 0, "")
	}

	if o.Notes != "" {
		pdf.Ln(4)
		pdf.SetFont(family, "B", 10)
		pdf.CellFormat(190, 6, labels.Notes, "", 1, alignStart, false, 0, "")
		pdf.SetFont(family, "", 10)
		pdf.MultiCell(190, 5, o.Notes, "", alignStart, false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render invoice: %w", err)
	}
	return buf.Bytes(), nil
}
