package services

import (
	"bytes"
	"testing"
	"time"

	"yoyo-backend/internal/models"
)

func fixtureInvoiceOrder() *models.Order {
	return &models.Order{
		ID: 7, CustomerID: 1, CustomerName: "Mona Adel",
		Subtotal: 500, Discount: 50, Total: 450,
		DepositPaid: true, DepositAmount: 100,
		Notes:     "Pickup on Thursday",
		CreatedAt: time.Date(2026, 8, 10, 12, 0, 0, 0, time.UTC),
		Items: []models.OrderItem{
			{ProductID: 1, Name: "Honey cake", Qty: 2, UnitPrice: 150, LineTotal: 300},
			{ProductID: 2, Name: "Scented candle", Qty: 3, UnitPrice: 50, LineTotal: 150},
		},
	}
}

func TestRenderInvoiceEnglish(t *testing.T) {
	settings := &models.Settings{CompanyName: "Yoyo Shop", CompanyPhone: "01012345678"}
	customer := &models.Customer{ID: 1, FullName: "Mona Adel", PhoneNumber: "01012345678"}

	data, err := renderInvoice(fixtureInvoiceOrder(), customer, settings, invoiceEN)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("output is not a PDF (starts with %q)", data[:4])
	}
}

func TestRenderInvoiceArabicEmbedsFont(t *testing.T) {
	settings := &models.Settings{CompanyName: "محل يويو"}

	en, err := renderInvoice(fixtureInvoiceOrder(), nil, settings, invoiceEN)
	if err != nil {
		t.Fatalf("render en: %v", err)
	}
	ar, err := renderInvoice(fixtureInvoiceOrder(), nil, settings, invoiceAR)
	if err != nil {
		t.Fatalf("render ar: %v", err)
	}
	if !bytes.HasPrefix(ar, []byte("%PDF")) {
		t.Fatalf("output is not a PDF (starts with %q)", ar[:4])
	}
	// The Arabic invoice carries an embedded TrueType subset; the English one
	// uses core fonts only, so it must be markedly smaller.
	if len(ar) <= len(en) {
		t.Fatalf("arabic invoice (%d bytes) not larger than english (%d bytes); font not embedded", len(ar), len(en))
	}
}

func TestInvoiceArabicLabels(t *testing.T) {
	if invoiceAR.Title == invoiceEN.Title {
		t.Fatalf("arabic title falls back to english wording")
	}
	if !invoiceAR.RTL {
		t.Fatalf("arabic labels must select RTL layout")
	}
	hasArabic := func(s string) bool {
		for _, r := range s {
			if r >= 0x0600 && r <= 0x06FF {
				return true
			}
		}
		return false
	}
	for _, label := range []string{invoiceAR.Item, invoiceAR.Qty, invoiceAR.UnitPrice, invoiceAR.Balance} {
		if !hasArabic(label) {
			t.Fatalf("label %q contains no Arabic letters", label)
		}
	}
}
