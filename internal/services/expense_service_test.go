package services

import (
	"context"
	"strings"
	"testing"

	"yoyo-backend/internal/models"
)

func TestCreateExpenseRejectsBadDate(t *testing.T) {
	s := NewExpenseService(nil)
	for _, date := range []string{"", "10-08-2026", "2026/08/10", "2026-8-1"} {
		_, err := s.CreateExpense(context.Background(), &models.CreateExpenseRequest{
			Name: "Rent", Amount: 100, Date: date,
		})
		if err == nil || !strings.Contains(err.Error(), "YYYY-MM-DD") {
			t.Fatalf("date %q: err = %v, want format error", date, err)
		}
	}
}

func TestCreateExpenseValidation(t *testing.T) {
	s := NewExpenseService(nil)
	if _, err := s.CreateExpense(context.Background(), &models.CreateExpenseRequest{Name: "  ", Amount: 10, Date: "2026-08-10"}); err == nil {
		t.Fatalf("blank name accepted")
	}
	if _, err := s.CreateExpense(context.Background(), &models.CreateExpenseRequest{Name: "Rent", Amount: 0, Date: "2026-08-10"}); err == nil {
		t.Fatalf("non-positive amount accepted")
	}
}
