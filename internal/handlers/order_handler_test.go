package handlers

import (
	"strings"
	"testing"

	"yoyo-backend/internal/models"
)

func TestDeleteWarningOnlyForCancelledOrders(t *testing.T) {
	if _, warn := deleteWarning(&models.Order{ID: 5, StockDeducted: true}); warn {
		t.Fatalf("active order must delete without a warning")
	}
	msg, warn := deleteWarning(&models.Order{ID: 5, IsCancelled: true})
	if !warn {
		t.Fatalf("deleting a cancelled order must warn")
	}
	if !strings.Contains(msg, "cancelled order #5") {
		t.Fatalf("warning %q does not name the cancelled order", msg)
	}
}
