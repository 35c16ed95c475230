package services

import (
	"testing"

	"yoyo-backend/internal/models"
)

func pricedCatalog() map[int]*models.Product {
	return map[int]*models.Product{
		1: {ID: 1, Name: "Strawberry Cake", Price: 250, MaterialsCost: 80,
			Materials: []models.ProductMaterial{{MaterialID: 10, Quantity: 10}}},
		2: {ID: 2, Name: "Candle Box", Price: 120, MaterialsCost: 30,
			Materials: []models.ProductMaterial{{MaterialID: 20, Quantity: 5}}},
	}
}

func TestSnapshotItemsPricesFromCatalog(t *testing.T) {
	// The client's prices are lies; snapshots always come from the catalog.
	items := []models.OrderItem{
		{ProductID: 1, Qty: 2, UnitPrice: 1, Name: "bogus"},
		{ProductID: 2, Qty: 1},
	}

	out, subtotal, err := snapshotItems(items, pricedCatalog())
	if err != nil {
		t.Fatalf("snapshotItems: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("got %d items, want 2", len(out))
	}

	first := out[0]
	if first.Name != "Strawberry Cake" || first.UnitPrice != 250 || first.MaterialsCost != 80 {
		t.Fatalf("snapshot not taken from catalog: %+v", first)
	}
	if first.LineTotal != 500 {
		t.Fatalf("line total = %v, want 500", first.LineTotal)
	}
	if subtotal != 620 {
		t.Fatalf("subtotal = %v, want 620", subtotal)
	}
}

func TestSnapshotItemsRejectsZeroQty(t *testing.T) {
	_, _, err := snapshotItems([]models.OrderItem{{ProductID: 1, Qty: 0}}, pricedCatalog())
	if err == nil {
		t.Fatal("expected error for zero quantity")
	}
}

func TestSnapshotItemsRejectsUnknownProduct(t *testing.T) {
	_, _, err := snapshotItems([]models.OrderItem{{ProductID: 404, Qty: 1}}, pricedCatalog())
	if err == nil {
		t.Fatal("expected error for unknown product")
	}
}

func TestOrderEditReleasesStockDelta(t *testing.T) {
	// Two units deducted at creation, edited down to one: exactly one
	// unit's worth of materials must flow back.
	catalog := pricedCatalog()
	before := []models.OrderItem{{ProductID: 1, Qty: 2}}
	after := []models.OrderItem{{ProductID: 1, Qty: 1}}

	delta := UsageDelta(ComputeUsage(before, catalog), ComputeUsage(after, catalog))
	if got := delta[10]; got != -10 {
		t.Fatalf("delta for material 10 = %v, want -10", got)
	}
}

func TestOrderCreateUsageScenario(t *testing.T) {
	// 2x product A (10g of X each) + 1x product B (5 pieces of Y) deducts
	// 20g of X and 5 pieces of Y.
	items := []models.OrderItem{
		{ProductID: 1, Qty: 2},
		{ProductID: 2, Qty: 1},
	}
	usage := ComputeUsage(items, pricedCatalog())
	if usage[10] != 20 || usage[20] != 5 {
		t.Fatalf("usage = %v, want material 10: 20, material 20: 5", usage)
	}
}

func TestSnapshotItemsKeepsFractionalQty(t *testing.T) {
	// Weight-based products sell in fractional quantities; nothing along the
	// snapshot path may round them.
	items := []models.OrderItem{{ProductID: 1, Qty: 2.5}}

	out, subtotal, err := snapshotItems(items, pricedCatalog())
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if out[0].Qty != 2.5 {
		t.Fatalf("qty = %v, want 2.5", out[0].Qty)
	}
	if out[0].LineTotal != 625 || subtotal != 625 {
		t.Fatalf("line total/subtotal = %v/%v, want 625 (2.5 * 250)", out[0].LineTotal, subtotal)
	}
}
