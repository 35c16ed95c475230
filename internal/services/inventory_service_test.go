package services

import (
	"testing"

	"yoyo-backend/internal/models"
)

func testCatalog() map[int]*models.Product {
	return map[int]*models.Product{
		1: {
			ID:   1,
			Name: "Product A",
			Materials: []models.ProductMaterial{
				{MaterialID: 10, Quantity: 10}, // 10g of X per unit
			},
		},
		2: {
			ID:   2,
			Name: "Product B",
			Materials: []models.ProductMaterial{
				{MaterialID: 20, Quantity: 5}, // 5 pieces of Y per unit
			},
		},
		3: {
			ID:   3,
			Name: "Product C",
			Materials: []models.ProductMaterial{
				{MaterialID: 10, Quantity: 2},
				{MaterialID: 20, Quantity: 1},
			},
		},
	}
}

func TestComputeUsage(t *testing.T) {
	items := []models.OrderItem{
		{ProductID: 1, Qty: 2},
		{ProductID: 2, Qty: 1},
	}
	usage := ComputeUsage(items, testCatalog())

	if got := usage[10]; got != 20 {
		t.Fatalf("material 10 usage = %v, want 20", got)
	}
	if got := usage[20]; got != 5 {
		t.Fatalf("material 20 usage = %v, want 5", got)
	}
}

func TestComputeUsageSharedMaterial(t *testing.T) {
	items := []models.OrderItem{
		{ProductID: 1, Qty: 3},
		{ProductID: 3, Qty: 2},
	}
	usage := ComputeUsage(items, testCatalog())

	// 3*10 from product 1 plus 2*2 from product 3
	if got := usage[10]; got != 34 {
		t.Fatalf("material 10 usage = %v, want 34", got)
	}
	if got := usage[20]; got != 2 {
		t.Fatalf("material 20 usage = %v, want 2", got)
	}
}

func TestComputeUsageLinearInQty(t *testing.T) {
	catalog := testCatalog()
	single := ComputeUsage([]models.OrderItem{{ProductID: 3, Qty: 1}}, catalog)
	triple := ComputeUsage([]models.OrderItem{{ProductID: 3, Qty: 3}}, catalog)

	for id, qty := range single {
		if triple[id] != 3*qty {
			t.Fatalf("material %d: tripling qty gave %v, want %v", id, triple[id], 3*qty)
		}
	}
}

func TestComputeUsageSkipsUnknownProduct(t *testing.T) {
	items := []models.OrderItem{
		{ProductID: 999, Qty: 5},
		{ProductID: 1, Qty: 1},
	}
	usage := ComputeUsage(items, testCatalog())

	if len(usage) != 1 {
		t.Fatalf("usage has %d materials, want 1", len(usage))
	}
	if got := usage[10]; got != 10 {
		t.Fatalf("material 10 usage = %v, want 10", got)
	}
}

func TestUsageDelta(t *testing.T) {
	prev := Usage{10: 20, 20: 5}
	next := Usage{10: 10, 20: 5, 30: 7}

	delta := UsageDelta(prev, next)

	if got := delta[10]; got != -10 {
		t.Fatalf("delta for material 10 = %v, want -10", got)
	}
	if _, ok := delta[20]; ok {
		t.Fatalf("unchanged material 20 should not appear in delta")
	}
	if got := delta[30]; got != 7 {
		t.Fatalf("delta for material 30 = %v, want 7", got)
	}
}

func TestUsageDeltaIdenticalIsEmpty(t *testing.T) {
	u := Usage{10: 4, 20: 2.5}
	if delta := UsageDelta(u, u); len(delta) != 0 {
		t.Fatalf("delta of identical usage = %v, want empty", delta)
	}
}

func TestUsageDeltaRoundtrip(t *testing.T) {
	// Applying delta(prev, next) on top of prev must land exactly on next.
	prev := Usage{10: 20, 20: 5}
	next := Usage{10: 30, 30: 1}

	delta := UsageDelta(prev, next)
	result := Usage{}
	for id, qty := range prev {
		result[id] = qty
	}
	for id, qty := range delta {
		result[id] += qty
		if result[id] == 0 {
			delete(result, id)
		}
	}

	if len(result) != len(next) {
		t.Fatalf("roundtrip result %v, want %v", result, next)
	}
	for id, qty := range next {
		if result[id] != qty {
			t.Fatalf("material %d: roundtrip = %v, want %v", id, result[id], qty)
		}
	}
}
