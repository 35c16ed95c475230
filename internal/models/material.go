package models

import "time"

// Unit types for materials
const (
	UnitTypeWeight = "weight"
	UnitTypePiece  = "piece"
)

type Material struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	UnitType     string    `json:"unit_type"`  // weight or piece
	UnitLabel    string    `json:"unit_label"` // g, kg or piece
	PricePerUnit float64   `json:"price_per_unit"`
	StockQty     float64   `json:"stock_qty"` // may go negative, no hard floor
	MinQty       *float64  `json:"min_qty,omitempty"`
	LowStock     bool      `json:"low_stock"` // display warning only, stock_qty <= min_qty
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CreateMaterialRequest represents the request body for creating a material
type CreateMaterialRequest struct {
	Name         string   `json:"name"`
	UnitType     string   `json:"unit_type"`
	UnitLabel    string   `json:"unit_label"`
	PricePerUnit float64  `json:"price_per_unit"`
	StockQty     float64  `json:"stock_qty"`
	MinQty       *float64 `json:"min_qty"`
}

// UpdateMaterialRequest represents the request body for updating a material
type UpdateMaterialRequest struct {
	Name         string   `json:"name"`
	UnitType     string   `json:"unit_type"`
	UnitLabel    string   `json:"unit_label"`
	PricePerUnit float64  `json:"price_per_unit"`
	StockQty     float64  `json:"stock_qty"`
	MinQty       *float64 `json:"min_qty"`
}
