package models

import "time"

// ProductMaterial is one line of a product's recipe: how much of a material
// goes into a single unit of the product.
type ProductMaterial struct {
	MaterialID   int     `json:"material_id"`
	MaterialName string  `json:"material_name"` // denormalized for display
	Quantity     float64 `json:"quantity"`
}

type Product struct {
	ID          int               `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Price       float64           `json:"price"` // final selling price
	Materials   []ProductMaterial `json:"materials"`
	// MaterialsCost is recomputed from current material prices on every
	// create/update. It is a point-in-time value and is NOT kept consistent
	// with later material price changes.
	MaterialsCost float64   `json:"materials_cost"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// CreateProductRequest represents the request body for creating a product
type CreateProductRequest struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Price       float64           `json:"price"`
	Materials   []ProductMaterial `json:"materials"`
}

// UpdateProductRequest represents the request body for updating a product
type UpdateProductRequest struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Price       float64           `json:"price"`
	Materials   []ProductMaterial `json:"materials"`
}
