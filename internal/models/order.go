package models

import "time"

// Production statuses, in workflow order. The UI may set any value; there is
// no enforced forward-only transition.
var ProductionStatuses = []string{"Not Started", "Started", "Layer 1", "Layer 2", "Final Layer", "Finished"}

// Shipping statuses, in workflow order.
var ShippingStatuses = []string{"Ready", "Out for Shipment", "Out for Delivery", "Delivered"}

// Completion markers. Marking an order with one of these while stock has not
// been deducted requires an explicit deduct-or-not decision from the caller.
const (
	ProductionFinished = "Finished"
	ShippingDelivered  = "Delivered"
)

// OrderItem is a frozen snapshot taken at order time. Name, unit price and
// materials cost deliberately do not follow later product edits; invoices and
// reports stay historically accurate.
type OrderItem struct {
	ProductID     int     `json:"product_id"`
	Name          string  `json:"name"`
	Qty           float64 `json:"qty"`
	UnitPrice     float64 `json:"unit_price"`
	MaterialsCost float64 `json:"materials_cost"` // cost per unit at time of order
	LineTotal     float64 `json:"line_total"`     // qty * unit_price
}

type Order struct {
	ID               int         `json:"id"`
	CustomerID       int         `json:"customer_id"`
	CustomerName     string      `json:"customer_name"` // snapshot at order time
	Items            []OrderItem `json:"items"`
	Subtotal         float64     `json:"subtotal"` // sum of line totals
	Discount         float64     `json:"discount"`
	Total            float64     `json:"total"` // subtotal - discount
	DepositPaid      bool        `json:"deposit_paid"`
	DepositAmount    float64     `json:"deposit_amount"`
	ProductionStatus string      `json:"production_status"`
	ShippingStatus   string      `json:"shipping_status"`
	Notes            string      `json:"notes"`
	IsCancelled      bool        `json:"is_cancelled"`
	StockDeducted    bool        `json:"stock_deducted"`
	SalespersonID    *int        `json:"salesperson_id,omitempty"`
	SalespersonName  string      `json:"salesperson_name,omitempty"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
}

// OrderDraft is the editable part of an order as submitted by the client.
// Subtotal, total and line totals are always recomputed server-side.
type OrderDraft struct {
	CustomerID       int         `json:"customer_id"`
	SalespersonID    *int        `json:"salesperson_id,omitempty"`
	Items            []OrderItem `json:"items"`
	Discount         float64     `json:"discount"`
	DepositPaid      bool        `json:"deposit_paid"`
	DepositAmount    float64     `json:"deposit_amount"`
	ProductionStatus string      `json:"production_status"`
	ShippingStatus   string      `json:"shipping_status"`
	Notes            string      `json:"notes"`
}

// CreateOrderRequest carries the draft plus the explicit stock decision made
// in the confirmation step ("create only" vs "create & deduct stock").
type CreateOrderRequest struct {
	OrderDraft
	DeductStock bool `json:"deduct_stock"`
}

// ChangeStatusRequest updates one status axis. DeductStock is only consulted
// when the new value is a completion marker on an order whose stock has not
// been deducted; nil means the caller has not decided yet.
type ChangeStatusRequest struct {
	Field       string `json:"field"` // production_status or shipping_status
	Value       string `json:"value"`
	DeductStock *bool  `json:"deduct_stock"`
}

func IsValidProductionStatus(s string) bool {
	for _, v := range ProductionStatuses {
		if v == s {
			return true
		}
	}
	return false
}

func IsValidShippingStatus(s string) bool {
	for _, v := range ShippingStatuses {
		if v == s {
			return true
		}
	}
	return false
}
