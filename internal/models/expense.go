package models

import "time"

// Suggested expense categories. Category is free text; this list only feeds
// the suggestion dropdown.
var ExpenseCategories = []string{"Rent", "Salaries", "Utilities", "Supplies", "Marketing", "Transportation", "Other"}

type Expense struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Amount    float64   `json:"amount"`
	Date      string    `json:"date"` // YYYY-MM-DD, stored as text
	CreatedAt time.Time `json:"created_at"`
}

// CreateExpenseRequest represents the request body for creating an expense
type CreateExpenseRequest struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
	Date     string  `json:"date"` // YYYY-MM-DD
}

// UpdateExpenseRequest represents the request body for updating an expense
type UpdateExpenseRequest struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
	Date     string  `json:"date"`
}
