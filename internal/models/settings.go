package models

import "time"

// Settings is the singleton company configuration, read on startup and
// upserted from the settings page.
type Settings struct {
	CompanyName    string    `json:"company_name"`
	CompanyAddress string    `json:"company_address"`
	CompanyPhone   string    `json:"company_phone"`
	CommissionRate float64   `json:"commission_rate"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// UpdateSettingsRequest represents the request body for upserting settings
type UpdateSettingsRequest struct {
	CompanyName    string  `json:"company_name"`
	CompanyAddress string  `json:"company_address"`
	CompanyPhone   string  `json:"company_phone"`
	CommissionRate float64 `json:"commission_rate"`
}
