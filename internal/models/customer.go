package models

import "time"

type Customer struct {
	ID             int       `json:"id"`
	FullName       string    `json:"full_name"`
	Address        string    `json:"address"`
	PhoneNumber    string    `json:"phone_number"` // Egyptian mobile: 11 digits, 010/011/012/015
	Email          string    `json:"email,omitempty"`
	ReferredByID   *int      `json:"referred_by_id,omitempty"`
	ReferredByName string    `json:"referred_by_name,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// CreateCustomerRequest represents the request body for creating a customer
type CreateCustomerRequest struct {
	FullName       string `json:"full_name"`
	Address        string `json:"address"`
	PhoneNumber    string `json:"phone_number"`
	Email          string `json:"email"`
	ReferredByID   *int   `json:"referred_by_id"`
	ReferredByName string `json:"referred_by_name"`
}

// UpdateCustomerRequest represents the request body for updating a customer
type UpdateCustomerRequest struct {
	FullName       string `json:"full_name"`
	Address        string `json:"address"`
	PhoneNumber    string `json:"phone_number"`
	Email          string `json:"email"`
	ReferredByID   *int   `json:"referred_by_id"`
	ReferredByName string `json:"referred_by_name"`
}
