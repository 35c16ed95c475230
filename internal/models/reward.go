package models

import "time"

// Reward types
const (
	RewardTypeCustomerCount = "customerCount"
	RewardTypeSalesVolume   = "salesVolume"
)

// Reward is a target-based bonus definition for salespeople, e.g. "10 new
// customers within 30 days".
type Reward struct {
	ID            int       `json:"id"`
	Name          string    `json:"name"`
	Type          string    `json:"type"` // customerCount or salesVolume
	Target        float64   `json:"target"`
	RewardAmount  float64   `json:"reward_amount"`
	TimeframeDays int       `json:"timeframe_days"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
}

// EarnedReward is a realized award for a salesperson.
type EarnedReward struct {
	ID              int       `json:"id"`
	RewardID        int       `json:"reward_id"`
	RewardName      string    `json:"reward_name"` // snapshot
	SalespersonID   int       `json:"salesperson_id"`
	SalespersonName string    `json:"salesperson_name"`
	Amount          float64   `json:"amount"`
	DateEarned      time.Time `json:"date_earned"`
}

// CreateRewardRequest represents the request body for creating a reward
type CreateRewardRequest struct {
	Name          string  `json:"name"`
	Type          string  `json:"type"`
	Target        float64 `json:"target"`
	RewardAmount  float64 `json:"reward_amount"`
	TimeframeDays int     `json:"timeframe_days"`
	IsActive      bool    `json:"is_active"`
}

// UpdateRewardRequest represents the request body for updating a reward
type UpdateRewardRequest struct {
	Name          string  `json:"name"`
	Type          string  `json:"type"`
	Target        float64 `json:"target"`
	RewardAmount  float64 `json:"reward_amount"`
	TimeframeDays int     `json:"timeframe_days"`
	IsActive      bool    `json:"is_active"`
}
