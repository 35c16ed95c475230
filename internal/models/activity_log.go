package models

import "time"

// ActivityLogEntry is one audit-trail record. Every mutating admin action
// writes one; a failed write never blocks the primary operation.
type ActivityLogEntry struct {
	ID        int       `json:"id"`
	UserID    *int      `json:"user_id,omitempty"`
	UserName  string    `json:"user_name"`
	Action    string    `json:"action"`
	Details   string    `json:"details"`
	CreatedAt time.Time `json:"created_at"`
}
